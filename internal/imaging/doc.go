// Package imaging provides the raster operations used to compose App Store
// screenshots.
//
// The package has two layers. Ops is a narrow capability interface (decode,
// encode, resize, crop, overlay, insert, channel extraction, alpha
// replacement, flatten) that the mask, caption and composition packages are
// written against. Raster implements it with github.com/disintegration/imaging,
// github.com/anthonynsimon/bild and golang.org/x/image/draw. Tests substitute
// a recording Ops to check what the pipeline asked for without depending on
// resampling output.
//
// On top of Ops the package adds the few generators the pipeline needs:
//
//   - LinearGradient: CSS-style angled gradients with any number of stops,
//     interpolated with github.com/lucasb-eyer/go-colorful
//   - RoundedRectMask: an antialiased rounded-rectangle alpha mask
//   - FitBackground: cover, contain, fill and scale-down background mapping
//   - ParseColor: "#RGB", "#RRGGBB" and "#RRGGBBAA" color strings
//
// # Coordinate System
//
// All pixel coordinates are 0-based with the origin at the top-left corner.
// Rectangles follow image.Rectangle: Min is inclusive and Max exclusive.
//
// # Thread Safety
//
// Raster is stateless and every Ops method returns a new image, so one Raster
// may be shared by concurrent compositions. ImageCache is safe for
// concurrent use; images it returns must not be modified.
//
// # Determinism
//
// All operations are pure functions of their inputs. Encoding the same image
// twice produces identical bytes, which the composition engine relies on for
// reproducible output.
package imaging
