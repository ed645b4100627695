// Package detection locates features in device bezel artwork.
//
// Bezel assets are PNG images that are opaque where the device body is drawn
// and transparent where the screen shows through. DetectScreenCutout finds
// that opening so a manifest entry without explicit offsets can still be
// placed.
//
// # Algorithm
//
//  1. Seed: the pixel at the image center must be transparent.
//  2. Fill: an iterative 4-connected flood fill collects every pixel whose
//     alpha is at or below the threshold. The stack-based fill avoids
//     recursion depth problems on large screens.
//  3. Enclosure: if the fill reaches the image border the opening is not
//     enclosed and detection fails.
//  4. Measure: the bounding box, pixel area, and the inset of the first row
//     (an estimate of the corner radius) are returned.
//
// # Coordinate System
//
// All coordinates use the standard image convention:
//   - Origin at the top-left of img.Bounds()
//   - X increases rightward, Y increases downward
//   - Bounds use inclusive top-left and exclusive bottom-right
//
// # Limitations
//
// Bezels with a transparent dynamic island or notch are handled because those
// pixels are part of the same connected region. Bezels drawn with an opaque
// screen (for example a baked-in reflection) have no cutout to find; supply
// explicit offsets in the manifest for those.
package detection
