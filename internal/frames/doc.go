// Package frames catalogs device bezel assets and picks the right one for a
// screenshot.
//
// # Registry
//
// A Registry is an ordered, immutable list of DeviceFrame values. It is built
// once at startup, either from the bundled table (DefaultRegistry) or from a
// project manifest directory (Load), and is then passed explicitly to the
// Matcher and the composition engine. Nothing mutates a registry after it is
// built, so concurrent reads need no locking.
//
// # Manifest Format
//
// A manifest directory holds frames.json, one PNG per bezel and optional
// "<name>_mask.png" alpha masks:
//
//	{
//	  "phone": {
//	    "iPhone 15 Pro": {
//	      "Portrait":  {"name": "iPhone 15 Pro - Natural - Portrait",  "x": 75, "y": 72},
//	      "Landscape": {"name": "iPhone 15 Pro - Natural - Landscape", "x": 72, "y": 75}
//	    }
//	  },
//	  "watch": {
//	    "Apple Watch Ultra 2": {"name": "Ultra 2", "x": 60, "y": 150}
//	  }
//	}
//
// The screen cutout is the asset size minus the x/y offsets on each side,
// snapped to the precise device resolution when the two are within 5%.
// Entries without offsets have their cutout detected from the transparent
// screen opening of the asset.
//
// # Matching
//
// Matcher.Match applies, in order: a user-preferred frame (ignored when its
// orientation or device type conflicts), the table of well-known Apple
// screenshot resolutions, an exact screen-size match, and finally the
// nearest screen aspect ratio. Ties on aspect ratio go to the frame
// registered first.
//
// # Tuning
//
// Device-specific constants (scale multipliers, iPhone corner radii, watch
// caption rules) live in the Tuning table returned by DefaultTuning.
package frames
