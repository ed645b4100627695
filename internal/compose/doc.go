// Package compose renders App Store marketing images from a screenshot, an
// optional device frame, a caption and a background.
//
// # Pipeline
//
// Engine.Compose adds one layer at a time to a canvas of the requested
// output size:
//
//  1. Background: an image (cover, contain, fill or scale-down), else a
//     gradient, else a solid color, else imaging.DefaultGradient.
//  2. Caption layout: the caption reserves space at the top of the canvas
//     (nothing in overlay mode). See package caption.
//  3. Device: with a frame, the screenshot is masked, inserted into the
//     frame's screen rectangle and covered by the bezel art, optionally
//     cropped to its top part, then scaled by
//     min(W/frameWidth, (H-caption)/frameHeight) times a per-device
//     multiplier. Without a frame, the screenshot is fitted below the
//     caption and never enlarged.
//  4. Placement: DeviceY positions the device ("top", "center", "bottom" or
//     a percentage). Watches default to a bottom-biased placement that
//     shows the top 75% of the device.
//  5. Caption text is drawn over everything, then the canvas is flattened
//     to an opaque PNG.
//
// # Failure Semantics
//
// Composition degrades instead of failing wherever a reduced result is
// still useful. A missing bezel, an unmatched device, an unreadable mask or
// a caption that cannot be drawn all produce a Degraded result with
// warnings. Only an undecodable screenshot, an invalid output size or an
// encoding error is Fatal, carrying an *outcome.RenderError with the device
// and screenshot identifier.
//
// # Concurrency
//
// Compose has no shared mutable state beyond the asset cache, so an Engine
// may be used from many goroutines. ComposeBatch bounds the number of
// compositions in flight and keeps result order. Identical requests produce
// byte-identical PNGs.
package compose
