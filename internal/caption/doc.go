// Package caption computes caption geometry and draws caption text for
// marketing screenshots.
//
// Layout and drawing are separate steps. A Layouter turns text, canvas size
// and Style into a Layout: the reserved height, the wrapped lines and the
// effective font size. Layouts only depend on a Measurer; the default
// EstimateMeasurer uses runes x size x 0.52, so the same request always
// produces the same lines on any machine. A Renderer then draws a Layout
// with the bundled Go fonts (or a font file) using golang.org/x/image.
//
// # Watch Canvases
//
// Canvases narrower than 500px follow fixed rules: the caption takes exactly
// a third of the canvas height, the font is capped at 36px and text wraps
// into at most three lines.
//
// # Text Is Never Lost
//
// Wrapping never truncates or ellipsizes. When the line limit is reached the
// remaining words join the last line, and height clamps (MinHeight,
// MaxHeight, available space) only remove padding: a box is never shorter
// than its lines.
package caption
