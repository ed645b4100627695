package caption

import (
	"math"
	"strings"

	"github.com/ironsheep/appshot-frames/internal/frames"
)

// Layout is the computed geometry of a caption.
type Layout struct {
	// Height is the number of pixels reserved at the top of the canvas.
	Height int `json:"height"`
	// Lines are the wrapped caption lines in display order.
	Lines      []string `json:"lines"`
	FontSize   float64  `json:"font_size"`
	LineHeight float64  `json:"line_height"`
	// Watch is set when the canvas is narrow enough to use watch rules.
	Watch bool `json:"watch"`
	// Overflow is set when the text did not fit the space the box was
	// allowed to take and Height grew past the bounds to keep every line.
	Overflow bool `json:"overflow,omitempty"`
}

// BlockHeight is the height of the stacked lines without padding.
func (l Layout) BlockHeight() float64 {
	return float64(len(l.Lines)) * l.FontSize * l.LineHeight
}

// RenderHeight is the height a rendered caption needs: Height, or the line
// block when the block overflows the reserved space.
func (l Layout) RenderHeight() int {
	return max(l.Height, ceil(l.BlockHeight()))
}

// Text returns the lines joined by single spaces.
func (l Layout) Text() string {
	return strings.Join(l.Lines, " ")
}

// Layouter computes caption layouts. The zero value is not usable; use
// NewLayouter.
type Layouter struct {
	tuning   frames.Tuning
	measurer Measurer
}

// NewLayouter creates a layouter. A nil measurer uses EstimateMeasurer.
func NewLayouter(tuning frames.Tuning, measurer Measurer) *Layouter {
	if measurer == nil {
		measurer = EstimateMeasurer{}
	}
	return &Layouter{tuning: tuning, measurer: measurer}
}

// LayoutCaption lays out text with the default tuning and width estimate.
func LayoutCaption(text string, canvasWidth, canvasHeight int, style Style, deviceTop, deviceHeight int, framePosition string) Layout {
	return NewLayouter(frames.DefaultTuning(), nil).Layout(text, canvasWidth, canvasHeight, style, deviceTop, deviceHeight, framePosition)
}

// Layout computes the caption box for a canvas.
//
// Canvases narrower than the watch threshold reserve exactly a third of the
// canvas height, cap the font size and wrap into at most three lines.
// Otherwise the height is padding plus the wrapped block: with AutoSize the
// text wraps freely and the box may take at most the space the device leaves
// free, without it the text wraps to Box.MaxLines. Both are then clamped to
// Box.MinHeight and Box.MaxHeight, but never below the height of the lines
// themselves.
//
// deviceTop and deviceHeight describe where the device will be drawn; zero
// means unknown. framePosition is the requested device placement ("top",
// "center", "bottom" or a percentage).
func (l *Layouter) Layout(text string, canvasWidth, canvasHeight int, style Style, deviceTop, deviceHeight int, framePosition string) Layout {
	style = style.WithDefaults()
	if strings.TrimSpace(text) == "" || canvasWidth <= 0 || canvasHeight <= 0 {
		return Layout{FontSize: style.FontSize, LineHeight: style.Box.LineHeight}
	}

	if l.tuning.IsWatchCanvas(canvasWidth) {
		return l.watchLayout(text, canvasWidth, canvasHeight, style)
	}

	out := Layout{FontSize: style.FontSize, LineHeight: style.Box.LineHeight}
	maxWidth := float64(canvasWidth - 2*style.PaddingX)
	padding := style.PaddingTop + style.PaddingBottom

	if style.Box.autoSize() {
		out.Lines = Wrap(text, maxWidth, out.FontSize, 0, l.measurer)
		block := ceil(out.BlockHeight())
		h := padding + block
		if avail := availableHeight(canvasHeight, deviceTop, deviceHeight, framePosition); h > avail {
			out.Overflow = block > avail
			h = avail
		}
		out.Height = clampHeight(h, block, style.Box)
		return out
	}

	out.Lines = Wrap(text, maxWidth, out.FontSize, style.Box.MaxLines, l.measurer)
	block := ceil(out.BlockHeight())
	out.Height = clampHeight(padding+block, block, style.Box)
	out.Overflow = style.Box.MaxHeight > 0 && block > style.Box.MaxHeight
	return out
}

func (l *Layouter) watchLayout(text string, canvasWidth, canvasHeight int, style Style) Layout {
	fontSize := math.Min(style.FontSize, l.tuning.WatchMaxFontSize)
	padX := min(style.PaddingX, canvasWidth/10)
	lines := Wrap(text, float64(canvasWidth-2*padX), fontSize, l.tuning.WatchMaxLines, l.measurer)
	out := Layout{
		Height:     canvasHeight / l.tuning.WatchCaptionDivisor,
		Lines:      lines,
		FontSize:   fontSize,
		LineHeight: style.Box.LineHeight,
		Watch:      true,
	}
	out.Overflow = ceil(out.BlockHeight()) > out.Height
	return out
}

// availableHeight is the most the caption may take so the device still
// fits. A device pinned to the bottom leaves the space above its top; the
// other placements follow the caption and leave whatever the device height
// does not use.
func availableHeight(canvasHeight, deviceTop, deviceHeight int, framePosition string) int {
	switch {
	case deviceHeight <= 0:
		return canvasHeight / 2
	case deviceTop > 0 && strings.EqualFold(strings.TrimSpace(framePosition), "bottom"):
		return deviceTop
	}
	return max(0, canvasHeight-deviceHeight)
}

// clampHeight applies the configured bounds, then grows back to block so
// clamping only ever removes padding.
func clampHeight(h, block int, box BoxConfig) int {
	if box.MinHeight > 0 && h < box.MinHeight {
		h = box.MinHeight
	}
	if box.MaxHeight > 0 && h > box.MaxHeight {
		h = box.MaxHeight
	}
	return max(h, block)
}

func ceil(v float64) int {
	return int(math.Ceil(v - 1e-9))
}
