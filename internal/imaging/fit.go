package imaging

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"
)

// FitMode controls how a background image is mapped onto the canvas.
type FitMode string

const (
	// FitCover scales to cover the canvas and crops the overflow, centered.
	FitCover FitMode = "cover"
	// FitContain scales to fit inside the canvas, letterboxed.
	FitContain FitMode = "contain"
	// FitFill stretches to the canvas size.
	FitFill FitMode = "fill"
	// FitScaleDown behaves like contain but never enlarges the image.
	FitScaleDown FitMode = "scale-down"
)

// ParseFitMode accepts the CSS object-fit names. Empty means cover.
func ParseFitMode(s string) (FitMode, error) {
	switch m := FitMode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return FitCover, nil
	case FitCover, FitContain, FitFill, FitScaleDown:
		return m, nil
	}
	return "", fmt.Errorf("unknown fit mode %q (expected cover, contain, fill or scale-down)", s)
}

// FitBackground maps img onto a width x height canvas according to mode.
// Areas the image does not cover (contain and scale-down) are filled with
// base.
func FitBackground(ops Ops, img image.Image, width, height int, mode FitMode, base color.Color) *image.NRGBA {
	b := img.Bounds()
	iw, ih := float64(b.Dx()), float64(b.Dy())
	sx, sy := float64(width)/iw, float64(height)/ih

	switch mode {
	case FitFill:
		return ops.Resize(img, width, height)

	case FitContain, FitScaleDown:
		scale := math.Min(sx, sy)
		if mode == FitScaleDown {
			scale = math.Min(scale, 1)
		}
		w := max(1, int(math.Round(iw*scale)))
		h := max(1, int(math.Round(ih*scale)))
		canvas := ops.New(width, height, base)
		return ops.Overlay(canvas, ops.Resize(img, w, h), image.Pt((width-w)/2, (height-h)/2))

	default:
		scale := math.Max(sx, sy)
		w := max(width, int(math.Ceil(iw*scale)))
		h := max(height, int(math.Ceil(ih*scale)))
		scaled := ops.Resize(img, w, h)
		x0, y0 := (w-width)/2, (h-height)/2
		return ops.Crop(scaled, image.Rect(x0, y0, x0+width, y0+height))
	}
}
