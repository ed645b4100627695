package imaging

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sort"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ColorStop is one color of a gradient at a position between 0 and 1.
type ColorStop struct {
	Color    string  `json:"color"`
	Position float64 `json:"position"`
}

// Gradient is a linear gradient. Angle follows CSS: 0 points up, 90 right,
// 180 down. A nil Angle is 180.
type Gradient struct {
	Stops []ColorStop `json:"stops"`
	Angle *float64    `json:"angle,omitempty"`
}

// DefaultGradientAngle is used when a Gradient has no Angle.
const DefaultGradientAngle = 180

// Degrees returns a pointer to deg for Gradient.Angle.
func Degrees(deg float64) *float64 {
	return &deg
}

// DefaultGradient is drawn when a composition supplies no background at all.
var DefaultGradient = Gradient{
	Stops: []ColorStop{
		{Color: "#667EEA", Position: 0},
		{Color: "#764BA2", Position: 1},
	},
	Angle: Degrees(135),
}

type parsedStop struct {
	pos   float64
	color colorful.Color
	alpha float64
}

// LinearGradient renders g onto a new width x height image.
//
// Colors between stops are interpolated in RGB. Stops are sorted by
// position; a single stop fills the image with its color.
func LinearGradient(width, height int, g Gradient) (*image.NRGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid gradient size %dx%d", width, height)
	}
	if len(g.Stops) == 0 {
		return nil, fmt.Errorf("gradient has no color stops")
	}

	stops := make([]parsedStop, len(g.Stops))
	for i, s := range g.Stops {
		c, err := ParseColor(s.Color)
		if err != nil {
			return nil, fmt.Errorf("stop %d: %w", i, err)
		}
		cf, _ := colorful.MakeColor(color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255})
		stops[i] = parsedStop{pos: clamp01(s.Position), color: cf, alpha: float64(c.A) / 255}
	}
	sort.SliceStable(stops, func(i, j int) bool { return stops[i].pos < stops[j].pos })

	angle := float64(DefaultGradientAngle)
	if g.Angle != nil {
		angle = *g.Angle
	}
	rad := angle * math.Pi / 180
	dx, dy := math.Sin(rad), -math.Cos(rad)
	length := math.Abs(float64(width)*dx) + math.Abs(float64(height)*dy)
	cx, cy := float64(width)/2, float64(height)/2

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			px, py := float64(x)+0.5-cx, float64(y)+0.5-cy
			t := 0.5
			if length > 0 {
				t = (px*dx+py*dy)/length + 0.5
			}
			img.SetNRGBA(x, y, colorAt(stops, clamp01(t)))
		}
	}
	return img, nil
}

// colorAt returns the gradient color at position t.
func colorAt(stops []parsedStop, t float64) color.NRGBA {
	first, last := stops[0], stops[len(stops)-1]
	switch {
	case t <= first.pos:
		return toNRGBA(first.color, first.alpha)
	case t >= last.pos:
		return toNRGBA(last.color, last.alpha)
	}
	for i := 1; i < len(stops); i++ {
		a, b := stops[i-1], stops[i]
		if t > b.pos {
			continue
		}
		span := b.pos - a.pos
		if span <= 0 {
			return toNRGBA(b.color, b.alpha)
		}
		f := (t - a.pos) / span
		return toNRGBA(a.color.BlendRgb(b.color, f), a.alpha+(b.alpha-a.alpha)*f)
	}
	return toNRGBA(last.color, last.alpha)
}

func toNRGBA(c colorful.Color, alpha float64) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(alpha * 255))}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
