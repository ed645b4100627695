package detection

import (
	"fmt"
	"image"
)

// Bounds represents a rectangular bounding box in pixel coordinates.
//
// (X1, Y1) is the top-left corner (inclusive) and (X2, Y2) the bottom-right
// corner (exclusive), matching image.Rectangle.
type Bounds struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// Width returns X2 - X1.
func (b Bounds) Width() int { return b.X2 - b.X1 }

// Height returns Y2 - Y1.
func (b Bounds) Height() int { return b.Y2 - b.Y1 }

// Point represents a 2D coordinate in pixel space.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Cutout describes the transparent screen opening of a device bezel.
type Cutout struct {
	Bounds

	// Area is the number of transparent pixels in the opening. It is smaller
	// than Width*Height when the opening has rounded corners.
	Area int `json:"area"`

	// CornerRadius estimates the opening's corner radius from the inset of
	// its first row.
	CornerRadius int `json:"corner_radius"`
}

// DetectScreenCutout finds the transparent opening in a bezel image.
//
// The fill starts at the image center and spreads over 4-connected pixels
// whose alpha is at most alphaThreshold (0-255). The opening must be fully
// enclosed by the bezel: a region that reaches the image border means the
// asset has no screen cutout, or the center is not inside it.
//
// Coordinates are in the image's own coordinate space (they include
// img.Bounds().Min).
func DetectScreenCutout(img image.Image, alphaThreshold uint8) (Cutout, error) {
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()
	if width < 3 || height < 3 {
		return Cutout{}, fmt.Errorf("image too small for a screen cutout: %dx%d", width, height)
	}

	open := func(x, y int) bool {
		return alphaAt(img, x+b.Min.X, y+b.Min.Y) <= alphaThreshold
	}

	seed := Point{X: width / 2, Y: height / 2}
	if !open(seed.X, seed.Y) {
		return Cutout{}, fmt.Errorf("image center (%d,%d) is opaque", seed.X+b.Min.X, seed.Y+b.Min.Y)
	}

	region := make([]bool, width*height)
	minX, minY, maxX, maxY := seed.X, seed.Y, seed.X, seed.Y
	area := 0

	stack := []Point{seed}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.X < 0 || p.X >= width || p.Y < 0 || p.Y >= height {
			continue
		}
		idx := p.Y*width + p.X
		if region[idx] || !open(p.X, p.Y) {
			continue
		}
		if p.X == 0 || p.Y == 0 || p.X == width-1 || p.Y == height-1 {
			return Cutout{}, fmt.Errorf("transparent region reaches the image border at (%d,%d)", p.X+b.Min.X, p.Y+b.Min.Y)
		}

		region[idx] = true
		area++
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)

		stack = append(stack,
			Point{X: p.X + 1, Y: p.Y},
			Point{X: p.X - 1, Y: p.Y},
			Point{X: p.X, Y: p.Y + 1},
			Point{X: p.X, Y: p.Y - 1},
		)
	}

	radius := 0
	for x := minX; x <= maxX; x++ {
		if region[minY*width+x] {
			radius = x - minX
			break
		}
	}

	return Cutout{
		Bounds: Bounds{
			X1: minX + b.Min.X,
			Y1: minY + b.Min.Y,
			X2: maxX + 1 + b.Min.X,
			Y2: maxY + 1 + b.Min.Y,
		},
		Area:         area,
		CornerRadius: radius,
	}, nil
}

// alphaAt returns the 8-bit alpha of a pixel, reading NRGBA and RGBA
// buffers directly.
func alphaAt(img image.Image, x, y int) uint8 {
	switch m := img.(type) {
	case *image.NRGBA:
		return m.Pix[m.PixOffset(x, y)+3]
	case *image.RGBA:
		return m.Pix[m.PixOffset(x, y)+3]
	}
	_, _, _, a := img.At(x, y).RGBA()
	return uint8(a >> 8)
}
