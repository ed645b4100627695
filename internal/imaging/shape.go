package imaging

import (
	"image"
	"math"
)

// RoundedRectMask returns a width x height alpha mask that is opaque (255)
// inside a rectangle with rounded corners of the given radius and
// transparent outside it. Corner edges are antialiased by pixel-center
// distance. A radius <= 0 yields a fully opaque mask; radii larger than half
// the short side are reduced to it.
func RoundedRectMask(width, height int, radius float64) *image.Gray {
	mask := image.NewGray(image.Rect(0, 0, width, height))
	for i := range mask.Pix {
		mask.Pix[i] = 255
	}
	if radius <= 0 || width <= 0 || height <= 0 {
		return mask
	}
	radius = math.Min(radius, float64(min(width, height))/2)

	span := int(math.Ceil(radius))
	for y := 0; y < span; y++ {
		for x := 0; x < span; x++ {
			a := cornerAlpha(float64(x)+0.5, float64(y)+0.5, radius)
			if a == 255 {
				continue
			}
			// Mirror the top-left corner into the other three.
			mask.Pix[y*mask.Stride+x] = a
			mask.Pix[y*mask.Stride+(width-1-x)] = a
			mask.Pix[(height-1-y)*mask.Stride+x] = a
			mask.Pix[(height-1-y)*mask.Stride+(width-1-x)] = a
		}
	}
	return mask
}

// cornerAlpha is the coverage of the pixel centered at (px, py) for a
// top-left corner arc centered at (radius, radius).
func cornerAlpha(px, py, radius float64) uint8 {
	if px >= radius || py >= radius {
		return 255
	}
	d := math.Hypot(px-radius, py-radius)
	cover := radius - d + 0.5
	switch {
	case cover <= 0:
		return 0
	case cover >= 1:
		return 255
	}
	return uint8(math.Round(cover * 255))
}
