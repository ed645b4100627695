package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/channel"
	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

// Ops is the set of raster operations the composition pipeline needs.
//
// Matching, layout and placement code only talks to Ops, so tests can
// inject a recording implementation and assert on the calls made. Raster is
// the production implementation.
//
// Every method returns a new image; inputs are never modified.
type Ops interface {
	// Decode parses a PNG, JPEG, GIF, BMP or TIFF buffer.
	Decode(data []byte) (image.Image, error)
	// Encode writes img as PNG.
	Encode(img image.Image) ([]byte, error)
	// New returns a width x height canvas filled with fill.
	New(width, height int, fill color.Color) *image.NRGBA
	// Resize scales img to exactly width x height (non-uniform allowed).
	Resize(img image.Image, width, height int) *image.NRGBA
	// Crop returns the part of img inside rect.
	Crop(img image.Image, rect image.Rectangle) *image.NRGBA
	// Overlay draws src over dst with its top-left corner at at.
	Overlay(dst, src image.Image, at image.Point) *image.NRGBA
	// Insert scales src into rect of dst, drawing it over what is there.
	Insert(dst, src image.Image, rect image.Rectangle) *image.NRGBA
	// RedChannel extracts the red channel of img as a grayscale image.
	RedChannel(img image.Image) *image.Gray
	// ApplyAlpha replaces the alpha of img with alpha, keeping RGB.
	ApplyAlpha(img image.Image, alpha *image.Gray) (*image.NRGBA, error)
	// Flatten composites img over an opaque bg so every pixel is opaque.
	Flatten(img image.Image, bg color.Color) *image.NRGBA
}

// Raster implements Ops with disintegration/imaging for resampling and
// compositing, bild for channel extraction and x/image/draw for scaled
// insertion.
type Raster struct{}

// NewRaster returns the production raster implementation.
func NewRaster() Raster { return Raster{} }

var _ Ops = Raster{}

func (Raster) Decode(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("failed to decode image: empty buffer")
	}
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

func (Raster) Encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}

func (Raster) New(width, height int, fill color.Color) *image.NRGBA {
	return imaging.New(width, height, fill)
}

func (Raster) Resize(img image.Image, width, height int) *image.NRGBA {
	if width <= 0 || height <= 0 {
		return &image.NRGBA{}
	}
	b := img.Bounds()
	if b.Dx() == width && b.Dy() == height {
		return imaging.Clone(img)
	}
	return imaging.Resize(img, width, height, imaging.Lanczos)
}

func (Raster) Crop(img image.Image, rect image.Rectangle) *image.NRGBA {
	return imaging.Crop(img, rect)
}

func (Raster) Overlay(dst, src image.Image, at image.Point) *image.NRGBA {
	return imaging.Overlay(dst, src, at, 1.0)
}

func (Raster) Insert(dst, src image.Image, rect image.Rectangle) *image.NRGBA {
	out := imaging.Clone(dst)
	sb := src.Bounds()
	if sb.Dx() == rect.Dx() && sb.Dy() == rect.Dy() {
		draw.Draw(out, rect, src, sb.Min, draw.Over)
		return out
	}
	draw.CatmullRom.Scale(out, rect, src, sb, draw.Over, nil)
	return out
}

func (Raster) RedChannel(img image.Image) *image.Gray {
	return channel.Extract(img, channel.Red)
}

func (Raster) ApplyAlpha(img image.Image, alpha *image.Gray) (*image.NRGBA, error) {
	b := img.Bounds()
	ab := alpha.Bounds()
	if b.Dx() != ab.Dx() || b.Dy() != ab.Dy() {
		return nil, fmt.Errorf("alpha mask is %dx%d, image is %dx%d", ab.Dx(), ab.Dy(), b.Dx(), b.Dy())
	}
	out := imaging.Clone(img)
	for y := 0; y < b.Dy(); y++ {
		row := out.Pix[y*out.Stride : y*out.Stride+b.Dx()*4]
		arow := alpha.Pix[y*alpha.Stride:]
		for x := 0; x < b.Dx(); x++ {
			row[x*4+3] = arow[x]
		}
	}
	return out, nil
}

func (Raster) Flatten(img image.Image, bg color.Color) *image.NRGBA {
	b := img.Bounds()
	base := imaging.New(b.Dx(), b.Dy(), opaque(bg))
	return imaging.Overlay(base, img, image.Point{}, 1.0)
}

// opaque drops any transparency from c.
func opaque(c color.Color) color.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = 255
	return n
}
