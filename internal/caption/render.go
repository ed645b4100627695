package caption

import (
	"fmt"
	"image"
	"math"
	"os"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/ironsheep/appshot-frames/internal/imaging"
)

// bundledFonts maps Style.Font names to embedded Go font files.
var bundledFonts = map[string][]byte{
	"regular": goregular.TTF,
	"medium":  gomedium.TTF,
	"bold":    gobold.TTF,
	"mono":    gomono.TTF,
}

// Renderer draws caption layouts. Parsed fonts are cached; faces are created
// per call, so a Renderer is safe for concurrent use.
type Renderer struct {
	mu    sync.Mutex
	fonts map[string]*opentype.Font
}

// NewRenderer creates a renderer with an empty font cache.
func NewRenderer() *Renderer {
	return &Renderer{fonts: make(map[string]*opentype.Font)}
}

// loadFont returns the parsed font for a bundled name or a font file path.
func (r *Renderer) loadFont(name string) (*opentype.Font, error) {
	key := strings.TrimSpace(name)
	if key == "" {
		key = "bold"
	}
	if _, ok := bundledFonts[strings.ToLower(key)]; ok {
		key = strings.ToLower(key)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if f, ok := r.fonts[key]; ok {
		return f, nil
	}

	data, ok := bundledFonts[key]
	if !ok {
		var err error
		data, err = os.ReadFile(key)
		if err != nil {
			return nil, fmt.Errorf("font %q: %w", name, err)
		}
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("font %q: %w", name, err)
	}
	r.fonts[key] = f
	return f, nil
}

func (r *Renderer) face(style Style, size float64) (font.Face, error) {
	f, err := r.loadFont(style.Font)
	if err != nil {
		return nil, err
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("font %q at %.1fpx: %w", style.Font, size, err)
	}
	return face, nil
}

// Render draws the layout's lines onto a transparent image width pixels wide.
// Each line is centered horizontally and the block of lines is centered
// vertically in the box. A block taller than layout.Height starts at the top
// and the image grows to hold every line.
func (r *Renderer) Render(layout Layout, width int, style Style) (*image.NRGBA, error) {
	style = style.WithDefaults()
	if width <= 0 || layout.Height <= 0 {
		return nil, fmt.Errorf("invalid caption box %dx%d", width, layout.Height)
	}
	textColor, err := imaging.ParseColor(style.Color)
	if err != nil {
		return nil, fmt.Errorf("caption color: %w", err)
	}
	face, err := r.face(style, layout.FontSize)
	if err != nil {
		return nil, err
	}
	defer face.Close()

	layer := image.NewNRGBA(image.Rect(0, 0, width, layout.RenderHeight()))
	d := &font.Drawer{
		Dst:  layer,
		Src:  image.NewUniform(textColor),
		Face: face,
	}

	m := face.Metrics()
	ascent, descent := m.Ascent.Ceil(), m.Descent.Ceil()
	advance := layout.FontSize * layout.LineHeight
	top := math.Max(0, (float64(layout.Height)-layout.BlockHeight())/2)

	for i, line := range layout.Lines {
		lineTop := top + float64(i)*advance
		baseline := int(lineTop+(advance-float64(ascent+descent))/2) + ascent
		x := (width - d.MeasureString(line).Round()) / 2
		d.Dot = fixed.P(x, baseline)
		d.DrawString(line)
	}
	return layer, nil
}

// MeasureString measures text with the named font. It implements Measurer
// for callers that want exact widths instead of the estimate; unknown fonts
// fall back to the estimate.
func (r *Renderer) MeasureString(text string, fontSize float64) float64 {
	return r.MeasureStringWith(DefaultStyle().Font, text, fontSize)
}

// MeasureStringWith measures text with a specific font name or path.
func (r *Renderer) MeasureStringWith(fontName, text string, fontSize float64) float64 {
	face, err := r.face(Style{Font: fontName}, fontSize)
	if err != nil {
		return EstimateMeasurer{}.MeasureString(text, fontSize)
	}
	defer face.Close()
	return float64(font.MeasureString(face, text)) / 64
}
