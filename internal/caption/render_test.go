package caption

import (
	"image"
	"os"
	"path/filepath"
	"testing"
)

// inkBounds returns the bounding box of pixels with any alpha.
func inkBounds(img *image.NRGBA) image.Rectangle {
	var r image.Rectangle
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.NRGBAAt(x, y).A > 0 {
				r = r.Union(image.Rect(x, y, x+1, y+1))
			}
		}
	}
	return r
}

func TestRenderer_Render(t *testing.T) {
	r := NewRenderer()
	style := DefaultStyle()
	layout := LayoutCaption("Track workouts", 1000, 2000, style, 0, 0, "")

	img, err := r.Render(layout, 1000, style)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 1000 || b.Dy() != layout.Height {
		t.Fatalf("size: got %v, want 1000x%d", b, layout.Height)
	}

	ink := inkBounds(img)
	if ink.Empty() {
		t.Fatal("no text drawn")
	}
	// Centered horizontally within a few pixels.
	left, right := ink.Min.X, 1000-ink.Max.X
	if d := left - right; d < -8 || d > 8 {
		t.Errorf("text not centered: left margin %d, right margin %d", left, right)
	}
	// Centered vertically: the ink sits away from both edges.
	if ink.Min.Y < 20 || ink.Max.Y > layout.Height-20 {
		t.Errorf("text not vertically centered: %v in height %d", ink, layout.Height)
	}
	if c := img.NRGBAAt(0, 0); c.A != 0 {
		t.Errorf("background must stay transparent: %v", c)
	}
}

func TestRenderer_WatchOverflowKeepsEveryLine(t *testing.T) {
	r := NewRenderer()
	style := DefaultStyle()
	layout := LayoutCaption("Track every single workout with beautiful detailed charts today", 368, 300, style, 0, 0, "")
	if !layout.Watch || !layout.Overflow || len(layout.Lines) != 3 || layout.Height != 100 {
		t.Fatalf("expected an overflowing 3-line watch layout in 100px, got %+v", layout)
	}

	img, err := r.Render(layout, 368, style)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if got, want := img.Bounds().Dy(), layout.RenderHeight(); got != want || want <= layout.Height {
		t.Fatalf("layer height: got %d, want %d (> %d)", got, want, layout.Height)
	}
	ink := inkBounds(img)
	if ink.Min.Y <= 0 || ink.Max.Y >= img.Bounds().Dy() {
		t.Errorf("glyphs touch the layer edge and may be clipped: ink %v in height %d", ink, img.Bounds().Dy())
	}
}

func TestRenderer_MultiLineStacks(t *testing.T) {
	r := NewRenderer()
	style := DefaultStyle()
	one := LayoutCaption("Track", 1000, 2000, style, 0, 0, "")
	two := Layout{Height: one.Height * 2, Lines: []string{"Track", "Track"}, FontSize: one.FontSize, LineHeight: one.LineHeight}

	a, err := r.Render(one, 1000, style)
	if err != nil {
		t.Fatal(err)
	}
	b, err := r.Render(two, 1000, style)
	if err != nil {
		t.Fatal(err)
	}
	if inkBounds(b).Dy() <= inkBounds(a).Dy() {
		t.Error("two lines should cover more height than one")
	}
}

func TestRenderer_Errors(t *testing.T) {
	r := NewRenderer()
	layout := LayoutCaption("Hello", 1000, 2000, DefaultStyle(), 0, 0, "")

	bad := DefaultStyle()
	bad.Font = filepath.Join(t.TempDir(), "missing.ttf")
	if _, err := r.Render(layout, 1000, bad); err == nil {
		t.Error("missing font file should fail")
	}

	notFont := filepath.Join(t.TempDir(), "bogus.ttf")
	os.WriteFile(notFont, []byte("not a font"), 0o644)
	bad.Font = notFont
	if _, err := r.Render(layout, 1000, bad); err == nil {
		t.Error("invalid font file should fail")
	}

	bad = DefaultStyle()
	bad.Color = "not-a-color"
	if _, err := r.Render(layout, 1000, bad); err == nil {
		t.Error("invalid color should fail")
	}

	if _, err := r.Render(Layout{}, 1000, DefaultStyle()); err == nil {
		t.Error("zero-height layout should fail")
	}
}

func TestRenderer_MeasureString(t *testing.T) {
	r := NewRenderer()
	short := r.MeasureString("Hi", 40)
	long := r.MeasureString("Hello there", 40)
	if short <= 0 || long <= short {
		t.Errorf("widths: %v, %v", short, long)
	}
	if got := r.MeasureStringWith("/no/such/font.ttf", "abcd", 10); got != (EstimateMeasurer{}).MeasureString("abcd", 10) {
		t.Errorf("unknown font should fall back to the estimate, got %v", got)
	}
}

func TestRenderer_BundledFonts(t *testing.T) {
	r := NewRenderer()
	for name := range bundledFonts {
		if _, err := r.loadFont(name); err != nil {
			t.Errorf("bundled font %s: %v", name, err)
		}
	}
	if _, err := r.loadFont("Bold"); err != nil {
		t.Errorf("font names are case-insensitive: %v", err)
	}
}
