package mask

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/ironsheep/appshot-frames/internal/frames"
	"github.com/ironsheep/appshot-frames/internal/imaging"
	"github.com/ironsheep/appshot-frames/internal/outcome"
)

func newTestEngine() *Engine {
	return NewEngine(imaging.NewRaster(), nil, frames.DefaultTuning(), log.New(io.Discard, "", 0))
}

func createScreenshot(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, color.NRGBA{40, 80, 120, 255})
		}
	}
	return img
}

// writeMask writes a mask whose left half is white and right half black.
func writeMask(t *testing.T, width, height int) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := uint8(0)
			if x < width/2 {
				v = 255
			}
			img.SetNRGBA(x, y, color.NRGBA{v, v, v, 255})
		}
	}
	path := filepath.Join(t.TempDir(), "device_mask.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func iphone(display string) frames.DeviceFrame {
	return frames.DeviceFrame{Name: frames.NormalizeName(display), DisplayName: display, DeviceType: frames.IPhone}
}

func TestApplyScreenMask_RoundedCorners(t *testing.T) {
	e := newTestEngine()
	shot := createScreenshot(200, 400)

	tests := []struct {
		display    string
		wantRadius float64
	}{
		{"iPhone 15 Pro Max", 24},
		{"iPhone 16 Pro", 24},
		{"iPhone 15", 20},
		{"iPhone 11 Pro Max", 20},
	}
	for _, tt := range tests {
		t.Run(tt.display, func(t *testing.T) {
			res := e.ApplyScreenMask(shot, iphone(tt.display))
			if !res.IsOK() {
				t.Fatalf("status: got %s", res.Status)
			}
			m := res.Value
			if m.Method != MethodRoundedRect || m.Radius != tt.wantRadius {
				t.Fatalf("got %s radius %v, want rounded-rect radius %v", m.Method, m.Radius, tt.wantRadius)
			}
			out := m.Image.(*image.NRGBA)
			if a := out.NRGBAAt(0, 0).A; a != 0 {
				t.Errorf("corner alpha: got %d", a)
			}
			if c := out.NRGBAAt(100, 200); c != (color.NRGBA{40, 80, 120, 255}) {
				t.Errorf("center pixel changed: %v", c)
			}
		})
	}
}

func TestApplyScreenMask_SquareCornerModels(t *testing.T) {
	e := newTestEngine()
	shot := createScreenshot(100, 200)
	for _, display := range []string{"iPhone SE", "iPhone 8 Plus"} {
		res := e.ApplyScreenMask(shot, iphone(display))
		if res.Value.Method != MethodNone || res.Value.Image != image.Image(shot) {
			t.Errorf("%s should pass through, got %s", display, res.Value.Method)
		}
	}
}

func TestApplyScreenMask_OtherDevicesPassThrough(t *testing.T) {
	e := newTestEngine()
	shot := createScreenshot(100, 80)
	for _, dt := range []frames.DeviceType{frames.IPad, frames.Mac, frames.Watch} {
		res := e.ApplyScreenMask(shot, frames.DeviceFrame{Name: "x", DisplayName: "Pro", DeviceType: dt})
		if !res.IsOK() || res.Value.Method != MethodNone || res.Value.Image != image.Image(shot) {
			t.Errorf("%s: got %s %s", dt, res.Status, res.Value.Method)
		}
	}
}

func TestApplyScreenMask_File(t *testing.T) {
	e := newTestEngine()
	shot := createScreenshot(40, 20)
	frame := frames.DeviceFrame{Name: "ipad", DeviceType: frames.IPad, MaskPath: writeMask(t, 10, 10)}

	res := e.ApplyScreenMask(shot, frame)
	if !res.IsOK() {
		t.Fatalf("status: got %s (%v)", res.Status, res.Reason)
	}
	if res.Value.Method != MethodFile {
		t.Fatalf("method: got %s", res.Value.Method)
	}
	out := res.Value.Image.(*image.NRGBA)
	if b := out.Bounds(); b.Dx() != 40 || b.Dy() != 20 {
		t.Fatalf("masked size: got %v", b)
	}
	if c := out.NRGBAAt(2, 10); c.A < 254 || c.R != 40 {
		t.Errorf("white mask area: got %v", c)
	}
	if c := out.NRGBAAt(37, 10); c.A > 1 || c.B != 120 {
		t.Errorf("black mask area: got %v", c)
	}
}

func TestApplyScreenMask_MissingFileDegrades(t *testing.T) {
	e := newTestEngine()
	shot := createScreenshot(100, 200)
	frame := iphone("iPhone 15 Pro")
	frame.MaskPath = filepath.Join(t.TempDir(), "absent_mask.png")

	res := e.ApplyScreenMask(shot, frame)
	if !res.IsDegraded() {
		t.Fatalf("status: got %s", res.Status)
	}
	if !errors.Is(res.Reason, outcome.ErrAssetMissing) {
		t.Errorf("reason: got %v", res.Reason)
	}
	if res.Value.Method != MethodRoundedRect {
		t.Errorf("should fall back to the rounded mask, got %s", res.Value.Method)
	}

	frame.DeviceType = frames.Watch
	res = e.ApplyScreenMask(shot, frame)
	if !res.IsDegraded() || res.Value.Method != MethodNone {
		t.Errorf("watch fallback: got %s %s", res.Status, res.Value.Method)
	}
}
