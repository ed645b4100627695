package frames

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/ironsheep/appshot-frames/internal/outcome"
)

// writeBezel writes a w x h bezel PNG named name+".png" into dir. The bezel is
// opaque except for the opening, which is transparent. An empty opening
// leaves the whole image opaque.
func writeBezel(t *testing.T, dir, name string, w, h int, opening image.Rectangle) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !(image.Pt(x, y).In(opening)) {
				img.SetNRGBA(x, y, color.NRGBA{30, 30, 30, 255})
			}
		}
	}
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("failed to create bezel: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode bezel: %v", err)
	}
}

func writeManifest(t *testing.T, dir, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, ManifestFileName), []byte(body), 0o644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}
}

func loadQuiet(dir string) outcome.Result[LoadResult] {
	return Load(dir, LoadOptions{Logger: quietLogger()})
}

func TestLoad_NoManifest(t *testing.T) {
	for name, dir := range map[string]string{"no dir": "", "empty dir": t.TempDir()} {
		t.Run(name, func(t *testing.T) {
			res := loadQuiet(dir)
			if !res.IsOK() {
				t.Fatalf("status: got %s (%v)", res.Status, res.Reason)
			}
			if res.Value.Source != SourceBundled {
				t.Errorf("source: got %s", res.Value.Source)
			}
			if res.Value.Registry.Len() != DefaultRegistry().Len() {
				t.Error("bundled registry incomplete")
			}
		})
	}
}

func TestLoad_MalformedManifest(t *testing.T) {
	tests := map[string]string{
		"not json":     "{not json",
		"not object":   `["phone"]`,
		"bad family":   `{"phone": 3}`,
		"no usable":    `{"phone": {"Ghost": {"name": "ghost", "x": 1, "y": 1}}}`,
		"only unknown": `{"tv": {"Box": {"name": "box"}}}`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			writeManifest(t, dir, body)

			res := loadQuiet(dir)
			if !res.IsDegraded() {
				t.Fatalf("status: got %s", res.Status)
			}
			if !errors.Is(res.Reason, outcome.ErrManifestInvalid) {
				t.Errorf("reason: got %v", res.Reason)
			}
			if res.Value.Source != SourceBundled || res.Value.Registry == nil {
				t.Errorf("must fall back to bundled frames, got %s", res.Value.Source)
			}
		})
	}
}

func TestLoad_Manifest(t *testing.T) {
	dir := t.TempDir()
	writeBezel(t, dir, "Test Phone Portrait.png", 120, 240, image.Rectangle{})
	writeBezel(t, dir, "test-phone-landscape.png", 240, 120, image.Rectangle{})
	writeBezel(t, dir, "test-watch.png", 100, 120, image.Rect(10, 10, 90, 110))
	writeBezel(t, dir, "test-watch_mask.png", 80, 100, image.Rectangle{})
	writeManifest(t, dir, `{
		"phone": {
			"Test Phone": {
				"Portrait":  {"name": "Test Phone Portrait", "x": 10, "y": 20},
				"Landscape": {"name": "test-phone-landscape", "x": 20, "y": 10}
			}
		},
		"tv": {"Box": {"name": "box"}},
		"watch": {
			"Test Watch": {"name": "test-watch"}
		}
	}`)

	res := loadQuiet(dir)
	if !res.IsOK() {
		t.Fatalf("status: got %s (%v)", res.Status, res.Reason)
	}
	if res.Value.Source != SourceManifest {
		t.Fatalf("source: got %s", res.Value.Source)
	}

	frames := res.Value.Registry.Frames()
	wantOrder := []string{"test-phone-portrait", "test-phone-landscape", "test-watch"}
	if len(frames) != len(wantOrder) {
		t.Fatalf("got %d frames, want %d", len(frames), len(wantOrder))
	}
	for i, name := range wantOrder {
		if frames[i].Name != name {
			t.Errorf("frame %d: got %s, want %s", i, frames[i].Name, name)
		}
	}

	portrait := frames[0]
	if portrait.ScreenRect != (Rect{X: 10, Y: 20, Width: 100, Height: 200}) {
		t.Errorf("portrait screen rect: got %+v", portrait.ScreenRect)
	}
	if portrait.OriginalName != "Test Phone Portrait" {
		t.Errorf("original name: got %q", portrait.OriginalName)
	}
	if portrait.DeviceType != IPhone || portrait.Orientation != Portrait {
		t.Errorf("portrait: got %s %s", portrait.DeviceType, portrait.Orientation)
	}
	if portrait.DisplayName != "Test Phone" {
		t.Errorf("display name: got %q", portrait.DisplayName)
	}

	landscape := frames[1]
	if landscape.OriginalName != "" {
		t.Errorf("unchanged name should not record an original: %q", landscape.OriginalName)
	}
	if landscape.Orientation != Landscape || landscape.ScreenRect.Width != 200 {
		t.Errorf("landscape: got %s %+v", landscape.Orientation, landscape.ScreenRect)
	}

	watch := frames[2]
	if watch.ScreenRect != (Rect{X: 10, Y: 10, Width: 80, Height: 100}) {
		t.Errorf("detected watch cutout: got %+v", watch.ScreenRect)
	}
	if watch.MaskPath != filepath.Join(dir, "test-watch_mask.png") {
		t.Errorf("mask path: got %q", watch.MaskPath)
	}
	if portrait.MaskPath != "" {
		t.Errorf("portrait has no mask file: got %q", portrait.MaskPath)
	}
	if watch.AssetPath != filepath.Join(dir, "test-watch.png") {
		t.Errorf("asset path: got %q", watch.AssetPath)
	}
}

func TestLoad_SnapsToKnownResolution(t *testing.T) {
	dir := t.TempDir()
	writeBezel(t, dir, "watch-ultra-2.png", 512, 604, image.Rectangle{})
	writeManifest(t, dir, `{"watch": {"Watch Ultra 2": {"name": "watch-ultra-2", "x": 50, "y": 50}}}`)

	res := loadQuiet(dir)
	if !res.IsOK() {
		t.Fatalf("status: got %s (%v)", res.Status, res.Reason)
	}
	f := res.Value.Registry.Frames()[0]
	if f.ScreenRect != (Rect{X: 50, Y: 50, Width: 410, Height: 502}) {
		t.Errorf("screen rect: got %+v, want the 410x502 known size", f.ScreenRect)
	}
}

func TestLoad_SkipsBadEntries(t *testing.T) {
	dir := t.TempDir()
	writeBezel(t, dir, "good.png", 120, 240, image.Rectangle{})
	writeBezel(t, dir, "sideways.png", 120, 240, image.Rectangle{})
	writeBezel(t, dir, "solid.png", 120, 240, image.Rectangle{})
	writeManifest(t, dir, `{
		"phone": {
			"Good":     {"Portrait": {"name": "good", "x": 10, "y": 10}},
			"Missing":  {"Portrait": {"name": "missing", "x": 10, "y": 10}},
			"Sideways": {"Landscape": {"name": "sideways", "x": 10, "y": 10}},
			"Solid":    {"name": "solid"},
			"Broken":   {"Portrait": 5}
		}
	}`)

	res := loadQuiet(dir)
	if !res.IsDegraded() {
		t.Fatalf("status: got %s", res.Status)
	}
	if res.Value.Source != SourceManifest {
		t.Fatalf("source: got %s", res.Value.Source)
	}
	if res.Value.Registry.Len() != 1 {
		t.Errorf("registry: got %d frames, want 1", res.Value.Registry.Len())
	}
	if _, ok := res.Value.Registry.Lookup("good"); !ok {
		t.Error("good entry missing")
	}
	if len(res.Value.Skipped) != 4 {
		t.Fatalf("skipped: got %d (%v), want 4", len(res.Value.Skipped), res.Value.Skipped)
	}
	if !errors.Is(res.Value.Skipped[0], outcome.ErrAssetMissing) {
		t.Errorf("missing asset: got %v", res.Value.Skipped[0])
	}
	if !errors.Is(res.Reason, outcome.ErrManifestInvalid) {
		t.Errorf("reason: got %v", res.Reason)
	}
}

func TestLoad_DuplicateNames(t *testing.T) {
	dir := t.TempDir()
	writeBezel(t, dir, "dup.png", 120, 240, image.Rectangle{})
	writeManifest(t, dir, `{
		"phone":  {"A": {"name": "dup", "x": 10, "y": 10}},
		"tablet": {"B": {"name": "dup", "x": 10, "y": 10}}
	}`)

	res := loadQuiet(dir)
	if !res.IsDegraded() || res.Value.Registry.Len() != 1 {
		t.Fatalf("duplicate should be skipped: status %s, %d frames", res.Status, res.Value.Registry.Len())
	}
	if f := res.Value.Registry.Frames()[0]; f.DeviceType != IPhone {
		t.Errorf("first entry should win, got %s", f.DeviceType)
	}
}

func TestParseManifest_Order(t *testing.T) {
	entries, err := parseManifest([]byte(`{
		"watch": {"Z": {"name": "z"}},
		"phone": {"B": {"name": "b"}, "A": {"name": "a"}}
	}`))
	if err != nil {
		t.Fatalf("parseManifest failed: %v", err)
	}
	want := []string{"z", "b", "a"}
	if len(entries) != len(want) {
		t.Fatalf("got %d entries", len(entries))
	}
	for i, name := range want {
		if entries[i].name != name {
			t.Errorf("entry %d: got %s, want %s", i, entries[i].name, name)
		}
	}
}
