package frames

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"log"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/ironsheep/appshot-frames/internal/detection"
	"github.com/ironsheep/appshot-frames/internal/imaging"
	"github.com/ironsheep/appshot-frames/internal/outcome"
)

// ManifestFileName is the metadata file looked up inside a manifest directory.
const ManifestFileName = "frames.json"

// maskSuffix names the optional alpha mask stored next to a bezel asset.
const maskSuffix = "_mask.png"

// knownSizeTolerance is how far a manifest-derived screen size may differ
// from a known device resolution and still be snapped to it.
const knownSizeTolerance = 0.05

// cutoutAlphaThreshold marks bezel pixels as part of the screen opening.
const cutoutAlphaThreshold = 32

// Source tells where a registry came from.
type Source string

const (
	SourceBundled  Source = "bundled"
	SourceManifest Source = "manifest"
)

// LoadResult is the registry produced by Load together with how it was built.
type LoadResult struct {
	Registry *Registry
	Source   Source
	// Skipped holds one error per manifest entry that could not be used.
	Skipped []error
}

// LoadOptions configures Load.
type LoadOptions struct {
	// Logger receives warnings. Nil uses log.Default().
	Logger *log.Logger
	// Cache decodes bezel assets. Nil creates a private cache.
	Cache *imaging.ImageCache
}

// Load builds the frame registry for a project.
//
// With no manifest directory, or a directory without frames.json, the
// bundled table is returned as Ok. A manifest that cannot be read or parsed,
// or that yields no usable entries, falls back to the bundled table as
// Degraded with a reason wrapping outcome.ErrManifestInvalid. Individual
// entries that fail are skipped and reported; the result is then Degraded
// but carries the manifest registry.
func Load(manifestDir string, opts LoadOptions) outcome.Result[LoadResult] {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	cache := opts.Cache
	if cache == nil {
		cache = imaging.NewImageCache()
	}
	bundled := LoadResult{Registry: DefaultRegistry(), Source: SourceBundled}

	if manifestDir == "" {
		return outcome.Ok(bundled)
	}
	path := filepath.Join(manifestDir, ManifestFileName)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return outcome.Ok(bundled)
	}
	if err != nil {
		logger.Printf("Warning: cannot read frame manifest %s, using bundled frames: %v", path, err)
		return outcome.Degraded(bundled, fmt.Errorf("%w: %v", outcome.ErrManifestInvalid, err))
	}

	entries, err := parseManifest(data)
	if err != nil {
		logger.Printf("Warning: invalid frame manifest %s, using bundled frames: %v", path, err)
		return outcome.Degraded(bundled, fmt.Errorf("%w: %v", outcome.ErrManifestInvalid, err))
	}

	var frames []DeviceFrame
	var skipped []error
	seen := make(map[string]bool)
	for _, e := range entries {
		f, err := e.resolve(manifestDir, cache)
		if err == nil && seen[f.Name] {
			err = fmt.Errorf("duplicate frame name %s", f.Name)
		}
		if err != nil {
			err = fmt.Errorf("manifest entry %s/%s: %w", e.family, e.name, err)
			logger.Printf("Warning: skipping %v", err)
			skipped = append(skipped, err)
			continue
		}
		seen[f.Name] = true
		frames = append(frames, f)
	}

	if len(frames) == 0 {
		logger.Printf("Warning: frame manifest %s has no usable entries, using bundled frames", path)
		bundled.Skipped = skipped
		return outcome.Degraded(bundled, fmt.Errorf("%w: no usable entries", outcome.ErrManifestInvalid))
	}
	reg, err := NewRegistry(frames)
	if err != nil {
		logger.Printf("Warning: frame manifest %s rejected, using bundled frames: %v", path, err)
		return outcome.Degraded(bundled, fmt.Errorf("%w: %v", outcome.ErrManifestInvalid, err))
	}

	result := LoadResult{Registry: reg, Source: SourceManifest, Skipped: skipped}
	if len(skipped) > 0 {
		return outcome.Degraded(result, fmt.Errorf("%w: %d entries skipped", outcome.ErrManifestInvalid, len(skipped)))
	}
	return outcome.Ok(result)
}

// manifestEntry is one bezel entry after flattening families and nesting.
type manifestEntry struct {
	family      string
	deviceType  DeviceType
	model       string
	orientation Orientation // empty when the manifest does not nest by orientation
	name        string
	x, y        *int
	// err records a per-entry parse failure; the entry is skipped.
	err error
}

type rawEntry struct {
	Name string `json:"name"`
	X    *int   `json:"x"`
	Y    *int   `json:"y"`
}

// familyDeviceTypes maps manifest family sections to device types.
var familyDeviceTypes = map[string]DeviceType{
	"phone":   IPhone,
	"iphone":  IPhone,
	"tablet":  IPad,
	"ipad":    IPad,
	"desktop": Mac,
	"mac":     Mac,
	"watch":   Watch,
}

// parseManifest flattens the manifest into entries in document order.
//
//	{"phone": {"iPhone 15 Pro": {"Portrait": {"name": "...", "x": 75, "y": 72}}},
//	 "watch": {"Ultra 2":       {"name": "...", "x": 60, "y": 150}}}
func parseManifest(data []byte) ([]manifestEntry, error) {
	families, err := orderedObject(data)
	if err != nil {
		return nil, err
	}
	var entries []manifestEntry
	for _, fam := range families {
		dt, ok := familyDeviceTypes[strings.ToLower(fam.key)]
		if !ok {
			continue
		}
		models, err := orderedObject(fam.value)
		if err != nil {
			return nil, fmt.Errorf("family %s: %w", fam.key, err)
		}
		for _, model := range models {
			if isEntry(model.value) {
				entries = append(entries, newManifestEntry(fam.key, dt, model.key, "", model.value))
				continue
			}
			variants, err := orderedObject(model.value)
			if err != nil {
				entries = append(entries, manifestEntry{family: fam.key, name: model.key, err: err})
				continue
			}
			for _, v := range variants {
				entries = append(entries, newManifestEntry(fam.key, dt, model.key, parseOrientationKey(v.key), v.value))
			}
		}
	}
	return entries, nil
}

func newManifestEntry(family string, dt DeviceType, model string, o Orientation, data json.RawMessage) manifestEntry {
	e := manifestEntry{family: family, deviceType: dt, model: model, orientation: o, name: model}
	var raw rawEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		e.err = err
		return e
	}
	e.name, e.x, e.y = raw.Name, raw.X, raw.Y
	return e
}

func parseOrientationKey(k string) Orientation {
	switch strings.ToLower(k) {
	case "portrait":
		return Portrait
	case "landscape":
		return Landscape
	}
	return ""
}

// isEntry reports whether a JSON object is a leaf entry rather than an
// orientation map.
func isEntry(raw json.RawMessage) bool {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return false
	}
	name, ok := probe["name"]
	return ok && len(name) > 0 && name[0] == '"'
}

// resolve measures the bezel asset and derives the DeviceFrame for an entry.
func (e manifestEntry) resolve(dir string, cache *imaging.ImageCache) (DeviceFrame, error) {
	if e.err != nil {
		return DeviceFrame{}, e.err
	}
	if e.name == "" {
		return DeviceFrame{}, fmt.Errorf("entry has no name")
	}
	assetPath := filepath.Join(dir, e.name+".png")
	img, err := cache.Load(assetPath)
	if err != nil {
		return DeviceFrame{}, fmt.Errorf("%w: %v", outcome.ErrAssetMissing, err)
	}
	fw, fh := img.Bounds().Dx(), img.Bounds().Dy()

	orientation := ClassifyOrientation(fw, fh)
	if e.orientation != "" && e.orientation != orientation {
		if !nearSquare(fw, fh) {
			return DeviceFrame{}, fmt.Errorf("declared %s but asset is %dx%d", e.orientation, fw, fh)
		}
		orientation = e.orientation
	}

	name := NormalizeName(e.name)
	screen, err := e.screenRect(img, name, orientation)
	if err != nil {
		return DeviceFrame{}, err
	}

	f := DeviceFrame{
		Name:        name,
		DisplayName: e.model,
		Orientation: orientation,
		FrameWidth:  fw,
		FrameHeight: fh,
		ScreenRect:  screen,
		DeviceType:  e.deviceType,
		AssetPath:   assetPath,
	}
	if name != e.name {
		f.OriginalName = e.name
	}
	maskPath := filepath.Join(dir, e.name+maskSuffix)
	if st, err := os.Stat(maskPath); err == nil && !st.IsDir() {
		f.MaskPath = maskPath
	}
	if err := f.Validate(); err != nil {
		return DeviceFrame{}, err
	}
	return f, nil
}

// screenRect derives the cutout from the manifest offsets, snapping to a
// known device resolution when one is close, or detects it from the asset's
// transparent opening when the offsets are missing.
func (e manifestEntry) screenRect(img image.Image, name string, o Orientation) (Rect, error) {
	b := img.Bounds()
	if e.x == nil || e.y == nil {
		cut, err := detection.DetectScreenCutout(img, cutoutAlphaThreshold)
		if err != nil {
			return Rect{}, fmt.Errorf("no offsets and cutout detection failed: %w", err)
		}
		return Rect{X: cut.X1 - b.Min.X, Y: cut.Y1 - b.Min.Y, Width: cut.X2 - cut.X1, Height: cut.Y2 - cut.Y1}, nil
	}

	x, y := *e.x, *e.y
	r := Rect{X: x, Y: y, Width: b.Dx() - 2*x, Height: b.Dy() - 2*y}
	if known, ok := knownScreenSize(name, e.deviceType, o); ok &&
		closeTo(r.Width, known.Width) && closeTo(r.Height, known.Height) &&
		x+known.Width <= b.Dx() && y+known.Height <= b.Dy() {
		r.Width, r.Height = known.Width, known.Height
	}
	return r, nil
}

func closeTo(got, want int) bool {
	if want <= 0 {
		return false
	}
	return math.Abs(float64(got-want))/float64(want) <= knownSizeTolerance
}

type keyValue struct {
	key   string
	value json.RawMessage
}

// orderedObject decodes a JSON object keeping its member order, which
// becomes the registry order.
func orderedObject(data []byte) ([]keyValue, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected JSON object")
	}
	var out []keyValue
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key")
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("key %s: %w", key, err)
		}
		out = append(out, keyValue{key: key, value: value})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return out, nil
}
