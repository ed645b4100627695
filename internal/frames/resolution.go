package frames

import (
	"fmt"
	"strconv"
	"strings"
)

// Resolution is a pixel size in the "<width>x<height>" textual form used by
// device configuration.
type Resolution struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// String formats the resolution as "WxH".
func (r Resolution) String() string {
	return fmt.Sprintf("%dx%d", r.Width, r.Height)
}

// Orientation returns the orientation of the resolution.
func (r Resolution) Orientation() Orientation {
	return ClassifyOrientation(r.Width, r.Height)
}

// ParseResolution parses exactly "<width>x<height>" with positive decimal
// integers and a lowercase x.
func ParseResolution(s string) (Resolution, error) {
	w, h, ok := strings.Cut(s, "x")
	if !ok {
		return Resolution{}, fmt.Errorf("invalid resolution %q: expected <width>x<height>", s)
	}
	width, err := parseDimension(w)
	if err != nil {
		return Resolution{}, fmt.Errorf("invalid resolution %q: width: %w", s, err)
	}
	height, err := parseDimension(h)
	if err != nil {
		return Resolution{}, fmt.Errorf("invalid resolution %q: height: %w", s, err)
	}
	return Resolution{Width: width, Height: height}, nil
}

func parseDimension(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("empty")
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("not a decimal integer: %q", s)
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("must be positive")
	}
	return n, nil
}

// knownResolution names the canonical device behind a widely known Apple
// screenshot resolution.
type knownResolution struct {
	Identifier string
	DeviceType DeviceType
}

// ambiguousIPadLandscape is shared by the 13" and 12.9" iPad Pro frame families.
const ambiguousIPadLandscape = "2752x2064"

// knownResolutions maps "WxH" (both orientations) to a canonical identifier
// matched against normalized frame names.
var knownResolutions = buildKnownResolutions([]struct {
	w, h int
	id   string
	dt   DeviceType
}{
	{1320, 2868, "iphone-16-pro-max", IPhone},
	{1206, 2622, "iphone-16-pro", IPhone},
	{1290, 2796, "iphone-15-pro-max", IPhone},
	{1179, 2556, "iphone-15-pro", IPhone},
	{1284, 2778, "iphone-14-plus", IPhone},
	{1170, 2532, "iphone-14", IPhone},
	{1242, 2688, "iphone-11-pro-max", IPhone},
	{1242, 2208, "iphone-8-plus", IPhone},
	{750, 1334, "iphone-se", IPhone},
	{2064, 2752, "ipad-pro-13", IPad},
	{2048, 2732, "ipad-pro-12-9", IPad},
	{1668, 2420, "ipad-pro-11", IPad},
	{1640, 2360, "ipad-10th-gen", IPad},
	{1488, 2266, "ipad-mini", IPad},
	{2560, 1664, "macbook-air-13", Mac},
	{3024, 1964, "macbook-pro-14", Mac},
	{3456, 2234, "macbook-pro-16", Mac},
	{4480, 2520, "imac-24", Mac},
	{410, 502, "watch-ultra", Watch},
	{416, 496, "watch-series-10", Watch},
	{396, 484, "watch-series-9", Watch},
	{352, 430, "watch-series-7-41", Watch},
})

func buildKnownResolutions(entries []struct {
	w, h int
	id   string
	dt   DeviceType
}) map[string]knownResolution {
	m := make(map[string]knownResolution, len(entries)*2)
	for _, e := range entries {
		k := knownResolution{Identifier: e.id, DeviceType: e.dt}
		m[Resolution{e.w, e.h}.String()] = k
		if e.dt != Mac && e.dt != Watch {
			m[Resolution{e.h, e.w}.String()] = k
		}
	}
	return m
}

// lookupKnownResolution returns the canonical identifier for a screenshot size.
func lookupKnownResolution(width, height int) (knownResolution, bool) {
	k, ok := knownResolutions[Resolution{width, height}.String()]
	return k, ok
}

// knownScreenSize returns the precise screen size for a normalized frame name
// in the requested orientation, when the name contains a known identifier.
// The longest matching identifier wins so "iphone-15-pro-max" beats "iphone-15-pro".
func knownScreenSize(name string, dt DeviceType, orientation Orientation) (Resolution, bool) {
	var best Resolution
	bestLen := 0
	for key, k := range knownResolutions {
		if k.DeviceType != dt || !containsTokens(name, k.Identifier) {
			continue
		}
		res, err := ParseResolution(key)
		if err != nil || res.Orientation() != orientation {
			continue
		}
		if len(k.Identifier) > bestLen || (len(k.Identifier) == bestLen && key < best.String()) {
			best, bestLen = res, len(k.Identifier)
		}
	}
	return best, bestLen > 0
}
