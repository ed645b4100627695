package frames

import (
	"fmt"
	"strings"
	"unicode"
)

// Orientation of a frame or screenshot.
type Orientation string

const (
	Portrait  Orientation = "portrait"
	Landscape Orientation = "landscape"
)

// DeviceType is the coarse device family a frame belongs to.
type DeviceType string

const (
	DeviceUnknown DeviceType = ""
	IPhone        DeviceType = "iphone"
	IPad          DeviceType = "ipad"
	Mac           DeviceType = "mac"
	Watch         DeviceType = "watch"
)

// ParseDeviceType converts a user-supplied device name into a DeviceType.
// Matching is case-insensitive and accepts a few common aliases.
func ParseDeviceType(s string) (DeviceType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "iphone", "phone":
		return IPhone, nil
	case "ipad", "tablet":
		return IPad, nil
	case "mac", "desktop", "macbook", "imac":
		return Mac, nil
	case "watch", "applewatch", "apple-watch":
		return Watch, nil
	case "":
		return DeviceUnknown, nil
	default:
		return DeviceUnknown, fmt.Errorf("unknown device type: %s", s)
	}
}

// Rect is an axis-aligned pixel rectangle.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// AspectRatio returns Width/Height, or 0 for a degenerate rectangle.
func (r Rect) AspectRatio() float64 {
	if r.Height <= 0 {
		return 0
	}
	return float64(r.Width) / float64(r.Height)
}

// DeviceFrame describes a registered bezel asset and where a screenshot is
// inserted into it.
type DeviceFrame struct {
	// Name is the unique lowercase-kebab registry key.
	Name string `json:"name"`

	// DisplayName is the human label, e.g. "iPhone 15 Pro Max".
	DisplayName string `json:"display_name"`

	Orientation Orientation `json:"orientation"`

	// FrameWidth and FrameHeight are the pixel dimensions of the bezel asset.
	FrameWidth  int `json:"frame_width"`
	FrameHeight int `json:"frame_height"`

	// ScreenRect is the cutout where the screenshot is composited.
	ScreenRect Rect `json:"screen_rect"`

	DeviceType DeviceType `json:"device_type"`

	// AssetPath locates the bezel PNG. Relative paths resolve against the
	// assets directory of whoever loads the frame.
	AssetPath string `json:"asset_path,omitempty"`

	// MaskPath optionally locates an alpha mask for the screen shape.
	MaskPath string `json:"mask_path,omitempty"`

	// OriginalName is the source asset name when it differs from Name.
	OriginalName string `json:"original_name,omitempty"`
}

// squareTolerance bounds the aspect ratio band in which a frame's declared
// orientation is trusted even if it disagrees with its pixel dimensions.
const squareTolerance = 0.02

// Validate checks the frame invariants: positive dimensions, a screen rect
// contained in the frame, and an orientation that agrees with the frame shape.
func (f DeviceFrame) Validate() error {
	if f.Name == "" {
		return fmt.Errorf("frame has no name")
	}
	if f.FrameWidth <= 0 || f.FrameHeight <= 0 {
		return fmt.Errorf("frame %s: invalid dimensions %dx%d", f.Name, f.FrameWidth, f.FrameHeight)
	}
	r := f.ScreenRect
	if r.Width <= 0 || r.Height <= 0 || r.X < 0 || r.Y < 0 ||
		r.X+r.Width > f.FrameWidth || r.Y+r.Height > f.FrameHeight {
		return fmt.Errorf("frame %s: screen rect %+v exceeds frame %dx%d", f.Name, r, f.FrameWidth, f.FrameHeight)
	}
	if f.Orientation != Portrait && f.Orientation != Landscape {
		return fmt.Errorf("frame %s: invalid orientation %q", f.Name, f.Orientation)
	}
	if !nearSquare(f.FrameWidth, f.FrameHeight) && ClassifyOrientation(f.FrameWidth, f.FrameHeight) != f.Orientation {
		return fmt.Errorf("frame %s: orientation %s disagrees with %dx%d", f.Name, f.Orientation, f.FrameWidth, f.FrameHeight)
	}
	return nil
}

// ModelKey returns the name without its trailing orientation token.
func (f DeviceFrame) ModelKey() string {
	for _, suffix := range []string{"-portrait", "-landscape"} {
		if strings.HasSuffix(f.Name, suffix) {
			return strings.TrimSuffix(f.Name, suffix)
		}
	}
	return f.Name
}

func nearSquare(w, h int) bool {
	if w <= 0 || h <= 0 {
		return false
	}
	ratio := float64(w) / float64(h)
	return ratio > 1-squareTolerance && ratio < 1+squareTolerance
}

// NormalizeName turns an arbitrary asset name into a lowercase-kebab key:
// runs of characters other than letters and digits collapse to one hyphen.
//
//	"iPhone 15 Pro Max - Portrait" -> "iphone-15-pro-max-portrait"
//	`iPad Pro 12.9"`              -> "ipad-pro-12-9"
func NormalizeName(s string) string {
	var b strings.Builder
	pendingHyphen := false
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		pendingHyphen = true
	}
	return b.String()
}

// containsTokens reports whether the hyphen-separated tokens of needle appear
// as a contiguous run within the tokens of haystack.
func containsTokens(haystack, needle string) bool {
	if needle == "" {
		return false
	}
	h := strings.Split(haystack, "-")
	n := strings.Split(needle, "-")
	for i := 0; i+len(n) <= len(h); i++ {
		match := true
		for j := range n {
			if h[i+j] != n[j] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}
