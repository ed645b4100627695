package frames

import (
	"fmt"
	"log"
	"math"

	"github.com/ironsheep/appshot-frames/internal/outcome"
)

// MatchMethod records which rule selected a frame.
type MatchMethod string

const (
	MatchPreferred       MatchMethod = "preferred"
	MatchKnownResolution MatchMethod = "known-resolution"
	MatchExactScreen     MatchMethod = "exact-screen"
	MatchAspectRatio     MatchMethod = "aspect-ratio"
)

// Match is the frame chosen for a screenshot.
type Match struct {
	Frame  DeviceFrame `json:"frame"`
	Method MatchMethod `json:"method"`

	// AspectDiff is |frame screen ratio - screenshot ratio|.
	AspectDiff float64 `json:"aspect_diff"`

	// Warnings lists non-fatal issues found while matching, such as an
	// ignored preference or a poor aspect ratio fit.
	Warnings []string `json:"warnings,omitempty"`
}

// Matcher selects the best frame for a screenshot from an immutable registry.
// A Matcher holds no mutable state and may be shared between goroutines.
type Matcher struct {
	registry *Registry
	tuning   Tuning
	logger   *log.Logger
}

// NewMatcher creates a matcher over registry. A nil logger uses log.Default().
func NewMatcher(registry *Registry, tuning Tuning, logger *log.Logger) *Matcher {
	if logger == nil {
		logger = log.Default()
	}
	return &Matcher{registry: registry, tuning: tuning, logger: logger}
}

// Match returns the frame for a screenshot of width x height pixels.
//
// Precedence:
//  1. preferred, when it exists and agrees with the screenshot orientation and device type
//  2. the frame named by a known Apple resolution
//  3. among frames of the device type and orientation, one whose screen rect
//     equals the screenshot size
//  4. the candidate with the nearest screen aspect ratio, ties broken by
//     registry order
//
// When no frame of the device type and orientation exists the returned error
// wraps outcome.ErrNoCandidateFrame and framing should be skipped.
// An unknown device type is classified from the dimensions first.
func (m *Matcher) Match(width, height int, dt DeviceType, preferred string) (*Match, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid screenshot size %dx%d", width, height)
	}
	orientation := ClassifyOrientation(width, height)
	var warnings []string
	warn := func(format string, args ...interface{}) {
		msg := fmt.Sprintf(format, args...)
		m.logger.Printf("Warning: %s", msg)
		warnings = append(warnings, msg)
	}

	if preferred != "" {
		f, ok := m.registry.Lookup(preferred)
		switch {
		case !ok:
			warn("preferred frame %q is not registered", preferred)
		case f.Orientation != orientation:
			warn("ignoring preferred frame %q: %s frame for %s screenshot", preferred, f.Orientation, orientation)
		case dt != DeviceUnknown && f.DeviceType != dt:
			warn("ignoring preferred frame %q: %s frame for %s request", preferred, f.DeviceType, dt)
		default:
			return &Match{Frame: f, Method: MatchPreferred, AspectDiff: aspectDiff(f, width, height), Warnings: warnings}, nil
		}
	}

	if known, ok := lookupKnownResolution(width, height); ok && (dt == DeviceUnknown || dt == known.DeviceType) {
		var f DeviceFrame
		var found bool
		if (Resolution{width, height}).String() == ambiguousIPadLandscape {
			f, found = m.pickLargeIPadLandscape()
		} else {
			f, found = m.pickByIdentifier(known.Identifier, orientation)
		}
		if found {
			return &Match{Frame: f, Method: MatchKnownResolution, AspectDiff: aspectDiff(f, width, height), Warnings: warnings}, nil
		}
		if dt == DeviceUnknown {
			dt = known.DeviceType
		}
	}

	if dt == DeviceUnknown {
		guess, ok := ClassifyDeviceType(width, height)
		if !ok {
			warn("cannot infer device type for %dx%d screenshot", width, height)
			return nil, fmt.Errorf("%dx%d: %w", width, height, outcome.ErrNoCandidateFrame)
		}
		dt = guess
	}

	candidates := m.registry.Filter(dt, orientation)
	if len(candidates) == 0 {
		warn("no %s %s frame registered, skipping frame", dt, orientation)
		return nil, fmt.Errorf("%s %s: %w", dt, orientation, outcome.ErrNoCandidateFrame)
	}

	for _, c := range candidates {
		if c.ScreenRect.Width == width && c.ScreenRect.Height == height {
			return &Match{Frame: c, Method: MatchExactScreen, Warnings: warnings}, nil
		}
	}

	best := candidates[0]
	bestDiff := aspectDiff(best, width, height)
	for _, c := range candidates[1:] {
		// Strictly smaller keeps the earliest registered candidate on ties.
		if d := aspectDiff(c, width, height); d < bestDiff {
			best, bestDiff = c, d
		}
	}

	target := float64(width) / float64(height)
	if bestDiff/target > m.tuning.AspectWarnThreshold {
		warn("closest frame %s differs from %dx%d aspect ratio by %.1f%%", best.Name, width, height, bestDiff/target*100)
	}
	return &Match{Frame: best, Method: MatchAspectRatio, AspectDiff: bestDiff, Warnings: warnings}, nil
}

// pickByIdentifier finds the frame of the given orientation whose name or
// original name contains identifier. An exact model key wins, then the
// shortest name, then registry order.
func (m *Matcher) pickByIdentifier(identifier string, o Orientation) (DeviceFrame, bool) {
	var best DeviceFrame
	found := false
	for _, f := range m.registry.Filter(DeviceUnknown, o) {
		if !containsTokens(f.Name, identifier) && !containsTokens(NormalizeName(f.OriginalName), identifier) {
			continue
		}
		if !found || betterIdentifierMatch(f, best, identifier) {
			best, found = f, true
		}
	}
	return best, found
}

func betterIdentifierMatch(f, current DeviceFrame, identifier string) bool {
	fExact := f.ModelKey() == identifier
	cExact := current.ModelKey() == identifier
	if fExact != cExact {
		return fExact
	}
	return len(f.Name) < len(current.Name)
}

// pickLargeIPadLandscape resolves the 2752x2064 resolution shared by the
// 13" and 12.9" iPad Pro families: an explicitly 13" landscape frame wins,
// otherwise the largest landscape iPad frame that is not an 11" model.
func (m *Matcher) pickLargeIPadLandscape() (DeviceFrame, bool) {
	candidates := m.registry.Filter(IPad, Landscape)
	for _, f := range candidates {
		if containsTokens(f.Name, "13") || containsTokens(NormalizeName(f.DisplayName), "13") {
			return f, true
		}
	}
	var best DeviceFrame
	found := false
	for _, f := range candidates {
		if containsTokens(f.Name, "11") || containsTokens(NormalizeName(f.DisplayName), "11") {
			continue
		}
		if !found || f.FrameWidth*f.FrameHeight > best.FrameWidth*best.FrameHeight {
			best, found = f, true
		}
	}
	return best, found
}

func aspectDiff(f DeviceFrame, width, height int) float64 {
	return math.Abs(f.ScreenRect.AspectRatio() - float64(width)/float64(height))
}
