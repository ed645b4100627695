package frames

import "strings"

// CornerRule assigns a screen corner radius to iPhone families whose display
// name contains any of Families (case-insensitive, whole words).
type CornerRule struct {
	Families []string
	// RadiusPercent is the corner radius as a fraction of the screen width.
	RadiusPercent float64
}

// Tuning collects every device-specific magic number used by matching,
// masking, caption layout and placement.
type Tuning struct {
	// ScaleMultipliers shrink or enlarge the fitted device per device type.
	// Types without an entry use 1.0.
	ScaleMultipliers map[DeviceType]float64

	// CornerRules are tried in order; the first rule with a matching family wins.
	CornerRules []CornerRule
	// DefaultCornerPercent applies to iPhones matched by no rule.
	DefaultCornerPercent float64

	// AspectWarnThreshold is the relative aspect ratio difference above which
	// a fallback frame match is reported.
	AspectWarnThreshold float64

	// WatchCanvasMaxWidth: canvases narrower than this are watch canvases.
	WatchCanvasMaxWidth int
	// WatchCaptionDivisor reserves canvasHeight/WatchCaptionDivisor for the caption.
	WatchCaptionDivisor int
	WatchMaxFontSize    float64
	WatchMaxLines       int
	// WatchVisibleFraction is the share of the device height shown by the
	// default bottom-biased watch placement.
	WatchVisibleFraction float64
}

// DefaultTuning returns a fresh copy of the built-in tuning table.
func DefaultTuning() Tuning {
	return Tuning{
		ScaleMultipliers: map[DeviceType]float64{
			IPhone: 0.9,
			Mac:    0.95,
			Watch:  1.3,
		},
		CornerRules: []CornerRule{
			{Families: []string{"16 pro", "15 pro", "14 pro"}, RadiusPercent: 0.12},
			{Families: []string{"se", "8"}, RadiusPercent: 0},
		},
		DefaultCornerPercent: 0.10,
		AspectWarnThreshold:  0.10,
		WatchCanvasMaxWidth:  500,
		WatchCaptionDivisor:  3,
		WatchMaxFontSize:     36,
		WatchMaxLines:        3,
		WatchVisibleFraction: 0.75,
	}
}

// ScaleMultiplier returns the placement multiplier for a device type.
func (t Tuning) ScaleMultiplier(dt DeviceType) float64 {
	if m, ok := t.ScaleMultipliers[dt]; ok && m > 0 {
		return m
	}
	return 1.0
}

// CornerRadiusPercent picks the screen corner radius for an iPhone display name.
func (t Tuning) CornerRadiusPercent(displayName string) float64 {
	words := " " + strings.ReplaceAll(NormalizeName(displayName), "-", " ") + " "
	for _, rule := range t.CornerRules {
		for _, family := range rule.Families {
			if strings.Contains(words, " "+family+" ") {
				return rule.RadiusPercent
			}
		}
	}
	return t.DefaultCornerPercent
}

// IsWatchCanvas reports whether a canvas width triggers watch caption rules.
func (t Tuning) IsWatchCanvas(canvasWidth int) bool {
	return canvasWidth < t.WatchCanvasMaxWidth
}
