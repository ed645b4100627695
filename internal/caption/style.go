package caption

import "strings"

// Position values for Style.Position.
const (
	PositionAbove   = "above"
	PositionOverlay = "overlay"
)

// BoxConfig sizes the caption box.
type BoxConfig struct {
	// AutoSize derives the height from the wrapped text. Nil means true.
	AutoSize *bool `json:"auto_size,omitempty"`
	// MinHeight and MaxHeight clamp the box height; zero disables a bound.
	MinHeight int `json:"min_height,omitempty"`
	MaxHeight int `json:"max_height,omitempty"`
	// MaxLines limits wrapping when AutoSize is off. Zero means 3.
	MaxLines int `json:"max_lines,omitempty"`
	// LineHeight is the line advance as a multiple of the font size.
	LineHeight float64 `json:"line_height,omitempty"`
}

// Style is the caption configuration carried by a composition request.
// Zero fields take the values of DefaultStyle.
type Style struct {
	// Font is a bundled face name (regular, medium, bold, mono) or the path
	// of a TrueType/OpenType file.
	Font     string  `json:"font,omitempty"`
	FontSize float64 `json:"font_size,omitempty"`
	// Color is a hex color, see imaging.ParseColor.
	Color string `json:"color,omitempty"`
	// Position is "above" (reserve space at the top) or "overlay" (draw
	// over the composed device without reserving space).
	Position      string    `json:"position,omitempty"`
	PaddingTop    int       `json:"padding_top,omitempty"`
	PaddingBottom int       `json:"padding_bottom,omitempty"`
	PaddingX      int       `json:"padding_x,omitempty"`
	Box           BoxConfig `json:"box"`
}

// DefaultStyle returns the caption style used when a request sets nothing.
func DefaultStyle() Style {
	autoSize := true
	return Style{
		Font:          "bold",
		FontSize:      72,
		Color:         "#FFFFFF",
		Position:      PositionAbove,
		PaddingTop:    60,
		PaddingBottom: 40,
		PaddingX:      60,
		Box: BoxConfig{
			AutoSize:   &autoSize,
			MaxLines:   3,
			LineHeight: 1.2,
		},
	}
}

// WithDefaults fills every zero field from DefaultStyle.
func (s Style) WithDefaults() Style {
	d := DefaultStyle()
	if s.Font == "" {
		s.Font = d.Font
	}
	if s.FontSize <= 0 {
		s.FontSize = d.FontSize
	}
	if s.Color == "" {
		s.Color = d.Color
	}
	s.Position = strings.ToLower(strings.TrimSpace(s.Position))
	if s.Position != PositionOverlay {
		s.Position = PositionAbove
	}
	if s.PaddingTop <= 0 {
		s.PaddingTop = d.PaddingTop
	}
	if s.PaddingBottom <= 0 {
		s.PaddingBottom = d.PaddingBottom
	}
	if s.PaddingX <= 0 {
		s.PaddingX = d.PaddingX
	}
	if s.Box.AutoSize == nil {
		s.Box.AutoSize = d.Box.AutoSize
	}
	if s.Box.MaxLines <= 0 {
		s.Box.MaxLines = d.Box.MaxLines
	}
	if s.Box.LineHeight <= 0 {
		s.Box.LineHeight = d.Box.LineHeight
	}
	return s
}

// autoSize reports whether the box height follows the text.
func (b BoxConfig) autoSize() bool {
	return b.AutoSize == nil || *b.AutoSize
}
