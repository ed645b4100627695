package compose

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// PositionKind selects how the device is placed vertically.
type PositionKind string

const (
	// PositionDefault centers the device, or biases a watch to the bottom.
	PositionDefault PositionKind = ""
	PositionTop     PositionKind = "top"
	PositionCenter  PositionKind = "center"
	PositionBottom  PositionKind = "bottom"
	// PositionPercent interpolates between the caption bottom (0) and the
	// canvas bottom (100).
	PositionPercent PositionKind = "percent"
)

// Position is the vertical device placement. In JSON it is a keyword
// ("top", "center", "bottom"), a percentage string ("40" or "40%") or a
// number between 0 and 100.
type Position struct {
	Kind    PositionKind
	Percent float64
}

// Percent returns a percentage position clamped to 0..100.
func Percent(p float64) Position {
	return Position{Kind: PositionPercent, Percent: clampPercent(p)}
}

// IsDefault reports whether no position was configured.
func (p Position) IsDefault() bool { return p.Kind == PositionDefault }

func (p Position) String() string {
	if p.Kind == PositionPercent {
		return strconv.FormatFloat(p.Percent, 'f', -1, 64)
	}
	return string(p.Kind)
}

// ParsePosition parses a keyword or percentage. The empty string is the
// default position.
func ParsePosition(s string) (Position, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch PositionKind(v) {
	case PositionDefault:
		return Position{}, nil
	case PositionTop, PositionCenter, PositionBottom:
		return Position{Kind: PositionKind(v)}, nil
	}
	n, err := strconv.ParseFloat(strings.TrimSuffix(v, "%"), 64)
	if err != nil {
		return Position{}, fmt.Errorf("invalid frame position %q: expected top, center, bottom or 0-100", s)
	}
	if n < 0 || n > 100 {
		return Position{}, fmt.Errorf("frame position %v out of range 0-100", n)
	}
	return Percent(n), nil
}

func (p *Position) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*p = Position{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, err := ParsePosition(s)
		if err != nil {
			return err
		}
		*p = parsed
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("frame position must be a string or number: %s", data)
	}
	if n < 0 || n > 100 {
		return fmt.Errorf("frame position %v out of range 0-100", n)
	}
	*p = Percent(n)
	return nil
}

func (p Position) MarshalJSON() ([]byte, error) {
	if p.Kind == PositionPercent {
		return json.Marshal(p.Percent)
	}
	return json.Marshal(string(p.Kind))
}

func clampPercent(p float64) float64 {
	return max(0, min(100, p))
}
