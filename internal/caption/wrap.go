package caption

import (
	"strings"
	"unicode/utf8"
)

// estimateWidthFactor is the average glyph advance as a fraction of the
// font size used by EstimateMeasurer.
const estimateWidthFactor = 0.52

// Measurer reports the rendered width of a string in pixels.
type Measurer interface {
	MeasureString(text string, fontSize float64) float64
}

// EstimateMeasurer approximates widths from the rune count. It needs no font
// and gives the same answer on every machine, so layouts are reproducible.
type EstimateMeasurer struct{}

func (EstimateMeasurer) MeasureString(text string, fontSize float64) float64 {
	return float64(utf8.RuneCountInString(text)) * fontSize * estimateWidthFactor
}

// Wrap splits text into lines no wider than maxWidth by greedy word packing.
//
// Words are never split, so a single word wider than maxWidth gets a line of
// its own. With maxLines > 0, once the last allowed line is reached every
// remaining word is appended to it: text is never dropped. Runs of
// whitespace collapse to one space.
func Wrap(text string, maxWidth, fontSize float64, maxLines int, m Measurer) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := words[0]
	for _, w := range words[1:] {
		candidate := current + " " + w
		lastLine := maxLines > 0 && len(lines) == maxLines-1
		if lastLine || m.MeasureString(candidate, fontSize) <= maxWidth {
			current = candidate
			continue
		}
		lines = append(lines, current)
		current = w
	}
	return append(lines, current)
}
