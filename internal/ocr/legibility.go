package ocr

import (
	"bytes"
	"fmt"
	"image"
	"strings"
	"unicode"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"
)

// DefaultLanguage is the Tesseract language used when none is configured.
const DefaultLanguage = "eng"

// Word is one recognized word, in the coordinates of the checked image.
type Word struct {
	Text       string          `json:"text"`
	Confidence float64         `json:"confidence"`
	Bounds     image.Rectangle `json:"bounds"`
}

// Legibility reports how much of an expected caption OCR can read back.
type Legibility struct {
	// Text is the raw recognized text of the region.
	Text string `json:"text"`

	// Expected is the caption that was drawn.
	Expected string `json:"expected"`

	// WordRecall is the fraction of expected words found in Text (0.0 to 1.0).
	WordRecall float64 `json:"word_recall"`

	// Missing lists expected words OCR did not recover.
	Missing []string `json:"missing,omitempty"`

	Words []Word `json:"words"`
}

// Checker runs Tesseract over caption bands. The zero value uses
// DefaultLanguage and the system tessdata.
type Checker struct {
	Language string
	// TessdataPrefix overrides the directory holding *.traineddata files.
	TessdataPrefix string
}

// CheckLegibility OCRs region of img with the default Checker.
func CheckLegibility(img image.Image, region image.Rectangle, expected string) (*Legibility, error) {
	return Checker{}.Check(img, region, expected)
}

// Check crops region out of img, runs OCR on it and compares the result with
// expected.
//
// The region is clipped to the image bounds; an empty region is an error.
// Word bounding boxes are reported in img coordinates. Recall compares
// case-folded words with punctuation stripped, so "Track, every REP" fully
// recalls "track every rep".
func (c Checker) Check(img image.Image, region image.Rectangle, expected string) (*Legibility, error) {
	region = region.Intersect(img.Bounds())
	if region.Empty() {
		return nil, fmt.Errorf("region is outside the image")
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, imaging.Crop(img, region), imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode region: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if c.TessdataPrefix != "" {
		if err := client.SetTessdataPrefix(c.TessdataPrefix); err != nil {
			return nil, fmt.Errorf("failed to set tessdata path: %w", err)
		}
	}
	lang := c.Language
	if lang == "" {
		lang = DefaultLanguage
	}
	if err := client.SetLanguage(lang); err != nil {
		return nil, fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	result := &Legibility{Text: strings.TrimSpace(text), Expected: expected, Words: []Word{}}
	result.WordRecall, result.Missing = wordRecall(expected, text)

	// Word boxes are informational; the recall above stands without them.
	if boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD); err == nil {
		for _, box := range boxes {
			if box.Word == "" {
				continue
			}
			result.Words = append(result.Words, Word{
				Text:       box.Word,
				Confidence: box.Confidence / 100.0,
				Bounds:     box.Box.Add(region.Min),
			})
		}
	}
	return result, nil
}

// Version returns the linked Tesseract version.
func Version() string {
	client := gosseract.NewClient()
	defer client.Close()
	return client.Version()
}

// wordRecall is the fraction of expected words present in recognized, each
// recognized word counting once. An empty expectation is fully recalled.
func wordRecall(expected, recognized string) (float64, []string) {
	want := words(expected)
	if len(want) == 0 {
		return 1, nil
	}
	seen := make(map[string]int)
	for _, w := range words(recognized) {
		seen[w]++
	}

	var missing []string
	found := 0
	for _, w := range want {
		if seen[w] > 0 {
			seen[w]--
			found++
			continue
		}
		missing = append(missing, w)
	}
	return float64(found) / float64(len(want)), missing
}

func words(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
}
