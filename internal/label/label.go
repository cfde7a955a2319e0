// Package label derives optional filename labels from file metadata.
//
// The pipeline depends only on the Extractor interface; the concrete EXIF
// reader is injected at configuration time when label inclusion is enabled.
// Extraction is strictly best-effort: any failure yields "no label" and never
// an error.
package label

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Extractor produces an optional label for a file.
type Extractor interface {
	// ExtractLabel returns a label for path and whether one was found.
	ExtractLabel(path string) (string, bool)
}

// ExtractorFunc adapts a plain function to the Extractor interface.
type ExtractorFunc func(path string) (string, bool)

func (f ExtractorFunc) ExtractLabel(path string) (string, bool) {
	return f(path)
}

var titleCaser = cases.Title(language.English)

// Normalize cleans a raw metadata value into label form: corporate suffixes
// are stripped, whitespace collapsed, and casing canonicalized so "NIKON
// CORPORATION" and "Nikon Corp." both become "Nikon". An empty result reports
// no label.
func Normalize(raw string) (string, bool) {
	value := strings.TrimSpace(raw)
	for _, suffix := range []string{"corporation", "corp.", "corp"} {
		lower := strings.ToLower(value)
		if strings.HasSuffix(lower, suffix) {
			value = strings.TrimSpace(value[:len(value)-len(suffix)])
		}
	}
	value = strings.Join(strings.Fields(value), " ")
	if value == "" {
		return "", false
	}
	return titleCaser.String(strings.ToLower(value)), true
}
