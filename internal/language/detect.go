// Package language classifies OCR text into a script category by Unicode
// range membership. It is a presence test, not a majority vote: one stray
// Arabic character in an otherwise Latin document yields Multi.
package language

import "strings"

// Tag is a detected script category.
type Tag string

const (
	English Tag = "en"
	Hindi   Tag = "hi"
	Arabic  Tag = "ar"
	Multi   Tag = "multi"
)

// DefaultSampleSize bounds how much of the text Detect inspects.
const DefaultSampleSize = 500

// Detect classifies text by script presence within the first sampleSize
// runes. sampleSize <= 0 uses DefaultSampleSize. Blank input defaults to
// English.
func Detect(text string, sampleSize int) Tag {
	if strings.TrimSpace(text) == "" {
		return English
	}
	if sampleSize <= 0 {
		sampleSize = DefaultSampleSize
	}

	var hasLatin, hasArabic, hasDevanagari bool
	seen := 0
	for _, r := range text {
		if seen >= sampleSize {
			break
		}
		seen++
		switch {
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			hasLatin = true
		case r >= 0x0600 && r <= 0x06FF:
			hasArabic = true
		case r >= 0x0900 && r <= 0x097F:
			hasDevanagari = true
		}
	}

	n := 0
	for _, present := range []bool{hasLatin, hasArabic, hasDevanagari} {
		if present {
			n++
		}
	}
	switch {
	case n > 1:
		return Multi
	case hasArabic:
		return Arabic
	case hasDevanagari:
		return Hindi
	default:
		return English
	}
}
