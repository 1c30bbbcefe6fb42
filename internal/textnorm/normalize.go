package textnorm

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	reWhitespace = regexp.MustCompile(`\s+`)
	// Keeps letters/digits of any script, combining marks (Devanagari and
	// Arabic text is unreadable without them), and the symbols extraction
	// relies on, date separators included.
	reSymbols = regexp.MustCompile(`[^\p{L}\p{M}\p{N}_\s@.\-+/()]`)
)

// Normalize strips OCR noise from raw document text: whitespace collapsing,
// repeated-character collapsing, the static correction table, symbol removal,
// and single-character token dropping. Heuristic and lossy; downstream
// extractors also receive the raw text. Never fails: worst case returns the
// input unchanged.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	text = reWhitespace.ReplaceAllString(text, " ")

	// Runs of 4+ of the same character collapse to 2. This is noise removal,
	// not spelling correction: "naaaame" becomes "naame".
	text = collapseRuns(text, 4, func(rune) bool { return true })

	text = FixOCRErrors(text)

	text = reSymbols.ReplaceAllString(text, " ")

	// Drop stray single-character tokens except alphanumerics (initials and
	// digits still matter).
	words := strings.Fields(text)
	kept := words[:0]
	for _, w := range words {
		if len([]rune(w)) > 1 || isAlnum(w) {
			kept = append(kept, w)
		}
	}
	return strings.TrimSpace(strings.Join(kept, " "))
}

func isAlnum(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}
