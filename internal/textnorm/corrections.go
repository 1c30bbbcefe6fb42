package textnorm

import (
	"regexp"
	"strings"
	"unicode"
)

// wordCorrections maps lowercased OCR-corrupted tokens to their intended
// spelling. Keyed per token; label replacements take on the case pattern of
// the source token, proper nouns keep their canonical casing.
var wordCorrections = map[string]string{
	// Place names
	"kamataha":   "Karnataka",
	"kamataka":   "Karnataka",
	"kamatakha":  "Karnataka",
	"karnatakha": "Karnataka",
	"karnatka":   "Karnataka",
	"bangalor":   "Bangalore",
	"bengaluru":  "Bangalore",
	"mumbay":     "Mumbai",
	"delh":       "Delhi",
	"madras":     "Chennai",
	"puna":       "Pune",

	// Field labels and common words
	"layeut":   "Layout",
	"layaut":   "Layout",
	"layot":    "Layout",
	"adebress": "Address",
	"aderess":  "Address",
	"adress":   "Address",
	"adres":    "Address",
	"linet":    "Line",
	"linet1":   "Line1",
	"linet2":   "Line2",
	"grender":  "Gender",
	"gendr":    "Gender",
	"midde":    "Middle",
	"middl":    "Middle",
	"mmber":    "Number",
	"numb":     "Number",
	"numbber":  "Number",
	"numbes":   "Number",
	"phome":    "Phone",
	"phne":     "Phone",
	"emal":     "Email",
	"emai":     "Email",
	"emial":    "Email",
	"rood":     "Road",
	"strt":     "Street",
	"stret":    "Street",
	"stree":    "Street",
	"streeet":  "Street",

	// Label misspellings
	"neme":      "Name",
	"mame":      "Name",
	"norme":     "Name",
	"ocupation": "Occupation",
	"teachex":   "Teacher",
	"bisth":     "Birth",
	"emailld":   "EmailId",
	"emailid":   "EmailId",

	// Glyph-pair confusions, applied only as whole tokens
	"rn": "m",
	"vv": "w",
	"ii": "n",
}

// patternCorrections is an ordered list of regex substitutions for
// character-level confusions. Order matters: digit/letter fixes run before
// the spacing fixes that would otherwise split their context.
var patternCorrections = []struct {
	re   *regexp.Regexp
	repl string
}{
	// 0 read where O was printed, in alphabetic context
	{regexp.MustCompile(`\b([A-Z])0([a-z])`), "${1}O${2}"},
	{regexp.MustCompile(`([a-z])0([A-Z])`), "${1}O${2}"},
	{regexp.MustCompile(`\b0([A-Z][a-z]+)`), "O${1}"},
	{regexp.MustCompile(`([a-z]+)0\b`), "${1}O"},
	{regexp.MustCompile(`\b([A-Za-z]+)0([A-Za-z]+)\b`), "${1}O${2}"},

	// l/I between digits usually means a date separator
	{regexp.MustCompile(`(\d)[lI](\d)`), "${1}/${2}"},

	// Spacing at case transitions and around initials
	{regexp.MustCompile(`([a-z])([A-Z])`), "${1} ${2}"},
	{regexp.MustCompile(`([A-Z])\.([A-Z])`), "${1}. ${2}"},
	{regexp.MustCompile(`([A-Z])([A-Z][a-z])`), "${1} ${2}"},

	// Digit-run repair
	{regexp.MustCompile(`(\d)\s+(\d)`), "${1}${2}"},
	{regexp.MustCompile(`([a-z])(\d)`), "${1} ${2}"},
	{regexp.MustCompile(`(\d)([a-z])`), "${1} ${2}"},

	// Date separators misread as l/I/|
	{regexp.MustCompile(`(\d{1,2})[lI|](\d{1,2})[lI|](\d{2,4})`), "${1}/${2}/${3}"},
	{regexp.MustCompile(`(\d{1,2})[lI|](\d{1,2})`), "${1}/${2}"},
}

const tokenPunct = ".,!?;:()[]{}\"'"

// FixOCRErrors applies the whole-word correction table followed by the
// ordered pattern substitutions. Fail-open: input comes back unchanged in the
// worst case, never an error.
func FixOCRErrors(text string) string {
	if text == "" {
		return ""
	}

	words := strings.Fields(text)
	corrected := make([]string, 0, len(words))
	for _, word := range words {
		core := strings.ToLower(strings.Trim(word, tokenPunct))
		repl, ok := wordCorrections[core]
		if !ok {
			corrected = append(corrected, word)
			continue
		}
		cased := matchCase(repl, strings.Trim(word, tokenPunct))
		if trimmed := strings.Trim(word, tokenPunct); trimmed != word {
			// keep surrounding punctuation
			cased = strings.Replace(word, trimmed, cased, 1)
		}
		corrected = append(corrected, cased)
	}
	text = strings.Join(corrected, " ")

	for _, pc := range patternCorrections {
		text = pc.re.ReplaceAllString(text, pc.repl)
	}

	text = collapseLetterRuns(text, 3)
	return strings.TrimSpace(text)
}

// properNouns lists replacements that always come back in canonical casing,
// a fully upper-cased source token aside. Case-matching a place name against
// lowercase OCR noise would emit "karnataka".
var properNouns = map[string]struct{}{
	"Karnataka": {},
	"Bangalore": {},
	"Mumbai":    {},
	"Delhi":     {},
	"Chennai":   {},
	"Pune":      {},
	"Teacher":   {},
}

// matchCase reshapes repl to follow the case pattern of src: all-upper,
// leading-upper, or all-lower. Proper nouns only honor the all-upper pattern.
func matchCase(repl, src string) string {
	if src == "" {
		return repl
	}
	if _, proper := properNouns[repl]; proper {
		if isAllUpper(src) {
			return strings.ToUpper(repl)
		}
		return repl
	}
	if isAllUpper(src) {
		return strings.ToUpper(repl)
	}
	first := []rune(src)[0]
	if unicode.IsUpper(first) {
		lower := strings.ToLower(repl)
		r := []rune(lower)
		r[0] = unicode.ToUpper(r[0])
		return string(r)
	}
	return strings.ToLower(repl)
}

func isAllUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			hasLetter = true
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return hasLetter
}

// collapseLetterRuns shortens runs of the same ASCII letter of length >= min
// down to two characters. RE2 has no backreferences, so this is a rune scan.
func collapseLetterRuns(s string, min int) string {
	return collapseRuns(s, min, func(r rune) bool {
		return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
	})
}

func collapseRuns(s string, min int, eligible func(rune) bool) string {
	if min < 2 {
		min = 2
	}
	var b strings.Builder
	b.Grow(len(s))
	runes := []rune(s)
	for i := 0; i < len(runes); {
		j := i + 1
		for j < len(runes) && runes[j] == runes[i] {
			j++
		}
		n := j - i
		if n >= min && eligible(runes[i]) {
			n = 2
		}
		for k := 0; k < n; k++ {
			b.WriteRune(runes[i])
		}
		i = j
	}
	return b.String()
}
