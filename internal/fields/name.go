package fields

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/arjun-krishnan/docuverify/constants"
	"github.com/arjun-krishnan/docuverify/internal/language"
	"github.com/arjun-krishnan/docuverify/internal/textnorm"
)

// Label variants include OCR-corrupted spellings (mame, norme, neme) so a
// garbled label still anchors the match.
var namePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?im)(?:name|full\s+name|applicant\s+name|your\s+name|mame|norme|neme)[:\s]+([A-Za-z][a-zA-Z.]+(?:\s+[A-Za-z][a-zA-Z]+)+?)(?:\s+(?:Age|Gender|Phone|Email|Address|City|State|Country|Date|Birth|Parents|Occupation|Mobile)|$)`),
	regexp.MustCompile(`(?i)(?:name|mame|neme)[:\s]+([A-Za-z]\.?\s*[A-Za-z][a-zA-Z]+\s+[A-Za-z][a-zA-Z]+(?:\s+[A-Za-z][a-zA-Z]+)?)`),
}

var (
	reTrailingLabels = regexp.MustCompile(`(?i)\s+(Age|Gender|Phone|Email|Address|City|State|Country|Date|Birth).*$`)
	reInitialSpacing = regexp.MustCompile(`([A-Za-z])\.([A-Za-z])`)
	reNameZero       = regexp.MustCompile(`([A-Za-z])0([A-Za-z])`)
)

// extractName finds a person name via labeled patterns, falling back (English
// only) to the first early line shaped like a bare two-token name.
func extractName(text string, lang language.Tag) string {
	if lang == "" {
		lang = language.English
	}

	for _, pat := range namePatterns {
		m := pat.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		name := strings.TrimSpace(m[1])
		name = strings.TrimSpace(reTrailingLabels.ReplaceAllString(name, ""))
		name = reInitialSpacing.ReplaceAllString(name, "${1}. ${2}")
		name = titleCaseTokens(name)
		name = reNameZero.ReplaceAllString(name, "${1}O${2}")

		if !validNameShape(name) {
			continue
		}
		cleaned := textnorm.CleanValue(textnorm.Normalize(name), constants.TypeName)
		if cleaned != "" {
			return cleaned
		}
		return textnorm.Normalize(name)
	}

	// Positional fallback: an early line with exactly two capitalized tokens
	// and no label punctuation. Latin-script documents only.
	if lang == language.English {
		lines := strings.Split(text, "\n")
		if len(lines) > 3 {
			lines = lines[:3]
		}
		for _, line := range lines {
			line = strings.TrimSpace(line)
			if line == "" || strings.Contains(line, ":") {
				continue
			}
			words := strings.Fields(line)
			if len(words) < 2 || len(words) > 4 {
				continue
			}
			if isCapitalizedWord(words[0]) && isCapitalizedWord(words[1]) {
				return textnorm.Normalize(words[0] + " " + words[1])
			}
		}
	}

	return ""
}

// validNameShape accepts 2-5 tokens, each longer than one character and
// leading with an uppercase letter or a period (detached initials).
func validNameShape(name string) bool {
	words := strings.Fields(name)
	if len(words) < 2 || len(words) > 5 {
		return false
	}
	for _, w := range words {
		if w == "." {
			continue
		}
		r := []rune(w)
		if len(r) <= 1 {
			return false
		}
		if !unicode.IsUpper(r[0]) && r[0] != '.' {
			return false
		}
	}
	return true
}

func isCapitalizedWord(w string) bool {
	r := []rune(w)
	return len(r) > 1 && unicode.IsUpper(r[0])
}

// titleCaseTokens upcases the first letter and downcases the rest of every
// alphabetic token; single letters become initials.
func titleCaseTokens(name string) string {
	words := strings.Fields(name)
	for i, w := range words {
		r := []rune(w)
		if len(r) == 0 || !unicode.IsLetter(r[0]) {
			continue
		}
		if len(r) == 1 {
			words[i] = strings.ToUpper(w)
			continue
		}
		words[i] = string(unicode.ToUpper(r[0])) + strings.ToLower(string(r[1:]))
	}
	return strings.Join(words, " ")
}

// NameComponents is the decomposition of a full name.
type NameComponents struct {
	First  string
	Middle string
	Last   string
}

// ParseNameComponents splits a full name into first/middle/last. With three
// tokens the middle is treated as an initial only when it is one or two
// characters; four or more tokens join everything between the first and last
// token into the middle name.
func ParseNameComponents(fullName string) NameComponents {
	words := strings.Fields(strings.TrimSpace(fullName))
	switch len(words) {
	case 0:
		return NameComponents{}
	case 1:
		return NameComponents{First: words[0]}
	case 2:
		return NameComponents{First: words[0], Last: words[1]}
	case 3:
		return NameComponents{First: words[0], Middle: words[1], Last: words[2]}
	default:
		return NameComponents{
			First:  words[0],
			Middle: strings.Join(words[1:len(words)-1], " "),
			Last:   words[len(words)-1],
		}
	}
}
