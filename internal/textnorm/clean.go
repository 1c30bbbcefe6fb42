package textnorm

import (
	"regexp"
	"strings"

	"github.com/arjun-krishnan/docuverify/constants"
)

var (
	reDigits       = regexp.MustCompile(`\d+`)
	reDotSpace     = regexp.MustCompile(`\.\s*`)
	reSpaceDot     = regexp.MustCompile(`\s+\.`)
	reNameSymbols  = regexp.MustCompile(`[^\p{L}\p{M}\p{N}_\s.\-]`)
	reEmailZero    = regexp.MustCompile(`([a-z])0([a-z])`)
	reEmailRN      = regexp.MustCompile(`([a-z])rn([a-z])`)
	rePhoneSymbols = regexp.MustCompile(`[^\d+\-()]`)
	reDateSep      = regexp.MustCompile(`[lI|]`)
	reDateOh       = regexp.MustCompile(`[Oo]`)
	reNonDigit     = regexp.MustCompile(`[^\d]`)
	reInnerSpace   = regexp.MustCompile(`\s+`)
	genericTrimSet = ".,;:!?"
)

// CleanValue normalizes an extracted value according to its field type class.
// An empty return means the value did not survive cleaning and the field
// should be treated as absent.
func CleanValue(value string, ft constants.FieldType) string {
	if value == "" {
		return ""
	}

	// Dates bypass Normalize: the symbol strip would eat the separators the
	// canonical DD/MM/YYYY form depends on.
	if ft == constants.TypeDate {
		cleaned := reDateSep.ReplaceAllString(value, "/")
		cleaned = reDateOh.ReplaceAllString(cleaned, "0")
		return strings.TrimSpace(reInnerSpace.ReplaceAllString(cleaned, ""))
	}

	cleaned := Normalize(value)

	switch ft {
	case constants.TypeName:
		cleaned = reDigits.ReplaceAllString(cleaned, "")
		cleaned = reDotSpace.ReplaceAllString(cleaned, ". ")
		cleaned = reSpaceDot.ReplaceAllString(cleaned, " .")
		cleaned = reNameSymbols.ReplaceAllString(cleaned, "")
	case constants.TypeEmail:
		cleaned = strings.ReplaceAll(cleaned, " ", "")
		cleaned = reEmailZero.ReplaceAllString(cleaned, "${1}o${2}")
		cleaned = reEmailRN.ReplaceAllString(cleaned, "${1}m${2}")
		if !strings.Contains(cleaned, "@") {
			return ""
		}
	case constants.TypePhone:
		cleaned = rePhoneSymbols.ReplaceAllString(cleaned, "")
		cleaned = strings.Trim(cleaned, "+-()")
	case constants.TypeNumber:
		cleaned = reNonDigit.ReplaceAllString(cleaned, "")
	}

	cleaned = strings.TrimSpace(reInnerSpace.ReplaceAllString(cleaned, " "))
	if ft != constants.TypeEmail && ft != constants.TypePhone {
		cleaned = strings.Trim(cleaned, genericTrimSet)
	}

	cleaned = strings.Map(func(r rune) rune {
		if r < 32 && r != '\n' && r != '\t' {
			return -1
		}
		return r
	}, cleaned)

	return strings.TrimSpace(cleaned)
}
