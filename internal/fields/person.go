package fields

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/arjun-krishnan/docuverify/internal/textnorm"
)

var genderPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:gender|sex)[:\s\-]+(male|female|other|m|f|m\.|f\.)`),
	regexp.MustCompile(`(?i)(?:gender|sex)[:\s\-]+([MF])`),
	regexp.MustCompile(`(?i)\b(male|female|other)\b`),
	regexp.MustCompile(`\b([MF])\b`),
}

// extractGender canonicalizes to Male/Female/Other.
func extractGender(text string) string {
	for _, pat := range genderPatterns {
		m := pat.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		switch strings.TrimSuffix(strings.ToLower(m[1]), ".") {
		case "m", "male":
			return "Male"
		case "f", "female":
			return "Female"
		case "other":
			return "Other"
		}
	}
	return ""
}

var occupationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?im)(?:occupation|profession|job|designation|ocupation)[:.\s\-]+([A-Za-z][a-zA-Z\s]+?)(?:\s+(?:Phone|Email|Address|Age|Gender|Mobile|Date|Birth|Number)|$)`),
}

var (
	reOccLabelPrefix = regexp.MustCompile(`(?i)^(?:occupation|ocupation|job|profession)\s*[:\-]?\s*`)
	reOccTrailing    = regexp.MustCompile(`(?i)\s+(Phone|Email|Address|Age|Gender|Mobile|Date|Birth|Number).*$`)
	reOccTrailingX   = regexp.MustCompile(`(?i)([a-z]+)x\b`)
	reOccTrailingES  = regexp.MustCompile(`(?i)([a-z]+)es\b`)
)

// extractOccupation pulls a labeled occupation and repairs the common
// trailing-glyph confusions ("teachex" -> "teacher", "teaches" -> "teacher").
func extractOccupation(text string) string {
	for _, pat := range occupationPatterns {
		m := pat.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		occ := strings.TrimSpace(m[1])
		occ = reOccLabelPrefix.ReplaceAllString(occ, "")
		occ = reOccTrailing.ReplaceAllString(occ, "")
		occ = strings.TrimSpace(strings.TrimSuffix(occ, "."))
		if len(occ) <= 2 {
			continue
		}
		occ = reOccTrailingX.ReplaceAllString(occ, "${1}r")
		occ = reOccTrailingES.ReplaceAllString(occ, "${1}er")
		occ = capitalize(occ)
		return textnorm.Normalize(occ)
	}
	return ""
}

func capitalize(s string) string {
	r := []rune(strings.ToLower(s))
	if len(r) == 0 {
		return s
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// Parents-name labels tolerate the dropped leading N ("Parents ame").
var parentsPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?im)(?:parents\s+name|parent\s+name|parents\s+ame|parent\s+ame)[:\s\-.]+([A-Za-z][a-zA-Z.]+(?:\s+[A-Za-z][a-zA-Z]+)+?)(?:\s+(?:Occupation|Phone|Email|Address|Age|Gender|Mobile|Date|Birth)|$)`),
	regexp.MustCompile(`(?im)(?:parents\s+name|parent\s+name|parents\s+ame|parent\s+ame)[:\s\-.]+([^\n:]{2,50}?)(?:\s+(?:Occupation|Phone|Email|Address|Age|Gender|Mobile|Date|Birth)|$)`),
}

var (
	reParentsLabelPrefix = regexp.MustCompile(`(?i)^(?:ame|name|parents|parent)\s*[:\-]?\s*`)
	reParentsTrailing    = regexp.MustCompile(`(?i)\s+(Occupation|Phone|Email|Address|Age|Gender|Mobile|Date|Birth).*$`)
	reLeadingPeriods     = regexp.MustCompile(`^\.+`)
)

func extractParentsName(text string) string {
	for _, pat := range parentsPatterns {
		m := pat.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		name := strings.TrimSpace(m[1])
		name = reParentsLabelPrefix.ReplaceAllString(name, "")
		name = reParentsTrailing.ReplaceAllString(name, "")
		name = reLeadingPeriods.ReplaceAllString(name, "")
		name = reInitialSpacing.ReplaceAllString(name, "${1}. ${2}")
		name = titleCaseTokens(name)
		name = reNameZero.ReplaceAllString(name, "${1}O${2}")
		if len(name) > 2 {
			return textnorm.Normalize(name)
		}
	}
	return ""
}
