package fields

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Date separators tolerate l/I/| (misread slashes) and groups tolerate O/o
// (misread zeros); both are corrected inside the matched groups only.
var dobPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:date\s+of\s+birth|dob|birth\s+date|d\.o\.b\.?|date\s+st\s+bisth|date\s+st\s+biosth|date\s+st|birth|bisth|biosth)[:\s\-.]+(\d{1,2})[/.\-lI|](\d{1,2})[/.\-lI|](\d{2,4})`),
	regexp.MustCompile(`(\d{1,2})[/.\-\s|lI](\d{1,2})[/.\-\s|lI](\d{4})`),
	regexp.MustCompile(`(\d{1,2})[/.\-\s|lI](\d{1,2})[/.\-\s|lI](\d{2})\b`),
	regexp.MustCompile(`(\d{1,2})(\d{2})(\d{4})`),
}

var reConfusedDigit = strings.NewReplacer("l", "1", "I", "1", "|", "1", "O", "0", "o", "0")

// extractDateOfBirth returns a validated DD/MM/YYYY date or "".
func extractDateOfBirth(text string) string {
	for _, pat := range dobPatterns {
		m := pat.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		day, dOK := dateGroupInt(m[1])
		month, mOK := dateGroupInt(m[2])
		yearStr := digitsOnly(reConfusedDigit.Replace(m[3]))
		year, yErr := strconv.Atoi(yearStr)
		if !dOK || !mOK || yErr != nil {
			continue
		}
		if day < 1 || day > 31 || month < 1 || month > 12 {
			continue
		}
		if len(yearStr) == 2 {
			year = resolveTwoDigitYear(year)
		}
		if year < 1900 || year > 2100 {
			continue
		}
		return fmt.Sprintf("%02d/%02d/%04d", day, month, year)
	}
	return ""
}

func dateGroupInt(g string) (int, bool) {
	s := digitsOnly(reConfusedDigit.Replace(g))
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	return n, err == nil
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// resolveTwoDigitYear maps a 2-digit year: below 50 to 20XX, 50 and above to
// 19XX.
func resolveTwoDigitYear(y int) int {
	if y < 50 {
		return 2000 + y
	}
	return 1900 + y
}

var agePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:age|years?\s+old|yrs?\.?)[:\s\-]+(\d{1,3})`),
	regexp.MustCompile(`(?i)\b(\d{1,3})\s*(?:years?\s+old|yrs?\.?|y\.?o\.?)`),
	regexp.MustCompile(`(?i)age[:\s]+(\d{1,3})`),
}

var ageDOBPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:date\s+of\s+birth|dob|birth\s+date|d\.o\.b\.?|date\s+st\s+bisth)[:\s\-]+(\d{1,2})[/.\-](\d{1,2})[/.\-](\d{2,4})`),
	regexp.MustCompile(`(\d{1,2})[/.\-](\d{1,2})[/.\-](\d{4})`),
	regexp.MustCompile(`(\d{4})[/.\-](\d{1,2})[/.\-](\d{1,2})`),
}

// extractAge matches explicit age labels first, then derives age from a birth
// date. There is no bare-number fallback: loose digits in a document are far
// more likely to be phone or ID numbers than an age.
func extractAge(text string, now time.Time) string {
	for _, pat := range agePatterns {
		for _, m := range pat.FindAllStringSubmatch(text, -1) {
			age, err := strconv.Atoi(m[1])
			if err == nil && age >= 1 && age <= 150 {
				return strconv.Itoa(age)
			}
		}
	}

	for _, pat := range ageDOBPatterns {
		m := pat.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		year := 0
		switch {
		case len(m[1]) == 4:
			year, _ = strconv.Atoi(m[1])
		case len(m[3]) == 4:
			year, _ = strconv.Atoi(m[3])
		case len(m[3]) == 2:
			y, err := strconv.Atoi(m[3])
			if err != nil {
				continue
			}
			year = resolveTwoDigitYear(y)
		default:
			continue
		}
		age := now.Year() - year
		if age >= 1 && age <= 150 {
			return strconv.Itoa(age)
		}
	}

	return ""
}
