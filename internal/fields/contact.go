package fields

import (
	"regexp"
	"strings"

	"github.com/arjun-krishnan/docuverify/constants"
	"github.com/arjun-krishnan/docuverify/internal/textnorm"
)

var phonePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:phone|mobile|tel|contact|ph\.?)[:\s\-]*(?:number)?[:\s\-]*(\+?\d{1,3}[-.\s]?\(?\d{1,4}\)?[-.\s]?\d{1,4}[-.\s]?\d{1,9})`),
	regexp.MustCompile(`(\d{7,15})`),
}

var (
	rePhoneLabelPrefix = regexp.MustCompile(`(?i)^(?:phone|mobile|tel|contact|ph|number|numbes|numb|num)\s*[:\-]?\s*`)
	rePhoneSeparators  = regexp.MustCompile(`[-.\s()]`)
)

// extractPhone returns a 7-15 digit phone number, preserving the source
// separators when the match carried any.
func extractPhone(text string) string {
	for _, pat := range phonePatterns {
		for _, m := range pat.FindAllStringSubmatch(text, -1) {
			value := strings.TrimSpace(m[1])
			// the label-anchored pattern can swallow a label word into the
			// capture on garbled layouts
			value = strings.TrimSpace(rePhoneLabelPrefix.ReplaceAllString(value, ""))

			digits := rePhoneSeparators.ReplaceAllString(value, "")
			if len(digits) < 7 || len(digits) > 15 || !allDigits(digits) {
				continue
			}
			if cleaned := textnorm.CleanValue(value, constants.TypePhone); cleaned != "" {
				return cleaned
			}
			if strings.ContainsAny(value, "-. (") {
				return value
			}
			return digits
		}
	}
	return ""
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// Email patterns, most to least specific. The 3-group forms tolerate the
// whitespace OCR likes to insert around @ and the TLD dot.
var emailSplitPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:email|e-mail|mail|email\s+id|emailid|emailld)[:\s\-]*([a-zA-Z0-9._%+\-]+(?:\s+[a-zA-Z0-9._%+\-]+)*)\s*@\s*([a-zA-Z0-9.\-]+)\s*\.\s*([a-zA-Z]{2,})`),
	regexp.MustCompile(`(?i)([a-zA-Z0-9._%+\-]+(?:\s+[a-zA-Z0-9._%+\-]+)*)\s*@\s*([a-zA-Z0-9.\-]+)\s*\.\s*([a-zA-Z]{2,})`),
}

var emailWholePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:email|e-mail|mail|email\s+id|emailid|emailld)[:\s\-]*([a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,})`),
	regexp.MustCompile(`(?i)\b([a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,})\b`),
	regexp.MustCompile(`(?i)([a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.(?:com|net|org|edu|gov|in|co))`),
}

var (
	reEmailPrefix = regexp.MustCompile(`(?i)([a-zA-Z0-9._%+\-]+)\s*@`)
	reLocalODigit = regexp.MustCompile(`([a-z])o(\d)`)
	reLocalStoFix = regexp.MustCompile(`sto(\d)`)
)

// extractEmail reassembles an email address from OCR text, tolerating inserted
// whitespace, a stray leading character, and local-part glyph confusions.
func extractEmail(text string) string {
	for _, pat := range emailSplitPatterns {
		m := pat.FindStringSubmatchIndex(text)
		if m == nil {
			continue
		}
		sub := pat.FindStringSubmatch(text)
		local := strings.ReplaceAll(strings.TrimSpace(sub[1]), " ", "")
		domain := strings.TrimSpace(sub[2])
		tld := strings.TrimSpace(sub[3])

		if local == "" {
			// scan a short window before the match for a plausible prefix
			start := m[0]
			winStart := start - 30
			if winStart < 0 {
				winStart = 0
			}
			if pm := reEmailPrefix.FindStringSubmatch(text[winStart:start]); pm != nil {
				local = strings.ReplaceAll(pm[1], " ", "")
			}
		}
		if local == "" || domain == "" || tld == "" {
			continue
		}
		if email := finishEmail(local + "@" + domain + "." + tld); email != "" {
			return email
		}
	}

	for _, pat := range emailWholePatterns {
		m := pat.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if email := finishEmail(m[1]); email != "" {
			return email
		}
	}

	return ""
}

// finishEmail applies the post-match fixes and validates; returns "" when the
// candidate is not structurally an email.
func finishEmail(email string) string {
	email = strings.ToLower(strings.ReplaceAll(email, " ", ""))

	if len(email) > 5 {
		// OCR sometimes prepends a stray l/I/1/d picked up from the label
		// (the candidate is lowercased by now, so l covers I)
		for len(email) > 1 {
			c := email[0]
			if c != 'l' && c != '1' && c != 'd' {
				break
			}
			rest := email[1:]
			if strings.Count(rest, "@") != 1 {
				break
			}
			email = rest
		}
		if at := strings.Index(email, "@"); at > 0 {
			local := email[:at]
			local = reLocalODigit.ReplaceAllString(local, "${1}r${2}")
			local = reLocalStoFix.ReplaceAllString(local, "str${1}")
			email = local + email[at:]
		}
	}

	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return ""
	}
	local, domain := parts[0], parts[1]
	if len(local) < 1 || len(domain) < 3 || !strings.Contains(domain, ".") {
		return ""
	}
	if cleaned := textnorm.CleanValue(email, constants.TypeEmail); cleaned != "" {
		return cleaned
	}
	return email
}
