package fields

import (
	"fmt"
	"regexp"
	"strings"
)

var pinPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:pin\s+code|pincode|zip\s+code|postal\s+code|zip|p\.?i\.?n\.?)[:\s\-]+(\d{4,6})\b`),
	regexp.MustCompile(`(?i)(?:pin|pincode|zip)[:\s\-]+(\d{4,6})\b`),
	regexp.MustCompile(`(?i)(?:address|city|state|country|location|pincode)[^\d]*(\d{4,6})(?:\s*(?:phone|email|mobile|tel|$))`),
}

// extractPINCode finds a 4-6 digit postal code. The already-extracted phone
// number is scrubbed from the text first and any candidate that is a
// substring or prefix of it is rejected, since a phone number sliced by a
// line break looks exactly like a PIN.
func extractPINCode(text, phone string) string {
	scrubbed := text
	var phoneDigits string
	if phone != "" {
		phoneDigits = rePhoneSeparators.ReplaceAllString(phone, "")
		scrubbed = strings.ReplaceAll(scrubbed, phone, " ")
		scrubbed = strings.ReplaceAll(scrubbed, phoneDigits, " ")
	}

	for _, pat := range pinPatterns {
		for _, m := range pat.FindAllStringSubmatch(scrubbed, -1) {
			pin := strings.TrimSpace(m[1])
			if len(pin) < 4 || len(pin) > 6 || !allDigits(pin) {
				continue
			}
			if phoneDigits != "" && (strings.Contains(phoneDigits, pin) || strings.HasPrefix(phoneDigits, pin)) {
				continue
			}
			return pin
		}
	}
	return ""
}

var aadhaarPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:aadhaar|aadhar|uid)[:\s\-]+(\d{4}\s?\d{4}\s?\d{4})`),
	regexp.MustCompile(`(?i)(?:aadhaar|aadhar|uid)[:\s\-]+(\d{12})`),
	regexp.MustCompile(`\b(\d{4}\s\d{4}\s\d{4})\b`),
	regexp.MustCompile(`\b(\d{12})\b`),
}

// extractAadhaar returns a 12-digit Aadhaar number canonicalized to
// "XXXX XXXX XXXX".
func extractAadhaar(text string) string {
	for _, pat := range aadhaarPatterns {
		m := pat.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		digits := strings.ReplaceAll(m[1], " ", "")
		if len(digits) == 12 && allDigits(digits) {
			return fmt.Sprintf("%s %s %s", digits[:4], digits[4:8], digits[8:])
		}
	}
	return ""
}

var (
	rePANLabeled = regexp.MustCompile(`(?i)(?:pan|permanent\s+account\s+number)[:\s\-]+([A-Z]{5}\d{4}[A-Z])`)
	rePANBare    = regexp.MustCompile(`\b([A-Z]{5}\d{4}[A-Z])\b`)
)

// extractPAN matches the fixed PAN layout: five letters, four digits, one
// letter.
func extractPAN(text string) string {
	if m := rePANLabeled.FindStringSubmatch(text); m != nil {
		return strings.ToUpper(m[1])
	}
	if m := rePANBare.FindStringSubmatch(text); m != nil {
		return strings.ToUpper(m[1])
	}
	return ""
}

var passportPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:passport|passport\s+no|passport\s+number)[:\s\-]+([A-Z0-9]{6,12})`),
	regexp.MustCompile(`\b([A-Z]{1,2}\d{6,9})\b`),
}

func extractPassport(text string) string {
	for _, pat := range passportPatterns {
		m := pat.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		p := strings.ToUpper(m[1])
		if len(p) >= 6 && len(p) <= 12 {
			return p
		}
	}
	return ""
}
