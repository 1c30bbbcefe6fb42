package fields

import (
	"regexp"
	"strings"
)

// OCR frequently runs address, phone and email together on one physical line,
// so every address candidate has phone/email shapes stripped before return.
var (
	reEmailShape = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	rePhoneShape = regexp.MustCompile(`\b\d{7,15}\b`)
	rePhoneRun   = regexp.MustCompile(`\d{7,15}`)
)

var addressLine1Patterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:address\s+line\s*1|address\s+linet|adebress\s+linet|aderess\s+linet|address\s+linet1)[:\s]+([^\n:]+?)(?:\s+Address\s+Line\s*2|City|State|Country|Pin|Phone|Email|Mobile|Tel|$)`),
	regexp.MustCompile(`(?im)(?:address\s+line\s*1|address\s+linet)[:\s]+([^\n:]+?)(?:$|Address\s+Line\s*2|City|State|Country|Pin|Phone|Email|Mobile|Tel)`),
}

var addressLine2Patterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:address\s+line\s*2|address\s+linet2)[:\s]+([^\n:]+?)(?:\s+City|State|Country|Pin|Phone|Email|Mobile|Tel|$)`),
	regexp.MustCompile(`(?im)(?:address\s+line\s*2)[:\s]+([^\n:]+?)(?:$|City|State|Country|Pin|Phone|Email|Mobile|Tel)`),
}

var addressBlockPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?im)(?:address|residence|location|addr\.?)[:\s]+([^\n:]+?)(?:\s+(?:City|State|Country|Pin|Phone|Email|Mobile|Tel|Mobile\s+Numb|Occupation|Date|Birth|Emailld)|$)`),
	regexp.MustCompile(`(?im)(\d+\s+[A-Z][a-zA-Z]+(?:\s+[A-Z][a-zA-Z]+)*\s+(?:Street|St|Avenue|Ave|Road|Rd|Lane|Ln|Drive|Dr|Boulevard|Blvd|Way|Circle|Ct|Court|Parkway|Pkwy|Place|Pl))(?:\s+(?:City|State|Country|Pin|Phone|Email|Mobile|Tel|Emailld)|$)`),
	regexp.MustCompile(`(?is)(?:address|residence|location|addr\.?)[:\s\-]+(.+?)(?:\n\n|\n(?:phone|email|mobile|tel|name|age|gender|contact|occupation|date|birth)|$)`),
}

var (
	reAddrTrailing  = regexp.MustCompile(`(?i)\s+(City|State|Country|Phone|Email|Name|Age|Gender|Mobile|Tel|Occupation|Date|Birth).*$`)
	reLine1Trailing = regexp.MustCompile(`(?i)\s+(Address\s+Line\s*2|City|State|Country|Pin|Phone|Email|Mobile|Tel).*$`)
	reLine2Trailing = regexp.MustCompile(`(?i)\s+(City|State|Country|Pin|Code|Phone|Email|Mobile|Tel).*$`)
	reStreetLine    = regexp.MustCompile(`(?i)\d+.*(?:street|st|avenue|ave|road|rd|lane|ln|drive|dr|address|addr)`)
	reContactInLine = regexp.MustCompile(`\d{7,15}|@`)
	reManyNewlines  = regexp.MustCompile(`\n+`)
	reManySpaces    = regexp.MustCompile(`\s+`)
)

// extractAddress assembles an address from explicit Address Line 1/2 labels,
// a single labeled block, or a street-suffix line scan, in that order.
// phone/email are the already-extracted values to scrub out of the text first.
func extractAddress(text, phone, email string) string {
	scrubbed := text
	if phone != "" {
		digits := rePhoneSeparators.ReplaceAllString(phone, "")
		scrubbed = strings.ReplaceAll(scrubbed, phone, "")
		scrubbed = strings.ReplaceAll(scrubbed, digits, "")
	}
	if email != "" {
		scrubbed = strings.ReplaceAll(scrubbed, email, "")
	}

	// labeled Address Line 1 / Line 2
	var parts []string
	if v := firstSubmatch(addressLine1Patterns, scrubbed); v != "" {
		v = scrubAddressValue(reLine1Trailing.ReplaceAllString(v, ""))
		if len(v) > 3 {
			parts = append(parts, v)
		}
	}
	if v := firstSubmatch(addressLine2Patterns, scrubbed); v != "" {
		v = scrubAddressValue(reLine2Trailing.ReplaceAllString(v, ""))
		if len(v) > 3 {
			parts = append(parts, v)
		}
	}
	if len(parts) > 0 {
		return collapseSpaces(strings.Join(parts, ", "))
	}

	// single labeled block truncated at the next recognized field label
	for _, pat := range addressBlockPatterns {
		m := pat.FindStringSubmatch(scrubbed)
		if m == nil {
			continue
		}
		addr := strings.TrimSpace(m[1])
		addr = reAddrTrailing.ReplaceAllString(addr, "")
		addr = reEmailShape.ReplaceAllString(addr, "")
		addr = rePhoneShape.ReplaceAllString(addr, "")
		addr = reManyNewlines.ReplaceAllString(addr, " ")
		addr = strings.TrimSpace(reManySpaces.ReplaceAllString(addr, " "))
		if len(addr) > 5 && !strings.HasPrefix(strings.ToLower(addr), "email") && !allDigits(strings.ReplaceAll(addr, " ", "")) {
			if len(addr) > 200 {
				addr = addr[:200]
			}
			return addr
		}
	}

	// line-scan fallback: a street-suffix line plus up to three followers,
	// stopping at the first line carrying a phone or email shape
	lines := strings.Split(scrubbed, "\n")
	var collected []string
	for i, line := range lines {
		if !reStreetLine.MatchString(line) || reContactInLine.MatchString(line) {
			continue
		}
		for j := i; j < len(lines) && j < i+4; j++ {
			if reContactInLine.MatchString(lines[j]) {
				break
			}
			if l := strings.TrimSpace(lines[j]); l != "" {
				collected = append(collected, l)
			}
		}
		break
	}
	if len(collected) > 0 {
		addr := strings.Join(collected, " ")
		addr = rePhoneRun.ReplaceAllString(addr, "")
		addr = reEmailShape.ReplaceAllString(addr, "")
		addr = strings.TrimSpace(reManySpaces.ReplaceAllString(addr, " "))
		if len(addr) > 5 {
			return addr
		}
	}

	return ""
}

func collapseSpaces(s string) string {
	return strings.TrimSpace(reManySpaces.ReplaceAllString(s, " "))
}

func scrubAddressValue(v string) string {
	v = rePhoneRun.ReplaceAllString(v, "")
	v = reEmailShape.ReplaceAllString(v, "")
	return strings.TrimSpace(v)
}

func firstSubmatch(pats []*regexp.Regexp, text string) string {
	for _, pat := range pats {
		if m := pat.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

// Geo label scans. Values are single capitalized tokens truncated at the next
// recognized label.
var (
	reCityLabel    = regexp.MustCompile(`(?i)(?:city|city\s*:)[:\s]+([A-Z][a-zA-Z]+)(?:\s+(?:State|Pin|Phone|Email|Code)|$)`)
	reStateLabel   = regexp.MustCompile(`(?i)(?:state|state\s*:)[:\s]+([A-Z][a-zA-Z]+)(?:\s+(?:Pin|Phone|Email|Code|Country)|$)`)
	reCountryLabel = regexp.MustCompile(`(?i)(?:country|country\s*:)[:\s]+([A-Z][a-zA-Z]+)(?:\s+(?:Pin|Phone|Email|Code|State)|$)`)
	reGeoTrailing  = regexp.MustCompile(`(?i)\s+(State|Country|Pin|Code|Phone|Email).*$`)
)

func extractCity(text string) string {
	if m := reCityLabel.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(reGeoTrailing.ReplaceAllString(m[1], ""))
	}
	return ""
}

func extractState(text string) string {
	if m := reStateLabel.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(reGeoTrailing.ReplaceAllString(m[1], ""))
	}
	return ""
}

func extractCountry(text string) string {
	if m := reCountryLabel.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}
