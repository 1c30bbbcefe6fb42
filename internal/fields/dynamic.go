package fields

import (
	"regexp"
	"strings"
)

// Four competing line grammars, tried in priority order. The first grammar
// that matches a line wins for that line.
var lineGrammars = []*regexp.Regexp{
	regexp.MustCompile(`^([a-zA-Z][a-zA-Z\s]{1,40}?)\s*:\s*(.+)$`),         // Label: Value
	regexp.MustCompile(`^([a-zA-Z][a-zA-Z\s]{2,40}?)\s+([A-Z0-9@a-z].+)$`), // Label Value
	regexp.MustCompile(`^([a-zA-Z][a-zA-Z\s]{1,40}?)\s*-\s*(.+)$`),         // Label - Value
	regexp.MustCompile(`^([a-zA-Z][a-zA-Z\s]{1,40}?)\s*\.\s*(.+)$`),        // Label. Value
}

var (
	reSlugSpaces  = regexp.MustCompile(`\s+`)
	reSlugStrip   = regexp.MustCompile(`[^\w]`)
	// at most three words: longer all-letter lines are prose, not labels
	reBareLabel   = regexp.MustCompile(`^[a-zA-Z]{2,20}(?:\s+[a-zA-Z]{1,20}){0,2}\s*[:\-.]*\s*$`)
	reValueLabels = regexp.MustCompile(`(?i)^(?:phone|mobile|tel|contact|ph|number|numbes|numb|num|email|mail|emailld|emailid|address|addr|name|neme|mame|occupation|ocupation|job|date|birth|bisth|biosth|parents|parent|ame)\s*[:\-]?\s*`)
	reValueTail   = regexp.MustCompile(`(?i)\s+(Phone|Email|Address|Age|Gender|Mobile|Date|Birth|Occupation|Name|Parents|City|State|Country|Pin|Number|Id|ID|Code).*$`)
	reDateInValue = regexp.MustCompile(`(\d{1,2}[/.\-lI]\d{1,2}[/.\-lI]\d{2,4})`)
)

// labelSynonyms canonicalizes discovered labels (including their common OCR
// corruptions) onto the canonical field set. Labels with no entry keep their
// slug, so genuinely new document fields survive.
var labelSynonyms = map[string]string{
	"neme": "name", "mame": "name", "norme": "name",
	"full_name": "name", "applicant_name": "name",
	"dateofbirth": "date_of_birth", "dateofbisth": "date_of_birth",
	"datestbisth": "date_of_birth", "date_st_bisth": "date_of_birth",
	"dob": "date_of_birth", "birth_date": "date_of_birth",
	"parentsname": "parents_name", "parentsame": "parents_name",
	"parentname": "parents_name", "parent_name": "parents_name",
	"ocupation": "occupation", "profession": "occupation", "job": "occupation",
	"phone_number": "phone", "phonenumber": "phone",
	"mobile": "phone", "mobile_number": "phone", "mobilenumber": "phone",
	"mobilenumbes": "phone", "mobilenumb": "phone", "contact": "phone",
	"email_id": "email", "emailid": "email", "emailld": "email", "e_mail": "email",
	"addr": "address", "residence": "address", "location": "address",
	"pincode": "pin_code", "zip_code": "pin_code", "postal_code": "pin_code",
	"sex": "gender",
}

// MineFields discovers arbitrary label:value fields line by line, then runs a
// secondary pass for label-then-following-lines layouts. When a field is seen
// twice the longer value wins; longer is treated as more complete, not
// necessarily more correct.
func MineFields(text string) map[string]string {
	mined := make(map[string]string)

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if len(line) < 5 {
			continue
		}

		var m []string
		for _, g := range lineGrammars {
			if m = g.FindStringSubmatch(line); m != nil {
				break
			}
		}
		if m == nil {
			continue
		}

		label := strings.TrimSpace(m[1])
		value := strings.TrimSpace(m[2])
		if len(value) < 1 || len(label) < 2 || len(label) > 50 {
			continue
		}
		if strings.EqualFold(value, label) {
			continue
		}

		slug := slugifyLabel(label)
		key := slug
		if canon, ok := labelSynonyms[slug]; ok {
			key = canon
		} else if canon := inferCanonicalKey(slug, value); canon != "" {
			key = canon
		}

		value = reValueLabels.ReplaceAllString(value, "")
		value = strings.TrimSpace(reValueTail.ReplaceAllString(value, ""))

		if key == "date_of_birth" || (strings.Contains(slug, "date") && containsBirthHint(value)) {
			key = "date_of_birth"
			if dm := reDateInValue.FindStringSubmatch(value); dm != nil {
				value = dm[1]
			}
		}

		storeLonger(mined, key, value)
	}

	mineMultiline(text, mined)
	return mined
}

// mineMultiline handles the layout where a label sits alone on its own line
// and the value follows on the next line(s), stopping at the next bare label
// or a blank line.
func mineMultiline(text string, mined map[string]string) {
	lines := strings.Split(text, "\n")
	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" || !reBareLabel.MatchString(line) {
			continue
		}
		label := strings.Trim(line, ":-. \t")
		if len(label) < 2 || len(label) > 50 {
			continue
		}

		var parts []string
		j := i + 1
		for ; j < len(lines); j++ {
			next := strings.TrimSpace(lines[j])
			if next == "" || reBareLabel.MatchString(next) {
				break
			}
			parts = append(parts, next)
		}
		if len(parts) == 0 {
			continue
		}
		value := strings.TrimSpace(reManySpaces.ReplaceAllString(strings.Join(parts, " "), " "))
		if len(value) > 1 {
			storeLonger(mined, slugifyLabel(label), value)
		}
		i = j - 1
	}
}

func slugifyLabel(label string) string {
	slug := strings.ToLower(strings.TrimSpace(label))
	slug = reSlugSpaces.ReplaceAllString(slug, "_")
	return reSlugStrip.ReplaceAllString(slug, "")
}

// inferCanonicalKey catches label variants the synonym table misses by
// substring, e.g. "emergency_phone_no" still lands on a phone-typed key.
func inferCanonicalKey(slug, value string) string {
	switch {
	case strings.HasSuffix(slug, "_name") && strings.Contains(slug, "parent"):
		return "parents_name"
	case strings.Contains(slug, "phone") || strings.Contains(slug, "mobile") || strings.Contains(slug, "contact"):
		return "phone"
	case strings.Contains(slug, "email") || strings.Contains(slug, "mail"):
		return "email"
	case strings.Contains(slug, "address") || strings.Contains(slug, "addr"):
		return "address"
	case strings.Contains(slug, "occupation") || strings.Contains(slug, "job") || strings.Contains(slug, "profession"):
		return "occupation"
	case strings.Contains(slug, "date") && containsBirthHint(value):
		return "date_of_birth"
	}
	return ""
}

func containsBirthHint(value string) bool {
	v := strings.ToLower(value)
	return strings.Contains(v, "birth") || strings.Contains(v, "bisth") ||
		strings.Contains(v, "biosth") || strings.Contains(v, "dob")
}

func storeLonger(m map[string]string, key, value string) {
	if key == "" || len(value) < 2 {
		return
	}
	switch value {
	case "None", "N/A", "NA", "null":
		return
	}
	if existing, ok := m[key]; !ok || len(value) > len(existing) {
		m[key] = value
	}
}
