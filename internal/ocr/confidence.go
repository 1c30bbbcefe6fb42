package ocr

import (
	"regexp"
	"strings"
)

var (
	reFieldLabel = regexp.MustCompile(`\b(name|age|gender|sex|address|phone|mobile|email|city|state|country|pin\s*code|date\s+of\s+birth|dob|aadhaar|pan|passport)\b`)
	reDateShape  = regexp.MustCompile(`\b\d{1,2}[/\-.]\d{1,2}[/\-.]\d{2,4}\b`)
	reContact    = regexp.MustCompile(`\b\d{10}\b|\b\d{5}\s\d{5}\b|@|\bgmail\b|\byahoo\b`)
)

func countLabels(s string) int    { return len(reFieldLabel.FindAllString(s, -1)) }
func hasDateShape(s string) bool  { return reDateShape.MatchString(s) }
func hasContactHint(s string) bool { return reContact.MatchString(s) }

// heuristicConfidence estimates recognition quality from identity-document
// artifacts in the decoded text. Field labels are the strongest signal: a
// scan that decodes badly loses its labels first.
func heuristicConfidence(txt string) float32 {
	txtL := strings.ToLower(txt)
	score := float32(0.2) // base
	switch labels := countLabels(txtL); {
	case labels >= 4:
		score += 0.35
	case labels >= 2:
		score += 0.25
	case labels == 1:
		score += 0.1
	}
	if hasDateShape(txtL) {
		score += 0.15
	}
	if hasContactHint(txtL) {
		score += 0.15
	}
	if len(txt) > 120 {
		score += 0.1
	} // enough content
	if score > 1.0 {
		score = 1.0
	}
	return score
}
