// Package fields decodes noisy OCR text into a structured field map. Every
// extractor follows the same policy: ordered pattern strategies from most
// specific (explicit label) to least specific (structural fallback), first
// structurally valid match wins, and failure of any single extractor yields
// field absence rather than an error.
package fields

import (
	"strings"

	"github.com/arjun-krishnan/docuverify/internal/language"
)

// ExtractionResult is the immutable outcome of one extraction call. Fields
// holds extracted values only; a missing key is the only "not found" signal,
// never an empty string.
type ExtractionResult struct {
	Fields           map[string]string  `json:"fields"`
	ConfidenceScores map[string]float64 `json:"confidence_scores"`
	LanguageDetected language.Tag       `json:"language_detected"`
}

// Multilingual label keywords. Extraction patterns are Latin-script; these
// tables let the dynamic miner and label scans recognize Hindi and Arabic
// document labels as well.
var (
	nameKeywords = map[language.Tag][]string{
		language.English: {"name", "full name", "applicant name", "your name", "first name", "last name"},
		language.Hindi:   {"नाम", "पूरा नाम", "आवेदक का नाम", "आपका नाम"},
		language.Arabic:  {"الإسم", "الاسم الكامل", "اسم مقدم الطلب", "اسمك"},
	}
	addressKeywords = map[language.Tag][]string{
		language.English: {"address", "residence", "location", "addr", "street", "city", "state", "country"},
		language.Hindi:   {"पता", "निवास", "स्थान", "शहर", "राज्य", "देश"},
		language.Arabic:  {"العنوان", "السكن", "الموقع", "المدينة", "الدولة", "البلد"},
	}
	phoneKeywords = map[language.Tag][]string{
		language.English: {"phone", "mobile", "tel", "contact", "ph"},
		language.Hindi:   {"फोन", "मोबाइल", "संपर्क", "टेलीफोन"},
		language.Arabic:  {"الهاتف", "الجوال", "التليفون", "اتصل"},
	}
	emailKeywords = map[language.Tag][]string{
		language.English: {"email", "e-mail", "mail"},
		language.Hindi:   {"ईमेल", "मेल"},
		language.Arabic:  {"البريد", "البريد الإلكتروني", "إيميل"},
	}
	genderKeywords = map[language.Tag][]string{
		language.English: {"gender", "sex"},
		language.Hindi:   {"लिंग"},
		language.Arabic:  {"الجنس"},
	}
	ageKeywords = map[language.Tag][]string{
		language.English: {"age", "years old", "yrs", "yo"},
		language.Hindi:   {"उम्र", "वर्ष", "आयु"},
		language.Arabic:  {"العمر", "سنوات", "سنة"},
	}
)

// keywordsFor returns the label keyword table for a field kind and language
// tag, falling back to English for Multi and unknown tags.
func keywordsFor(kind string, lang language.Tag) []string {
	var table map[language.Tag][]string
	switch kind {
	case "name":
		table = nameKeywords
	case "address":
		table = addressKeywords
	case "phone":
		table = phoneKeywords
	case "email":
		table = emailKeywords
	case "gender":
		table = genderKeywords
	case "age":
		table = ageKeywords
	default:
		return nil
	}
	if kw, ok := table[lang]; ok {
		return kw
	}
	return table[language.English]
}

// labeledValue scans text line by line for a label keyword in the document's
// own script and returns the value following it on the same line. This is the
// non-Latin counterpart to the regex extractors, whose patterns only anchor
// on Latin labels. Case folding is byte-length preserving for both the ASCII
// and the Devanagari/Arabic keyword sets, so slicing by keyword length is
// safe.
func labeledValue(text, kind string, lang language.Tag) string {
	kws := keywordsFor(kind, lang)
	if len(kws) == 0 {
		return ""
	}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)
		for _, kw := range kws {
			if !strings.HasPrefix(lower, strings.ToLower(kw)) {
				continue
			}
			value := strings.TrimLeft(line[len(kw):], ":-. \t")
			value = strings.TrimSpace(value)
			if value != "" {
				return value
			}
		}
	}
	return ""
}
