package llm

import (
	"strconv"
	"strings"
	"unicode"
)

// baseConfidences reflects how reliably each field type survives OCR noise.
// Emails and phones carry strong shape signals; free-form addresses do not.
var baseConfidences = map[string]float32{
	"name":    0.7,
	"age":     0.8,
	"gender":  0.75,
	"phone":   0.85,
	"email":   0.9,
	"address": 0.65,
}

// FieldConfidence scores a single extracted value by its type's base
// reliability plus a quality bump when the value has the expected shape.
func FieldConfidence(fieldName, value string) float32 {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0.0
	}

	base, ok := baseConfidences[fieldName]
	if !ok {
		base = 0.7
	}

	switch fieldName {
	case "email":
		if strings.Contains(value, "@") && strings.Contains(value, ".") {
			return min32(0.95, base+0.1)
		}
	case "phone":
		digits := 0
		for _, r := range value {
			if unicode.IsDigit(r) {
				digits++
			}
		}
		if digits >= 10 && digits <= 15 {
			return min32(0.95, base+0.1)
		}
	case "age":
		if n, err := strconv.Atoi(value); err == nil && n >= 1 && n <= 150 {
			return min32(0.95, base+0.1)
		}
	case "name":
		if len(strings.Fields(value)) >= 2 {
			return min32(0.9, base+0.1)
		}
	}
	return base
}

// FieldConfidences scores every entry of a field map.
func FieldConfidences(fields map[string]string) map[string]float32 {
	out := make(map[string]float32, len(fields))
	for k, v := range fields {
		out[k] = FieldConfidence(k, v)
	}
	return out
}

// DocumentConfidence blends recognition quality, per-field confidence and
// extraction coverage into one document-level score.
func DocumentConfidence(fields map[string]string, ocrConfidence float32) float32 {
	confs := FieldConfidences(fields)

	var fieldAvg float32
	if len(confs) > 0 {
		var sum float32
		for _, c := range confs {
			sum += c
		}
		fieldAvg = sum / float32(len(confs))
	}

	var extractionRate float32
	if len(fields) > 0 {
		extracted := 0
		for _, v := range fields {
			if strings.TrimSpace(v) != "" {
				extracted++
			}
		}
		extractionRate = float32(extracted) / float32(len(fields))
	}

	overall := ocrConfidence*0.4 + fieldAvg*0.4 + extractionRate*0.2
	if overall > 1.0 {
		overall = 1.0
	}
	if overall < 0.0 {
		overall = 0.0
	}
	return overall
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}
