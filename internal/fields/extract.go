package fields

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/arjun-krishnan/docuverify/constants"
	"github.com/arjun-krishnan/docuverify/internal/language"
	"github.com/arjun-krishnan/docuverify/internal/textnorm"
)

// Extractor runs the full field-extraction pipeline. Stateless aside from the
// injected clock and logger; safe for concurrent use.
type Extractor struct {
	logger *slog.Logger
	now    func() time.Time
}

func NewExtractor(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{logger: logger, now: time.Now}
}

// ExtractAll decodes OCR text into a structured field map. Every canonical
// extractor runs against the normalized text first and falls back to the raw
// text; dynamic mining runs on both. Absent fields are absent keys, never
// empty strings.
func (e *Extractor) ExtractAll(text string, lang language.Tag) ExtractionResult {
	if lang == "" {
		lang = language.Detect(text, language.DefaultSampleSize)
	}
	if text == "" {
		return ExtractionResult{
			Fields:           map[string]string{},
			ConfidenceScores: map[string]float64{},
			LanguageDetected: lang,
		}
	}

	normalized := textnorm.Normalize(text)
	run := func(fn func(string) string) string {
		if v := fn(normalized); v != "" {
			return v
		}
		return fn(text)
	}

	// phone and email first: several other extractors scrub them out of
	// their candidate text
	phone := run(extractPhone)
	email := run(extractEmail)

	fields := make(map[string]string)
	put := func(key, value string) {
		if value != "" {
			fields[key] = value
		}
	}

	fullName := extractName(normalized, lang)
	if fullName == "" {
		fullName = extractName(text, lang)
	}
	put(constants.FieldName, fullName)
	if fullName != "" {
		nc := ParseNameComponents(fullName)
		put(constants.FieldFirstName, nc.First)
		put(constants.FieldMiddleName, nc.Middle)
		put(constants.FieldLastName, nc.Last)
	}

	put(constants.FieldAge, e.runAge(normalized, text))
	put(constants.FieldGender, run(extractGender))
	put(constants.FieldPhone, phone)
	put(constants.FieldEmail, email)
	put(constants.FieldAddress, runWith(normalized, text, func(t string) string {
		return extractAddress(t, phone, email)
	}))
	put(constants.FieldDateOfBirth, run(extractDateOfBirth))
	put(constants.FieldParentsName, run(extractParentsName))
	put(constants.FieldOccupation, run(extractOccupation))
	put(constants.FieldPinCode, runWith(normalized, text, func(t string) string {
		return extractPINCode(t, phone)
	}))
	put(constants.FieldAadhaar, run(extractAadhaar))
	put(constants.FieldPAN, run(extractPAN))
	put(constants.FieldPassport, run(extractPassport))

	// Non-Latin documents label their fields in the document's own script;
	// the keyword tables anchor those values when the Latin patterns saw
	// nothing.
	if lang != language.English {
		for kind, key := range map[string]string{
			"name":    constants.FieldName,
			"address": constants.FieldAddress,
			"phone":   constants.FieldPhone,
			"email":   constants.FieldEmail,
			"gender":  constants.FieldGender,
			"age":     constants.FieldAge,
		} {
			if fields[key] != "" {
				continue
			}
			v := labeledValue(text, kind, lang)
			if v == "" {
				continue
			}
			if ft := constants.TypeOfField(key); ft != constants.TypeGeneric {
				cv := textnorm.CleanValue(v, ft)
				if cv == "" {
					continue
				}
				if key == constants.FieldAge && !plausibleAge(cv) {
					continue
				}
			}
			put(key, v)
		}
	}

	e.mergeDynamic(fields, text, normalized)
	e.decomposeAddress(fields, text)

	put(constants.FieldCity, extractCity(normalized))
	put(constants.FieldState, extractState(normalized))
	put(constants.FieldCountry, extractCountry(normalized))

	// type-specific cleaning pass; a field whose cleaned value is empty is
	// dropped unless the pre-clean value was itself usable
	cleaned := make(map[string]string, len(fields))
	for name, value := range fields {
		cv := textnorm.CleanValue(value, constants.TypeOfField(name))
		if cv != "" {
			cleaned[name] = cv
		} else if v := strings.TrimSpace(value); v != "" {
			cleaned[name] = v
		}
	}

	scores := make(map[string]float64, len(cleaned))
	for name := range cleaned {
		scores[name] = constants.DefaultFieldConfidence
	}

	e.logger.Info("fields.extract.ok",
		"language", lang,
		"extracted", len(cleaned),
	)
	return ExtractionResult{
		Fields:           cleaned,
		ConfidenceScores: scores,
		LanguageDetected: lang,
	}
}

// plausibleAge guards the dynamic-merge path: a mined age value obeys the
// same bounds the dedicated extractor enforces.
func plausibleAge(v string) bool {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	return err == nil && n >= 1 && n <= 150
}

func runWith(normalized, raw string, fn func(string) string) string {
	if v := fn(normalized); v != "" {
		return v
	}
	return fn(raw)
}

func (e *Extractor) runAge(normalized, raw string) string {
	now := e.now()
	if v := extractAge(normalized, now); v != "" {
		return v
	}
	return extractAge(raw, now)
}

// mergeDynamic folds mined fields into the canonical set. An existing value
// is overwritten only by a strictly longer one.
func (e *Extractor) mergeDynamic(fields map[string]string, raw, normalized string) {
	mined := MineFields(raw)
	for k, v := range MineFields(normalized) {
		if existing, ok := mined[k]; !ok || len(v) > len(existing) {
			mined[k] = v
		}
	}

	for key, value := range mined {
		cv := textnorm.Normalize(value)
		if len(cv) < 2 {
			continue
		}
		// a mined value may not displace or introduce a typed field unless it
		// survives that type's cleaner; a run-together email or an
		// out-of-range age is longer but not better
		if ft := constants.TypeOfField(key); ft != constants.TypeGeneric {
			if textnorm.CleanValue(cv, ft) == "" {
				continue
			}
			if key == constants.FieldAge && !plausibleAge(cv) {
				continue
			}
		}
		if existing, ok := fields[key]; ok && existing != "" {
			if len(cv) > len(existing) {
				fields[key] = cv
			}
		} else {
			fields[key] = cv
		}
	}
}

var (
	reAddrLine1Direct = regexp.MustCompile(`(?i)(?:address\s+line\s*1|address\s+linet|adebress\s+linet)[:\s]+([^\n:]+?)(?:\s+address\s+line\s*2|\s+city|\s+state|\s+country|$)`)
	reAddrLine2Direct = regexp.MustCompile(`(?i)(?:address\s+line\s*2)[:\s]+([^\n:]+?)(?:\s+city|\s+state|\s+country|\s+pin|\s+phone|\s+email|$)`)
)

// decomposeAddress splits a resolved address into line1/line2 on comma
// (preferred) or newline, then independently re-attempts direct label
// extraction from the raw text for any slot still empty.
func (e *Extractor) decomposeAddress(fields map[string]string, raw string) {
	if addr, ok := fields[constants.FieldAddress]; ok {
		addr = reEmailShape.ReplaceAllString(addr, "")
		addr = strings.TrimSpace(reManySpaces.ReplaceAllString(addr, " "))
		if addr == "" {
			delete(fields, constants.FieldAddress)
		} else {
			fields[constants.FieldAddress] = addr

			var lines []string
			if strings.Contains(addr, ",") {
				for _, p := range strings.Split(addr, ",") {
					lines = append(lines, strings.TrimSpace(p))
				}
			} else {
				lines = strings.Split(addr, "\n")
			}
			if len(lines) > 0 && lines[0] != "" {
				fields[constants.FieldAddressLine1] = lines[0]
			}
			if len(lines) > 1 && lines[1] != "" {
				fields[constants.FieldAddressLine2] = lines[1]
			}
		}
	}

	if fields[constants.FieldAddressLine1] == "" {
		if m := reAddrLine1Direct.FindStringSubmatch(raw); m != nil {
			v := strings.TrimSpace(reLine1Trailing.ReplaceAllString(m[1], ""))
			if n := textnorm.Normalize(v); n != "" {
				fields[constants.FieldAddressLine1] = n
			}
		}
	}
	if fields[constants.FieldAddressLine2] == "" {
		if m := reAddrLine2Direct.FindStringSubmatch(raw); m != nil {
			v := strings.TrimSpace(reLine2Trailing.ReplaceAllString(m[1], ""))
			if n := textnorm.Normalize(v); n != "" {
				fields[constants.FieldAddressLine2] = n
			}
		}
	}
}
