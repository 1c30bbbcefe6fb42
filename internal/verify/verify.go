// Package verify compares user-submitted field values against extracted ones
// with fuzzy string matching. Scores are symmetric and case-insensitive.
package verify

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/agext/levenshtein"

	"github.com/arjun-krishnan/docuverify/constants"
)

// Mismatch reports one field whose match score fell below the mismatch
// threshold, carrying both values so a caller can show the discrepancy.
type Mismatch struct {
	Field      string  `json:"field"`
	Submitted  string  `json:"submitted"`
	Extracted  string  `json:"extracted"`
	MatchScore float64 `json:"match_score"`
}

// Result is the outcome of one verification run.
type Result struct {
	Matches      map[string]float64 `json:"matches"`
	Mismatches   []Mismatch         `json:"mismatches"`
	OverallScore float64            `json:"overall_score"`
	Passed       bool               `json:"verification_passed"`
	Error        string             `json:"error,omitempty"`
}

// Score is the fuzzy match score between two values in [0, 1]. Exact match
// (after lowercasing and trimming) is 1, either side blank is 0, and a
// substring relationship raises the edit-distance ratio to at least the
// substring floor.
func Score(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))

	if a == b {
		if a == "" {
			return 0
		}
		return 1
	}
	if a == "" || b == "" {
		return 0
	}

	ratio := levenshtein.Similarity(a, b, nil)
	if strings.Contains(a, b) || strings.Contains(b, a) {
		if ratio < constants.SubstringMatchFloor {
			ratio = constants.SubstringMatchFloor
		}
	}
	return ratio
}

// Verifier scores submitted fields against an extraction result.
type Verifier struct {
	logger *slog.Logger
}

func NewVerifier(logger *slog.Logger) *Verifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Verifier{logger: logger}
}

// Verify scores every non-blank submitted field against its extracted
// counterpart. A field missing from the extraction scores 0. Passing requires
// the overall mean to reach the pass threshold with no individual mismatch.
func (v *Verifier) Verify(submitted, extracted map[string]string) Result {
	fields := make([]string, 0, len(submitted))
	for name, value := range submitted {
		if strings.TrimSpace(value) != "" {
			fields = append(fields, name)
		}
	}
	if len(fields) == 0 {
		return Result{
			Matches:    map[string]float64{},
			Mismatches: []Mismatch{},
			Error:      "no valid fields submitted for verification",
		}
	}
	sort.Strings(fields)

	matches := make(map[string]float64, len(fields))
	var mismatches []Mismatch
	var sum float64
	for _, name := range fields {
		sub := strings.TrimSpace(submitted[name])
		ext := strings.TrimSpace(extracted[name])

		score := Score(sub, ext)
		matches[name] = score
		sum += score

		if score < constants.VerifyMismatchThreshold {
			mismatches = append(mismatches, Mismatch{
				Field:      name,
				Submitted:  sub,
				Extracted:  ext,
				MatchScore: score,
			})
		}
	}

	overall := sum / float64(len(fields))
	res := Result{
		Matches:      matches,
		Mismatches:   mismatches,
		OverallScore: overall,
		Passed:       overall >= constants.VerifyPassThreshold && len(mismatches) == 0,
	}
	if res.Mismatches == nil {
		res.Mismatches = []Mismatch{}
	}

	v.logger.Info("verify.done",
		"fields", len(fields),
		"mismatches", len(res.Mismatches),
		"overall", overall,
		"passed", res.Passed,
	)
	return res
}
