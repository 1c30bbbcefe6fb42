package verify

import (
	"io"
	"log/slog"
	"math"
	"testing"
)

func testVerifier() *Verifier {
	return NewVerifier(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestScore(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"John Doe", "john doe", 1.0},
		{"  John Doe ", "John Doe", 1.0},
		{"", "John Doe", 0.0},
		{"John Doe", "", 0.0},
		{"", "", 0.0},
		{"Jon Doe", "John Doe", 0.875}, // one edit over eight runes
	}
	for _, tt := range tests {
		if got := Score(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Score(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestScoreSubstringFloor(t *testing.T) {
	if got := Score("Doe", "John Doe"); got < 0.85 {
		t.Fatalf("substring score = %v, want >= 0.85", got)
	}
}

func TestVerifyAllExact(t *testing.T) {
	res := testVerifier().Verify(
		map[string]string{"name": "John Doe", "age": "30"},
		map[string]string{"name": "John Doe", "age": "30"},
	)
	if !res.Passed {
		t.Fatalf("expected pass, got %+v", res)
	}
	if res.OverallScore != 1.0 {
		t.Errorf("overall = %v", res.OverallScore)
	}
	if len(res.Mismatches) != 0 {
		t.Errorf("mismatches = %v", res.Mismatches)
	}
}

func TestVerifyNearMissFails(t *testing.T) {
	res := testVerifier().Verify(
		map[string]string{"name": "Jon Doe", "age": "30"},
		map[string]string{"name": "John Doe", "age": "31"},
	)
	if res.Passed {
		t.Fatal("expected verification to fail")
	}
	// name is one edit away and clears the mismatch threshold; the age does not
	if len(res.Mismatches) != 1 || res.Mismatches[0].Field != "age" {
		t.Fatalf("mismatches = %+v", res.Mismatches)
	}
	m := res.Mismatches[0]
	if m.Submitted != "30" || m.Extracted != "31" {
		t.Errorf("mismatch values = %+v", m)
	}
	if m.MatchScore >= 0.8 {
		t.Errorf("mismatch score = %v", m.MatchScore)
	}
}

func TestVerifyMissingExtractedField(t *testing.T) {
	res := testVerifier().Verify(
		map[string]string{"pan": "ABCDE1234F"},
		map[string]string{},
	)
	if res.Passed {
		t.Fatal("expected fail")
	}
	if res.Matches["pan"] != 0 {
		t.Errorf("score for missing field = %v", res.Matches["pan"])
	}
	if len(res.Mismatches) != 1 || res.Mismatches[0].Extracted != "" {
		t.Errorf("mismatches = %+v", res.Mismatches)
	}
}

func TestVerifyNoValidSubmittedFields(t *testing.T) {
	res := testVerifier().Verify(map[string]string{"name": "  "}, map[string]string{"name": "John"})
	if res.Passed || res.Error == "" {
		t.Fatalf("expected explicit error state, got %+v", res)
	}
	if res.OverallScore != 0 {
		t.Errorf("overall = %v", res.OverallScore)
	}
}

func TestVerifyHighMeanStillFailsOnMismatch(t *testing.T) {
	// seven exact matches push the mean above the pass threshold, but a single
	// mismatch must still fail the run
	submitted := map[string]string{
		"a": "x1", "b": "x2", "c": "x3", "d": "x4",
		"e": "x5", "f": "x6", "g": "x7", "age": "30",
	}
	extracted := map[string]string{
		"a": "x1", "b": "x2", "c": "x3", "d": "x4",
		"e": "x5", "f": "x6", "g": "x7", "age": "99",
	}
	res := testVerifier().Verify(submitted, extracted)
	if res.OverallScore < 0.85 {
		t.Fatalf("setup wrong, overall = %v", res.OverallScore)
	}
	if res.Passed {
		t.Fatal("expected fail due to mismatch")
	}
}
