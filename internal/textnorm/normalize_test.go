package textnorm

import (
	"strings"
	"testing"

	"github.com/arjun-krishnan/docuverify/constants"
)

func TestNormalizeCollapsesWhitespaceAndRuns(t *testing.T) {
	got := Normalize("John    Doe\n\nnaaaame")
	if strings.Contains(got, "  ") {
		t.Fatalf("expected collapsed whitespace, got %q", got)
	}
	if !strings.Contains(got, "naame") {
		t.Fatalf("expected run collapse naaaame -> naame, got %q", got)
	}
}

func TestNormalizeEmptyInput(t *testing.T) {
	if got := Normalize(""); got != "" {
		t.Fatalf("expected empty output for empty input, got %q", got)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	samples := []string{
		"Name: John Doe  Age: 30",
		"Adress: 42 MG Rood, Kamataha 560001",
		"naaaame   jjjjjohn",
		"Email : john doe @ gmail . com",
		"DOB: 05l10l1998 Phone 98765 43210",
	}
	for _, s := range samples {
		once := Normalize(s)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("normalize not idempotent for %q:\n once=%q\ntwice=%q", s, once, twice)
		}
	}
}

func TestNormalizeKeepsDateSeparators(t *testing.T) {
	got := Normalize("DOB: 05l10l1998")
	if !strings.Contains(got, "05/10/1998") {
		t.Fatalf("expected canonical date to survive normalization, got %q", got)
	}
}

func TestNormalizeDropsStraySingleChars(t *testing.T) {
	got := Normalize("John @ Doe")
	if strings.Contains(got, "@") {
		t.Fatalf("expected stray @ token dropped, got %q", got)
	}
}

func TestNormalizeKeepsDevanagari(t *testing.T) {
	got := Normalize("नाम: राम कुमार")
	if !strings.Contains(got, "राम") {
		t.Fatalf("expected Devanagari preserved, got %q", got)
	}
	// combining marks must survive, not just the base consonants
	if !strings.Contains(got, "कुमार") {
		t.Fatalf("expected matras preserved, got %q", got)
	}
}

func TestFixOCRErrorsWordTable(t *testing.T) {
	cases := map[string]string{
		"kamataha": "Karnataka",
		"KAMATAHA": "KARNATAKA",
		"Mame":     "Name",
		"adress":   "address",
	}
	for in, want := range cases {
		got := FixOCRErrors(in)
		if got != want {
			t.Errorf("FixOCRErrors(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFixOCRErrorsPreservesPunctuation(t *testing.T) {
	got := FixOCRErrors("Mame:")
	if got != "Name:" {
		t.Fatalf("expected punctuation preserved, got %q", got)
	}
}

func TestFixOCRErrorsZeroForO(t *testing.T) {
	got := FixOCRErrors("J0hn")
	if got != "JOhn" && got != "J Ohn" {
		// letter-0-letter becomes letter-O-letter before spacing fixes
		t.Fatalf("expected 0 -> O substitution, got %q", got)
	}
	if strings.Contains(got, "0") {
		t.Fatalf("expected no digit 0 left in %q", got)
	}
}

func TestFixOCRErrorsDateSeparators(t *testing.T) {
	got := FixOCRErrors("05l10l1998")
	if !strings.Contains(got, "05/10/1998") {
		t.Fatalf("expected l separators fixed to /, got %q", got)
	}
}

func TestCleanValueName(t *testing.T) {
	got := CleanValue("J0hn  Doe 42", constants.TypeName)
	if strings.ContainsAny(got, "0123456789") {
		t.Fatalf("expected digits removed from name, got %q", got)
	}
}

func TestCleanValueNameKeepsCombiningMarks(t *testing.T) {
	if got := CleanValue("राम कुमार", constants.TypeName); got != "राम कुमार" {
		t.Fatalf("expected Devanagari name unchanged, got %q", got)
	}
}

func TestCleanValueEmailRequiresAt(t *testing.T) {
	if got := CleanValue("not an email", constants.TypeEmail); got != "" {
		t.Fatalf("expected empty for value without @, got %q", got)
	}
	got := CleanValue("john doe@gmail.com", constants.TypeEmail)
	if strings.Contains(got, " ") {
		t.Fatalf("expected spaces stripped from email, got %q", got)
	}
}

func TestCleanValuePhone(t *testing.T) {
	got := CleanValue("+91 98860-12345", constants.TypePhone)
	for _, r := range got {
		if !strings.ContainsRune("0123456789+-()", r) {
			t.Fatalf("unexpected rune %q in cleaned phone %q", r, got)
		}
	}
}

func TestCleanValueNumber(t *testing.T) {
	if got := CleanValue("PIN: 560 001", constants.TypeNumber); got != "560001" {
		t.Fatalf("expected digit-only 560001, got %q", got)
	}
}

func TestCleanValueEmptyIn(t *testing.T) {
	if got := CleanValue("", constants.TypeGeneric); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}
