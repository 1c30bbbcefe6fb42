package fields

import (
	"testing"
	"time"
)

func TestExtractDateOfBirth(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Date of Birth: 05/10/1998", "05/10/1998"},
		{"Date of Birth: 05l10l1998", "05/10/1998"},
		{"DOB: 5-3-1987", "05/03/1987"},
		{"DOB: 31/12/99", "31/12/1999"},
		{"DOB: 01/01/49", "01/01/2049"},
		{"Birth date 7.8.2001", "07/08/2001"},
		{"no date here", ""},
		{"DOB: 45/13/2000", ""},
	}
	for _, tt := range tests {
		if got := extractDateOfBirth(tt.in); got != tt.want {
			t.Errorf("extractDateOfBirth(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExtractAgeLabeled(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	if got := extractAge("Age: 45", now); got != "45" {
		t.Fatalf("got %q", got)
	}
	if got := extractAge("25 years old", now); got != "25" {
		t.Fatalf("got %q", got)
	}
}

func TestExtractAgeBounds(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	if got := extractAge("Age: 200", now); got != "" {
		t.Fatalf("age 200 accepted: %q", got)
	}
	if got := extractAge("Age: 0", now); got != "" {
		t.Fatalf("age 0 accepted: %q", got)
	}
}

func TestExtractAgeFromBirthYear(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	if got := extractAge("DOB: 01/01/1990", now); got != "35" {
		t.Fatalf("got %q, want 35", got)
	}
}

func TestExtractAgeNoBareNumberFallback(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	if got := extractAge("Roll 42 Marks 88", now); got != "" {
		t.Fatalf("bare number treated as age: %q", got)
	}
}

func TestResolveTwoDigitYear(t *testing.T) {
	if y := resolveTwoDigitYear(49); y != 2049 {
		t.Errorf("49 -> %d", y)
	}
	if y := resolveTwoDigitYear(50); y != 1950 {
		t.Errorf("50 -> %d", y)
	}
}
