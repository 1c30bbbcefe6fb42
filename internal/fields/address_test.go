package fields

import "testing"

func TestExtractAddressLabeledLines(t *testing.T) {
	got := extractAddress("Address Line 1: 42 Park Street\nAddress Line 2: Indiranagar", "", "")
	if got != "42 Park Street, Indiranagar" {
		t.Fatalf("got %q", got)
	}
}

func TestExtractAddressLabeledBlock(t *testing.T) {
	got := extractAddress("Address: 12 MG Road Bangalore Phone: 9876543210", "9876543210", "")
	if got != "12 MG Road Bangalore" {
		t.Fatalf("got %q", got)
	}
}

func TestExtractAddressStreetLineFallback(t *testing.T) {
	got := extractAddress("42 Park Street\nIndiranagar\nBangalore", "", "")
	if got != "42 Park Street Indiranagar Bangalore" {
		t.Fatalf("got %q", got)
	}
}

func TestExtractAddressScrubsContacts(t *testing.T) {
	got := extractAddress("Address: 12 MG Road jane@mail.com", "", "jane@mail.com")
	if got != "12 MG Road" {
		t.Fatalf("got %q", got)
	}
}

func TestGeoLabelScans(t *testing.T) {
	text := "City Bangalore State Karnataka Country India Pin 560038"
	if got := extractCity(text); got != "Bangalore" {
		t.Errorf("city = %q", got)
	}
	if got := extractState(text); got != "Karnataka" {
		t.Errorf("state = %q", got)
	}
	if got := extractCountry(text); got != "India" {
		t.Errorf("country = %q", got)
	}
}
