package llm

import (
	"testing"
)

func TestMergeFieldsHighConfidenceKeepsLocal(t *testing.T) {
	extracted := map[string]string{"name": "John Doe", "phone": "9876543210"}
	cleanup := DocumentFields{Name: "Johnny Doe", Email: "j@x.com"}

	merged := MergeFields(extracted, 0.9, cleanup, discardLogger())
	if merged["name"] != "John Doe" {
		t.Errorf("name = %q, want local value kept at high confidence", merged["name"])
	}
	if _, ok := merged["email"]; ok {
		t.Error("cleanup email applied despite high OCR confidence")
	}
}

func TestMergeFieldsFillsMissing(t *testing.T) {
	extracted := map[string]string{"name": "John Doe"}
	cleanup := DocumentFields{Name: "Johnny Doe", Email: "johndoe@gmail.com", Age: "27"}

	merged := MergeFields(extracted, 0.5, cleanup, discardLogger())
	if merged["name"] != "John Doe" {
		t.Errorf("name = %q, want confident local value kept", merged["name"])
	}
	if merged["email"] != "johndoe@gmail.com" {
		t.Errorf("email = %q, want cleanup value for missing field", merged["email"])
	}
	if merged["age"] != "27" {
		t.Errorf("age = %q, want cleanup value for missing field", merged["age"])
	}
}

func TestMergeFieldsConfidenceFloorIsExclusive(t *testing.T) {
	// An address scores at the 0.65 base, which sits exactly on the floor.
	// The floor is exclusive, so a non-empty local value is kept; only a
	// blank local value yields to the cleanup result.
	extracted := map[string]string{"address": "x", "phone": " "}
	cleanup := DocumentFields{Address: "42 Park Street, Indiranagar", Phone: "9876543210"}

	merged := MergeFields(extracted, 0.5, cleanup, discardLogger())
	if merged["address"] != "x" {
		t.Errorf("address = %q, want at-floor local value kept", merged["address"])
	}
	if merged["phone"] != "9876543210" {
		t.Errorf("phone = %q, want blank local value replaced", merged["phone"])
	}
}

func TestMergeFieldsLeavesNonContractFieldsAlone(t *testing.T) {
	extracted := map[string]string{"blood_group": "O+", "pin_code": "560038"}
	cleanup := DocumentFields{Name: "John Doe"}

	merged := MergeFields(extracted, 0.1, cleanup, discardLogger())
	if merged["blood_group"] != "O+" || merged["pin_code"] != "560038" {
		t.Error("non-contract fields must pass through untouched")
	}
	if merged["name"] != "John Doe" {
		t.Errorf("name = %q, want cleanup fill", merged["name"])
	}
}

func TestMergeFieldsDoesNotMutateInput(t *testing.T) {
	extracted := map[string]string{"name": ""}
	cleanup := DocumentFields{Name: "John Doe"}

	_ = MergeFields(extracted, 0.1, cleanup, discardLogger())
	if extracted["name"] != "" {
		t.Error("input map mutated")
	}
}

func TestFieldConfidence(t *testing.T) {
	tests := []struct {
		field string
		value string
		want  float32
	}{
		{"email", "johndoe@gmail.com", 0.95},
		{"email", "not-an-email", 0.9},
		{"phone", "9876543210", 0.95},
		{"phone", "123", 0.85},
		{"age", "27", 0.9},
		{"age", "999", 0.8},
		{"name", "John Doe", 0.8},
		{"name", "John", 0.7},
		{"address", "42 Park Street", 0.65},
		{"blood_group", "O+", 0.7},
		{"name", "   ", 0.0},
	}
	for _, tt := range tests {
		got := FieldConfidence(tt.field, tt.value)
		if diff := got - tt.want; diff > 0.001 || diff < -0.001 {
			t.Errorf("FieldConfidence(%q, %q) = %v, want %v", tt.field, tt.value, got, tt.want)
		}
	}
}

func TestDocumentConfidence(t *testing.T) {
	fields := map[string]string{
		"name":  "John Doe",
		"email": "johndoe@gmail.com",
	}
	// field avg = (0.8 + 0.95) / 2 = 0.875; extraction rate = 1.0
	// overall = 0.8*0.4 + 0.875*0.4 + 1.0*0.2 = 0.87
	got := DocumentConfidence(fields, 0.8)
	if got < 0.86 || got > 0.88 {
		t.Errorf("DocumentConfidence = %v, want ~0.87", got)
	}

	if got := DocumentConfidence(nil, 0.5); got < 0.199 || got > 0.201 {
		t.Errorf("DocumentConfidence(nil) = %v, want 0.2 from ocr weight only", got)
	}
}
