package history

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/arjun-krishnan/docuverify/internal/common"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	dsn := filepath.Join(t.TempDir(), "history.db")
	s, err := Open(context.Background(), dsn, logger)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	})
	return s
}

func TestSaveAndGetExtraction(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	rec := &ExtractionRecord{
		Filename:           "scan.png",
		Language:           "en",
		Method:             "image-ocr",
		OCRConfidence:      0.82,
		DocumentConfidence: 0.79,
		FallbackUsed:       true,
		Fields:             map[string]string{"name": "John Doe", "age": "27"},
		Scores:             map[string]float32{"name": 0.8, "age": 0.8},
	}
	if err := s.SaveExtraction(ctx, rec); err != nil {
		t.Fatalf("SaveExtraction: %v", err)
	}
	if rec.ID == uuid.Nil {
		t.Fatal("expected an assigned record id")
	}
	if rec.CreatedAt.IsZero() {
		t.Fatal("expected an assigned timestamp")
	}

	got, err := s.GetExtraction(ctx, rec.ID)
	if err != nil {
		t.Fatalf("GetExtraction: %v", err)
	}
	if got.Filename != "scan.png" || got.Language != "en" || got.Method != "image-ocr" {
		t.Errorf("round trip lost metadata: %+v", got)
	}
	if !got.FallbackUsed {
		t.Error("fallback flag lost")
	}
	if got.Fields["name"] != "John Doe" || got.Fields["age"] != "27" {
		t.Errorf("fields = %v", got.Fields)
	}
	if got.Scores["name"] != 0.8 {
		t.Errorf("scores = %v", got.Scores)
	}
	if !got.CreatedAt.Equal(rec.CreatedAt) {
		t.Errorf("created_at = %v, want %v", got.CreatedAt, rec.CreatedAt)
	}
}

func TestGetExtractionNotFound(t *testing.T) {
	s := testStore(t)

	_, err := s.GetExtraction(context.Background(), uuid.New())
	if err == nil {
		t.Fatal("expected error for unknown id")
	}
	if !errors.Is(err, common.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestListExtractionsNewestFirst(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	for _, name := range []string{"a.png", "b.png", "c.png"} {
		rec := &ExtractionRecord{Filename: name, Language: "en", Method: "image-ocr"}
		if err := s.SaveExtraction(ctx, rec); err != nil {
			t.Fatalf("SaveExtraction(%s): %v", name, err)
		}
	}

	recs, err := s.ListExtractions(ctx, 2)
	if err != nil {
		t.Fatalf("ListExtractions: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d records, want limit of 2", len(recs))
	}
	if recs[0].Filename != "c.png" || recs[1].Filename != "b.png" {
		t.Errorf("order = [%s, %s], want newest first", recs[0].Filename, recs[1].Filename)
	}
}

func TestSaveVerification(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	mismatches, _ := json.Marshal([]map[string]any{{"field": "age", "match_score": 0.5}})
	rec := &VerificationRecord{
		Matches:      map[string]float32{"name": 1.0, "age": 0.5},
		Mismatches:   mismatches,
		OverallScore: 0.75,
		Passed:       false,
	}
	if err := s.SaveVerification(ctx, rec); err != nil {
		t.Fatalf("SaveVerification: %v", err)
	}
	if rec.ID == uuid.Nil {
		t.Fatal("expected an assigned record id")
	}

	// Stored row should be readable back in raw form.
	var passed int
	var overall float32
	row := s.db.QueryRow(`SELECT passed, overall_score FROM verifications WHERE id = ?`, rec.ID.String())
	if err := row.Scan(&passed, &overall); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if passed != 0 {
		t.Error("passed flag should be 0")
	}
	if overall != 0.75 {
		t.Errorf("overall = %v, want 0.75", overall)
	}
}
