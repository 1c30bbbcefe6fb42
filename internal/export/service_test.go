package export

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/arjun-krishnan/docuverify/internal/history"
)

type fakeRepo struct {
	recs []history.ExtractionRecord
	err  error
}

func (f *fakeRepo) SaveExtraction(context.Context, *history.ExtractionRecord) error { return nil }
func (f *fakeRepo) SaveVerification(context.Context, *history.VerificationRecord) error {
	return nil
}
func (f *fakeRepo) ListExtractions(context.Context, int) ([]history.ExtractionRecord, error) {
	return f.recs, f.err
}
func (f *fakeRepo) GetExtraction(context.Context, uuid.UUID) (*history.ExtractionRecord, error) {
	return nil, nil
}

func TestExportExtractionsXLSX(t *testing.T) {
	repo := &fakeRepo{recs: []history.ExtractionRecord{
		{
			ID:                 uuid.New(),
			Filename:           "scan.png",
			Language:           "en",
			Method:             "image-ocr",
			OCRConfidence:      0.82,
			DocumentConfidence: 0.79,
			FallbackUsed:       true,
			Fields: map[string]string{
				"name":        "John Doe",
				"age":         "27",
				"blood_group": "O+",
				"nationality": "Indian",
			},
			CreatedAt: time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC),
		},
	}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewService(repo, logger)

	out, err := svc.ExportExtractionsXLSX(context.Background(), 0)
	if err != nil {
		t.Fatalf("ExportExtractionsXLSX: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Extractions")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want header + 1 record", len(rows))
	}

	header, data := rows[0], rows[1]
	if header[0] != "Extracted At" || header[1] != "Filename" {
		t.Errorf("header = %v", header[:2])
	}
	if data[0] != "2025-06-01 10:30:00" {
		t.Errorf("timestamp cell = %q", data[0])
	}
	if data[1] != "scan.png" {
		t.Errorf("filename cell = %q", data[1])
	}

	cell := func(name string) string {
		for i, h := range header {
			if h == name {
				if i < len(data) {
					return data[i]
				}
				return ""
			}
		}
		t.Fatalf("missing header %q", name)
		return ""
	}
	if cell("Name") != "John Doe" {
		t.Errorf("Name cell = %q", cell("Name"))
	}
	if cell("Age") != "27" {
		t.Errorf("Age cell = %q", cell("Age"))
	}
	// dynamic fields collect into the trailing column, alphabetically
	if got := cell("Other Fields"); got != "blood_group: O+; nationality: Indian" {
		t.Errorf("Other Fields cell = %q", got)
	}
}

func TestExportExtractionsXLSXEmpty(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewService(&fakeRepo{}, logger)

	out, err := svc.ExportExtractionsXLSX(context.Background(), 10)
	if err != nil {
		t.Fatalf("ExportExtractionsXLSX: %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Extractions")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("got %d rows, want header only", len(rows))
	}
}
