package export

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/arjun-krishnan/docuverify/internal/history"
)

// Service is a tiny façade over the history store that produces XLSX bytes
// for exports.
type Service struct {
	records history.Repository
	logger  *slog.Logger
}

func NewService(records history.Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{records: records, logger: logger}
}

// fixedColumns lead every export; whatever other fields the documents
// yielded follow alphabetically in one "Other Fields" column per row.
var fixedColumns = []string{"name", "age", "gender", "phone", "email", "address_line1", "address_line2", "city", "state", "country", "pin_code", "date_of_birth"}

// ExportExtractionsXLSX returns an XLSX workbook (as bytes) covering the
// most recent extraction records, newest first. limit <= 0 exports
// everything the store will list.
func (s *Service) ExportExtractionsXLSX(ctx context.Context, limit int) ([]byte, error) {
	start := time.Now()

	recs, err := s.records.ListExtractions(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("query extractions: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Extractions"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{"Extracted At", "Filename", "Language", "Method", "OCR Confidence", "Document Confidence", "Fallback Used"}
	for _, c := range fixedColumns {
		headers = append(headers, headerTitle(c))
	}
	headers = append(headers, "Other Fields")

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, r := range recs {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		write(1, r.CreatedAt.UTC().Format("2006-01-02 15:04:05"))
		write(2, r.Filename)
		write(3, r.Language)
		write(4, r.Method)
		write(5, r.OCRConfidence)
		write(6, r.DocumentConfidence)
		write(7, r.FallbackUsed)

		col := 8
		seen := make(map[string]bool, len(fixedColumns))
		for _, name := range fixedColumns {
			write(col, r.Fields[name])
			seen[name] = true
			col++
		}
		write(col, joinOtherFields(r.Fields, seen))

		row++
	}

	// Widen a few columns
	_ = f.SetColWidth(sheet, "A", "A", 20) // timestamp
	_ = f.SetColWidth(sheet, "B", "B", 28) // filename
	_ = f.SetColWidth(sheet, "H", "H", 24) // name
	_ = f.SetColWidth(sheet, "L", "M", 28) // address lines
	lastCol, _ := excelize.ColumnNumberToName(len(headers))
	_ = f.SetColWidth(sheet, lastCol, lastCol, 48)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"rows", len(recs),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

// joinOtherFields renders dynamic fields as "key: value; ..." sorted by key.
func joinOtherFields(fields map[string]string, seen map[string]bool) string {
	var keys []string
	for k := range fields {
		if !seen[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var parts []string
	for _, k := range keys {
		parts = append(parts, k+": "+fields[k])
	}
	return truncate(strings.Join(parts, "; "), 500)
}

func headerTitle(field string) string {
	words := strings.Split(field, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
