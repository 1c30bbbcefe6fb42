// Package history persists extraction and verification audit records in a
// local SQLite database. An empty DSN disables persistence; callers hold a
// nil *Store and skip recording.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/arjun-krishnan/docuverify/internal/common"
)

type ExtractionRecord struct {
	ID                 uuid.UUID          `json:"id"`
	Filename           string             `json:"filename"`
	Language           string             `json:"language"`
	Method             string             `json:"method"`
	OCRConfidence      float32            `json:"ocr_confidence"`
	DocumentConfidence float32            `json:"document_confidence"`
	FallbackUsed       bool               `json:"fallback_used"`
	Fields             map[string]string  `json:"fields"`
	Scores             map[string]float32 `json:"confidence_scores"`
	CreatedAt          time.Time          `json:"created_at"`
}

type VerificationRecord struct {
	ID           uuid.UUID          `json:"id"`
	ExtractionID uuid.UUID          `json:"extraction_id,omitempty"`
	Matches      map[string]float32 `json:"matches"`
	Mismatches   json.RawMessage    `json:"mismatches"`
	OverallScore float32            `json:"overall_score"`
	Passed       bool               `json:"verification_passed"`
	CreatedAt    time.Time          `json:"created_at"`
}

type Repository interface {
	SaveExtraction(ctx context.Context, rec *ExtractionRecord) error
	SaveVerification(ctx context.Context, rec *VerificationRecord) error
	ListExtractions(ctx context.Context, limit int) ([]ExtractionRecord, error)
	GetExtraction(ctx context.Context, id uuid.UUID) (*ExtractionRecord, error)
}

type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// timeLayout is fixed-width so lexicographic ORDER BY created_at matches
// chronological order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const schema = `
CREATE TABLE IF NOT EXISTS extractions (
	id              TEXT PRIMARY KEY,
	filename        TEXT NOT NULL,
	language        TEXT NOT NULL,
	method          TEXT NOT NULL,
	ocr_confidence  REAL NOT NULL,
	doc_confidence  REAL NOT NULL,
	fallback_used   INTEGER NOT NULL,
	fields          TEXT NOT NULL,
	scores          TEXT NOT NULL,
	created_at      TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS verifications (
	id              TEXT PRIMARY KEY,
	extraction_id   TEXT,
	matches         TEXT NOT NULL,
	mismatches      TEXT NOT NULL,
	overall_score   REAL NOT NULL,
	passed          INTEGER NOT NULL,
	created_at      TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_extractions_created_at ON extractions(created_at);
`

// Open connects to the SQLite database at dsn and applies the schema.
func Open(ctx context.Context, dsn string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("history.open", "dsn", dsn)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		logger.Error("history.open_failed", "error", err)
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// modernc sqlite serializes writes internally; one connection avoids
	// SQLITE_BUSY on concurrent handlers.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db, logger: logger}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	s.logger.Info("history.close")
	return s.db.Close()
}

func (s *Store) SaveExtraction(ctx context.Context, rec *ExtractionRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	fields, err := json.Marshal(rec.Fields)
	if err != nil {
		return fmt.Errorf("marshal fields: %w", err)
	}
	scores, err := json.Marshal(rec.Scores)
	if err != nil {
		return fmt.Errorf("marshal scores: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO extractions (id, filename, language, method, ocr_confidence, doc_confidence, fallback_used, fields, scores, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID.String(), rec.Filename, rec.Language, rec.Method,
		rec.OCRConfidence, rec.DocumentConfidence, boolToInt(rec.FallbackUsed),
		string(fields), string(scores), rec.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		s.logger.Error("history.save_extraction_failed", "id", rec.ID, "error", err)
		return err
	}
	s.logger.Debug("history.extraction_saved", "id", rec.ID, "fields", len(rec.Fields))
	return nil
}

func (s *Store) SaveVerification(ctx context.Context, rec *VerificationRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	matches, err := json.Marshal(rec.Matches)
	if err != nil {
		return fmt.Errorf("marshal matches: %w", err)
	}
	mismatches := rec.Mismatches
	if len(mismatches) == 0 {
		mismatches = json.RawMessage("[]")
	}

	var extID string
	if rec.ExtractionID != uuid.Nil {
		extID = rec.ExtractionID.String()
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO verifications (id, extraction_id, matches, mismatches, overall_score, passed, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID.String(), extID, string(matches), string(mismatches),
		rec.OverallScore, boolToInt(rec.Passed), rec.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		s.logger.Error("history.save_verification_failed", "id", rec.ID, "error", err)
		return err
	}
	s.logger.Debug("history.verification_saved", "id", rec.ID, "passed", rec.Passed)
	return nil
}

func (s *Store) ListExtractions(ctx context.Context, limit int) ([]ExtractionRecord, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, filename, language, method, ocr_confidence, doc_confidence, fallback_used, fields, scores, created_at
		 FROM extractions ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		s.logger.Error("history.list_extractions_failed", "error", err)
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			s.logger.Warn("history.rows_close_failed", "error", cerr)
		}
	}()

	var out []ExtractionRecord
	for rows.Next() {
		rec, err := scanExtraction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

func (s *Store) GetExtraction(ctx context.Context, id uuid.UUID) (*ExtractionRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, filename, language, method, ocr_confidence, doc_confidence, fallback_used, fields, scores, created_at
		 FROM extractions WHERE id = ?`, id.String())
	rec, err := scanExtraction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.NewAppError("RECORD_NOT_FOUND", "extraction record not found", common.ErrNotFound)
	}
	return rec, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExtraction(row rowScanner) (*ExtractionRecord, error) {
	var (
		rec       ExtractionRecord
		idStr     string
		fallback  int
		fields    string
		scores    string
		createdAt string
	)
	if err := row.Scan(&idStr, &rec.Filename, &rec.Language, &rec.Method,
		&rec.OCRConfidence, &rec.DocumentConfidence, &fallback,
		&fields, &scores, &createdAt); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("parse record id: %w", err)
	}
	rec.ID = id
	rec.FallbackUsed = fallback != 0
	if err := json.Unmarshal([]byte(fields), &rec.Fields); err != nil {
		return nil, fmt.Errorf("decode fields: %w", err)
	}
	if err := json.Unmarshal([]byte(scores), &rec.Scores); err != nil {
		return nil, fmt.Errorf("decode scores: %w", err)
	}
	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	rec.CreatedAt = ts
	return &rec, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
