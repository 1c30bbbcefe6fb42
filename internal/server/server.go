// Package server exposes the document pipeline as a JSON HTTP API.
package server

import (
	"log/slog"
	"net/http"

	"github.com/arjun-krishnan/docuverify/internal/common"
	"github.com/arjun-krishnan/docuverify/internal/export"
	"github.com/arjun-krishnan/docuverify/internal/history"
	processor "github.com/arjun-krishnan/docuverify/internal/pipeline"
	"github.com/arjun-krishnan/docuverify/internal/verify"
)

type Server struct {
	cfg       common.ServerConfig
	workDir   string
	processor *processor.Processor
	verifier  *verify.Verifier
	records   history.Repository // nil when history is disabled
	exporter  *export.Service    // nil when history is disabled
	logger    *slog.Logger
}

func NewServer(cfg common.ServerConfig, workDir string, proc *processor.Processor, verifier *verify.Verifier, records history.Repository, exporter *export.Service, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		cfg:       cfg,
		workDir:   workDir,
		processor: proc,
		verifier:  verifier,
		records:   records,
		exporter:  exporter,
		logger:    logger,
	}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("POST /api/extract", s.handleExtract)
	mux.HandleFunc("POST /api/verify", s.handleVerify)
	mux.HandleFunc("GET /api/records", s.handleListRecords)
	mux.HandleFunc("GET /api/records/export", s.handleExportRecords)
	mux.HandleFunc("GET /api/records/{id}", s.handleGetRecord)
	return s.withRequestID(mux)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":              "ok",
		"service":             "docuverify",
		"history_enabled":     s.records != nil,
		"supported_languages": []string{"en", "hi", "ar", "multi"},
	})
}
