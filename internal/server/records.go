package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/arjun-krishnan/docuverify/internal/common"
	"github.com/arjun-krishnan/docuverify/internal/history"
)

func (s *Server) handleListRecords(w http.ResponseWriter, r *http.Request) {
	if s.records == nil {
		s.writeError(w, r, http.StatusServiceUnavailable, "history is disabled", nil)
		return
	}

	limit := 100
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			s.writeError(w, r, http.StatusBadRequest, "limit must be a positive integer", err)
			return
		}
		limit = n
	}

	recs, err := s.records.ListExtractions(r.Context(), limit)
	if err != nil {
		s.writeError(w, r, statusFromError(err), "could not list extraction records", err)
		return
	}
	if recs == nil {
		recs = []history.ExtractionRecord{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"records": recs,
		"count":   len(recs),
	})
}

func (s *Server) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	if s.records == nil {
		s.writeError(w, r, http.StatusServiceUnavailable, "history is disabled", nil)
		return
	}

	idStr := r.PathValue("id")
	v := common.NewValidator()
	v.Field("id", idStr, common.UUID)
	if v.HasErrors() {
		s.writeError(w, r, http.StatusBadRequest, v.ErrorMessage(), v.Error())
		return
	}

	rec, err := s.records.GetExtraction(r.Context(), uuid.MustParse(idStr))
	if err != nil {
		s.writeError(w, r, statusFromError(err), "extraction record not found", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"record":  rec,
	})
}

func (s *Server) handleExportRecords(w http.ResponseWriter, r *http.Request) {
	if s.exporter == nil {
		s.writeError(w, r, http.StatusServiceUnavailable, "history is disabled", nil)
		return
	}

	limit := 0 // everything the store lists
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			s.writeError(w, r, http.StatusBadRequest, "limit must be a positive integer", err)
			return
		}
		limit = n
	}

	xlsx, err := s.exporter.ExportExtractionsXLSX(r.Context(), limit)
	if err != nil {
		s.writeError(w, r, statusFromError(err), "export failed", err)
		return
	}

	filename := "extractions-" + time.Now().UTC().Format("20060102-150405") + ".xlsx"
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(xlsx)
}
