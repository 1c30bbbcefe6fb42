package server

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/arjun-krishnan/docuverify/internal/common"
)

// handleExtract accepts a multipart upload under the "file" part, runs the
// pipeline, and answers with the stable extraction shape. Failures still
// carry empty fields and a zero confidence so clients never branch on
// missing keys.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			s.writeError(w, r, http.StatusRequestEntityTooLarge, "file exceeds the upload size limit", err)
			return
		}
		s.writeError(w, r, http.StatusBadRequest, "no file provided; upload an image or PDF under the 'file' part", err)
		return
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			s.logger.Warn("http.upload_close_failed", "error", cerr)
		}
	}()

	v := common.NewValidator()
	v.Field("file", header.Filename, common.Required, common.SupportedFileExtension)
	if v.HasErrors() {
		s.writeError(w, r, http.StatusUnsupportedMediaType, v.ErrorMessage(), v.Error())
		return
	}

	tmpPath, err := s.spool(file, header.Filename)
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, "could not store the upload", err)
		return
	}
	defer func() {
		if rmErr := os.Remove(tmpPath); rmErr != nil {
			s.logger.Warn("http.upload_cleanup_failed", "path", tmpPath, "error", rmErr)
		}
	}()

	res, err := s.processor.ProcessFile(r.Context(), tmpPath, header.Filename)
	if err != nil {
		s.writeError(w, r, statusFromError(err), "text could not be extracted from the document", err)
		return
	}

	body := map[string]any{
		"success":           true,
		"fields":            res.Fields,
		"confidence":        res.DocumentConfidence,
		"language_detected": res.Language,
		"field_confidences": res.ConfidenceScores,
		"method":            res.Method,
		"fallback_used":     res.FallbackUsed,
	}
	if res.RecordID != uuid.Nil {
		body["record_id"] = res.RecordID.String()
	}
	writeJSON(w, http.StatusOK, body)
}

// spool copies the upload into the work directory, keeping the original
// extension so the OCR strategy dispatch sees it.
func (s *Server) spool(src io.Reader, filename string) (string, error) {
	tmp, err := os.CreateTemp(s.workDir, "upload-*"+filepath.Ext(filename))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(tmp, src); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return "", err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return "", err
	}
	return tmp.Name(), nil
}
