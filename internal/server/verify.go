package server

import (
	"encoding/json"
	"net/http"

	"github.com/arjun-krishnan/docuverify/internal/common"
	"github.com/arjun-krishnan/docuverify/internal/history"
)

type verifyRequest struct {
	SubmittedFields map[string]string `json:"submitted_fields"`
	ExtractedFields map[string]string `json:"extracted_fields"`
}

// handleVerify scores submitted fields against extracted ones. A request
// with no usable submitted fields still answers 200 with the error noted
// in the body; only malformed JSON is rejected outright.
func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, "request body must be JSON with submitted_fields and extracted_fields", err)
		return
	}

	v := common.NewValidator()
	v.Field("submitted_fields", req.SubmittedFields, common.Required)
	if v.HasErrors() {
		s.writeError(w, r, http.StatusBadRequest, v.ErrorMessage(), v.Error())
		return
	}

	result := s.verifier.Verify(req.SubmittedFields, req.ExtractedFields)

	if s.records != nil && result.Error == "" {
		mismatches, err := json.Marshal(result.Mismatches)
		if err == nil {
			matches := make(map[string]float32, len(result.Matches))
			for k, v := range result.Matches {
				matches[k] = float32(v)
			}
			rec := &history.VerificationRecord{
				Matches:      matches,
				Mismatches:   mismatches,
				OverallScore: float32(result.OverallScore),
				Passed:       result.Passed,
			}
			if err := s.records.SaveVerification(r.Context(), rec); err != nil {
				s.logger.Warn("http.verify_record_failed", "error", err)
			}
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":             true,
		"matches":             result.Matches,
		"mismatches":          result.Mismatches,
		"overall_score":       result.OverallScore,
		"verification_passed": result.Passed,
		"error":               result.Error,
	})
}
