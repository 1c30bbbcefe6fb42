package llm

import (
	"log/slog"
	"strings"

	"github.com/arjun-krishnan/docuverify/constants"
)

// MergeFields reconciles locally extracted fields with the remote cleanup
// result. Local extraction wins by default; a cleanup value is taken only
// for the six contract fields, and only when the local value is missing or
// its per-field confidence sits under the floor. Fields outside the
// contract pass through untouched.
func MergeFields(extracted map[string]string, ocrConfidence float32, cleanup DocumentFields, logger *slog.Logger) map[string]string {
	if logger == nil {
		logger = slog.Default()
	}

	merged := make(map[string]string, len(extracted))
	for k, v := range extracted {
		merged[k] = v
	}

	if ocrConfidence >= constants.FallbackConfidenceThreshold {
		logger.Debug("llm.merge.skipped", "reason", "high ocr confidence", "confidence", ocrConfidence)
		return merged
	}

	replaced := make([]string, 0, 6)
	for key, cleanupVal := range cleanup.AsMap() {
		cleanupVal = strings.TrimSpace(cleanupVal)
		if cleanupVal == "" {
			continue
		}
		local, ok := merged[key]
		switch {
		case !ok || strings.TrimSpace(local) == "":
			merged[key] = cleanupVal
			replaced = append(replaced, key)
		case FieldConfidence(key, local) < constants.FieldConfidenceFloor:
			merged[key] = cleanupVal
			replaced = append(replaced, key)
		}
	}

	if len(replaced) > 0 {
		logger.Info("llm.merge.applied", "fields", replaced, "ocr_confidence", ocrConfidence)
	}
	return merged
}
