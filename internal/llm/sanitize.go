package llm

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"strconv"
	"strings"
)

// StripMarkdownFences unwraps a ```json ... ``` (or bare ```) block. Chat
// models wrap JSON this way even when told not to.
func StripMarkdownFences(content string) string {
	content = strings.TrimSpace(content)
	if i := strings.Index(content, "```json"); i >= 0 {
		content = content[i+len("```json"):]
		if j := strings.Index(content, "```"); j >= 0 {
			content = content[:j]
		}
		return strings.TrimSpace(content)
	}
	if i := strings.Index(content, "```"); i >= 0 {
		content = content[i+len("```"):]
		if j := strings.Index(content, "```"); j >= 0 {
			content = content[:j]
		}
		return strings.TrimSpace(content)
	}
	return content
}

// NormalizeAndSanitizeJSON
// - Coerces numeric age -> string
// - Blanks null values and junk placeholders ("null", "none", "n/a")
// - Removes unknown keys (strict additionalProperties = false friendliness)
// - Trims every value
func NormalizeAndSanitizeJSON(raw []byte, logger *slog.Logger) ([]byte, []string, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, nil, fmt.Errorf("sanitize: decode: %w", err)
	}

	allowed := map[string]struct{}{
		"name": {}, "age": {}, "gender": {}, "address": {}, "phone": {}, "email": {},
	}

	dropped := make([]string, 0, 6)
	for k := range maps.Clone(m) {
		if _, ok := allowed[k]; !ok {
			delete(m, k)
			dropped = append(dropped, k+"(unknown)")
		}
	}

	out := make(map[string]any, len(allowed))
	for k := range allowed {
		v, ok := m[k]
		if !ok {
			out[k] = ""
			continue
		}
		switch t := v.(type) {
		case string:
			s := strings.TrimSpace(t)
			if isPlaceholder(s) {
				dropped = append(dropped, k+"(placeholder)")
				s = ""
			}
			out[k] = s
		case float64:
			// models return age as a number now and then
			if t == float64(int64(t)) {
				out[k] = fmt.Sprintf("%d", int64(t))
			} else {
				out[k] = strconv.FormatFloat(t, 'f', -1, 64)
			}
		case nil:
			dropped = append(dropped, k+"(null)")
			out[k] = ""
		default:
			dropped = append(dropped, k+"(type)")
			out[k] = ""
		}
	}

	bs, err := json.Marshal(out)
	if err != nil {
		return nil, dropped, fmt.Errorf("sanitize: encode: %w", err)
	}
	if len(dropped) > 0 {
		logger.Warn("llm.cleanup.sanitized", "dropped", dropped)
	}
	return bs, dropped, nil
}

func isPlaceholder(s string) bool {
	switch strings.ToLower(s) {
	case "null", "none", "n/a", "na", "-", "unknown":
		return true
	}
	return false
}
