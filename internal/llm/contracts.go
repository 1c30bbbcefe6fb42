package llm

import "context"

// DocumentFields is the fixed six-field shape we want from the cleanup model.
// Absent fields come back as empty strings and are dropped during merge.
type DocumentFields struct {
	Name    string `json:"name"`
	Age     string `json:"age"`
	Gender  string `json:"gender"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

type CleanupRequest struct {
	OCRText  string
	Language string

	OCRConfidence float32
}

// FieldExtractor is the interface the pipeline depends on for remote cleanup.
type FieldExtractor interface {
	ExtractFields(ctx context.Context, req CleanupRequest) (DocumentFields, []byte /*rawJSON*/, error)
}

// AsMap returns the non-empty fields keyed by their wire names.
func (f DocumentFields) AsMap() map[string]string {
	m := make(map[string]string, 6)
	put := func(k, v string) {
		if v != "" {
			m[k] = v
		}
	}
	put("name", f.Name)
	put("age", f.Age)
	put("gender", f.Gender)
	put("address", f.Address)
	put("phone", f.Phone)
	put("email", f.Email)
	return m
}
