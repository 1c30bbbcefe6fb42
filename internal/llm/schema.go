package llm

// BuildDocumentJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map. The cleanup model must return every field, using an empty
// string where the document does not show a value; that keeps absence
// explicit on the wire and leaves the drop decision to the merge step.
func BuildDocumentJSONSchema() map[string]any {
	stringProp := map[string]any{"type": "string"}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"name":    stringProp,
			"age":     stringProp,
			"gender":  stringProp,
			"address": stringProp,
			"phone":   stringProp,
			"email":   stringProp,
		},
		"required": []string{"name", "age", "gender", "address", "phone", "email"},
	}
}
