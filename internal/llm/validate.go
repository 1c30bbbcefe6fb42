package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// documentSchema compiles the six-field contract once per process.
var documentSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	raw, err := json.Marshal(BuildDocumentJSONSchema())
	if err != nil {
		return nil, fmt.Errorf("marshal document schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("document.json", bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("add document schema: %w", err)
	}
	return compiler.Compile("document.json")
})

// ValidateDocumentJSON checks that data satisfies the cleanup contract: a
// JSON object with exactly the six known keys, all present, all strings.
func ValidateDocumentJSON(data []byte) error {
	schema, err := documentSchema()
	if err != nil {
		return err
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal cleanup payload: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("cleanup payload does not match contract: %w", err)
	}
	return nil
}
