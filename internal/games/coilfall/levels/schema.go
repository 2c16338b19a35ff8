package levels

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed schema/level.schema.json
var levelSchemaJSON string

// VetDocument checks a YAML level document against the level file
// schema. It reports shape problems only; whether the board is
// actually playable is the parser's call.
func VetDocument(data []byte) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing document: %w", err)
	}

	// Round-trip through JSON so the validator sees plain JSON types
	// rather than whatever the YAML decoder produced.
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("decoding document: %w", err)
	}

	schema, err := jsonschema.CompileString("level.schema.json", levelSchemaJSON)
	if err != nil {
		return fmt.Errorf("compiling level schema: %w", err)
	}

	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("document does not match level schema: %w", err)
	}
	return nil
}
