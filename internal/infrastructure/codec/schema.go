package codec

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"

	"github.com/bnema/dockyard/internal/domain/entity"
)

// Schema returns the JSON schema of the layout document.
func (c *JSONCodec) Schema() ([]byte, error) {
	return LayoutSchema()
}

// LayoutSchema generates the JSON schema of entity.Document.
func LayoutSchema() ([]byte, error) {
	r := new(jsonschema.Reflector)
	schema := r.Reflect(&entity.Document{})

	schema.ID = "https://github.com/bnema/dockyard/layout.schema.json"
	schema.Title = "Dockyard Layout"
	schema.Description = "Persisted arrangement of a dockyard panel layout"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return data, nil
}
