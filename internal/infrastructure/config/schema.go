package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"
)

// Schema returns the JSON schema of the configuration file.
func Schema() ([]byte, error) {
	r := new(jsonschema.Reflector)
	schema := r.Reflect(&Config{})

	schema.ID = "https://github.com/bnema/dockyard/config.schema.json"
	schema.Title = "Dockyard Configuration"
	schema.Description = "Configuration schema for the dockyard layout engine"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return data, nil
}

// WriteSchemaFile writes config.schema.json next to the config file and
// returns its path.
func WriteSchemaFile(configFile string) (string, error) {
	data, err := Schema()
	if err != nil {
		return "", err
	}
	path := filepath.Join(filepath.Dir(configFile), "config.schema.json")
	if err := os.WriteFile(path, data, filePerm); err != nil {
		return "", fmt.Errorf("failed to write schema file: %w", err)
	}
	return path, nil
}
