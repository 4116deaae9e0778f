package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

//go:embed schema.json
var schemaJSON string

// GetSchemaJSON returns the JSON Schema for definitions files
func GetSchemaJSON() string {
	return schemaJSON
}

// decodeDocument turns file content into plain maps and slices.
// A syntax problem is reported as syntaxErr so it can be shown as a finding.
func decodeDocument(ext string, content []byte) (doc interface{}, syntaxErr string, err error) {
	switch ext {
	case ".yml", ".yaml":
		if uerr := yaml.Unmarshal(content, &doc); uerr != nil {
			return nil, fmt.Sprintf("Invalid YAML syntax: %v", uerr), nil
		}
	case ".json":
		if uerr := json.Unmarshal(content, &doc); uerr != nil {
			return nil, fmt.Sprintf("Invalid JSON syntax: %v", uerr), nil
		}
	case ".toml":
		raw, lerr := loadRaw(content, ext)
		if lerr != nil {
			return nil, fmt.Sprintf("Invalid TOML syntax: %v", lerr), nil
		}
		doc = raw
	default:
		return nil, "", fmt.Errorf("unsupported definitions format: %s", ext)
	}

	if doc == nil {
		doc = map[string]interface{}{}
	}
	return doc, "", nil
}

// ValidateWithSchema checks definitions content against the embedded JSON
// Schema. path only selects the format.
func ValidateWithSchema(path string, content []byte) (*ValidationResult, error) {
	result := &ValidationResult{Valid: true, Errors: []ValidationError{}}

	doc, syntaxErr, err := decodeDocument(strings.ToLower(filepath.Ext(path)), content)
	if err != nil {
		return nil, err
	}
	if syntaxErr != "" {
		result.add("syntax", syntaxErr)
		return result, nil
	}

	checked, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schemaJSON),
		gojsonschema.NewGoLoader(doc),
	)
	if err != nil {
		return nil, fmt.Errorf("schema validation error: %w", err)
	}

	for _, desc := range checked.Errors() {
		result.add(desc.Field(), desc.Description())
	}
	return result, nil
}
