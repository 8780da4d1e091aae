package openapi

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"
	"sigs.k8s.io/yaml"
)

// DefaultIndent is the indentation used for exported JSON documents.
const DefaultIndent = "    "

// MarshalJSON encodes doc as indented JSON without HTML escaping and without
// a trailing newline.
func MarshalJSON(doc *Document, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("openapi: encode json: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// MarshalYAML encodes doc as YAML using the JSON field names.
func MarshalYAML(doc *Document) ([]byte, error) {
	b, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("openapi: encode yaml: %w", err)
	}
	return b, nil
}

// ParseJSON decodes a JSON document.
func ParseJSON(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("openapi: decode json: %w", err)
	}
	return &doc, nil
}

// ParseYAML decodes a YAML document.
func ParseYAML(data []byte) (*Document, error) {
	js, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, fmt.Errorf("openapi: decode yaml: %w", err)
	}
	return ParseJSON(js)
}

// ToMap converts v into its generic JSON form. Numbers are kept as
// json.Number.
func ToMap(v any) (map[string]any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("openapi: encode json: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("openapi: decode json: %w", err)
	}
	return m, nil
}
