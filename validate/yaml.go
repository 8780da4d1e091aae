package validate

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// NewFromYAML compiles the first YAML document in data that carries
// components.schemas. Multi-document streams are scanned in order.
func NewFromYAML(data []byte, opts Options) (*Validator, Diag, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	for {
		var node any
		if err := dec.Decode(&node); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, &simpleDiag{}, fmt.Errorf("validate: invalid YAML: %w", err)
		}
		m := yamlAnyToStringMap(node)
		if m == nil {
			continue
		}
		comps, _ := m["components"].(map[string]any)
		if _, ok := comps["schemas"].(map[string]any); !ok {
			continue
		}
		raw, err := json.Marshal(m)
		if err != nil {
			return nil, &simpleDiag{}, fmt.Errorf("validate: cannot convert YAML document: %w", err)
		}
		return New(raw, opts)
	}
	return nil, &simpleDiag{}, errors.New("validate: no document with components.schemas in YAML stream")
}

// yamlAnyToStringMap converts YAML-decoded values (which may contain
// map[any]any) into JSON-like map[string]any recursively. Non-map roots
// return nil.
func yamlAnyToStringMap(v any) map[string]any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = yamlNormalizeValue(vv)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			ks, ok := k.(string)
			if !ok {
				continue
			}
			out[ks] = yamlNormalizeValue(vv)
		}
		return out
	default:
		return nil
	}
}

func yamlNormalizeValue(v any) any {
	switch t := v.(type) {
	case map[string]any, map[any]any:
		return yamlAnyToStringMap(t)
	case []any:
		arr := make([]any, len(t))
		for i := range t {
			arr[i] = yamlNormalizeValue(t[i])
		}
		return arr
	default:
		return v
	}
}
