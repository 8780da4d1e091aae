package openapi

import (
	"sort"
	"strconv"
)

// Schema is an OpenAPI 3.0 schema object. Only the keywords used by shared
// type definitions are modeled.
//
// Pointer-typed numeric and boolean fields distinguish "absent" from a zero
// value, so minItems: 0 and nullable: false survive serialization.
type Schema struct {
	Ref         string `json:"$ref,omitempty"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type,omitempty"`
	Format      string `json:"format,omitempty"`
	Enum        []any  `json:"enum,omitempty"`
	Default     any    `json:"default,omitempty"`
	Example     any    `json:"example,omitempty"`
	Nullable    *bool  `json:"nullable,omitempty"`

	// String
	MinLength *int   `json:"minLength,omitempty"`
	MaxLength *int   `json:"maxLength,omitempty"`
	Pattern   string `json:"pattern,omitempty"`

	// Array
	Items    *Schema `json:"items,omitempty"`
	MinItems *int    `json:"minItems,omitempty"`
	MaxItems *int    `json:"maxItems,omitempty"`

	// Object
	Required   []string           `json:"required,omitempty"`
	Properties map[string]*Schema `json:"properties,omitempty"`
	// AdditionalProperties is either a bool or a *Schema. Documents decoded
	// from JSON hold a map[string]any for the schema form.
	AdditionalProperties any `json:"additionalProperties,omitempty"`

	// Composition
	AllOf []*Schema `json:"allOf,omitempty"`
	AnyOf []*Schema `json:"anyOf,omitempty"`
	OneOf []*Schema `json:"oneOf,omitempty"`
}

// Int returns a pointer to v.
func Int(v int) *int { return &v }

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }

// RefTo returns a schema that only references the named component.
func RefTo(name string) *Schema { return &Schema{Ref: ComponentRef(name)} }

// EnumOf converts string literals into enum values.
func EnumOf(values ...string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

// IsNullable reports whether nullable: true is set.
func (s *Schema) IsNullable() bool { return s != nil && s.Nullable != nil && *s.Nullable }

// PropertyNames returns the schema's property names in sorted order.
func (s *Schema) PropertyNames() []string {
	if s == nil {
		return nil
	}
	return sortedKeys(s.Properties)
}

// Walk visits s and every nested subschema depth-first. The path passed to fn
// is a JSON Pointer relative to s. Walk does not follow $ref.
func (s *Schema) Walk(fn func(path string, s *Schema)) {
	s.walk("", fn)
}

func (s *Schema) walk(path string, fn func(string, *Schema)) {
	if s == nil {
		return
	}
	fn(path, s)
	for _, name := range sortedKeys(s.Properties) {
		s.Properties[name].walk(JoinPointer(path, "properties", name), fn)
	}
	s.Items.walk(path+"/items", fn)
	if ap, ok := s.AdditionalProperties.(*Schema); ok {
		ap.walk(path+"/additionalProperties", fn)
	}
	for i, sub := range s.AllOf {
		sub.walk(JoinPointer(path, "allOf", strconv.Itoa(i)), fn)
	}
	for i, sub := range s.AnyOf {
		sub.walk(JoinPointer(path, "anyOf", strconv.Itoa(i)), fn)
	}
	for i, sub := range s.OneOf {
		sub.walk(JoinPointer(path, "oneOf", strconv.Itoa(i)), fn)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
