// Package openapi models the subset of OpenAPI 3.0 needed to describe
// shared component schemas, and provides codecs and a structural check for
// such documents.
package openapi

import (
	"errors"
	"fmt"
	"strings"
)

// ComponentSchemaPrefix is the JSON Pointer prefix of component schema refs.
const ComponentSchemaPrefix = "#/components/schemas/"

// ErrUnresolvedRef is returned when a $ref does not name a component schema.
var ErrUnresolvedRef = errors.New("openapi: unresolved $ref")

// Document is an OpenAPI 3.0 document.
type Document struct {
	OpenAPI    string     `json:"openapi"`
	Info       Info       `json:"info"`
	Servers    []Server   `json:"servers,omitempty"`
	Components Components `json:"components"`
	Paths      Paths      `json:"paths"`
}

// Info holds document metadata.
type Info struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Version     string `json:"version"`
}

// Server is a base URL template the API is reachable at.
type Server struct {
	URL         string                    `json:"url"`
	Description string                    `json:"description,omitempty"`
	Variables   map[string]ServerVariable `json:"variables,omitempty"`
}

// ServerVariable substitutes a {name} placeholder in a server URL.
type ServerVariable struct {
	Enum        []string `json:"enum,omitempty"`
	Default     string   `json:"default"`
	Description string   `json:"description,omitempty"`
}

// Components holds reusable definitions.
type Components struct {
	Schemas map[string]*Schema `json:"schemas,omitempty"`
}

// Paths maps URL templates to path items. A document that only shares types
// carries an empty, non-nil Paths.
type Paths map[string]*PathItem

// PathItem is kept minimal; documents built here never declare operations.
type PathItem struct {
	Ref         string `json:"$ref,omitempty"`
	Summary     string `json:"summary,omitempty"`
	Description string `json:"description,omitempty"`
}

// ComponentRef returns the $ref string for a component schema name.
func ComponentRef(name string) string { return ComponentSchemaPrefix + name }

// Schema returns the named component schema, or nil.
func (d *Document) Schema(name string) *Schema {
	if d == nil || d.Components.Schemas == nil {
		return nil
	}
	return d.Components.Schemas[name]
}

// SchemaNames returns component schema names in sorted order.
func (d *Document) SchemaNames() []string {
	if d == nil {
		return nil
	}
	return sortedKeys(d.Components.Schemas)
}

// Resolve returns the component schema a $ref points at.
func (d *Document) Resolve(ref string) (*Schema, error) {
	name, ok := strings.CutPrefix(ref, ComponentSchemaPrefix)
	if !ok || name == "" {
		return nil, fmt.Errorf("%w: %q", ErrUnresolvedRef, ref)
	}
	s := d.Schema(name)
	if s == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnresolvedRef, ref)
	}
	return s, nil
}
