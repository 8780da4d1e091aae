// Package validate compiles the component schemas of an OpenAPI 3.0 document
// into JSON Schema validators and checks instances against them.
//
// OpenAPI 3.0 schema objects are a dialect of JSON Schema. Before compiling,
// each component schema is rewritten into JSON Schema 2020-12: component refs
// become $defs refs, nullable widens the type with null, example becomes
// examples, and free-form format values become x-format annotations.
package validate

import (
	"bytes"
	"errors"
	"fmt"
	"sort"

	json "github.com/goccy/go-json"
	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/hyperledger/cactus-core-api-go/openapi"
)

// ErrUnknownSchema is returned when validating against a name that is not a
// component schema of the compiled document.
var ErrUnknownSchema = errors.New("validate: unknown schema")

const resourceURL = "https://hyperledger.github.io/cactus/schemas/core-api.json"

// Validator validates instances against named component schemas. It is
// safe for concurrent use.
type Validator struct {
	schemas       map[string]*jsonschema.Schema
	rejectDupKeys bool
}

// New compiles every component schema of doc. doc may be an
// *openapi.Document, an openapi.Document, raw JSON bytes or a decoded
// map[string]any.
func New(doc any, opts Options) (*Validator, Diag, error) {
	d := &simpleDiag{}
	if doc == nil {
		return nil, d, errors.New("validate: nil document")
	}
	var raw []byte
	var err error
	switch t := doc.(type) {
	case *openapi.Document:
		raw, err = openapi.MarshalJSON(t, "")
	case openapi.Document:
		raw, err = openapi.MarshalJSON(&t, "")
	case []byte:
		raw = t
	default:
		// map[string]any and anything else JSON-marshalable
		raw, err = json.Marshal(t)
	}
	if err != nil {
		return nil, d, fmt.Errorf("validate: cannot marshal document: %w", err)
	}
	root, err := decodeObject(raw)
	if err != nil {
		return nil, d, fmt.Errorf("validate: invalid document: %w", err)
	}
	return compile(root, opts, d)
}

func compile(root map[string]any, opts Options, d *simpleDiag) (*Validator, Diag, error) {
	res, err := convertDocument(root, d)
	if err != nil {
		return nil, d, err
	}
	defs, _ := res["$defs"].(map[string]any)

	c := jsonschema.NewCompiler()
	c.DefaultDraft(jsonschema.Draft2020)
	if opts.AssertFormat {
		c.AssertFormat()
	}
	if err := c.AddResource(resourceURL, res); err != nil {
		return nil, d, fmt.Errorf("validate: failed to add resource: %w", err)
	}

	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)

	// Strict mode validates through a wrapper per schema so that
	// unevaluatedProperties sees the properties contributed by $ref and allOf.
	loc := func(name string) string { return resourceURL + defsPrefix + name }
	if opts.Unknown == UnknownStrict {
		for _, name := range names {
			url := strictURL(name)
			wrapper := map[string]any{
				"$schema":               draft2020,
				"$ref":                  loc(name),
				"unevaluatedProperties": false,
			}
			if err := c.AddResource(url, wrapper); err != nil {
				return nil, d, fmt.Errorf("validate: failed to add resource %s: %w", url, err)
			}
		}
		loc = strictURL
	}

	v := &Validator{
		schemas:       make(map[string]*jsonschema.Schema, len(names)),
		rejectDupKeys: opts.RejectDuplicateKeys,
	}
	for _, name := range names {
		sch, err := c.Compile(loc(name))
		if err != nil {
			return nil, d, fmt.Errorf("validate: failed to compile %s: %w", name, err)
		}
		v.schemas[name] = sch
	}
	return v, d, nil
}

func strictURL(name string) string {
	return "https://hyperledger.github.io/cactus/schemas/strict/" + name + ".json"
}

// Names returns the compiled schema names in sorted order.
func (v *Validator) Names() []string {
	names := make([]string, 0, len(v.schemas))
	for name := range v.schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether name was compiled.
func (v *Validator) Has(name string) bool {
	_, ok := v.schemas[name]
	return ok
}

// Validate checks instance against the named schema. instance may be any
// JSON-marshalable value. A failed validation returns openapi.Issues.
func (v *Validator) Validate(name string, instance any) error {
	b, err := json.Marshal(instance)
	if err != nil {
		return fmt.Errorf("validate: cannot marshal instance: %w", err)
	}
	return v.ValidateJSON(name, b)
}

// ValidateJSON checks a JSON encoded instance against the named schema.
func (v *Validator) ValidateJSON(name string, data []byte) error {
	sch, ok := v.schemas[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSchema, name)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return openapi.Issues{{Path: "", Code: openapi.CodeParseError, Message: err.Error()}}
	}
	if v.rejectDupKeys {
		if iss := detectDuplicateKeys(data); len(iss) > 0 {
			return iss
		}
	}
	if err := sch.Validate(inst); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			return toIssues(ve)
		}
		return err
	}
	return nil
}

func decodeObject(raw []byte) (map[string]any, error) {
	v, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected a JSON object, got %T", v)
	}
	return m, nil
}
