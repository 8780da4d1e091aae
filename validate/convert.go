package validate

import (
	"errors"
	"strconv"
	"strings"

	"github.com/hyperledger/cactus-core-api-go/openapi"
)

const (
	draft2020  = "https://json-schema.org/draft/2020-12/schema"
	defsPrefix = "#/$defs/"
)

// jsonSchemaFormats are the formats defined by JSON Schema 2020-12. Other
// OpenAPI format values are free-form annotations.
var jsonSchemaFormats = map[string]bool{
	"date-time": true, "date": true, "time": true, "duration": true,
	"email": true, "idn-email": true, "hostname": true, "idn-hostname": true,
	"ipv4": true, "ipv6": true, "uri": true, "uri-reference": true,
	"iri": true, "iri-reference": true, "uuid": true, "uri-template": true,
	"json-pointer": true, "relative-json-pointer": true, "regex": true,
}

// convertDocument turns the components.schemas of an OpenAPI 3.0 document
// into a JSON Schema 2020-12 resource whose $defs hold one entry per
// component schema.
func convertDocument(root map[string]any, d *simpleDiag) (map[string]any, error) {
	comps, _ := root["components"].(map[string]any)
	schemas, _ := comps["schemas"].(map[string]any)
	if len(schemas) == 0 {
		return nil, errors.New("validate: document has no components.schemas")
	}
	defs := make(map[string]any, len(schemas))
	for name, raw := range schemas {
		sch, ok := raw.(map[string]any)
		if !ok {
			d.warnf("components.schemas.%s is not an object (skipped)", name)
			continue
		}
		defs[name] = convertSchema(sch, schemas, openapi.JoinPointer("/components/schemas", name), d)
	}
	return map[string]any{
		"$schema": draft2020,
		"$defs":   defs,
	}, nil
}

// convertSchema returns a converted copy of s. names holds the component
// schemas, used to repair bare refs.
func convertSchema(s map[string]any, names map[string]any, path string, d *simpleDiag) map[string]any {
	out := make(map[string]any, len(s))
	for k, v := range s {
		switch k {
		case "$ref":
			ref, _ := v.(string)
			out[k] = convertRef(ref, names, path, d)
		case "nullable", "example":
			// handled below
		case "format":
			f, _ := v.(string)
			if jsonSchemaFormats[f] {
				out[k] = f
				continue
			}
			out["x-format"] = v
			d.warnf("%s: format %q is not a JSON Schema format; kept as x-format annotation", path, f)
		case "pattern":
			p, _ := v.(string)
			if len(p) >= 2 && strings.HasPrefix(p, "/") && strings.HasSuffix(p, "/") {
				d.warnf("%s: pattern delimiters removed from %q", path, p)
				p = p[1 : len(p)-1]
			}
			out[k] = p
		case "properties":
			pm, _ := v.(map[string]any)
			props := make(map[string]any, len(pm))
			for name, raw := range pm {
				if ps, ok := raw.(map[string]any); ok {
					props[name] = convertSchema(ps, names, openapi.JoinPointer(path, "properties", name), d)
					continue
				}
				props[name] = raw
			}
			out[k] = props
		case "items", "additionalProperties", "not":
			if sub, ok := v.(map[string]any); ok {
				out[k] = convertSchema(sub, names, path+"/"+k, d)
				continue
			}
			if k == "items" {
				d.warnf("%s/items: only a single schema is supported", path)
			}
			out[k] = v
		case "allOf", "anyOf", "oneOf":
			arr, _ := v.([]any)
			subs := make([]any, len(arr))
			for i, raw := range arr {
				if sub, ok := raw.(map[string]any); ok {
					subs[i] = convertSchema(sub, names, openapi.JoinPointer(path, k, strconv.Itoa(i)), d)
					continue
				}
				subs[i] = raw
			}
			out[k] = subs
		default:
			out[k] = v
		}
	}
	if ex, ok := s["example"]; ok {
		out["examples"] = []any{ex}
	}
	if nullable, _ := s["nullable"].(bool); nullable {
		return widenNullable(out)
	}
	return out
}

// convertRef maps component refs onto $defs. A bare schema name is accepted
// when it names a known component.
func convertRef(ref string, names map[string]any, path string, d *simpleDiag) string {
	if name, ok := strings.CutPrefix(ref, openapi.ComponentSchemaPrefix); ok {
		return defsPrefix + name
	}
	if strings.HasPrefix(ref, defsPrefix) {
		return ref
	}
	if !strings.ContainsAny(ref, "#/") {
		if _, ok := names[ref]; ok {
			d.warnf("%s: bare $ref %q treated as %s%s", path, ref, openapi.ComponentSchemaPrefix, ref)
			return defsPrefix + ref
		}
	}
	d.warnf("%s: $ref %q not supported (local component schemas only)", path, ref)
	return ref
}

// widenNullable admits null in addition to what s accepts.
func widenNullable(s map[string]any) map[string]any {
	t, hasType := s["type"].(string)
	if !hasType {
		return map[string]any{"anyOf": []any{map[string]any{"type": "null"}, s}}
	}
	s["type"] = []any{t, "null"}
	if enum, ok := s["enum"].([]any); ok {
		s["enum"] = append(append([]any(nil), enum...), nil)
	}
	return s
}
