package openapi

import (
	"fmt"
	"regexp"

	"github.com/Masterminds/semver/v3"
)

// SupportedVersions is the OpenAPI version range documents built here target.
const SupportedVersions = "~3.0.0"

// Check reports structural problems that would make the document unusable
// by code generators: unsupported versions, dangling $refs, empty or
// duplicated enums, inverted bounds, arrays without items, nullable without
// a type and patterns that do not compile. It returns nil or Issues.
func (d *Document) Check() error {
	var iss Issues

	c, err := semver.NewConstraint(SupportedVersions)
	if err != nil {
		return fmt.Errorf("openapi: constraint %q: %w", SupportedVersions, err)
	}
	if v, err := semver.NewVersion(d.OpenAPI); err != nil {
		iss = AppendIssues(iss, Issue{Path: "/openapi", Code: CodeInvalidFormat, Message: err.Error()})
	} else if !c.Check(v) {
		iss = AppendIssues(iss, Issue{Path: "/openapi", Code: CodeInvalid, Message: fmt.Sprintf("version %s does not satisfy %s", d.OpenAPI, SupportedVersions)})
	}
	if _, err := semver.StrictNewVersion(d.Info.Version); err != nil {
		iss = AppendIssues(iss, Issue{Path: "/info/version", Code: CodeInvalidFormat, Message: err.Error()})
	}
	if d.Info.Title == "" {
		iss = AppendIssues(iss, Issue{Path: "/info/title", Code: CodeRequired})
	}

	for _, name := range d.SchemaNames() {
		base := JoinPointer("/components/schemas", name)
		d.Components.Schemas[name].Walk(func(path string, s *Schema) {
			iss = append(iss, d.checkSchema(base+path, s)...)
		})
	}
	return iss.Err()
}

func (d *Document) checkSchema(path string, s *Schema) Issues {
	var iss Issues
	if s.Ref != "" {
		if _, err := d.Resolve(s.Ref); err != nil {
			iss = AppendIssues(iss, Issue{Path: path + "/$ref", Code: CodeUnresolvedRef, Message: err.Error(), Params: map[string]any{"ref": s.Ref}})
		}
	}
	if s.Enum != nil {
		if len(s.Enum) == 0 {
			iss = AppendIssues(iss, Issue{Path: path + "/enum", Code: CodeTooSmall, Message: "enum must not be empty"})
		}
		seen := make(map[string]bool, len(s.Enum))
		for _, v := range s.Enum {
			key := fmt.Sprintf("%#v", v)
			if seen[key] {
				iss = AppendIssues(iss, Issue{Path: path + "/enum", Code: CodeUniqueness, Message: fmt.Sprintf("duplicate enum value %v", v)})
			}
			seen[key] = true
		}
	}
	if inverted(s.MinLength, s.MaxLength) {
		iss = AppendIssues(iss, Issue{Path: path, Code: CodeInvalid, Message: "minLength exceeds maxLength", Params: map[string]any{"min": *s.MinLength, "max": *s.MaxLength}})
	}
	if inverted(s.MinItems, s.MaxItems) {
		iss = AppendIssues(iss, Issue{Path: path, Code: CodeInvalid, Message: "minItems exceeds maxItems", Params: map[string]any{"min": *s.MinItems, "max": *s.MaxItems}})
	}
	// OpenAPI 3.0.3 ignores nullable unless type is set on the same schema.
	if s.IsNullable() && s.Type == "" {
		iss = AppendIssues(iss, Issue{Path: path + "/nullable", Code: CodeInvalid, Message: "nullable requires type"})
	}
	if s.Type == "array" && s.Items == nil {
		iss = AppendIssues(iss, Issue{Path: path + "/items", Code: CodeRequired, Message: "array schema without items"})
	}
	if s.Pattern != "" {
		if _, err := regexp.Compile(s.Pattern); err != nil {
			iss = AppendIssues(iss, Issue{Path: path + "/pattern", Code: CodePattern, Message: err.Error()})
		}
	}
	return iss
}

func inverted(lo, hi *int) bool {
	return lo != nil && hi != nil && *lo > *hi
}
