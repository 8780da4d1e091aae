package validate

import (
	"sort"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/hyperledger/cactus-core-api-go/openapi"
)

var printer = message.NewPrinter(language.English)

// toIssues flattens the leaves of a validation error tree into Issues,
// ordered by path and then code.
func toIssues(ve *jsonschema.ValidationError) openapi.Issues {
	var iss openapi.Issues
	collect(ve, &iss)
	sort.SliceStable(iss, func(i, j int) bool {
		if iss[i].Path != iss[j].Path {
			return iss[i].Path < iss[j].Path
		}
		return iss[i].Code < iss[j].Code
	})
	return iss
}

func collect(ve *jsonschema.ValidationError, iss *openapi.Issues) {
	if len(ve.Causes) > 0 {
		for _, c := range ve.Causes {
			collect(c, iss)
		}
		return
	}
	path := openapi.JoinPointer("", ve.InstanceLocation...)
	msg := ve.ErrorKind.LocalizedString(printer)
	switch k := ve.ErrorKind.(type) {
	case *kind.Required:
		for _, name := range k.Missing {
			*iss = openapi.AppendIssues(*iss, openapi.Issue{Path: openapi.JoinPointer(path, name), Code: openapi.CodeRequired, Message: msg})
		}
	case *kind.AdditionalProperties:
		for _, name := range k.Properties {
			*iss = openapi.AppendIssues(*iss, openapi.Issue{Path: openapi.JoinPointer(path, name), Code: openapi.CodeUnknownKey, Message: msg})
		}
	case *kind.FalseSchema:
		// unevaluatedProperties: false reports each undeclared property here
		*iss = openapi.AppendIssues(*iss, openapi.Issue{Path: path, Code: openapi.CodeUnknownKey, Message: msg})
	case *kind.MinLength:
		*iss = openapi.AppendIssues(*iss, openapi.Issue{Path: path, Code: openapi.CodeTooShort, Message: msg, Params: map[string]any{"min": k.Want, "got": k.Got}})
	case *kind.MaxLength:
		*iss = openapi.AppendIssues(*iss, openapi.Issue{Path: path, Code: openapi.CodeTooLong, Message: msg, Params: map[string]any{"max": k.Want, "got": k.Got}})
	case *kind.MinItems:
		*iss = openapi.AppendIssues(*iss, openapi.Issue{Path: path, Code: openapi.CodeTooSmall, Message: msg, Params: map[string]any{"min": k.Want, "got": k.Got}})
	case *kind.MaxItems:
		*iss = openapi.AppendIssues(*iss, openapi.Issue{Path: path, Code: openapi.CodeTooBig, Message: msg, Params: map[string]any{"max": k.Want, "got": k.Got}})
	default:
		*iss = openapi.AppendIssues(*iss, openapi.Issue{Path: path, Code: codeFor(ve.ErrorKind), Message: msg})
	}
}

func codeFor(k jsonschema.ErrorKind) string {
	switch k.(type) {
	case *kind.Type:
		return openapi.CodeInvalidType
	case *kind.Enum, *kind.Const:
		return openapi.CodeInvalidEnum
	case *kind.Pattern:
		return openapi.CodePattern
	case *kind.Format:
		return openapi.CodeInvalidFormat
	default:
		return openapi.CodeInvalid
	}
}
