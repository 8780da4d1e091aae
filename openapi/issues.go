package openapi

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes shared by the document self-check, the validator and the
// consortium repository.
const (
	CodeInvalidType   = "invalid_type"
	CodeRequired      = "required"
	CodeUnknownKey    = "unknown_key"
	CodeTooSmall      = "too_small"
	CodeTooBig        = "too_big"
	CodeTooShort      = "too_short"
	CodeTooLong       = "too_long"
	CodePattern       = "pattern"
	CodeInvalidEnum   = "invalid_enum"
	CodeInvalidFormat = "invalid_format"
	CodeUnresolvedRef = "unresolved_ref"
	CodeUniqueness    = "uniqueness"
	CodeDuplicateKey  = "duplicate_key"
	CodeParseError    = "parse_error"
	CodeInvalid       = "invalid"
)

// Issue is a single finding.
type Issue struct {
	Path    string // JSON Pointer (for example: /consortium/0/memberIds).
	Code    string
	Message string
	// Params carries structured parameters such as {"min":1,"got":0}.
	Params map[string]any
}

func (it Issue) String() string {
	if it.Message == "" {
		return fmt.Sprintf("%s at %s", it.Code, it.Path)
	}
	return fmt.Sprintf("%s at %s: %s", it.Code, it.Path, it.Message)
}

// Issues is a collection of findings that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	lim := min(len(iss), maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(b, "%s at %s", iss[i].Code, iss[i].Path)
	}
	if len(iss) > lim {
		fmt.Fprintf(b, "; ... (total %d)", len(iss))
	}
	return b.String()
}

// Has reports whether an issue with the given code exists at path.
func (iss Issues) Has(code, path string) bool {
	for _, it := range iss {
		if it.Code == code && it.Path == path {
			return true
		}
	}
	return false
}

// Err returns iss as an error, or nil when empty.
func (iss Issues) Err() error {
	if len(iss) == 0 {
		return nil
	}
	return iss
}

// AppendIssues appends issues to dst, initializing the slice when needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	return append(dst, more...)
}

// AsIssues extracts Issues from an error using errors.As.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// JoinPointer appends reference tokens to a JSON Pointer, escaping "~" and "/".
func JoinPointer(base string, tokens ...string) string {
	var b strings.Builder
	b.WriteString(base)
	for _, tok := range tokens {
		b.WriteByte('/')
		tok = strings.ReplaceAll(tok, "~", "~0")
		tok = strings.ReplaceAll(tok, "/", "~1")
		b.WriteString(tok)
	}
	return b.String()
}
