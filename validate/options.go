package validate

import "fmt"

// UnknownBehavior configures how properties not declared by a schema are
// treated.
type UnknownBehavior int

const (
	// UnknownAllow follows OpenAPI semantics: undeclared properties pass.
	UnknownAllow UnknownBehavior = iota
	// UnknownStrict rejects undeclared properties at the top level of the
	// validated instance. Properties contributed through allOf count as
	// declared.
	UnknownStrict
)

// Options controls compilation.
type Options struct {
	Unknown UnknownBehavior
	// AssertFormat turns standard JSON Schema formats into assertions.
	AssertFormat bool
	// RejectDuplicateKeys makes ValidateJSON report objects that repeat a
	// key. Without it the last occurrence wins.
	RejectDuplicateKeys bool
}

// Diag carries non-fatal warnings produced while converting a document.
type Diag interface {
	HasWarnings() bool
	Warnings() []string
}

type simpleDiag struct{ ws []string }

func (d *simpleDiag) HasWarnings() bool        { return len(d.ws) > 0 }
func (d *simpleDiag) Warnings() []string       { return append([]string(nil), d.ws...) }
func (d *simpleDiag) warnf(f string, a ...any) { d.ws = append(d.ws, fmt.Sprintf(f, a...)) }
