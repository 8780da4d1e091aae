package coreapi

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	digest "github.com/opencontainers/go-digest"
	slogctx "github.com/veqryn/slog-context"

	"github.com/hyperledger/cactus-core-api-go/openapi"
)

// DefaultFilename is the file name of the exported document.
const DefaultFilename = "openapi-spec.json"

// DefaultDestination is where the exporter writes when no destination is
// given. It is relative to the module root, which is the working directory
// of go generate.
var DefaultDestination = filepath.Join("json", "generated", DefaultFilename)

// JSON returns the document serialized with four-space indentation.
func JSON() ([]byte, error) {
	return openapi.MarshalJSON(Document(), openapi.DefaultIndent)
}

// YAML returns the document serialized as YAML.
func YAML() ([]byte, error) {
	return openapi.MarshalYAML(Document())
}

// ResolveDestination returns the first positional argument when present and
// non-empty, and DefaultDestination otherwise.
func ResolveDestination(args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	return DefaultDestination
}

// ExportToFileSystemAsJSON writes the JSON document to destination,
// replacing any existing file. The destination directory must exist; write
// errors are returned as they come from the filesystem.
func ExportToFileSystemAsJSON(ctx context.Context, destination string) error {
	b, err := JSON()
	if err != nil {
		return err
	}
	return export(ctx, "ExportToFileSystemAsJSON", destination, b)
}

// ExportToFileSystemAsYAML is the YAML counterpart of ExportToFileSystemAsJSON.
func ExportToFileSystemAsYAML(ctx context.Context, destination string) error {
	b, err := YAML()
	if err != nil {
		return err
	}
	return export(ctx, "ExportToFileSystemAsYAML", destination, b)
}

func export(ctx context.Context, fn, destination string, b []byte) error {
	slogctx.FromCtx(ctx).InfoContext(ctx, "exporting openapi document",
		slog.String("fn", fn),
		slog.String("destination", destination),
		slog.String("digest", digest.FromBytes(b).String()),
	)
	return os.WriteFile(destination, b, 0o644)
}
