// Command cactus-openapi writes the Cactus core API document to disk.
//
// Usage:
//
//	cactus-openapi [destination]
//	cactus-openapi check <consortium-database.json|yaml>
//	cactus-openapi version
//
// Without a destination the document is written to
// json/generated/openapi-spec.json relative to the working directory, which
// is the module root under go generate.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	slogctx "github.com/veqryn/slog-context"
	"sigs.k8s.io/yaml"

	coreapi "github.com/hyperledger/cactus-core-api-go"
	"github.com/hyperledger/cactus-core-api-go/consortium"
	"github.com/hyperledger/cactus-core-api-go/internal/config"
	"github.com/hyperledger/cactus-core-api-go/internal/logging"
	"github.com/hyperledger/cactus-core-api-go/openapi"
	"github.com/hyperledger/cactus-core-api-go/validate"
)

func main() {
	if err := newRootCommand(os.Stdout, os.Stderr).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

type rootOptions struct {
	configFile string
	format     string
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "cactus-openapi [destination]",
		Short: "Export the Cactus core API OpenAPI document",
		Long: `cactus-openapi writes the Cactus core API OpenAPI document.

The destination defaults to ` + coreapi.DefaultDestination + `, resolved against
the working directory; go generate runs this from the module root. Its
directory must already exist. Files ending in .yaml or .yml are written as YAML unless
--format says otherwise.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configFile)
			if err != nil {
				return err
			}
			logger := logging.New(stderr, cfg.Log)
			cmd.SetContext(slogctx.NewCtx(cmd.Context(), logger))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			dest := coreapi.ResolveDestination(args)
			format, err := exportFormat(opts.format, dest)
			if err != nil {
				return err
			}
			if format == "yaml" {
				return coreapi.ExportToFileSystemAsYAML(cmd.Context(), dest)
			}
			return coreapi.ExportToFileSystemAsJSON(cmd.Context(), dest)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	cmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "YAML configuration file")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "auto", "output format: auto, json or yaml")

	cmd.AddCommand(newCheckCommand(), newVersionCommand())
	return cmd
}

func exportFormat(flag, dest string) (string, error) {
	switch strings.ToLower(flag) {
	case "json":
		return "json", nil
	case "yaml", "yml":
		return "yaml", nil
	case "", "auto":
		switch strings.ToLower(filepath.Ext(dest)) {
		case ".yaml", ".yml":
			return "yaml", nil
		}
		return "json", nil
	default:
		return "", fmt.Errorf("unknown format %q (want auto, json or yaml)", flag)
	}
}

func newCheckCommand() *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "check <file>",
		Short: "Validate a ConsortiumDatabase snapshot against the document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := slogctx.FromCtx(cmd.Context())

			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			data := raw
			if ext := strings.ToLower(filepath.Ext(args[0])); ext == ".yaml" || ext == ".yml" {
				if data, err = yaml.YAMLToJSON(raw); err != nil {
					return fmt.Errorf("parse %s: %w", args[0], err)
				}
			}

			vopts := validate.Options{RejectDuplicateKeys: true}
			if strict {
				vopts.Unknown = validate.UnknownStrict
			}
			v, diag, err := validate.New(coreapi.Document(), vopts)
			if err != nil {
				return err
			}
			for _, w := range diag.Warnings() {
				logger.DebugContext(cmd.Context(), "schema conversion", "warning", w)
			}

			if err := v.ValidateJSON(consortium.SchemaName, data); err != nil {
				return reportIssues(cmd.OutOrStdout(), err)
			}
			repo, err := consortium.Decode(data)
			if err != nil {
				return err
			}
			if err := repo.CheckReferences(); err != nil {
				return reportIssues(cmd.OutOrStdout(), err)
			}
			logger.InfoContext(cmd.Context(), "consortium database is valid",
				"file", args[0],
				"nodes", repo.NodeCount(),
				"ledgers", repo.LedgerCount(),
				"members", repo.MemberCount(),
			)
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "reject top-level properties the schema does not declare")
	return cmd
}

func reportIssues(w io.Writer, err error) error {
	iss, ok := openapi.AsIssues(err)
	if !ok {
		return err
	}
	for _, it := range iss {
		fmt.Fprintln(w, it.String())
	}
	return fmt.Errorf("%d issue(s) found", len(iss))
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the document version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (OpenAPI %s)\n", coreapi.Title, coreapi.Version, coreapi.OpenAPIVersion)
		},
	}
}
