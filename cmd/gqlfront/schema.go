package main

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hanpama/gqlfront/internal/introspection"
	"github.com/hanpama/gqlfront/internal/language"
	"github.com/hanpama/gqlfront/internal/report"
	"github.com/hanpama/gqlfront/internal/schema"
)

var errNoSchema = errors.New("no schema given; set --schema or schema in gqlfront.yaml")

func (a *app) loadSchema(ctx context.Context) (*schema.Schema, error) {
	if len(a.cfg.Schema) == 0 {
		return nil, errNoSchema
	}
	s, err := language.LoadSchemaFiles(ctx, a.cfg.Schema...)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("schema loaded", zap.Strings("files", a.cfg.Schema), zap.Int("types", len(s.Types)))
	return s, nil
}

func newCompileSDLCmd(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "compile-sdl",
		Short: "Merge the schema files into one SDL document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.loadSchema(cmd.Context())
			if err != nil {
				return err
			}
			sdl := schema.Render(s)
			if out == "" {
				_, err := a.stdout.Write([]byte(sdl))
				return err
			}
			return os.WriteFile(out, []byte(sdl), 0o644)
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "write SDL to this file instead of stdout")
	return cmd
}

func newIntrospectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "introspect",
		Short: "Print the introspection result of the schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.loadSchema(cmd.Context())
			if err != nil {
				return err
			}
			format := a.cfg.Output
			if format == "text" {
				format = "json"
			}
			return report.Encode(a.stdout, format, introspection.Describe(s))
		},
	}
}
