package main

import (
	"context"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/hanpama/gqlfront/internal/language"
	"github.com/hanpama/gqlfront/internal/language/source"
	"github.com/hanpama/gqlfront/internal/report"
	"github.com/hanpama/gqlfront/internal/schema"
)

func newValidateCmd(a *app) *cobra.Command {
	var watch bool
	cmd := &cobra.Command{
		Use:   "validate FILE...",
		Short: "Validate documents against the schema",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if watch {
				return a.watch(cmd.Context(), args)
			}
			s, err := a.loadSchema(cmd.Context())
			if err != nil {
				return err
			}
			srcs, err := a.readSources(args)
			if err != nil {
				return err
			}
			return a.validateAll(cmd.Context(), s, srcs)
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "revalidate when documents or schema files change")
	return cmd
}

func (a *app) checkOptions() []language.Option {
	return []language.Option{
		language.WithRules(a.cfg.RuleSet()...),
		language.WithMaxErrors(a.cfg.MaxErrors),
		language.WithParserOptions(a.cfg.ParserOptions()...),
	}
}

// validateAll checks srcs concurrently and reports them in argument order.
func (a *app) validateAll(ctx context.Context, s *schema.Schema, srcs []*source.Source) error {
	docs := make([]report.Document, len(srcs))
	opts := a.checkOptions()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, src := range srcs {
		i, src := i, src
		g.Go(func() error {
			docs[i] = report.FromResult(src.Name, language.Check(ctx, s, src, opts...))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if err := report.Validation(a.stdout, a.cfg.Output, docs); err != nil {
		return err
	}
	for _, d := range docs {
		if !d.Valid {
			return errFailed
		}
	}
	return nil
}
