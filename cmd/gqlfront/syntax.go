package main

import (
	"github.com/spf13/cobra"

	"github.com/hanpama/gqlfront/internal/language"
	"github.com/hanpama/gqlfront/internal/language/lexer"
	"github.com/hanpama/gqlfront/internal/report"
)

func newLexCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lex FILE...",
		Short: "Print the token stream of documents",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			srcs, err := a.readSources(args)
			if err != nil {
				return err
			}
			failed := false
			for _, src := range srcs {
				toks, err := lexer.Tokenize(src)
				if err != nil {
					report.SyntaxError(a.stderr, err)
					failed = true
					continue
				}
				if err := report.Tokens(a.stdout, a.cfg.Output, toks); err != nil {
					return err
				}
			}
			if failed {
				return errFailed
			}
			return nil
		},
	}
}

func newParseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "parse FILE...",
		Short: "Parse documents and list their definitions",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			srcs, err := a.readSources(args)
			if err != nil {
				return err
			}
			failed := false
			for _, src := range srcs {
				doc, err := language.Parse(cmd.Context(), src, a.cfg.ParserOptions()...)
				if err != nil {
					report.SyntaxError(a.stderr, err)
					failed = true
					continue
				}
				if err := report.Parsed(a.stdout, a.cfg.Output, src.Name, doc); err != nil {
					return err
				}
			}
			if failed {
				return errFailed
			}
			return nil
		},
	}
}
