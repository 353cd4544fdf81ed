// Command gqlfront lexes, parses and validates GraphQL documents and serves
// validation over HTTP.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/hanpama/gqlfront/internal/config"
)

// Version is set at build time.
var Version = "dev"

// errFailed signals a non-zero exit after the reason was already reported.
var errFailed = errors.New("failed")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	switch {
	case err == nil:
	case errors.Is(err, errFailed):
		os.Exit(1)
	default:
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	root := newRootCmd(&app{stdin: stdin, stdout: stdout, stderr: stderr})
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.ExecuteContext(ctx)
}

// app carries what every command needs once configuration is loaded.
type app struct {
	cfgFile string
	cfg     *config.Config
	logger  *zap.Logger

	stdin          io.Reader
	stdout, stderr io.Writer
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "gqlfront",
		Short: "GraphQL lexer, parser and validator",
		Long: `gqlfront checks GraphQL documents against a schema.

Settings are read from gqlfront.yaml, GQLFRONT_* environment variables and
flags, in increasing order of precedence.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}
			cfg, err := config.Load(a.cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg.Log, a.stderr)
			if err != nil {
				return err
			}
			a.cfg, a.logger = cfg, logger
			if cfg.File != "" {
				logger.Debug("using config file", zap.String("path", cfg.File))
			}
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default: ./gqlfront.yaml)")
	pf.StringSliceP("schema", "s", nil, "SDL files or globs making up the schema")
	pf.StringP("output", "o", "", "output format (text|json|yaml)")
	pf.Int("max-depth", 0, "parser nesting limit")
	pf.Int("max-errors", 0, "validation error limit per document")
	pf.StringSlice("disable-rule", nil, "validation rule to skip; repeatable")
	pf.Int("query-depth", 0, "report operations nesting deeper than this")
	pf.Bool("disable-introspection", false, "reject __schema and __type")
	pf.String("log-level", "", "log level (debug|info|warn|error)")
	pf.String("log-format", "", "log format (console|json)")

	_ = root.RegisterFlagCompletionFunc("output", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{config.OutputText, config.OutputJSON, config.OutputYAML}, cobra.ShellCompDirectiveNoFileComp
	})

	root.AddCommand(
		newLexCmd(a),
		newParseCmd(a),
		newValidateCmd(a),
		newCompileSDLCmd(a),
		newIntrospectCmd(a),
		newRulesCmd(a),
		newServeCmd(a),
		newVersionCmd(),
	)
	return root
}

func newLogger(cfg config.LogConfig, w io.Writer) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	var enc zapcore.Encoder
	switch cfg.Format {
	case "json":
		enc = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	default:
		ec := zap.NewDevelopmentEncoderConfig()
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		enc = zapcore.NewConsoleEncoder(ec)
	}
	return zap.New(zapcore.NewCore(enc, zapcore.AddSync(w), level)), nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "gqlfront %s\n", Version)
			return nil
		},
	}
}
