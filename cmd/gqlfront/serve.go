package main

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hanpama/gqlfront/internal/eventbus"
	"github.com/hanpama/gqlfront/internal/events"
	"github.com/hanpama/gqlfront/internal/otel"
	"github.com/hanpama/gqlfront/internal/reqid"
	"github.com/hanpama/gqlfront/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve document validation over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			eventbus.Use(eventbus.New())
			defer eventbus.Use(nil)

			shutdown, err := otel.Setup(ctx, otel.Config{
				Endpoint: a.cfg.Otel.Endpoint,
				Service:  a.cfg.Otel.Service,
				Insecure: a.cfg.Otel.Insecure,
			})
			if err != nil {
				return err
			}
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					a.logger.Warn("otel shutdown", zap.Error(err))
				}
			}()
			defer logEvents(a.logger)()

			s, err := a.loadSchema(ctx)
			if err != nil {
				return err
			}
			opts := []server.Option{
				server.WithTimeout(a.cfg.Server.Timeout),
				server.WithMaxBodyBytes(a.cfg.Server.MaxBodyBytes),
				server.WithRules(a.cfg.RuleSet()...),
				server.WithMaxErrors(a.cfg.MaxErrors),
				server.WithLogger(a.logger),
			}
			if a.cfg.Server.Pretty {
				opts = append(opts, server.WithPretty())
			}
			if len(a.cfg.Server.CORS) > 0 {
				opts = append(opts, server.WithCORS(a.cfg.Server.CORS...))
			}
			return server.Serve(ctx, a.cfg.Server.Addr, server.New(s, opts...), a.logger)
		},
	}
	f := cmd.Flags()
	f.String("addr", "", "listen address (default :8080)")
	f.Duration("timeout", 0, "per-request timeout (default 10s)")
	f.Bool("pretty", false, "indent JSON responses")
	f.Int64("max-body-bytes", 0, "request body limit (default 1MiB)")
	f.StringSlice("cors", nil, "allowed CORS origin; repeatable")
	f.String("otel-endpoint", "", "OTLP gRPC collector endpoint")
	f.String("otel-service", "", "service name reported to OpenTelemetry")
	f.Bool("otel-insecure", false, "dial the collector without TLS")
	return cmd
}

// logEvents logs every validation done by the server at debug level.
func logEvents(logger *zap.Logger) (unsubscribe func()) {
	return eventbus.Subscribe(func(ctx context.Context, e events.ValidateFinish) {
		rid, _ := reqid.FromContext(ctx)
		logger.Debug("validated",
			zap.String("request_id", rid),
			zap.String("source", e.Source),
			zap.Strings("operations", e.Operations),
			zap.Int("errors", len(e.Errors)),
			zap.Duration("duration", e.Duration),
		)
	})
}
