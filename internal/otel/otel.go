package otel

import (
	"context"
	"sync"

	"github.com/hanpama/gqlfront/internal/eventbus"
	"github.com/hanpama/gqlfront/internal/events"
	"github.com/hanpama/gqlfront/internal/reqid"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Config selects the OTLP collector. An empty Endpoint disables tracing.
type Config struct {
	Endpoint string
	Service  string
	Insecure bool
}

// Setup configures OpenTelemetry and attaches eventbus subscribers.
// If cfg.Endpoint is empty, no telemetry is configured.
func Setup(ctx context.Context, cfg Config) (func(context.Context) error, error) {
	if cfg.Endpoint == "" {
		return func(context.Context) error { return nil }, nil
	}
	opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlptracegrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())))
	}
	exp, err := otlptracegrpc.New(ctx, opts...)
	if err != nil {
		return nil, err
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(cfg.Service),
		)),
	)
	otel.SetTracerProvider(tp)

	unsubscribe := Register(otel.Tracer("gqlfront"))
	return func(ctx context.Context) error {
		unsubscribe()
		return tp.Shutdown(ctx)
	}, nil
}

// Register subscribes span handlers using tracer to the global bus and
// returns a function removing them.
func Register(tracer trace.Tracer) (unsubscribe func()) {
	s := &subscriber{tracer: tracer}
	return s.register()
}

type subscriber struct {
	tracer        trace.Tracer
	httpSpans     sync.Map // rid -> trace.Span
	parseSpans    sync.Map // rid/source -> trace.Span
	validateSpans sync.Map // rid/source -> trace.Span
}

func spanKey(ctx context.Context, source string) string {
	rid, _ := reqid.FromContext(ctx)
	return rid + "\x00" + source
}

// parent nests under the HTTP span of the same request when there is one.
func (s *subscriber) parent(ctx context.Context) context.Context {
	rid, ok := reqid.FromContext(ctx)
	if !ok {
		return ctx
	}
	if v, ok := s.httpSpans.Load(rid); ok {
		return trace.ContextWithSpan(ctx, v.(trace.Span))
	}
	return ctx
}

func endWithError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (s *subscriber) register() func() {
	var unsubs []func()
	on := func(u func()) { unsubs = append(unsubs, u) }

	on(eventbus.Subscribe(func(ctx context.Context, e events.HTTPStart) {
		rid, _ := reqid.FromContext(ctx)
		_, span := s.tracer.Start(ctx, "http.request")
		span.SetAttributes(
			semconv.HTTPMethodKey.String(e.Request.Method),
			attribute.String("http.target", e.Request.URL.Path),
			attribute.String("request.id", rid),
		)
		s.httpSpans.Store(rid, span)
	}))

	on(eventbus.Subscribe(func(ctx context.Context, e events.HTTPFinish) {
		rid, _ := reqid.FromContext(ctx)
		v, ok := s.httpSpans.LoadAndDelete(rid)
		if !ok {
			return
		}
		span := v.(trace.Span)
		span.SetAttributes(
			semconv.HTTPStatusCodeKey.Int(e.Status),
			semconv.HTTPRouteKey.String(e.Route),
		)
		span.End()
	}))

	on(eventbus.Subscribe(func(ctx context.Context, e events.ParseStart) {
		_, span := s.tracer.Start(s.parent(ctx), "graphql.parse")
		span.SetAttributes(
			attribute.String("graphql.source", e.Source),
			attribute.Int("graphql.document.bytes", e.Bytes),
		)
		s.parseSpans.Store(spanKey(ctx, e.Source), span)
	}))

	on(eventbus.Subscribe(func(ctx context.Context, e events.ParseFinish) {
		v, ok := s.parseSpans.LoadAndDelete(spanKey(ctx, e.Source))
		if !ok {
			return
		}
		span := v.(trace.Span)
		span.SetAttributes(attribute.Int("graphql.document.definitions", e.Definitions))
		endWithError(span, e.Err)
	}))

	on(eventbus.Subscribe(func(ctx context.Context, e events.ValidateStart) {
		_, span := s.tracer.Start(s.parent(ctx), "graphql.validate")
		span.SetAttributes(
			attribute.String("graphql.source", e.Source),
			attribute.StringSlice("graphql.operations", e.Operations),
			attribute.Int("graphql.validation.rules", e.Rules),
		)
		s.validateSpans.Store(spanKey(ctx, e.Source), span)
	}))

	on(eventbus.Subscribe(func(ctx context.Context, e events.ValidateFinish) {
		v, ok := s.validateSpans.LoadAndDelete(spanKey(ctx, e.Source))
		if !ok {
			return
		}
		span := v.(trace.Span)
		span.SetAttributes(attribute.Int("graphql.error_count", len(e.Errors)))
		if len(e.Errors) > 0 {
			span.SetStatus(codes.Error, e.Errors[0].Error())
		}
		span.End()
	}))

	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}
