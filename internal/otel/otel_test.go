package otel

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/hanpama/gqlfront/internal/eventbus"
	"github.com/hanpama/gqlfront/internal/events"
	"github.com/hanpama/gqlfront/internal/reqid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func setupRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	eventbus.Use(eventbus.New())
	t.Cleanup(func() { eventbus.Use(nil) })

	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	t.Cleanup(Register(tp.Tracer("test")))
	return rec
}

func TestSpansNestUnderRequest(t *testing.T) {
	rec := setupRecorder(t)

	r := httptest.NewRequest("POST", "/validate", nil)
	ctx, _ := reqid.NewContext(context.Background())
	eventbus.Publish(ctx, events.HTTPStart{Request: r})
	eventbus.Publish(ctx, events.ParseStart{Source: "q", Bytes: 10})
	eventbus.Publish(ctx, events.ParseFinish{Source: "q", Definitions: 1})
	eventbus.Publish(ctx, events.ValidateStart{Source: "q", Operations: []string{"Q"}, Rules: 26})
	eventbus.Publish(ctx, events.ValidateFinish{Source: "q", Errors: []error{errors.New("bad")}})
	eventbus.Publish(ctx, events.HTTPFinish{Request: r, Route: "/validate", Status: 200})

	spans := rec.Ended()
	require.Len(t, spans, 3)
	assert.Equal(t, "graphql.parse", spans[0].Name())
	assert.Equal(t, "graphql.validate", spans[1].Name())
	assert.Equal(t, "http.request", spans[2].Name())

	root := spans[2].SpanContext().SpanID()
	assert.Equal(t, root, spans[0].Parent().SpanID())
	assert.Equal(t, root, spans[1].Parent().SpanID())
	assert.Equal(t, codes.Error, spans[1].Status().Code)
}

func TestParseErrorRecorded(t *testing.T) {
	rec := setupRecorder(t)

	ctx := context.Background()
	eventbus.Publish(ctx, events.ParseStart{Source: "a.graphql"})
	eventbus.Publish(ctx, events.ParseStart{Source: "b.graphql"})
	eventbus.Publish(ctx, events.ParseFinish{Source: "b.graphql", Err: errors.New("Syntax Error")})
	eventbus.Publish(ctx, events.ParseFinish{Source: "a.graphql"})

	spans := rec.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, codes.Unset, spans[1].Status().Code)
	assert.False(t, spans[0].Parent().IsValid())
}

func TestSetupWithoutEndpoint(t *testing.T) {
	shutdown, err := Setup(context.Background(), Config{})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}
