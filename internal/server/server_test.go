package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanpama/gqlfront/internal/eventbus"
	"github.com/hanpama/gqlfront/internal/events"
	"github.com/hanpama/gqlfront/internal/language"
	"github.com/hanpama/gqlfront/internal/language/source"
	"github.com/hanpama/gqlfront/internal/reqid"
	"github.com/hanpama/gqlfront/internal/validator/rules"
)

func newTestHandler(t *testing.T, opts ...Option) *Handler {
	t.Helper()
	sch, err := language.LoadSchema(context.Background(), source.New(`type Query { hello(name: String): String }`))
	require.NoError(t, err)
	return New(sch, opts...)
}

func post(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/validate", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}

func TestValidDocument(t *testing.T) {
	h := newTestHandler(t)
	w := post(t, h, `{"query":"query Hi { hello }"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"valid":true,"errors":[],"operations":[{"name":"Hi","type":"query"}]}`, w.Body.String())
}

func TestInvalidDocument(t *testing.T) {
	h := newTestHandler(t)
	w := post(t, h, `{"query":"{ hello(nam: \"x\") }"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"valid": false,
		"errors": [{
			"message": "Unknown argument \"nam\" on field \"hello\" of type \"Query\". Did you mean \"name\"?",
			"locations": [{"line": 1, "column": 9}]
		}],
		"operations": [{"name": "", "type": "query"}]
	}`, w.Body.String())
}

func TestSyntaxError(t *testing.T) {
	h := newTestHandler(t)
	w := post(t, h, `{"query":"{ hello"}`)
	var res Response
	decode(t, w, &res)
	assert.False(t, res.Valid)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "Expected Name, found <EOF>", res.Errors[0].Message)
	assert.Empty(t, res.Operations)
}

func TestGetRequest(t *testing.T) {
	h := newTestHandler(t)
	req := httptest.NewRequest("GET", "/validate?query="+url.QueryEscape("{ hello }"), nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	var res Response
	decode(t, w, &res)
	assert.True(t, res.Valid)
}

func TestBatch(t *testing.T) {
	h := newTestHandler(t)
	w := post(t, h, `[{"query":"{ hello }"},{"query":"{ bye }"}]`)
	require.Equal(t, http.StatusOK, w.Code)
	var res []Response
	decode(t, w, &res)
	require.Len(t, res, 2)
	assert.True(t, res[0].Valid)
	assert.False(t, res[1].Valid)
	assert.Equal(t, []string{`Cannot query field "bye" on type "Query".`}, res[1].Errors.Messages())
}

func TestUnknownOperationName(t *testing.T) {
	h := newTestHandler(t)
	w := post(t, h, `{"query":"query A { hello }","operationName":"B"}`)
	var res Response
	decode(t, w, &res)
	assert.False(t, res.Valid)
	assert.Equal(t, []string{`Unknown operation named "B".`}, res.Errors.Messages())
}

func TestBadRequests(t *testing.T) {
	h := newTestHandler(t)
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"invalid json", `{`, "invalid JSON"},
		{"missing query", `{}`, "missing 'query'"},
		{"empty batch", `[]`, "empty batch"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(t, h, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			var res Response
			decode(t, w, &res)
			assert.Equal(t, []string{tt.message}, res.Errors.Messages())
		})
	}

	req := httptest.NewRequest("POST", "/validate", bytes.NewBufferString("{ hello }"))
	req.Header.Set("Content-Type", "application/graphql")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("PUT", "/validate", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestCustomRules(t *testing.T) {
	h := newTestHandler(t, WithRules(rules.DisableIntrospection()))
	w := post(t, h, `{"query":"{ __schema { queryType { name } } }"}`)
	var res Response
	decode(t, w, &res)
	assert.False(t, res.Valid)
	assert.Len(t, res.Errors, 1)
}

func TestMaxErrors(t *testing.T) {
	h := newTestHandler(t, WithMaxErrors(1))
	w := post(t, h, `{"query":"{ a b c }"}`)
	var res Response
	decode(t, w, &res)
	assert.Equal(t, []string{
		`Cannot query field "a" on type "Query".`,
		"Too many validation errors, error limit reached. Validation aborted.",
	}, res.Errors.Messages())
}

func TestPretty(t *testing.T) {
	h := newTestHandler(t, WithPretty())
	w := post(t, h, `{"query":"{ hello }"}`)
	assert.Contains(t, w.Body.String(), "\n  \"valid\": true")
}

func TestCORSAndPreflight(t *testing.T) {
	h := newTestHandler(t, WithCORS("*"))

	req := httptest.NewRequest("POST", "/validate", bytes.NewBufferString(`{"query":"{ hello }"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", "http://example.com")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	pre := httptest.NewRequest("OPTIONS", "/validate", nil)
	pre.Header.Set("Origin", "http://example.com")
	pre.Header.Set("Access-Control-Request-Headers", "X-Test")
	pw := httptest.NewRecorder()
	h.ServeHTTP(pw, pre)
	assert.Equal(t, http.StatusNoContent, pw.Code)
	assert.Equal(t, "*", pw.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "X-Test", pw.Header().Get("Access-Control-Allow-Headers"))
}

func TestCORSSpecificOrigin(t *testing.T) {
	h := newTestHandler(t, WithCORS("http://a.example"))

	req := httptest.NewRequest("GET", "/validate?query=%7Bhello%7D", nil)
	req.Header.Set("Origin", "http://a.example")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, "http://a.example", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "Origin", w.Header().Get("Vary"))

	req.Header.Set("Origin", "http://b.example")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestMaxBodyBytes(t *testing.T) {
	h := newTestHandler(t, WithMaxBodyBytes(10))
	w := post(t, h, `{"query":"1234567890"}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestRequestID(t *testing.T) {
	bus := eventbus.New()
	eventbus.Use(bus)
	t.Cleanup(func() { eventbus.Use(nil) })

	var ids []string
	var finish events.HTTPFinish
	eventbus.On(bus, func(ctx context.Context, _ events.ValidateStart) {
		id, _ := reqid.FromContext(ctx)
		ids = append(ids, id)
	})
	eventbus.On(bus, func(_ context.Context, e events.HTTPFinish) { finish = e })

	h := newTestHandler(t)
	w := post(t, h, `{"query":"{ hello }"}`)
	rid := w.Header().Get(reqid.Header)
	_, err := uuid.Parse(rid)
	require.NoError(t, err)
	assert.Equal(t, []string{rid}, ids)
	assert.Equal(t, "/validate", finish.Route)
	assert.Equal(t, http.StatusOK, finish.Status)

	sent := uuid.NewString()
	req := httptest.NewRequest("POST", "/validate", bytes.NewBufferString(`{"query":"{ hello }"}`))
	req.Header.Set(reqid.Header, sent)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, sent, w.Header().Get(reqid.Header))
}

func TestHealthz(t *testing.T) {
	h := newTestHandler(t)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
