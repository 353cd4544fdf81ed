// Package server exposes document validation over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/hanpama/gqlfront/internal/eventbus"
	"github.com/hanpama/gqlfront/internal/events"
	"github.com/hanpama/gqlfront/internal/gqlerror"
	"github.com/hanpama/gqlfront/internal/language"
	"github.com/hanpama/gqlfront/internal/language/source"
	"github.com/hanpama/gqlfront/internal/reqid"
	"github.com/hanpama/gqlfront/internal/schema"
	"github.com/hanpama/gqlfront/internal/validator"
)

// Handler is an http.Handler that validates GraphQL documents against a
// schema. It serves /validate and /healthz.
type Handler struct {
	schema *schema.Schema
	opt    Options
	mux    *chi.Mux
}

type Options struct {
	// Timeout sets a default timeout if the incoming request context has none.
	// 0 means no default timeout.
	Timeout time.Duration

	// Pretty enables indented JSON responses.
	Pretty bool

	// MaxBodyBytes limits the size of the request body. 0 means unlimited.
	MaxBodyBytes int64

	// CORS configuration. If AllowedOrigins is empty, CORS is disabled.
	CORS CORSOptions

	// Rules replaces the specified rule set when non-nil.
	Rules []validator.Rule

	// MaxErrors is the per-document validation error limit.
	MaxErrors int

	Logger *zap.Logger
}

type Option func(*Options)

func WithTimeout(d time.Duration) Option    { return func(o *Options) { o.Timeout = d } }
func WithPretty() Option                    { return func(o *Options) { o.Pretty = true } }
func WithMaxBodyBytes(n int64) Option       { return func(o *Options) { o.MaxBodyBytes = n } }
func WithRules(rs ...validator.Rule) Option { return func(o *Options) { o.Rules = rs } }
func WithMaxErrors(n int) Option            { return func(o *Options) { o.MaxErrors = n } }
func WithLogger(l *zap.Logger) Option       { return func(o *Options) { o.Logger = l } }
func WithCORS(origins ...string) Option {
	return func(o *Options) { o.CORS.AllowedOrigins = origins }
}

// CORSOptions holds simple CORS settings.
type CORSOptions struct {
	AllowedOrigins []string
}

// New creates a validation handler for s.
func New(s *schema.Schema, opts ...Option) *Handler {
	op := Options{Timeout: 10 * time.Second, MaxErrors: validator.DefaultMaxErrors, Logger: zap.NewNop()}
	for _, f := range opts {
		f(&op)
	}
	h := &Handler{schema: s, opt: op}

	r := chi.NewMux()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, false)
	})
	r.Handle("/validate", http.HandlerFunc(h.validate))
	h.mux = r
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) { h.mux.ServeHTTP(w, r) }

func (h *Handler) validate(w http.ResponseWriter, r *http.Request) {
	ctx, rid := reqid.FromRequest(r)
	if _, ok := ctx.Deadline(); !ok && h.opt.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.opt.Timeout)
		defer cancel()
	}
	w.Header().Set(reqid.Header, rid)

	status := http.StatusOK
	start := time.Now()
	eventbus.Publish(ctx, events.HTTPStart{Request: r})
	defer func() {
		d := time.Since(start)
		eventbus.Publish(ctx, events.HTTPFinish{Request: r, Route: "/validate", Status: status, Duration: d})
		h.opt.Logger.Debug("validate request",
			zap.String("request_id", rid),
			zap.String("method", r.Method),
			zap.Int("status", status),
			zap.Duration("duration", d),
		)
	}()

	if len(h.opt.CORS.AllowedOrigins) > 0 {
		setCORSHeaders(w, r, h.opt.CORS)
	}

	if r.Method == http.MethodOptions {
		status = http.StatusNoContent
		w.WriteHeader(status)
		return
	}

	if r.Method != http.MethodPost && r.Method != http.MethodGet {
		status = http.StatusMethodNotAllowed
		writeJSON(w, status, errorResponse("method not allowed"), h.opt.Pretty)
		return
	}

	req, batch, err := parseRequest(r, h.opt.MaxBodyBytes)
	if err != nil {
		status = http.StatusBadRequest
		if errors.Is(err, errBodyTooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		writeJSON(w, status, errorResponse(err.Error()), h.opt.Pretty)
		return
	}

	if batch != nil {
		out := make([]*Response, len(batch))
		for i := range batch {
			out[i] = h.checkOne(ctx, batch[i], fmt.Sprintf("request[%d]", i))
		}
		writeJSON(w, status, out, h.opt.Pretty)
		return
	}
	writeJSON(w, status, h.checkOne(ctx, req, source.DefaultName), h.opt.Pretty)
}

func (h *Handler) checkOne(ctx context.Context, req Request, name string) *Response {
	opts := []language.Option{language.WithMaxErrors(h.opt.MaxErrors)}
	if h.opt.Rules != nil {
		opts = append(opts, language.WithRules(h.opt.Rules...))
	}
	res := language.Check(ctx, h.schema, source.New(req.Query, source.WithName(name)), opts...)
	out := &Response{Valid: res.Valid, Errors: res.Errors, Operations: res.Operations}
	if out.Errors == nil {
		out.Errors = gqlerror.List{}
	}
	if req.OperationName != "" && res.Document != nil && res.Document.Operation(req.OperationName) == nil {
		out.Valid = false
		out.Errors = append(out.Errors, gqlerror.New(nil, fmt.Sprintf("Unknown operation named %q.", req.OperationName)))
	}
	return out
}

// ------------------ Request parsing ------------------

// Request is the body of a validation request. Variables are accepted
// for compatibility with GraphQL clients and ignored.
type Request struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName,omitempty"`
	Variables     map[string]any `json:"variables,omitempty"`
	Extensions    map[string]any `json:"extensions,omitempty"`
}

var (
	errBodyTooLarge = errors.New("body too large")
	errMissingQuery = errors.New("missing 'query'")
)

func parseRequest(r *http.Request, maxBody int64) (Request, []Request, error) {
	if r.Method == http.MethodGet {
		q := r.URL.Query().Get("query")
		if q == "" {
			return Request{}, nil, errMissingQuery
		}
		return Request{Query: q, OperationName: r.URL.Query().Get("operationName")}, nil, nil
	}

	ct := r.Header.Get("Content-Type")
	if ct != "" && ct != "application/json" && !strings.HasPrefix(ct, "application/json;") {
		return Request{}, nil, errors.New("unsupported Content-Type")
	}
	defer r.Body.Close()
	reader := io.Reader(r.Body)
	if maxBody > 0 {
		reader = io.LimitReader(r.Body, maxBody+1)
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return Request{}, nil, errors.New("failed to read body")
	}
	if maxBody > 0 && int64(len(body)) > maxBody {
		return Request{}, nil, errBodyTooLarge
	}

	if len(body) > 0 && body[0] == '[' {
		var arr []Request
		if err := json.Unmarshal(body, &arr); err != nil {
			return Request{}, nil, errors.New("invalid JSON")
		}
		if len(arr) == 0 {
			return Request{}, nil, errors.New("empty batch")
		}
		return Request{}, arr, nil
	}
	var req Request
	if err := json.Unmarshal(body, &req); err != nil {
		return Request{}, nil, errors.New("invalid JSON")
	}
	if req.Query == "" {
		return Request{}, nil, errMissingQuery
	}
	return req, nil, nil
}

// ------------------ Response formatting ------------------

// Response reports the validity of one document.
type Response struct {
	Valid      bool                 `json:"valid"`
	Errors     gqlerror.List        `json:"errors"`
	Operations []language.Operation `json:"operations,omitempty"`
}

func errorResponse(msg string) *Response {
	return &Response{Errors: gqlerror.List{{Message: msg}}}
}

func writeJSON(w http.ResponseWriter, status int, v any, pretty bool) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	_ = enc.Encode(v)
}

func setCORSHeaders(w http.ResponseWriter, r *http.Request, opts CORSOptions) {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return
	}
	wildcard := contains(opts.AllowedOrigins, "*")
	if !wildcard && !contains(opts.AllowedOrigins, origin) {
		return
	}
	if wildcard {
		w.Header().Set("Access-Control-Allow-Origin", "*")
	} else {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Add("Vary", "Origin")
	}
	if r.Method == http.MethodOptions {
		if hdr := r.Header.Get("Access-Control-Request-Headers"); hdr != "" {
			w.Header().Set("Access-Control-Allow-Headers", hdr)
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Serve listens on addr until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, addr string, h http.Handler, logger *zap.Logger) error {
	eg, egctx := errgroup.WithContext(ctx)
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		BaseContext:       func(net.Listener) context.Context { return egctx },
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg.Go(func() error {
		logger.Info("listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logger.Debug("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return eg.Wait()
}
