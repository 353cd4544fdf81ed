// Package reqid carries a per-request identifier through contexts so that
// events of one request can be correlated.
package reqid

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// Header is the HTTP header a request id is read from and echoed in.
const Header = "X-Request-ID"

// key is the context key for the request ID.
type key struct{}

// NewContext returns a copy of parent with a new random request ID stored.
// It also returns the generated ID.
func NewContext(parent context.Context) (context.Context, string) {
	return WithID(parent, uuid.NewString())
}

// WithID stores id in a copy of parent.
func WithID(parent context.Context, id string) (context.Context, string) {
	return context.WithValue(parent, key{}, id), id
}

// FromRequest uses the id sent by the client in Header when it is a valid
// UUID, and generates one otherwise.
func FromRequest(r *http.Request) (context.Context, string) {
	if id, err := uuid.Parse(r.Header.Get(Header)); err == nil {
		return WithID(r.Context(), id.String())
	}
	return NewContext(r.Context())
}

// FromContext extracts the request ID from ctx.
// It returns the ID and whether it was present.
func FromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(key{}).(string)
	return id, ok
}
