package reqid

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func TestContextRoundTrip(t *testing.T) {
	ctx, id := NewContext(context.Background())
	got, ok := FromContext(ctx)
	if !ok || got != id {
		t.Fatalf("expected %s from context, got %s ok=%v", id, got, ok)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("id %q is not a uuid: %v", id, err)
	}
	if _, ok := FromContext(context.Background()); ok {
		t.Fatalf("unexpected id in empty context")
	}
}

func TestFromRequest(t *testing.T) {
	sent := "6f1c2a4e-8f0b-4c1e-9a57-1b2c3d4e5f60"
	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set(Header, sent)
	ctx, id := FromRequest(r)
	if id != sent {
		t.Fatalf("expected client id %s, got %s", sent, id)
	}
	if got, _ := FromContext(ctx); got != sent {
		t.Fatalf("context carries %s", got)
	}

	r.Header.Set(Header, "not-a-uuid")
	if _, id := FromRequest(r); id == "not-a-uuid" {
		t.Fatalf("invalid client id must be replaced")
	}
}
