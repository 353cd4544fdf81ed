package eventbus

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

type ping struct{ N int }
type pong struct{ N int }

func TestDispatchByType(t *testing.T) {
	b := New()
	var pings, pongs []int
	On(b, func(_ context.Context, e ping) { pings = append(pings, e.N) })
	On(b, func(_ context.Context, e pong) { pongs = append(pongs, e.N) })

	Emit(context.Background(), b, ping{1})
	Emit(context.Background(), b, pong{2})
	Emit(context.Background(), b, ping{3})

	assert.Equal(t, []int{1, 3}, pings)
	assert.Equal(t, []int{2}, pongs)
}

func TestUnsubscribe(t *testing.T) {
	b := New()
	var got []string
	first := On(b, func(context.Context, ping) { got = append(got, "first") })
	On(b, func(context.Context, ping) { got = append(got, "second") })

	Emit(context.Background(), b, ping{})
	first()
	first()
	Emit(context.Background(), b, ping{})

	assert.Equal(t, []string{"first", "second", "second"}, got)
}

func TestGlobalBus(t *testing.T) {
	Use(nil)
	Publish(context.Background(), ping{1})
	unsubscribe := Subscribe(func(context.Context, ping) { t.Fatal("no bus installed") })
	unsubscribe()

	b := New()
	Use(b)
	defer Use(nil)

	var got int
	defer Subscribe(func(_ context.Context, e ping) { got = e.N })()
	Publish(context.Background(), ping{7})
	assert.Equal(t, 7, got)
}

func TestNilBus(t *testing.T) {
	var b *Bus
	assert.NotPanics(t, func() { Emit(context.Background(), b, ping{}) })
}
