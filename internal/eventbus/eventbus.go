// Package eventbus dispatches typed in-process events. Library code
// publishes through the global bus; tracing and logging subscribe to it.
// Nothing is dispatched until a bus is installed with Use.
package eventbus

import (
	"context"
	"reflect"
	"sync"
	"sync/atomic"
)

// Handler processes events of type T.
type Handler[T any] func(context.Context, T)

type entry struct {
	id uint64
	fn func(context.Context, any)
}

// Bus is a simple in-process event dispatcher. Handlers run synchronously
// on the publishing goroutine, in subscription order.
type Bus struct {
	mu       sync.RWMutex
	nextID   uint64
	handlers map[reflect.Type][]entry
}

// New creates a new Bus.
func New() *Bus { return &Bus{handlers: make(map[reflect.Type][]entry)} }

func (b *Bus) subscribe(t reflect.Type, fn func(context.Context, any)) (unsubscribe func()) {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.handlers[t] = append(b.handlers[t], entry{id: id, fn: fn})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			hs := b.handlers[t]
			for i, e := range hs {
				if e.id == id {
					hs = append(hs[:i:i], hs[i+1:]...)
					break
				}
			}
			if len(hs) == 0 {
				delete(b.handlers, t)
			} else {
				b.handlers[t] = hs
			}
		})
	}
}

func (b *Bus) emit(ctx context.Context, t reflect.Type, e any) {
	if b == nil {
		return
	}
	b.mu.RLock()
	hs := b.handlers[t]
	b.mu.RUnlock()
	// Removal copies, so the snapshot stays valid without the lock.
	for _, h := range hs {
		h.fn(ctx, e)
	}
}

// On registers h with b.
func On[T any](b *Bus, h Handler[T]) (unsubscribe func()) {
	return b.subscribe(typeOf[T](), func(ctx context.Context, v any) { h(ctx, v.(T)) })
}

// Emit sends e to the handlers registered on b for T.
func Emit[T any](ctx context.Context, b *Bus, e T) {
	b.emit(ctx, typeOf[T](), e)
}

func typeOf[T any]() reflect.Type { return reflect.TypeOf((*T)(nil)).Elem() }

var global atomic.Pointer[Bus]

// Use sets the global bus. Passing nil disables event publishing.
func Use(b *Bus) { global.Store(b) }

// Subscribe registers h with the global bus.
func Subscribe[T any](h Handler[T]) (unsubscribe func()) {
	if b := global.Load(); b != nil {
		return On(b, h)
	}
	return func() {}
}

// Publish sends e through the global bus.
func Publish[T any](ctx context.Context, e T) {
	if b := global.Load(); b != nil {
		Emit(ctx, b, e)
	}
}
