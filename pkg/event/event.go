// Package event provides a small synchronous event dispatcher.
//
// Services fire events after their transaction commits; listeners (metrics,
// logging) subscribe at boot. A panicking listener is logged and skipped so
// it never fails the operation that fired the event.
package event

import (
	"context"
	"sync"

	"github.com/shashiranjanraj/cafedesk/pkg/logger"
)

// Handler is a function that receives an event payload.
type Handler func(ctx context.Context, payload any)

// Bus routes named events to their handlers. A nil *Bus drops everything.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
}

// New creates an empty Bus.
func New() *Bus {
	return &Bus{handlers: map[string][]Handler{}}
}

// Listen registers a handler for the given event name.
func (b *Bus) Listen(event string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[event] = append(b.handlers[event], handler)
}

// Fire dispatches an event synchronously to all registered listeners, in
// registration order.
func (b *Bus) Fire(ctx context.Context, event string, payload any) {
	if b == nil {
		return
	}

	b.mu.RLock()
	hs := make([]Handler, len(b.handlers[event]))
	copy(hs, b.handlers[event])
	b.mu.RUnlock()

	for _, h := range hs {
		b.dispatch(ctx, event, h, payload)
	}
}

func (b *Bus) dispatch(ctx context.Context, event string, h Handler, payload any) {
	defer func() {
		if r := recover(); r != nil {
			logger.WithCtx(ctx).Error("event: listener panicked", "event", event, "panic", r)
		}
	}()
	h(ctx, payload)
}

// Flush removes all listeners (useful in tests).
func (b *Bus) Flush() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = map[string][]Handler{}
}
