// Package events is the after-create / after-delete hook boundary of the
// record store. Handlers are registered per collection and run synchronously
// in registration order. A failing handler never fails the write that fired it.
package events

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/anonto42/oomool/backend/pkg/logger"
)

type Kind string

const (
	AfterCreate Kind = "after_create"
	AfterDelete Kind = "after_delete"
)

// Handler receives the affected record, e.g. *models.Like for "likes".
type Handler func(ctx context.Context, record any) error

// Publisher is what write paths depend on.
type Publisher interface {
	AfterCreate(ctx context.Context, collection string, record any)
	AfterDelete(ctx context.Context, collection string, record any)
}

type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[Kind]map[string][]Handler
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		handlers: map[Kind]map[string][]Handler{
			AfterCreate: {},
			AfterDelete: {},
		},
	}
}

func (d *Dispatcher) OnAfterCreate(collection string, h Handler) {
	d.register(AfterCreate, collection, h)
}

func (d *Dispatcher) OnAfterDelete(collection string, h Handler) {
	d.register(AfterDelete, collection, h)
}

func (d *Dispatcher) register(kind Kind, collection string, h Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[kind][collection] = append(d.handlers[kind][collection], h)
}

func (d *Dispatcher) AfterCreate(ctx context.Context, collection string, record any) {
	d.fire(ctx, AfterCreate, collection, record)
}

func (d *Dispatcher) AfterDelete(ctx context.Context, collection string, record any) {
	d.fire(ctx, AfterDelete, collection, record)
}

func (d *Dispatcher) fire(ctx context.Context, kind Kind, collection string, record any) {
	d.mu.RLock()
	handlers := append([]Handler(nil), d.handlers[kind][collection]...)
	d.mu.RUnlock()

	for i, h := range handlers {
		if err := safeCall(ctx, h, record); err != nil {
			logger.FromContext(ctx).Warn("event handler failed",
				"kind", kind,
				"collection", collection,
				"handler", i,
				"error", err,
			)
		}
	}
}

func safeCall(ctx context.Context, h Handler, record any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v\n%s", r, debug.Stack())
		}
	}()
	return h(ctx, record)
}

// Typed adapts a handler for a concrete record type. Records of any other
// type are rejected with an error.
func Typed[T any](fn func(ctx context.Context, record T) error) Handler {
	return func(ctx context.Context, record any) error {
		typed, ok := record.(T)
		if !ok {
			var zero T
			return fmt.Errorf("unexpected record type %T, want %T", record, zero)
		}
		return fn(ctx, typed)
	}
}
