package mocks

import (
	"context"
	"rentro/infras/otel"
	"sync"
)

// Otel hands out recording scopes keyed by span name.
type Otel struct {
	mu     sync.Mutex
	scopes map[string]*Scope
}

func (o *Otel) NewScope(ctx context.Context, _, spanName string) (context.Context, otel.Scope) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.scopes == nil {
		o.scopes = map[string]*Scope{}
	}

	scope := &Scope{}
	o.scopes[spanName] = scope

	return ctx, scope
}

func (o *Otel) Shutdown(_ context.Context) error {
	return nil
}

// Scope returns the latest scope opened under spanName, or nil.
func (o *Otel) Scope(spanName string) *Scope {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.scopes[spanName]
}

func NewOtel() otel.Otel {
	return &Otel{}
}

// NewRecorder is NewOtel with the concrete type, for tests that inspect scopes.
func NewRecorder() *Otel {
	return &Otel{}
}
