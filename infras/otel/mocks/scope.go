package mocks

import (
	"rentro/infras/otel"
	"sync"
)

// Scope records what code under test traced. The zero value is ready to use.
type Scope struct {
	mu sync.Mutex

	Errors     []error
	Events     []string
	Attributes map[string]any
	Ended      bool
}

func (s *Scope) End() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Ended = true
}

func (s *Scope) TraceError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Errors = append(s.Errors, err)
}

func (s *Scope) TraceIfError(err error) {
	if err != nil {
		s.TraceError(err)
	}
}

func (s *Scope) AddEvent(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Events = append(s.Events, name)
}

func (s *Scope) SetAttribute(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Attributes == nil {
		s.Attributes = map[string]any{}
	}

	s.Attributes[key] = value
}

func (s *Scope) SetAttributes(attributes map[string]any) {
	for key, value := range attributes {
		s.SetAttribute(key, value)
	}
}

// TracedErrors returns a copy of the errors traced so far.
func (s *Scope) TracedErrors() []error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]error(nil), s.Errors...)
}

func NewScope() otel.Scope {
	return &Scope{}
}
