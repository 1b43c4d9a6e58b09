// Package mocks provides tracers for tests: NewOtel discards everything, NewRecorder keeps
// span names and traced errors so a test can assert on them.
package mocks

import (
	"context"
	"sync"

	"hotel/infras/otel"
)

func NewOtel() otel.Otel {
	return noop{}
}

type noop struct{}

func (noop) NewScope(ctx context.Context, _, _ string) (context.Context, otel.Scope) {
	return ctx, noopScope{}
}

func (noop) Shutdown(context.Context) error { return nil }

type noopScope struct{}

func (noopScope) AddEvent(string) {}
func (noopScope) End() {}
func (noopScope) SetAttribute(string, any) {}
func (noopScope) SetAttributes(map[string]any) {}
func (noopScope) TraceError(error) {}
func (noopScope) TraceIfError(error) {}

// Recorder is safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	spans  []string
	errors []error
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) NewScope(ctx context.Context, _, spanName string) (context.Context, otel.Scope) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.spans = append(r.spans, spanName)

	return ctx, recordingScope{recorder: r}
}

func (r *Recorder) Shutdown(context.Context) error { return nil }

func (r *Recorder) Spans() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]string(nil), r.spans...)
}

func (r *Recorder) Errors() []error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]error(nil), r.errors...)
}

type recordingScope struct {
	noopScope
	recorder *Recorder
}

func (s recordingScope) TraceError(err error) {
	s.recorder.mu.Lock()
	defer s.recorder.mu.Unlock()

	s.recorder.errors = append(s.recorder.errors, err)
}

func (s recordingScope) TraceIfError(err error) {
	if err != nil {
		s.TraceError(err)
	}
}
