package trace

import "context"

// Tracer receives events from spans and heartbeats. Implementations must be
// safe for concurrent use: batch rendering emits from several goroutines.
type Tracer interface {
	Emit(ev *Event)
	Flush() error
	Close() error
	Level() Level
	// Enabled is false only for tracers that drop every event.
	Enabled() bool
}

type nopTracer struct{}

func (nopTracer) Emit(*Event)   {}
func (nopTracer) Flush() error  { return nil }
func (nopTracer) Close() error  { return nil }
func (nopTracer) Level() Level  { return LevelOff }
func (nopTracer) Enabled() bool { return false }

// Nop drops everything. FromContext returns it when no tracer is attached.
var Nop Tracer = nopTracer{}

// SpanContext identifies the span that new child spans should hang off.
type SpanContext struct {
	SpanID uint64
	GID    uint64
}

type (
	tracerKey struct{}
	spanKey   struct{}
)

// WithTracer returns a copy of ctx carrying t; a nil t is stored as Nop.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, tracerKey{}, t)
}

func FromContext(ctx context.Context) Tracer {
	if ctx != nil {
		if t, ok := ctx.Value(tracerKey{}).(Tracer); ok {
			return t
		}
	}
	return Nop
}

func WithSpanContext(ctx context.Context, sc SpanContext) context.Context {
	if ctx == nil {
		return nil
	}
	return context.WithValue(ctx, spanKey{}, sc)
}

// CurrentSpan returns the span stored by WithSpanContext, or the zero value
// (a root parent) when there is none.
func CurrentSpan(ctx context.Context) SpanContext {
	var sc SpanContext
	if ctx != nil {
		sc, _ = ctx.Value(spanKey{}).(SpanContext)
	}
	return sc
}
