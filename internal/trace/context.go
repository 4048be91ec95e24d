package trace

import "context"

type ctxKey struct{}

type spanKey struct{}

// FromContext returns the Tracer attached to ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	if ctx == nil {
		return Nop
	}
	if t, ok := ctx.Value(ctxKey{}).(Tracer); ok {
		return t
	}
	return Nop
}

// WithTracer attaches a Tracer to ctx.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, ctxKey{}, t)
}

// CurrentSpan returns the ID of the span active in ctx, or 0.
func CurrentSpan(ctx context.Context) uint64 {
	if ctx == nil {
		return 0
	}
	id, _ := ctx.Value(spanKey{}).(uint64)
	return id
}

// WithSpan marks span as the parent for spans begun under ctx.
func WithSpan(ctx context.Context, span *Span) context.Context {
	if span == nil || span.ID() == 0 {
		return ctx
	}
	return context.WithValue(ctx, spanKey{}, span.ID())
}
