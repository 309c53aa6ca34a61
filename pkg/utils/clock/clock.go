package clock

import (
	"context"
	"time"
)

type ctxKey struct{}

// With embeds a clock function into the context. Tests use this to pin "now"
// so lateness and dwell-time computations are deterministic.
func With(ctx context.Context, fn func() time.Time) context.Context {
	return context.WithValue(ctx, ctxKey{}, fn)
}

// Now returns the current time from the context clock, or the wall clock in
// UTC when none is set.
func Now(ctx context.Context) time.Time {
	if fn, ok := ctx.Value(ctxKey{}).(func() time.Time); ok {
		return fn()
	}
	return time.Now().UTC()
}
