package context

import (
	"context"
	"testing"
	"time"
)

// time left for cleanups after the context is done.
const cleanupMargin = time.Second

// WithTest derives a context which is done before the deadline of t.
//
// Without a deadline (no -timeout), it is only done by cancel.
func WithTest(ctx context.Context, t *testing.T) (context.Context, context.CancelFunc) {
	t.Helper()
	deadline, ok := t.Deadline()
	if !ok {
		return context.WithCancel(ctx)
	}
	return context.WithDeadline(ctx, deadline.Add(-cleanupMargin))
}
