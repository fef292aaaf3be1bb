package lifecycle

import (
	"context"
	"time"
)

// RunWithContext executes fn and reports its outcome to handler. A nil
// handler is allowed. The error from fn is returned unchanged.
func RunWithContext(ctx context.Context, handler CompletionHandler, name string, fn func(context.Context) error) error {
	return runWithClock(ctx, handler, name, fn, time.Now)
}

func runWithClock(ctx context.Context, handler CompletionHandler, name string, fn func(context.Context) error, now func() time.Time) error {
	start := now()
	err := fn(ctx)
	if handler != nil {
		handler.OnCommandComplete(name, err == nil, now().Sub(start))
	}
	return err
}
