// Package guard time-boxes a single blocking operation.
//
// Do races the operation against a deadline. Whichever settles first decides
// the result; a late result from the operation is dropped. The context handed
// to the operation is cancelled as soon as Do returns, so operations built on
// exec.CommandContext (or anything else honouring ctx) are torn down instead
// of being left running in the background. A panic inside the operation is
// reported as ErrPanic instead of taking the process down.
//
// Example usage:
//
//	out, err := guard.Do(ctx, time.Second, func(ctx context.Context) ([]byte, error) {
//		return exec.CommandContext(ctx, "nslookup", "10.0.0.1").Output()
//	})
//	if errors.Is(err, guard.ErrTimeout) {
//		// the command did not finish within one second
//	}
package guard

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrTimeout is returned when the deadline elapses before the operation settles.
	ErrTimeout = errors.New("operation timed out")
	// ErrPanic is returned when the operation panicked.
	ErrPanic = errors.New("operation panicked")
)

// Op is a cancellable operation producing a value.
type Op[T any] func(ctx context.Context) (T, error)

type result[T any] struct {
	value T
	err   error
}

// Do runs op with a hard deadline of timeout. A non-positive timeout only
// honours the parent context.
func Do[T any](ctx context.Context, timeout time.Duration, op Op[T]) (T, error) {
	var (
		cancel context.CancelFunc
		zero   T
	)
	if timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, timeout)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}
	defer cancel()

	// buffered so the losing goroutine can always deliver and exit
	done := make(chan result[T], 1)
	go func() {
		var res result[T]
		defer func() {
			if r := recover(); r != nil {
				res = result[T]{err: fmt.Errorf("%w: %v", ErrPanic, r)}
			}
			done <- res
		}()
		res.value, res.err = op(ctx)
	}()

	select {
	case res := <-done:
		return res.value, res.err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return zero, fmt.Errorf("%w after %s: %w", ErrTimeout, timeout, ctx.Err())
		}
		return zero, ctx.Err()
	}
}
