package pastemyst

import "context"

// Future is the deferred result of a non-blocking operation. Every *Async
// method starts its request immediately and returns a Future the caller
// awaits with Wait or polls via Done. Cancelling the context passed to the
// operation aborts the in-flight request.
type Future[T any] struct {
	done chan struct{}
	val  T
	err  error
}

// newFuture runs fn in its own goroutine and resolves the future with its
// result. The async form of each operation wraps the blocking form this
// way, so both share one implementation.
func newFuture[T any](fn func() (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		f.val, f.err = fn()
	}()
	return f
}

// Wait blocks until the operation completes or ctx is done, whichever comes
// first. A context cancellation while waiting surfaces as ErrTransport
// wrapping ctx.Err(); the operation itself keeps the context it was started
// with.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, &Error{Code: ErrTransport, Message: "awaiting response", Err: ctx.Err()}
	}
}

// Done returns a channel that is closed once the result is available, for
// use in select statements.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// TryResult reports the result without blocking. ok is false while the
// operation is still in flight.
func (f *Future[T]) TryResult() (val T, err error, ok bool) {
	select {
	case <-f.done:
		return f.val, f.err, true
	default:
		var zero T
		return zero, nil, false
	}
}
