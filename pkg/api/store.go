package api

import (
	"context"
	"errors"
)

// ErrStoreClosed is returned by store operations after Close.
var ErrStoreClosed = errors.New("reflow: store is closed")

// EffectHandle represents one running (or finished) effect instance.
type EffectHandle interface {
	// ID is the unique identifier of this effect instance.
	ID() string

	// Cancel requests cancellation of the effect. Delivery of further events
	// derived from the effect stops promptly; Cancel does not wait for the
	// effect to finish.
	Cancel()

	// Done is closed when the effect has finished (completed, failed or
	// cancelled).
	Done() <-chan struct{}

	// Err reports how the effect finished. It is nil for a clean completion,
	// context.Canceled after cancellation, and the effect's own error for a
	// failure. Only meaningful after Done is closed.
	Err() error
}

// Store owns a state value and drives it through a reducer.
//
// Reduce calls are serialized: state has exactly one writer. The effects a
// reduce call returns execute concurrently, each on its own goroutine with
// its own cancellable context, and feed events back into the same serialized
// dispatch channel.
type Store[S, E any] interface {
	// Dispatch feeds one event through the reducer and starts the resulting
	// effects. It returns one handle per started effect, in the order the
	// reducer returned them. Dispatch on a closed store, or with an already
	// cancelled ctx, is a no-op returning nil.
	Dispatch(ctx context.Context, event E) []EffectHandle

	// DispatchAnimated is Dispatch with an opaque animation hint that is
	// passed through to observers unmodified.
	DispatchAnimated(ctx context.Context, event E, anim Animation) []EffectHandle

	// State returns a copy of the current state.
	State() S

	// History returns this store's journal records in append order.
	// Stores without a configured journal return nil, nil.
	History(ctx context.Context) ([]StoreEvent, error)

	// Drain blocks until all in-flight effects have finished or ctx is
	// cancelled. It does not cancel anything.
	Drain(ctx context.Context) error

	// Close cancels all in-flight effects, waits for them to finish and
	// marks the store closed. Further dispatches are dropped.
	Close() error
}

// isCancellation distinguishes an effect stopped by its context from a
// genuine failure.
func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// IsCancellation reports whether err represents effect cancellation rather
// than failure. Exposed for observers and tests.
func IsCancellation(err error) bool {
	return isCancellation(err)
}
