package api

import "fmt"

// TaskResult carries the outcome of an asynchronous task as an event
// payload: either a success value or an error. It is business-level failure
// signaling, distinct from an error raised inside an effect.
type TaskResult[V any] struct {
	Value V
	Err   error
}

// Success wraps a value in a successful TaskResult.
func Success[V any](value V) TaskResult[V] {
	return TaskResult[V]{Value: value}
}

// Failure wraps an error in a failed TaskResult.
func Failure[V any](err error) TaskResult[V] {
	return TaskResult[V]{Err: err}
}

// Unwrap returns the value and error carried by the result.
func (r TaskResult[V]) Unwrap() (V, error) {
	return r.Value, r.Err
}

// FailureHandler reacts to a failed TaskResult received by a result setter.
// It runs synchronously inside the reduce call and may mutate state.
type FailureHandler[S any] func(state *S, err error)

// FailLoudly returns a FailureHandler that panics with the received error,
// optionally prefixed. It is intended for tests, where an unexpected failure
// payload should abort the test rather than be silently dropped.
func FailLoudly[S any](prefix string) FailureHandler[S] {
	return func(_ *S, err error) {
		if prefix != "" {
			panic(fmt.Sprintf("%s: %v", prefix, err))
		}
		panic(fmt.Sprintf("reflow: unexpected task failure: %v", err))
	}
}

// SetterReducer decorates a base reducer so that events matching a receive
// case path copy their payload into state through a setter function.
//
// The setter runs synchronously inside Reduce, after the base reducer's own
// mutation for the same event. The decorator never adds effects: it returns
// the base reducer's effects unchanged.
type SetterReducer[S, E, V any] struct {
	base    Reducer[S, E]
	receive CasePath[E, V]
	set     func(state *S, value V)
}

// NewSetter builds a SetterReducer copying the matched payload into state
// via set.
func NewSetter[S, E, V any](
	base Reducer[S, E],
	receive CasePath[E, V],
	set func(state *S, value V),
) *SetterReducer[S, E, V] {
	if base == nil {
		panic("reflow: setter requires a non-nil base reducer")
	}
	if set == nil {
		panic("reflow: setter requires a non-nil set function")
	}
	return &SetterReducer[S, E, V]{base: base, receive: receive, set: set}
}

// NewResultSetter builds a SetterReducer for TaskResult payloads. A success
// payload is unwrapped and passed to set; a failure payload is passed to
// onFailure. A nil onFailure drops failures silently, leaving state
// untouched.
func NewResultSetter[S, E, V any](
	base Reducer[S, E],
	receive CasePath[E, TaskResult[V]],
	set func(state *S, value V),
	onFailure FailureHandler[S],
) *SetterReducer[S, E, TaskResult[V]] {
	if set == nil {
		panic("reflow: setter requires a non-nil set function")
	}
	return NewSetter(base, receive, func(state *S, result TaskResult[V]) {
		value, err := result.Unwrap()
		if err == nil {
			set(state, value)
			return
		}
		if onFailure != nil {
			onFailure(state, err)
		}
	})
}

// Reduce delegates to the base reducer, applies the setter if event matches
// the receive case path, and returns the base effects unchanged.
func (r *SetterReducer[S, E, V]) Reduce(state *S, event E) []Effect[E] {
	base := r.base.Reduce(state, event)

	if value, ok := r.receive.Extract(event); ok {
		r.set(state, value)
	}

	return base
}
