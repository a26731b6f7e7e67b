package reflow

import (
	"time"

	"github.com/petrijr/reflow/pkg/api"
)

// NewCasePath builds a CasePath from an embed/extract pair.
func NewCasePath[E, P any](embed func(P) E, extract func(E) (P, bool)) CasePath[E, P] {
	return api.NewCasePath(embed, extract)
}

// Variant returns a CasePath for interface-based event sum types, matching
// the concrete variant type V. The variant value is its own payload.
func Variant[V, E any]() CasePath[E, V] {
	return api.Variant[V, E]()
}

// Values returns a finite stream yielding the given values in order.
func Values[T any](values ...T) Stream[T] {
	return api.Values(values...)
}

// Chan adapts an existing receive channel into a Stream.
func Chan[T any](ch <-chan T) Stream[T] {
	return api.Chan(ch)
}

// Ticks returns an infinite stream yielding the current time every interval.
func Ticks(interval time.Duration) Stream[time.Time] {
	return api.Ticks(interval)
}

// EmptyReducer returns a reducer that ignores every event and produces no
// effects. Useful as the innermost reducer of a pure decorator chain.
func EmptyReducer[S, E any]() Reducer[S, E] {
	return api.EmptyReducer[S, E]()
}

// CombineReducers runs the given reducers in order against the same state
// and event, concatenating their effects.
func CombineReducers[S, E any](reducers ...Reducer[S, E]) Reducer[S, E] {
	return api.CombineReducers(reducers...)
}
