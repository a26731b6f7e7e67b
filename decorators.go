package reflow

import (
	"context"

	"github.com/petrijr/reflow/pkg/api"
)

// Subscribe decorates base so that events matching trigger open source and
// relay each element to out. Every trigger occurrence opens a fresh,
// independent subscription.
func Subscribe[S, E, P, T any](
	base Reducer[S, E],
	trigger CasePath[E, P],
	source Stream[T],
	out Action[E, T],
) Reducer[S, E] {
	return api.NewSubscription(base, trigger, source, out)
}

// SubscribeMapped is Subscribe with a transform applied to each element
// before it reaches the outgoing action.
func SubscribeMapped[S, E, P, T, V any](
	base Reducer[S, E],
	trigger CasePath[E, P],
	source Stream[T],
	transform func(T) V,
	out Action[E, V],
) Reducer[S, E] {
	return api.NewMappedSubscription(base, trigger, source, transform, out)
}

// SubscribeFromState is Subscribe with a state-parametrized stream source:
// when the trigger fires, source receives a read-only snapshot of the state
// taken at that instant.
func SubscribeFromState[S, E, P, T any](
	base Reducer[S, E],
	trigger CasePath[E, P],
	source func(state S) Stream[T],
	out Action[E, T],
) Reducer[S, E] {
	return api.NewStateSubscription(base, trigger, source, out)
}

// SubscribeFromStateMapped is SubscribeFromState with an element transform.
func SubscribeFromStateMapped[S, E, P, T, V any](
	base Reducer[S, E],
	trigger CasePath[E, P],
	source func(state S) Stream[T],
	transform func(T) V,
	out Action[E, V],
) Reducer[S, E] {
	return api.NewMappedStateSubscription(base, trigger, source, transform, out)
}

// Emit returns an outgoing action that embeds each element into an event via
// path and dispatches it.
func Emit[E, V any](path CasePath[E, V]) Action[E, V] {
	return api.Emit(path)
}

// EmitAnimated is Emit with an opaque animation hint attached to every
// dispatch.
func EmitAnimated[E, V any](path CasePath[E, V], anim Animation) Action[E, V] {
	return api.EmitAnimated(path, anim)
}

// Handle returns an outgoing action that runs op once per element, awaiting
// it before the next element.
func Handle[E, V any](op func(ctx context.Context, send Send[E], value V) error) Action[E, V] {
	return api.Handle(op)
}

// SetField decorates base so that events matching receive copy their payload
// into state through set. The decorator adds no effects.
func SetField[S, E, V any](
	base Reducer[S, E],
	receive CasePath[E, V],
	set func(state *S, value V),
) Reducer[S, E] {
	return api.NewSetter(base, receive, set)
}

// SetFieldFromResult is SetField for TaskResult payloads: success values are
// unwrapped into set, failures go to onFailure. A nil onFailure drops
// failures silently.
func SetFieldFromResult[S, E, V any](
	base Reducer[S, E],
	receive CasePath[E, TaskResult[V]],
	set func(state *S, value V),
	onFailure FailureHandler[S],
) Reducer[S, E] {
	return api.NewResultSetter(base, receive, set, onFailure)
}

// Success wraps a value in a successful TaskResult.
func Success[V any](value V) TaskResult[V] {
	return api.Success(value)
}

// Failure wraps an error in a failed TaskResult.
func Failure[V any](err error) TaskResult[V] {
	return api.Failure[V](err)
}

// FailLoudly returns a FailureHandler that panics with the received error,
// optionally prefixed. Intended for tests.
func FailLoudly[S any](prefix string) FailureHandler[S] {
	return api.FailLoudly[S](prefix)
}
