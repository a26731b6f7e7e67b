package api

import "context"

// Action describes what a subscription does with each transformed stream
// element: either emit an event built through a case path (optionally
// carrying an animation hint), or run a caller-supplied asynchronous
// operation with a dispatch handle and the element.
//
// Construct values with Emit, EmitAnimated or Handle.
type Action[E, V any] struct {
	path CasePath[E, V]
	anim Animation
	emit bool
	op   func(ctx context.Context, send Send[E], value V) error
}

// Emit returns an Action that embeds each element into an event via path and
// dispatches it.
func Emit[E, V any](path CasePath[E, V]) Action[E, V] {
	return Action[E, V]{path: path, emit: true}
}

// EmitAnimated is Emit with an animation hint attached to every dispatch.
// The hint is passed through to the dispatch mechanism unmodified.
func EmitAnimated[E, V any](path CasePath[E, V], anim Animation) Action[E, V] {
	return Action[E, V]{path: path, anim: anim, emit: true}
}

// Handle returns an Action that calls op once per element. The subscription
// awaits op before taking the next element, so per-element work is
// sequential within one subscription. op may dispatch zero, one or many
// events through send.
//
// If op returns a non-nil error the subscription effect terminates with that
// error. Sibling effects and later trigger occurrences are unaffected.
func Handle[E, V any](op func(ctx context.Context, send Send[E], value V) error) Action[E, V] {
	if op == nil {
		panic("reflow: Handle requires a non-nil operation")
	}
	return Action[E, V]{op: op}
}

// SubscriptionReducer decorates a base reducer with a stream subscription.
//
// Every event is first delegated to the base reducer. Events matching the
// trigger case path additionally open the configured stream: a new
// long-running effect is returned that relays each stream element, in
// arrival order, to the outgoing action. Non-matching events pass through
// with exactly the base reducer's effects.
//
// Each occurrence of the trigger opens a fresh, independent subscription;
// the decorator never deduplicates or cancels a previous one. Subscription
// lifecycle beyond that (cancel on teardown, cancel on repeat) belongs to
// the store and the caller's event design.
//
// Type parameters: S state, E event, P trigger payload (usually ignored),
// T raw stream element, V transformed element.
type SubscriptionReducer[S, E, P, T, V any] struct {
	base      Reducer[S, E]
	trigger   CasePath[E, P]
	open      func(ctx context.Context, state S) <-chan T
	transform func(T) V
	out       Action[E, V]
}

// NewSubscription decorates base so that events matching trigger open
// source and feed its elements, untransformed, to out.
func NewSubscription[S, E, P, T any](
	base Reducer[S, E],
	trigger CasePath[E, P],
	source Stream[T],
	out Action[E, T],
) *SubscriptionReducer[S, E, P, T, T] {
	return NewMappedSubscription(base, trigger, source, identity[T], out)
}

// NewMappedSubscription is NewSubscription with a transform applied to each
// element before it reaches the outgoing action.
func NewMappedSubscription[S, E, P, T, V any](
	base Reducer[S, E],
	trigger CasePath[E, P],
	source Stream[T],
	transform func(T) V,
	out Action[E, V],
) *SubscriptionReducer[S, E, P, T, V] {
	if source == nil {
		panic("reflow: subscription requires a non-nil stream source")
	}
	return newSubscription(base, trigger, func(ctx context.Context, _ S) <-chan T {
		return source(ctx)
	}, transform, out)
}

// NewStateSubscription decorates base with a state-parametrized
// subscription: when trigger fires, source is called with a read-only
// snapshot of the state taken at that instant (after the base reducer's
// synchronous mutation for the same event) and the resulting stream's
// elements are fed, untransformed, to out.
func NewStateSubscription[S, E, P, T any](
	base Reducer[S, E],
	trigger CasePath[E, P],
	source func(state S) Stream[T],
	out Action[E, T],
) *SubscriptionReducer[S, E, P, T, T] {
	return NewMappedStateSubscription(base, trigger, source, identity[T], out)
}

// NewMappedStateSubscription is NewStateSubscription with a transform
// applied to each element before it reaches the outgoing action.
func NewMappedStateSubscription[S, E, P, T, V any](
	base Reducer[S, E],
	trigger CasePath[E, P],
	source func(state S) Stream[T],
	transform func(T) V,
	out Action[E, V],
) *SubscriptionReducer[S, E, P, T, V] {
	if source == nil {
		panic("reflow: subscription requires a non-nil stream source")
	}
	return newSubscription(base, trigger, func(ctx context.Context, state S) <-chan T {
		return source(state)(ctx)
	}, transform, out)
}

func newSubscription[S, E, P, T, V any](
	base Reducer[S, E],
	trigger CasePath[E, P],
	open func(ctx context.Context, state S) <-chan T,
	transform func(T) V,
	out Action[E, V],
) *SubscriptionReducer[S, E, P, T, V] {
	if base == nil {
		panic("reflow: subscription requires a non-nil base reducer")
	}
	if transform == nil {
		panic("reflow: subscription requires a non-nil transform")
	}
	if !out.emit && out.op == nil {
		panic("reflow: subscription requires an outgoing action built with Emit, EmitAnimated or Handle")
	}
	return &SubscriptionReducer[S, E, P, T, V]{
		base:      base,
		trigger:   trigger,
		open:      open,
		transform: transform,
		out:       out,
	}
}

// Reduce delegates to the base reducer, then, if event matches the trigger,
// appends one stream-consuming effect to the base effects.
func (r *SubscriptionReducer[S, E, P, T, V]) Reduce(state *S, event E) []Effect[E] {
	base := r.base.Reduce(state, event)

	if _, ok := r.trigger.Extract(event); !ok {
		return base
	}

	// Snapshot by value: the effect runs concurrently and must never touch
	// live state.
	snapshot := *state

	return append(base, r.consume(snapshot))
}

func (r *SubscriptionReducer[S, E, P, T, V]) consume(snapshot S) Effect[E] {
	return func(ctx context.Context, send Send[E]) error {
		values := r.open(ctx, snapshot)
		for {
			// Cancellation wins over a ready element.
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			select {
			case <-ctx.Done():
				return ctx.Err()
			case raw, ok := <-values:
				if !ok {
					return nil
				}
				if err := r.deliver(ctx, send, r.transform(raw)); err != nil {
					return err
				}
			}
		}
	}
}

func (r *SubscriptionReducer[S, E, P, T, V]) deliver(ctx context.Context, send Send[E], value V) error {
	if r.out.op != nil {
		return r.out.op(ctx, send, value)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	send.Animated(r.out.path.Embed(value), r.out.anim)
	return nil
}

func identity[T any](v T) T { return v }
