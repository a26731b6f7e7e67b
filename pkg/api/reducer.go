package api

import "context"

// Animation is an opaque hint attached to a dispatched event and handed
// through to whatever consumes dispatch notifications (typically a UI
// integration layer). The core never inspects it.
type Animation any

// Effect is a single asynchronous unit of work returned by a reducer.
//
// Effects are started by the store after the reduce call that produced them
// returns. They run concurrently with each other and with subsequent
// dispatches, and may feed further events back into the store through send.
//
// An effect must honor ctx: when ctx is cancelled it should stop promptly and
// return ctx.Err(). Any other non-nil error marks the effect as failed; the
// failure is surfaced through the store's Observer and journal but does not
// affect sibling effects or the store itself.
type Effect[E any] func(ctx context.Context, send Send[E]) error

// Send is the dispatch handle passed into a running effect. Events sent
// through it are fed back into the owning store's serialized reduce loop.
//
// Once the effect's context is cancelled, sends become no-ops: the store
// guarantees no event derived from a cancelled effect is dispatched.
type Send[E any] struct {
	send func(event E, anim Animation)
}

// NewSend wraps a raw dispatch function into a Send handle.
// It is intended for store implementations and for tests that drive an
// effect by hand.
func NewSend[E any](fn func(event E, anim Animation)) Send[E] {
	if fn == nil {
		panic("reflow: NewSend requires a non-nil dispatch function")
	}
	return Send[E]{send: fn}
}

// Send dispatches an event with no animation hint.
func (s Send[E]) Send(event E) {
	s.send(event, nil)
}

// Animated dispatches an event carrying the given animation hint.
// The hint is passed through unmodified.
func (s Send[E]) Animated(event E, anim Animation) {
	s.send(event, anim)
}

// Reducer consumes a (state, event) pair, mutating state in place, and
// returns zero or more effects to be executed by the store.
//
// Reduce calls are serialized by the store: within one call the reducer has
// exclusive access to state. Effects returned by Reduce must not retain the
// state pointer; anything they need from state has to be copied out before
// Reduce returns.
type Reducer[S, E any] interface {
	Reduce(state *S, event E) []Effect[E]
}

// ReducerFunc adapts a plain function to the Reducer interface.
type ReducerFunc[S, E any] func(state *S, event E) []Effect[E]

// Reduce calls f.
func (f ReducerFunc[S, E]) Reduce(state *S, event E) []Effect[E] {
	return f(state, event)
}

// EmptyReducer returns a reducer that ignores every event and produces no
// effects. Useful as the innermost reducer of a pure decorator chain.
func EmptyReducer[S, E any]() Reducer[S, E] {
	return ReducerFunc[S, E](func(*S, E) []Effect[E] { return nil })
}

// CombineReducers runs the given reducers in order against the same state
// and event, concatenating their effects. Later reducers observe the state
// mutations of earlier ones.
func CombineReducers[S, E any](reducers ...Reducer[S, E]) Reducer[S, E] {
	filtered := make([]Reducer[S, E], 0, len(reducers))
	for _, r := range reducers {
		if r != nil {
			filtered = append(filtered, r)
		}
	}
	if len(filtered) == 1 {
		return filtered[0]
	}
	return ReducerFunc[S, E](func(state *S, event E) []Effect[E] {
		var effects []Effect[E]
		for _, r := range filtered {
			effects = append(effects, r.Reduce(state, event)...)
		}
		return effects
	})
}
