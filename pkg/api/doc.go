// Package api contains the core building blocks used by the reflow state
// library. It provides the low-level primitives for composing reducers,
// describing effects and streams, and observing store behavior.
//
// Most users interact with the higher-level reflow package, which re-exports
// selected types and helpers from this package. The api package is intended
// for advanced use cases, custom integrations, or contributors extending the
// core itself.
//
// # Concepts
//
// The api package centers around a small set of concepts:
//
//   - Reducers and effects
//   - Case paths
//   - Streams
//   - Decorators (subscriptions and setters)
//   - Observability
//
// # Reducers and Effects
//
// A Reducer consumes a (state, event) pair, mutates state in place, and
// returns zero or more effects. Effects are asynchronous units of work that
// may dispatch further events back into the owning store through a Send
// handle. Reduce calls are serialized by the store; effects run concurrently.
//
// Reducers compose by wrapping: a decorator is itself a Reducer that owns
// exactly one inner reducer and delegates to it first. Composition is
// additive: a decorator combines its own effects with the inner reducer's,
// it never replaces them.
//
// # Case Paths
//
// A CasePath is a partial, invertible mapping between an event sum type and
// one of its variants' payloads. Decorators use case paths both to test
// whether an incoming event matches a configured variant and to construct
// outgoing events from payloads. The Variant helper covers the common
// interface-plus-concrete-types encoding of sum types in Go.
//
// # Streams
//
// A Stream is a lazily-started, possibly infinite asynchronous sequence of
// values, represented as a channel-producing function. The channel closing
// is the stream's "finished" signal; context cancellation stops production.
//
// # Decorators
//
// SubscriptionReducer attaches a stream to a reducer: when a trigger event
// matches, it opens the stream and relays each element, optionally
// transformed, into an outgoing event or a caller-supplied operation.
// SetterReducer copies the payload of a matching event into a state field,
// with success/failure branching for TaskResult payloads.
//
// # Observability
//
// The api package defines the Observer interface, which stores use to report
// dispatch and effect lifecycle. Ready-made implementations cover structured
// logging (log/slog), basic in-memory metrics, and observer composition.
//
// # Usage
//
// Most applications should start from the reflow package, using the store
// constructors and decorator helpers provided there. The api package is
// useful when you need lower-level access, custom composition, or when
// contributing changes to the core.
//
// See the reflow package documentation and the examples directory for
// end-to-end usage.
package api
