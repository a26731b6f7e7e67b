// Package reflow provides a lightweight, embeddable unidirectional data flow
// library for Go.
//
// Reflow is designed for applications that want a single owned state value
// driven by events through a reducer, with asynchronous work expressed as
// effects, without introducing heavy infrastructure. It runs fully in Go and
// integrates cleanly into existing codebases.
//
// # Core Concepts
//
// The reflow programming model is intentionally small and idiomatic:
//
//  1. Store
//  2. Reducer and Effect
//  3. CasePath
//  4. Stream
//  5. Decorators
//
// These components form a complete unidirectional data flow system with
// serialized state mutation, concurrent effect execution, and a clear mental
// model.
//
// # Store
//
// The Store owns a state value and drives it through a reducer. It
// serializes reduce calls (state has exactly one writer), executes the
// effects each reduce call returns on their own goroutines, and feeds events
// those effects dispatch back into the same serialized channel.
//
// Stores can optionally journal their dispatch history:
//
//   - In memory (tests, debugging)
//   - SQLite (embedded durability)
//   - Redis, Postgres, MongoDB (via submodules)
//
// # Reducer and Effect
//
// A Reducer consumes a (state, event) pair, mutates state in place, and
// returns zero or more effects:
//
//	type Effect[E any] func(ctx context.Context, send Send[E]) error
//
// Effects run concurrently, may dispatch further events through their Send
// handle, and stop when their context is cancelled. Reducers compose by
// wrapping: a decorator owns one inner reducer, delegates to it first, and
// only ever adds behavior.
//
// # CasePath
//
// A CasePath is a partial, invertible mapping between an event sum type and
// one variant's payload. Decorators use case paths to recognize trigger and
// receive events and to construct outgoing events.
//
// # Stream
//
// A Stream is a lazy, possibly infinite asynchronous sequence of values,
// represented as a channel-producing function. Streams back subscriptions:
// timers, watches, external feeds.
//
// # Decorators
//
// Subscribe attaches a stream to a reducer: when the trigger event matches,
// the stream is opened (optionally parametrized by a snapshot of current
// state) and every element it yields is relayed, in arrival order and
// optionally transformed, into an outgoing event or a caller-supplied
// operation.
// Each trigger occurrence opens an independent subscription.
//
// SetField copies the payload of a matching event into a state field;
// SetFieldFromResult branches TaskResult payloads into a success setter and
// an optional failure handler.
//
// # Summary
//
// Reflow's goal is to give Go developers unidirectional data flow that feels
// like Go: easy to embed, easy to test, deterministic where it matters, and
// without operational overhead. Stores own state, Reducers describe
// transitions, Effects carry asynchrony, and decorators wire streams and
// received values into the loop.
//
// For examples, see the /examples directory or the project README.
package reflow
