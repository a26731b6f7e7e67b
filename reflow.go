package reflow

import (
	"context"
	"database/sql"

	"github.com/petrijr/reflow/internal/journal"
	internalstore "github.com/petrijr/reflow/internal/store"
	"github.com/petrijr/reflow/pkg/api"
)

// Re-export key types so users don't need to dig into pkg/api.

type (
	Reducer[S, E any]     = api.Reducer[S, E]
	ReducerFunc[S, E any] = api.ReducerFunc[S, E]
	Effect[E any]         = api.Effect[E]
	Send[E any]           = api.Send[E]
	Animation             = api.Animation

	CasePath[E, P any] = api.CasePath[E, P]
	Stream[T any]      = api.Stream[T]
	Action[E, V any]   = api.Action[E, V]

	TaskResult[V any]     = api.TaskResult[V]
	FailureHandler[S any] = api.FailureHandler[S]

	Store[S, E any] = api.Store[S, E]
	EffectHandle    = api.EffectHandle
	StoreEvent      = api.StoreEvent
	EventType       = api.EventType

	Observer             = api.Observer
	LoggingObserver      = api.LoggingObserver
	BasicMetrics         = api.BasicMetrics
	BasicMetricsSnapshot = api.BasicMetricsSnapshot
	CompositeObserver    = api.CompositeObserver
	NoopObserver         = api.NoopObserver
)

// Re-export common observer helpers.

var (
	NewLoggingObserver   = api.NewLoggingObserver
	NewCompositeObserver = api.NewCompositeObserver
)

// Re-export history event types for convenience.

const (
	EventDispatched      = api.EventDispatched
	EventEffectStarted   = api.EventEffectStarted
	EventEffectCompleted = api.EventEffectCompleted
	EventEffectFailed    = api.EventEffectFailed
	EventEffectCancelled = api.EventEffectCancelled
	EventStoreClosed     = api.EventStoreClosed
)

// Store constructors
// These wrap the internal/store package so external callers
// never need to import internal packages.

// NewStore returns a Store with no journal and no observer.
func NewStore[S, E any](initial S, reducer Reducer[S, E]) Store[S, E] {
	return internalstore.New(initial, reducer, internalstore.Config{})
}

// NewStoreWithObserver returns a Store with the given Observer.
func NewStoreWithObserver[S, E any](initial S, reducer Reducer[S, E], obs Observer) Store[S, E] {
	return internalstore.New(initial, reducer, internalstore.Config{Observer: obs})
}

// NewMemoryJournalStore returns a Store that keeps its dispatch history in
// memory, readable through Store.History. Intended for tests and debugging.
func NewMemoryJournalStore[S, E any](initial S, reducer Reducer[S, E]) Store[S, E] {
	return internalstore.New(initial, reducer, internalstore.Config{Journal: journal.NewMemory()})
}

// NewSQLiteStore returns a Store that persists its dispatch history in a
// SQLite database. State itself stays in memory.
func NewSQLiteStore[S, E any](db *sql.DB, initial S, reducer Reducer[S, E]) (Store[S, E], error) {
	return NewSQLiteStoreWithObserver(db, initial, reducer, nil)
}

// NewSQLiteStoreWithObserver returns a SQLite-journaled Store with the given Observer.
func NewSQLiteStoreWithObserver[S, E any](db *sql.DB, initial S, reducer Reducer[S, E], obs Observer) (Store[S, E], error) {
	jrnl, err := journal.NewSQLite(db)
	if err != nil {
		return nil, err
	}
	return internalstore.New(initial, reducer, internalstore.Config{Observer: obs, Journal: jrnl}), nil
}

// Convenience helpers that just forward to the underlying Store.

// Dispatch feeds an event into the store.
func Dispatch[S, E any](ctx context.Context, st Store[S, E], event E) []EffectHandle {
	return st.Dispatch(ctx, event)
}

// History fetches the store's journal records in append order.
func History[S, E any](ctx context.Context, st Store[S, E]) ([]StoreEvent, error) {
	return st.History(ctx)
}

// Drain blocks until all in-flight effects have finished.
//
// It is typically called in tests after dispatching a trigger, so that
// assertions run against the settled state:
//
//	st.Dispatch(ctx, startTicking{})
//	_ = reflow.Drain(ctx, st)
func Drain[S, E any](ctx context.Context, st Store[S, E]) error {
	return st.Drain(ctx)
}
