package reflow

import (
	"database/sql"
	"log/slog"

	"github.com/petrijr/reflow/internal/journal"
	internalstore "github.com/petrijr/reflow/internal/store"
)

// StoreBuilder provides a fluent API for assembling a store:
//
//	st, err := reflow.NewStoreBuilder(appState{}, reducer).
//	    WithLogging(nil).
//	    WithSQLiteJournal(db).
//	    Build()
//
// Builders are single-use; Build constructs one store.
type StoreBuilder[S, E any] struct {
	initial   S
	reducer   Reducer[S, E]
	observers []Observer
	jrnl      journal.Journal
	jrnlErr   error
}

// NewStoreBuilder creates a builder for a store owning initial state driven
// by reducer.
func NewStoreBuilder[S, E any](initial S, reducer Reducer[S, E]) *StoreBuilder[S, E] {
	if reducer == nil {
		panic("reflow: store builder requires a non-nil reducer")
	}
	return &StoreBuilder[S, E]{initial: initial, reducer: reducer}
}

// WithObserver adds an observer. Multiple observers are combined with
// NewCompositeObserver.
func (b *StoreBuilder[S, E]) WithObserver(obs Observer) *StoreBuilder[S, E] {
	if obs != nil {
		b.observers = append(b.observers, obs)
	}
	return b
}

// WithLogging adds a LoggingObserver using the given slog.Logger.
// If logger is nil, slog.Default() is used.
func (b *StoreBuilder[S, E]) WithLogging(logger *slog.Logger) *StoreBuilder[S, E] {
	return b.WithObserver(NewLoggingObserver(logger))
}

// WithMetrics adds the given BasicMetrics collector as an observer.
func (b *StoreBuilder[S, E]) WithMetrics(m *BasicMetrics) *StoreBuilder[S, E] {
	if m == nil {
		panic("reflow: WithMetrics requires a non-nil collector")
	}
	return b.WithObserver(m)
}

// WithMemoryJournal keeps dispatch history in memory.
func (b *StoreBuilder[S, E]) WithMemoryJournal() *StoreBuilder[S, E] {
	b.jrnl = journal.NewMemory()
	return b
}

// WithSQLiteJournal persists dispatch history in the given SQLite database.
// Schema initialization errors are reported by Build.
func (b *StoreBuilder[S, E]) WithSQLiteJournal(db *sql.DB) *StoreBuilder[S, E] {
	b.jrnl, b.jrnlErr = journal.NewSQLite(db)
	return b
}

// Build constructs the store.
func (b *StoreBuilder[S, E]) Build() (Store[S, E], error) {
	if b.jrnlErr != nil {
		return nil, b.jrnlErr
	}
	return internalstore.New(b.initial, b.reducer, internalstore.Config{
		Observer: NewCompositeObserver(b.observers...),
		Journal:  b.jrnl,
	}), nil
}

// MustBuild is like Build but panics on error.
// Useful for initialization in main().
func (b *StoreBuilder[S, E]) MustBuild() Store[S, E] {
	st, err := b.Build()
	if err != nil {
		panic(err)
	}
	return st
}
