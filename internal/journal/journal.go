// Package journal provides append-only dispatch history storage for reflow
// stores. A journal records every dispatched event and effect lifecycle
// transition as an api.StoreEvent; backends range from in-memory (tests,
// development) to SQLite and, via submodules, Redis, Postgres and MongoDB.
package journal

import (
	"context"

	"github.com/petrijr/reflow/pkg/api"
)

// Journal is an append-only history store for store dispatch events.
//
// Append is called from the store's dispatch path and from effect
// goroutines; implementations must be safe for concurrent use.
type Journal interface {
	Append(ctx context.Context, ev api.StoreEvent) error
	List(ctx context.Context, storeID string) ([]api.StoreEvent, error)
}

// Noop discards all events.
type Noop struct{}

func (Noop) Append(ctx context.Context, ev api.StoreEvent) error { return nil }
func (Noop) List(ctx context.Context, storeID string) ([]api.StoreEvent, error) {
	return nil, nil
}
