// Package postgres provides a PostgreSQL-backed dispatch journal and store
// constructors for reflow.
package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/petrijr/reflow/internal/journal"
	internalstore "github.com/petrijr/reflow/internal/store"
	"github.com/petrijr/reflow/pkg/api"
)

// Journal stores dispatch history in PostgreSQL.
//
// It expects an *sql.DB that uses a PostgreSQL driver (for example,
// "github.com/jackc/pgx/v5/stdlib" or "github.com/lib/pq").
//
// The caller is responsible for:
//   - importing the driver for its side effects, e.g.:
//     _ "github.com/jackc/pgx/v5/stdlib"
//   - providing a DSN via sql.Open.
type Journal struct {
	db *sql.DB
}

// Ensure Journal implements the interface.
var _ journal.Journal = (*Journal)(nil)

// NewJournal initializes the required schema in the given database and
// returns a new PostgreSQL journal.
func NewJournal(db *sql.DB) (*Journal, error) {
	j := &Journal{db: db}
	if err := j.initSchema(); err != nil {
		return nil, err
	}
	return j, nil
}

func (j *Journal) initSchema() error {
	_, err := j.db.Exec(`
		CREATE TABLE IF NOT EXISTS store_events (
			id BIGSERIAL PRIMARY KEY,
			store_id TEXT NOT NULL,
			at BIGINT NOT NULL,
			type TEXT NOT NULL,
			effect_id TEXT NOT NULL DEFAULT '',
			detail TEXT NOT NULL DEFAULT '',
			payload BYTEA
		);
		CREATE INDEX IF NOT EXISTS idx_store_events_store_id ON store_events(store_id, id);
	`)
	return err
}

func (j *Journal) Append(ctx context.Context, ev api.StoreEvent) error {
	at := ev.At
	if at.IsZero() {
		at = time.Now()
	}
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO store_events (store_id, at, type, effect_id, detail, payload)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		ev.StoreID,
		at.UnixNano(),
		string(ev.Type),
		ev.EffectID,
		ev.Detail,
		ev.Payload,
	)
	return err
}

func (j *Journal) List(ctx context.Context, storeID string) ([]api.StoreEvent, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT store_id, at, type, effect_id, detail, payload
		FROM store_events
		WHERE store_id = $1
		ORDER BY id ASC`, storeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []api.StoreEvent
	for rows.Next() {
		var (
			id       string
			atN      int64
			typ      string
			effectID string
			detail   string
			payload  []byte
		)
		if err := rows.Scan(&id, &atN, &typ, &effectID, &detail, &payload); err != nil {
			return nil, err
		}
		out = append(out, api.StoreEvent{
			StoreID:  id,
			At:       time.Unix(0, atN),
			Type:     api.EventType(typ),
			EffectID: effectID,
			Detail:   detail,
			Payload:  payload,
		})
	}
	return out, rows.Err()
}

// NewPostgresStore returns a Store that persists its dispatch history in PostgreSQL.
func NewPostgresStore[S, E any](db *sql.DB, initial S, reducer api.Reducer[S, E]) (api.Store[S, E], error) {
	return NewPostgresStoreWithObserver(db, initial, reducer, nil)
}

// NewPostgresStoreWithObserver returns a Postgres-journaled Store with the given Observer.
func NewPostgresStoreWithObserver[S, E any](db *sql.DB, initial S, reducer api.Reducer[S, E], obs api.Observer) (api.Store[S, E], error) {
	jrnl, err := NewJournal(db)
	if err != nil {
		return nil, err
	}
	return internalstore.New(initial, reducer, internalstore.Config{
		Observer: obs,
		Journal:  jrnl,
	}), nil
}
