package journal

import (
	"context"
	"database/sql"
	"time"

	"github.com/petrijr/reflow/pkg/api"
)

// SQLite stores dispatch history in a SQLite database.
//
// It expects an *sql.DB opened with a SQLite driver (for example,
// "modernc.org/sqlite"). The caller owns the database handle.
type SQLite struct {
	db *sql.DB
}

// Ensure SQLite implements the interface.
var _ Journal = (*SQLite)(nil)

// NewSQLite initializes the required schema in the given database and
// returns a new SQLite journal.
func NewSQLite(db *sql.DB) (*SQLite, error) {
	s := &SQLite{db: db}
	if err := s.initSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SQLite) initSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS store_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			store_id TEXT NOT NULL,
			at INTEGER NOT NULL,
			type TEXT NOT NULL,
			effect_id TEXT NOT NULL DEFAULT '',
			detail TEXT NOT NULL DEFAULT '',
			payload BLOB
		);
		CREATE INDEX IF NOT EXISTS idx_store_events_store_id ON store_events(store_id, id);
	`)
	return err
}

func (s *SQLite) Append(ctx context.Context, ev api.StoreEvent) error {
	at := ev.At
	if at.IsZero() {
		at = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO store_events (store_id, at, type, effect_id, detail, payload)
		VALUES (?, ?, ?, ?, ?, ?)`,
		ev.StoreID,
		at.UnixNano(),
		string(ev.Type),
		ev.EffectID,
		ev.Detail,
		ev.Payload,
	)
	return err
}

func (s *SQLite) List(ctx context.Context, storeID string) ([]api.StoreEvent, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT store_id, at, type, effect_id, detail, payload
		FROM store_events
		WHERE store_id = ?
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
