package journal

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/petrijr/reflow/pkg/api"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// File-backed so every pooled connection sees the same database.
	dsn := "file:" + filepath.Join(t.TempDir(), "journal.db")
	db, err := sql.Open("sqlite", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSQLite_AppendAndList(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	j, err := NewSQLite(db)
	require.NoError(t, err)

	ctx := context.Background()
	at := time.Now()

	payload, err := EncodeValue(samplePayload{Query: "weather", Limit: 5})
	require.NoError(t, err)

	require.NoError(t, j.Append(ctx, api.StoreEvent{
		StoreID: "store-1",
		At:      at,
		Type:    api.EventDispatched,
		Detail:  "queryChanged",
		Payload: payload,
	}))
	require.NoError(t, j.Append(ctx, api.StoreEvent{
		StoreID:  "store-1",
		At:       at,
		Type:     api.EventEffectStarted,
		EffectID: "eff-1",
	}))

	events, err := j.List(ctx, "store-1")
	require.NoError(t, err)
	require.Len(t, events, 2)

	require.Equal(t, api.EventDispatched, events[0].Type)
	require.Equal(t, "queryChanged", events[0].Detail)
	require.Equal(t, at.UnixNano(), events[0].At.UnixNano())

	decoded, err := DecodeValue[samplePayload](events[0].Payload)
	require.NoError(t, err)
	require.Equal(t, samplePayload{Query: "weather", Limit: 5}, decoded)

	require.Equal(t, api.EventEffectStarted, events[1].Type)
	require.Equal(t, "eff-1", events[1].EffectID)
}

func TestSQLite_ListPreservesAppendOrder(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	j, err := NewSQLite(db)
	require.NoError(t, err)

	ctx := context.Background()
	// Identical timestamps; ordering must come from insertion order.
	at := time.Now()
	details := []string{"first", "second", "third"}
	for _, d := range details {
		require.NoError(t, j.Append(ctx, api.StoreEvent{
			StoreID: "store-1",
			At:      at,
			Type:    api.EventDispatched,
			Detail:  d,
		}))
	}

	events, err := j.List(ctx, "store-1")
	require.NoError(t, err)
	require.Len(t, events, len(details))
	for i, d := range details {
		require.Equal(t, d, events[i].Detail)
	}
}

func TestSQLite_StoresAreIsolated(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	j, err := NewSQLite(db)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, j.Append(ctx, api.StoreEvent{StoreID: "a", Type: api.EventDispatched}))
	require.NoError(t, j.Append(ctx, api.StoreEvent{StoreID: "b", Type: api.EventDispatched}))

	events, err := j.List(ctx, "a")
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, "a", events[0].StoreID)
}

func TestSQLite_SchemaInitIsIdempotent(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)

	_, err := NewSQLite(db)
	require.NoError(t, err)
	j, err := NewSQLite(db)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, j.Append(ctx, api.StoreEvent{StoreID: "a", Type: api.EventDispatched}))

	events, err := j.List(ctx, "a")
	require.NoError(t, err)
	require.Len(t, events, 1)
}

func TestSQLite_MissingTimestampDefaultsToNow(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	j, err := NewSQLite(db)
	require.NoError(t, err)

	ctx := context.Background()
	before := time.Now()
	require.NoError(t, j.Append(ctx, api.StoreEvent{StoreID: "a", Type: api.EventDispatched}))

	events, err := j.List(ctx, "a")
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.False(t, events[0].At.Before(before))
}
