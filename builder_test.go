package reflow_test

import (
	"bytes"
	"context"
	"database/sql"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/petrijr/reflow"
)

func TestStoreBuilder_Defaults(t *testing.T) {
	t.Parallel()

	st, err := reflow.NewStoreBuilder(searchState{}, searchReducer(fakeLookup, nil)).Build()
	require.NoError(t, err)
	defer st.Close()

	ctx := context.Background()
	st.Dispatch(ctx, queryChanged{Query: "go"})
	require.NoError(t, st.Drain(ctx))

	require.Equal(t, []string{"go-1", "go-2"}, st.State().Results)
}

func TestStoreBuilder_MetricsAndJournal(t *testing.T) {
	t.Parallel()

	metrics := &reflow.BasicMetrics{}
	st, err := reflow.NewStoreBuilder(searchState{}, searchReducer(fakeLookup, nil)).
		WithMetrics(metrics).
		WithMemoryJournal().
		Build()
	require.NoError(t, err)
	defer st.Close()

	ctx := context.Background()
	st.Dispatch(ctx, queryChanged{Query: "go"})
	require.NoError(t, st.Drain(ctx))

	snap := metrics.Snapshot()
	require.Equal(t, int64(2), snap.EventsDispatched)
	require.Equal(t, int64(1), snap.EffectsCompleted)

	events, err := st.History(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, events)
}

func TestStoreBuilder_Logging(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	st := reflow.NewStoreBuilder(searchState{}, searchReducer(fakeLookup, nil)).
		WithLogging(logger).
		MustBuild()
	defer st.Close()

	ctx := context.Background()
	st.Dispatch(ctx, queryChanged{Query: "go"})
	require.NoError(t, st.Drain(ctx))

	out := buf.String()
	require.Contains(t, out, "event_dispatched")
	require.Contains(t, out, "effect_done")
}

func TestStoreBuilder_SQLiteJournal(t *testing.T) {
	t.Parallel()

	db, err := sql.Open("sqlite", "file:"+filepath.Join(t.TempDir(), "reflow.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	st, err := reflow.NewStoreBuilder(searchState{}, searchReducer(fakeLookup, nil)).
		WithSQLiteJournal(db).
		Build()
	require.NoError(t, err)
	defer st.Close()

	ctx := context.Background()
	st.Dispatch(ctx, queryChanged{Query: "go"})
	require.NoError(t, st.Drain(ctx))

	events, err := st.History(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, events)
}

func TestStoreBuilder_SQLiteJournalInitError(t *testing.T) {
	t.Parallel()

	db, err := sql.Open("sqlite", "file:"+filepath.Join(t.TempDir(), "reflow.db"))
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// Schema init against a closed handle fails; Build reports it.
	_, err = reflow.NewStoreBuilder(searchState{}, searchReducer(fakeLookup, nil)).
		WithSQLiteJournal(db).
		Build()
	require.Error(t, err)
}

func TestStoreBuilder_Panics(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() {
		reflow.NewStoreBuilder[searchState, searchEvent](searchState{}, nil)
	})
	require.Panics(t, func() {
		reflow.NewStoreBuilder(searchState{}, searchReducer(fakeLookup, nil)).WithMetrics(nil)
	})
}
