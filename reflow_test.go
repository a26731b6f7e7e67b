package reflow_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/petrijr/reflow"
)

// The test domain is a small search screen: typing a query starts a lookup,
// and the results land back in state when the lookup finishes.

type searchEvent interface{ isSearchEvent() }

type queryChanged struct{ Query string }
type resultsLoaded struct{ Result reflow.TaskResult[[]string] }

func (queryChanged) isSearchEvent()  {}
func (resultsLoaded) isSearchEvent() {}

type searchState struct {
	Query   string
	Results []string
}

func queryPath() reflow.CasePath[searchEvent, string] {
	return reflow.NewCasePath(
		func(q string) searchEvent { return queryChanged{Query: q} },
		func(e searchEvent) (string, bool) {
			if qc, ok := e.(queryChanged); ok {
				return qc.Query, true
			}
			return "", false
		},
	)
}

func resultsPath() reflow.CasePath[searchEvent, reflow.TaskResult[[]string]] {
	return reflow.NewCasePath(
		func(r reflow.TaskResult[[]string]) searchEvent { return resultsLoaded{Result: r} },
		func(e searchEvent) (reflow.TaskResult[[]string], bool) {
			if rl, ok := e.(resultsLoaded); ok {
				return rl.Result, true
			}
			return reflow.TaskResult[[]string]{}, false
		},
	)
}

// searchReducer wires the full decorator chain: query setter, state-driven
// lookup subscription, result setter.
func searchReducer(lookup func(query string) reflow.TaskResult[[]string], onFailure reflow.FailureHandler[searchState]) reflow.Reducer[searchState, searchEvent] {
	base := reflow.SetField(
		reflow.EmptyReducer[searchState, searchEvent](),
		queryPath(),
		func(s *searchState, q string) { s.Query = q },
	)

	subscribed := reflow.SubscribeFromState(
		base,
		reflow.Variant[queryChanged, searchEvent](),
		func(s searchState) reflow.Stream[reflow.TaskResult[[]string]] {
			return reflow.Values(lookup(s.Query))
		},
		reflow.Emit(resultsPath()),
	)

	return reflow.SetFieldFromResult(
		subscribed,
		resultsPath(),
		func(s *searchState, results []string) { s.Results = results },
		onFailure,
	)
}

func fakeLookup(query string) reflow.TaskResult[[]string] {
	return reflow.Success([]string{query + "-1", query + "-2"})
}

func TestSearchFlow_EndToEnd(t *testing.T) {
	t.Parallel()

	st := reflow.NewStore(searchState{}, searchReducer(fakeLookup, reflow.FailLoudly[searchState]("lookup")))
	defer st.Close()

	ctx := context.Background()
	handles := st.Dispatch(ctx, queryChanged{Query: "go"})
	require.Len(t, handles, 1)
	require.NoError(t, reflow.Drain(ctx, st))

	state := st.State()
	require.Equal(t, "go", state.Query)
	require.Equal(t, []string{"go-1", "go-2"}, state.Results)
}

func TestSearchFlow_LookupSeesFreshQuery(t *testing.T) {
	t.Parallel()

	// The subscription snapshot must include the query written by the setter
	// for the same trigger event.
	var seen []string
	lookup := func(query string) reflow.TaskResult[[]string] {
		seen = append(seen, query)
		return reflow.Success[[]string](nil)
	}

	st := reflow.NewStore(searchState{}, searchReducer(lookup, nil))
	defer st.Close()

	ctx := context.Background()
	st.Dispatch(ctx, queryChanged{Query: "first"})
	require.NoError(t, reflow.Drain(ctx, st))
	st.Dispatch(ctx, queryChanged{Query: "second"})
	require.NoError(t, reflow.Drain(ctx, st))

	require.Equal(t, []string{"first", "second"}, seen)
}

func TestSearchFlow_FailureDroppedSilently(t *testing.T) {
	t.Parallel()

	lookup := func(string) reflow.TaskResult[[]string] {
		return reflow.Failure[[]string](errors.New("backend down"))
	}

	st := reflow.NewStore(searchState{Results: []string{"stale"}}, searchReducer(lookup, nil))
	defer st.Close()

	ctx := context.Background()
	st.Dispatch(ctx, queryChanged{Query: "go"})
	require.NoError(t, reflow.Drain(ctx, st))

	// Previous results stay; the failure left state untouched.
	require.Equal(t, []string{"stale"}, st.State().Results)
}

func TestNewMemoryJournalStore_History(t *testing.T) {
	t.Parallel()

	st := reflow.NewMemoryJournalStore(searchState{}, searchReducer(fakeLookup, nil))
	defer st.Close()

	ctx := context.Background()
	st.Dispatch(ctx, queryChanged{Query: "go"})
	require.NoError(t, reflow.Drain(ctx, st))

	events, err := reflow.History(ctx, st)
	require.NoError(t, err)
	require.NotEmpty(t, events)

	counts := map[reflow.EventType]int{}
	for _, ev := range events {
		counts[ev.Type]++
	}
	// queryChanged plus the relayed resultsLoaded.
	require.Equal(t, 2, counts[reflow.EventDispatched])
	require.Equal(t, 1, counts[reflow.EventEffectCompleted])
}

func TestNewStore_NoJournalHistoryIsEmpty(t *testing.T) {
	t.Parallel()

	st := reflow.NewStore(searchState{}, searchReducer(fakeLookup, nil))
	defer st.Close()

	events, err := reflow.History(context.Background(), st)
	require.NoError(t, err)
	require.Empty(t, events)
}

func TestNewSQLiteStore_History(t *testing.T) {
	t.Parallel()

	db, err := sql.Open("sqlite", "file:"+filepath.Join(t.TempDir(), "reflow.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	st, err := reflow.NewSQLiteStore(db, searchState{}, searchReducer(fakeLookup, nil))
	require.NoError(t, err)
	defer st.Close()

	ctx := context.Background()
	st.Dispatch(ctx, queryChanged{Query: "go"})
	require.NoError(t, reflow.Drain(ctx, st))

	events, err := reflow.History(ctx, st)
	require.NoError(t, err)
	require.NotEmpty(t, events)
	require.Equal(t, reflow.EventDispatched, events[0].Type)
	require.Contains(t, events[0].Detail, "queryChanged")
}

func TestCombineReducers_SharedEventStream(t *testing.T) {
	t.Parallel()

	type auditState struct {
		searchState
		Dispatched int
	}

	audit := reflow.ReducerFunc[auditState, searchEvent](func(s *auditState, _ searchEvent) []reflow.Effect[searchEvent] {
		s.Dispatched++
		return nil
	})
	setter := reflow.SetField(
		reflow.EmptyReducer[auditState, searchEvent](),
		queryPath(),
		func(s *auditState, q string) { s.Query = q },
	)

	st := reflow.NewStore(auditState{}, reflow.CombineReducers(audit, setter))
	defer st.Close()

	st.Dispatch(context.Background(), queryChanged{Query: "go"})

	state := st.State()
	require.Equal(t, "go", state.Query)
	require.Equal(t, 1, state.Dispatched)
}

func TestFailure_PreservesError(t *testing.T) {
	t.Parallel()

	errBoom := fmt.Errorf("boom")
	_, err := reflow.Failure[int](errBoom).Unwrap()
	require.ErrorIs(t, err, errBoom)
}
