// Package store contains the in-process store implementation driving a
// reducer: a serialized dispatch loop, concurrent effect execution with
// per-effect cancellation, and optional journaling of dispatch history.
// External callers construct stores through the reflow package.
package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/petrijr/reflow/internal/journal"
	"github.com/petrijr/reflow/pkg/api"
)

// Config describes how to construct a store.
// Only used inside this module; external callers use the reflow helpers.
type Config struct {
	Observer api.Observer
	Journal  journal.Journal
}

// storeImpl is a simple, in-process store implementation.
type storeImpl[S, E any] struct {
	id      string
	reducer api.Reducer[S, E]
	obs     api.Observer
	jrnl    journal.Journal

	mu    sync.Mutex // serializes reduce calls; state has one writer
	state S

	lifecycle sync.Mutex // guards closed and the running-effect set
	closed    bool
	running   map[string]*effectHandle
	wg        sync.WaitGroup

	baseCtx   context.Context
	cancelAll context.CancelFunc
}

// New creates a store owning initial state driven by reducer.
func New[S, E any](initial S, reducer api.Reducer[S, E], cfg Config) api.Store[S, E] {
	if reducer == nil {
		panic("reflow: store requires a non-nil reducer")
	}
	obs := cfg.Observer
	if obs == nil {
		obs = api.NoopObserver{}
	}
	jrnl := cfg.Journal
	if jrnl == nil {
		jrnl = journal.Noop{}
	}

	baseCtx, cancel := context.WithCancel(context.Background())
	return &storeImpl[S, E]{
		id:        uuid.NewString(),
		reducer:   reducer,
		obs:       obs,
		jrnl:      jrnl,
		state:     initial,
		running:   make(map[string]*effectHandle),
		baseCtx:   baseCtx,
		cancelAll: cancel,
	}
}

func (s *storeImpl[S, E]) Dispatch(ctx context.Context, event E) []api.EffectHandle {
	return s.dispatch(ctx, event, nil)
}

func (s *storeImpl[S, E]) DispatchAnimated(ctx context.Context, event E, anim api.Animation) []api.EffectHandle {
	return s.dispatch(ctx, event, anim)
}

func (s *storeImpl[S, E]) dispatch(ctx context.Context, event E, anim api.Animation) []api.EffectHandle {
	if ctx == nil {
		ctx = context.Background()
	}
	// Dispatch after cancellation is a no-op: an effect whose ctx ended must
	// not feed further events into the store.
	if ctx.Err() != nil {
		return nil
	}
	s.lifecycle.Lock()
	if s.closed {
		s.lifecycle.Unlock()
		return nil
	}
	s.lifecycle.Unlock()

	s.mu.Lock()
	effects := s.reducer.Reduce(&s.state, event)
	s.mu.Unlock()

	s.obs.OnDispatch(ctx, s.id, event, anim)
	s.recordDispatch(event)

	handles := make([]api.EffectHandle, 0, len(effects))
	for _, eff := range effects {
		if eff == nil {
			continue
		}
		if h := s.spawn(eff); h != nil {
			handles = append(handles, h)
		}
	}
	return handles
}

func (s *storeImpl[S, E]) spawn(eff api.Effect[E]) api.EffectHandle {
	s.lifecycle.Lock()
	if s.closed {
		s.lifecycle.Unlock()
		return nil
	}
	effCtx, cancel := context.WithCancel(s.baseCtx)
	h := &effectHandle{
		id:     uuid.NewString(),
		cancel: cancel,
		done:   make(chan struct{}),
	}
	s.running[h.id] = h
	s.wg.Add(1)
	s.lifecycle.Unlock()

	go s.runEffect(effCtx, h, eff)
	return h
}

func (s *storeImpl[S, E]) runEffect(ctx context.Context, h *effectHandle, eff api.Effect[E]) {
	defer s.wg.Done()
	defer h.cancel()

	start := time.Now()
	s.obs.OnEffectStart(ctx, s.id, h.id)
	s.record(api.StoreEvent{Type: api.EventEffectStarted, EffectID: h.id})

	send := api.NewSend(func(event E, anim api.Animation) {
		if ctx.Err() != nil {
			return
		}
		s.dispatch(ctx, event, anim)
	})

	err := eff(ctx, send)
	h.finish(err)

	s.lifecycle.Lock()
	delete(s.running, h.id)
	s.lifecycle.Unlock()

	duration := time.Since(start)
	s.obs.OnEffectDone(ctx, s.id, h.id, err, duration)

	switch {
	case err == nil:
		s.record(api.StoreEvent{Type: api.EventEffectCompleted, EffectID: h.id})
	case api.IsCancellation(err):
		s.record(api.StoreEvent{Type: api.EventEffectCancelled, EffectID: h.id})
	default:
		s.record(api.StoreEvent{Type: api.EventEffectFailed, EffectID: h.id, Detail: err.Error()})
	}
}

func (s *storeImpl[S, E]) State() S {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *storeImpl[S, E]) History(ctx context.Context) ([]api.StoreEvent, error) {
	return s.jrnl.List(ctx, s.id)
}

func (s *storeImpl[S, E]) Drain(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	for {
		s.lifecycle.Lock()
		inFlight := make([]*effectHandle, 0, len(s.running))
		for _, h := range s.running {
			inFlight = append(inFlight, h)
		}
		s.lifecycle.Unlock()

		if len(inFlight) == 0 {
			return nil
		}
		for _, h := range inFlight {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-h.done:
			}
		}
	}
}

func (s *storeImpl[S, E]) Close() error {
	s.lifecycle.Lock()
	if s.closed {
		s.lifecycle.Unlock()
		return nil
	}
	s.closed = true
	s.lifecycle.Unlock()

	s.cancelAll()
	s.wg.Wait()
	s.record(api.StoreEvent{Type: api.EventStoreClosed})
	return nil
}

// recordDispatch journals a dispatched event with its msgpack-encoded
// payload. Events that msgpack cannot encode are journaled without one;
// journaling is best-effort and never fails a dispatch.
func (s *storeImpl[S, E]) recordDispatch(event E) {
	detail := fmt.Sprintf("%T", event)
	payload, err := journal.EncodeValue(event)
	if err != nil {
		payload = nil
		detail += " (payload not recorded)"
	}
	s.record(api.StoreEvent{Type: api.EventDispatched, Detail: detail, Payload: payload})
}

func (s *storeImpl[S, E]) record(ev api.StoreEvent) {
	ev.StoreID = s.id
	if ev.At.IsZero() {
		ev.At = time.Now()
	}
	// Lifecycle records use a background context on purpose: they must be
	// written even while the store itself is shutting down.
	_ = s.jrnl.Append(context.Background(), ev)
}

type effectHandle struct {
	id     string
	cancel context.CancelFunc
	done   chan struct{}
	err    error // written once in finish, read after done is closed
}

var _ api.EffectHandle = (*effectHandle)(nil)

func (h *effectHandle) ID() string { return h.id }

func (h *effectHandle) Cancel() { h.cancel() }

func (h *effectHandle) Done() <-chan struct{} { return h.done }

func (h *effectHandle) Err() error {
	select {
	case <-h.done:
		return h.err
	default:
		return nil
	}
}

func (h *effectHandle) finish(err error) {
	h.err = err
	close(h.done)
}
