package api

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"
)

// Observer receives callbacks from a store for logging and metrics.
//
// Implementations should be fast and non-blocking; heavy work should be done
// asynchronously so as not to delay event dispatch.
type Observer interface {
	// OnDispatch is called once per dispatched event, after the reduce call
	// for that event returns. anim is the animation hint the event was
	// dispatched with, passed through unmodified (nil when absent).
	OnDispatch(ctx context.Context, storeID string, event any, anim Animation)

	// OnEffectStart is called when a store begins executing an effect.
	OnEffectStart(ctx context.Context, storeID, effectID string)

	// OnEffectDone is called when an effect finishes, for completions,
	// failures (err != nil) and cancellations (err is context.Canceled).
	OnEffectDone(ctx context.Context, storeID, effectID string, err error, duration time.Duration)
}

// NoopObserver is an Observer that does nothing.
// It is used as the default when no observer is configured.
type NoopObserver struct{}

func (NoopObserver) OnDispatch(ctx context.Context, storeID string, event any, anim Animation) {}
func (NoopObserver) OnEffectStart(ctx context.Context, storeID, effectID string)               {}
func (NoopObserver) OnEffectDone(ctx context.Context, storeID, effectID string, err error, d time.Duration) {
}

// CompositeObserver fans out callbacks to multiple observers.
type CompositeObserver struct {
	observers []Observer
}

// NewCompositeObserver creates an Observer that forwards callbacks to each
// non-nil observer in obs.
func NewCompositeObserver(obs ...Observer) Observer {
	filtered := make([]Observer, 0, len(obs))
	for _, o := range obs {
		if o != nil {
			filtered = append(filtered, o)
		}
	}
	if len(filtered) == 0 {
		return NoopObserver{}
	}
	if len(filtered) == 1 {
		return filtered[0]
	}
	return &CompositeObserver{observers: filtered}
}

func (c *CompositeObserver) OnDispatch(ctx context.Context, storeID string, event any, anim Animation) {
	for _, o := range c.observers {
		o.OnDispatch(ctx, storeID, event, anim)
	}
}

func (c *CompositeObserver) OnEffectStart(ctx context.Context, storeID, effectID string) {
	for _, o := range c.observers {
		o.OnEffectStart(ctx, storeID, effectID)
	}
}

func (c *CompositeObserver) OnEffectDone(ctx context.Context, storeID, effectID string, err error, d time.Duration) {
	for _, o := range c.observers {
		o.OnEffectDone(ctx, storeID, effectID, err, d)
	}
}

// LoggingObserver writes structured logs using log/slog.
type LoggingObserver struct {
	Logger *slog.Logger
}

// NewLoggingObserver creates an Observer that logs dispatch and effect
// lifecycle using the provided slog.Logger. If logger is nil, slog.Default()
// is used.
func NewLoggingObserver(logger *slog.Logger) Observer {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingObserver{Logger: logger}
}

func (o *LoggingObserver) OnDispatch(ctx context.Context, storeID string, event any, anim Animation) {
	o.Logger.DebugContext(ctx, "event_dispatched",
		slog.String("store_id", storeID),
		slog.String("event", fmt.Sprintf("%T", event)),
		slog.Bool("animated", anim != nil),
	)
}

func (o *LoggingObserver) OnEffectStart(ctx context.Context, storeID, effectID string) {
	o.Logger.DebugContext(ctx, "effect_start",
		slog.String("store_id", storeID),
		slog.String("effect_id", effectID),
	)
}

func (o *LoggingObserver) OnEffectDone(ctx context.Context, storeID, effectID string, err error, d time.Duration) {
	level := slog.LevelDebug
	if err != nil && !isCancellation(err) {
		level = slog.LevelError
	}
	o.Logger.Log(ctx, level, "effect_done",
		slog.String("store_id", storeID),
		slog.String("effect_id", effectID),
		slog.Duration("duration", d),
		slog.Any("error", err),
	)
}

// BasicMetrics collects simple counters and aggregate effect durations.
// It implements Observer, and can be combined with LoggingObserver via
// NewCompositeObserver.
type BasicMetrics struct {
	NoopObserver

	eventsDispatched    atomic.Int64
	effectsStarted      atomic.Int64
	effectsCompleted    atomic.Int64
	effectsFailed       atomic.Int64
	effectsCancelled    atomic.Int64
	totalEffectDuration atomic.Int64 // nanoseconds
}

// BasicMetricsSnapshot is an immutable snapshot of BasicMetrics.
type BasicMetricsSnapshot struct {
	EventsDispatched int64

	EffectsStarted   int64
	EffectsCompleted int64
	EffectsFailed    int64
	EffectsCancelled int64
	EffectsInFlight  int64

	AvgEffectDuration time.Duration
}

func (m *BasicMetrics) OnDispatch(ctx context.Context, storeID string, event any, anim Animation) {
	m.eventsDispatched.Add(1)
}

func (m *BasicMetrics) OnEffectStart(ctx context.Context, storeID, effectID string) {
	m.effectsStarted.Add(1)
}

func (m *BasicMetrics) OnEffectDone(ctx context.Context, storeID, effectID string, err error, d time.Duration) {
	switch {
	case err == nil:
		// Only count clean completions for average duration.
		m.effectsCompleted.Add(1)
		m.totalEffectDuration.Add(d.Nanoseconds())
	case isCancellation(err):
		m.effectsCancelled.Add(1)
	default:
		m.effectsFailed.Add(1)
	}
}

// Snapshot returns a snapshot of the current metrics.
func (m *BasicMetrics) Snapshot() BasicMetricsSnapshot {
	started := m.effectsStarted.Load()
	completed := m.effectsCompleted.Load()
	failed := m.effectsFailed.Load()
	cancelled := m.effectsCancelled.Load()
	totalNs := m.totalEffectDuration.Load()

	var avg time.Duration
	if completed > 0 {
		avg = time.Duration(totalNs / completed)
	}

	return BasicMetricsSnapshot{
		EventsDispatched:  m.eventsDispatched.Load(),
		EffectsStarted:    started,
		EffectsCompleted:  completed,
		EffectsFailed:     failed,
		EffectsCancelled:  cancelled,
		EffectsInFlight:   started - completed - failed - cancelled,
		AvgEffectDuration: avg,
	}
}
