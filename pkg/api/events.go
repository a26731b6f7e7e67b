package api

import "time"

// EventType identifies a store history event.
type EventType string

const (
	EventDispatched EventType = "event.dispatched"

	EventEffectStarted   EventType = "effect.started"
	EventEffectCompleted EventType = "effect.completed"
	EventEffectFailed    EventType = "effect.failed"
	EventEffectCancelled EventType = "effect.cancelled"

	EventStoreClosed EventType = "store.closed"
)

// StoreEvent is a minimal append-only history record for audit/debugging.
// It is intentionally small and stable; richer history can be layered later.
type StoreEvent struct {
	StoreID string
	At      time.Time
	Type    EventType

	// EffectID is set for effect lifecycle records.
	EffectID string

	// Small, human-oriented details (e.g. event type name, error string).
	// Keep this low-volume: do NOT dump large payloads here.
	Detail string

	// Payload is the msgpack-encoded dispatched event, recorded best-effort
	// on EventDispatched records. Empty when the event is not encodable.
	Payload []byte
}
