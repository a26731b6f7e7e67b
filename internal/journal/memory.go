package journal

import (
	"context"
	"sync"

	"github.com/petrijr/reflow/pkg/api"
)

// Memory is a simple, goroutine-safe Journal backed by a slice per store.
type Memory struct {
	mu      sync.RWMutex
	records map[string][]api.StoreEvent
}

// NewMemory creates a new in-memory journal.
func NewMemory() *Memory {
	return &Memory{
		records: make(map[string][]api.StoreEvent),
	}
}

// Ensure Memory implements the interface.
var _ Journal = (*Memory)(nil)

func (m *Memory) Append(ctx context.Context, ev api.StoreEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.records[ev.StoreID] = append(m.records[ev.StoreID], ev)
	return nil
}

func (m *Memory) List(ctx context.Context, storeID string) ([]api.StoreEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	recs := m.records[storeID]
	out := make([]api.StoreEvent, len(recs))
	copy(out, recs)
	return out, nil
}
