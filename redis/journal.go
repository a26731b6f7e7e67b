// Package redis provides a Redis-backed dispatch journal and store
// constructors for reflow.
package redis

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/petrijr/reflow/internal/journal"
	internalstore "github.com/petrijr/reflow/internal/store"
	"github.com/petrijr/reflow/pkg/api"
)

// Journal stores dispatch history in Redis. It uses a simple key structure:
//
//	<prefix>hist:<storeID> => LIST of msgpack-encoded records
//
// Records are appended with RPUSH, so LRANGE returns them in append order.
type Journal struct {
	client *redis.Client
	prefix string
}

var _ journal.Journal = (*Journal)(nil)

// NewJournal creates a Redis-backed journal.
// prefix is optional but recommended (e.g. "reflow:").
func NewJournal(client *redis.Client, prefix string) *Journal {
	if prefix == "" {
		prefix = "reflow:"
	}
	return &Journal{client: client, prefix: prefix}
}

func (j *Journal) key(storeID string) string {
	return j.prefix + "hist:" + storeID
}

func (j *Journal) Append(ctx context.Context, ev api.StoreEvent) error {
	data, err := journal.EncodeValue(ev)
	if err != nil {
		return err
	}
	return j.client.RPush(ctx, j.key(ev.StoreID), data).Err()
}

func (j *Journal) List(ctx context.Context, storeID string) ([]api.StoreEvent, error) {
	items, err := j.client.LRange(ctx, j.key(storeID), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	out := make([]api.StoreEvent, 0, len(items))
	for _, item := range items {
		ev, err := journal.DecodeValue[api.StoreEvent]([]byte(item))
		if err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, nil
}

// NewRedisStore returns a Store that persists its dispatch history in Redis.
func NewRedisStore[S, E any](client *redis.Client, initial S, reducer api.Reducer[S, E]) api.Store[S, E] {
	return NewRedisStoreWithObserver(client, initial, reducer, nil)
}

// NewRedisStoreWithObserver returns a Redis-journaled Store with the given Observer.
func NewRedisStoreWithObserver[S, E any](client *redis.Client, initial S, reducer api.Reducer[S, E], obs api.Observer) api.Store[S, E] {
	return internalstore.New(initial, reducer, internalstore.Config{
		Observer: obs,
		Journal:  NewJournal(client, "reflow:"),
	})
}
