// Package mongo provides a MongoDB-backed dispatch journal and store
// constructors for reflow.
package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/petrijr/reflow/internal/journal"
	internalstore "github.com/petrijr/reflow/internal/store"
	"github.com/petrijr/reflow/pkg/api"
)

// Journal stores dispatch history in a MongoDB collection, one document per
// record. List sorts by _id, which preserves append order for documents
// inserted by a single store.
type Journal struct {
	coll *mongo.Collection
}

var _ journal.Journal = (*Journal)(nil)

type record struct {
	StoreID  string `bson:"store_id"`
	At       int64  `bson:"at"`
	Type     string `bson:"type"`
	EffectID string `bson:"effect_id,omitempty"`
	Detail   string `bson:"detail,omitempty"`
	Payload  []byte `bson:"payload,omitempty"`
}

// NewJournal creates a MongoDB-backed journal writing to the
// "store_events" collection of the given database.
func NewJournal(client *mongo.Client, database string) *Journal {
	if database == "" {
		database = "reflow"
	}
	return &Journal{coll: client.Database(database).Collection("store_events")}
}

func (j *Journal) Append(ctx context.Context, ev api.StoreEvent) error {
	at := ev.At
	if at.IsZero() {
		at = time.Now()
	}
	_, err := j.coll.InsertOne(ctx, record{
		StoreID:  ev.StoreID,
		At:       at.UnixNano(),
		Type:     string(ev.Type),
		EffectID: ev.EffectID,
		Detail:   ev.Detail,
		Payload:  ev.Payload,
	})
	return err
}

func (j *Journal) List(ctx context.Context, storeID string) ([]api.StoreEvent, error) {
	cur, err := j.coll.Find(ctx,
		bson.M{"store_id": storeID},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []api.StoreEvent
	for cur.Next(ctx) {
		var rec record
		if err := cur.Decode(&rec); err != nil {
			return nil, err
		}
		out = append(out, api.StoreEvent{
			StoreID:  rec.StoreID,
			At:       time.Unix(0, rec.At),
			Type:     api.EventType(rec.Type),
			EffectID: rec.EffectID,
			Detail:   rec.Detail,
			Payload:  rec.Payload,
		})
	}
	return out, cur.Err()
}

// NewMongoStore returns a Store that persists its dispatch history in MongoDB.
func NewMongoStore[S, E any](client *mongo.Client, initial S, reducer api.Reducer[S, E]) api.Store[S, E] {
	return NewMongoStoreWithObserver(client, initial, reducer, nil)
}

// NewMongoStoreWithObserver returns a Mongo-journaled Store with the given Observer.
func NewMongoStoreWithObserver[S, E any](client *mongo.Client, initial S, reducer api.Reducer[S, E], obs api.Observer) api.Store[S, E] {
	return internalstore.New(initial, reducer, internalstore.Config{
		Observer: obs,
		Journal:  NewJournal(client, "reflow"),
	})
}
