package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Sequence hands out monotonically increasing integer ids per collection,
// backed by one counter document each in the counters collection.
type Sequence struct {
	counters *mongo.Collection
}

func NewSequence(db *mongo.Database) *Sequence {
	return &Sequence{counters: db.Collection(CollectionCounters)}
}

func (s *Sequence) Next(ctx context.Context, name string) (int64, error) {
	var counter struct {
		Value int64 `bson:"value"`
	}

	err := s.counters.FindOneAndUpdate(
		ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"value": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("failed to allocate id for %s: %w", name, err)
	}

	return counter.Value, nil
}
