package docstore

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type counterDocument struct {
	ID            string `bson:"_id"`
	SequenceValue int64  `bson:"sequence_value"`
}

// NextSequence atomically increments the named counter and returns the new
// value. A missing counter document is the zero state: the first call creates
// it with sequence_value 1. Atomicity comes from the server-side
// find-and-modify, never from a read-then-write pair.
func (s *Store) NextSequence(ctx context.Context, name string) (int64, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc counterDocument
	err := s.collection(CollectionCounters).FindOneAndUpdate(
		ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"sequence_value": 1}},
		opts,
	).Decode(&doc)
	if err != nil {
		return 0, fmt.Errorf("increment counter %q: %w", name, err)
	}
	return doc.SequenceValue, nil
}

// SequenceValue reads the current value of a counter without consuming it.
// Absent counters report zero.
func (s *Store) SequenceValue(ctx context.Context, name string) (int64, error) {
	var doc counterDocument
	err := s.collection(CollectionCounters).FindOne(ctx, bson.M{"_id": name}).Decode(&doc)
	if err != nil {
		if isNoDocuments(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("read counter %q: %w", name, err)
	}
	return doc.SequenceValue, nil
}
