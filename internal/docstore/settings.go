package docstore

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// emailConfigID keys the single global email settings document.
const emailConfigID = "email_config"

type emailSettings struct {
	ID          string `bson:"_id"`
	TestingMode bool   `bson:"testing_mode"`
}

// EmailTestingEnabled reads the global email test-mode toggle. An absent
// settings document defaults to ON, so a fresh deployment never emails real
// recipients by accident.
func (s *Store) EmailTestingEnabled(ctx context.Context) (bool, error) {
	var doc emailSettings
	err := s.collection(CollectionSettings).FindOne(ctx, bson.M{"_id": emailConfigID}).Decode(&doc)
	if err != nil {
		if isNoDocuments(err) {
			return true, nil
		}
		return true, fmt.Errorf("read email settings: %w", err)
	}
	return doc.TestingMode, nil
}

// SetEmailTesting upserts the global email test-mode toggle.
func (s *Store) SetEmailTesting(ctx context.Context, enabled bool) error {
	_, err := s.collection(CollectionSettings).UpdateOne(
		ctx,
		bson.M{"_id": emailConfigID},
		bson.M{"$set": bson.M{"testing_mode": enabled}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("update email settings: %w", err)
	}
	return nil
}
