package docstore

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Part is reference data mirrored from the relational system of record, keyed
// by stock code. The sync job owns these documents; workflow components only
// read them.
type Part struct {
	StockCode       string `bson:"stock_code"`
	Description     string `bson:"description"`
	LongDescription string `bson:"long_description"`
}

// UpsertPart replaces the mirrored fields for one part, inserting the document
// when it does not exist yet. Last writer wins; re-running an unchanged upsert
// is a no-op.
func (s *Store) UpsertPart(ctx context.Context, part Part) error {
	_, err := s.collection(CollectionParts).UpdateOne(
		ctx,
		bson.M{"stock_code": part.StockCode},
		bson.M{"$set": part},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("upsert part %s: %w", part.StockCode, err)
	}
	return nil
}

// PartByStockCode fetches a mirrored part, returning nil when absent.
func (s *Store) PartByStockCode(ctx context.Context, stockCode string) (*Part, error) {
	var part Part
	err := s.collection(CollectionParts).FindOne(ctx, bson.M{"stock_code": stockCode}).Decode(&part)
	if err != nil {
		if isNoDocuments(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find part %s: %w", stockCode, err)
	}
	return &part, nil
}
