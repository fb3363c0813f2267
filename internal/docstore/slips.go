package docstore

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"slipflow/internal/slip"
)

// CreateSlip inserts a new slip document.
func (s *Store) CreateSlip(ctx context.Context, doc *slip.Slip) error {
	if doc == nil {
		return errors.New("slip is nil")
	}
	if _, err := s.collection(CollectionSlips).InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert slip %s: %w", doc.SlipID, err)
	}
	return nil
}

// SlipBySlipID fetches a slip by its human-readable identifier. A missing slip
// returns nil without error.
func (s *Store) SlipBySlipID(ctx context.Context, slipID string) (*slip.Slip, error) {
	var doc slip.Slip
	err := s.collection(CollectionSlips).FindOne(ctx, bson.M{"slip_id": slipID}).Decode(&doc)
	if err != nil {
		if isNoDocuments(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find slip %s: %w", slipID, err)
	}
	return &doc, nil
}

// SlipsByType returns slips of one type, newest first, optionally filtered to a
// single status.
func (s *Store) SlipsByType(ctx context.Context, slipType slip.Type, status slip.Status) ([]*slip.Slip, error) {
	filter := bson.M{"slip_type": slipType}
	if status != "" {
		filter["status"] = status
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := s.collection(CollectionSlips).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("query slips by type %s: %w", slipType, err)
	}
	defer cursor.Close(ctx)

	var slips []*slip.Slip
	if err := cursor.All(ctx, &slips); err != nil {
		return nil, fmt.Errorf("decode slips: %w", err)
	}
	return slips, nil
}

// FindDependency returns the oldest slip of the given type and status for an
// order number, or nil when none exists. The dispatch gate uses this to locate
// a Complete QC slip.
func (s *Store) FindDependency(ctx context.Context, orderNumber string, depType slip.Type, depStatus slip.Status) (*slip.Slip, error) {
	filter := bson.M{
		"slip_type":    depType,
		"order_number": orderNumber,
		"status":       depStatus,
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: 1}})

	var doc slip.Slip
	err := s.collection(CollectionSlips).FindOne(ctx, filter, opts).Decode(&doc)
	if err != nil {
		if isNoDocuments(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find %s dependency for order %s: %w", depType, orderNumber, err)
	}
	return &doc, nil
}

// UpdateStatus sets a slip's status. When review is non-nil the review stamp is
// recorded on the dispatch payload in the same write.
func (s *Store) UpdateStatus(ctx context.Context, slipID string, status slip.Status, review *slip.Review) error {
	set := bson.M{"status": status}
	if review != nil {
		set["dispatch.review"] = review
	}

	res, err := s.collection(CollectionSlips).UpdateOne(ctx, bson.M{"slip_id": slipID}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update slip %s status: %w", slipID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("update slip %s status: no such slip", slipID)
	}
	return nil
}

func isNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}
