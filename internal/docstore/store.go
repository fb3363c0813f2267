package docstore

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"slipflow/internal/config"
)

// Collection names, as mirrored from the document database layout.
const (
	CollectionSlips           = "slips"
	CollectionCounters        = "counters"
	CollectionParts           = "parts"
	CollectionSettings        = "settings"
	CollectionUsers           = "users"
	CollectionDropdownOptions = "dropdown_options"
)

// Store manages workflow persistence backed by MongoDB.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Open connects to the document store and verifies the connection.
func Open(ctx context.Context, cfg *config.Config) (*Store, error) {
	timeout := time.Duration(cfg.DocStore.ConnectTimeout) * time.Second
	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.DocStore.URI))
	if err != nil {
		return nil, fmt.Errorf("connect document store: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping document store: %w", err)
	}

	return &Store{
		client: client,
		db:     client.Database(cfg.DocStore.Database),
	}, nil
}

// Close releases the underlying client connection.
func (s *Store) Close(ctx context.Context) error {
	if s == nil || s.client == nil {
		return nil
	}
	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("disconnect document store: %w", err)
	}
	return nil
}

func (s *Store) collection(name string) *mongo.Collection {
	return s.db.Collection(name)
}
