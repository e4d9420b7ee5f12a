// internal/documents/connection.go
package documents

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/herambgvd/gvd-frs/internal/config"
)

const (
	GroupsCollection = "groups"
	POICollection    = "poi_persons"
	MediaCollection  = "media_uploads"
)

// Store wraps the document database used by the FRS support API.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

func Initialize(cfg config.MongoConfig) (*Store, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Timeout)*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to document store: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping document store: %w", err)
	}

	store := &Store{
		client: client,
		db:     client.Database(cfg.Database),
	}

	if err := store.ensureIndexes(ctx); err != nil {
		return nil, fmt.Errorf("failed to create document indexes: %w", err)
	}

	logrus.Info("Document store connection established")
	return store, nil
}

func (s *Store) Close(ctx context.Context) {
	if err := s.client.Disconnect(ctx); err != nil {
		logrus.WithError(err).Error("Error closing document store connection")
	} else {
		logrus.Info("Document store connection closed")
	}
}

func (s *Store) Groups() *mongo.Collection {
	return s.db.Collection(GroupsCollection)
}

func (s *Store) POIs() *mongo.Collection {
	return s.db.Collection(POICollection)
}

func (s *Store) Media() *mongo.Collection {
	return s.db.Collection(MediaCollection)
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	groupIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "organization_id", Value: 1}, {Key: "group_name", Value: 1}}},
		{Keys: bson.D{{Key: "organization_id", Value: 1}, {Key: "is_active", Value: 1}}},
	}
	if _, err := s.Groups().Indexes().CreateMany(ctx, groupIndexes); err != nil {
		return err
	}

	poiIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "person_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "organization_id", Value: 1}, {Key: "is_active", Value: 1}}},
		{Keys: bson.D{{Key: "tagged_watchlist_id", Value: 1}}},
	}
	if _, err := s.POIs().Indexes().CreateMany(ctx, poiIndexes); err != nil {
		return err
	}

	mediaIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "file_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "organization_id", Value: 1}, {Key: "uploaded_at", Value: -1}}},
	}
	if _, err := s.Media().Indexes().CreateMany(ctx, mediaIndexes); err != nil {
		return err
	}

	return nil
}
