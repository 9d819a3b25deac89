package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/lugondev/goatswap-cli/internal/config"
	"github.com/lugondev/goatswap-cli/internal/storage"
)

const (
	snapshotsCollection = "order_book_snapshots"
	activityCollection  = "activity"
)

type MongoRepository struct {
	client       *mongo.Client
	database     *mongo.Database
	snapshots    *mongo.Collection
	activity     *mongo.Collection
	snapshotRepo storage.SnapshotRepository
	activityRepo storage.ActivityRepository
}

func NewMongoRepository(ctx context.Context, cfg *config.MongoDBConfig) (*MongoRepository, error) {
	clientOpts := options.Client().
		ApplyURI(cfg.URI).
		SetMaxPoolSize(cfg.MaxPoolSize).
		SetMinPoolSize(cfg.MinPoolSize).
		SetRetryWrites(true).
		SetRetryReads(true)
	if cfg.ConnectTimeout > 0 {
		clientOpts.SetConnectTimeout(time.Duration(cfg.ConnectTimeout) * time.Second)
	}

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	database := client.Database(cfg.Database)

	repo := &MongoRepository{
		client:    client,
		database:  database,
		snapshots: database.Collection(snapshotsCollection),
		activity:  database.Collection(activityCollection),
	}

	repo.snapshotRepo = &mongoSnapshotRepository{collection: repo.snapshots}
	repo.activityRepo = &mongoActivityRepository{collection: repo.activity}

	if err := repo.createIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to create indexes: %w", err)
	}

	return repo, nil
}

func indexModels() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		snapshotsCollection: {
			{Keys: bson.D{{Key: "collection", Value: 1}, {Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "created_at", Value: -1}}},
		},
		activityCollection: {
			{Keys: bson.D{{Key: "signature", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "wallet", Value: 1}, {Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "created_at", Value: -1}}},
		},
	}
}

func (r *MongoRepository) createIndexes(ctx context.Context) error {
	for name, models := range indexModels() {
		if _, err := r.database.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return err
		}
	}
	return nil
}

func (r *MongoRepository) Snapshots() storage.SnapshotRepository {
	return r.snapshotRepo
}

func (r *MongoRepository) Activity() storage.ActivityRepository {
	return r.activityRepo
}

func (r *MongoRepository) Close() error {
	if r.client != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return r.client.Disconnect(ctx)
	}
	return nil
}

func (r *MongoRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, readpref.Primary())
}
