package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lugondev/goatswap-cli/internal/storage"
)

var newestFirst = bson.D{{Key: "created_at", Value: -1}}

// findOne decodes the single match of filter, or returns nil, nil.
func findOne[T any](ctx context.Context, collection *mongo.Collection, filter bson.M) (*T, error) {
	var item T
	err := collection.FindOne(ctx, filter).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func findMany[T any](ctx context.Context, collection *mongo.Collection, filter bson.M, opts *options.FindOptions) ([]*T, error) {
	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []*T
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

type mongoSnapshotRepository struct {
	collection *mongo.Collection
}

func (r *mongoSnapshotRepository) Save(ctx context.Context, snapshot *storage.OrderBookSnapshotModel) error {
	_, err := r.collection.InsertOne(ctx, snapshot)
	return err
}

func (r *mongoSnapshotRepository) FindByID(ctx context.Context, id string) (*storage.OrderBookSnapshotModel, error) {
	return findOne[storage.OrderBookSnapshotModel](ctx, r.collection, bson.M{"_id": id})
}

func (r *mongoSnapshotRepository) FindByCollection(ctx context.Context, collection string, limit int, offset int) ([]*storage.OrderBookSnapshotModel, error) {
	opts := options.Find().SetLimit(int64(limit)).SetSkip(int64(offset)).SetSort(newestFirst)
	return findMany[storage.OrderBookSnapshotModel](ctx, r.collection, bson.M{"collection": collection}, opts)
}

func (r *mongoSnapshotRepository) FindRecent(ctx context.Context, limit int) ([]*storage.OrderBookSnapshotModel, error) {
	opts := options.Find().SetLimit(int64(limit)).SetSort(newestFirst)
	return findMany[storage.OrderBookSnapshotModel](ctx, r.collection, bson.M{}, opts)
}

type mongoActivityRepository struct {
	collection *mongo.Collection
}

func (r *mongoActivityRepository) Save(ctx context.Context, activity *storage.ActivityModel) error {
	_, err := r.collection.InsertOne(ctx, activity)
	return err
}

func (r *mongoActivityRepository) FindBySignature(ctx context.Context, signature string) (*storage.ActivityModel, error) {
	return findOne[storage.ActivityModel](ctx, r.collection, bson.M{"signature": signature})
}

func (r *mongoActivityRepository) FindByWallet(ctx context.Context, wallet string, limit int, offset int) ([]*storage.ActivityModel, error) {
	opts := options.Find().SetLimit(int64(limit)).SetSkip(int64(offset)).SetSort(newestFirst)
	return findMany[storage.ActivityModel](ctx, r.collection, bson.M{"wallet": wallet}, opts)
}

func (r *mongoActivityRepository) FindRecent(ctx context.Context, limit int) ([]*storage.ActivityModel, error) {
	opts := options.Find().SetLimit(int64(limit)).SetSort(newestFirst)
	return findMany[storage.ActivityModel](ctx, r.collection, bson.M{}, opts)
}
