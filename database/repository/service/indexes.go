package serviceRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ensureIndexes creates indexes for fields that are frequently used in queries.
func (r *MongoServiceRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "vendorId", Value: 1}}},
		{Keys: bson.D{{Key: "category", Value: 1}, {Key: "subCategory", Value: 1}}},
		{Keys: bson.D{{Key: "variants.id", Value: 1}}},
		{Keys: bson.D{{Key: "tags", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}
