package categoryRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventify/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CategoryRepository defines methods for category configuration access.
type CategoryRepository interface {
	GetAll(ctx context.Context) ([]models.CategoryConfig, error)
	GetByID(ctx context.Context, id string) (*models.CategoryConfig, error)
	// Upsert inserts or replaces categories by id, keeping their order.
	Upsert(ctx context.Context, categories []models.CategoryConfig) error
}

type categoryDoc struct {
	models.CategoryConfig `bson:",inline"`
	Position              int `bson:"position"`
}

// MongoCategoryRepo implements CategoryRepository using MongoDB.
type MongoCategoryRepo struct {
	coll *mongo.Collection
}

func NewMongoCategoryRepo(db *mongo.Database) CategoryRepository {
	return &MongoCategoryRepo{coll: db.Collection("categories")}
}

func (r *MongoCategoryRepo) GetAll(ctx context.Context) ([]models.CategoryConfig, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "position", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve categories: %w", err)
	}
	defer cursor.Close(ctx)

	categories := []models.CategoryConfig{}
	for cursor.Next(ctx) {
		var doc categoryDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode category: %w", err)
		}
		categories = append(categories, doc.CategoryConfig)
	}
	return categories, cursor.Err()
}

func (r *MongoCategoryRepo) GetByID(ctx context.Context, id string) (*models.CategoryConfig, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var doc categoryDoc
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("category %s: %w", id, models.ErrCategoryNotFound)
		}
		return nil, fmt.Errorf("failed to fetch category %s: %w", id, err)
	}
	return &doc.CategoryConfig, nil
}

func (r *MongoCategoryRepo) Upsert(ctx context.Context, categories []models.CategoryConfig) error {
	if len(categories) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	writes := make([]mongo.WriteModel, 0, len(categories))
	for i, cat := range categories {
		writes = append(writes, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"id": cat.ID}).
			SetReplacement(categoryDoc{CategoryConfig: cat, Position: i}).
			SetUpsert(true))
	}
	if _, err := r.coll.BulkWrite(ctx, writes); err != nil {
		return fmt.Errorf("failed to upsert categories: %w", err)
	}
	return nil
}
