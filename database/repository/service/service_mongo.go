package serviceRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventify/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoServiceRepo implements ServiceRepository using MongoDB.
type MongoServiceRepo struct {
	coll *mongo.Collection
}

// NewMongoServiceRepo creates a ServiceRepository on the "services" collection of db.
func NewMongoServiceRepo(db *mongo.Database) ServiceRepository {
	repo := &MongoServiceRepo{coll: db.Collection("services")}
	if err := repo.ensureIndexes(); err != nil {
		zap.L().Warn("failed to create service indexes", zap.Error(err))
	}
	return repo
}

func (r *MongoServiceRepo) GetByID(ctx context.Context, id string) (*models.Service, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var svc models.Service
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&svc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("service %s: %w", id, models.ErrServiceNotFound)
		}
		return nil, fmt.Errorf("failed to fetch service with id %s: %w", id, err)
	}
	return &svc, nil
}

func (r *MongoServiceRepo) GetByCategory(ctx context.Context, categoryID string) ([]models.Service, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"category": categoryID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find services for category %s: %w", categoryID, err)
	}
	defer cursor.Close(ctx)

	services := []models.Service{}
	if err := cursor.All(ctx, &services); err != nil {
		return nil, fmt.Errorf("failed to decode services: %w", err)
	}
	return services, nil
}

func (r *MongoServiceRepo) Create(ctx context.Context, svc *models.Service) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, svc); err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}
	return nil
}

func (r *MongoServiceRepo) Update(ctx context.Context, svc *models.Service) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.coll.ReplaceOne(ctx, bson.M{"id": svc.ID}, svc)
	if err != nil {
		return fmt.Errorf("failed to update service with id %s: %w", svc.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("service %s: %w", svc.ID, models.ErrServiceNotFound)
	}
	return nil
}

func (r *MongoServiceRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete service with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("service %s: %w", id, models.ErrServiceNotFound)
	}
	return nil
}
