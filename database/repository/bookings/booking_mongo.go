package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"eventify/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BookingRepository stores customer bookings.
type BookingRepository interface {
	Create(ctx context.Context, b *models.Booking) error
	GetByService(ctx context.Context, serviceID string) ([]models.Booking, error)
}

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

func NewMongoBookingRepo(db *mongo.Database) BookingRepository {
	return &MongoBookingRepo{coll: db.Collection("bookings")}
}

func (r *MongoBookingRepo) Create(ctx context.Context, b *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, b); err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

func (r *MongoBookingRepo) GetByService(ctx context.Context, serviceID string) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"service": serviceID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings for service %s: %w", serviceID, err)
	}
	defer cursor.Close(ctx)

	bookings := []models.Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}
