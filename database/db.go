package database

import (
	"context"
	"log"
	"time"

	"eventify/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoClient is the global MongoDB client instance.
var MongoClient *mongo.Client

// InitDB connects to MongoDB and verifies the connection. The process exits when the
// database is unreachable.
func InitDB() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(config.AppConfig.DatabaseURL).
		SetServerSelectionTimeout(5 * time.Second).
		SetAppName("eventify")
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		log.Fatalf("failed to connect to MongoDB: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		log.Fatalf("failed to ping MongoDB: %v", err)
	}
	MongoClient = client
	log.Printf("Connected to MongoDB database %q", config.AppConfig.DatabaseName)
}

// DB returns the application database.
func DB() *mongo.Database {
	return MongoClient.Database(config.AppConfig.DatabaseName)
}

// Close disconnects the global client.
func Close(ctx context.Context) error {
	if MongoClient == nil {
		return nil
	}
	return MongoClient.Disconnect(ctx)
}
