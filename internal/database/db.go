package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Config holds database configuration
type Config struct {
	URI      string
	Database string
}

// DB owns the MongoDB client for the process. It is created once at startup
// and closed explicitly on shutdown; nothing else holds connection state.
type DB struct {
	client *mongo.Client
	Users  *mongo.Collection
}

// NewDB connects to MongoDB, verifies the connection and ensures indexes.
func NewDB(ctx context.Context, config Config) (*DB, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(config.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	users := client.Database(config.Database).Collection("users")

	// Unique index on name closes the create/create race: the loser of a
	// concurrent insert gets a duplicate-key error and re-fetches instead of
	// producing a second document for the same username.
	_, err = users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ensure indexes: %w", err)
	}

	return &DB{
		client: client,
		Users:  users,
	}, nil
}

// Close disconnects the underlying client.
func (db *DB) Close(ctx context.Context) error {
	return db.client.Disconnect(ctx)
}
