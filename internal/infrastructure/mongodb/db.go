package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const databaseName = "mern-auth"

// DB wraps the mongo client so callers get a Ping with the signature the
// health checker expects and a single place to hang collections off.
type DB struct {
	client   *mongo.Client
	database *mongo.Database
}

func NewDB(ctx context.Context, uri string) (*DB, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(5 * time.Second).
		SetMaxPoolSize(25).
		SetMaxConnIdleTime(30 * time.Minute)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	db := &DB{client: client, database: client.Database(databaseName)}

	if err := db.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	if err := db.ensureIndexes(ctx); err != nil {
		return nil, fmt.Errorf("ensure indexes: %w", err)
	}

	return db, nil
}

func (db *DB) Ping(ctx context.Context) error {
	return db.client.Ping(ctx, nil)
}

func (db *DB) Close(ctx context.Context) error {
	return db.client.Disconnect(ctx)
}

func (db *DB) Collection(name string) *mongo.Collection {
	return db.database.Collection(name)
}

// ensureIndexes creates the unique email index the register flow relies on
// to reject duplicate accounts at the store level.
func (db *DB) ensureIndexes(ctx context.Context) error {
	_, err := db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
