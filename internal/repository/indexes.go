package repository

import (
	"context"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes every repository relies on. Failures
// are logged and never fatal.
func EnsureIndexes(ctx context.Context, db *mongo.Database) {
	createIndex(ctx, db.Collection(profilesCollection), bson.D{
		{Key: "userId", Value: 1},
		{Key: "createdAt", Value: -1},
	}, false)
	createIndex(ctx, db.Collection(eventsCollection), bson.D{
		{Key: "userId", Value: 1},
		{Key: "createdAt", Value: -1},
	}, false)
	createIndex(ctx, db.Collection(traitsCollection), bson.D{{Key: "trait", Value: 1}}, true)
	slog.Info("mongo indexes ensured")
}

func createIndex(ctx context.Context, coll *mongo.Collection, keys bson.D, unique bool) {
	opts := options.Index().SetUnique(unique)
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: keys, Options: opts})
	if err != nil {
		slog.Warn("failed to create index", "collection", coll.Name(), "error", err)
	}
}
