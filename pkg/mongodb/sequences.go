package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const countersCollection = "counters"

// NextSequence atomically increments and returns the named counter.
// Counters start at 1 and are created on first use.
func NextSequence(ctx context.Context, db *mongo.Database, name string) (int64, error) {
	filter := bson.M{"_id": name}
	update := bson.M{"$inc": bson.M{"seq": int64(1)}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var result struct {
		Seq int64 `bson:"seq"`
	}
	err := db.Collection(countersCollection).
		FindOneAndUpdate(ctx, filter, update, opts).
		Decode(&result)
	if err != nil {
		return 0, fmt.Errorf("incrementing sequence %s: %w", name, err)
	}

	return result.Seq, nil
}
