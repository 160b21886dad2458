package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// IsNotFound reports whether err is a document-not-found error
func IsNotFound(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}

// IsDuplicateKey reports whether err is a duplicate key error
func IsDuplicateKey(err error) bool {
	var writeErr mongo.WriteException
	if errors.As(err, &writeErr) {
		for _, we := range writeErr.WriteErrors {
			if we.Code == 11000 {
				return true
			}
		}
	}
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.Code == 11000
	}
	return false
}

// EnsureIndexes creates the given indexes on a collection
func EnsureIndexes(ctx context.Context, coll *mongo.Collection, indexes []mongo.IndexModel) error {
	if len(indexes) == 0 {
		return nil
	}
	if _, err := coll.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("creating indexes on %s: %w", coll.Name(), err)
	}
	return nil
}

// Paginate applies skip/limit math for page-based pagination
func Paginate(page, pageSize int64) (skip, limit int64) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 200 {
		pageSize = 200
	}
	return (page - 1) * pageSize, pageSize
}

// MergeFilters combines non-empty bson.M filters into one
func MergeFilters(filters ...bson.M) bson.M {
	merged := bson.M{}
	for _, f := range filters {
		for k, v := range f {
			merged[k] = v
		}
	}
	return merged
}
