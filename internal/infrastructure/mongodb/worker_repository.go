package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wms-platform/voicepick-service/internal/domain"
	apperrors "github.com/wms-platform/voicepick-service/pkg/errors"
	"github.com/wms-platform/voicepick-service/pkg/logging"
	"github.com/wms-platform/voicepick-service/pkg/mongodb"
)

const workersCollection = "workers"

// WorkerRepository is the MongoDB view of the worker directory
type WorkerRepository struct {
	coll   *mongo.Collection
	logger *logging.Logger
}

// NewWorkerRepository creates a WorkerRepository
func NewWorkerRepository(client *mongodb.Client, logger *logging.Logger) *WorkerRepository {
	return &WorkerRepository{
		coll:   client.Collection(workersCollection),
		logger: logger.WithComponent("worker-repository"),
	}
}

// EnsureIndexes creates the collection indexes
func (r *WorkerRepository) EnsureIndexes(ctx context.Context) error {
	return mongodb.EnsureIndexes(ctx, r.coll, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "pin", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "role", Value: 1}, {Key: "active", Value: 1}},
		},
	})
}

// FindByPIN resolves a worker by PIN
func (r *WorkerRepository) FindByPIN(ctx context.Context, pin int) (*domain.Worker, error) {
	var worker domain.Worker
	err := r.coll.FindOne(ctx, bson.M{"pin": pin}).Decode(&worker)
	if err != nil {
		if mongodb.IsNotFound(err) {
			return nil, apperrors.ErrWorkerNotFound(pin)
		}
		return nil, apperrors.ErrStore("findWorker", err)
	}
	return &worker, nil
}

// FindByRole lists active workers with the given role
func (r *WorkerRepository) FindByRole(ctx context.Context, role string) ([]*domain.Worker, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"role": role, "active": true}, opts)
	if err != nil {
		return nil, apperrors.ErrStore("findWorkers", err)
	}
	defer cursor.Close(ctx)

	workers := []*domain.Worker{}
	if err := cursor.All(ctx, &workers); err != nil {
		return nil, apperrors.ErrStore("findWorkers", err)
	}
	return workers, nil
}
