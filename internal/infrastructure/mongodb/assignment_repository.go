package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wms-platform/voicepick-service/internal/domain"
	apperrors "github.com/wms-platform/voicepick-service/pkg/errors"
	"github.com/wms-platform/voicepick-service/pkg/logging"
	"github.com/wms-platform/voicepick-service/pkg/mongodb"
)

const assignmentsCollection = "work_assignments"

// AssignmentRepository is the MongoDB store for assignment records
type AssignmentRepository struct {
	coll   *mongo.Collection
	logger *logging.Logger
}

// NewAssignmentRepository creates an AssignmentRepository
func NewAssignmentRepository(client *mongodb.Client, logger *logging.Logger) *AssignmentRepository {
	return &AssignmentRepository{
		coll:   client.Collection(assignmentsCollection),
		logger: logger.WithComponent("assignment-repository"),
	}
}

// EnsureIndexes creates the collection indexes
func (r *AssignmentRepository) EnsureIndexes(ctx context.Context) error {
	return mongodb.EnsureIndexes(ctx, r.coll, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "taskId", Value: 1}, {Key: "status", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "workerPin", Value: 1}, {Key: "status", Value: 1}},
		},
	})
}

// Insert records a new active assignment
func (r *AssignmentRepository) Insert(ctx context.Context, assignment *domain.Assignment) error {
	if _, err := r.coll.InsertOne(ctx, assignment); err != nil {
		return apperrors.ErrStore("insertAssignment", err)
	}
	return nil
}

// ReleaseForTask marks every active assignment for the task completed
func (r *AssignmentRepository) ReleaseForTask(ctx context.Context, taskID int64, now time.Time) error {
	filter := bson.M{"taskId": taskID, "status": domain.AssignmentActive}
	update := bson.M{"$set": bson.M{
		"status":    domain.AssignmentCompleted,
		"updatedAt": now,
	}}
	if _, err := r.coll.UpdateMany(ctx, filter, update); err != nil {
		return apperrors.ErrStore("releaseAssignments", err)
	}
	return nil
}

// FindActiveByWorker lists a worker's active assignments
func (r *AssignmentRepository) FindActiveByWorker(ctx context.Context, workerPIN int) ([]*domain.Assignment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"workerPin": workerPIN, "status": domain.AssignmentActive}, opts)
	if err != nil {
		return nil, apperrors.ErrStore("findAssignments", err)
	}
	defer cursor.Close(ctx)

	assignments := []*domain.Assignment{}
	if err := cursor.All(ctx, &assignments); err != nil {
		return nil, apperrors.ErrStore("findAssignments", err)
	}
	return assignments, nil
}
