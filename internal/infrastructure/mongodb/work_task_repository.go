package mongodb

import (
	"context"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wms-platform/voicepick-service/internal/domain"
	apperrors "github.com/wms-platform/voicepick-service/pkg/errors"
	"github.com/wms-platform/voicepick-service/pkg/logging"
	"github.com/wms-platform/voicepick-service/pkg/mongodb"
)

const (
	tasksCollection = "work_queue"
	taskSequence    = "work_queue_task_id"
)

// WorkTaskRepository is the MongoDB implementation of the task store
type WorkTaskRepository struct {
	client *mongodb.Client
	coll   *mongo.Collection
	logger *logging.Logger
}

// NewWorkTaskRepository creates a WorkTaskRepository
func NewWorkTaskRepository(client *mongodb.Client, logger *logging.Logger) *WorkTaskRepository {
	return &WorkTaskRepository{
		client: client,
		coll:   client.Collection(tasksCollection),
		logger: logger.WithComponent("work-task-repository"),
	}
}

// EnsureIndexes creates the collection indexes
func (r *WorkTaskRepository) EnsureIndexes(ctx context.Context) error {
	return mongodb.EnsureIndexes(ctx, r.coll, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "taskId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "status", Value: 1},
				{Key: "requiredRole", Value: 1},
				{Key: "priority", Value: 1},
				{Key: "createdAt", Value: 1},
			},
		},
		{
			Keys: bson.D{
				{Key: "workerPin", Value: 1},
				{Key: "status", Value: 1},
			},
		},
	})
}

// Insert persists a new task, assigning its id from the task sequence
func (r *WorkTaskRepository) Insert(ctx context.Context, task *domain.WorkTask) error {
	start := time.Now()

	taskID, err := mongodb.NextSequence(ctx, r.client.Database(), taskSequence)
	if err != nil {
		return apperrors.ErrStore("insert", err)
	}
	task.TaskID = taskID

	_, err = r.coll.InsertOne(ctx, task)
	r.logger.DatabaseQuery(ctx, tasksCollection, "insert", time.Since(start), err == nil, 1)
	if err != nil {
		return apperrors.ErrStore("insert", err)
	}
	return nil
}

// FindByID loads a task by its id
func (r *WorkTaskRepository) FindByID(ctx context.Context, taskID int64) (*domain.WorkTask, error) {
	var task domain.WorkTask
	err := r.coll.FindOne(ctx, bson.M{"taskId": taskID}).Decode(&task)
	if err != nil {
		if mongodb.IsNotFound(err) {
			return nil, apperrors.ErrNotFoundWithID("task", formatTaskID(taskID))
		}
		return nil, apperrors.ErrStore("find", err)
	}
	return &task, nil
}

// Find returns tasks matching the filter. Priority ordering is
// ascending by priority, then creation time, then task id, which keeps
// the listing total and stable.
func (r *WorkTaskRepository) Find(ctx context.Context, filter domain.TaskFilter) ([]*domain.WorkTask, error) {
	query := bson.M{}
	if filter.WorkerPIN != nil {
		query["workerPin"] = *filter.WorkerPIN
	}
	if filter.RequiredRole != "" {
		query["requiredRole"] = filter.RequiredRole
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if len(filter.Statuses) > 0 {
		query["status"] = bson.M{"$in": filter.Statuses}
	}

	opts := options.Find()
	if filter.PriorityOrder {
		opts.SetSort(bson.D{
			{Key: "priority", Value: 1},
			{Key: "createdAt", Value: 1},
			{Key: "taskId", Value: 1},
		})
	} else {
		opts.SetSort(bson.D{{Key: "taskId", Value: 1}})
	}
	if filter.Limit > 0 {
		opts.SetLimit(filter.Limit)
	}

	start := time.Now()
	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		r.logger.DatabaseQuery(ctx, tasksCollection, "find", time.Since(start), false, 0)
		return nil, apperrors.ErrStore("find", err)
	}
	defer cursor.Close(ctx)

	tasks := []*domain.WorkTask{}
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, apperrors.ErrStore("find", err)
	}
	r.logger.DatabaseQuery(ctx, tasksCollection, "find", time.Since(start), true, int64(len(tasks)))

	return tasks, nil
}

// Update replaces the stored task document
func (r *WorkTaskRepository) Update(ctx context.Context, task *domain.WorkTask) error {
	start := time.Now()
	result, err := r.coll.ReplaceOne(ctx, bson.M{"taskId": task.TaskID}, task)
	r.logger.DatabaseQuery(ctx, tasksCollection, "update", time.Since(start), err == nil, 1)
	if err != nil {
		return apperrors.ErrStore("update", err)
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrNotFoundWithID("task", formatTaskID(task.TaskID))
	}
	return nil
}

// AssignPending claims the task for the worker only if it is still
// pending and returns the pre-claim snapshot; the caller replays the
// transition on the snapshot to collect its events. A zero-match
// update means either the task is gone or a concurrent claim won.
func (r *WorkTaskRepository) AssignPending(ctx context.Context, taskID int64, worker *domain.Worker, now time.Time) (*domain.WorkTask, error) {
	filter := bson.M{
		"taskId": taskID,
		"status": domain.StatusPending,
	}
	update := bson.M{
		"$set": bson.M{
			"workerPin":  worker.PIN,
			"workerId":   worker.WorkerID,
			"workerName": worker.Name,
			"status":     domain.StatusAssigned,
			"assignedAt": now,
			"updatedAt":  now,
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.Before)

	start := time.Now()
	var task domain.WorkTask
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&task)
	r.logger.DatabaseQuery(ctx, tasksCollection, "assignPending", time.Since(start), err == nil, 1)

	if err == nil {
		return &task, nil
	}
	if !mongodb.IsNotFound(err) {
		return nil, apperrors.ErrStore("assign", err)
	}

	// Distinguish a missing task from a lost race
	existing, findErr := r.FindByID(ctx, taskID)
	if findErr != nil {
		return nil, findErr
	}
	if existing.Status == domain.StatusAssigned || existing.Status == domain.StatusPicking {
		return nil, apperrors.ErrAlreadyAssigned(taskID)
	}
	return nil, apperrors.ErrInvalidTransition("cannot assign task in status " + string(existing.Status))
}

// CountByStatus aggregates task counts per status
func (r *WorkTaskRepository) CountByStatus(ctx context.Context) (domain.QueueStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   "$status",
			"count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return domain.QueueStats{}, apperrors.ErrStore("countByStatus", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Status domain.TaskStatus `bson:"_id"`
		Count  int64             `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return domain.QueueStats{}, apperrors.ErrStore("countByStatus", err)
	}

	var stats domain.QueueStats
	for _, row := range rows {
		switch row.Status {
		case domain.StatusPending:
			stats.Pending = row.Count
		case domain.StatusAssigned:
			stats.Assigned = row.Count
		case domain.StatusPicking:
			stats.Picking = row.Count
		case domain.StatusCompleted:
			stats.Completed = row.Count
		case domain.StatusCancelled:
			stats.Cancelled = row.Count
		}
	}
	stats.Total = stats.Pending + stats.Assigned + stats.Picking + stats.Completed
	stats.TotalAll = stats.Total + stats.Cancelled

	return stats, nil
}

func formatTaskID(taskID int64) string {
	return strconv.FormatInt(taskID, 10)
}
