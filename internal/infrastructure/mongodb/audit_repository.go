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

const historyCollection = "work_queue_history"

// AuditLogRepository is the MongoDB store for the work queue history
type AuditLogRepository struct {
	coll   *mongo.Collection
	logger *logging.Logger
}

// NewAuditLogRepository creates an AuditLogRepository
func NewAuditLogRepository(client *mongodb.Client, logger *logging.Logger) *AuditLogRepository {
	return &AuditLogRepository{
		coll:   client.Collection(historyCollection),
		logger: logger.WithComponent("audit-repository"),
	}
}

// EnsureIndexes creates the collection indexes
func (r *AuditLogRepository) EnsureIndexes(ctx context.Context) error {
	return mongodb.EnsureIndexes(ctx, r.coll, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "taskId", Value: 1}, {Key: "createdAt", Value: 1}},
		},
	})
}

// Append writes one history entry
func (r *AuditLogRepository) Append(ctx context.Context, entry *domain.AuditEntry) error {
	if _, err := r.coll.InsertOne(ctx, entry); err != nil {
		return apperrors.ErrStore("appendAudit", err)
	}
	return nil
}

// FindByTask returns the history for a task in write order
func (r *AuditLogRepository) FindByTask(ctx context.Context, taskID int64) ([]*domain.AuditEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"taskId": taskID}, opts)
	if err != nil {
		return nil, apperrors.ErrStore("findAudit", err)
	}
	defer cursor.Close(ctx)

	entries := []*domain.AuditEntry{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, apperrors.ErrStore("findAudit", err)
	}
	return entries, nil
}
