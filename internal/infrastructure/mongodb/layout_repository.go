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

const layoutsCollection = "warehouse_layouts"

// LayoutRepository is the MongoDB store for warehouse layout documents
type LayoutRepository struct {
	coll   *mongo.Collection
	logger *logging.Logger
}

// NewLayoutRepository creates a LayoutRepository
func NewLayoutRepository(client *mongodb.Client, logger *logging.Logger) *LayoutRepository {
	return &LayoutRepository{
		coll:   client.Collection(layoutsCollection),
		logger: logger.WithComponent("layout-repository"),
	}
}

// EnsureIndexes creates the collection indexes
func (r *LayoutRepository) EnsureIndexes(ctx context.Context) error {
	return mongodb.EnsureIndexes(ctx, r.coll, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "warehouseId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
}

// FindByWarehouseID loads a layout document
func (r *LayoutRepository) FindByWarehouseID(ctx context.Context, warehouseID int64) (*domain.WarehouseLayout, error) {
	var layout domain.WarehouseLayout
	err := r.coll.FindOne(ctx, bson.M{"warehouseId": warehouseID}).Decode(&layout)
	if err != nil {
		if mongodb.IsNotFound(err) {
			return nil, apperrors.ErrConfigNotFound("warehouse")
		}
		return nil, apperrors.ErrStore("findLayout", err)
	}
	return &layout, nil
}

// Save upserts a layout document keyed by warehouse id
func (r *LayoutRepository) Save(ctx context.Context, layout *domain.WarehouseLayout) error {
	filter := bson.M{"warehouseId": layout.WarehouseID}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(ctx, filter, layout, opts); err != nil {
		return apperrors.ErrStore("saveLayout", err)
	}
	return nil
}

// List returns every layout document
func (r *LayoutRepository) List(ctx context.Context) ([]*domain.WarehouseLayout, error) {
	opts := options.Find().SetSort(bson.D{{Key: "warehouseId", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, apperrors.ErrStore("listLayouts", err)
	}
	defer cursor.Close(ctx)

	layouts := []*domain.WarehouseLayout{}
	if err := cursor.All(ctx, &layouts); err != nil {
		return nil, apperrors.ErrStore("listLayouts", err)
	}
	return layouts, nil
}
