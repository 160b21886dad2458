package application

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wms-platform/voicepick-service/internal/domain"
	apperrors "github.com/wms-platform/voicepick-service/pkg/errors"
)

type stubLayoutSource struct {
	layouts map[int64]*domain.WarehouseLayout
	calls   int
}

func (s *stubLayoutSource) FindByWarehouseID(_ context.Context, warehouseID int64) (*domain.WarehouseLayout, error) {
	s.calls++
	layout, ok := s.layouts[warehouseID]
	if !ok {
		return nil, apperrors.ErrConfigNotFound("warehouse")
	}
	return layout, nil
}

func customLayout(warehouseID int64) *domain.WarehouseLayout {
	return &domain.WarehouseLayout{
		WarehouseID: warehouseID,
		Name:        "custom",
		Sections: []domain.SectionConfig{
			{Code: "C", Aisles: []string{"A", "B"}, ComplexAisles: []string{"B"}},
		},
		Levels:      []domain.LevelConfig{{Code: "0"}, {Code: "B"}},
		Subsections: []string{"1", "3"},
		BayStart:    1,
		BayEnd:      5,
	}
}

func newLocationFixture(t *testing.T) (*LocationService, *stubLayoutSource) {
	t.Helper()
	source := &stubLayoutSource{layouts: map[int64]*domain.WarehouseLayout{
		2: customLayout(2),
	}}
	cache := NewLayoutCache(source, testLogger())
	return NewLocationService(cache, nil, testLogger()), source
}

func TestLocationServiceParseDefaultWarehouse(t *testing.T) {
	service, _ := newLocationFixture(t)

	dto, err := service.Parse(context.Background(), 0, "LA-045")
	require.NoError(t, err)

	assert.Equal(t, "LA-045", dto.Code)
	assert.Equal(t, "L", dto.Section)
	assert.Equal(t, "A", dto.Aisle)
	assert.Equal(t, "045", dto.Bay)
	assert.Equal(t, "0", dto.Level)
	assert.False(t, dto.IsComplex)
	assert.Equal(t, "L A dash 0 4 5", dto.VoicePrompt)
	assert.Equal(t, domain.EquipmentManual, dto.Equipment)
	assert.GreaterOrEqual(t, dto.CheckDigit, 1)
	assert.LessOrEqual(t, dto.CheckDigit, 37)
}

func TestLocationServiceParseComplex(t *testing.T) {
	service, _ := newLocationFixture(t)

	dto, err := service.Parse(context.Background(), 0, "AE-055.0.1")
	require.NoError(t, err)

	assert.True(t, dto.IsComplex)
	assert.Equal(t, "1", dto.Subsection)
	assert.Equal(t, "A E dash 0 5 5 dot zero dot 1", dto.VoicePrompt)
}

func TestLocationServiceParseInvalid(t *testing.T) {
	service, _ := newLocationFixture(t)

	_, err := service.Parse(context.Background(), 0, "banana")
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeLocationFormat, appErr.Code)
}

func TestLocationServiceUsesPerWarehouseLayout(t *testing.T) {
	service, _ := newLocationFixture(t)

	dto, err := service.Parse(context.Background(), 2, "CB-003.0.1")
	require.NoError(t, err)
	assert.True(t, dto.IsComplex)

	// The default grammar does not apply to warehouse 2
	_, err = service.Parse(context.Background(), 2, "LA-045")
	require.Error(t, err)
}

func TestLocationServiceUnknownWarehouse(t *testing.T) {
	service, _ := newLocationFixture(t)

	_, err := service.Parse(context.Background(), 99, "LA-045")
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeConfigNotFound, appErr.Code)
}

func TestLocationServiceGenerateRoundTrip(t *testing.T) {
	service, _ := newLocationFixture(t)

	dto, err := service.Generate(context.Background(), 0, GenerateLocationCommand{
		Section: "A", Aisle: "E", Bay: "55", Level: "0", Subsection: "1",
	})
	require.NoError(t, err)
	assert.Equal(t, "AE-055.0.1", dto.Code)

	parsed, err := service.Parse(context.Background(), 0, dto.Code)
	require.NoError(t, err)
	assert.Equal(t, dto.Code, parsed.Code)
}

func TestLocationServiceEnumerate(t *testing.T) {
	service, _ := newLocationFixture(t)

	codes, err := service.EnumerateAisle(context.Background(), 0, "H", "A", false)
	require.NoError(t, err)
	assert.Len(t, codes, 99*6)

	pickerCodes, err := service.EnumerateAisle(context.Background(), 0, "H", "A", true)
	require.NoError(t, err)
	assert.Len(t, pickerCodes, 99)

	empty, err := service.EnumerateAisle(context.Background(), 0, "H", "Z", false)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestLocationServiceSearch(t *testing.T) {
	service, _ := newLocationFixture(t)

	results, err := service.Search(context.Background(), 0, "H", "A", "099")
	require.NoError(t, err)
	assert.Equal(t, []string{"HA-099", "HA-099.B", "HA-099.C", "HA-099.D", "HA-099.E", "HA-099.F"}, results)
}

func TestLocationServiceStats(t *testing.T) {
	service, _ := newLocationFixture(t)

	stats, err := service.Stats(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 5, stats.TotalSections)
	assert.Equal(t, 41976, stats.EstimatedLocations)
}

func TestLayoutCacheLoadsLazilyAndCaches(t *testing.T) {
	source := &stubLayoutSource{layouts: map[int64]*domain.WarehouseLayout{
		2: customLayout(2),
	}}
	cache := NewLayoutCache(source, testLogger())

	ctx := context.Background()
	first, err := cache.Layout(ctx, 2)
	require.NoError(t, err)
	second, err := cache.Layout(ctx, 2)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, source.calls)
}

func TestLayoutCacheDefaultLayoutSkipsSource(t *testing.T) {
	source := &stubLayoutSource{layouts: map[int64]*domain.WarehouseLayout{}}
	cache := NewLayoutCache(source, testLogger())

	layout, err := cache.Layout(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, "default", layout.Name)
	assert.Zero(t, source.calls)
}

func TestLayoutCacheInvalidate(t *testing.T) {
	source := &stubLayoutSource{layouts: map[int64]*domain.WarehouseLayout{
		2: customLayout(2),
	}}
	cache := NewLayoutCache(source, testLogger())

	ctx := context.Background()
	_, err := cache.Layout(ctx, 2)
	require.NoError(t, err)

	cache.Invalidate(2)
	// Replace the stored document; the next lookup must see it
	source.layouts[2] = customLayout(2)
	source.layouts[2].Name = "updated"

	reloaded, err := cache.Layout(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "updated", reloaded.Name)
	assert.Equal(t, 2, source.calls)
}

// sharedLayoutSource hands out one document on every call, the way the
// file provider does
type sharedLayoutSource struct {
	layout *domain.WarehouseLayout
}

func (s *sharedLayoutSource) FindByWarehouseID(_ context.Context, _ int64) (*domain.WarehouseLayout, error) {
	return s.layout, nil
}

func TestLayoutCacheCopiesSourceDocument(t *testing.T) {
	shared := customLayout(2)
	require.NoError(t, shared.Normalize())
	cache := NewLayoutCache(&sharedLayoutSource{layout: shared}, testLogger())

	cached, err := cache.Layout(context.Background(), 2)
	require.NoError(t, err)
	assert.NotSame(t, shared, cached)
}

func TestLayoutCacheConcurrentMissesOnSharedDocument(t *testing.T) {
	shared := customLayout(2)
	require.NoError(t, shared.Normalize())
	cache := NewLayoutCache(&sharedLayoutSource{layout: shared}, testLogger())

	ctx := context.Background()
	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				layout, err := cache.Layout(ctx, 2)
				if !assert.NoError(t, err) {
					return
				}
				if _, err := layout.ParseLocation("CB-003.0.1"); !assert.NoError(t, err) {
					return
				}
				if i%50 == 0 {
					cache.Invalidate(2)
				}
			}
		}()
	}
	wg.Wait()
}

func TestLayoutCacheNilSource(t *testing.T) {
	cache := NewLayoutCache(nil, testLogger())

	_, err := cache.Layout(context.Background(), 5)
	require.Error(t, err)

	layout, err := cache.Layout(context.Background(), 0)
	require.NoError(t, err)
	assert.NotNil(t, layout)
}
