package application

import (
	"context"

	"github.com/wms-platform/voicepick-service/internal/domain"
	"github.com/wms-platform/voicepick-service/pkg/logging"
	"github.com/wms-platform/voicepick-service/pkg/metrics"
)

// LocationService exposes the location code engine over a layout
// provider. All operations are pure given a resolved layout.
type LocationService struct {
	layouts LayoutProvider
	metrics *metrics.Metrics
	logger  *logging.Logger
}

// NewLocationService creates a LocationService
func NewLocationService(layouts LayoutProvider, m *metrics.Metrics, logger *logging.Logger) *LocationService {
	return &LocationService{
		layouts: layouts,
		metrics: m,
		logger:  logger.WithComponent("location-service"),
	}
}

// Parse validates a location code and returns its components with the
// voice rendering and equipment classification
func (s *LocationService) Parse(ctx context.Context, warehouseID int64, code string) (*LocationDTO, error) {
	layout, err := s.layouts.Layout(ctx, warehouseID)
	if err != nil {
		return nil, err
	}

	location, err := layout.ParseLocation(code)
	if s.metrics != nil {
		s.metrics.RecordLocationParse(err == nil)
	}
	if err != nil {
		return nil, err
	}

	return toLocationDTO(layout, location), nil
}

// Generate builds a canonical code from components and returns the
// parsed view of the result
func (s *LocationService) Generate(ctx context.Context, warehouseID int64, cmd GenerateLocationCommand) (*LocationDTO, error) {
	layout, err := s.layouts.Layout(ctx, warehouseID)
	if err != nil {
		return nil, err
	}

	code, err := layout.GenerateLocation(cmd.Section, cmd.Aisle, cmd.Bay, cmd.Level, cmd.Subsection)
	if err != nil {
		return nil, err
	}

	location, err := layout.ParseLocation(code)
	if err != nil {
		return nil, err
	}

	return toLocationDTO(layout, location), nil
}

// VoicePrompt returns the spoken rendering of a code
func (s *LocationService) VoicePrompt(ctx context.Context, warehouseID int64, code string) (string, error) {
	layout, err := s.layouts.Layout(ctx, warehouseID)
	if err != nil {
		return "", err
	}

	location, err := layout.ParseLocation(code)
	if err != nil {
		return "", err
	}

	if s.metrics != nil {
		s.metrics.RecordVoicePrompt()
	}

	return location.VoicePrompt(), nil
}

// Equipment returns the equipment classification for a code
func (s *LocationService) Equipment(ctx context.Context, warehouseID int64, code string) (string, error) {
	layout, err := s.layouts.Layout(ctx, warehouseID)
	if err != nil {
		return "", err
	}

	location, err := layout.ParseLocation(code)
	if err != nil {
		return "", err
	}

	return layout.Equipment(location), nil
}

// EnumerateAisle lists every code in an aisle, or only the floor-level
// codes when pickerOnly is set. Unknown aisles return an empty list.
func (s *LocationService) EnumerateAisle(ctx context.Context, warehouseID int64, section, aisle string, pickerOnly bool) ([]string, error) {
	layout, err := s.layouts.Layout(ctx, warehouseID)
	if err != nil {
		return nil, err
	}

	if pickerOnly {
		return layout.PickerLocations(section, aisle), nil
	}
	return layout.EnumerateAisle(section, aisle), nil
}

// Search filters an aisle's codes by substring
func (s *LocationService) Search(ctx context.Context, warehouseID int64, section, aisle, term string) ([]string, error) {
	codes, err := s.EnumerateAisle(ctx, warehouseID, section, aisle, false)
	if err != nil {
		return nil, err
	}
	return domain.SearchLocations(term, codes), nil
}

// Stats summarizes the warehouse structure
func (s *LocationService) Stats(ctx context.Context, warehouseID int64) (*domain.LayoutStats, error) {
	layout, err := s.layouts.Layout(ctx, warehouseID)
	if err != nil {
		return nil, err
	}

	stats := layout.Stats()
	return &stats, nil
}
