package layoutyaml

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/wms-platform/voicepick-service/internal/domain"
	apperrors "github.com/wms-platform/voicepick-service/pkg/errors"
)

// Load reads and normalizes a single layout document from a YAML file
func Load(path string) (*domain.WarehouseLayout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading layout file %s: %w", path, err)
	}

	var layout domain.WarehouseLayout
	if err := yaml.Unmarshal(data, &layout); err != nil {
		return nil, fmt.Errorf("parsing layout file %s: %w", path, err)
	}
	if err := layout.Normalize(); err != nil {
		return nil, fmt.Errorf("layout file %s: %w", path, err)
	}

	return &layout, nil
}

// LoadDir reads every *.yaml layout document in a directory
func LoadDir(dir string) ([]*domain.WarehouseLayout, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("scanning layout dir %s: %w", dir, err)
	}

	layouts := make([]*domain.WarehouseLayout, 0, len(matches))
	for _, path := range matches {
		layout, err := Load(path)
		if err != nil {
			return nil, err
		}
		layouts = append(layouts, layout)
	}

	return layouts, nil
}

// FileProvider serves layouts preloaded from YAML files. It satisfies
// the same source contract as the database-backed repository, letting
// deployments without a config collection ship layouts as files.
type FileProvider struct {
	layouts map[int64]*domain.WarehouseLayout
}

// NewFileProvider loads every layout document in dir
func NewFileProvider(dir string) (*FileProvider, error) {
	layouts, err := LoadDir(dir)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]*domain.WarehouseLayout, len(layouts))
	for _, layout := range layouts {
		if _, exists := byID[layout.WarehouseID]; exists {
			return nil, fmt.Errorf("duplicate layout for warehouse %d in %s", layout.WarehouseID, dir)
		}
		byID[layout.WarehouseID] = layout
	}

	return &FileProvider{layouts: byID}, nil
}

// FindByWarehouseID implements the layout source contract
func (p *FileProvider) FindByWarehouseID(_ context.Context, warehouseID int64) (*domain.WarehouseLayout, error) {
	layout, ok := p.layouts[warehouseID]
	if !ok {
		return nil, apperrors.ErrConfigNotFound("warehouse")
	}
	return layout, nil
}
