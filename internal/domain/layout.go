package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// FloorLevel is the picker-accessible level code
const FloorLevel = "0"

// SectionConfig describes one warehouse section and its aisles
type SectionConfig struct {
	Code          string   `bson:"code" json:"code" yaml:"code"`
	Description   string   `bson:"description" json:"description" yaml:"description"`
	Aisles        []string `bson:"aisles" json:"aisles" yaml:"aisles"`
	ComplexAisles []string `bson:"complexAisles,omitempty" json:"complexAisles,omitempty" yaml:"complexAisles,omitempty"`
}

// LevelConfig describes a storage level. Equipment overrides the default
// classification when set.
type LevelConfig struct {
	Code      string `bson:"code" json:"code" yaml:"code"`
	Label     string `bson:"label,omitempty" json:"label,omitempty" yaml:"label,omitempty"`
	Equipment string `bson:"equipment,omitempty" json:"equipment,omitempty" yaml:"equipment,omitempty"`
}

// WarehouseLayout is the full location grammar for one warehouse:
// sections, aisles, levels, floor subsections and the bay range.
type WarehouseLayout struct {
	WarehouseID int64           `bson:"warehouseId" json:"warehouseId" yaml:"warehouseId"`
	Name        string          `bson:"name" json:"name" yaml:"name"`
	Sections    []SectionConfig `bson:"sections" json:"sections" yaml:"sections"`
	Levels      []LevelConfig   `bson:"levels" json:"levels" yaml:"levels"`
	Subsections []string        `bson:"subsections" json:"subsections" yaml:"subsections"`
	BayStart    int             `bson:"bayStart" json:"bayStart" yaml:"bayStart"`
	BayEnd      int             `bson:"bayEnd" json:"bayEnd" yaml:"bayEnd"`

	sectionIndex map[string]*SectionConfig
	complexIndex map[string]map[string]bool
	levelIndex   map[string]*LevelConfig
	simpleRe     *regexp.Regexp
	complexRe    *regexp.Regexp
}

func letterRange(from, to byte) []string {
	letters := make([]string, 0, to-from+1)
	for c := from; c <= to; c++ {
		letters = append(letters, string(c))
	}
	return letters
}

// DefaultLayout returns the fixed layout used when no per-warehouse
// configuration exists: sections H, L, M, B, A with levels 0 and B-F,
// floor subsections 1, 3, 7 and bays 001-099. In section A the aisles
// A-F and M-Z subdivide the floor level.
func DefaultLayout() *WarehouseLayout {
	layout := &WarehouseLayout{
		WarehouseID: 0,
		Name:        "default",
		Sections: []SectionConfig{
			{Code: "H", Description: "Heavy items", Aisles: []string{"A"}},
			{Code: "L", Description: "Light items", Aisles: letterRange('A', 'Z')},
			{Code: "M", Description: "Medium items", Aisles: letterRange('A', 'F')},
			{Code: "B", Description: "B section", Aisles: letterRange('A', 'E')},
			{
				Code:          "A",
				Description:   "A section",
				Aisles:        letterRange('A', 'Z'),
				ComplexAisles: append(letterRange('M', 'Z'), letterRange('A', 'F')...),
			},
		},
		Levels: []LevelConfig{
			{Code: "0", Label: "Level 0 (Picker)"},
			{Code: "B", Label: "Level 1"},
			{Code: "C", Label: "Level 2"},
			{Code: "D", Label: "Level 3"},
			{Code: "E", Label: "Level 4"},
			{Code: "F", Label: "Level 5"},
		},
		Subsections: []string{"1", "3", "7"},
		BayStart:    1,
		BayEnd:      99,
	}
	if err := layout.Normalize(); err != nil {
		panic(err)
	}
	return layout
}

// Normalize fills defaults, validates the grammar alphabet and compiles
// the parse patterns. It must be called after decoding a layout from
// YAML or the database and before any parse or enumeration call.
func (w *WarehouseLayout) Normalize() error {
	if len(w.Sections) == 0 {
		return fmt.Errorf("layout %d has no sections", w.WarehouseID)
	}
	if len(w.Levels) == 0 {
		w.Levels = []LevelConfig{
			{Code: "0", Label: "Level 0 (Picker)"},
			{Code: "B"}, {Code: "C"}, {Code: "D"}, {Code: "E"}, {Code: "F"},
		}
	}
	if len(w.Subsections) == 0 {
		w.Subsections = []string{"1", "3", "7"}
	}
	if w.BayStart <= 0 {
		w.BayStart = 1
	}
	if w.BayEnd <= 0 {
		w.BayEnd = 99
	}
	if w.BayEnd < w.BayStart || w.BayEnd > 999 {
		return fmt.Errorf("layout %d has invalid bay range %d-%d", w.WarehouseID, w.BayStart, w.BayEnd)
	}

	w.sectionIndex = make(map[string]*SectionConfig, len(w.Sections))
	w.complexIndex = make(map[string]map[string]bool, len(w.Sections))
	sectionClass := make([]byte, 0, len(w.Sections))
	for i := range w.Sections {
		section := &w.Sections[i]
		if len(section.Code) != 1 || section.Code[0] < 'A' || section.Code[0] > 'Z' {
			return fmt.Errorf("layout %d section %q: code must be a single letter A-Z", w.WarehouseID, section.Code)
		}
		if _, exists := w.sectionIndex[section.Code]; exists {
			return fmt.Errorf("layout %d: duplicate section %q", w.WarehouseID, section.Code)
		}
		w.sectionIndex[section.Code] = section
		sectionClass = append(sectionClass, section.Code[0])

		complex := make(map[string]bool, len(section.ComplexAisles))
		for _, aisle := range section.ComplexAisles {
			complex[aisle] = true
		}
		w.complexIndex[section.Code] = complex
	}

	w.levelIndex = make(map[string]*LevelConfig, len(w.Levels))
	levelClass := make([]byte, 0, len(w.Levels))
	hasFloor := false
	for i := range w.Levels {
		level := &w.Levels[i]
		if len(level.Code) != 1 {
			return fmt.Errorf("layout %d level %q: code must be a single character", w.WarehouseID, level.Code)
		}
		w.levelIndex[level.Code] = level
		if level.Code == FloorLevel {
			hasFloor = true
			continue
		}
		levelClass = append(levelClass, level.Code[0])
	}
	if !hasFloor {
		return fmt.Errorf("layout %d has no floor level %q", w.WarehouseID, FloorLevel)
	}

	subClass := make([]byte, 0, len(w.Subsections))
	for _, sub := range w.Subsections {
		if len(sub) != 1 {
			return fmt.Errorf("layout %d subsection %q: code must be a single character", w.WarehouseID, sub)
		}
		subClass = append(subClass, sub[0])
	}

	w.simpleRe = regexp.MustCompile(fmt.Sprintf(
		`^([%s])([A-Z]+)-([0-9]{3})(?:\.([%s]))?$`,
		regexp.QuoteMeta(string(sectionClass)),
		regexp.QuoteMeta(string(levelClass)),
	))
	w.complexRe = regexp.MustCompile(fmt.Sprintf(
		`^([%s])([A-Z]+)-([0-9]{3})\.0\.([%s])$`,
		regexp.QuoteMeta(string(sectionClass)),
		regexp.QuoteMeta(string(subClass)),
	))

	return nil
}

// Clone returns a copy of the layout document without the compiled
// state. The copy must be normalized before use.
func (w *WarehouseLayout) Clone() *WarehouseLayout {
	clone := &WarehouseLayout{
		WarehouseID: w.WarehouseID,
		Name:        w.Name,
		Sections:    make([]SectionConfig, len(w.Sections)),
		Levels:      append([]LevelConfig(nil), w.Levels...),
		Subsections: append([]string(nil), w.Subsections...),
		BayStart:    w.BayStart,
		BayEnd:      w.BayEnd,
	}
	for i, section := range w.Sections {
		section.Aisles = append([]string(nil), section.Aisles...)
		section.ComplexAisles = append([]string(nil), section.ComplexAisles...)
		clone.Sections[i] = section
	}
	return clone
}

// Section returns the section config for a code
func (w *WarehouseLayout) Section(code string) (*SectionConfig, bool) {
	section, ok := w.sectionIndex[code]
	return section, ok
}

// HasAisle reports whether the section contains the aisle
func (w *WarehouseLayout) HasAisle(section, aisle string) bool {
	config, ok := w.sectionIndex[section]
	if !ok {
		return false
	}
	for _, a := range config.Aisles {
		if a == aisle {
			return true
		}
	}
	return false
}

// IsComplexAisle reports whether the aisle subdivides its floor level
// into subsections
func (w *WarehouseLayout) IsComplexAisle(section, aisle string) bool {
	return w.complexIndex[section][aisle]
}

// EquipmentForLevel returns the equipment classification for a level.
// A configured per-level override wins; otherwise the floor level is
// manual and everything above needs a forklift.
func (w *WarehouseLayout) EquipmentForLevel(level string) string {
	if config, ok := w.levelIndex[level]; ok && config.Equipment != "" {
		return config.Equipment
	}
	if level == FloorLevel {
		return EquipmentManual
	}
	return EquipmentForklift
}

func (w *WarehouseLayout) upperLevels() []string {
	levels := make([]string, 0, len(w.Levels))
	for _, level := range w.Levels {
		if level.Code != FloorLevel {
			levels = append(levels, level.Code)
		}
	}
	return levels
}

// EnumerateAisle returns every location code in the aisle, bay-major
// with level and subsection ascending within each bay. Unknown aisles
// produce an empty slice.
func (w *WarehouseLayout) EnumerateAisle(section, aisle string) []string {
	if !w.HasAisle(section, aisle) {
		return []string{}
	}

	isComplex := w.IsComplexAisle(section, aisle)
	upper := w.upperLevels()

	perBay := 1 + len(upper)
	if isComplex {
		perBay = len(w.Subsections) + len(upper)
	}
	codes := make([]string, 0, (w.BayEnd-w.BayStart+1)*perBay)

	for bay := w.BayStart; bay <= w.BayEnd; bay++ {
		bayCode := fmt.Sprintf("%03d", bay)
		if isComplex {
			for _, sub := range w.Subsections {
				codes = append(codes, formatCode(section, aisle, bayCode, FloorLevel, sub))
			}
		} else {
			codes = append(codes, formatCode(section, aisle, bayCode, FloorLevel, ""))
		}
		for _, level := range upper {
			codes = append(codes, formatCode(section, aisle, bayCode, level, ""))
		}
	}

	return codes
}

// PickerLocations returns the floor-level location codes in the aisle.
// Unknown aisles produce an empty slice.
func (w *WarehouseLayout) PickerLocations(section, aisle string) []string {
	if !w.HasAisle(section, aisle) {
		return []string{}
	}

	isComplex := w.IsComplexAisle(section, aisle)
	perBay := 1
	if isComplex {
		perBay = len(w.Subsections)
	}
	codes := make([]string, 0, (w.BayEnd-w.BayStart+1)*perBay)

	for bay := w.BayStart; bay <= w.BayEnd; bay++ {
		bayCode := fmt.Sprintf("%03d", bay)
		if isComplex {
			for _, sub := range w.Subsections {
				codes = append(codes, formatCode(section, aisle, bayCode, FloorLevel, sub))
			}
		} else {
			codes = append(codes, formatCode(section, aisle, bayCode, FloorLevel, ""))
		}
	}

	return codes
}

// SectionStats holds per-section structure statistics
type SectionStats struct {
	Code               string `json:"code"`
	Description        string `json:"description"`
	Aisles             int    `json:"aisles"`
	ComplexAisles      int    `json:"complexAisles"`
	EstimatedLocations int    `json:"estimatedLocations"`
}

// LayoutStats summarizes the warehouse structure
type LayoutStats struct {
	TotalSections      int            `json:"totalSections"`
	TotalAisles        int            `json:"totalAisles"`
	ComplexAisles      int            `json:"complexAisles"`
	EstimatedLocations int            `json:"estimatedLocations"`
	Sections           []SectionStats `json:"sections"`
}

// Stats walks the configured sections and sums estimated location
// counts. Complex aisles trade the floor level for their subsections.
func (w *WarehouseLayout) Stats() LayoutStats {
	bays := w.BayEnd - w.BayStart + 1
	levels := len(w.Levels)
	simplePerAisle := bays * levels
	complexPerAisle := bays * (len(w.Subsections) + levels - 1)

	stats := LayoutStats{
		TotalSections: len(w.Sections),
		Sections:      make([]SectionStats, 0, len(w.Sections)),
	}

	for _, section := range w.Sections {
		sectionStats := SectionStats{
			Code:        section.Code,
			Description: section.Description,
			Aisles:      len(section.Aisles),
		}
		for _, aisle := range section.Aisles {
			if w.IsComplexAisle(section.Code, aisle) {
				sectionStats.ComplexAisles++
				sectionStats.EstimatedLocations += complexPerAisle
			} else {
				sectionStats.EstimatedLocations += simplePerAisle
			}
		}
		stats.TotalAisles += sectionStats.Aisles
		stats.ComplexAisles += sectionStats.ComplexAisles
		stats.EstimatedLocations += sectionStats.EstimatedLocations
		stats.Sections = append(stats.Sections, sectionStats)
	}

	return stats
}

// SearchLocations filters codes by case-insensitive substring match
func SearchLocations(term string, codes []string) []string {
	term = strings.ToUpper(strings.TrimSpace(term))
	if term == "" {
		return []string{}
	}
	results := []string{}
	for _, code := range codes {
		if strings.Contains(code, term) {
			results = append(results, code)
		}
	}
	return results
}
