package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsComplexAisle(t *testing.T) {
	layout := DefaultLayout()

	tests := []struct {
		section  string
		aisle    string
		expected bool
	}{
		{"A", "E", true},
		{"A", "A", true},
		{"A", "F", true},
		{"A", "M", true},
		{"A", "Z", true},
		{"A", "G", false},
		{"A", "L", false},
		{"L", "A", false},
		{"H", "A", false},
		{"X", "A", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, layout.IsComplexAisle(tt.section, tt.aisle),
			"section %s aisle %s", tt.section, tt.aisle)
	}
}

func TestIsComplexAisleIsStable(t *testing.T) {
	layout := DefaultLayout()
	first := layout.IsComplexAisle("A", "E")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, layout.IsComplexAisle("A", "E"))
	}
}

func TestEnumerateAisleSimple(t *testing.T) {
	layout := DefaultLayout()

	codes := layout.EnumerateAisle("L", "A")
	require.Len(t, codes, 99*6)

	// Bay-major ordering: floor first, then upper levels
	assert.Equal(t, "LA-001", codes[0])
	assert.Equal(t, "LA-001.B", codes[1])
	assert.Equal(t, "LA-001.F", codes[5])
	assert.Equal(t, "LA-002", codes[6])
	assert.Equal(t, "LA-099.F", codes[len(codes)-1])
}

func TestEnumerateAisleComplex(t *testing.T) {
	layout := DefaultLayout()

	codes := layout.EnumerateAisle("A", "E")
	require.Len(t, codes, 99*(3+5))

	assert.Equal(t, "AE-001.0.1", codes[0])
	assert.Equal(t, "AE-001.0.3", codes[1])
	assert.Equal(t, "AE-001.0.7", codes[2])
	assert.Equal(t, "AE-001.B", codes[3])
	assert.Equal(t, "AE-001.F", codes[7])
	assert.Equal(t, "AE-002.0.1", codes[8])
}

func TestEnumerateAisleUnknownReturnsEmpty(t *testing.T) {
	layout := DefaultLayout()

	assert.Empty(t, layout.EnumerateAisle("X", "A"))
	assert.Empty(t, layout.EnumerateAisle("H", "B"))
	assert.Empty(t, layout.PickerLocations("X", "A"))
}

func TestEnumerateAisleIsDeterministic(t *testing.T) {
	layout := DefaultLayout()

	first := layout.EnumerateAisle("A", "E")
	second := layout.EnumerateAisle("A", "E")
	assert.Equal(t, first, second)
}

func TestPickerLocations(t *testing.T) {
	layout := DefaultLayout()

	simple := layout.PickerLocations("L", "A")
	require.Len(t, simple, 99)
	assert.Equal(t, "LA-001", simple[0])
	assert.Equal(t, "LA-099", simple[98])

	complexCodes := layout.PickerLocations("A", "E")
	require.Len(t, complexCodes, 99*3)
	assert.Equal(t, "AE-001.0.1", complexCodes[0])
	assert.Equal(t, "AE-001.0.7", complexCodes[2])
	assert.Equal(t, "AE-002.0.1", complexCodes[3])
}

func TestLayoutStats(t *testing.T) {
	layout := DefaultLayout()

	stats := layout.Stats()

	assert.Equal(t, 5, stats.TotalSections)
	assert.Equal(t, 64, stats.TotalAisles)
	assert.Equal(t, 20, stats.ComplexAisles)
	assert.Equal(t, 41976, stats.EstimatedLocations)

	bySection := make(map[string]SectionStats, len(stats.Sections))
	for _, s := range stats.Sections {
		bySection[s.Code] = s
	}

	assert.Equal(t, 594, bySection["H"].EstimatedLocations)
	assert.Equal(t, 26*594, bySection["L"].EstimatedLocations)
	assert.Equal(t, 20, bySection["A"].ComplexAisles)
	assert.Equal(t, 6*594+20*792, bySection["A"].EstimatedLocations)
}

func TestNormalizeValidation(t *testing.T) {
	tests := []struct {
		name   string
		layout WarehouseLayout
	}{
		{
			name:   "no sections",
			layout: WarehouseLayout{WarehouseID: 1},
		},
		{
			name: "multi letter section",
			layout: WarehouseLayout{
				Sections: []SectionConfig{{Code: "AB", Aisles: []string{"A"}}},
			},
		},
		{
			name: "duplicate section",
			layout: WarehouseLayout{
				Sections: []SectionConfig{
					{Code: "L", Aisles: []string{"A"}},
					{Code: "L", Aisles: []string{"B"}},
				},
			},
		},
		{
			name: "missing floor level",
			layout: WarehouseLayout{
				Sections: []SectionConfig{{Code: "L", Aisles: []string{"A"}}},
				Levels:   []LevelConfig{{Code: "B"}, {Code: "C"}},
			},
		},
		{
			name: "bay range inverted",
			layout: WarehouseLayout{
				Sections: []SectionConfig{{Code: "L", Aisles: []string{"A"}}},
				BayStart: 50,
				BayEnd:   10,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layout := tt.layout
			assert.Error(t, layout.Normalize())
		})
	}
}

func TestNormalizeAppliesDefaults(t *testing.T) {
	layout := WarehouseLayout{
		WarehouseID: 7,
		Sections:    []SectionConfig{{Code: "L", Aisles: []string{"A"}}},
	}
	require.NoError(t, layout.Normalize())

	assert.Equal(t, 1, layout.BayStart)
	assert.Equal(t, 99, layout.BayEnd)
	assert.Equal(t, []string{"1", "3", "7"}, layout.Subsections)
	assert.Len(t, layout.Levels, 6)
}

func TestCustomLayoutGrammar(t *testing.T) {
	layout := WarehouseLayout{
		WarehouseID: 2,
		Sections: []SectionConfig{
			{Code: "C", Aisles: []string{"A", "B"}, ComplexAisles: []string{"B"}},
		},
		Levels:      []LevelConfig{{Code: "0"}, {Code: "G"}},
		Subsections: []string{"2", "4"},
		BayStart:    1,
		BayEnd:      10,
	}
	require.NoError(t, layout.Normalize())

	parsed, err := layout.ParseLocation("CB-005.0.2")
	require.NoError(t, err)
	assert.Equal(t, "2", parsed.Subsection)

	_, err = layout.ParseLocation("CB-005.0.1")
	assert.Error(t, err, "subsection outside configured alphabet")

	_, err = layout.ParseLocation("CA-005.B")
	assert.Error(t, err, "level outside configured alphabet")

	parsed, err = layout.ParseLocation("CA-005.G")
	require.NoError(t, err)
	assert.Equal(t, "G", parsed.Level)

	codes := layout.EnumerateAisle("C", "B")
	assert.Len(t, codes, 10*(2+1))
}
