package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/wms-platform/voicepick-service/pkg/errors"
)

func TestParseLocationSimpleFormat(t *testing.T) {
	layout := DefaultLayout()

	tests := []struct {
		name     string
		code     string
		expected LocationCode
	}{
		{
			name:     "floor level implied",
			code:     "LA-045",
			expected: LocationCode{Section: "L", Aisle: "A", Bay: "045", Level: "0"},
		},
		{
			name:     "explicit upper level",
			code:     "LA-045.B",
			expected: LocationCode{Section: "L", Aisle: "A", Bay: "045", Level: "B"},
		},
		{
			name:     "heavy section",
			code:     "HA-001.F",
			expected: LocationCode{Section: "H", Aisle: "A", Bay: "001", Level: "F"},
		},
		{
			name:     "simple aisle in section A",
			code:     "AG-010",
			expected: LocationCode{Section: "A", Aisle: "G", Bay: "010", Level: "0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			location, err := layout.ParseLocation(tt.code)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, location)
			assert.False(t, location.IsComplex())
		})
	}
}

func TestParseLocationComplexFormat(t *testing.T) {
	layout := DefaultLayout()

	location, err := layout.ParseLocation("AE-055.0.1")
	require.NoError(t, err)

	assert.Equal(t, "A", location.Section)
	assert.Equal(t, "E", location.Aisle)
	assert.Equal(t, "055", location.Bay)
	assert.Equal(t, FloorLevel, location.Level)
	assert.Equal(t, "1", location.Subsection)
	assert.True(t, location.IsComplex())
}

func TestParseLocationRejectsInvalidCodes(t *testing.T) {
	layout := DefaultLayout()

	tests := []struct {
		name string
		code string
	}{
		{"empty", ""},
		{"unknown section", "XA-045"},
		{"missing dash", "LA045"},
		{"two digit bay", "LA-45"},
		{"four digit bay", "LA-0456"},
		{"unknown level", "LA-045.Z"},
		{"unknown subsection", "AE-055.0.2"},
		{"complex on non-floor level", "AE-055.B.1"},
		{"lowercase", "la-045"},
		{"trailing garbage", "LA-045.B.extra"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := layout.ParseLocation(tt.code)
			require.Error(t, err)

			appErr, ok := apperrors.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, apperrors.CodeLocationFormat, appErr.Code)
		})
	}
}

func TestGenerateLocation(t *testing.T) {
	layout := DefaultLayout()

	tests := []struct {
		name       string
		section    string
		aisle      string
		bay        string
		level      string
		subsection string
		expected   string
	}{
		{"floor level omits suffix", "L", "A", "045", "0", "", "LA-045"},
		{"bay is zero padded", "L", "A", "7", "0", "", "LA-007"},
		{"upper level suffix", "L", "A", "045", "B", "", "LA-045.B"},
		{"complex aisle with subsection", "A", "E", "055", "0", "1", "AE-055.0.1"},
		{"subsection ignored on simple aisle", "L", "A", "045", "0", "1", "LA-045"},
		{"subsection ignored off floor level", "A", "E", "055", "B", "1", "AE-055.B"},
		{"empty level defaults to floor", "L", "A", "045", "", "", "LA-045"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, err := layout.GenerateLocation(tt.section, tt.aisle, tt.bay, tt.level, tt.subsection)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, code)
		})
	}
}

func TestGenerateLocationRejectsBadBay(t *testing.T) {
	layout := DefaultLayout()

	for _, bay := range []string{"", "04X", "1234", "-1"} {
		_, err := layout.GenerateLocation("L", "A", bay, "0", "")
		assert.Error(t, err, "bay %q", bay)
	}
}

func TestGenerateParseRoundTrip(t *testing.T) {
	layout := DefaultLayout()

	tests := []struct {
		section    string
		aisle      string
		bay        string
		level      string
		subsection string
	}{
		{"L", "A", "045", "0", ""},
		{"L", "A", "001", "B", ""},
		{"H", "A", "099", "F", ""},
		{"A", "E", "055", "0", "1"},
		{"A", "Z", "012", "0", "7"},
		{"A", "E", "055", "C", ""},
	}

	for _, tt := range tests {
		code, err := layout.GenerateLocation(tt.section, tt.aisle, tt.bay, tt.level, tt.subsection)
		require.NoError(t, err)

		parsed, err := layout.ParseLocation(code)
		require.NoError(t, err)

		regenerated, err := layout.GenerateLocation(parsed.Section, parsed.Aisle, parsed.Bay, parsed.Level, parsed.Subsection)
		require.NoError(t, err)
		assert.Equal(t, code, regenerated)
	}
}

func TestVoicePrompt(t *testing.T) {
	layout := DefaultLayout()

	tests := []struct {
		code     string
		expected string
	}{
		{"LA-045", "L A dash 0 4 5"},
		{"LA-045.B", "L A dash 0 4 5 dot B"},
		{"AE-055.0.1", "A E dash 0 5 5 dot zero dot 1"},
		{"HA-001.F", "H A dash 0 0 1 dot F"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			location, err := layout.ParseLocation(tt.code)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, location.VoicePrompt())
		})
	}
}

func TestEquipment(t *testing.T) {
	layout := DefaultLayout()

	tests := []struct {
		code     string
		expected string
	}{
		{"LA-045", EquipmentManual},
		{"AE-055.0.1", EquipmentManual},
		{"LA-045.B", EquipmentForklift},
		{"HA-001.F", EquipmentForklift},
	}

	for _, tt := range tests {
		location, err := layout.ParseLocation(tt.code)
		require.NoError(t, err)
		assert.Equal(t, tt.expected, layout.Equipment(location), tt.code)
	}
}

func TestEquipmentLevelOverride(t *testing.T) {
	layout := &WarehouseLayout{
		WarehouseID: 3,
		Sections: []SectionConfig{
			{Code: "L", Aisles: []string{"A"}},
		},
		Levels: []LevelConfig{
			{Code: "0"},
			{Code: "B", Equipment: "ladder"},
			{Code: "C"},
		},
	}
	require.NoError(t, layout.Normalize())

	assert.Equal(t, "ladder", layout.EquipmentForLevel("B"))
	assert.Equal(t, EquipmentForklift, layout.EquipmentForLevel("C"))
	assert.Equal(t, EquipmentManual, layout.EquipmentForLevel("0"))
}

func TestGenerateCheckDigitRange(t *testing.T) {
	for i := 0; i < 200; i++ {
		digit := GenerateCheckDigit()
		assert.GreaterOrEqual(t, digit, 1)
		assert.LessOrEqual(t, digit, 37)
	}
}

func TestSearchLocations(t *testing.T) {
	codes := []string{"LA-045", "LA-046", "LB-045", "AE-055.0.1"}

	assert.Equal(t, []string{"LA-045", "LB-045"}, SearchLocations("045", codes))
	assert.Equal(t, []string{"LA-045", "LA-046"}, SearchLocations("la-04", codes))
	assert.Equal(t, []string{"AE-055.0.1"}, SearchLocations("0.1", codes))
	assert.Empty(t, SearchLocations("ZZ", codes))
	assert.Empty(t, SearchLocations("  ", codes))
}
