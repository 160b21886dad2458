package domain

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/wms-platform/voicepick-service/pkg/errors"
)

// Equipment classifications
const (
	EquipmentManual   = "manual"
	EquipmentForklift = "forklift"
)

// LocationCode is a parsed warehouse location. A non-empty Subsection
// marks the complex form, which always sits on the floor level.
type LocationCode struct {
	Section    string `json:"section"`
	Aisle      string `json:"aisle"`
	Bay        string `json:"bay"`
	Level      string `json:"level"`
	Subsection string `json:"subsection,omitempty"`
}

// IsComplex reports whether the location uses the subsection form
func (l LocationCode) IsComplex() bool {
	return l.Subsection != ""
}

func formatCode(section, aisle, bay, level, subsection string) string {
	base := section + aisle + "-" + bay
	if subsection != "" {
		return base + ".0." + subsection
	}
	if level != FloorLevel {
		return base + "." + level
	}
	return base
}

// Code renders the canonical string form
func (l LocationCode) Code() string {
	return formatCode(l.Section, l.Aisle, l.Bay, l.Level, l.Subsection)
}

// String implements fmt.Stringer
func (l LocationCode) String() string {
	return l.Code()
}

// MarshalText implements encoding.TextMarshaler
func (l LocationCode) MarshalText() ([]byte, error) {
	return []byte(l.Code()), nil
}

// VoicePrompt renders the spoken form: letters and digits read out one
// by one with "dash" and "dot" separators. Complex codes are always
// spoken as "dot zero dot {subsection}".
func (l LocationCode) VoicePrompt() string {
	parts := make([]string, 0, 12)
	parts = append(parts, l.Section)
	parts = append(parts, strings.Split(l.Aisle, "")...)
	parts = append(parts, "dash")
	parts = append(parts, strings.Split(l.Bay, "")...)

	if l.IsComplex() {
		parts = append(parts, "dot", "zero", "dot", l.Subsection)
	} else if l.Level != FloorLevel {
		parts = append(parts, "dot", l.Level)
	}

	return strings.Join(parts, " ")
}

// ParseLocation validates a code against the layout grammar. The simple
// pattern is tried first, then the complex pattern; level defaults to
// the floor level when absent.
func (w *WarehouseLayout) ParseLocation(code string) (LocationCode, error) {
	if match := w.simpleRe.FindStringSubmatch(code); match != nil {
		level := match[4]
		if level == "" {
			level = FloorLevel
		}
		return LocationCode{
			Section: match[1],
			Aisle:   match[2],
			Bay:     match[3],
			Level:   level,
		}, nil
	}

	if match := w.complexRe.FindStringSubmatch(code); match != nil {
		return LocationCode{
			Section:    match[1],
			Aisle:      match[2],
			Bay:        match[3],
			Level:      FloorLevel,
			Subsection: match[4],
		}, nil
	}

	return LocationCode{}, errors.ErrLocationFormat(code)
}

// GenerateLocation builds a canonical code from components. Bay is
// zero-padded to three digits regardless of caller padding. The
// subsection is only emitted for complex aisles at the floor level.
func (w *WarehouseLayout) GenerateLocation(section, aisle, bay, level, subsection string) (string, error) {
	bay = strings.TrimSpace(bay)
	if bay == "" || len(bay) > 3 {
		return "", errors.ErrValidation(fmt.Sprintf("invalid bay %q", bay))
	}
	for _, c := range bay {
		if c < '0' || c > '9' {
			return "", errors.ErrValidation(fmt.Sprintf("invalid bay %q", bay))
		}
	}
	for len(bay) < 3 {
		bay = "0" + bay
	}

	if level == "" {
		level = FloorLevel
	}

	if w.IsComplexAisle(section, aisle) && level == FloorLevel && subsection != "" {
		return formatCode(section, aisle, bay, FloorLevel, subsection), nil
	}

	return formatCode(section, aisle, bay, level, ""), nil
}

// Equipment returns the equipment classification for the location
func (w *WarehouseLayout) Equipment(l LocationCode) string {
	return w.EquipmentForLevel(l.Level)
}

// GenerateCheckDigit returns a random voice check digit in 1-37
func GenerateCheckDigit() int {
	return rand.IntN(37) + 1
}
