package conversion

import "strings"

// Class is the measurement family a unit belongs to.
type Class string

const (
	ClassPiece  Class = "piece"
	ClassWeight Class = "weight"
	ClassVolume Class = "volume"
)

// Factors relative to the canonical unit of each table (kilogram, liter).
var (
	weightFactors = map[string]float64{
		"kg": 1,
		"g":  0.001,
		"lb": 0.453592,
		"oz": 0.0283495,
	}
	volumeFactors = map[string]float64{
		"l":     1,
		"ml":    0.001,
		"fl oz": 0.0295735,
		"gal":   3.78541,
	}
)

// UnitConverter maps quantities into kilograms or liters. The zero value is ready to use.
type UnitConverter struct{}

func normalizeUnit(unit string) string {
	return strings.ToLower(strings.TrimSpace(unit))
}

// Convert returns quantity expressed in the canonical unit of unit's table.
// Units outside both tables (pieces, typos) come back unchanged.
func (c UnitConverter) Convert(unit string, quantity float64) float64 {
	if f, ok := c.Factor(unit); ok {
		return quantity * f
	}
	return quantity
}

// Factor returns the multiplier of unit relative to its canonical unit.
func (UnitConverter) Factor(unit string) (float64, bool) {
	u := normalizeUnit(unit)
	if f, ok := weightFactors[u]; ok {
		return f, true
	}
	if f, ok := volumeFactors[u]; ok {
		return f, true
	}
	return 0, false
}

// ClassOf reports which table unit belongs to; anything unknown counts as a piece.
func (UnitConverter) ClassOf(unit string) Class {
	u := normalizeUnit(unit)
	if _, ok := weightFactors[u]; ok {
		return ClassWeight
	}
	if _, ok := volumeFactors[u]; ok {
		return ClassVolume
	}
	return ClassPiece
}

// IsWeightUnit and IsVolumeUnit are used to validate user preferences.
func IsWeightUnit(unit string) bool {
	_, ok := weightFactors[normalizeUnit(unit)]
	return ok
}

func IsVolumeUnit(unit string) bool {
	_, ok := volumeFactors[normalizeUnit(unit)]
	return ok
}

// WeightUnits and VolumeUnits list the known units, for pickers.
func WeightUnits() []string { return []string{"kg", "g", "lb", "oz"} }

func VolumeUnits() []string { return []string{"l", "ml", "fl oz", "gal"} }
