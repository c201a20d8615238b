package conversion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvert_WeightUnits(t *testing.T) {
	var c UnitConverter
	assert.InDelta(t, 0.5, c.Convert("g", 500), 1e-12)
	assert.InDelta(t, 2.0, c.Convert("kg", 2), 1e-12)
	assert.InDelta(t, 0.453592, c.Convert("lb", 1), 1e-12)
	assert.InDelta(t, 0.0283495*16, c.Convert("oz", 16), 1e-12)
}

func TestConvert_VolumeUnits(t *testing.T) {
	var c UnitConverter
	assert.InDelta(t, 0.25, c.Convert("ml", 250), 1e-12)
	assert.InDelta(t, 1.0, c.Convert("l", 1), 1e-12)
	assert.InDelta(t, 0.0295735, c.Convert("fl oz", 1), 1e-12)
	assert.InDelta(t, 3.78541*2, c.Convert("gal", 2), 1e-12)
}

func TestConvert_CaseAndWhitespaceInsensitive(t *testing.T) {
	var c UnitConverter
	assert.InDelta(t, 1.5, c.Convert("  KG ", 1.5), 1e-12)
	assert.InDelta(t, 0.1, c.Convert("Ml", 100), 1e-12)
	assert.InDelta(t, 0.0295735*2, c.Convert("FL OZ", 2), 1e-12)
}

func TestConvert_UnknownUnitReturnsQuantity(t *testing.T) {
	var c UnitConverter
	assert.Equal(t, 3.0, c.Convert("kpl", 3))
	assert.Equal(t, 7.5, c.Convert("bunch", 7.5))
	assert.Equal(t, 4.0, c.Convert("", 4))
}

func TestConvert_RoundTrip(t *testing.T) {
	var c UnitConverter
	for _, u := range append(WeightUnits(), VolumeUnits()...) {
		f, ok := c.Factor(u)
		assert.True(t, ok, u)
		q := 12.34
		assert.InDelta(t, q, c.Convert(u, q)/f, 1e-9, u)
	}
}

func TestClassOf(t *testing.T) {
	var c UnitConverter
	assert.Equal(t, ClassWeight, c.ClassOf("g"))
	assert.Equal(t, ClassWeight, c.ClassOf(" LB"))
	assert.Equal(t, ClassVolume, c.ClassOf("gal"))
	assert.Equal(t, ClassPiece, c.ClassOf("kpl"))
	assert.Equal(t, ClassPiece, c.ClassOf(""))

	assert.True(t, IsWeightUnit("oz"))
	assert.False(t, IsWeightUnit("ml"))
	assert.True(t, IsVolumeUnit("ML"))
	assert.False(t, IsVolumeUnit("kpl"))
}
