package ght

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeFromInterpretationRoundTrip(t *testing.T) {
	for ty, want := range map[Type]string{
		TypeI8:  "int8_t",
		TypeU16: "uint16_t",
		TypeF64: "double",
	} {
		assert.Equal(t, want, ty.Interpretation())
		got, err := TypeFromInterpretation(want)
		require.NoError(t, err)
		assert.Equal(t, ty, got)
	}
}

func TestDimensionValidateFloatRequiresIdentityScale(t *testing.T) {
	d := Dimension{Position: 0, Name: "Z", Type: TypeF64, Scale: 2, Offset: 0}
	err := d.validate()
	require.Error(t, err)
	assert.Equal(t, KindSchema, ClassifyError(err))
}

func TestDimensionValidateIntegerRequiresNonzeroScale(t *testing.T) {
	d := Dimension{Position: 0, Name: "Intensity", Type: TypeU16, Scale: 0, Offset: 0}
	err := d.validate()
	require.Error(t, err)
}

func TestDimensionSameIgnoresDescription(t *testing.T) {
	a := Dimension{Position: 0, Name: "X", Type: TypeF64, Scale: 1, Description: "one"}
	b := Dimension{Position: 0, Name: "X", Type: TypeF64, Scale: 1, Description: "two"}
	assert.True(t, a.Same(b))
}

func TestIntRangeInt64BoundsAreExact(t *testing.T) {
	min, max := intRange(typeTable[TypeI64])
	assert.Equal(t, float64(math.MinInt64), min)
	assert.Equal(t, float64(math.MaxInt64), max)
	assert.Less(t, min, 0.0)
}

func TestAttributeRoundTripI64NearRangeLimits(t *testing.T) {
	d := Dimension{Position: 0, Name: "Big", Type: TypeI64, Scale: 1, Offset: 0}

	// A large-magnitude negative value exactly representable in a
	// float64 (a power of two) must round trip without clamping.
	const legit = -(1 << 62)
	a := NewAttributeFromDouble(d, legit, nil)
	assert.Equal(t, float64(legit), a.Value(d))

	// A value genuinely past the range still clamps to the true
	// minimum, not a huge positive value from a two's-complement sign
	// flip.
	over := NewAttributeFromDouble(d, -1e30, nil)
	assert.Equal(t, float64(math.MinInt64), over.Value(d))
}

func TestSignExtendNegativeValues(t *testing.T) {
	// -1 as int16 is 0xFFFF.
	assert.Equal(t, int64(-1), signExtend(0xFFFF, 2))
	assert.Equal(t, int64(127), signExtend(0x7F, 1))
	assert.Equal(t, int64(-128), signExtend(0x80, 1))
}
