package ght

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSchemaRejectsTooFewDimensions(t *testing.T) {
	_, err := NewSchema([]Dimension{{Position: 0, Name: "X", Type: TypeF64, Scale: 1}})
	require.Error(t, err)
	assert.Equal(t, KindSchema, ClassifyError(err))
}

func TestNewSchemaAggregatesAllErrors(t *testing.T) {
	dims := []Dimension{
		{Position: 0, Name: "X", Type: TypeF64, Scale: 1},
		{Position: 1, Name: "X", Type: TypeF64, Scale: 1}, // duplicate name
		{Position: 2, Name: "bad", Type: TypeU8, Scale: 0}, // zero scale
	}
	_, err := NewSchema(dims)
	require.Error(t, err)
	var se *SchemaError
	require.ErrorAs(t, err, &se)
	assert.Contains(t, se.Reason, "duplicate dimension name")
	assert.Contains(t, se.Reason, "scale must be nonzero")
}

func TestSchemaDimensionLookup(t *testing.T) {
	s := testSchema(t)

	d, err := s.DimensionByName("Intensity")
	require.NoError(t, err)
	assert.Equal(t, uint8(2), d.Position)

	_, err = s.DimensionByName("nope")
	require.Error(t, err)
	assert.Equal(t, KindNotFound, ClassifyError(err))

	_, err = s.DimensionByIndex(99)
	require.Error(t, err)
	assert.Equal(t, KindNotFound, ClassifyError(err))

	assert.Equal(t, "X", s.XDimension().Name)
	assert.Equal(t, "Y", s.YDimension().Name)
}

func TestSchemaSame(t *testing.T) {
	a := testSchema(t)
	b := testSchema(t)
	assert.True(t, a.Same(b))

	dims := b.Dimensions()
	dims[2].Scale = 2
	c, err := NewSchema(dims)
	require.NoError(t, err)
	assert.False(t, a.Same(c))
}
