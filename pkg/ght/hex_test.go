package ght

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHexRoundTrip(t *testing.T) {
	b := []byte{0x00, 0xFF, 0x10, 0xAB}
	s := HexFromBytes(b)
	assert.Equal(t, "00ff10ab", s)

	back, err := BytesFromHex(s)
	require.NoError(t, err)
	assert.Equal(t, b, back)
}

func TestBytesFromHexRejectsOddLength(t *testing.T) {
	_, err := BytesFromHex("abc")
	require.Error(t, err)
	assert.Equal(t, KindInvalidHex, ClassifyError(err))
}

func TestBytesFromHexRejectsNonHexCharacters(t *testing.T) {
	_, err := BytesFromHex("zz")
	require.Error(t, err)
	assert.Equal(t, KindInvalidHex, ClassifyError(err))
}
