package rle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeader_EncodeDecodeRoundTrips(t *testing.T) {
	h := header{variant: VariantP16L8, decompressedLength: 123456789, tableNodeCount: 42}
	got, err := decodeHeader(h.encode())
	require.NoError(t, err)
	assert.Equal(t, h, got)
}

func TestDecodeHeader_BadMagic(t *testing.T) {
	buf := make([]byte, headerSize)
	copy(buf, "XYZ")
	_, err := decodeHeader(buf)
	require.Error(t, err)
	codecErr, ok := err.(*CodecError)
	require.True(t, ok)
	assert.Equal(t, NotRLE, codecErr.Kind)
}

func TestDecodeHeader_UnknownVariantTag(t *testing.T) {
	h := header{variant: VariantP8L8, decompressedLength: 1, tableNodeCount: 0}
	buf := h.encode()
	buf[3] = 0x99
	_, err := decodeHeader(buf)
	require.Error(t, err)
	codecErr, ok := err.(*CodecError)
	require.True(t, ok)
	assert.Equal(t, UnknownVariant, codecErr.Kind)
}

func TestDecodeHeader_TooShort(t *testing.T) {
	_, err := decodeHeader(make([]byte, headerSize-1))
	require.Error(t, err)
	codecErr, ok := err.(*CodecError)
	require.True(t, ok)
	assert.Equal(t, IoError, codecErr.Kind)
}
