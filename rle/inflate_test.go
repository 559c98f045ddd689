package rle

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeTable_SignalWithNoPairedLongIsDecodeState(t *testing.T) {
	spec := specFor(VariantP8L8)
	table := spec.EncodeSignal(0)
	_, err := decodeTable(spec, table)
	require.Error(t, err)
	codecErr, ok := err.(*CodecError)
	require.True(t, ok)
	assert.Equal(t, DecodeState, codecErr.Kind)
}

func TestDecodeTable_BadTableLength(t *testing.T) {
	spec := specFor(VariantP16L16)
	_, err := decodeTable(spec, make([]byte, spec.NodeSize()+1))
	require.Error(t, err)
	codecErr, ok := err.(*CodecError)
	require.True(t, ok)
	assert.Equal(t, IoError, codecErr.Kind)
}

func TestInflate_RejectsTooShortInput(t *testing.T) {
	in := newMemWriterAt(4)
	_, err := Inflate(in, 4, func(size int64) (io.WriterAt, error) {
		return newMemWriterAt(size), nil
	})
	require.Error(t, err)
	codecErr, ok := err.(*CodecError)
	require.True(t, ok)
	assert.Equal(t, NotRLE, codecErr.Kind)
}

func TestInflate_RejectsBadMagic(t *testing.T) {
	buf := newMemWriterAt(headerSize)
	copy(buf.buf, "NOPE0000000000000000")
	_, err := Inflate(buf, headerSize, func(size int64) (io.WriterAt, error) {
		return newMemWriterAt(size), nil
	})
	require.Error(t, err)
	codecErr, ok := err.(*CodecError)
	require.True(t, ok)
	assert.Equal(t, NotRLE, codecErr.Kind)
}

func TestInflate_RejectsTableExtendingPastInput(t *testing.T) {
	h := header{variant: VariantP8L8, decompressedLength: 100, tableNodeCount: 1000}
	buf := newMemWriterAt(headerSize)
	copy(buf.buf, h.encode())
	_, err := Inflate(buf, headerSize, func(size int64) (io.WriterAt, error) {
		return newMemWriterAt(size), nil
	})
	require.Error(t, err)
	codecErr, ok := err.(*CodecError)
	require.True(t, ok)
	assert.Equal(t, IoError, codecErr.Kind)
}

func TestInflate_DetectsLengthMismatch(t *testing.T) {
	spec := specFor(VariantP8L8)
	node := spec.EncodeStandard(0, 10, 'x')
	h := header{variant: VariantP8L8, decompressedLength: 999, tableNodeCount: 1}
	total := headerSize + len(node)
	buf := newMemWriterAt(int64(total))
	copy(buf.buf, h.encode())
	copy(buf.buf[headerSize:], node)

	_, err := Inflate(buf, int64(total), func(size int64) (io.WriterAt, error) {
		return newMemWriterAt(size), nil
	})
	require.Error(t, err)
	codecErr, ok := err.(*CodecError)
	require.True(t, ok)
	assert.Equal(t, LengthMismatch, codecErr.Kind)
}
