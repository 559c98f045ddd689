package rle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTable_SingleStandardRun(t *testing.T) {
	runs := []Run{{Prefix: 5, Length: 10, Value: 'x'}}
	table := BuildTable(VariantP8L8, runs)
	spec := specFor(VariantP8L8)
	require.Equal(t, spec.NodeSize(), len(table))
	prefix, length, value := spec.decodeRaw(table)
	assert.Equal(t, uint64(5), prefix)
	assert.Equal(t, uint64(10), length)
	assert.Equal(t, byte('x'), value)
}

func TestBuildTable_DegenerateRunEmitsNoStandardNode(t *testing.T) {
	// length <= NodeSize means the standard node would cost at least as
	// much as it saves, so buildRunNodes must not emit it.
	spec := specFor(VariantP8L8)
	runs := []Run{{Prefix: 0, Length: uint64(spec.NodeSize()), Value: 'x'}}
	table := BuildTable(VariantP8L8, runs)
	assert.Empty(t, table)
}

func TestBuildTable_OverwidePrefixEmitsSkipNodes(t *testing.T) {
	spec := specFor(VariantP8L8)
	runs := []Run{{Prefix: spec.MaxSkip() + 10, Length: 20, Value: 'y'}}
	table := BuildTable(VariantP8L8, runs)
	nodeCount := NodeCount(VariantP8L8, table)
	assert.GreaterOrEqual(t, nodeCount, uint32(2), "an over-wide prefix needs at least one skip node plus the final node")

	decoded, err := decodeTable(spec, table)
	require.NoError(t, err)
	require.Len(t, decoded, 1)
	assert.Equal(t, runs[0], decoded[0])
}

func TestBuildTable_OverwideLengthEmitsSignalLongPairs(t *testing.T) {
	spec := specFor(VariantP8L8)
	runs := []Run{{Prefix: 3, Length: spec.MaxLong() + 50, Value: 'z'}}
	table := BuildTable(VariantP8L8, runs)

	// The signal+long pair carries the prefix and MaxLong bytes; the 50-byte
	// remainder gets its own standard node, and decodeTable yields one
	// logical run per pair and per standard node.
	decoded, err := decodeTable(spec, table)
	require.NoError(t, err)
	require.Len(t, decoded, 2)
	assert.Equal(t, Run{Prefix: 3, Length: spec.MaxLong(), Value: 'z'}, decoded[0])
	assert.Equal(t, Run{Prefix: 0, Length: 50, Value: 'z'}, decoded[1])
}

func TestBuildTable_MultipleRunsDecodeInOrder(t *testing.T) {
	spec := specFor(VariantP16L16)
	runs := []Run{
		{Prefix: 1, Length: 20, Value: 'a'},
		{Prefix: 40000, Length: 30, Value: 'b'},
		{Prefix: 0, Length: 100000, Value: 'c'},
	}
	table := BuildTable(VariantP16L16, runs)
	decoded, err := decodeTable(spec, table)
	require.NoError(t, err)
	require.Len(t, decoded, 3)
	for i := range runs {
		assert.Equal(t, runs[i], decoded[i])
	}
}

func TestBuildTable_ParallelMatchesSerial(t *testing.T) {
	runs := make([]Run, parallelBuildThreshold+250)
	for i := range runs {
		runs[i] = Run{Prefix: uint64(i % 13), Length: uint64(10 + i%40), Value: byte(i)}
	}
	spec := specFor(VariantP8L8)
	want := buildRunSet(spec, runs)
	got := BuildTable(VariantP8L8, runs)
	assert.Equal(t, want, got)
}
