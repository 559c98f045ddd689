package rle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectRuns_NoRuns(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5}
	runs := DetectRuns(data)
	assert.Empty(t, runs)
}

func TestDetectRuns_ExactlyAtThreshold(t *testing.T) {
	// A run of length == minRunLength never pays for its own node and must
	// not be emitted.
	data := []byte{0xAA, 0xAA, 0xAA}
	runs := DetectRuns(data)
	assert.Empty(t, runs)
}

func TestDetectRuns_OneOverThreshold(t *testing.T) {
	data := []byte{0xAA, 0xAA, 0xAA, 0xAA}
	runs := DetectRuns(data)
	require.Len(t, runs, 1)
	assert.Equal(t, Run{Prefix: 0, Length: 4, Value: 0xAA}, runs[0])
}

func TestDetectRuns_PrefixAccumulatesAcrossSkippedShortRuns(t *testing.T) {
	// "ab" + short run "cc" (folds, too short) + "d" + long run of 5 'e's.
	data := []byte{'a', 'b', 'c', 'c', 'd', 'e', 'e', 'e', 'e', 'e'}
	runs := DetectRuns(data)
	require.Len(t, runs, 1)
	assert.Equal(t, uint64(5), runs[0].Prefix)
	assert.Equal(t, uint64(5), runs[0].Length)
	assert.Equal(t, byte('e'), runs[0].Value)
}

func TestDetectRuns_MultipleRuns(t *testing.T) {
	data := append([]byte{1, 2}, repeat(0xFF, 10)...)
	data = append(data, 9, 9)
	data = append(data, repeat(0x01, 6)...)
	runs := DetectRuns(data)
	require.Len(t, runs, 2)
	assert.Equal(t, Run{Prefix: 2, Length: 10, Value: 0xFF}, runs[0])
	assert.Equal(t, Run{Prefix: 2, Length: 6, Value: 0x01}, runs[1])
}

func TestDetectRuns_Empty(t *testing.T) {
	assert.Empty(t, DetectRuns(nil))
}

func repeat(b byte, n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = b
	}
	return out
}
