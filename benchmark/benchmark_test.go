package benchmark

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func repeatedData() []byte {
	return []byte(strings.Repeat("abcdefgh", 2000))
}

func TestRun_AllDefaultCodecsProduceAResult(t *testing.T) {
	data := repeatedData()
	results := Run(map[string][]byte{"sample.txt": data}, DefaultCodecs)
	require.Len(t, results, len(DefaultCodecs))

	seen := map[string]bool{}
	for _, r := range results {
		seen[r.Codec] = true
		assert.Equal(t, "sample.txt", r.File)
		assert.Equal(t, int64(len(data)), r.OriginalSize)
		if r.Err == "" {
			assert.Greater(t, r.CompressedSize, int64(0))
		}
	}
	for _, name := range DefaultCodecs {
		assert.True(t, seen[name], "missing result for codec %q", name)
	}
}

func TestRun_UnknownCodecReportsError(t *testing.T) {
	results := Run(map[string][]byte{"f": {1, 2, 3}}, []string{"made-up-codec"})
	require.Len(t, results, 1)
	assert.NotEmpty(t, results[0].Err)
}

func TestRun_RLEInefficientOnRandomLikeData(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	results := Run(map[string][]byte{"f": data}, []string{"rle"})
	require.Len(t, results, 1)
	assert.NotEmpty(t, results[0].Err)
}
