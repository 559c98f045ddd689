package region

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemRegion_CreateRejectsNonPositiveLength(t *testing.T) {
	_, err := NewMemRegion(0)
	require.Error(t, err)
	_, err = NewMemRegion(-1)
	require.Error(t, err)
}

func TestMemRegion_ReadWriteRoundTrips(t *testing.T) {
	r, err := NewMemRegion(16)
	require.NoError(t, err)

	n, err := r.WriteAt([]byte("hello"), 4)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	got := make([]byte, 5)
	n, err = r.ReadAt(got, 4)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, "hello", string(got))
}

func TestMemRegion_OutOfBoundsAccessErrors(t *testing.T) {
	r, err := NewMemRegion(4)
	require.NoError(t, err)
	_, err = r.WriteAt([]byte("toolong"), 0)
	assert.Error(t, err)
	_, err = r.ReadAt(make([]byte, 10), 0)
	assert.Error(t, err)
}

func TestMemRegion_Slice(t *testing.T) {
	r := NewMemRegionFromBytes([]byte("abcdefgh"))
	got, err := r.Slice(2, 3)
	require.NoError(t, err)
	assert.Equal(t, "cde", string(got))
}

func TestMemRegion_Stream(t *testing.T) {
	r := NewMemRegionFromBytes([]byte("abcdef"))
	stream := r.Stream()
	buf := make([]byte, 3)
	n, err := stream.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, "abc", string(buf))
}

func TestMappedRegion_CreateThenOpenRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "region.bin")

	w, err := Create(path, 8)
	require.NoError(t, err)
	_, err = w.WriteAt([]byte("regiondata")[:8], 0)
	require.NoError(t, err)
	require.NoError(t, w.Flush())
	require.NoError(t, w.Close())

	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()
	assert.Equal(t, int64(8), r.Len())
	got, err := r.Slice(0, 8)
	require.NoError(t, err)
	assert.Equal(t, "regionda", string(got))
}

func TestCreate_RejectsNonPositiveLength(t *testing.T) {
	dir := t.TempDir()
	_, err := Create(filepath.Join(dir, "x.bin"), 0)
	assert.Error(t, err)
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "does-not-exist"))
	assert.Error(t, err)
}

func TestMappedRegion_OpenReadOnlyRejectsWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ro.bin")
	require.NoError(t, os.WriteFile(path, []byte("abcd"), 0644))

	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()

	_, err = r.WriteAt([]byte("x"), 0)
	assert.Error(t, err)
}
