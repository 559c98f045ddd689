// Package region implements the byte-region provider the rle package's
// deflate/inflate calls expect as a collaborator: something that can open
// an existing file as a read-only, contiguous, indexable byte view, or
// create a new file of an exact caller-specified length that is writable
// and flushable. This is explicitly out of the RLE codec's own scope
// (spec.md §1) — the core only ever calls through the narrow
// io.ReaderAt/io.WriterAt seam rle.CreateFunc defines.
package region

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/xaionaro-go/bytesextra"
	"golang.org/x/sys/unix"
)

// Region is a contiguous, byte-indexable view over a file or a block of
// memory: the two capabilities spec.md §6 asks of the byte-region
// provider, open-existing and create-exact-length, plus the read/write
// access the rle package needs against either.
type Region interface {
	Len() int64
	ReadAt(p []byte, off int64) (int, error)
	WriteAt(p []byte, off int64) (int, error)
	Slice(offset, length int64) ([]byte, error)
	Flush() error
	Close() error
}

// Error mirrors rle.CodecError's IoError/EmptyCreate kinds without either
// package importing the other: rle only ever sees a region as the
// io.ReaderAt it is given or the io.WriterAt an rle.CreateFunc returns
// (*MappedRegion and *MemRegion both serve as either).
type Error struct {
	Msg string
}

func (e *Error) Error() string { return "region: " + e.Msg }

func errorf(format string, args ...any) error {
	return &Error{Msg: fmt.Sprintf(format, args...)}
}

// MappedRegion memory-maps a file, the real OS facility the original
// implementation's MappedFile wrapped (original_source/Memory Mapped Files/MappedFile.h).
type MappedRegion struct {
	file     *os.File
	data     []byte
	length   int64
	writable bool
}

// Open maps an existing file read-only and reports its length.
func Open(path string) (*MappedRegion, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errorf("opening %s: %v", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, errorf("statting %s: %v", path, err)
	}
	length := info.Size()
	var data []byte
	if length > 0 {
		data, err = unix.Mmap(int(f.Fd()), 0, int(length), unix.PROT_READ, unix.MAP_SHARED)
		if err != nil {
			f.Close()
			return nil, errorf("mmap %s read-only: %v", path, err)
		}
	}
	return &MappedRegion{file: f, data: data, length: length, writable: false}, nil
}

// Create truncates (or creates) a file to exactly length bytes and maps
// it read-write. length must be positive.
func Create(path string, length int64) (*MappedRegion, error) {
	if length <= 0 {
		return nil, errorf("create requested with non-positive length %d", length)
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return nil, errorf("creating %s: %v", path, err)
	}
	if err := f.Truncate(length); err != nil {
		f.Close()
		return nil, errorf("truncating %s to %d bytes: %v", path, length, err)
	}
	data, err := unix.Mmap(int(f.Fd()), 0, int(length), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, errorf("mmap %s read-write: %v", path, err)
	}
	return &MappedRegion{file: f, data: data, length: length, writable: true}, nil
}

func (r *MappedRegion) Len() int64 { return r.length }

func (r *MappedRegion) bounds(off int64, n int) error {
	if off < 0 || int64(n) < 0 || off+int64(n) > r.length {
		return errorf("access [%d:%d) out of bounds for region of length %d", off, off+int64(n), r.length)
	}
	return nil
}

func (r *MappedRegion) ReadAt(p []byte, off int64) (int, error) {
	if err := r.bounds(off, len(p)); err != nil {
		return 0, err
	}
	return copy(p, r.data[off:off+int64(len(p))]), nil
}

func (r *MappedRegion) WriteAt(p []byte, off int64) (int, error) {
	if !r.writable {
		return 0, errorf("region opened read-only")
	}
	if err := r.bounds(off, len(p)); err != nil {
		return 0, err
	}
	return copy(r.data[off:off+int64(len(p))], p), nil
}

// Slice returns a view into the region's backing memory; its lifetime is
// bounded by the region, exactly as spec.md §6 requires.
func (r *MappedRegion) Slice(offset, length int64) ([]byte, error) {
	if err := r.bounds(offset, int(length)); err != nil {
		return nil, err
	}
	return r.data[offset : offset+length], nil
}

func (r *MappedRegion) Flush() error {
	if !r.writable || len(r.data) == 0 {
		return nil
	}
	return unix.Msync(r.data, unix.MS_SYNC)
}

func (r *MappedRegion) Close() error {
	if err := r.Flush(); err != nil {
		return err
	}
	if len(r.data) > 0 {
		if err := unix.Munmap(r.data); err != nil {
			return errorf("munmap: %v", err)
		}
	}
	return r.file.Close()
}

// MemRegion backs the same Region interface with an in-memory buffer,
// for the benchmark harness (which already holds whole files in memory)
// and for tests that would rather not touch the filesystem.
type MemRegion struct {
	mu     sync.RWMutex
	data   []byte
	length int64
}

// NewMemRegion allocates a zero-filled in-memory region of length bytes.
func NewMemRegion(length int64) (*MemRegion, error) {
	if length <= 0 {
		return nil, errorf("create requested with non-positive length %d", length)
	}
	return &MemRegion{data: make([]byte, length), length: length}, nil
}

// NewMemRegionFromBytes wraps an existing byte slice as a read-only region.
func NewMemRegionFromBytes(data []byte) *MemRegion {
	return &MemRegion{data: data, length: int64(len(data))}
}

func (m *MemRegion) Len() int64 { return m.length }

func (m *MemRegion) bounds(off int64, n int) error {
	if off < 0 || int64(n) < 0 || off+int64(n) > m.length {
		return errorf("access [%d:%d) out of bounds for region of length %d", off, off+int64(n), m.length)
	}
	return nil
}

func (m *MemRegion) ReadAt(p []byte, off int64) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.bounds(off, len(p)); err != nil {
		return 0, err
	}
	return copy(p, m.data[off:off+int64(len(p))]), nil
}

func (m *MemRegion) WriteAt(p []byte, off int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.bounds(off, len(p)); err != nil {
		return 0, err
	}
	return copy(m.data[off:off+int64(len(p))], p), nil
}

func (m *MemRegion) Slice(offset, length int64) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.bounds(offset, int(length)); err != nil {
		return nil, err
	}
	return m.data[offset : offset+length], nil
}

func (m *MemRegion) Flush() error { return nil }
func (m *MemRegion) Close() error { return nil }

// Stream exposes the region as a seekable stream for consumers that want
// to io.Copy into or out of it rather than address it directly, without
// duplicating the buffer.
func (m *MemRegion) Stream() io.ReadWriteSeeker {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return bytesextra.NewReadWriteSeeker(m.data)
}

// Bytes returns the region's backing slice directly (not a copy), for
// callers that just want the final content.
func (m *MemRegion) Bytes() []byte {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data
}
