package rbsp

import (
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"golang.org/x/sys/unix"
)

// File is a loaded container. Data is read-only for the lifetime of the file.
type File struct {
	Data    []byte
	Header  Header
	mmapped bool
}

// Open maps a container read-only and validates its header.
// If mmap is unavailable, it falls back to ReadAt-based loading.
// The returned file must be closed to release any mapping.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, WrapIO(err, "open %s", path)
	}
	defer func() { _ = f.Close() }()

	stat, err := f.Stat()
	if err != nil {
		return nil, WrapIO(err, "stat %s", path)
	}

	size64 := stat.Size()
	if size64 > int64(int(^uint(0)>>1)) {
		return nil, FormatErrorf("%s: file too large to map", path)
	}
	size := int(size64)
	if size < HeaderSize {
		return nil, errors.Wrapf(ErrTruncated, "%s is %d bytes, need at least %#x", path, size, HeaderSize)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ, unix.MAP_SHARED)
	if err == nil {
		bf, parseErr := parseFileData(data, true)
		if parseErr != nil {
			_ = unix.Munmap(data)
			return nil, parseErr
		}
		return bf, nil
	}

	data, err = readAllAt(f, size)
	if err != nil {
		return nil, WrapIO(err, "read %s", path)
	}
	return parseFileData(data, false)
}

// OpenReaderAt loads and validates a container from a random-access reader
// without mmap.
func OpenReaderAt(r io.ReaderAt, size int64) (*File, error) {
	if size < HeaderSize {
		return nil, ErrTruncated
	}
	if size > int64(int(^uint(0)>>1)) {
		return nil, FormatErrorf("container too large")
	}
	data, err := readAllAt(r, int(size))
	if err != nil {
		return nil, WrapIO(err, "read container")
	}
	return parseFileData(data, false)
}

func readAllAt(r io.ReaderAt, size int) ([]byte, error) {
	out := make([]byte, size)
	var off int64
	for off < int64(size) {
		n, err := r.ReadAt(out[off:], off)
		off += int64(n)
		if err == nil {
			continue
		}
		if err == io.EOF && off == int64(size) {
			break
		}
		return nil, err
	}
	return out, nil
}

func parseFileData(data []byte, mmapped bool) (*File, error) {
	hdr, err := DecodeHeader(data)
	if err != nil {
		return nil, err
	}
	return &File{Data: data, Header: hdr, mmapped: mmapped}, nil
}

// Close releases file resources and any mmap backing.
func (f *File) Close() error {
	if f == nil || f.Data == nil {
		return nil
	}
	var err error
	if f.mmapped {
		err = unix.Munmap(f.Data)
	}
	f.Data = nil
	f.mmapped = false
	return err
}

// LumpData returns a zero-copy slice of the lump's in-container payload, or
// false when the descriptor points outside the file.
// The caller must not retain this slice after File.Close().
func (f *File) LumpData(t LumpType) ([]byte, bool) {
	if f == nil || f.Data == nil || t < 0 || int(t) >= MaxLumps {
		return nil, false
	}
	return Region(f.Data, f.Header.Lumps[t])
}

// Region returns the bytes of data covered by l, or false when l does not
// fit inside data.
func Region(data []byte, l Lump) ([]byte, bool) {
	if l.Offset < 0 || l.Length < 0 {
		return nil, false
	}
	end := l.End()
	if end > int64(len(data)) {
		return nil, false
	}
	return data[l.Offset:end], true
}
