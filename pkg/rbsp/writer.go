package rbsp

import (
	"io"
	"os"

	"github.com/cockroachdb/errors"
)

const writerPadBufSize = 4096

// Writer produces a converted container.
//
// In packed mode the writer reserves space for the header up-front, streams
// lump payloads after it and patches the header during Finalise. In unpacked
// mode only the header is written; payloads live in sibling lump files.
type Writer struct {
	f      *os.File
	packed bool
	cursor int64
	closed bool

	padBuf []byte
}

// NewWriter creates a writer targeting f. It truncates f.
func NewWriter(f *os.File, packed bool) (*Writer, error) {
	if f == nil {
		return nil, errors.AssertionFailedf("rbsp: nil file")
	}
	if err := f.Truncate(0); err != nil {
		return nil, WrapIO(err, "truncate %s", f.Name())
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, WrapIO(err, "seek %s", f.Name())
	}

	w := &Writer{
		f:      f,
		packed: packed,
		cursor: HeaderSize,
		padBuf: make([]byte, writerPadBufSize),
	}
	if packed {
		// Reserve the header bytes (actual bytes, not a seek hole).
		if err := w.writeZeros(HeaderSize); err != nil {
			return nil, err
		}
	}
	return w, nil
}

// Packed reports whether the writer appends lump payloads.
func (w *Writer) Packed() bool { return w.packed }

// Cursor returns the absolute offset the next packed lump will be written at.
func (w *Writer) Cursor() int64 { return w.cursor }

// WriteLump appends a lump payload and returns the offset it was written at.
func (w *Writer) WriteLump(data []byte) (int32, error) {
	if w.closed {
		return 0, errors.AssertionFailedf("rbsp: writer already finalised")
	}
	if !w.packed {
		return 0, errors.AssertionFailedf("rbsp: WriteLump on an unpacked writer")
	}
	if w.cursor+int64(len(data)) > int64(^uint32(0)>>1) {
		return 0, DataErrorf("packed container exceeds 2 GiB")
	}
	offset := int32(w.cursor)
	if err := writeFull(w.f, data); err != nil {
		return 0, WrapIO(err, "write lump at %#x", offset)
	}
	w.cursor += int64(len(data))
	return offset, nil
}

// Finalise writes h at the start of the file. The writer must not be used
// again afterwards.
func (w *Writer) Finalise(h Header) error {
	if w.closed {
		return errors.AssertionFailedf("rbsp: writer already finalised")
	}
	w.closed = true

	if _, err := w.f.Seek(0, io.SeekStart); err != nil {
		return WrapIO(err, "seek %s", w.f.Name())
	}
	var hdrBuf [HeaderSize]byte
	if !encodeHeader(hdrBuf[:], h) {
		return errors.AssertionFailedf("rbsp: encode header failed")
	}
	if err := writeFull(w.f, hdrBuf[:]); err != nil {
		return WrapIO(err, "write header")
	}
	return w.f.Sync()
}

func (w *Writer) writeZeros(n int) error {
	for n > 0 {
		toWrite := min(n, len(w.padBuf))
		if err := writeFull(w.f, w.padBuf[:toWrite]); err != nil {
			return WrapIO(err, "write padding")
		}
		n -= toWrite
	}
	return nil
}
