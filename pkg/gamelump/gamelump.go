// Package gamelump patches the game lump directory of a converted map.
//
// The directory stores an absolute file offset to its single entry's data,
// which changes whenever lumps move.
package gamelump

import (
	"encoding/binary"

	"github.com/samcharles93/bspconv/pkg/rbsp"
)

const (
	// HeaderSize is the directory header: an int32 entry count.
	HeaderSize = 4
	// EntrySize is one entry: id, flags, version, fileofs, filelen.
	EntrySize = 16

	fileOffsetField = HeaderSize + 8
)

// DataOffset is where the entry's data sits relative to the start of the
// lump: right after the directory header and its single entry.
const DataOffset = HeaderSize + EntrySize

// Count returns the number of directory entries.
func Count(lump []byte) (int32, error) {
	if len(lump) < HeaderSize {
		return 0, rbsp.FormatErrorf("gamelump: lump is %d bytes, too small for a header", len(lump))
	}
	return int32(binary.LittleEndian.Uint32(lump)), nil
}

// FixOffset rewrites the entry's file offset in place. In packed output the
// lump starts at cursor; unpacked lump files start at zero.
func FixOffset(lump []byte, cursor int64, packed bool) error {
	n, err := Count(lump)
	if err != nil {
		return err
	}
	if n != 1 {
		return rbsp.DataErrorf("gamelump: expected 1 game lump but found %d", n)
	}
	if len(lump) < DataOffset {
		return rbsp.FormatErrorf("gamelump: lump is %d bytes, too small for one entry", len(lump))
	}

	offset := int64(DataOffset)
	if packed {
		offset += cursor
	}
	binary.LittleEndian.PutUint32(lump[fileOffsetField:], uint32(int32(offset)))
	return nil
}

// FileOffset returns the entry's current file offset.
func FileOffset(lump []byte) (int32, error) {
	if len(lump) < DataOffset {
		return 0, rbsp.FormatErrorf("gamelump: lump is %d bytes, too small for one entry", len(lump))
	}
	return int32(binary.LittleEndian.Uint32(lump[fileOffsetField:])), nil
}
