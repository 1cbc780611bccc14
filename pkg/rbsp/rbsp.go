// Package rbsp implements the on-disk layout of Respawn BSP ("rBSP") map
// containers.
//
// A container is a fixed 2064 byte header followed by lump payloads. The
// header holds a table of 128 lump descriptors; each descriptor locates one
// lump either inside the container or, for unpacked maps, in a sibling
// "<map>.bsp.<index>.bsp_lump" file.
package rbsp

// Container constants must match the game's loader exactly.
const (
	// Magic is the container identifier, stored as the bytes "rBSP".
	Magic uint32 = 'r' | 'B'<<8 | 'S'<<16 | 'P'<<24

	// VersionCanonical is the version every converted container is written as.
	VersionCanonical = 47

	// VersionEntityPartitions introduced split entity partitions and the
	// v12.1 collision header embedded in brush model entities.
	VersionEntityPartitions = 48

	// VersionCompactLightProbes dropped the trailing pad from light probes.
	VersionCompactLightProbes = 51

	// MaxLumps is the fixed capacity of the lump table.
	MaxLumps = 128

	// LumpSize is the encoded size of one lump descriptor.
	LumpSize = 16

	// HeaderSize is the encoded size of the container header.
	HeaderSize = headerLumpsOffset + MaxLumps*LumpSize
)

// Header field offsets.
const (
	headerMagicOffset    = 0
	headerVersionOffset  = 4
	headerFlagsOffset    = 8
	headerLastLumpOffset = 12
	headerLumpsOffset    = 16
)

// Header is the decoded container header.
type Header struct {
	Magic    uint32
	Version  int32
	Flags    int32
	LastLump int32
	Lumps    [MaxLumps]Lump
}

// Lump is one lump descriptor. Reserved is carried through untouched.
type Lump struct {
	Offset   int32
	Length   int32
	Version  int32
	Reserved int32
}

// End returns the first byte past the lump's payload.
func (l Lump) End() int64 {
	return int64(l.Offset) + int64(l.Length)
}

// Valid reports whether the header carries the rBSP magic.
func (h *Header) Valid() bool {
	return h.Magic == Magic
}

// LumpCount returns the number of used lump descriptors (LastLump + 1),
// clamped to the table capacity.
func (h *Header) LumpCount() int {
	n := int(h.LastLump) + 1
	if n < 0 {
		return 0
	}
	return min(n, MaxLumps)
}
