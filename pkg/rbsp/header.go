package rbsp

import "encoding/binary"

// DecodeHeader decodes and validates the header at the start of data.
func DecodeHeader(data []byte) (Header, error) {
	var h Header
	if len(data) < HeaderSize {
		return h, ErrTruncated
	}
	h, _ = decodeHeader(data[:HeaderSize])
	if !h.Valid() {
		return h, ErrInvalidMagic
	}
	return h, nil
}

// EncodeHeader returns the encoded form of h.
func EncodeHeader(h Header) []byte {
	buf := make([]byte, HeaderSize)
	encodeHeader(buf, h)
	return buf
}

func decodeHeader(b []byte) (Header, bool) {
	var h Header
	if len(b) < HeaderSize {
		return h, false
	}
	le := binary.LittleEndian
	h.Magic = le.Uint32(b[headerMagicOffset:])
	h.Version = int32(le.Uint32(b[headerVersionOffset:]))
	h.Flags = int32(le.Uint32(b[headerFlagsOffset:]))
	h.LastLump = int32(le.Uint32(b[headerLastLumpOffset:]))
	for i := range h.Lumps {
		start := headerLumpsOffset + i*LumpSize
		h.Lumps[i], _ = decodeLump(b[start : start+LumpSize])
	}
	return h, true
}

func encodeHeader(b []byte, h Header) bool {
	if len(b) < HeaderSize {
		return false
	}
	le := binary.LittleEndian
	le.PutUint32(b[headerMagicOffset:], h.Magic)
	le.PutUint32(b[headerVersionOffset:], uint32(h.Version))
	le.PutUint32(b[headerFlagsOffset:], uint32(h.Flags))
	le.PutUint32(b[headerLastLumpOffset:], uint32(h.LastLump))
	for i := range h.Lumps {
		start := headerLumpsOffset + i*LumpSize
		encodeLump(b[start:start+LumpSize], h.Lumps[i])
	}
	return true
}

func decodeLump(b []byte) (Lump, bool) {
	if len(b) < LumpSize {
		return Lump{}, false
	}
	le := binary.LittleEndian
	return Lump{
		Offset:   int32(le.Uint32(b[0:])),
		Length:   int32(le.Uint32(b[4:])),
		Version:  int32(le.Uint32(b[8:])),
		Reserved: int32(le.Uint32(b[12:])),
	}, true
}

func encodeLump(b []byte, l Lump) bool {
	if len(b) < LumpSize {
		return false
	}
	le := binary.LittleEndian
	le.PutUint32(b[0:], uint32(l.Offset))
	le.PutUint32(b[4:], uint32(l.Length))
	le.PutUint32(b[8:], uint32(l.Version))
	le.PutUint32(b[12:], uint32(l.Reserved))
	return true
}
