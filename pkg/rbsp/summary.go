package rbsp

// Summary is a printable description of a container header.
type Summary struct {
	Version  int32         `json:"version"`
	Flags    int32         `json:"flags"`
	LastLump int32         `json:"last_lump"`
	Size     int64         `json:"size"`
	Lumps    []LumpSummary `json:"lumps"`
}

// LumpSummary describes one used lump descriptor.
type LumpSummary struct {
	Index   int    `json:"index"`
	Name    string `json:"name"`
	Offset  int32  `json:"offset"`
	Length  int32  `json:"length"`
	Version int32  `json:"version"`
	// Packed is set when the payload lies inside the container.
	Packed bool `json:"packed"`
}

// Summarize lists the non-empty lumps of h in table order. size is the
// container's size in bytes.
func Summarize(h *Header, size int64) Summary {
	s := Summary{Version: h.Version, Flags: h.Flags, LastLump: h.LastLump, Size: size, Lumps: []LumpSummary{}}
	for i := range h.LumpCount() {
		l := h.Lumps[i]
		if l.Length == 0 {
			continue
		}
		s.Lumps = append(s.Lumps, LumpSummary{
			Index:   i,
			Name:    LumpType(i).String(),
			Offset:  l.Offset,
			Length:  l.Length,
			Version: l.Version,
			Packed:  l.Offset >= HeaderSize && l.End() <= size,
		})
	}
	return s
}
