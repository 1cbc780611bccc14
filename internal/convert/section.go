package convert

import (
	"sort"

	"github.com/samcharles93/bspconv/internal/logger"
	"github.com/samcharles93/bspconv/pkg/rbsp"
)

// Env is what converters may consult when deciding whether to run.
type Env struct {
	SourceVersion int32
	Pack          bool
}

// Section is one lump payload being converted. Converters replace Payload
// and Version and set Modified when they change anything.
type Section struct {
	Type rbsp.LumpType
	// Path is the lump file the payload was read from; empty when the
	// payload came from the container itself.
	Path    string
	Payload []byte
	Version int32
	// Length is the payload length recorded in the source header.
	Length int32
	// Cursor is the packed output offset this payload will be written at.
	Cursor   int64
	Modified bool
	Log      logger.Logger
}

// sectionRef pairs a descriptor with its table index so the table can be
// walked in storage order.
type sectionRef struct {
	Index int
	Lump  rbsp.Lump
}

// orderSections returns the used lump descriptors sorted by file offset.
// Ties keep table order.
func orderSections(h *rbsp.Header) []sectionRef {
	refs := make([]sectionRef, h.LumpCount())
	for i := range refs {
		refs[i] = sectionRef{Index: i, Lump: h.Lumps[i]}
	}
	sort.SliceStable(refs, func(a, b int) bool {
		return refs[a].Lump.Offset < refs[b].Lump.Offset
	})
	return refs
}
