// Package brushmodel migrates the collision blobs that brush model entities
// carry in their "*coll" fields.
//
// A blob starts with a model header (offsets to content masks, surface
// properties and surface names, plus a header count) followed by a
// collision header. The v12.1 collision header, written by maps of version
// 48 and later, carries an extra 8 byte field pair that the v8 loader does
// not understand.
package brushmodel

import (
	"encoding/binary"
	"fmt"

	"github.com/samcharles93/bspconv/pkg/rbsp"
)

// FieldID names an int32 field of a brush model header.
type FieldID int

const (
	ContentMasksIndex FieldID = iota
	SurfacePropsIndex
	SurfaceNamesIndex
	HeaderCount
	Unknown
	BVHNodeIndex
	VertIndex
	BVHLeafIndex
	UnknownIndex // v12.1 only
	UnknownNew   // v12.1 only
)

var fieldNames = [...]string{
	ContentMasksIndex: "contentMasksIndex",
	SurfacePropsIndex: "surfacePropsIndex",
	SurfaceNamesIndex: "surfaceNamesIndex",
	HeaderCount:       "headerCount",
	Unknown:           "unk",
	BVHNodeIndex:      "bvhNodeIndex",
	VertIndex:         "vertIndex",
	BVHLeafIndex:      "bvhLeafIndex",
	UnknownIndex:      "unkIndex",
	UnknownNew:        "unkNew",
}

func (id FieldID) String() string {
	if int(id) < len(fieldNames) {
		return fieldNames[id]
	}
	return fmt.Sprintf("field(%d)", int(id))
}

// Layout describes one brush model header version.
type Layout struct {
	Name   string
	Size   int
	fields map[FieldID]int
}

// Collision header versions.
var (
	// LayoutV8 is the canonical layout loaded by version 47 maps.
	LayoutV8 = &Layout{
		Name: "v8",
		Size: 48,
		fields: map[FieldID]int{
			ContentMasksIndex: 0,
			SurfacePropsIndex: 4,
			SurfaceNamesIndex: 8,
			HeaderCount:       12,
			Unknown:           16,
			BVHNodeIndex:      20,
			VertIndex:         24,
			BVHLeafIndex:      28,
			// origin[3] @32, scale @44
		},
	}

	// LayoutV121 is written by version 48 and later.
	LayoutV121 = &Layout{
		Name: "v12.1",
		Size: 56,
		fields: map[FieldID]int{
			ContentMasksIndex: 0,
			SurfacePropsIndex: 4,
			SurfaceNamesIndex: 8,
			HeaderCount:       12,
			Unknown:           16,
			BVHNodeIndex:      20,
			VertIndex:         24,
			BVHLeafIndex:      28,
			UnknownIndex:      32,
			UnknownNew:        36,
			// origin[3] @40, scale @52
		},
	}
)

// Offset returns the byte offset of id within the layout.
func (l *Layout) Offset(id FieldID) (int, bool) {
	off, ok := l.fields[id]
	return off, ok
}

// Int32 reads field id from blob.
func (l *Layout) Int32(blob []byte, id FieldID) (int32, error) {
	off, err := l.locate(blob, id)
	if err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(blob[off:])), nil
}

// PutInt32 writes field id into blob.
func (l *Layout) PutInt32(blob []byte, id FieldID, v int32) error {
	off, err := l.locate(blob, id)
	if err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(blob[off:], uint32(v))
	return nil
}

func (l *Layout) locate(blob []byte, id FieldID) (int, error) {
	off, ok := l.fields[id]
	if !ok {
		return 0, rbsp.FormatErrorf("brushmodel: %s has no field %s", l.Name, id)
	}
	if off+4 > len(blob) {
		return 0, rbsp.FormatErrorf("brushmodel: %s.%s at %d is past the %d byte blob", l.Name, id, off, len(blob))
	}
	return off, nil
}
