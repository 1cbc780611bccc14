package brushmodel

import (
	"github.com/cockroachdb/errors"

	"github.com/samcharles93/bspconv/pkg/rbsp"
)

// Relocation is the size of the v12.1-only field pair.
const Relocation = 8

// relocated fields point past the removed field pair and move with it.
var relocated = [...]FieldID{
	ContentMasksIndex,
	SurfacePropsIndex,
	SurfaceNamesIndex,
	VertIndex,
	BVHLeafIndex,
}

// Migrate converts a v12.1 blob to the v8 layout and returns the new blob.
// The input is not modified.
//
// Eight zero bytes are inserted at bvhNodeIndex to keep the BVH nodes 16
// byte aligned, then the unkIndex/unkNew pair is cut out of the header, so
// the blob length is unchanged.
func Migrate(blob []byte) ([]byte, error) {
	if len(blob) < LayoutV121.Size {
		return nil, rbsp.FormatErrorf("brushmodel: blob is %d bytes, smaller than a %s header", len(blob), LayoutV121.Name)
	}
	removeAt, _ := LayoutV121.Offset(UnknownIndex)
	removeEnd := removeAt + Relocation

	bvh, err := LayoutV121.Int32(blob, BVHNodeIndex)
	if err != nil {
		return nil, err
	}
	if int(bvh) < removeEnd || int(bvh) > len(blob) {
		return nil, rbsp.FormatErrorf("brushmodel: bvhNodeIndex %d outside [%d, %d]", bvh, removeEnd, len(blob))
	}

	out := make([]byte, 0, len(blob)+Relocation)
	out = append(out, blob[:bvh]...)
	out = append(out, make([]byte, Relocation)...)
	out = append(out, blob[bvh:]...)
	out = append(out[:removeAt], out[removeEnd:]...)

	for _, id := range relocated {
		v, err := LayoutV8.Int32(out, id)
		if err != nil {
			return nil, err
		}
		if err := LayoutV8.PutInt32(out, id, v-Relocation); err != nil {
			return nil, err
		}
	}

	if len(out) != len(blob) {
		return nil, errors.AssertionFailedf("brushmodel: migrated blob is %d bytes, want %d", len(out), len(blob))
	}
	return out, nil
}
