package brushmodel

import (
	"sort"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/samcharles93/bspconv/internal/b64"
	"github.com/samcharles93/bspconv/pkg/entities"
	"github.com/samcharles93/bspconv/pkg/rbsp"
)

const (
	collisionSigil  = '*'
	collisionMarker = "*coll"

	// MaxChunkSize is the decoded size of one "*coll" field.
	MaxChunkSize = 0x78
)

// CollisionFields returns the indices of o's collision chunk fields, ordered
// by key. Chunk keys are zero padded, so lexical order is chunk order.
func CollisionFields(o *entities.Object) []int {
	var idx []int
	for i, f := range o.Fields {
		if len(f.Key) == 0 || f.Key[0] != collisionSigil {
			continue
		}
		if !strings.Contains(f.Key, collisionMarker) {
			continue
		}
		idx = append(idx, i)
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return o.Fields[idx[a]].Key < o.Fields[idx[b]].Key
	})
	return idx
}

// Decode concatenates the decoded collision chunks of o. It reports false
// when o is not a brush model.
func Decode(o *entities.Object) ([]byte, bool, error) {
	idx := CollisionFields(o)
	if len(idx) == 0 {
		return nil, false, nil
	}
	blob, err := decodeFields(o, idx)
	if err != nil {
		return nil, true, err
	}
	return blob, true, nil
}

func decodeFields(o *entities.Object, idx []int) ([]byte, error) {
	var blob []byte
	for _, i := range idx {
		part, err := b64.Decode(o.Fields[i].Value)
		if err != nil {
			return nil, errors.Mark(errors.Wrapf(err, "brushmodel: decode %s", o.Fields[i].Key), rbsp.ErrFormat)
		}
		blob = append(blob, part...)
	}
	return blob, nil
}

// Chunks splits blob into base64 encoded chunks of at most MaxChunkSize.
func Chunks(blob []byte) []string {
	out := make([]string, 0, (len(blob)+MaxChunkSize-1)/MaxChunkSize)
	for len(blob) > 0 {
		n := min(len(blob), MaxChunkSize)
		out = append(out, b64.Encode(blob[:n]))
		blob = blob[n:]
	}
	return out
}

// MigrateObject migrates the collision blob of a brush model entity in
// place. It reports false, with no error, when o carries no collision
// fields. On error o is left untouched.
func MigrateObject(o *entities.Object) (bool, error) {
	idx := CollisionFields(o)
	if len(idx) == 0 {
		return false, nil
	}
	blob, err := decodeFields(o, idx)
	if err != nil {
		return true, err
	}
	migrated, err := Migrate(blob)
	if err != nil {
		return true, err
	}

	chunks := Chunks(migrated)
	if len(chunks) > len(idx) {
		return true, rbsp.DataErrorf("brushmodel: migrated blob needs %d chunks but the entity has %d", len(chunks), len(idx))
	}

	staged := o.Clone()
	surplus := make(map[int]bool, len(idx)-len(chunks))
	for n, i := range idx {
		if n < len(chunks) {
			staged.Fields[i].Value = chunks[n]
		} else {
			surplus[i] = true
		}
	}
	if len(surplus) > 0 {
		kept := staged.Fields[:0]
		for i, f := range staged.Fields {
			if !surplus[i] {
				kept = append(kept, f)
			}
		}
		staged.Fields = kept
	}

	*o = staged
	return true, nil
}

// MigratePartition migrates every brush model in p and returns how many
// objects were converted. It stops at the first failing object.
func MigratePartition(p *entities.Partition) (int, error) {
	n := 0
	for i := range p.Objects {
		ok, err := MigrateObject(&p.Objects[i])
		if err != nil {
			return n, errors.Wrapf(err, "object %d", i)
		}
		if ok {
			n++
		}
	}
	return n, nil
}
