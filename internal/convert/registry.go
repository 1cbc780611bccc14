package convert

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/samcharles93/bspconv/pkg/rbsp"
)

// SectionConverter transforms one lump type.
type SectionConverter interface {
	Name() string
	// Applies reports whether the converter runs for this source version
	// and output mode.
	Applies(env Env) bool
	Convert(ctx context.Context, env Env, s *Section) error
}

// Registry maps lump types to their converter.
type Registry struct {
	converters map[rbsp.LumpType]SectionConverter
}

func NewRegistry() *Registry {
	return &Registry{converters: make(map[rbsp.LumpType]SectionConverter)}
}

// Register adds c for lump type t. A type can only be registered once.
func (r *Registry) Register(t rbsp.LumpType, c SectionConverter) error {
	if c == nil {
		return errors.AssertionFailedf("convert: nil converter for %s", t)
	}
	if prev, ok := r.converters[t]; ok {
		return errors.AssertionFailedf("convert: %s already handled by %s", t, prev.Name())
	}
	r.converters[t] = c
	return nil
}

// Lookup returns the converter for t, or nil.
func (r *Registry) Lookup(t rbsp.LumpType) SectionConverter {
	return r.converters[t]
}

// DefaultRegistry returns the converters for every known format change
// between version 47 and 51.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	must := func(err error) {
		if err != nil {
			panic(err)
		}
	}
	must(r.Register(rbsp.LumpEntities, entitiesConverter{}))
	must(r.Register(rbsp.LumpGameLump, gameLumpConverter{}))
	must(r.Register(rbsp.LumpLightProbes, lightProbeConverter{}))
	must(r.Register(rbsp.LumpLightmapDataSky, lightmapConverter{}))
	must(r.Register(rbsp.LumpLightmapDataRealTimeLights, lightmapConverter{}))
	return r
}
