package convert

import (
	"context"

	"github.com/samcharles93/bspconv/pkg/brushmodel"
	"github.com/samcharles93/bspconv/pkg/entities"
	"github.com/samcharles93/bspconv/pkg/gamelump"
	"github.com/samcharles93/bspconv/pkg/lightprobe"
	"github.com/samcharles93/bspconv/pkg/rbsp"
)

// entitiesConverter migrates brush models in the inline entities lump.
// The text is rewritten into a buffer of the original size. Text that only
// fits in its original, more compact form is left alone.
type entitiesConverter struct{}

func (entitiesConverter) Name() string { return "entities" }

func (entitiesConverter) Applies(env Env) bool {
	return env.SourceVersion >= rbsp.VersionEntityPartitions
}

func (entitiesConverter) Convert(_ context.Context, _ Env, s *Section) error {
	p, err := entities.Parse(string(s.Payload), false)
	if err != nil {
		return err
	}
	n, err := brushmodel.MigratePartition(p)
	if err != nil {
		return err
	}
	text := p.Serialize()
	if len(text) > len(s.Payload) {
		return rbsp.FormatErrorf("convert: re-encoded entities are %d bytes, lump holds %d", len(text), len(s.Payload))
	}
	out := make([]byte, len(s.Payload))
	copy(out, text)

	s.Payload = out
	s.Modified = true
	s.Log.Debug("migrated brush models", "objects", len(p.Objects), "brush_models", n)
	return nil
}

// gameLumpConverter points the game lump entry at its data in the
// unpacked layout.
type gameLumpConverter struct{}

func (gameLumpConverter) Name() string { return "gamelump" }

func (gameLumpConverter) Applies(env Env) bool { return !env.Pack }

func (gameLumpConverter) Convert(_ context.Context, env Env, s *Section) error {
	if err := gamelump.FixOffset(s.Payload, s.Cursor, env.Pack); err != nil {
		return err
	}
	s.Modified = true
	return nil
}

// lightProbeConverter restores the 4 byte pad removed in version 51.
type lightProbeConverter struct{}

func (lightProbeConverter) Name() string { return "lightprobes" }

func (lightProbeConverter) Applies(env Env) bool {
	return env.SourceVersion >= rbsp.VersionCompactLightProbes
}

func (lightProbeConverter) Convert(_ context.Context, _ Env, s *Section) error {
	out, dropped := lightprobe.Expand(s.Payload)
	if dropped != 0 {
		s.Log.Warn("light probe lump has a partial record", "dropped_bytes", dropped)
	}
	s.Log.Debug("expanded light probes", "records", len(out)/lightprobe.RecordSize)
	s.Payload = out
	s.Modified = true
	return nil
}

// lightmapConverter marks sky and real-time light lightmaps as present in
// packed output. Lump files carry placeholder data, so unpacked output
// leaves the version tag unset and the game keeps treating them as
// incomplete. The payload is not touched.
type lightmapConverter struct{}

func (lightmapConverter) Name() string { return "lightmap" }

func (lightmapConverter) Applies(env Env) bool { return env.Pack }

func (lightmapConverter) Convert(_ context.Context, _ Env, s *Section) error {
	s.Version = 1
	s.Modified = true
	return nil
}
