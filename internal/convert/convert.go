// Package convert drives the conversion of an rBSP container to the
// canonical version 47 layout.
package convert

import (
	"context"
	"math"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/samcharles93/bspconv/internal/logger"
	"github.com/samcharles93/bspconv/pkg/rbsp"
)

// Options configures a Converter.
type Options struct {
	// Pack writes every lump payload into the output container. Otherwise
	// the output is a bare header and converted payloads go to ".new" lump
	// files.
	Pack bool
	// FromContainer reads payloads from the input container instead of
	// its sibling lump files. Only valid together with Pack.
	FromContainer bool
	Logger        logger.Logger
	// Registry defaults to DefaultRegistry.
	Registry *Registry
}

// Converter converts containers one at a time. It holds no per-run state.
type Converter struct {
	opts     Options
	log      logger.Logger
	registry *Registry
}

func New(opts Options) (*Converter, error) {
	if opts.FromContainer && !opts.Pack {
		return nil, errors.New("convert: reading payloads from the container requires pack mode")
	}
	c := &Converter{opts: opts, log: opts.Logger, registry: opts.Registry}
	if c.log == nil {
		c.log = logger.Discard()
	}
	if c.registry == nil {
		c.registry = DefaultRegistry()
	}
	return c, nil
}

// ConvertFile loads the container at path and converts it using the
// converter's pack mode.
func (c *Converter) ConvertFile(ctx context.Context, path string) (*Report, error) {
	bf, err := rbsp.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = bf.Close() }()
	return c.Convert(ctx, path, bf.Data, c.opts.Pack)
}

// Convert converts the container at path whose bytes are data. The output
// header goes to "<path>.new". The returned report is non-nil whenever the
// header could be decoded, including when a fatal error stops the run.
func (c *Converter) Convert(ctx context.Context, path string, data []byte, pack bool) (*Report, error) {
	if c.opts.FromContainer && !pack {
		return nil, errors.New("convert: reading payloads from the container requires pack mode")
	}
	hdr, err := rbsp.DecodeHeader(data)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}

	rep := &Report{
		RunID:         uuid.NewString(),
		Input:         path,
		Output:        rbsp.NewPath(path),
		Packed:        pack,
		FromContainer: c.opts.FromContainer,
		SourceVersion: hdr.Version,
		TargetVersion: rbsp.VersionCanonical,
	}
	log := c.log.With("run", rep.RunID, "file", path)
	log.Info("converting", "version", hdr.Version, "lumps", hdr.LumpCount(), "pack", pack)

	if err := c.run(ctx, path, data, &hdr, pack, rep, log); err != nil {
		rep.Error = err.Error()
		_ = os.Remove(rep.Output)
		return rep, err
	}
	log.Info("converted", "output", rep.Output, "lumps", len(rep.Lumps))
	return rep, nil
}

func (c *Converter) run(ctx context.Context, path string, data []byte, hdr *rbsp.Header, pack bool, rep *Report, log logger.Logger) (err error) {
	env := Env{SourceVersion: hdr.Version, Pack: pack}

	out := *hdr
	out.Version = rbsp.VersionCanonical
	out.Flags = 0

	if hdr.Version >= rbsp.VersionEntityPartitions {
		rep.Partitions = c.convertPartitions(ctx, path, data, hdr, log)
	}

	f, err := os.Create(rep.Output)
	if err != nil {
		return rbsp.WrapIO(err, "create output")
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = rbsp.WrapIO(cerr, "close %s", rep.Output)
		}
	}()
	w, err := rbsp.NewWriter(f, pack)
	if err != nil {
		return err
	}

	for _, ref := range orderSections(hdr) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if ref.Lump.Length == 0 {
			continue
		}
		lr, err := c.convertSection(ctx, env, path, data, ref, &out, w, log)
		rep.Lumps = append(rep.Lumps, lr)
		if err != nil {
			return err
		}
	}
	return w.Finalise(out)
}

func (c *Converter) convertSection(
	ctx context.Context,
	env Env,
	bspPath string,
	data []byte,
	ref sectionRef,
	out *rbsp.Header,
	w *rbsp.Writer,
	log logger.Logger,
) (LumpReport, error) {
	t := rbsp.LumpType(ref.Index)
	log = log.With("lump", t.String())
	lr := LumpReport{
		Index:     ref.Index,
		Name:      t.String(),
		Action:    ActionCopied,
		OldOffset: ref.Lump.Offset,
		OldLength: ref.Lump.Length,
		NewOffset: ref.Lump.Offset,
		NewLength: ref.Lump.Length,
		Version:   ref.Lump.Version,
	}

	s, err := c.load(bspPath, data, t, ref.Lump)
	if err != nil {
		if errors.Is(err, errLumpMissing) {
			log.Warn("lump file not found, skipping", "path", rbsp.LumpPath(bspPath, t))
			lr.Action = ActionMissing
			return lr, nil
		}
		log.Error("failed to load lump", "err", err)
		lr.Action = ActionFailed
		lr.Error = err.Error()
		return lr, nil
	}
	if int64(len(s.Payload)) != int64(ref.Lump.Length) {
		log.Warn("lump size does not match header", "header", ref.Lump.Length, "file", len(s.Payload))
	}
	s.Cursor = w.Cursor()
	s.Log = log

	if conv := c.registry.Lookup(t); conv != nil && conv.Applies(env) {
		lr.Converter = conv.Name()
		orig := *s
		if err := conv.Convert(ctx, env, s); err != nil {
			if rbsp.IsData(err) {
				lr.Action = ActionFailed
				lr.Error = err.Error()
				return lr, errors.Wrapf(err, "lump %s", t)
			}
			log.Error("failed to convert lump, copying unchanged", "converter", conv.Name(), "err", err)
			*s = orig
			lr.Action = ActionFailed
			lr.Error = err.Error()
		} else if s.Modified {
			lr.Action = ActionConverted
		}
	}

	if s.Modified && !env.Pack && s.Path != "" {
		newPath := rbsp.NewPath(s.Path)
		if err := os.WriteFile(newPath, s.Payload, 0o644); err != nil {
			return lr, rbsp.WrapIO(err, "write %s", newPath)
		}
		lr.NewFile = newPath
		log.Debug("wrote lump file", "path", newPath, "size", len(s.Payload))
	}

	if len(s.Payload) > math.MaxInt32 {
		return lr, rbsp.DataErrorf("lump %s is %d bytes", t, len(s.Payload))
	}
	desc := &out.Lumps[ref.Index]
	desc.Length = int32(len(s.Payload))
	desc.Version = s.Version
	if w.Packed() {
		off, err := w.WriteLump(s.Payload)
		if err != nil {
			return lr, err
		}
		desc.Offset = off
	} else {
		desc.Offset = 0
	}
	lr.NewOffset = desc.Offset
	lr.NewLength = desc.Length
	lr.Version = desc.Version
	return lr, nil
}

var errLumpMissing = errors.New("lump file not found")

func (c *Converter) load(bspPath string, data []byte, t rbsp.LumpType, l rbsp.Lump) (*Section, error) {
	s := &Section{Type: t, Version: l.Version, Length: l.Length}
	if c.opts.FromContainer {
		region, ok := rbsp.Region(data, l)
		if !ok {
			return nil, rbsp.FormatErrorf("lump %s [%#x, +%#x) is outside the %d byte container", t, l.Offset, l.Length, len(data))
		}
		// Converters modify payloads in place and data may be a read-only mapping.
		s.Payload = append([]byte(nil), region...)
		return s, nil
	}

	s.Path = rbsp.LumpPath(bspPath, t)
	payload, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errLumpMissing
		}
		return nil, rbsp.WrapIO(err, "read %s", s.Path)
	}
	s.Payload = payload
	return s, nil
}
