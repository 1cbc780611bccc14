package entities

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/datadriven"
	"github.com/stretchr/testify/require"

	"github.com/samcharles93/bspconv/pkg/rbsp"
)

func TestParseDataDriven(t *testing.T) {
	datadriven.RunTest(t, "testdata/parse", func(t *testing.T, d *datadriven.TestData) string {
		p, err := Parse(d.Input, d.HasArg("header"))
		if err != nil {
			return fmt.Sprintf("error: %v\n", err)
		}
		switch d.Cmd {
		case "parse":
			return describe(p)
		case "roundtrip":
			return p.Serialize()
		default:
			return fmt.Sprintf("unknown command: %s\n", d.Cmd)
		}
	})
}

func describe(p *Partition) string {
	var b strings.Builder
	fmt.Fprintf(&b, "header: %s", p.Header.Form)
	if p.Header.Form != HeaderNone {
		fmt.Fprintf(&b, " entities=%d models=%d", p.Header.Entities, p.Header.Models)
	}
	fmt.Fprintf(&b, "\nobjects: %d\n", len(p.Objects))
	for _, o := range p.Objects {
		b.WriteString("{\n")
		for _, f := range o.Fields {
			fmt.Fprintf(&b, "  %q %q\n", f.Key, f.Value)
		}
		b.WriteString("}\n")
	}
	return b.String()
}

func TestParseHeaderExamples(t *testing.T) {
	t.Parallel()

	p, err := Parse("ENTITIES02 num_models=5\n", true)
	require.NoError(t, err)
	require.Equal(t, Header{Form: HeaderEntitiesModels, Entities: 2, Models: 5}, p.Header)

	p, err = Parse("ENTITIES01\n", true)
	require.NoError(t, err)
	require.Equal(t, Header{Form: HeaderEntities, Entities: 1}, p.Header)

	_, err = Parse("ENTITIES00\n", true)
	require.True(t, rbsp.IsFormat(err), "got %v", err)
}

func TestParseStopsAtNUL(t *testing.T) {
	t.Parallel()

	p, err := Parse("{\n\"a\" \"b\"\n}\n\x00{\n\"c\" \"d\"\n", false)
	require.NoError(t, err)
	require.Len(t, p.Objects, 1)
	require.Equal(t, []Field{{Key: "a", Value: "b"}}, p.Objects[0].Fields)
}

func TestSerializeParseEquivalence(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(48))
	word := func() string {
		const letters = "abcdefghijklmnopqrstuvwxyz0123456789_*+/= "
		n := rng.Intn(12)
		b := make([]byte, n)
		for i := range b {
			b[i] = letters[rng.Intn(len(letters))]
		}
		return string(b)
	}

	for iter := 0; iter < 200; iter++ {
		p := &Partition{}
		switch iter % 3 {
		case 1:
			p.Header = Header{Form: HeaderEntities, Entities: 1}
		case 2:
			p.Header = Header{Form: HeaderEntitiesModels, Entities: 2 + rng.Intn(500), Models: rng.Intn(100)}
		}
		for range rng.Intn(6) {
			var o Object
			for range rng.Intn(5) {
				o.Add(word(), word())
			}
			p.Objects = append(p.Objects, o)
		}

		text := p.Serialize()
		got, err := Parse(text, true)
		require.NoError(t, err, "text:\n%s", text)
		require.Equal(t, p.Header, got.Header)
		require.Equal(t, len(p.Objects), len(got.Objects))
		for i := range p.Objects {
			require.Equal(t, len(p.Objects[i].Fields), len(got.Objects[i].Fields))
			for j := range p.Objects[i].Fields {
				require.Equal(t, p.Objects[i].Fields[j], got.Objects[i].Fields[j])
			}
		}
		require.Equal(t, text, got.Serialize())
	}
}

func TestObjectFirstMatch(t *testing.T) {
	t.Parallel()

	var o Object
	o.Add("k", "1")
	o.Add("x", "2")
	o.Add("k", "3")

	v, ok := o.Get("k")
	require.True(t, ok)
	require.Equal(t, "1", v)

	o.Set("k", "one")
	require.Equal(t, []Field{{"k", "one"}, {"x", "2"}, {"k", "3"}}, o.Fields)

	require.True(t, o.Remove("k"))
	require.Equal(t, []Field{{"x", "2"}, {"k", "3"}}, o.Fields)
	require.False(t, o.Remove("missing"))

	o.Set("new", "v")
	require.Equal(t, 3, o.Index("new"))

	c := o.Clone()
	c.Fields[0].Value = "changed"
	require.Equal(t, "2", o.Fields[0].Value)
}

func TestWriteFileTrailingNUL(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "mp_rr_box_env.ent")
	p := &Partition{Header: Header{Form: HeaderEntities, Entities: 1}}
	p.Objects = []Object{{Fields: []Field{{"classname", "info_target"}}}}
	require.NoError(t, WriteFile(path, p))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "ENTITIES01\n{\n\"classname\" \"info_target\"\n}\n\x00", string(raw))

	got, err := ReadFile(path, true)
	require.NoError(t, err)
	require.Equal(t, p, got)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.ent"), true)
	require.True(t, rbsp.IsIO(err), "got %v", err)
}

func TestParsePartitionTable(t *testing.T) {
	t.Parallel()

	names, err := ParsePartitionTable([]byte("01* env fx  script snd spawn\x00junk"))
	require.NoError(t, err)
	require.Equal(t, []string{"env", "fx", "script", "snd", "spawn"}, names)

	names, err = ParsePartitionTable([]byte("01?"))
	require.NoError(t, err)
	require.Empty(t, names)

	_, err = ParsePartitionTable([]byte("02* env"))
	require.True(t, rbsp.IsFormat(err), "got %v", err)

	_, err = ParsePartitionTable([]byte("01"))
	require.True(t, rbsp.IsFormat(err), "got %v", err)
}
