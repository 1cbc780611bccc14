package rbsp

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func testHeader() Header {
	h := Header{Magic: Magic, Version: 51, Flags: 3, LastLump: 0x7F}
	h.Lumps[LumpEntities] = Lump{Offset: HeaderSize, Length: 5, Version: 1, Reserved: 0x11223344}
	h.Lumps[LumpLightProbes] = Lump{Offset: HeaderSize + 8, Length: 3, Version: 2}
	return h
}

func TestHeaderEncodingLittleEndian(t *testing.T) {
	t.Parallel()

	h := testHeader()
	raw := EncodeHeader(h)
	if len(raw) != HeaderSize {
		t.Fatalf("encoded header size: got %d want %d", len(raw), HeaderSize)
	}
	if !bytes.Equal(raw[0:4], []byte("rBSP")) {
		t.Fatalf("magic bytes: got %q", raw[0:4])
	}
	if raw[4] != 51 || raw[12] != 0x7F {
		t.Fatalf("version/last lump not little-endian: %x", raw[4:16])
	}
	first := raw[headerLumpsOffset : headerLumpsOffset+LumpSize]
	if first[12] != 0x44 || first[15] != 0x11 {
		t.Fatalf("reserved slot not little-endian: %x", first[12:16])
	}

	decoded, err := DecodeHeader(raw)
	if err != nil {
		t.Fatalf("decode header: %v", err)
	}
	if decoded != h {
		t.Fatalf("header round-trip mismatch:\ngot  %+v\nwant %+v", decoded.Lumps[0], h.Lumps[0])
	}
}

func TestDecodeHeaderRejects(t *testing.T) {
	t.Parallel()

	if _, err := DecodeHeader(make([]byte, HeaderSize-1)); !IsFormat(err) {
		t.Fatalf("short header: expected format error, got %v", err)
	}
	raw := EncodeHeader(testHeader())
	copy(raw, "VBSP")
	if _, err := DecodeHeader(raw); !IsFormat(err) {
		t.Fatalf("bad magic: expected format error, got %v", err)
	}
}

func TestLumpCountClamps(t *testing.T) {
	t.Parallel()

	cases := map[int32]int{-5: 0, -1: 0, 0: 1, 0x7F: MaxLumps, 500: MaxLumps}
	for last, want := range cases {
		h := Header{LastLump: last}
		if got := h.LumpCount(); got != want {
			t.Fatalf("LumpCount(last=%d): got %d want %d", last, got, want)
		}
	}
}

func TestRegionBounds(t *testing.T) {
	t.Parallel()

	data := []byte("0123456789")
	if got, ok := Region(data, Lump{Offset: 2, Length: 3}); !ok || string(got) != "234" {
		t.Fatalf("region: got %q ok=%v", got, ok)
	}
	for _, l := range []Lump{{Offset: 8, Length: 3}, {Offset: -1, Length: 1}, {Offset: 0, Length: -1}} {
		if _, ok := Region(data, l); ok {
			t.Fatalf("expected %+v to be rejected", l)
		}
	}
}

func TestPackedWriterOpenRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "map.bsp")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create file: %v", err)
	}
	w, err := NewWriter(f, true)
	if err != nil {
		t.Fatalf("new writer: %v", err)
	}
	if !w.Packed() {
		t.Fatalf("packed writer reports unpacked")
	}
	h := Header{Magic: Magic, Version: VersionCanonical, LastLump: 0x7F}

	off, err := w.WriteLump([]byte("hello"))
	if err != nil {
		t.Fatalf("write lump: %v", err)
	}
	if off != HeaderSize {
		t.Fatalf("first lump offset: got %#x want %#x", off, HeaderSize)
	}
	h.Lumps[LumpEntities] = Lump{Offset: off, Length: 5}
	if w.Cursor() != HeaderSize+5 {
		t.Fatalf("cursor: got %d", w.Cursor())
	}
	if err := w.Finalise(h); err != nil {
		t.Fatalf("finalise: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	bf, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() {
		if cerr := bf.Close(); cerr != nil {
			t.Fatalf("close container: %v", cerr)
		}
	}()
	if bf.Header.Version != VersionCanonical {
		t.Fatalf("version: got %d", bf.Header.Version)
	}
	got, ok := bf.LumpData(LumpEntities)
	if !ok || string(got) != "hello" {
		t.Fatalf("entities lump: got %q ok=%v", got, ok)
	}
}

func TestUnpackedWriterWritesHeaderOnly(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "map.bsp.new")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create file: %v", err)
	}
	w, err := NewWriter(f, false)
	if err != nil {
		t.Fatalf("new writer: %v", err)
	}
	if w.Packed() {
		t.Fatalf("unpacked writer reports packed")
	}
	if _, err := w.WriteLump([]byte{1}); err == nil {
		t.Fatalf("expected WriteLump to fail on an unpacked writer")
	}
	if err := w.Finalise(testHeader()); err != nil {
		t.Fatalf("finalise: %v", err)
	}
	_ = f.Close()

	st, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if st.Size() != HeaderSize {
		t.Fatalf("unpacked output size: got %d want %d", st.Size(), HeaderSize)
	}
}

func TestOpenReaderAt(t *testing.T) {
	t.Parallel()

	raw := append(EncodeHeader(testHeader()), "hello"...)
	bf, err := OpenReaderAt(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		t.Fatalf("open reader: %v", err)
	}
	got, ok := bf.LumpData(LumpEntities)
	if !ok || string(got) != "hello" {
		t.Fatalf("entities lump: got %q ok=%v", got, ok)
	}
	if err := bf.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, err := OpenReaderAt(bytes.NewReader(raw[:HeaderSize-1]), HeaderSize-1); !IsFormat(err) {
		t.Fatalf("short reader: expected format error, got %v", err)
	}
}

func TestOpenTooSmall(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "tiny.bsp")
	if err := os.WriteFile(path, []byte("rBSP"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Open(path); !IsFormat(err) {
		t.Fatalf("expected format error, got %v", err)
	}
	if _, err := Open(filepath.Join(t.TempDir(), "missing.bsp")); !IsIO(err) {
		t.Fatalf("expected io error, got %v", err)
	}
}

func TestPaths(t *testing.T) {
	t.Parallel()

	if got := LumpPath("maps/mp_rr_box.bsp", LumpLightProbes); got != "maps/mp_rr_box.bsp.0065.bsp_lump" {
		t.Fatalf("LumpPath: got %q", got)
	}
	if got := PartitionPath("maps/mp_rr_box.bsp", "env"); got != "maps/mp_rr_box_env.ent" {
		t.Fatalf("PartitionPath: got %q", got)
	}
	if got := LumpType(0x7E).String(); got != "LUMP_007E" {
		t.Fatalf("unknown lump name: got %q", got)
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	h := testHeader()
	h.Lumps[LumpPlanes] = Lump{Offset: 0, Length: 64}
	s := Summarize(&h, HeaderSize+8)
	if len(s.Lumps) != 3 {
		t.Fatalf("lumps: got %d want 3", len(s.Lumps))
	}
	if s.Lumps[0].Name != "ENTITIES" || !s.Lumps[0].Packed {
		t.Fatalf("entities summary: %+v", s.Lumps[0])
	}
	if s.Lumps[1].Index != int(LumpPlanes) || s.Lumps[1].Packed {
		t.Fatalf("planes summary: %+v", s.Lumps[1])
	}
	if s.Lumps[2].Packed {
		t.Fatalf("light probes run past the end and cannot be packed: %+v", s.Lumps[2])
	}
}
