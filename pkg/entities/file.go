package entities

import (
	"bufio"
	"encoding/binary"
	"os"
	"strings"

	"github.com/samcharles93/bspconv/pkg/rbsp"
)

// PartitionTableIdent is the leading "01" of the ENTITY_PARTITIONS lump.
const PartitionTableIdent uint16 = '0' | '1'<<8

// ReadFile parses a standalone partition file.
func ReadFile(path string, expectHeader bool) (*Partition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, rbsp.WrapIO(err, "read partition")
	}
	return Parse(string(data), expectHeader)
}

// WriteFile writes p to path. Standalone partitions always end in one NUL
// byte, which the game's loader requires.
func WriteFile(path string, p *Partition) error {
	f, err := os.Create(path)
	if err != nil {
		return rbsp.WrapIO(err, "create partition")
	}
	bw := bufio.NewWriter(f)
	if _, err := p.WriteTo(bw); err != nil {
		_ = f.Close()
		return rbsp.WrapIO(err, "write partition %s", path)
	}
	if err := bw.WriteByte(0); err != nil {
		_ = f.Close()
		return rbsp.WrapIO(err, "write partition %s", path)
	}
	if err := bw.Flush(); err != nil {
		_ = f.Close()
		return rbsp.WrapIO(err, "flush partition %s", path)
	}
	return rbsp.WrapIO(f.Close(), "close partition %s", path)
}

// ParsePartitionTable returns the partition names listed in an
// ENTITY_PARTITIONS lump: a two byte ident, one byte whose meaning is not
// known (read and ignored), then a space separated list of names.
func ParsePartitionTable(data []byte) ([]string, error) {
	if len(data) < 3 {
		return nil, rbsp.FormatErrorf("entities: partition table is %d bytes, need at least 3", len(data))
	}
	if ident := binary.LittleEndian.Uint16(data); ident != PartitionTableIdent {
		return nil, rbsp.FormatErrorf("entities: unrecognized partition table ident %#04x, expected %#04x", ident, PartitionTableIdent)
	}
	list := string(data[3:])
	if i := strings.IndexByte(list, 0); i >= 0 {
		list = list[:i]
	}
	var names []string
	for _, name := range strings.Split(list, " ") {
		if name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}
