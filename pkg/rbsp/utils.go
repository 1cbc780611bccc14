package rbsp

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// LumpFileExt is the extension of unpacked lump files.
	LumpFileExt = "bsp_lump"
	// PartitionFileExt is the extension of standalone entity partitions.
	PartitionFileExt = "ent"
	// NewFileSuffix is appended to every file the converter produces.
	NewFileSuffix = ".new"
)

// LumpPath returns the unpacked lump file for lump index i of the container
// at bspPath, e.g. "mp_rr_box.bsp.0065.bsp_lump".
func LumpPath(bspPath string, i LumpType) string {
	return fmt.Sprintf("%s.%04x.%s", bspPath, int(i), LumpFileExt)
}

// PartitionPath returns the standalone entity partition file for name,
// e.g. "mp_rr_box_env.ent" for "mp_rr_box.bsp".
func PartitionPath(bspPath, name string) string {
	return fmt.Sprintf("%s_%s.%s", strings.TrimSuffix(bspPath, filepath.Ext(bspPath)), name, PartitionFileExt)
}

// NewPath returns the provisional output path for path.
func NewPath(path string) string {
	return path + NewFileSuffix
}

func writeFull(f *os.File, p []byte) error {
	for len(p) > 0 {
		n, err := f.Write(p)
		if err != nil {
			return err
		}
		p = p[n:]
	}
	return nil
}
