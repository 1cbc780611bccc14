package entities

import (
	"fmt"
	"io"
	"strings"
)

// Serialize renders p in the partition text format, reproducing the header
// form that was parsed.
func (p *Partition) Serialize() string {
	var b strings.Builder
	_, _ = p.WriteTo(&b)
	return b.String()
}

// WriteTo writes the serialized partition to w.
func (p *Partition) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	switch p.Header.Form {
	case HeaderEntities:
		fmt.Fprintf(cw, "%s%02d\n", headerPrefix, p.Header.Entities)
	case HeaderEntitiesModels:
		fmt.Fprintf(cw, "%s%02d %s%d\n", headerPrefix, p.Header.Entities, modelsPrefix, p.Header.Models)
	}
	for i := range p.Objects {
		io.WriteString(cw, "{\n")
		for _, f := range p.Objects[i].Fields {
			fmt.Fprintf(cw, "\"%s\" \"%s\"\n", f.Key, f.Value)
		}
		io.WriteString(cw, "}\n")
	}
	return cw.n, cw.err
}

// countingWriter tracks bytes written and latches the first error.
type countingWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (c *countingWriter) Write(p []byte) (int, error) {
	if c.err != nil {
		return 0, c.err
	}
	n, err := c.w.Write(p)
	c.n += int64(n)
	c.err = err
	return n, err
}
