// Package lightprobe converts light probe lumps between record layouts.
//
// Version 51 dropped the 4 byte pad that kept each record 16 byte aligned
// for SIMD loads. Records are addressed by index only, so converting is a
// matter of re-appending the pad.
package lightprobe

const (
	// RecordSizeV51 is the packed record size written by version 51 maps.
	RecordSizeV51 = 44
	// RecordSize is the canonical, padded record size.
	RecordSize = 48
)

// Expand converts a v51 light probe lump to canonical records. It also
// returns the number of trailing bytes that did not form a whole record and
// were dropped.
func Expand(data []byte) ([]byte, int) {
	n := len(data) / RecordSizeV51
	out := make([]byte, n*RecordSize)
	for i := range n {
		copy(out[i*RecordSize:], data[i*RecordSizeV51:(i+1)*RecordSizeV51])
	}
	return out, len(data) - n*RecordSizeV51
}
