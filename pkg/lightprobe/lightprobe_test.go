package lightprobe

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExpandPadsEveryRecord(t *testing.T) {
	t.Parallel()

	const n = 5
	in := make([]byte, n*RecordSizeV51)
	for i := range in {
		in[i] = byte(i%251) + 1
	}

	out, dropped := Expand(in)
	require.Zero(t, dropped)
	require.Len(t, out, n*RecordSize)
	for i := range n {
		rec := out[i*RecordSize : (i+1)*RecordSize]
		require.Equal(t, in[i*RecordSizeV51:(i+1)*RecordSizeV51], rec[:RecordSizeV51], "record %d", i)
		require.Equal(t, []byte{0, 0, 0, 0}, rec[RecordSizeV51:], "record %d pad", i)
	}
}

func TestExpandDropsPartialRecord(t *testing.T) {
	t.Parallel()

	out, dropped := Expand(make([]byte, 2*RecordSizeV51+7))
	require.Equal(t, 7, dropped)
	require.Len(t, out, 2*RecordSize)

	out, dropped = Expand(nil)
	require.Zero(t, dropped)
	require.Empty(t, out)
}
