package record

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	var buf bytes.Buffer

	records := []Record{
		NewSet("foo", "bar"),
		NewSet("k", "1"),
		NewRemove("k"),
	}

	var offsets []int64
	for _, r := range records {
		offsets = append(offsets, int64(buf.Len()))
		_, err := Encode(&buf, r)
		require.NoError(t, err)
	}

	dec := NewDecoder(&buf, 0)
	for i, want := range records {
		require.Equal(t, offsets[i], dec.Offset())
		got, err := dec.Decode()
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	_, err := dec.Decode()
	require.ErrorIs(t, err, io.EOF)
}

func TestDecoderOffsetWithBase(t *testing.T) {
	var buf bytes.Buffer
	n, err := Encode(&buf, NewSet("a", "1"))
	require.NoError(t, err)

	const base = int64(1000)
	dec := NewDecoder(&buf, base)
	require.Equal(t, base, dec.Offset())

	_, err = dec.Decode()
	require.NoError(t, err)
	require.Equal(t, base+int64(n), dec.Offset())
}
