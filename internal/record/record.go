// Package record defines the on-disk and on-wire encoding for log entries.
// A Record is one of two variants — a Set carrying a value, or a Rm carrying
// only a key — serialized as a self-delimiting text object so a sequence of
// concatenated records can be streamed back out of a segment file and the
// decoder can report the byte offset at which the next record begins.
package record

import (
	"bufio"
	"io"

	gojson "github.com/goccy/go-json"

	"github.com/ignitedb/ignite/pkg/errors"
)

// Cmd names the two record variants. The on-disk spelling intentionally
// matches the wire protocol's command_type vocabulary minus Get, which never
// produces a record.
type Cmd string

const (
	CmdSet Cmd = "Set"
	CmdRm  Cmd = "Rm"
)

// Record is the unit of the append-only log. Key is always populated; Value
// is populated for Set and empty for Rm.
type Record struct {
	Cmd   Cmd    `json:"cmd"`
	Key   string `json:"key"`
	Value string `json:"value,omitempty"`
}

// NewSet builds a Set record.
func NewSet(key, value string) Record {
	return Record{Cmd: CmdSet, Key: key, Value: value}
}

// NewRemove builds an Rm record.
func NewRemove(key string) Record {
	return Record{Cmd: CmdRm, Key: key}
}

// Encode appends the record's self-delimiting encoding to w. It returns the
// number of bytes written, which callers use to track the segment's new
// size without a separate stat call.
func Encode(w io.Writer, r Record) (int, error) {
	b, err := gojson.Marshal(r)
	if err != nil {
		return 0, errors.NewCodecError(err, errors.ErrorCodeCodec, "failed to encode record").
			WithSource("segment").WithDetail("cmd", string(r.Cmd)).WithDetail("key", r.Key)
	}
	n, err := w.Write(b)
	if err != nil {
		return n, errors.NewCodecError(err, errors.ErrorCodeIO, "failed to write encoded record").
			WithSource("segment").WithDetail("key", r.Key)
	}
	return n, nil
}

// Decoder streams records out of a reader, tracking the byte offset of the
// next record after every successful Decode call.
type Decoder struct {
	dec  *gojson.Decoder
	base int64 // offset, in the underlying file, that the wrapped reader starts at
}

// NewDecoder wraps r for streaming record decode. base is the byte offset in
// the underlying file that r starts reading from (zero for a fresh file
// opened at offset zero).
func NewDecoder(r io.Reader, base int64) *Decoder {
	return &Decoder{dec: gojson.NewDecoder(bufio.NewReader(r)), base: base}
}

// Decode reads the next record. It returns io.EOF once the stream is
// exhausted with no trailing partial object. Any other decode failure is
// fatal to the caller: a log or segment that cannot be fully replayed must
// not be silently truncated.
func (d *Decoder) Decode() (Record, error) {
	var r Record
	if err := d.dec.Decode(&r); err != nil {
		if err == io.EOF {
			return Record{}, io.EOF
		}
		return Record{}, errors.NewCodecError(err, errors.ErrorCodeCodec, "failed to decode record").
			WithSource("segment").WithOffset(d.Offset())
	}
	return r, nil
}

// Offset returns the absolute byte offset, in the underlying file, at which
// the next Decode call will begin reading.
func (d *Decoder) Offset() int64 {
	return d.base + d.dec.InputOffset()
}
