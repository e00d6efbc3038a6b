package msgpack

import (
	"bufio"
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
	"github.com/ugorji/go/codec"

	"github.com/teamworkguy2/datatransfer/stream"
)

// NewWriter creates a Writer producing msgpack records on w. If w is an
// io.Closer it is closed by the Writer's Close.
func NewWriter(w io.Writer, opts ...Option) *stream.Writer {
	return stream.NewWriter(newSink(w), buildOpts(opts, w)...)
}

type sink struct {
	w   *bufio.Writer
	enc *codec.Encoder
	buf []byte
	hdr [binary.MaxVarintLen64]byte
}

func newSink(w io.Writer) *sink {
	s := &sink{w: bufio.NewWriter(w)}
	s.enc = codec.NewEncoderBytes(&s.buf, newHandle())
	return s
}

func (s *sink) WriteStart(name string) error {
	return s.record(record{Kind: uint8(stream.KindStart), Name: name})
}

func (s *sink) WriteEnd(name string) error {
	return s.record(record{Kind: uint8(stream.KindEnd), Name: name})
}

func (s *sink) WriteLeaf(name string, v stream.Value) error {
	rec, err := leafRecord(name, v)
	if err != nil {
		return err
	}
	return s.record(rec)
}

func (s *sink) Flush() error {
	return s.w.Flush()
}

func (s *sink) Finish() error {
	return s.w.Flush()
}

// record encodes rec and writes it with its length prefix.
func (s *sink) record(rec record) error {
	s.buf = s.buf[:0]
	s.enc.ResetBytes(&s.buf)
	if err := s.enc.Encode(&rec); err != nil {
		return stream.FormatError("Encode", rec.Name, errors.Wrap(err, "msgpack: encode failed"), "cannot encode record")
	}
	n := binary.PutUvarint(s.hdr[:], uint64(len(s.buf)))
	if _, err := s.w.Write(s.hdr[:n]); err != nil {
		return errors.Wrap(err, "msgpack: write frame length")
	}
	if _, err := s.w.Write(s.buf); err != nil {
		return errors.Wrap(err, "msgpack: write frame")
	}
	return nil
}
