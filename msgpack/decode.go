package msgpack

import (
	"bufio"
	"encoding/binary"
	stderrors "errors"
	"io"

	"github.com/pkg/errors"
	"github.com/ugorji/go/codec"

	"github.com/teamworkguy2/datatransfer/stream"
)

// NewReader creates a Reader over msgpack records read from r. If r is an
// io.Closer it is closed by the Reader's Close.
func NewReader(r io.Reader, opts ...Option) *stream.Reader {
	return stream.NewReader(newSource(r), buildOpts(opts, r)...)
}

type source struct {
	r   *bufio.Reader
	dec *codec.Decoder
	buf []byte
	n   int
}

func newSource(r io.Reader) *source {
	return &source{
		r:   bufio.NewReader(r),
		dec: codec.NewDecoderBytes(nil, newHandle()),
	}
}

func (s *source) Next() (stream.Element, error) {
	size, err := binary.ReadUvarint(s.r)
	if err == io.EOF {
		return stream.Element{}, io.EOF
	}
	if err != nil {
		return stream.Element{}, s.frameErr(err)
	}
	if size > maxRecord {
		return stream.Element{}, stream.FormatError("Next", "", nil, "record %d: length %d exceeds limit", s.n, size)
	}
	if cap(s.buf) < int(size) {
		s.buf = make([]byte, size)
	}
	s.buf = s.buf[:size]
	if _, err := io.ReadFull(s.r, s.buf); err != nil {
		return stream.Element{}, s.frameErr(err)
	}

	var rec record
	s.dec.ResetBytes(s.buf)
	if err := s.dec.Decode(&rec); err != nil {
		return stream.Element{}, stream.FormatError("Next", "", errors.Wrapf(err, "msgpack: record %d", s.n), "cannot decode record")
	}
	e, ok := rec.element()
	if !ok {
		return stream.Element{}, stream.FormatError("Next", rec.Name, nil, "record %d: bad kind %d or type %d", s.n, rec.Kind, rec.Type)
	}
	s.n++
	return e, nil
}

// frameErr reports input ending inside a frame as malformed; other read
// errors are transport failures.
func (s *source) frameErr(err error) error {
	if stderrors.Is(err, io.EOF) || stderrors.Is(err, io.ErrUnexpectedEOF) {
		return stream.FormatError("Next", "", io.ErrUnexpectedEOF, "record %d: truncated", s.n)
	}
	return errors.Wrapf(err, "msgpack: read record %d", s.n)
}
