package binary

import (
	"bufio"
	enc "encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/teamworkguy2/datatransfer/stream"
)

// NewReader creates a Reader over the binary format read from r. If r is
// an io.Closer it is closed by the Reader's Close.
func NewReader(r io.Reader, opts ...Option) *stream.Reader {
	return stream.NewReader(newSource(r), buildOpts(opts, r)...)
}

type source struct {
	r      *bufio.Reader
	opened bool
	n      int // tokens read, for diagnostics
}

func newSource(r io.Reader) *source {
	return &source{r: bufio.NewReader(r)}
}

func (s *source) Next() (stream.Element, error) {
	if !s.opened {
		if err := s.open(); err != nil {
			return stream.Element{}, err
		}
	}
	tag, err := s.r.ReadByte()
	if err != nil {
		// a clean end is only possible between tokens
		return stream.Element{}, err
	}
	name, err := s.str()
	if err != nil {
		return stream.Element{}, s.truncated(err)
	}
	s.n++
	switch tag {
	case tagStart:
		return stream.Start(name), nil
	case tagEnd:
		return stream.End(name), nil
	case tagLeaf:
		v, err := s.value()
		if err != nil {
			return stream.Element{}, s.truncated(err)
		}
		return stream.Leaf(name, v), nil
	}
	return stream.Element{}, s.corrupt(nil, "unknown token tag %d", tag)
}

func (s *source) open() error {
	var hdr [len(magic)]byte
	if _, err := io.ReadFull(s.r, hdr[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return s.corrupt(io.ErrUnexpectedEOF, "missing header")
		}
		return err
	}
	if string(hdr[:]) != magic {
		return s.corrupt(nil, "bad header %q", hdr[:])
	}
	s.opened = true
	return nil
}

func (s *source) value() (stream.Value, error) {
	tb, err := s.r.ReadByte()
	if err != nil {
		return stream.Value{}, err
	}
	t := stream.ValueType(tb)
	switch t {
	case stream.TypeString:
		v, err := s.str()
		return stream.StringValue(v), err
	case stream.TypeNumber:
		v, err := s.str()
		return stream.NumberValue(v), err
	case stream.TypeBytes:
		b, err := s.raw()
		return stream.BytesValue(b), err
	case stream.TypeBool:
		c, err := s.r.ReadByte()
		if err != nil {
			return stream.Value{}, err
		}
		if c > 1 {
			return stream.Value{}, s.corrupt(nil, "bad bool byte %d", c)
		}
		return stream.BoolValue(c == 1), nil
	case stream.TypeInt8:
		c, err := s.r.ReadByte()
		return stream.Int8Value(int8(c)), err
	case stream.TypeInt16:
		u, err := s.fixed(2)
		return stream.Int16Value(int16(u)), err
	case stream.TypeInt32:
		u, err := s.fixed(4)
		return stream.Int32Value(int32(u)), err
	case stream.TypeInt64:
		u, err := s.fixed(8)
		return stream.Int64Value(int64(u)), err
	case stream.TypeFloat32:
		u, err := s.fixed(4)
		return stream.Float32Value(math.Float32frombits(uint32(u))), err
	case stream.TypeFloat64:
		u, err := s.fixed(8)
		return stream.Float64Value(math.Float64frombits(u)), err
	case stream.TypeChar:
		u, err := s.fixed(4)
		return stream.CharValue(rune(int32(u))), err
	}
	return stream.Value{}, s.corrupt(nil, "unknown value type %d", tb)
}

func (s *source) length() (int, error) {
	n, err := enc.ReadUvarint(s.r)
	if err != nil {
		return 0, err
	}
	if n > maxLen {
		return 0, s.corrupt(nil, "length %d exceeds limit", n)
	}
	return int(n), nil
}

func (s *source) str() (string, error) {
	b, err := s.raw()
	return string(b), err
}

func (s *source) raw() ([]byte, error) {
	n, err := s.length()
	if err != nil {
		return nil, err
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(s.r, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *source) fixed(size int) (uint64, error) {
	var b [8]byte
	if _, err := io.ReadFull(s.r, b[8-size:]); err != nil {
		return 0, err
	}
	return enc.BigEndian.Uint64(b[:]), nil
}

// truncated turns an end of input inside a token into a format error.
func (s *source) truncated(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return s.corrupt(io.ErrUnexpectedEOF, "truncated token")
	}
	return err
}

func (s *source) corrupt(cause error, format string, args ...any) error {
	return stream.FormatError("Next", "", cause, "token %d: %s", s.n, fmt.Sprintf(format, args...))
}
