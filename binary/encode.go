package binary

import (
	"bufio"
	enc "encoding/binary"
	"io"
	"math"

	"github.com/teamworkguy2/datatransfer/stream"
)

// NewWriter creates a Writer producing the binary format on w. If w is an
// io.Closer it is closed by the Writer's Close.
func NewWriter(w io.Writer, opts ...Option) *stream.Writer {
	return stream.NewWriter(newSink(w), buildOpts(opts, w)...)
}

type sink struct {
	w       *bufio.Writer
	started bool
	scratch [enc.MaxVarintLen64]byte
}

func newSink(w io.Writer) *sink {
	return &sink{w: bufio.NewWriter(w)}
}

func (s *sink) header() error {
	if s.started {
		return nil
	}
	s.started = true
	_, err := s.w.WriteString(magic)
	return err
}

func (s *sink) WriteStart(name string) error {
	return s.marker(tagStart, name)
}

func (s *sink) WriteEnd(name string) error {
	return s.marker(tagEnd, name)
}

func (s *sink) marker(tag byte, name string) error {
	if err := s.header(); err != nil {
		return err
	}
	if err := s.w.WriteByte(tag); err != nil {
		return err
	}
	return s.str(name)
}

func (s *sink) WriteLeaf(name string, v stream.Value) error {
	if err := s.marker(tagLeaf, name); err != nil {
		return err
	}
	if err := s.w.WriteByte(byte(v.Type)); err != nil {
		return err
	}
	switch v.Type {
	case stream.TypeString, stream.TypeNumber:
		return s.str(v.Text)
	case stream.TypeBytes:
		b, err := v.Bytes()
		if err != nil {
			return badValue(name, v, err)
		}
		return s.raw(b)
	case stream.TypeBool:
		b, err := v.Bool()
		if err != nil {
			return badValue(name, v, err)
		}
		var c byte
		if b {
			c = 1
		}
		return s.w.WriteByte(c)
	case stream.TypeFloat32:
		f, err := v.Float(32)
		if err != nil {
			return badValue(name, v, err)
		}
		return s.fixed(uint64(math.Float32bits(float32(f))), 4)
	case stream.TypeFloat64:
		f, err := v.Float(64)
		if err != nil {
			return badValue(name, v, err)
		}
		return s.fixed(math.Float64bits(f), 8)
	case stream.TypeChar:
		c, err := v.Char()
		if err != nil {
			return badValue(name, v, err)
		}
		return s.fixed(uint64(uint32(c)), 4)
	}
	bits, size := intLayout(v.Type)
	i, err := v.Int(bits)
	if err != nil {
		return badValue(name, v, err)
	}
	return s.fixed(uint64(i), size)
}

func (s *sink) Flush() error {
	return s.w.Flush()
}

func (s *sink) Finish() error {
	if err := s.header(); err != nil {
		return err
	}
	return s.w.Flush()
}

func (s *sink) str(v string) error {
	n := enc.PutUvarint(s.scratch[:], uint64(len(v)))
	if _, err := s.w.Write(s.scratch[:n]); err != nil {
		return err
	}
	_, err := s.w.WriteString(v)
	return err
}

func (s *sink) raw(v []byte) error {
	n := enc.PutUvarint(s.scratch[:], uint64(len(v)))
	if _, err := s.w.Write(s.scratch[:n]); err != nil {
		return err
	}
	_, err := s.w.Write(v)
	return err
}

// fixed writes the low size bytes of u big endian.
func (s *sink) fixed(u uint64, size int) error {
	var b [8]byte
	enc.BigEndian.PutUint64(b[:], u)
	_, err := s.w.Write(b[8-size:])
	return err
}

// intLayout gives the parse width and encoded size of an integer type.
func intLayout(t stream.ValueType) (bits, size int) {
	switch t {
	case stream.TypeInt8:
		return 8, 1
	case stream.TypeInt16:
		return 16, 2
	case stream.TypeInt32:
		return 32, 4
	}
	return 64, 8
}

func badValue(name string, v stream.Value, err error) error {
	return stream.FormatError("WriteLeaf", name, err, "cannot encode %s content %q", v.Type, v.String())
}
