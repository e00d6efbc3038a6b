package stream

import "io"

// Source produces the token sequence of one document. Next returns io.EOF
// once the document is exhausted. Backends report malformed input as
// ErrFormat errors; any other error is treated as a transport failure.
type Source interface {
	Next() (Element, error)
}

// Sink consumes the token sequence of one document. The Writer has
// already validated nesting and names before calling the Sink.
type Sink interface {
	WriteStart(name string) error
	WriteEnd(name string) error
	WriteLeaf(name string, v Value) error
	// Flush pushes buffered output to the transport.
	Flush() error
	// Finish terminates the document and flushes. It is called once, by
	// Writer.Close, and only for a balanced document.
	Finish() error
}

// BlockReader is the read side of the protocol, implemented by *Reader.
// Factories and self-describing types decode through it.
type BlockReader interface {
	ReadBool(name string) (bool, error)
	ReadInt8(name string) (int8, error)
	ReadChar(name string) (rune, error)
	ReadFloat64(name string) (float64, error)
	ReadFloat32(name string) (float32, error)
	ReadInt32(name string) (int32, error)
	ReadInt64(name string) (int64, error)
	ReadInt16(name string) (int16, error)
	ReadString(name string) (string, error)
	ReadBytes(name string) ([]byte, error)

	ReadStartBlock(name string) error
	ReadEndBlock() error
	PeekNext() (Element, error)
	ReadNext() (Element, error)
}

// BlockWriter is the write side of the protocol, implemented by *Writer.
type BlockWriter interface {
	WriteBool(name string, v bool) error
	WriteInt8(name string, v int8) error
	WriteChar(name string, v rune) error
	WriteFloat64(name string, v float64) error
	WriteFloat32(name string, v float32) error
	WriteInt32(name string, v int32) error
	WriteInt64(name string, v int64) error
	WriteInt16(name string, v int16) error
	WriteString(name string, v string) error
	WriteBytes(name string, v []byte) error
	WriteValue(name string, v Value) error

	WriteStartBlock(name string) error
	WriteEndBlock() error
}

var (
	_ BlockReader = (*Reader)(nil)
	_ BlockWriter = (*Writer)(nil)
)

// SliceSource replays a fixed list of elements.
type SliceSource struct {
	elems []Element
	i     int
}

// NewSliceSource creates a Source over elems.
func NewSliceSource(elems ...Element) *SliceSource {
	return &SliceSource{elems: elems}
}

// Next returns the next element, io.EOF after the last one.
func (s *SliceSource) Next() (Element, error) {
	if s.i >= len(s.elems) {
		return Element{}, io.EOF
	}
	e := s.elems[s.i]
	s.i++
	return e, nil
}

// Recorder is a Sink that keeps every element written to it.
type Recorder struct {
	Elements []Element
	Finished bool
}

func (r *Recorder) WriteStart(name string) error {
	r.Elements = append(r.Elements, Start(name))
	return nil
}

func (r *Recorder) WriteEnd(name string) error {
	r.Elements = append(r.Elements, End(name))
	return nil
}

func (r *Recorder) WriteLeaf(name string, v Value) error {
	r.Elements = append(r.Elements, Leaf(name, v))
	return nil
}

func (r *Recorder) Flush() error { return nil }

func (r *Recorder) Finish() error {
	r.Finished = true
	return nil
}

// Source returns a Source replaying the recorded elements.
func (r *Recorder) Source() *SliceSource {
	return NewSliceSource(r.Elements...)
}
