package jsonio

import (
	"bufio"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/segmentio/encoding/json"

	"github.com/teamworkguy2/datatransfer/stream"
)

// NewWriter creates a Writer producing JSON on w. If w is an io.Closer it
// is closed by the Writer's Close.
func NewWriter(w io.Writer, opts ...Option) *stream.Writer {
	o := buildOpts(opts)
	return stream.NewWriter(newSink(w, o.indent), o.streamOpts(w)...)
}

type container uint8

const (
	undecided container = iota
	object
	array
)

type frame struct {
	kind    container
	n       int  // entries written
	wrapped bool // a named entry of an array, closed with an extra }
}

type sink struct {
	w      *bufio.Writer
	indent string
	frames []frame
	buf    []byte
}

func newSink(w io.Writer, indent string) *sink {
	return &sink{
		w:      bufio.NewWriter(w),
		indent: indent,
		frames: []frame{{}},
	}
}

func (s *sink) top() *frame {
	return &s.frames[len(s.frames)-1]
}

// entry writes what precedes an entry called name in the current
// container and reports whether the entry is wrapped.
func (s *sink) entry(op, name string) (bool, error) {
	if !utf8.ValidString(name) {
		return false, stream.FormatError(op, name, nil, "name is not valid UTF-8")
	}
	f := s.top()
	if f.kind == undecided {
		if name == "" {
			f.kind = array
			s.w.WriteByte('[')
		} else {
			f.kind = object
			s.w.WriteByte('{')
		}
	}
	if f.kind == object && name == "" {
		return false, stream.FormatError(op, name, nil, "anonymous entry after named entries")
	}
	if f.n > 0 {
		s.w.WriteByte(',')
	}
	f.n++
	s.newline(len(s.frames))
	if name == "" {
		return false, nil
	}
	wrapped := f.kind == array
	if wrapped {
		s.w.WriteByte('{')
	}
	if err := s.str(name); err != nil {
		return false, err
	}
	s.w.WriteByte(':')
	if s.indent != "" {
		s.w.WriteByte(' ')
	}
	return wrapped, nil
}

func (s *sink) WriteStart(name string) error {
	wrapped, err := s.entry("WriteStart", name)
	if err != nil {
		return err
	}
	s.frames = append(s.frames, frame{wrapped: wrapped})
	return nil
}

func (s *sink) WriteEnd(string) error {
	f := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]
	s.close(f, len(s.frames))
	if f.wrapped {
		s.w.WriteByte('}')
	}
	return nil
}

func (s *sink) WriteLeaf(name string, v stream.Value) error {
	if !utf8.ValidString(v.Text) {
		return stream.FormatError("WriteLeaf", name, nil, "%s value is not valid UTF-8", v.Type)
	}
	wrapped, err := s.entry("WriteLeaf", name)
	if err != nil {
		return err
	}
	if err := s.value(v); err != nil {
		return err
	}
	if wrapped {
		s.w.WriteByte('}')
	}
	return nil
}

func (s *sink) Flush() error {
	return s.w.Flush()
}

func (s *sink) Finish() error {
	s.close(s.frames[0], 0)
	s.w.WriteByte('\n')
	return s.w.Flush()
}

func (s *sink) close(f frame, depth int) {
	switch f.kind {
	case undecided:
		s.w.WriteString("{}")
	case object:
		s.newline(depth)
		s.w.WriteByte('}')
	case array:
		s.newline(depth)
		s.w.WriteByte(']')
	}
}

func (s *sink) newline(depth int) {
	if s.indent == "" {
		return
	}
	s.w.WriteByte('\n')
	s.w.WriteString(strings.Repeat(s.indent, depth))
}

func (s *sink) value(v stream.Value) error {
	text := v.String()
	switch {
	case v.Type == stream.TypeBool && (text == "true" || text == "false"):
		_, err := s.w.WriteString(text)
		return err
	case v.Type.IsNumeric() && isNumber(text):
		_, err := s.w.WriteString(text)
		return err
	}
	return s.str(text)
}

func (s *sink) str(text string) error {
	var err error
	s.buf, err = json.Append(s.buf[:0], text, 0)
	if err != nil {
		return stream.FormatError("WriteLeaf", "", err, "cannot encode string")
	}
	_, err = s.w.Write(s.buf)
	return err
}

// isNumber reports whether text is a JSON number. Text such as NaN, Inf
// or hexadecimal from other formats is written as a string instead.
func isNumber(text string) bool {
	if text == "" {
		return false
	}
	if c := text[0]; c != '-' && (c < '0' || c > '9') {
		return false
	}
	return json.Valid([]byte(text))
}
