package yamlio

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/teamworkguy2/datatransfer/stream"
)

const indentStep = "    "

// NewWriter creates a Writer producing YAML on w. If w is an io.Closer it
// is closed by the Writer's Close.
func NewWriter(w io.Writer, opts ...Option) *stream.Writer {
	return stream.NewWriter(&sink{w: bufio.NewWriter(w), counts: []int{0}}, buildOpts(opts, w)...)
}

type sink struct {
	w       *bufio.Writer
	counts  []int // entries written per open container, root first
	written bool
}

// item starts the sequence item line of an entry called name.
func (s *sink) item(name string) {
	s.counts[len(s.counts)-1]++
	if s.written {
		s.w.WriteByte('\n')
	}
	s.written = true
	s.w.WriteString(strings.Repeat(indentStep, len(s.counts)-1))
	s.w.WriteString("- ")
	if name != "" {
		s.w.WriteString(strconv.Quote(name))
		s.w.WriteByte(':')
	}
}

func (s *sink) WriteStart(name string) error {
	if !utf8.ValidString(name) {
		return stream.FormatError("WriteStart", name, nil, "name is not valid UTF-8")
	}
	s.item(name)
	s.counts = append(s.counts, 0)
	return nil
}

func (s *sink) WriteEnd(string) error {
	n := s.counts[len(s.counts)-1]
	s.counts = s.counts[:len(s.counts)-1]
	if n == 0 {
		s.w.WriteString(" []")
	}
	return nil
}

func (s *sink) WriteLeaf(name string, v stream.Value) error {
	if !utf8.ValidString(name) {
		return stream.FormatError("WriteLeaf", name, nil, "name is not valid UTF-8")
	}
	if !utf8.ValidString(v.Text) {
		return stream.FormatError("WriteLeaf", name, nil, "%s value is not valid UTF-8", v.Type)
	}
	s.item(name)
	if name != "" {
		s.w.WriteByte(' ')
	}
	_, err := s.w.WriteString(scalar(v))
	return err
}

func (s *sink) Flush() error {
	return s.w.Flush()
}

func (s *sink) Finish() error {
	if !s.written {
		s.w.WriteString("[]")
	}
	s.w.WriteByte('\n')
	return s.w.Flush()
}

func scalar(v stream.Value) string {
	text := v.String()
	switch {
	case v.Type == stream.TypeBool && (text == "true" || text == "false"):
		return text
	case v.Type.IsNumeric() && isNumber(text):
		return text
	}
	return strconv.Quote(text)
}

// isNumber reports whether text is a decimal number that reads back as
// one. NaN, infinities and anything unusual are quoted.
func isNumber(text string) bool {
	if text == "" {
		return false
	}
	if c := text[0]; c != '-' && (c < '0' || c > '9') {
		return false
	}
	if strings.Trim(text, "0123456789+-.eE") != "" {
		return false
	}
	_, err := strconv.ParseFloat(text, 64)
	return err == nil
}
