package jsonio

import (
	"io"

	"github.com/segmentio/encoding/json"

	"github.com/teamworkguy2/datatransfer/stream"
)

// NewReader creates a Reader over the JSON document read from r. The
// document is read in full on the first token request. If r is an
// io.Closer it is closed by the Reader's Close.
func NewReader(r io.Reader, opts ...Option) *stream.Reader {
	o := buildOpts(opts)
	return stream.NewReader(&source{r: r}, o.streamOpts(r)...)
}

type rframe struct {
	array   bool
	name    string
	wrapper bool // single key object wrapping a named array entry
	used    bool // wrapper key seen
}

type source struct {
	r      io.Reader
	tok    *json.Tokenizer
	frames []rframe
	done   bool
}

func (s *source) Next() (stream.Element, error) {
	if s.tok == nil {
		if err := s.open(); err != nil {
			return stream.Element{}, err
		}
	}
	for {
		if s.done {
			if s.next() {
				return stream.Element{}, malformed(nil, "content after the document")
			}
			return stream.Element{}, s.end()
		}
		if !s.next() {
			if err := s.end(); err != io.EOF {
				return stream.Element{}, err
			}
			return stream.Element{}, malformed(io.ErrUnexpectedEOF, "document ends inside %q", s.top().name)
		}
		f := s.top()
		switch {
		case f.wrapper && s.tok.IsKey:
			if f.used {
				return stream.Element{}, malformed(nil, "named array entry with more than one key")
			}
			f.used = true
			return s.keyed()
		case f.wrapper && s.tok.Delim == '}':
			if !f.used {
				return stream.Element{}, malformed(nil, "empty object in array")
			}
			s.pop()
		case s.tok.Delim == '}' || s.tok.Delim == ']':
			if (s.tok.Delim == ']') != f.array {
				return stream.Element{}, malformed(nil, "mismatched %s", s.tok.Value)
			}
			closed := s.pop()
			if len(s.frames) == 0 {
				s.done = true
				continue
			}
			return stream.End(closed.name), nil
		case s.tok.IsKey:
			return s.keyed()
		case f.array:
			if s.tok.Delim == '{' {
				s.frames = append(s.frames, rframe{wrapper: true})
				continue
			}
			if s.tok.Delim != 0 {
				return stream.Element{}, malformed(nil, "anonymous nested array")
			}
			v, err := s.scalar()
			if err != nil {
				return stream.Element{}, err
			}
			return stream.Leaf("", v), nil
		default:
			return stream.Element{}, malformed(nil, "unexpected %s in object", s.tok.Value)
		}
	}
}

func (s *source) open() error {
	b, err := io.ReadAll(s.r)
	if err != nil {
		return err
	}
	s.tok = json.NewTokenizer(b)
	if !s.next() {
		if err := s.end(); err != io.EOF {
			return err
		}
		return malformed(io.ErrUnexpectedEOF, "empty document")
	}
	switch s.tok.Delim {
	case '{':
		s.frames = append(s.frames, rframe{})
	case '[':
		s.frames = append(s.frames, rframe{array: true})
	default:
		return malformed(nil, "document is not an object or array")
	}
	return nil
}

// keyed reads the value following the current key.
func (s *source) keyed() (stream.Element, error) {
	var name string
	if err := json.Unmarshal(s.tok.Value, &name); err != nil {
		return stream.Element{}, malformed(err, "bad key %s", s.tok.Value)
	}
	if !s.next() {
		return stream.Element{}, malformed(io.ErrUnexpectedEOF, "key %q has no value", name)
	}
	switch s.tok.Delim {
	case '{':
		s.frames = append(s.frames, rframe{name: name})
		return stream.Start(name), nil
	case '[':
		s.frames = append(s.frames, rframe{name: name, array: true})
		return stream.Start(name), nil
	case 0:
	default:
		return stream.Element{}, malformed(nil, "unexpected %s after key %q", s.tok.Value, name)
	}
	v, err := s.scalar()
	if err != nil {
		return stream.Element{}, err
	}
	return stream.Leaf(name, v), nil
}

func (s *source) scalar() (stream.Value, error) {
	raw := s.tok.Value
	switch raw[0] {
	case '"':
		var str string
		if err := json.Unmarshal(raw, &str); err != nil {
			return stream.Value{}, malformed(err, "bad string %s", raw)
		}
		return stream.StringValue(str), nil
	case 't', 'f':
		return stream.Value{Type: stream.TypeBool, Text: string(raw)}, nil
	case 'n':
		return stream.StringValue(""), nil
	}
	return stream.NumberValue(string(raw)), nil
}

// next advances to the next token that is not a ':' or ',' delimiter.
func (s *source) next() bool {
	for s.tok.Next() {
		if s.tok.Delim != ':' && s.tok.Delim != ',' {
			return true
		}
	}
	return false
}

// end reports why the tokenizer stopped: io.EOF or a syntax error.
func (s *source) end() error {
	if s.tok.Err != nil {
		return malformed(s.tok.Err, "syntax error")
	}
	return io.EOF
}

func (s *source) top() *rframe {
	if len(s.frames) == 0 {
		return &rframe{}
	}
	return &s.frames[len(s.frames)-1]
}

func (s *source) pop() rframe {
	f := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]
	return f
}

func malformed(cause error, format string, args ...any) error {
	return stream.FormatError("Next", "", cause, format, args...)
}
