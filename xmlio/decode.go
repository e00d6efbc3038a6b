package xmlio

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"github.com/teamworkguy2/datatransfer/stream"
)

// NewReader creates a Reader over the XML document read from r. If r is
// an io.Closer it is closed by the Reader's Close.
func NewReader(r io.Reader, opts ...Option) *stream.Reader {
	o := buildOpts(opts)
	return stream.NewReader(newSource(r), o.streamOpts(r)...)
}

type source struct {
	dec      *xml.Decoder
	back     xml.Token // one token of pushback
	queue    []stream.Element
	open     []string // open block tags below the root
	rootSeen bool
	done     bool
}

func newSource(r io.Reader) *source {
	return &source{dec: xml.NewDecoder(r)}
}

func (s *source) Next() (stream.Element, error) {
	if len(s.queue) > 0 {
		e := s.queue[0]
		s.queue = s.queue[1:]
		return e, nil
	}
	for {
		tok, err := s.token()
		if err == io.EOF {
			if !s.rootSeen {
				return stream.Element{}, malformed(io.ErrUnexpectedEOF, "no root element")
			}
			return stream.Element{}, io.EOF
		}
		if err != nil {
			return stream.Element{}, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch {
			case s.done:
				return stream.Element{}, malformed(nil, "content after the root element")
			case !s.rootSeen:
				s.rootSeen = true
				continue
			}
			return s.element(t)
		case xml.EndElement:
			if len(s.open) == 0 {
				s.done = true
				continue
			}
			s.open = s.open[:len(s.open)-1]
			return stream.End(entryName(t.Name.Local)), nil
		case xml.CharData:
			if len(strings.TrimSpace(string(t))) != 0 {
				return stream.Element{}, malformed(nil, "text %q outside a leaf", string(t))
			}
		}
	}
}

// element classifies the element just started. Text followed by the end
// tag is a leaf; child elements or no content at all make a block. The
// anonymous element can only be a leaf.
func (s *source) element(start xml.StartElement) (stream.Element, error) {
	name := entryName(start.Name.Local)
	for _, a := range start.Attr {
		if a.Name.Local == valueAttr {
			return s.attrLeaf(name, a.Value)
		}
	}
	var text strings.Builder
	sawText := false
	for {
		tok, err := s.token()
		if err != nil {
			return stream.Element{}, unexpectedEOF(err)
		}
		switch t := tok.(type) {
		case xml.CharData:
			sawText = true
			text.Write(t)
		case xml.EndElement:
			if sawText {
				return stream.Leaf(name, stream.StringValue(text.String())), nil
			}
			if name == "" {
				return stream.Element{}, malformed(nil, "anonymous element %q without a value", anonymous)
			}
			s.queue = append(s.queue, stream.End(name))
			return stream.Start(name), nil
		case xml.StartElement:
			if strings.TrimSpace(text.String()) != "" {
				return stream.Element{}, malformed(nil, "element %q mixes text and elements", start.Name.Local)
			}
			if name == "" {
				return stream.Element{}, malformed(nil, "anonymous element %q has child elements", anonymous)
			}
			s.back = t
			s.open = append(s.open, name)
			return stream.Start(name), nil
		}
	}
}

func (s *source) attrLeaf(name, value string) (stream.Element, error) {
	for {
		tok, err := s.token()
		if err != nil {
			return stream.Element{}, unexpectedEOF(err)
		}
		switch t := tok.(type) {
		case xml.EndElement:
			return stream.Leaf(name, stream.StringValue(value)), nil
		case xml.CharData:
			if strings.TrimSpace(string(t)) != "" {
				return stream.Element{}, malformed(nil, "leaf %q has both a value attribute and text", name)
			}
		case xml.StartElement:
			return stream.Element{}, malformed(nil, "leaf %q has child elements", name)
		}
	}
}

// token returns the pushed back token or the next significant token from
// the decoder. Comments, processing instructions and directives are
// dropped.
func (s *source) token() (xml.Token, error) {
	if s.back != nil {
		t := s.back
		s.back = nil
		return t, nil
	}
	for {
		tok, err := s.dec.Token()
		if err != nil {
			var se *xml.SyntaxError
			if errors.As(err, &se) {
				return nil, malformed(se, "line %d", se.Line)
			}
			return nil, err
		}
		switch tok.(type) {
		case xml.Comment, xml.ProcInst, xml.Directive:
			continue
		}
		return xml.CopyToken(tok), nil
	}
}

func unexpectedEOF(err error) error {
	if err == io.EOF {
		return malformed(io.ErrUnexpectedEOF, "document ends inside an element")
	}
	return err
}

func malformed(cause error, format string, args ...any) error {
	return stream.FormatError("Next", "", cause, format, args...)
}
