package xmlio

import (
	"encoding/xml"
	"io"

	"github.com/teamworkguy2/datatransfer/stream"
)

// NewWriter creates a Writer producing XML on w. If w is an io.Closer it
// is closed by the Writer's Close.
func NewWriter(w io.Writer, opts ...Option) *stream.Writer {
	o := buildOpts(opts)
	return stream.NewWriter(newSink(w, o), o.streamOpts(w)...)
}

type sink struct {
	enc     *xml.Encoder
	root    string
	started bool
}

func newSink(w io.Writer, o *options) *sink {
	enc := xml.NewEncoder(w)
	if o.indent != "" {
		enc.Indent("", o.indent)
	}
	return &sink{enc: enc, root: o.root}
}

func (s *sink) open() error {
	if s.started {
		return nil
	}
	s.started = true
	return s.enc.EncodeToken(xml.StartElement{Name: xml.Name{Local: s.root}})
}

func (s *sink) WriteStart(name string) error {
	if !validName(name) {
		return stream.FormatError("WriteStart", name, nil, "not an XML element name")
	}
	if err := s.open(); err != nil {
		return err
	}
	return s.enc.EncodeToken(xml.StartElement{Name: xml.Name{Local: name}})
}

func (s *sink) WriteEnd(name string) error {
	return s.enc.EncodeToken(xml.EndElement{Name: xml.Name{Local: name}})
}

func (s *sink) WriteLeaf(name string, v stream.Value) error {
	if name != "" && !validName(name) {
		return stream.FormatError("WriteLeaf", name, nil, "not an XML element name")
	}
	text := v.String()
	if !validText(text) {
		return stream.FormatError("WriteLeaf", name, nil, "%s value %q has characters XML cannot carry", v.Type, text)
	}
	if err := s.open(); err != nil {
		return err
	}
	el := xml.StartElement{Name: xml.Name{Local: tag(name)}}
	if text == "" {
		el.Attr = []xml.Attr{{Name: xml.Name{Local: valueAttr}, Value: ""}}
	}
	if err := s.enc.EncodeToken(el); err != nil {
		return err
	}
	if text != "" {
		if err := s.enc.EncodeToken(xml.CharData(text)); err != nil {
			return err
		}
	}
	return s.enc.EncodeToken(el.End())
}

func (s *sink) Flush() error {
	return s.enc.Flush()
}

func (s *sink) Finish() error {
	if err := s.open(); err != nil {
		return err
	}
	if err := s.enc.EncodeToken(xml.EndElement{Name: xml.Name{Local: s.root}}); err != nil {
		return err
	}
	return s.enc.Flush()
}
