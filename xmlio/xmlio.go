// Package xmlio is the XML backend.
//
// A document is wrapped in one root element. Inside it a block is an
// element holding child elements and a leaf is an element holding text:
//
//	<document>
//	  <person>
//	    <id>22</id>
//	    <cities>
//	      <_>City A</_>
//	    </cities>
//	    <nickname value=""></nickname>
//	  </person>
//	</document>
//
// Anonymous entries use the element name "_". An empty leaf carries its
// content in a value attribute so it cannot be mistaken for an empty
// block. Byte ranges are base64 text. Names must be XML names.
package xmlio

import (
	"unicode"
	"unicode/utf8"

	"github.com/teamworkguy2/datatransfer/stream"
)

const (
	anonymous   = "_"
	valueAttr   = "value"
	defaultRoot = "document"
)

// Option configures an XML session.
type Option func(*options)

type options struct {
	stream []stream.Option
	indent string
	root   string
}

// WithIndent sets the per level indentation of written documents. An
// empty indent writes everything on one line.
func WithIndent(indent string) Option {
	return func(o *options) {
		o.indent = indent
	}
}

// WithRoot sets the root element name of written documents. Readers
// accept any root name.
func WithRoot(name string) Option {
	return func(o *options) {
		o.root = name
	}
}

// WithStreamOptions passes options to the underlying stream session.
func WithStreamOptions(opts ...stream.Option) Option {
	return func(o *options) {
		o.stream = append(o.stream, opts...)
	}
}

func buildOpts(opts []Option) *options {
	o := &options{indent: "  ", root: defaultRoot}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *options) streamOpts(transport any) []stream.Option {
	return append([]stream.Option{stream.WithLabel("xml"), stream.WithTransport(transport)}, o.stream...)
}

func tag(name string) string {
	if name == "" {
		return anonymous
	}
	return name
}

func entryName(tag string) string {
	if tag == anonymous {
		return ""
	}
	return tag
}

// validName reports whether name can be written as an element name.
func validName(name string) bool {
	if name == "" || name == anonymous {
		return false
	}
	for i, r := range name {
		switch {
		case unicode.IsLetter(r) || r == '_':
		case i > 0 && (unicode.IsDigit(r) || r == '-' || r == '.'):
		default:
			return false
		}
	}
	return true
}

// validText reports whether every character of text is allowed in an XML
// document. Anything else would be replaced on write.
func validText(text string) bool {
	if !utf8.ValidString(text) {
		return false
	}
	for _, r := range text {
		switch {
		case r == '\t' || r == '\n' || r == '\r':
		case r >= 0x20 && r <= 0xD7FF:
		case r >= 0xE000 && r <= 0xFFFD:
		case r >= 0x10000 && r <= utf8.MaxRune:
		default:
			return false
		}
	}
	return true
}
