package datatransfer

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/teamworkguy2/datatransfer/binary"
	"github.com/teamworkguy2/datatransfer/format"
	"github.com/teamworkguy2/datatransfer/jsonio"
	"github.com/teamworkguy2/datatransfer/marshal"
	"github.com/teamworkguy2/datatransfer/msgpack"
	"github.com/teamworkguy2/datatransfer/stream"
	"github.com/teamworkguy2/datatransfer/xmlio"
	"github.com/teamworkguy2/datatransfer/yamlio"
)

// Option configures sessions opened by this package. Options that do not
// apply to the chosen format are ignored.
type Option func(*options)

type options struct {
	indent  *string
	xmlRoot string
	stream  []stream.Option
}

// WithIndent sets the per level indentation of text formats. The empty
// string writes compact documents.
func WithIndent(indent string) Option {
	return func(o *options) {
		o.indent = &indent
	}
}

// WithXMLRoot sets the root element name of written XML documents.
func WithXMLRoot(name string) Option {
	return func(o *options) {
		o.xmlRoot = name
	}
}

// WithLabel names the session in debug logs.
func WithLabel(label string) Option {
	return func(o *options) {
		o.stream = append(o.stream, stream.WithLabel(label))
	}
}

func buildOpts(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// NewReader opens a Reader over r in format f.
func NewReader(f format.Format, r io.Reader, opts ...Option) (*stream.Reader, error) {
	o := buildOpts(opts)
	switch f {
	case format.BinaryFormat:
		return binary.NewReader(r, binary.WithStreamOptions(o.stream...)), nil
	case format.MsgPackFormat:
		return msgpack.NewReader(r, msgpack.WithStreamOptions(o.stream...)), nil
	case format.XMLFormat:
		return xmlio.NewReader(r, xmlio.WithStreamOptions(o.stream...)), nil
	case format.JSONFormat:
		return jsonio.NewReader(r, jsonio.WithStreamOptions(o.stream...)), nil
	case format.YAMLFormat:
		return yamlio.NewReader(r, yamlio.WithStreamOptions(o.stream...)), nil
	}
	return nil, fmt.Errorf("%w: %d", format.ErrBadFormat, int(f))
}

// NewWriter opens a Writer onto w in format f.
func NewWriter(f format.Format, w io.Writer, opts ...Option) (*stream.Writer, error) {
	o := buildOpts(opts)
	switch f {
	case format.BinaryFormat:
		return binary.NewWriter(w, binary.WithStreamOptions(o.stream...)), nil
	case format.MsgPackFormat:
		return msgpack.NewWriter(w, msgpack.WithStreamOptions(o.stream...)), nil
	case format.XMLFormat:
		xo := []xmlio.Option{xmlio.WithStreamOptions(o.stream...)}
		if o.indent != nil {
			xo = append(xo, xmlio.WithIndent(*o.indent))
		}
		if o.xmlRoot != "" {
			xo = append(xo, xmlio.WithRoot(o.xmlRoot))
		}
		return xmlio.NewWriter(w, xo...), nil
	case format.JSONFormat:
		jo := []jsonio.Option{jsonio.WithStreamOptions(o.stream...)}
		if o.indent != nil {
			jo = append(jo, jsonio.WithIndent(*o.indent))
		}
		return jsonio.NewWriter(w, jo...), nil
	case format.YAMLFormat:
		return yamlio.NewWriter(w, yamlio.WithStreamOptions(o.stream...)), nil
	}
	return nil, fmt.Errorf("%w: %d", format.ErrBadFormat, int(f))
}

// Open opens the file at path for reading, choosing the format from its
// extension. Closing the Reader closes the file.
func Open(path string, opts ...Option) (*stream.Reader, error) {
	f, err := format.FromPath(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	r, err := NewReader(f, file, append([]Option{WithLabel(path)}, opts...)...)
	if err != nil {
		file.Close()
		return nil, err
	}
	return r, nil
}

// Create creates or truncates the file at path for writing, choosing the
// format from its extension. Closing the Writer finishes the document and
// closes the file.
func Create(path string, opts ...Option) (*stream.Writer, error) {
	f, err := format.FromPath(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	w, err := NewWriter(f, file, append([]Option{WithLabel(path)}, opts...)...)
	if err != nil {
		file.Close()
		return nil, err
	}
	return w, nil
}

// Marshal encodes v as a complete document in format f.
func Marshal(f format.Format, v marshal.Marshaler, opts ...Option) ([]byte, error) {
	var buf bytes.Buffer
	w, err := NewWriter(f, &buf, opts...)
	if err != nil {
		return nil, err
	}
	if err := v.MarshalBlock(w); err != nil {
		w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes the document data in format f into v. The document
// must hold nothing after v.
func Unmarshal(f format.Format, data []byte, v marshal.Unmarshaler, opts ...Option) error {
	r, err := NewReader(f, bytes.NewReader(data), opts...)
	if err != nil {
		return err
	}
	defer r.Close()
	return decodeAll(r, v.UnmarshalBlock)
}

// Save writes v to the file at path using factory fac.
func Save[T any](path string, v T, fac marshal.Factory[T], opts ...Option) error {
	w, err := Create(path, opts...)
	if err != nil {
		return err
	}
	if err := fac.Encode(w, v); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

// Load reads a value from the file at path using factory fac.
func Load[T any](path string, fac marshal.Factory[T], opts ...Option) (T, error) {
	var v T
	r, err := Open(path, opts...)
	if err != nil {
		return v, err
	}
	defer r.Close()
	err = decodeAll(r, func(r stream.BlockReader) error {
		var err error
		v, err = fac.Decode(r)
		return err
	})
	return v, err
}

func decodeAll(r *stream.Reader, decode func(stream.BlockReader) error) error {
	if err := decode(r); err != nil {
		return err
	}
	e, err := r.PeekNext()
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return err
	}
	return stream.StructureError("Unmarshal", e.Name(), "trailing %s after value", e.Kind())
}
