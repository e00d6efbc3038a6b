// Package msgpack is the MessagePack backend. Every token is one msgpack
// array
//
//	[kind, name, type, text, data]
//
// prefixed by its length as a uvarint, so a reader can tell a clean end of
// document from a truncated record. Leaves keep their value type, so
// documents round trip exactly.
package msgpack

import (
	"github.com/ugorji/go/codec"

	"github.com/teamworkguy2/datatransfer/stream"
)

// record is the wire form of one token.
type record struct {
	_struct struct{} `codec:",toarray"`

	Kind uint8
	Name string
	Type uint8
	Text string
	Data []byte
}

func newHandle() *codec.MsgpackHandle {
	h := &codec.MsgpackHandle{}
	h.WriteExt = true // bin format for byte ranges
	return h
}

func leafRecord(name string, v stream.Value) (record, error) {
	rec := record{Kind: uint8(stream.KindLeaf), Name: name, Type: uint8(v.Type)}
	if v.Type != stream.TypeBytes {
		rec.Text = v.Text
		return rec, nil
	}
	b, err := v.Bytes()
	if err != nil {
		return rec, stream.FormatError("WriteLeaf", name, err, "cannot encode bytes content %q", v.Text)
	}
	rec.Data = b
	return rec, nil
}

func (rec record) element() (stream.Element, bool) {
	switch stream.Kind(rec.Kind) {
	case stream.KindStart:
		return stream.Start(rec.Name), true
	case stream.KindEnd:
		return stream.End(rec.Name), true
	case stream.KindLeaf:
	default:
		return stream.Element{}, false
	}
	t := stream.ValueType(rec.Type)
	switch {
	case !t.Valid():
		return stream.Element{}, false
	case t == stream.TypeBytes:
		return stream.Leaf(rec.Name, stream.BytesValue(rec.Data)), true
	}
	return stream.Leaf(rec.Name, stream.Value{Type: t, Text: rec.Text}), true
}

// maxRecord bounds a single framed record.
const maxRecord = 1 << 26

// Option configures a msgpack session.
type Option func(*options)

type options struct {
	stream []stream.Option
}

// WithStreamOptions passes options to the underlying stream session.
func WithStreamOptions(opts ...stream.Option) Option {
	return func(o *options) {
		o.stream = append(o.stream, opts...)
	}
}

func buildOpts(opts []Option, transport any) []stream.Option {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return append([]stream.Option{stream.WithLabel("msgpack"), stream.WithTransport(transport)}, o.stream...)
}
