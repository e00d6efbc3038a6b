// Package jsonio is the JSON backend.
//
// A document is one top level container. A block whose first entry is
// named is an object keyed by entry names; keys may repeat and keep their
// order. A block whose first entry is anonymous is an array, and named
// entries that follow inside it are wrapped in single key objects. An
// empty block is {}.
//
//	{
//	  "person": {
//	    "id": 22,
//	    "cities": ["City A", {"capital": "City 2"}]
//	  }
//	}
//
// Integers and finite floats are numbers. NaN, infinities and byte ranges
// (base64) are strings. Reading yields numbers as untyped stream.TypeNumber
// values and null as the empty string.
package jsonio

import (
	"github.com/teamworkguy2/datatransfer/stream"
)

// Option configures a JSON session.
type Option func(*options)

type options struct {
	stream []stream.Option
	indent string
}

// WithIndent sets the per level indentation of written documents. An
// empty indent writes compact JSON.
func WithIndent(indent string) Option {
	return func(o *options) {
		o.indent = indent
	}
}

// WithStreamOptions passes options to the underlying stream session.
func WithStreamOptions(opts ...stream.Option) Option {
	return func(o *options) {
		o.stream = append(o.stream, opts...)
	}
}

func buildOpts(opts []Option) *options {
	o := &options{indent: "  "}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *options) streamOpts(transport any) []stream.Option {
	return append([]stream.Option{stream.WithLabel("json"), stream.WithTransport(transport)}, o.stream...)
}
