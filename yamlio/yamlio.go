// Package yamlio is the YAML backend.
//
// Every container is a block sequence. A named entry is a single key
// mapping, an anonymous entry a bare scalar, and an empty block the flow
// sequence []:
//
//	- "person":
//	    - "id": 22
//	    - "cities":
//	        - "City A"
//	    - "tags": []
//
// Strings and keys are always double quoted; numbers and booleans are
// plain. Readers also accept plain mappings, whose keys become named
// entries in document order.
package yamlio

import (
	"github.com/teamworkguy2/datatransfer/stream"
)

// Option configures a YAML session.
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
	return append([]stream.Option{stream.WithLabel("yaml"), stream.WithTransport(transport)}, o.stream...)
}
