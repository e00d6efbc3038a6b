// Package binary is the compact binary backend.
//
// A document starts with the 4 byte magic "DTB1" followed by one record
// per token:
//
//	kind  byte     0 leaf, 1 block start, 2 block end
//	name  uvarint length + UTF-8 bytes
//	type  byte     leaves only
//	value          leaves only, see below
//
// Bool and Int8 take one byte. Int16, Int32 and Int64 are fixed width big
// endian, Float32 and Float64 their IEEE bits big endian, Char a 4 byte
// code point. String, Number and Bytes are a uvarint length followed by
// the raw bytes. Every value round trips exactly.
package binary

import (
	"github.com/teamworkguy2/datatransfer/stream"
)

const magic = "DTB1"

const (
	tagLeaf  byte = 0
	tagStart byte = 1
	tagEnd   byte = 2
)

// maxLen bounds names and variable length payloads.
const maxLen = 1 << 26

// Option configures a binary session.
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
	return append([]stream.Option{stream.WithLabel("binary"), stream.WithTransport(transport)}, o.stream...)
}
