package stream

import "io"

// Option configures a Reader or Writer.
type Option func(*streamOpts)

type streamOpts struct {
	closer io.Closer // transport released by Close
	label  string    // session label in diagnostics
}

// WithTransport hands ownership of the transport to the session: if t is
// an io.Closer it is closed, exactly once, by Close.
func WithTransport(t any) Option {
	return func(opts *streamOpts) {
		if c, ok := t.(io.Closer); ok {
			opts.closer = c
		}
	}
}

// WithLabel names the session in debug output.
func WithLabel(label string) Option {
	return func(opts *streamOpts) {
		opts.label = label
	}
}

func buildOpts(opts []Option) *streamOpts {
	o := &streamOpts{label: "stream"}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
