package marshal

import "github.com/teamworkguy2/datatransfer/stream"

// Marshaler is implemented by self-describing types that write themselves,
// usually as one block named after the type.
type Marshaler interface {
	MarshalBlock(w stream.BlockWriter) error
}

// Unmarshaler is implemented by self-describing types that read themselves
// back, replaying the calls made by MarshalBlock.
type Unmarshaler interface {
	UnmarshalBlock(r stream.BlockReader) error
}

// SelfPtr is the pointer type of a self-describing type T.
type SelfPtr[T any] interface {
	*T
	Marshaler
	Unmarshaler
}

// Self adapts a self-describing type into a Factory. Decode allocates a new
// T; Reload unmarshals into an existing one.
func Self[T any, PT SelfPtr[T]]() Factory[PT] {
	return selfFactory[T, PT]{}
}

type selfFactory[T any, PT SelfPtr[T]] struct{}

func (selfFactory[T, PT]) Encode(w stream.BlockWriter, v PT) error {
	return v.MarshalBlock(w)
}

func (selfFactory[T, PT]) Decode(r stream.BlockReader) (PT, error) {
	v := PT(new(T))
	if err := v.UnmarshalBlock(r); err != nil {
		var zero PT
		return zero, err
	}
	return v, nil
}

func (selfFactory[T, PT]) Reload(r stream.BlockReader, dst PT) error {
	return dst.UnmarshalBlock(r)
}
