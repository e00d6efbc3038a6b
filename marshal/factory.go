package marshal

import "github.com/teamworkguy2/datatransfer/stream"

// Factory encodes and decodes values of one type through the block
// protocol. Factories are stateless and safe to share.
type Factory[T any] interface {
	Encode(w stream.BlockWriter, v T) error
	Decode(r stream.BlockReader) (T, error)
}

// Reloader is implemented by factories that can decode into an existing
// value instead of constructing a new one.
type Reloader[T any] interface {
	Reload(r stream.BlockReader, dst T) error
}

// CanReload reports whether f supports Reload. A factory advertises reload
// support by implementing Reloader; it may withdraw it by also implementing
// CanReload() bool.
func CanReload[T any](f Factory[T]) bool {
	if a, ok := f.(interface{ CanReload() bool }); ok {
		return a.CanReload()
	}
	_, ok := f.(Reloader[T])
	return ok
}

// Reload decodes into dst using f. Factories that produce immutable values
// do not support it and Reload returns stream.ErrUnsupported.
func Reload[T any](f Factory[T], r stream.BlockReader, dst T) error {
	if !CanReload(f) {
		return unsupported("Reload", f)
	}
	return f.(Reloader[T]).Reload(r, dst)
}

// Funcs builds a Factory from functions. Reload is advertised only when
// ReloadFunc is set.
type Funcs[T any] struct {
	EncodeFunc func(w stream.BlockWriter, v T) error
	DecodeFunc func(r stream.BlockReader) (T, error)
	ReloadFunc func(r stream.BlockReader, dst T) error
}

func (f Funcs[T]) Encode(w stream.BlockWriter, v T) error {
	return f.EncodeFunc(w, v)
}

func (f Funcs[T]) Decode(r stream.BlockReader) (T, error) {
	return f.DecodeFunc(r)
}

func (f Funcs[T]) Reload(r stream.BlockReader, dst T) error {
	if f.ReloadFunc == nil {
		return unsupported("Reload", f)
	}
	return f.ReloadFunc(r, dst)
}

func (f Funcs[T]) CanReload() bool {
	return f.ReloadFunc != nil
}
