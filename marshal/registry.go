package marshal

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/teamworkguy2/datatransfer/stream"
)

// Registry maps entry names to factories so that heterogeneous content
// can be decoded by peeking at the next entry's name. Each registered
// factory must write exactly one entry under its registered name.
//
// A Registry is not safe for concurrent registration; register everything
// up front and then share it.
type Registry[T any] struct {
	byName map[string]Factory[T]
	byType map[reflect.Type]string
}

// NewRegistry creates an empty Registry.
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{
		byName: map[string]Factory[T]{},
		byType: map[reflect.Type]string{},
	}
}

// Register binds name to f. proto is a sample value whose dynamic type
// selects f when encoding.
func (reg *Registry[T]) Register(name string, proto T, f Factory[T]) error {
	if name == "" {
		return fmt.Errorf("register: empty name")
	}
	if _, ok := reg.byName[name]; ok {
		return fmt.Errorf("register: %q already registered", name)
	}
	t := reflect.TypeOf(proto)
	if prev, ok := reg.byType[t]; ok {
		return fmt.Errorf("register: type %v already registered as %q", t, prev)
	}
	reg.byName[name] = f
	reg.byType[t] = name
	return nil
}

// Names returns the registered names in sorted order.
func (reg *Registry[T]) Names() []string {
	res := make([]string, 0, len(reg.byName))
	for n := range reg.byName {
		res = append(res, n)
	}
	sort.Strings(res)
	return res
}

// Encode writes v with the factory registered for its dynamic type.
func (reg *Registry[T]) Encode(w stream.BlockWriter, v T) error {
	t := reflect.TypeOf(v)
	name, ok := reg.byType[t]
	if !ok {
		return fmt.Errorf("%w %v", ErrUnknownType, t)
	}
	g := newGuard(w, name)
	if err := reg.byName[name].Encode(g, v); err != nil {
		return err
	}
	return g.done()
}

// Decode peeks at the next entry and decodes it with the factory
// registered under its name.
func (reg *Registry[T]) Decode(r stream.BlockReader) (T, error) {
	var zero T
	e, err := r.PeekNext()
	if err != nil {
		return zero, err
	}
	if e.IsEnd() {
		return zero, fmt.Errorf("%w: found %s, want an entry", ErrElementShape, e)
	}
	f, ok := reg.byName[e.Name()]
	if !ok {
		return zero, fmt.Errorf("%w %q", ErrUnknownBlock, e.Name())
	}
	return f.Decode(r)
}

// WriteVariantList writes items as block, each entry named by the
// registry.
func WriteVariantList[T any](w stream.BlockWriter, block string, items []T, reg *Registry[T]) error {
	if err := w.WriteStartBlock(block); err != nil {
		return err
	}
	for i, v := range items {
		if err := reg.Encode(w, v); err != nil {
			return fmt.Errorf("%s[%d]: %w", block, i, err)
		}
	}
	return w.WriteEndBlock()
}

// ReadVariantList reads a block written by WriteVariantList.
func ReadVariantList[T any](r stream.BlockReader, block string, reg *Registry[T]) ([]T, error) {
	if err := r.ReadStartBlock(block); err != nil {
		return nil, err
	}
	res := []T{}
	for {
		e, err := r.PeekNext()
		if err != nil {
			return nil, err
		}
		if e.IsEnd() {
			if err := r.ReadEndBlock(); err != nil {
				return nil, err
			}
			return res, nil
		}
		before := depth(r)
		v, err := reg.Decode(r)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", block, len(res), err)
		}
		if after := depth(r); after != before {
			return nil, fmt.Errorf("%s[%d]: %w: decoder left depth %d, want %d", block, len(res), ErrElementShape, after, before)
		}
		res = append(res, v)
	}
}
