package marshal

import (
	"fmt"

	"github.com/teamworkguy2/datatransfer/debug"
	"github.com/teamworkguy2/datatransfer/stream"
)

// WriteList writes items as block, one entry per item encoded by f. Every
// entry must be named elem ("" for anonymous entries).
func WriteList[T any](w stream.BlockWriter, block, elem string, items []T, f Factory[T]) error {
	if err := w.WriteStartBlock(block); err != nil {
		return err
	}
	for i, v := range items {
		g := newGuard(w, elem)
		if err := f.Encode(g, v); err != nil {
			return fmt.Errorf("%s[%d]: %w", block, i, err)
		}
		if err := g.done(); err != nil {
			return fmt.Errorf("%s[%d]: %w", block, i, err)
		}
	}
	return w.WriteEndBlock()
}

// ReadList reads a block written by WriteList. The block has no count:
// the next token is peeked before each element and the loop ends at the
// block's end. Element order is preserved.
func ReadList[T any](r stream.BlockReader, block, elem string, f Factory[T]) ([]T, error) {
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
			if debug.Collect() {
				debug.Logf("read %d elements from %q\n", len(res), block)
			}
			return res, nil
		}
		if e.Name() != elem {
			return nil, fmt.Errorf("%s[%d]: %w: expected %q, found %q", block, len(res), ErrElementName, elem, e.Name())
		}
		before := depth(r)
		v, err := f.Decode(r)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", block, len(res), err)
		}
		if after := depth(r); after != before {
			return nil, fmt.Errorf("%s[%d]: %w: decoder left depth %d, want %d", block, len(res), ErrElementShape, after, before)
		}
		res = append(res, v)
	}
}

// WriteSelfList writes a list of self-describing values. Each value must
// write its entry under elem.
func WriteSelfList[T any, PT SelfPtr[T]](w stream.BlockWriter, block, elem string, items []PT) error {
	return WriteList(w, block, elem, items, Self[T, PT]())
}

// ReadSelfList reads a list of self-describing values.
func ReadSelfList[T any, PT SelfPtr[T]](r stream.BlockReader, block, elem string) ([]PT, error) {
	return ReadList(r, block, elem, Self[T, PT]())
}

// WriteCounted writes a list followed by a redundant count leaf.
func WriteCounted[T any](w stream.BlockWriter, block, elem, countName string, items []T, f Factory[T]) error {
	if err := WriteList(w, block, elem, items, f); err != nil {
		return err
	}
	return w.WriteInt32(countName, int32(len(items)))
}

// ReadCounted reads a list written by WriteCounted and checks the count
// once the block is closed.
func ReadCounted[T any](r stream.BlockReader, block, elem, countName string, f Factory[T]) ([]T, error) {
	res, err := ReadList(r, block, elem, f)
	if err != nil {
		return nil, err
	}
	n, err := r.ReadInt32(countName)
	if err != nil {
		return nil, err
	}
	if int(n) != len(res) {
		return nil, fmt.Errorf("%s: %w: declared %d, read %d", block, ErrCountMismatch, n, len(res))
	}
	return res, nil
}

type depther interface {
	Depth() int
}

// depth returns the reader's open block count, or -1 when the reader
// does not expose it.
func depth(r stream.BlockReader) int {
	if d, ok := r.(depther); ok {
		return d.Depth()
	}
	return -1
}
