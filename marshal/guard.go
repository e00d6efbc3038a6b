package marshal

import (
	"fmt"

	"github.com/teamworkguy2/datatransfer/stream"
)

// guard wraps the writer handed to an element encoder and enforces the
// collection convention: exactly one entry, named elem, left balanced.
type guard struct {
	w       stream.BlockWriter
	elem    string
	depth   int
	entries int
}

func newGuard(w stream.BlockWriter, elem string) *guard {
	return &guard{w: w, elem: elem}
}

func (g *guard) entry(name string) error {
	if g.depth > 0 {
		return nil
	}
	if g.entries > 0 {
		return fmt.Errorf("%w: second entry %q in one element", ErrElementShape, name)
	}
	if name != g.elem {
		return fmt.Errorf("%w: expected %q, wrote %q", ErrElementName, g.elem, name)
	}
	g.entries++
	return nil
}

func (g *guard) done() error {
	switch {
	case g.entries == 0:
		return fmt.Errorf("%w: no entry written", ErrElementShape)
	case g.depth != 0:
		return fmt.Errorf("%w: %d blocks left open", ErrElementShape, g.depth)
	}
	return nil
}

func (g *guard) WriteBool(name string, v bool) error {
	if err := g.entry(name); err != nil {
		return err
	}
	return g.w.WriteBool(name, v)
}

func (g *guard) WriteInt8(name string, v int8) error {
	if err := g.entry(name); err != nil {
		return err
	}
	return g.w.WriteInt8(name, v)
}

func (g *guard) WriteChar(name string, v rune) error {
	if err := g.entry(name); err != nil {
		return err
	}
	return g.w.WriteChar(name, v)
}

func (g *guard) WriteFloat64(name string, v float64) error {
	if err := g.entry(name); err != nil {
		return err
	}
	return g.w.WriteFloat64(name, v)
}

func (g *guard) WriteFloat32(name string, v float32) error {
	if err := g.entry(name); err != nil {
		return err
	}
	return g.w.WriteFloat32(name, v)
}

func (g *guard) WriteInt32(name string, v int32) error {
	if err := g.entry(name); err != nil {
		return err
	}
	return g.w.WriteInt32(name, v)
}

func (g *guard) WriteInt64(name string, v int64) error {
	if err := g.entry(name); err != nil {
		return err
	}
	return g.w.WriteInt64(name, v)
}

func (g *guard) WriteInt16(name string, v int16) error {
	if err := g.entry(name); err != nil {
		return err
	}
	return g.w.WriteInt16(name, v)
}

func (g *guard) WriteString(name string, v string) error {
	if err := g.entry(name); err != nil {
		return err
	}
	return g.w.WriteString(name, v)
}

func (g *guard) WriteBytes(name string, v []byte) error {
	if err := g.entry(name); err != nil {
		return err
	}
	return g.w.WriteBytes(name, v)
}

func (g *guard) WriteValue(name string, v stream.Value) error {
	if err := g.entry(name); err != nil {
		return err
	}
	return g.w.WriteValue(name, v)
}

func (g *guard) WriteStartBlock(name string) error {
	if err := g.entry(name); err != nil {
		return err
	}
	if err := g.w.WriteStartBlock(name); err != nil {
		return err
	}
	g.depth++
	return nil
}

func (g *guard) WriteEndBlock() error {
	if g.depth == 0 {
		return fmt.Errorf("%w: element closed its enclosing block", ErrElementShape)
	}
	if err := g.w.WriteEndBlock(); err != nil {
		return err
	}
	g.depth--
	return nil
}
