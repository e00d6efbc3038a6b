package stream

import (
	"errors"
	"fmt"
	"io/fs"
	"unicode/utf8"

	"github.com/teamworkguy2/datatransfer/debug"
)

// Writer emits the token sequence of one document to a Sink.
//
// WriteEndBlock takes no name: the name comes from the Writer's own stack,
// so a document produced through a Writer never closes the wrong block.
//
// A Writer is not safe for concurrent use. After any error the session is
// failed and every further call returns ErrSessionFailed.
type Writer struct {
	sink   Sink
	state  *State
	opts   *streamOpts
	err    error
	closed bool
}

// NewWriter creates a Writer emitting to sink.
func NewWriter(sink Sink, opts ...Option) *Writer {
	return &Writer{
		sink:  sink,
		state: NewState(),
		opts:  buildOpts(opts),
	}
}

func (w *Writer) WriteBool(name string, v bool) error {
	return w.leaf("WriteBool", name, BoolValue(v))
}

func (w *Writer) WriteInt8(name string, v int8) error {
	return w.leaf("WriteInt8", name, Int8Value(v))
}

// WriteChar writes a single character leaf; v must be a valid rune.
func (w *Writer) WriteChar(name string, v rune) error {
	if !utf8.ValidRune(v) {
		if err := w.check("WriteChar"); err != nil {
			return err
		}
		return w.fail(FormatError("WriteChar", name, errBadChar, "invalid rune %U", v))
	}
	return w.leaf("WriteChar", name, CharValue(v))
}

func (w *Writer) WriteFloat64(name string, v float64) error {
	return w.leaf("WriteFloat64", name, Float64Value(v))
}

func (w *Writer) WriteFloat32(name string, v float32) error {
	return w.leaf("WriteFloat32", name, Float32Value(v))
}

func (w *Writer) WriteInt32(name string, v int32) error {
	return w.leaf("WriteInt32", name, Int32Value(v))
}

func (w *Writer) WriteInt64(name string, v int64) error {
	return w.leaf("WriteInt64", name, Int64Value(v))
}

func (w *Writer) WriteInt16(name string, v int16) error {
	return w.leaf("WriteInt16", name, Int16Value(v))
}

func (w *Writer) WriteString(name string, v string) error {
	return w.leaf("WriteString", name, StringValue(v))
}

func (w *Writer) WriteBytes(name string, v []byte) error {
	return w.leaf("WriteBytes", name, BytesValue(v))
}

// WriteValue writes a leaf from an already typed Value, as produced by a
// Reader.
func (w *Writer) WriteValue(name string, v Value) error {
	if !v.Type.Valid() {
		if err := w.check("WriteValue"); err != nil {
			return err
		}
		return w.fail(FormatError("WriteValue", name, nil, "invalid value type %d", v.Type))
	}
	return w.leaf("WriteValue", name, v)
}

// WriteStartBlock opens block name. Block names are mandatory.
func (w *Writer) WriteStartBlock(name string) error {
	const op = "WriteStartBlock"
	if err := w.check(op); err != nil {
		return err
	}
	if name == "" {
		return w.fail(StructureError(op, "", "block name required"))
	}
	if debug.Write() {
		debug.Logf("%s: write <%s> at %q\n", w.opts.label, name, w.state.Path())
	}
	if err := w.sink.WriteStart(name); err != nil {
		return w.fail(classify(op, err))
	}
	w.state.Push(name)
	return nil
}

// WriteEndBlock closes the innermost open block.
func (w *Writer) WriteEndBlock() error {
	const op = "WriteEndBlock"
	if err := w.check(op); err != nil {
		return err
	}
	name, err := w.state.Pop("")
	if err != nil {
		return w.fail(classify(op, err))
	}
	if debug.Write() {
		debug.Logf("%s: write </%s> at %q\n", w.opts.label, name, w.state.Path())
	}
	if err := w.sink.WriteEnd(name); err != nil {
		return w.fail(classify(op, err))
	}
	return nil
}

// Flush pushes buffered output to the transport.
func (w *Writer) Flush() error {
	if err := w.check("Flush"); err != nil {
		return err
	}
	if err := w.sink.Flush(); err != nil {
		return w.fail(classify("Flush", err))
	}
	return nil
}

// Depth returns the number of open blocks.
func (w *Writer) Depth() int { return w.state.Depth() }

// Path returns the open blocks joined by "/".
func (w *Writer) Path() string { return w.state.Path() }

// Err returns the error that failed the session, if any.
func (w *Writer) Err() error { return w.err }

// Close finishes the document and releases the transport. Closing with
// open blocks is an ErrUnbalanced error and leaves the document
// unfinished; the transport is released regardless. Close may be called
// more than once; later calls do nothing.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	var errs []error
	if w.err == nil {
		if w.state.Depth() > 0 {
			errs = append(errs, &Error{
				Kind: ErrUnbalanced,
				Op:   "Close",
				Path: w.state.Path(),
				Msg:  fmt.Sprintf("%d open blocks", w.state.Depth()),
			})
		} else if err := w.sink.Finish(); err != nil {
			errs = append(errs, classify("Close", err))
		}
	}
	if w.opts.closer != nil {
		if err := w.opts.closer.Close(); err != nil {
			errs = append(errs, IOError("Close", err))
		}
	}
	if debug.Close() {
		debug.Logf("%s: writer closed at depth %d\n", w.opts.label, w.state.Depth())
	}
	return errors.Join(errs...)
}

func (w *Writer) leaf(op, name string, v Value) error {
	if err := w.check(op); err != nil {
		return err
	}
	if debug.Write() {
		debug.Logf("%s: write %s at %q\n", w.opts.label, Leaf(name, v), w.state.Path())
	}
	if err := w.sink.WriteLeaf(name, v); err != nil {
		return w.fail(classify(op, err))
	}
	return nil
}

func (w *Writer) check(op string) error {
	if w.closed {
		return &Error{Kind: ErrIO, Op: op, Err: fs.ErrClosed}
	}
	if w.err != nil {
		return fmt.Errorf("%s: %w: %w", op, ErrSessionFailed, w.err)
	}
	return nil
}

func (w *Writer) fail(err *Error) error {
	if err.Path == "" {
		err.Path = w.state.Path()
	}
	w.err = err
	return err
}
