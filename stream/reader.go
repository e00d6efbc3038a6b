package stream

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/teamworkguy2/datatransfer/debug"
)

// Reader is a cursor over the token sequence of one document.
//
// Every typed read validates the kind and name of the token it consumes.
// Blocks are tracked on an owned stack so that ends must match starts.
// One token of look-ahead is available through PeekNext.
//
// A Reader is not safe for concurrent use. After any error the session is
// failed: further calls return ErrSessionFailed and the caller should Close
// and discard the Reader.
type Reader struct {
	src    Source
	state  *State
	opts   *streamOpts
	peeked *Element
	cur    Element
	err    error
	closed bool
}

// NewReader creates a Reader over src.
func NewReader(src Source, opts ...Option) *Reader {
	return &Reader{
		src:   src,
		state: NewState(),
		opts:  buildOpts(opts),
	}
}

// ReadBool reads the boolean leaf name.
func (r *Reader) ReadBool(name string) (bool, error) {
	v, err := r.leaf("ReadBool", name)
	if err != nil {
		return false, err
	}
	b, err := v.Bool()
	if err != nil {
		return false, r.convErr("ReadBool", name, v, err)
	}
	return b, nil
}

// ReadInt8 reads the byte-sized integer leaf name.
func (r *Reader) ReadInt8(name string) (int8, error) {
	v, err := r.leaf("ReadInt8", name)
	if err != nil {
		return 0, err
	}
	i, err := v.Int(8)
	if err != nil {
		return 0, r.convErr("ReadInt8", name, v, err)
	}
	return int8(i), nil
}

// ReadChar reads the single character leaf name.
func (r *Reader) ReadChar(name string) (rune, error) {
	v, err := r.leaf("ReadChar", name)
	if err != nil {
		return 0, err
	}
	c, err := v.Char()
	if err != nil {
		return 0, r.convErr("ReadChar", name, v, err)
	}
	return c, nil
}

// ReadFloat64 reads the double precision leaf name.
func (r *Reader) ReadFloat64(name string) (float64, error) {
	v, err := r.leaf("ReadFloat64", name)
	if err != nil {
		return 0, err
	}
	f, err := v.Float(64)
	if err != nil {
		return 0, r.convErr("ReadFloat64", name, v, err)
	}
	return f, nil
}

// ReadFloat32 reads the single precision leaf name.
func (r *Reader) ReadFloat32(name string) (float32, error) {
	v, err := r.leaf("ReadFloat32", name)
	if err != nil {
		return 0, err
	}
	f, err := v.Float(32)
	if err != nil {
		return 0, r.convErr("ReadFloat32", name, v, err)
	}
	return float32(f), nil
}

// ReadInt32 reads the 32 bit integer leaf name.
func (r *Reader) ReadInt32(name string) (int32, error) {
	v, err := r.leaf("ReadInt32", name)
	if err != nil {
		return 0, err
	}
	i, err := v.Int(32)
	if err != nil {
		return 0, r.convErr("ReadInt32", name, v, err)
	}
	return int32(i), nil
}

// ReadInt64 reads the 64 bit integer leaf name.
func (r *Reader) ReadInt64(name string) (int64, error) {
	v, err := r.leaf("ReadInt64", name)
	if err != nil {
		return 0, err
	}
	i, err := v.Int(64)
	if err != nil {
		return 0, r.convErr("ReadInt64", name, v, err)
	}
	return i, nil
}

// ReadInt16 reads the 16 bit integer leaf name.
func (r *Reader) ReadInt16(name string) (int16, error) {
	v, err := r.leaf("ReadInt16", name)
	if err != nil {
		return 0, err
	}
	i, err := v.Int(16)
	if err != nil {
		return 0, r.convErr("ReadInt16", name, v, err)
	}
	return int16(i), nil
}

// ReadString reads the string leaf name.
func (r *Reader) ReadString(name string) (string, error) {
	v, err := r.leaf("ReadString", name)
	if err != nil {
		return "", err
	}
	return v.String(), nil
}

// ReadBytes reads the byte range leaf name.
func (r *Reader) ReadBytes(name string) ([]byte, error) {
	v, err := r.leaf("ReadBytes", name)
	if err != nil {
		return nil, err
	}
	b, err := v.Bytes()
	if err != nil {
		return nil, r.convErr("ReadBytes", name, v, err)
	}
	return b, nil
}

// ReadStartBlock consumes the start of block name and opens it.
func (r *Reader) ReadStartBlock(name string) error {
	const op = "ReadStartBlock"
	if err := r.check(op); err != nil {
		return err
	}
	e, err := r.consume(op)
	if err != nil {
		return err
	}
	if !e.IsStart() {
		return r.fail(StructureError(op, name, "expected block start, got %s", e))
	}
	if e.name != name {
		return r.fail(StructureError(op, name, "found block %q", e.name))
	}
	r.state.Push(name)
	return nil
}

// ReadEndBlock consumes the end of the innermost open block.
func (r *Reader) ReadEndBlock() error {
	const op = "ReadEndBlock"
	if err := r.check(op); err != nil {
		return err
	}
	top, _ := r.state.Top()
	e, err := r.consume(op)
	if err != nil {
		return err
	}
	if !e.IsEnd() {
		return r.fail(StructureError(op, top, "expected block end, got %s", e))
	}
	if _, err := r.state.Pop(e.name); err != nil {
		return r.fail(classify(op, err))
	}
	return nil
}

// PeekNext returns the next token without consuming it. Repeated calls
// return the same token until a consuming call takes it. At the end of
// the document PeekNext returns io.EOF.
func (r *Reader) PeekNext() (Element, error) {
	const op = "PeekNext"
	if err := r.check(op); err != nil {
		return Element{}, err
	}
	if r.peeked == nil {
		e, err := r.fetch(op)
		if err == io.EOF {
			return Element{}, r.eof(op)
		}
		if err != nil {
			return Element{}, err
		}
		r.peeked = &e
	}
	return *r.peeked, nil
}

// ReadNext consumes and returns the next token whatever its kind or name.
// Starts open a block and ends close one, so a caller walking an open
// block stops when it receives the EndBlock and the block is closed.
// At the end of the document ReadNext returns io.EOF.
func (r *Reader) ReadNext() (Element, error) {
	const op = "ReadNext"
	if err := r.check(op); err != nil {
		return Element{}, err
	}
	e, err := r.fetch(op)
	if err == io.EOF {
		return Element{}, r.eof(op)
	}
	if err != nil {
		return Element{}, err
	}
	if err := r.state.ProcessElement(e); err != nil {
		return Element{}, r.fail(classify(op, err))
	}
	r.advance(e)
	return e, nil
}

// Skip consumes the next entry: a leaf, or a block with everything inside it.
func (r *Reader) Skip() error {
	e, err := r.ReadNext()
	if err != nil {
		return err
	}
	if e.IsEnd() {
		return r.fail(StructureError("Skip", e.name, "no entry to skip"))
	}
	if e.IsLeaf() {
		return nil
	}
	depth := r.state.Depth()
	for r.state.Depth() >= depth {
		if _, err := r.ReadNext(); err != nil {
			return err
		}
	}
	return nil
}

// Current returns the last consumed token.
func (r *Reader) Current() Element { return r.cur }

// CurrentName returns the name of the last consumed token.
func (r *Reader) CurrentName() string { return r.cur.name }

// Depth returns the number of open blocks.
func (r *Reader) Depth() int { return r.state.Depth() }

// Path returns the open blocks joined by "/".
func (r *Reader) Path() string { return r.state.Path() }

// Err returns the error that failed the session, if any.
func (r *Reader) Err() error { return r.err }

// Close releases the transport. It reports an ErrUnbalanced error when a
// healthy session is closed with open blocks. Close may be called more
// than once; later calls do nothing.
func (r *Reader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	var errs []error
	if r.err == nil && r.state.Depth() > 0 {
		errs = append(errs, &Error{
			Kind: ErrUnbalanced,
			Op:   "Close",
			Path: r.state.Path(),
			Msg:  fmt.Sprintf("%d open blocks", r.state.Depth()),
		})
	}
	if r.opts.closer != nil {
		if err := r.opts.closer.Close(); err != nil {
			errs = append(errs, IOError("Close", err))
		}
	}
	if debug.Close() {
		debug.Logf("%s: reader closed at depth %d\n", r.opts.label, r.state.Depth())
	}
	return errors.Join(errs...)
}

func (r *Reader) leaf(op, name string) (Value, error) {
	if err := r.check(op); err != nil {
		return Value{}, err
	}
	e, err := r.consume(op)
	if err != nil {
		return Value{}, err
	}
	if !e.IsLeaf() {
		return Value{}, r.fail(StructureError(op, name, "expected leaf, got %s", e))
	}
	if e.name != name {
		return Value{}, r.fail(StructureError(op, name, "found leaf %q", e.name))
	}
	return e.value, nil
}

func (r *Reader) check(op string) error {
	if r.closed {
		return &Error{Kind: ErrIO, Op: op, Err: fs.ErrClosed}
	}
	if r.err != nil {
		return fmt.Errorf("%s: %w: %w", op, ErrSessionFailed, r.err)
	}
	return nil
}

// fetch resolves the next token from the peek slot or the source. It
// returns io.EOF unwrapped at the end of the document.
func (r *Reader) fetch(op string) (Element, error) {
	if r.peeked != nil {
		e := *r.peeked
		r.peeked = nil
		return e, nil
	}
	e, err := r.src.Next()
	if errors.Is(err, io.EOF) {
		return Element{}, io.EOF
	}
	if err != nil {
		return Element{}, r.fail(classify(op, err))
	}
	if debug.Read() {
		debug.Logf("%s: read %s at %q\n", r.opts.label, e, r.state.Path())
	}
	return e, nil
}

// consume fetches a token that must exist.
func (r *Reader) consume(op string) (Element, error) {
	e, err := r.fetch(op)
	if err == io.EOF {
		return Element{}, r.fail(&Error{Kind: ErrStructure, Op: op, Msg: "unexpected end of document", Err: io.ErrUnexpectedEOF})
	}
	if err != nil {
		return Element{}, err
	}
	r.advance(e)
	return e, nil
}

func (r *Reader) advance(e Element) {
	r.cur = e
}

func (r *Reader) eof(op string) error {
	if r.state.Depth() > 0 {
		return r.fail(&Error{Kind: ErrUnbalanced, Op: op, Msg: "end of document inside block", Err: io.ErrUnexpectedEOF})
	}
	return io.EOF
}

func (r *Reader) convErr(op, name string, v Value, err error) error {
	return r.fail(FormatError(op, name, err, "cannot read %s content %q", v.Type, v.String()))
}

func (r *Reader) fail(err *Error) error {
	if err.Path == "" {
		err.Path = r.state.Path()
	}
	r.err = err
	return err
}
