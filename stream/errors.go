package stream

import (
	"errors"
	"fmt"
)

var (
	// ErrStructure reports a token of the wrong kind or name, or a
	// block nesting violation.
	ErrStructure = errors.New("structure error")

	// ErrUnbalanced reports an end block with no matching open block, an
	// end block whose name disagrees with the innermost open block, or a
	// session closed with open blocks. It is an ErrStructure.
	ErrUnbalanced = fmt.Errorf("%w: unbalanced block", ErrStructure)

	// ErrFormat reports leaf content that cannot be converted to the
	// requested type, or input that is not well formed for its backend.
	ErrFormat = errors.New("format error")

	// ErrIO reports a failure of the underlying transport.
	ErrIO = errors.New("io failure")

	// ErrUnsupported reports an operation a component does not provide.
	ErrUnsupported = errors.New("unsupported operation")

	// ErrSessionFailed is returned by every call made on a Reader or
	// Writer after an earlier call failed.
	ErrSessionFailed = errors.New("session failed")
)

// Error is the concrete error produced by Readers, Writers and backends.
// It unwraps to both Kind and Err.
type Error struct {
	Kind error  // one of ErrStructure, ErrUnbalanced, ErrFormat, ErrIO, ErrUnsupported
	Op   string // operation, e.g. "ReadInt32"
	Name string // field or block name involved, if any
	Path string // open block path at the time of failure
	Msg  string
	Err  error // underlying cause, if any
}

func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Name != "" {
		msg += fmt.Sprintf(" at %q", e.Name)
	}
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Msg != "" {
		msg += ": " + e.Msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// StructureError builds an ErrStructure error.
func StructureError(op, name, format string, args ...any) *Error {
	return &Error{Kind: ErrStructure, Op: op, Name: name, Msg: fmt.Sprintf(format, args...)}
}

// FormatError builds an ErrFormat error wrapping cause (which may be nil).
func FormatError(op, name string, cause error, format string, args ...any) *Error {
	return &Error{Kind: ErrFormat, Op: op, Name: name, Msg: fmt.Sprintf(format, args...), Err: cause}
}

// IOError builds an ErrIO error wrapping cause.
func IOError(op string, cause error) *Error {
	return &Error{Kind: ErrIO, Op: op, Err: cause}
}

// classify turns an arbitrary error from a Source or Sink into an *Error,
// treating anything unclassified as a transport failure.
func classify(op string, err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		if e.Op == "" {
			e.Op = op
		}
		return e
	}
	return IOError(op, err)
}
