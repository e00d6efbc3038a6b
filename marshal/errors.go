package marshal

import (
	"fmt"

	"github.com/teamworkguy2/datatransfer/stream"
)

var (
	// ErrElementName reports a collection entry whose name differs from
	// the element name the collection was written or read with.
	ErrElementName = fmt.Errorf("%w: element name", stream.ErrStructure)

	// ErrElementShape reports an element encoder that wrote no entry, more
	// than one entry, or left a block open.
	ErrElementShape = fmt.Errorf("%w: element shape", stream.ErrStructure)

	// ErrUnknownBlock reports an entry no Registry decoder is registered for.
	ErrUnknownBlock = fmt.Errorf("%w: unknown block", stream.ErrStructure)

	// ErrDuplicateKey reports a map entry whose key was already read.
	ErrDuplicateKey = fmt.Errorf("%w: duplicate key", stream.ErrStructure)

	// ErrCountMismatch reports a redundant count field that disagrees with
	// the number of elements actually read.
	ErrCountMismatch = fmt.Errorf("%w: count mismatch", stream.ErrStructure)

	// ErrUnknownType reports a value whose dynamic type is not registered.
	// Nothing is written for it.
	ErrUnknownType = fmt.Errorf("%w: unknown type", stream.ErrUnsupported)
)

func unsupported(op string, v any) error {
	return &stream.Error{Kind: stream.ErrUnsupported, Op: op, Msg: fmt.Sprintf("%T does not support reload", v)}
}
