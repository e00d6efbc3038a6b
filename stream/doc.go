// Package stream implements the block protocol shared by every
// datatransfer backend.
//
// A document is a sequence of Elements: leaves (a name and a scalar or
// byte range), block starts and block ends. Backends only turn bytes into
// Elements (a Source) and Elements into bytes (a Sink). The Reader and
// Writer in this package own everything else: the open-block stack, the
// one-token peek slot, name and kind validation, and conversion of leaf
// content to Go types.
//
// # Example: Writing
//
//	w := binary.NewWriter(f)
//	w.WriteStartBlock("Person")
//	w.WriteInt32("id", 22)
//	w.WriteString("name", "No One")
//	w.WriteEndBlock() // closes "Person"
//	err := w.Close()
//
// # Example: Reading
//
//	r := binary.NewReader(f)
//	r.ReadStartBlock("Person")
//	id, _ := r.ReadInt32("id")
//	name, _ := r.ReadString("name")
//	r.ReadEndBlock()
//	err := r.Close()
//
// # Variable length content
//
// PeekNext returns the next Element without consuming it. Code reading a
// block of unknown length peeks, stops at an EndBlock, and otherwise
// decodes one more entry. ReadNext consumes whatever comes next and is the
// basis of generic traversal (see Copy).
//
// # Errors
//
// Wrong token kinds or names and unbalanced blocks are ErrStructure,
// unconvertible content is ErrFormat, transport failures are ErrIO. The
// first error fails the session.
package stream
