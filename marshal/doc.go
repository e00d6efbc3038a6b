// Package marshal builds typed persistence on top of the block protocol in
// package stream.
//
// A Factory[T] encodes and decodes one type. Types that know how to write
// themselves implement Marshaler and Unmarshaler and are adapted with Self.
//
//	type City struct{ Name string }
//
//	func (c *City) MarshalBlock(w stream.BlockWriter) error {
//		if err := w.WriteStartBlock("city"); err != nil {
//			return err
//		}
//		if err := w.WriteString("name", c.Name); err != nil {
//			return err
//		}
//		return w.WriteEndBlock()
//	}
//
// # Collections
//
// WriteList and ReadList store a slice as one block holding one entry per
// element. The collection decides the element name: every entry must be
// named exactly as the elem argument, with "" for anonymous entries, and
// must be a single leaf or a single balanced block. Encoders that break
// this fail with ErrElementName or ErrElementShape before anything
// malformed is written.
//
// Lists carry no count. ReadList peeks before each element and stops at
// the block's end. WriteCounted adds a redundant count leaf after the
// block which ReadCounted cross-checks.
//
// Maps are written as "entry" blocks in sorted key order.
//
// # Heterogeneous content
//
// A Registry maps entry names to factories and decodes by peeking at the
// next entry's name.
package marshal
