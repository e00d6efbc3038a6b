// Package datatransfer reads and writes structured documents through one
// block protocol across several encodings.
//
// A document is a sequence of named leaves and named blocks. Programs
// write it through a stream.Writer and read it back through a
// stream.Reader; the encoding is chosen when the session is opened:
//
//	w, err := datatransfer.NewWriter(format.JSONFormat, os.Stdout)
//	...
//	w.WriteStartBlock("person")
//	w.WriteInt32("id", 22)
//	w.WriteEndBlock()
//	w.Close()
//
// Open and Create pick the format from a file extension. Marshal,
// Unmarshal, Save and Load move whole values through the marshal
// package's Marshaler, Unmarshaler and Factory contracts.
//
// # Related Packages
//
//   - github.com/teamworkguy2/datatransfer/stream - sessions, elements and errors
//   - github.com/teamworkguy2/datatransfer/marshal - factories and collections
//   - github.com/teamworkguy2/datatransfer/format - format names
//   - github.com/teamworkguy2/datatransfer/binary, msgpack, xmlio, jsonio, yamlio - backends
package datatransfer
