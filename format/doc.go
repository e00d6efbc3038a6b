// Package format enumerates the document formats datatransfer can read
// and write.
//
// # Usage
//
//	f, err := format.ParseFormat("json")
//	g, err := format.FromPath("people.yaml")
//
// Formats marshal to and from their names, so they can be used directly in
// flags and configuration files.
//
// # Related Packages
//
//   - github.com/teamworkguy2/datatransfer - open readers and writers by format
package format
