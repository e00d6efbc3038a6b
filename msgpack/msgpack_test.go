package msgpack

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ugorji/go/codec"

	"github.com/teamworkguy2/datatransfer/internal/conformance"
	"github.com/teamworkguy2/datatransfer/stream"
)

func TestConformance(t *testing.T) {
	conformance.Suite(conformance.Backend{
		NewWriter: func(w io.Writer) *stream.Writer { return NewWriter(w) },
		NewReader: func(r io.Reader) *stream.Reader { return NewReader(r) },
	})(t)
}

func TestRecordIsArray(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	if err := w.WriteInt32("id", 22); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	b := buf.Bytes()
	// one byte of length prefix, then a fixarray of 5
	if int(b[0]) != len(b)-1 {
		t.Fatalf("frame length %d, record length %d", b[0], len(b)-1)
	}
	var generic []any
	if err := codec.NewDecoderBytes(b[1:], newHandle()).Decode(&generic); err != nil {
		t.Fatal(err)
	}
	if len(generic) != 5 {
		t.Fatalf("expected a 5 element array, got %v", generic)
	}
}

func TestTypesPreserved(t *testing.T) {
	in := []stream.Element{
		stream.Start("b"),
		stream.Leaf("n", stream.NumberValue("1e3")),
		stream.Leaf("raw", stream.BytesValue([]byte{0, 0xff})),
		stream.Leaf("f", stream.Float32Value(0.1)),
		stream.Leaf("", stream.CharValue('ß')),
		stream.End("b"),
	}
	var buf bytes.Buffer
	w := NewWriter(&buf)
	if _, err := stream.Copy(w, stream.NewReader(stream.NewSliceSource(in...))); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	got, err := stream.Collect(NewReader(&buf))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(in, got, cmp.AllowUnexported(stream.Element{})); diff != "" {
		t.Errorf("round trip (-want +got):\n%s", diff)
	}
}

func TestMalformed(t *testing.T) {
	for _, tc := range []struct {
		name string
		doc  []byte
	}{
		{"TruncatedLength", []byte{0x80}},
		{"TruncatedRecord", []byte{0x05, 0x95, 0x00}},
		{"NotARecord", []byte{0x01, 0x01}},
		{"BadKind", []byte{0x06, 0x95, 0x07, 0xa0, 0x00, 0xa0, 0xc0}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewReader(bytes.NewReader(tc.doc)).ReadNext()
			if !errors.Is(err, stream.ErrFormat) {
				t.Errorf("expected ErrFormat, got %v", err)
			}
		})
	}
}

func TestEmptyDocument(t *testing.T) {
	_, err := NewReader(bytes.NewReader(nil)).ReadNext()
	if err != io.EOF {
		t.Errorf("expected io.EOF, got %v", err)
	}
}
