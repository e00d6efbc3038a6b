package yamlio

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/teamworkguy2/datatransfer/internal/conformance"
	"github.com/teamworkguy2/datatransfer/stream"
)

func TestConformance(t *testing.T) {
	conformance.Suite(conformance.Backend{
		NewWriter: func(w io.Writer) *stream.Writer { return NewWriter(w) },
		NewReader: func(r io.Reader) *stream.Reader { return NewReader(r) },
	})(t)
}

func TestLayout(t *testing.T) {
	elems := []stream.Element{
		stream.Start("person"),
		stream.Leaf("id", stream.Int32Value(22)),
		stream.Leaf("ok", stream.BoolValue(true)),
		stream.Leaf("nan", stream.Float64Value(zero()/zero())),
		stream.Start("cities"),
		stream.Leaf("", stream.StringValue("City A")),
		stream.End("cities"),
		stream.Start("tags"),
		stream.End("tags"),
		stream.End("person"),
	}
	var buf bytes.Buffer
	w := NewWriter(&buf)
	if _, err := stream.Copy(w, stream.NewReader(stream.NewSliceSource(elems...))); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		`- "person":`,
		`    - "id": 22`,
		`    - "ok": true`,
		`    - "nan": "NaN"`,
		`    - "cities":`,
		`        - "City A"`,
		`    - "tags": []`,
	}, "\n") + "\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("layout (-want +got):\n%s", diff)
	}
}

func zero() float64 { return 0 }

func TestEmptyDocument(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "[]\n" {
		t.Fatalf("unexpected empty document %q", buf.String())
	}
	_, err := NewReader(&buf).ReadNext()
	if err != io.EOF {
		t.Errorf("expected io.EOF, got %v", err)
	}
}

func TestReadMapping(t *testing.T) {
	doc := `
# hand written
server:
  host: example.com
  port: 8080
  tls: false
  backup: ~
  note: "two\nlines"
list:
  - a
  - weight: 1.5
`
	want := []stream.Element{
		stream.Start("server"),
		stream.Leaf("host", stream.StringValue("example.com")),
		stream.Leaf("port", stream.NumberValue("8080")),
		stream.Leaf("tls", stream.BoolValue(false)),
		stream.Leaf("backup", stream.StringValue("")),
		stream.Leaf("note", stream.StringValue("two\nlines")),
		stream.End("server"),
		stream.Start("list"),
		stream.Leaf("", stream.StringValue("a")),
		stream.Leaf("weight", stream.NumberValue("1.5")),
		stream.End("list"),
	}
	got, err := stream.Collect(NewReader(strings.NewReader(doc)))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(stream.Element{})); diff != "" {
		t.Errorf("elements (-want +got):\n%s", diff)
	}
}

func TestMalformed(t *testing.T) {
	for _, tc := range []struct {
		name string
		doc  string
	}{
		{"Empty", ""},
		{"Scalar", "42\n"},
		{"NestedSequence", "- - 1\n"},
		{"Syntax", "- \"open\n"},
		{"TwoDocuments", "- 1\n---\n- 2\n"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := stream.Collect(NewReader(strings.NewReader(tc.doc)))
			if !errors.Is(err, stream.ErrFormat) {
				t.Errorf("expected ErrFormat, got %v", err)
			}
		})
	}
}

func TestInvalidUTF8(t *testing.T) {
	for _, tc := range []struct {
		name  string
		write func(w *stream.Writer) error
	}{
		{"Value", func(w *stream.Writer) error { return w.WriteString("s", "a\xffb") }},
		{"LeafName", func(w *stream.Writer) error { return w.WriteString("s\xff", "v") }},
		{"BlockName", func(w *stream.Writer) error { return w.WriteStartBlock("\xfe") }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			w := NewWriter(&buf)
			if err := tc.write(w); !errors.Is(err, stream.ErrFormat) {
				t.Fatalf("expected ErrFormat, got %v", err)
			}
			if err := w.WriteString("t", "ok"); !errors.Is(err, stream.ErrSessionFailed) {
				t.Errorf("expected ErrSessionFailed, got %v", err)
			}
		})
	}
}

func TestUnicodeRoundTrip(t *testing.T) {
	const text = "tab\there \x01 ÿ ☃ \U0001F600"
	var buf bytes.Buffer
	w := NewWriter(&buf)
	if err := w.WriteString("s", text); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	got, err := NewReader(&buf).ReadString("s")
	if err != nil {
		t.Fatal(err)
	}
	if got != text {
		t.Errorf("got %q, want %q", got, text)
	}
}
