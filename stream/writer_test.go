package stream

import (
	"errors"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestWriterBlocks(t *testing.T) {
	rec := &Recorder{}
	w := NewWriter(rec)
	must(t, w.WriteStartBlock("Person"))
	must(t, w.WriteInt32("id", 22))
	must(t, w.WriteStartBlock("cities"))
	if w.Depth() != 2 || w.Path() != "Person/cities" {
		t.Errorf("expected depth 2 at Person/cities, got %d at %q", w.Depth(), w.Path())
	}
	must(t, w.WriteString("", "City A"))
	must(t, w.WriteEndBlock())
	must(t, w.WriteEndBlock())
	must(t, w.Close())

	want := []Element{
		Start("Person"),
		Leaf("id", Int32Value(22)),
		Start("cities"),
		Leaf("", StringValue("City A")),
		End("cities"),
		End("Person"),
	}
	if diff := cmp.Diff(want, rec.Elements, cmp.AllowUnexported(Element{})); diff != "" {
		t.Errorf("elements (-want +got):\n%s", diff)
	}
}

func TestWriterEndWithoutStart(t *testing.T) {
	w := NewWriter(&Recorder{})
	if err := w.WriteEndBlock(); !errors.Is(err, ErrUnbalanced) {
		t.Fatalf("expected ErrUnbalanced, got %v", err)
	}
	if err := w.WriteString("x", "y"); !errors.Is(err, ErrSessionFailed) {
		t.Errorf("expected ErrSessionFailed after failure, got %v", err)
	}
}

func TestWriterBlockNameRequired(t *testing.T) {
	w := NewWriter(&Recorder{})
	if err := w.WriteStartBlock(""); !errors.Is(err, ErrStructure) {
		t.Fatalf("expected ErrStructure, got %v", err)
	}
}

func TestWriterCloseOpenBlocks(t *testing.T) {
	rec := &Recorder{}
	cc := &countingCloser{}
	w := NewWriter(rec, WithTransport(cc))
	must(t, w.WriteStartBlock("a"))
	if err := w.Close(); !errors.Is(err, ErrUnbalanced) {
		t.Fatalf("expected ErrUnbalanced, got %v", err)
	}
	if rec.Finished {
		t.Errorf("unbalanced document was finished")
	}
	if err := w.Close(); err != nil {
		t.Errorf("second close returned %v", err)
	}
	if cc.n != 1 {
		t.Errorf("expected transport closed once, got %d", cc.n)
	}
}

func TestWriterInvalidChar(t *testing.T) {
	w := NewWriter(&Recorder{})
	if err := w.WriteChar("c", 0xD800); !errors.Is(err, ErrFormat) {
		t.Fatalf("expected ErrFormat for a surrogate, got %v", err)
	}
}

func TestWriterSinkError(t *testing.T) {
	boom := errors.New("boom")
	w := NewWriter(failSink{boom})
	err := w.WriteBool("b", true)
	if !errors.Is(err, ErrIO) || !errors.Is(err, boom) {
		t.Fatalf("expected ErrIO wrapping boom, got %v", err)
	}
}

func TestCopy(t *testing.T) {
	src := NewReader(NewSliceSource(
		Start("doc"),
		Leaf("a", Int64Value(1)),
		Start("list"),
		Leaf("", StringValue("x")),
		End("list"),
		End("doc"),
	))
	rec := &Recorder{}
	dst := NewWriter(rec)
	n, err := Copy(dst, src)
	must(t, err)
	if n != 6 {
		t.Errorf("expected 6 tokens copied, got %d", n)
	}
	must(t, dst.Close())
	must(t, src.Close())

	again, err := Collect(NewReader(rec.Source()))
	must(t, err)
	if len(again) != 6 || !again[5].IsEnd() || again[5].Name() != "doc" {
		t.Errorf("unexpected copy result %v", again)
	}
}

func TestCollectUnbalanced(t *testing.T) {
	_, err := Collect(NewReader(NewSliceSource(Start("a"), End("b"))))
	if !errors.Is(err, ErrUnbalanced) {
		t.Fatalf("expected ErrUnbalanced, got %v", err)
	}
	_, err = Collect(NewReader(NewSliceSource(Start("a"))))
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("expected io.ErrUnexpectedEOF, got %v", err)
	}
}

type failSink struct{ err error }

func (s failSink) WriteStart(string) error       { return s.err }
func (s failSink) WriteEnd(string) error         { return s.err }
func (s failSink) WriteLeaf(string, Value) error { return s.err }
func (s failSink) Flush() error                  { return s.err }
func (s failSink) Finish() error                 { return s.err }
