// Package conformance holds the behavior every backend must share. Each
// backend's tests run Suite against its own reader and writer.
package conformance

import (
	"bytes"
	"errors"
	"io"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/teamworkguy2/datatransfer/marshal"
	"github.com/teamworkguy2/datatransfer/stream"
)

// NewWriterFunc opens a writer session on w.
type NewWriterFunc func(w io.Writer) *stream.Writer

// NewReaderFunc opens a reader session on r.
type NewReaderFunc func(r io.Reader) *stream.Reader

// Backend bundles the two constructors of one format.
type Backend struct {
	NewWriter NewWriterFunc
	NewReader NewReaderFunc
}

// Suite returns the conformance tests for b.
func Suite(b Backend) func(*testing.T) {
	return func(t *testing.T) {
		t.Run("Scalars", testScalars(b))
		t.Run("NonFinite", testNonFinite(b))
		t.Run("Strings", testStrings(b))
		t.Run("Blocks", testBlocks(b))
		t.Run("EmptyBlock", testEmptyBlock(b))
		t.Run("Peek", testPeek(b))
		t.Run("NameMismatch", testNameMismatch(b))
		t.Run("WriterUnbalanced", testWriterUnbalanced(b))
		t.Run("ReaderUnbalanced", testReaderUnbalanced(b))
		t.Run("Lists", testLists(b))
		t.Run("Counted", testCounted(b))
		t.Run("People", testPeople(b))
		t.Run("Person", testPerson(b))
		t.Run("Copy", testCopy(b))
		t.Run("CloseOnce", testCloseOnce(b))
	}
}

// write runs fn on a fresh writer and returns the closed document.
func write(t *testing.T, b Backend, fn func(w stream.BlockWriter) error) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := b.NewWriter(&buf)
	require.NoError(t, fn(w), "writing document")
	require.NoError(t, w.Close(), "closing writer")
	return buf.Bytes()
}

func read(b Backend, doc []byte) *stream.Reader {
	return b.NewReader(bytes.NewReader(doc))
}

func testScalars(b Backend) func(*testing.T) {
	return func(t *testing.T) {
		r := require.New(t)
		doc := write(t, b, func(w stream.BlockWriter) error {
			return errors.Join(
				w.WriteBool("t", true),
				w.WriteBool("f", false),
				w.WriteInt8("i8", math.MinInt8),
				w.WriteChar("c", 'é'),
				w.WriteFloat64("f64", math.Pi),
				w.WriteFloat64("tiny", math.SmallestNonzeroFloat64),
				w.WriteFloat32("f32", float32(1.1)),
				w.WriteInt32("i32", math.MinInt32),
				w.WriteInt64("i64", math.MaxInt64),
				w.WriteInt16("i16", math.MaxInt16),
				w.WriteString("s", "No One"),
				w.WriteBytes("bs", []byte{0, 1, 2, 0xfe, 0xff}),
			)
		})

		rd := read(b, doc)
		bt, err := rd.ReadBool("t")
		r.NoError(err)
		r.True(bt)
		bf, err := rd.ReadBool("f")
		r.NoError(err)
		r.False(bf)
		i8, err := rd.ReadInt8("i8")
		r.NoError(err)
		r.Equal(int8(math.MinInt8), i8)
		c, err := rd.ReadChar("c")
		r.NoError(err)
		r.Equal('é', c)
		f64, err := rd.ReadFloat64("f64")
		r.NoError(err)
		r.Equal(math.Pi, f64)
		tiny, err := rd.ReadFloat64("tiny")
		r.NoError(err)
		r.Equal(math.SmallestNonzeroFloat64, tiny)
		f32, err := rd.ReadFloat32("f32")
		r.NoError(err)
		r.Equal(float32(1.1), f32)
		i32, err := rd.ReadInt32("i32")
		r.NoError(err)
		r.Equal(int32(math.MinInt32), i32)
		i64, err := rd.ReadInt64("i64")
		r.NoError(err)
		r.Equal(int64(math.MaxInt64), i64)
		i16, err := rd.ReadInt16("i16")
		r.NoError(err)
		r.Equal(int16(math.MaxInt16), i16)
		s, err := rd.ReadString("s")
		r.NoError(err)
		r.Equal("No One", s)
		bs, err := rd.ReadBytes("bs")
		r.NoError(err)
		r.Equal([]byte{0, 1, 2, 0xfe, 0xff}, bs)

		_, err = rd.ReadNext()
		r.ErrorIs(err, io.EOF)
		r.NoError(rd.Close())
	}
}

func testNonFinite(b Backend) func(*testing.T) {
	return func(t *testing.T) {
		r := require.New(t)
		doc := write(t, b, func(w stream.BlockWriter) error {
			return errors.Join(
				w.WriteFloat64("inf", math.Inf(1)),
				w.WriteFloat64("ninf", math.Inf(-1)),
				w.WriteFloat32("nan", float32(math.NaN())),
			)
		})
		rd := read(b, doc)
		inf, err := rd.ReadFloat64("inf")
		r.NoError(err)
		r.True(math.IsInf(inf, 1))
		ninf, err := rd.ReadFloat64("ninf")
		r.NoError(err)
		r.True(math.IsInf(ninf, -1))
		nan, err := rd.ReadFloat32("nan")
		r.NoError(err)
		r.True(math.IsNaN(float64(nan)))
		r.NoError(rd.Close())
	}
}

func testStrings(b Backend) func(*testing.T) {
	return func(t *testing.T) {
		r := require.New(t)
		values := []string{
			"",
			" padded ",
			"line1\nline2\t\"quoted\"",
			"<tag> & 'apos'",
			"é ü 日本",
			"123",
			"true",
		}
		doc := write(t, b, func(w stream.BlockWriter) error {
			return marshal.WriteList(w, "strings", "s", values, marshal.StringLeaf("s"))
		})
		rd := read(b, doc)
		got, err := marshal.ReadList(rd, "strings", "s", marshal.StringLeaf("s"))
		r.NoError(err)
		r.Equal(values, got)
		r.NoError(rd.Close())
	}
}

func testBlocks(b Backend) func(*testing.T) {
	return func(t *testing.T) {
		r := require.New(t)
		doc := write(t, b, func(w stream.BlockWriter) error {
			return errors.Join(
				w.WriteStartBlock("a"),
				w.WriteInt32("x", 1),
				w.WriteStartBlock("b"),
				w.WriteStartBlock("c"),
				w.WriteString("y", "deep"),
				w.WriteEndBlock(),
				w.WriteEndBlock(),
				w.WriteBool("z", true),
				w.WriteEndBlock(),
			)
		})

		type tok struct {
			Kind  stream.Kind
			Name  string
			Depth int
		}
		want := []tok{
			{stream.KindStart, "a", 1},
			{stream.KindLeaf, "x", 1},
			{stream.KindStart, "b", 2},
			{stream.KindStart, "c", 3},
			{stream.KindLeaf, "y", 3},
			{stream.KindEnd, "c", 2},
			{stream.KindEnd, "b", 1},
			{stream.KindLeaf, "z", 1},
			{stream.KindEnd, "a", 0},
		}
		rd := read(b, doc)
		var got []tok
		for {
			e, err := rd.ReadNext()
			if err == io.EOF {
				break
			}
			r.NoError(err)
			got = append(got, tok{e.Kind(), e.Name(), rd.Depth()})
		}
		r.Equal(want, got)
		r.NoError(rd.Close())

		rd = read(b, doc)
		r.NoError(rd.ReadStartBlock("a"))
		x, err := rd.ReadInt32("x")
		r.NoError(err)
		r.Equal(int32(1), x)
		r.NoError(rd.ReadStartBlock("b"))
		r.Equal("a/b", rd.Path())
		r.NoError(rd.Skip())
		r.NoError(rd.ReadEndBlock())
		z, err := rd.ReadBool("z")
		r.NoError(err)
		r.True(z)
		r.NoError(rd.ReadEndBlock())
		r.Equal(0, rd.Depth())
		r.NoError(rd.Close())
	}
}

func testEmptyBlock(b Backend) func(*testing.T) {
	return func(t *testing.T) {
		r := require.New(t)
		doc := write(t, b, func(w stream.BlockWriter) error {
			return errors.Join(
				w.WriteStartBlock("outer"),
				w.WriteStartBlock("empty"),
				w.WriteEndBlock(),
				w.WriteString("after", "x"),
				w.WriteEndBlock(),
			)
		})
		rd := read(b, doc)
		r.NoError(rd.ReadStartBlock("outer"))
		r.NoError(rd.ReadStartBlock("empty"))
		e, err := rd.PeekNext()
		r.NoError(err)
		r.True(e.IsEnd(), "expected end of empty block, got %s", e)
		r.NoError(rd.ReadEndBlock())
		s, err := rd.ReadString("after")
		r.NoError(err)
		r.Equal("x", s)
		r.NoError(rd.ReadEndBlock())
		r.NoError(rd.Close())
	}
}

func testPeek(b Backend) func(*testing.T) {
	return func(t *testing.T) {
		r := require.New(t)
		doc := write(t, b, func(w stream.BlockWriter) error {
			return errors.Join(
				w.WriteStartBlock("blk"),
				w.WriteInt64("n", 7),
				w.WriteEndBlock(),
			)
		})
		rd := read(b, doc)
		first, err := rd.PeekNext()
		r.NoError(err)
		r.True(first.IsStart())
		r.Equal("blk", first.Name())
		for i := 0; i < 3; i++ {
			again, err := rd.PeekNext()
			r.NoError(err)
			r.Equal(first.String(), again.String())
		}
		r.Equal(0, rd.Depth())
		r.NoError(rd.ReadStartBlock("blk"))
		r.Equal("blk", rd.CurrentName())

		leaf, err := rd.PeekNext()
		r.NoError(err)
		r.True(leaf.IsLeaf())
		r.Equal("n", leaf.Name())
		r.Equal("7", leaf.Content())
		n, err := rd.ReadInt64("n")
		r.NoError(err)
		r.Equal(int64(7), n)
		r.NoError(rd.ReadEndBlock())

		_, err = rd.PeekNext()
		r.ErrorIs(err, io.EOF)
		r.NoError(rd.Close())
	}
}

func testNameMismatch(b Backend) func(*testing.T) {
	return func(t *testing.T) {
		r := require.New(t)
		doc := write(t, b, func(w stream.BlockWriter) error {
			return w.WriteString("y", "v")
		})
		rd := read(b, doc)
		_, err := rd.ReadString("x")
		r.ErrorIs(err, stream.ErrStructure)
		_, err = rd.ReadString("y")
		r.ErrorIs(err, stream.ErrSessionFailed)
		r.NoError(rd.Close())

		doc = write(t, b, func(w stream.BlockWriter) error {
			return errors.Join(w.WriteStartBlock("a"), w.WriteEndBlock())
		})
		rd = read(b, doc)
		r.ErrorIs(rd.ReadStartBlock("b"), stream.ErrStructure)
		r.NoError(rd.Close())
	}
}

func testWriterUnbalanced(b Backend) func(*testing.T) {
	return func(t *testing.T) {
		r := require.New(t)
		var buf bytes.Buffer
		w := b.NewWriter(&buf)
		r.NoError(w.WriteStartBlock("open"))
		r.NoError(w.WriteInt32("x", 1))
		r.Equal(1, w.Depth())
		r.ErrorIs(w.Close(), stream.ErrUnbalanced)
		r.NoError(w.Close())

		w = b.NewWriter(&buf)
		r.ErrorIs(w.WriteEndBlock(), stream.ErrUnbalanced)
		r.NoError(w.Close())
	}
}

func testReaderUnbalanced(b Backend) func(*testing.T) {
	return func(t *testing.T) {
		r := require.New(t)
		doc := write(t, b, func(w stream.BlockWriter) error {
			return errors.Join(w.WriteStartBlock("a"), w.WriteInt32("x", 1), w.WriteEndBlock())
		})
		rd := read(b, doc)
		r.NoError(rd.ReadStartBlock("a"))
		r.ErrorIs(rd.Close(), stream.ErrUnbalanced)
		r.NoError(rd.Close())

		rd = read(b, doc)
		r.NoError(rd.ReadStartBlock("a"))
		r.ErrorIs(rd.ReadEndBlock(), stream.ErrStructure)
	}
}

func testLists(b Backend) func(*testing.T) {
	return func(t *testing.T) {
		for _, tc := range []struct {
			name  string
			elem  string
			items []int64
		}{
			{"Empty", "n", []int64{}},
			{"One", "n", []int64{42}},
			{"Many", "n", []int64{3, 1, 2, -7, 1 << 40}},
			{"AnonymousEmpty", "", []int64{}},
			{"AnonymousOne", "", []int64{42}},
			{"AnonymousMany", "", []int64{3, 1, 2, -7, 1 << 40}},
		} {
			t.Run(tc.name, func(t *testing.T) {
				r := require.New(t)
				f := marshal.Int64Leaf(tc.elem)
				doc := write(t, b, func(w stream.BlockWriter) error {
					return errors.Join(
						marshal.WriteList(w, "items", tc.elem, tc.items, f),
						w.WriteString("trailer", "end"),
					)
				})
				rd := read(b, doc)
				got, err := marshal.ReadList(rd, "items", tc.elem, f)
				r.NoError(err)
				r.Equal(tc.items, got)
				s, err := rd.ReadString("trailer")
				r.NoError(err)
				r.Equal("end", s)
				r.NoError(rd.Close())
			})
		}
	}
}

func testCounted(b Backend) func(*testing.T) {
	return func(t *testing.T) {
		r := require.New(t)
		items := []float64{0.5, 1.25, -3}
		f := marshal.Float64Leaf("v")
		doc := write(t, b, func(w stream.BlockWriter) error {
			return marshal.WriteCounted(w, "values", "v", "count", items, f)
		})
		rd := read(b, doc)
		got, err := marshal.ReadCounted(rd, "values", "v", "count", f)
		r.NoError(err)
		r.Equal(items, got)
		r.NoError(rd.Close())

		doc = write(t, b, func(w stream.BlockWriter) error {
			return errors.Join(
				marshal.WriteList(w, "values", "v", items, f),
				w.WriteInt32("count", 2),
			)
		})
		rd = read(b, doc)
		_, err = marshal.ReadCounted(rd, "values", "v", "count", f)
		r.ErrorIs(err, marshal.ErrCountMismatch)
		r.NoError(rd.Close())
	}
}

func testPeople(b Backend) func(*testing.T) {
	return func(t *testing.T) {
		r := require.New(t)
		second := NoOne()
		second.ID = 23
		second.Name = "Someone"
		second.Cities = []string{}
		second.Properties = map[string]string{}
		people := []*Person{NoOne(), second}

		doc := write(t, b, func(w stream.BlockWriter) error {
			return marshal.WriteSelfList(w, "people", "person", people)
		})
		rd := read(b, doc)
		got, err := marshal.ReadSelfList[Person](rd, "people", "person")
		r.NoError(err)
		r.Equal(people, got)
		r.NoError(rd.Close())
	}
}

func testPerson(b Backend) func(*testing.T) {
	return func(t *testing.T) {
		r := require.New(t)
		want := NoOne()
		doc := write(t, b, want.MarshalBlock)

		f := marshal.Self[Person]()
		rd := read(b, doc)
		got, err := f.Decode(rd)
		r.NoError(err)
		r.Equal(want, got)
		r.Equal([]string{"City A", "City 2", "City C"}, got.Cities)
		r.NoError(rd.Close())

		reloaded := &Person{ID: 1, Name: "stale"}
		rd = read(b, doc)
		r.True(marshal.CanReload(f))
		r.NoError(marshal.Reload(f, rd, reloaded))
		r.Equal(want, reloaded)
		r.NoError(rd.Close())
	}
}

func testCopy(b Backend) func(*testing.T) {
	return func(t *testing.T) {
		r := require.New(t)
		doc := write(t, b, NoOne().MarshalBlock)

		rec := &stream.Recorder{}
		w := stream.NewWriter(rec)
		n, err := stream.Copy(w, read(b, doc))
		r.NoError(err)
		r.NoError(w.Close())
		r.True(rec.Finished)
		r.Equal(len(rec.Elements), n)

		// Replaying the copy decodes to the same record.
		got, err := marshal.Self[Person]().Decode(stream.NewReader(rec.Source()))
		r.NoError(err)
		r.Equal(NoOne(), got)

		// Copying back into the backend reproduces the document.
		var buf bytes.Buffer
		w = b.NewWriter(&buf)
		_, err = stream.Copy(w, stream.NewReader(rec.Source()))
		r.NoError(err)
		r.NoError(w.Close())
		r.Equal(string(doc), buf.String())
	}
}

type closeCounter struct {
	io.Reader
	n int
}

func (c *closeCounter) Close() error {
	c.n++
	return nil
}

func testCloseOnce(b Backend) func(*testing.T) {
	return func(t *testing.T) {
		r := require.New(t)
		doc := write(t, b, func(w stream.BlockWriter) error {
			return w.WriteString("x", "y")
		})
		cc := &closeCounter{Reader: bytes.NewReader(doc)}
		rd := b.NewReader(cc)
		_, err := rd.ReadString("wrong")
		r.Error(err)
		r.NoError(rd.Close())
		r.NoError(rd.Close())
		r.Equal(1, cc.n)

		_, err = rd.ReadString("x")
		r.ErrorIs(err, stream.ErrIO)
	}
}
