package datatransfer

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/teamworkguy2/datatransfer/format"
	"github.com/teamworkguy2/datatransfer/internal/conformance"
	"github.com/teamworkguy2/datatransfer/marshal"
	"github.com/teamworkguy2/datatransfer/stream"
)

func TestMarshalRoundTrip(t *testing.T) {
	for _, f := range format.AllFormats() {
		t.Run(f.String(), func(t *testing.T) {
			d, err := Marshal(f, conformance.NoOne())
			require.NoError(t, err)
			got := &conformance.Person{}
			require.NoError(t, Unmarshal(f, d, got))
			require.Equal(t, conformance.NoOne(), got)
		})
	}
}

func TestConvert(t *testing.T) {
	for _, from := range format.AllFormats() {
		for _, to := range format.AllFormats() {
			t.Run(from.String()+"-"+to.String(), func(t *testing.T) {
				d, err := Marshal(from, conformance.NoOne())
				require.NoError(t, err)
				r, err := NewReader(from, bytes.NewReader(d))
				require.NoError(t, err)
				var out bytes.Buffer
				w, err := NewWriter(to, &out)
				require.NoError(t, err)
				_, err = stream.Copy(w, r)
				require.NoError(t, err)
				require.NoError(t, w.Close())
				require.NoError(t, r.Close())

				got := &conformance.Person{}
				require.NoError(t, Unmarshal(to, out.Bytes(), got))
				require.Equal(t, conformance.NoOne(), got)
			})
		}
	}
}

func TestOptions(t *testing.T) {
	d, err := Marshal(format.XMLFormat, conformance.NoOne(), WithIndent(""), WithXMLRoot("people"))
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(d, []byte("<people><person><id>22</id>")), "got %s", d)
	require.NotContains(t, string(d), "\n")

	d, err = Marshal(format.JSONFormat, conformance.NoOne(), WithIndent(""))
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(d, []byte(`{"person":{"id":22,`)), "got %s", d)
}

func TestBadFormat(t *testing.T) {
	_, err := NewReader(format.Format(42), strings.NewReader(""))
	require.ErrorIs(t, err, format.ErrBadFormat)
	_, err = NewWriter(format.Format(42), &bytes.Buffer{})
	require.ErrorIs(t, err, format.ErrBadFormat)
	_, err = Create(filepath.Join(t.TempDir(), "notes.txt"))
	require.ErrorIs(t, err, format.ErrBadFormat)
}

func TestTrailingContent(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(format.BinaryFormat, &buf)
	require.NoError(t, err)
	require.NoError(t, conformance.NoOne().MarshalBlock(w))
	require.NoError(t, w.WriteInt32("extra", 1))
	require.NoError(t, w.Close())

	err = Unmarshal(format.BinaryFormat, buf.Bytes(), &conformance.Person{})
	require.ErrorIs(t, err, stream.ErrStructure)
}

func TestSaveLoad(t *testing.T) {
	people := marshal.Funcs[[]*conformance.Person]{
		EncodeFunc: func(w stream.BlockWriter, v []*conformance.Person) error {
			return marshal.WriteSelfList(w, "people", "person", v)
		},
		DecodeFunc: func(r stream.BlockReader) ([]*conformance.Person, error) {
			return marshal.ReadSelfList[conformance.Person](r, "people", "person")
		},
	}
	want := []*conformance.Person{conformance.NoOne(), {Name: "Some One", Cities: []string{}, Properties: map[string]string{}}}
	dir := t.TempDir()
	for _, f := range format.AllFormats() {
		t.Run(f.String(), func(t *testing.T) {
			path := filepath.Join(dir, "people"+f.Suffix())
			require.NoError(t, Save(path, want, people))
			info, err := os.Stat(path)
			require.NoError(t, err)
			require.NotZero(t, info.Size())

			got, err := Load[[]*conformance.Person](path, people)
			require.NoError(t, err)
			require.Equal(t, want, got)
		})
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"), marshal.StringLeaf("x"))
	require.True(t, errors.Is(err, os.ErrNotExist), "got %v", err)
}
