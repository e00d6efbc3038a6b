package marshal_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/teamworkguy2/datatransfer/marshal"
	"github.com/teamworkguy2/datatransfer/stream"
)

type shape interface{ area() float64 }

type circle struct{ R float64 }
type square struct{ Side float64 }

func (c circle) area() float64 { return 3 * c.R * c.R }
func (s square) area() float64 { return s.Side * s.Side }

type triangle struct{}

func (triangle) area() float64 { return 0 }

func shapes(t *testing.T) *marshal.Registry[shape] {
	t.Helper()
	reg := marshal.NewRegistry[shape]()
	err := reg.Register("circle", circle{}, marshal.Funcs[shape]{
		EncodeFunc: func(w stream.BlockWriter, v shape) error {
			return w.WriteFloat64("circle", v.(circle).R)
		},
		DecodeFunc: func(r stream.BlockReader) (shape, error) {
			f, err := r.ReadFloat64("circle")
			return circle{f}, err
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	err = reg.Register("square", square{}, marshal.Funcs[shape]{
		EncodeFunc: func(w stream.BlockWriter, v shape) error {
			if err := w.WriteStartBlock("square"); err != nil {
				return err
			}
			if err := w.WriteFloat64("side", v.(square).Side); err != nil {
				return err
			}
			return w.WriteEndBlock()
		},
		DecodeFunc: func(r stream.BlockReader) (shape, error) {
			if err := r.ReadStartBlock("square"); err != nil {
				return nil, err
			}
			f, err := r.ReadFloat64("side")
			if err != nil {
				return nil, err
			}
			return square{f}, r.ReadEndBlock()
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	return reg
}

func TestRegister(t *testing.T) {
	reg := shapes(t)
	if diff := cmp.Diff([]string{"circle", "square"}, reg.Names()); diff != "" {
		t.Errorf("names (-want +got):\n%s", diff)
	}
	none := marshal.Funcs[shape]{}
	if err := reg.Register("", triangle{}, none); err == nil {
		t.Error("expected error for empty name")
	}
	if err := reg.Register("circle", triangle{}, none); err == nil {
		t.Error("expected error for duplicate name")
	}
	if err := reg.Register("round", circle{}, none); err == nil {
		t.Error("expected error for duplicate type")
	}
}

func TestVariantList(t *testing.T) {
	reg := shapes(t)
	want := []shape{circle{1}, square{2}, circle{0.5}}
	elems := record(t, func(w stream.BlockWriter) error {
		return marshal.WriteVariantList(w, "shapes", want, reg)
	})
	got, err := marshal.ReadVariantList(replay(elems...), "shapes", reg)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("shapes (-want +got):\n%s", diff)
	}
}

func TestRegistryUnknown(t *testing.T) {
	reg := shapes(t)
	w := stream.NewWriter(&stream.Recorder{})
	err := reg.Encode(w, triangle{})
	if !errors.Is(err, marshal.ErrUnknownType) || !errors.Is(err, stream.ErrUnsupported) {
		t.Errorf("expected ErrUnknownType, got %v", err)
	}

	r := replay(
		stream.Start("shapes"),
		stream.Leaf("hexagon", stream.Float64Value(1)),
		stream.End("shapes"),
	)
	_, err = marshal.ReadVariantList(r, "shapes", reg)
	if !errors.Is(err, marshal.ErrUnknownBlock) {
		t.Errorf("expected ErrUnknownBlock, got %v", err)
	}
}

func TestRegistryDecodeAtEnd(t *testing.T) {
	reg := shapes(t)
	r := replay(stream.Start("shapes"), stream.End("shapes"))
	if err := r.ReadStartBlock("shapes"); err != nil {
		t.Fatal(err)
	}
	if _, err := reg.Decode(r); !errors.Is(err, marshal.ErrElementShape) {
		t.Errorf("expected ErrElementShape, got %v", err)
	}
}

func TestRegistryEncoderNameChecked(t *testing.T) {
	reg := marshal.NewRegistry[shape]()
	err := reg.Register("circle", circle{}, marshal.Funcs[shape]{
		EncodeFunc: func(w stream.BlockWriter, v shape) error {
			return w.WriteFloat64("disc", v.(circle).R)
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	w := stream.NewWriter(&stream.Recorder{})
	if err := reg.Encode(w, circle{1}); !errors.Is(err, marshal.ErrElementName) {
		t.Errorf("expected ErrElementName, got %v", err)
	}
}
