package stream

import (
	"errors"
	"testing"
)

func TestStateDepth(t *testing.T) {
	state := NewState()
	if state.Depth() != 0 {
		t.Errorf("expected depth 0, got %d", state.Depth())
	}

	state.Push("a")
	if state.Depth() != 1 {
		t.Errorf("expected depth 1, got %d", state.Depth())
	}

	state.Push("b")
	if state.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", state.Depth())
	}
	if state.Path() != "a/b" {
		t.Errorf("expected path 'a/b', got %q", state.Path())
	}

	name, err := state.Pop("")
	if err != nil {
		t.Fatal(err)
	}
	if name != "b" {
		t.Errorf("expected to pop 'b', got %q", name)
	}

	if _, err := state.Pop("a"); err != nil {
		t.Fatal(err)
	}
	if state.Depth() != 0 {
		t.Errorf("expected depth 0, got %d", state.Depth())
	}
}

func TestStatePopEmpty(t *testing.T) {
	state := NewState()
	_, err := state.Pop("")
	if !errors.Is(err, ErrUnbalanced) {
		t.Fatalf("expected ErrUnbalanced, got %v", err)
	}
	if !errors.Is(err, ErrStructure) {
		t.Errorf("expected ErrUnbalanced to be a structure error")
	}
}

func TestStatePopMismatch(t *testing.T) {
	state := NewState()
	state.Push("outer")
	state.Push("inner")
	_, err := state.Pop("outer")
	if !errors.Is(err, ErrUnbalanced) {
		t.Fatalf("expected ErrUnbalanced, got %v", err)
	}
	if state.Depth() != 2 {
		t.Errorf("failed pop changed depth to %d", state.Depth())
	}
}

func TestStateProcessElement(t *testing.T) {
	state := NewState()
	elems := []Element{
		Start("a"),
		Leaf("x", StringValue("1")),
		Start("b"),
		End("b"),
		End("a"),
	}
	depths := []int{1, 1, 2, 1, 0}
	for i, e := range elems {
		if err := state.ProcessElement(e); err != nil {
			t.Fatalf("element %d: %v", i, err)
		}
		if state.Depth() != depths[i] {
			t.Errorf("element %d: expected depth %d, got %d", i, depths[i], state.Depth())
		}
	}
	if err := state.ProcessElement(End("a")); !errors.Is(err, ErrUnbalanced) {
		t.Errorf("expected ErrUnbalanced for extra end, got %v", err)
	}
}

func TestStateTop(t *testing.T) {
	state := NewState()
	if _, ok := state.Top(); ok {
		t.Errorf("empty state has a top")
	}
	state.Push("a")
	top, ok := state.Top()
	if !ok || top != "a" {
		t.Errorf("expected top 'a', got %q %v", top, ok)
	}
	state.Reset()
	if state.Depth() != 0 {
		t.Errorf("expected depth 0 after reset, got %d", state.Depth())
	}
}
