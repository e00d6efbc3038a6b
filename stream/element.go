package stream

import (
	"fmt"
	"strconv"
)

// Kind classifies an Element.
type Kind int

const (
	KindLeaf Kind = iota
	KindStart
	KindEnd
)

func (k Kind) String() string {
	switch k {
	case KindLeaf:
		return "Leaf"
	case KindStart:
		return "StartBlock"
	case KindEnd:
		return "EndBlock"
	default:
		return "Unknown"
	}
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(d []byte) error {
	s := string(d)
	pk, ok := map[string]Kind{
		"Leaf":       KindLeaf,
		"StartBlock": KindStart,
		"EndBlock":   KindEnd,
	}[s]
	if ok {
		*k = pk
		return nil
	}
	return fmt.Errorf("unknown kind %q", s)
}

// Element is one token of a document: a leaf, a block start or a block end.
// Elements are values; the zero Element is an anonymous empty string leaf.
type Element struct {
	kind  Kind
	name  string
	value Value
}

// Leaf returns a leaf element. An empty name makes an anonymous entry.
func Leaf(name string, v Value) Element {
	return Element{kind: KindLeaf, name: name, value: v}
}

// Start returns a block start element.
func Start(name string) Element {
	return Element{kind: KindStart, name: name}
}

// End returns a block end element.
func End(name string) Element {
	return Element{kind: KindEnd, name: name}
}

func (e Element) Kind() Kind    { return e.kind }
func (e Element) IsLeaf() bool  { return e.kind == KindLeaf }
func (e Element) IsStart() bool { return e.kind == KindStart }
func (e Element) IsEnd() bool   { return e.kind == KindEnd }

// Name returns the field or block name, "" for anonymous entries.
func (e Element) Name() string { return e.name }

// HasName reports whether the element is named.
func (e Element) HasName() bool { return e.name != "" }

// Value returns the leaf payload. Block markers carry the zero Value.
func (e Element) Value() Value { return e.value }

// Content returns the leaf payload as text, "" for block markers.
func (e Element) Content() string {
	if e.kind != KindLeaf {
		return ""
	}
	return e.value.String()
}

func (e Element) String() string {
	switch e.kind {
	case KindStart:
		return "<" + e.name + ">"
	case KindEnd:
		return "</" + e.name + ">"
	}
	return e.name + "=" + strconv.Quote(e.value.String()) + "(" + e.value.Type.String() + ")"
}
