package format

import (
	"errors"
	"testing"
)

func TestParseFormat(t *testing.T) {
	for _, f := range AllFormats() {
		got, err := ParseFormat(f.String())
		if err != nil {
			t.Fatalf("parse %s: %v", f, err)
		}
		if got != f {
			t.Errorf("parse %s: got %s", f, got)
		}
	}
	if f, err := ParseFormat("Y"); err != nil || f != YAMLFormat {
		t.Errorf("short upper case name: got %v, %v", f, err)
	}
	if _, err := ParseFormat("toml"); !errors.Is(err, ErrBadFormat) {
		t.Errorf("expected ErrBadFormat, got %v", err)
	}
}

func TestFromPath(t *testing.T) {
	for path, want := range map[string]Format{
		"a/b/people.json": JSONFormat,
		"people.YML":      YAMLFormat,
		"people.yaml":     YAMLFormat,
		"dump.dtb":        BinaryFormat,
		"records.msgpack": MsgPackFormat,
		"/tmp/export.xml": XMLFormat,
	} {
		got, err := FromPath(path)
		if err != nil {
			t.Errorf("%s: %v", path, err)
			continue
		}
		if got != want {
			t.Errorf("%s: got %s, want %s", path, got, want)
		}
	}
	if _, err := FromPath("notes.txt"); !errors.Is(err, ErrBadFormat) {
		t.Errorf("expected ErrBadFormat, got %v", err)
	}
}

func TestText(t *testing.T) {
	var f Format
	if err := f.UnmarshalText([]byte("msgpack")); err != nil {
		t.Fatal(err)
	}
	if f != MsgPackFormat || f.IsText() {
		t.Errorf("unexpected %s (text=%v)", f, f.IsText())
	}
	if _, err := Format(99).MarshalText(); err == nil {
		t.Error("expected error marshaling unknown format")
	}
}
