package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/scott-cotton/cli"

	"github.com/teamworkguy2/datatransfer"
	"github.com/teamworkguy2/datatransfer/format"
	"github.com/teamworkguy2/datatransfer/internal/conformance"
)

func TestConvertStream(t *testing.T) {
	d, err := datatransfer.Marshal(format.JSONFormat, conformance.NoOne())
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	n, err := convertStream(bytes.NewReader(d), format.JSONFormat, &out, format.YAMLFormat)
	if err != nil {
		t.Fatal(err)
	}
	if n != 21 {
		t.Errorf("expected 21 elements, got %d", n)
	}
	got := &conformance.Person{}
	if err := datatransfer.Unmarshal(format.YAMLFormat, out.Bytes(), got); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(conformance.NoOne(), got); diff != "" {
		t.Errorf("person (-want +got):\n%s", diff)
	}
}

const jsonDoc = `{"person": {"id": 22, "tags": ["a"]}}`

const xmlDoc = `<document><person><id>22</id><tags><_>a</_></tags></person></document>`

func TestDumpTyped(t *testing.T) {
	var out bytes.Buffer
	if err := dumpStream(&out, strings.NewReader(jsonDoc), format.JSONFormat, plain(), true); err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		`person {`,
		`  id: !number 22`,
		`  tags {`,
		`    - !string "a"`,
		`  }`,
		`}`,
	}, "\n") + "\n"
	if diff := cmp.Diff(want, out.String()); diff != "" {
		t.Errorf("dump (-want +got):\n%s", diff)
	}
}

func TestDumpAcrossFormats(t *testing.T) {
	var j, x bytes.Buffer
	if err := dumpStream(&j, strings.NewReader(jsonDoc), format.JSONFormat, plain(), false); err != nil {
		t.Fatal(err)
	}
	if err := dumpStream(&x, strings.NewReader(xmlDoc), format.XMLFormat, plain(), false); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(j.String(), x.String()); diff != "" {
		t.Errorf("json and xml dumps differ (-json +xml):\n%s", diff)
	}
	if !strings.Contains(j.String(), `id: "22"`) {
		t.Errorf("untyped dump should quote values:\n%s", j.String())
	}
}

func TestDumpMalformed(t *testing.T) {
	var out bytes.Buffer
	err := dumpStream(&out, strings.NewReader(`{"a": [1, 2}`), format.JSONFormat, plain(), true)
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestDiffDumps(t *testing.T) {
	a := "x {\n  a: 1\n  b: 2\n}\n"
	b := "x {\n  a: 1\n  b: 3\n}\n"
	var out bytes.Buffer
	differs, err := diffDumps(&out, a, b, false)
	if err != nil {
		t.Fatal(err)
	}
	if !differs {
		t.Fatal("expected a difference")
	}
	want := " x {\n   a: 1\n-  b: 2\n+  b: 3\n }\n"
	if diff := cmp.Diff(want, out.String()); diff != "" {
		t.Errorf("diff (-want +got):\n%s", diff)
	}

	out.Reset()
	differs, err = diffDumps(&out, a, a, false)
	if err != nil || differs || out.Len() != 0 {
		t.Errorf("equal dumps: differs=%v err=%v out=%q", differs, err, out.String())
	}
}

func TestCheckStream(t *testing.T) {
	d, err := datatransfer.Marshal(format.BinaryFormat, conformance.NoOne())
	if err != nil {
		t.Fatal(err)
	}
	st, err := checkStream(bytes.NewReader(d), format.BinaryFormat)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(stats{Leaves: 11, Blocks: 5, MaxDepth: 3}, st); diff != "" {
		t.Errorf("stats (-want +got):\n%s", diff)
	}
	if st.String() != "ok, 21 elements (11 leaves, 5 blocks), depth 3" {
		t.Errorf("unexpected summary %q", st)
	}

	_, err = checkStream(bytes.NewReader(d[:len(d)-3]), format.BinaryFormat)
	if err == nil {
		t.Error("expected truncated document to fail")
	}
}

func TestLoadFileConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dt.toml")
	content := `
input = "json"
output = "yaml"
indent = "\t"
xml_root = "people"
color = true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	xml := format.XMLFormat
	cfg := &MainConfig{OutFormat: &xml}
	if err := loadFileConfig(path, cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.InFormat == nil || *cfg.InFormat != format.JSONFormat {
		t.Errorf("unexpected input format %v", cfg.InFormat)
	}
	if *cfg.OutFormat != format.XMLFormat {
		t.Errorf("flag output format should win, got %s", cfg.OutFormat)
	}
	if cfg.Indent == nil || *cfg.Indent != "\t" {
		t.Errorf("unexpected indent %v", cfg.Indent)
	}
	if cfg.Root != "people" {
		t.Errorf("unexpected root %q", cfg.Root)
	}
	if !cfg.colors(&bytes.Buffer{}) {
		t.Error("config file color should apply to any writer")
	}
}

func TestLoadFileConfigErrors(t *testing.T) {
	dir := t.TempDir()
	for name, content := range map[string]string{
		"unknown.toml": `colour = true`,
		"badfmt.toml":  `input = "csv"`,
		"syntax.toml":  `input = `,
	} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		if err := loadFileConfig(path, &MainConfig{}); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestResolveFormats(t *testing.T) {
	cfg := &MainConfig{}
	if f, err := cfg.inFormat("people.yml"); err != nil || f != format.YAMLFormat {
		t.Errorf("inFormat from path: %v, %v", f, err)
	}
	if _, err := cfg.inFormat("-"); !errors.Is(err, cli.ErrUsage) {
		t.Errorf("expected usage error for stdin, got %v", err)
	}
	if _, err := cfg.outFormat(); !errors.Is(err, cli.ErrUsage) {
		t.Errorf("expected usage error for stdout, got %v", err)
	}
	cfg.Out = "out.msgpack"
	if f, err := cfg.outFormat(); err != nil || f != format.MsgPackFormat {
		t.Errorf("outFormat from path: %v, %v", f, err)
	}
	j := format.JSONFormat
	cfg.InFormat = &j
	if f, err := cfg.inFormat("people.yml"); err != nil || f != format.JSONFormat {
		t.Errorf("-I should win over the extension: %v, %v", f, err)
	}
}

func TestWriteOpts(t *testing.T) {
	tab := "\t"
	cfg := &MainConfig{Indent: &tab, Compact: true}
	d, err := datatransfer.Marshal(format.JSONFormat, conformance.NoOne(), cfg.writeOpts()...)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Count(string(d), "\n") != 1 {
		t.Errorf("compact should win over the configured indent:\n%s", d)
	}
	cfg.Compact = false
	d, err = datatransfer.Marshal(format.JSONFormat, conformance.NoOne(), cfg.writeOpts()...)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(d), "\n\t\"person\"") {
		t.Errorf("expected tab indentation:\n%s", d)
	}
}
