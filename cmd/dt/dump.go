package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"

	"github.com/teamworkguy2/datatransfer"
	"github.com/teamworkguy2/datatransfer/format"
	"github.com/teamworkguy2/datatransfer/stream"
)

func dump(cfg *DumpConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Dump.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	p := plain()
	if cfg.colors(cc.Out) {
		p = colored()
	}
	for i, path := range args {
		if i > 0 {
			if _, err := io.WriteString(cc.Out, "---\n"); err != nil {
				return err
			}
		}
		f, err := cfg.inFormat(path)
		if err != nil {
			return err
		}
		in, err := openInput(cc, path)
		if err != nil {
			return err
		}
		if err := dumpStream(cc.Out, in, f, p, cfg.Types); err != nil {
			return fmt.Errorf("error processing %s: %w", inputName(path), err)
		}
	}
	return nil
}

// palette renders the parts of a dump line.
type palette struct {
	name, tag, sep, str, num, boolean func(string, ...any) string
}

func plain() *palette {
	return &palette{
		name:    fmt.Sprintf,
		tag:     fmt.Sprintf,
		sep:     fmt.Sprintf,
		str:     fmt.Sprintf,
		num:     fmt.Sprintf,
		boolean: fmt.Sprintf,
	}
}

func colored() *palette {
	return &palette{
		name:    sprintf(color.RGB(128, 168, 196)),
		tag:     sprintf(color.RGB(74, 92, 138)),
		sep:     sprintf(color.RGB(196, 128, 128)),
		str:     sprintf(color.RGB(8, 196, 16)),
		num:     sprintf(color.RGB(128, 216, 236)),
		boolean: sprintf(color.New(color.FgCyan)),
	}
}

// sprintf colors regardless of whether stdout is a terminal; the caller
// has already decided.
func sprintf(c *color.Color) func(string, ...any) string {
	c.EnableColor()
	return c.SprintfFunc()
}

// dumpStream writes one line per element of the document on in, indented
// by depth. Leaves are "name: value", anonymous leaves "- value"; blocks
// are "name {" ... "}". With types every value is prefixed by its type as
// a tag; without, every value is quoted so documents from different
// formats compare equal.
func dumpStream(w io.Writer, in io.Reader, f format.Format, p *palette, types bool) error {
	r, err := datatransfer.NewReader(f, in)
	if err != nil {
		return err
	}
	defer r.Close()
	bw := bufio.NewWriter(w)
	for {
		e, err := r.ReadNext()
		if err == io.EOF {
			break
		}
		if err != nil {
			bw.Flush()
			return err
		}
		bw.WriteString(dumpLine(e, r.Depth(), p, types))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

func dumpLine(e stream.Element, depth int, p *palette, types bool) string {
	var sb strings.Builder
	switch e.Kind() {
	case stream.KindStart:
		sb.WriteString(strings.Repeat("  ", depth-1))
		sb.WriteString(entryName(e, p))
		sb.WriteString(" " + p.sep("{"))
		return sb.String()
	case stream.KindEnd:
		sb.WriteString(strings.Repeat("  ", depth))
		sb.WriteString(p.sep("}"))
		return sb.String()
	}
	sb.WriteString(strings.Repeat("  ", depth))
	if e.HasName() {
		sb.WriteString(p.name("%s", e.Name()) + p.sep(":") + " ")
	} else {
		sb.WriteString(p.sep("-") + " ")
	}
	v := e.Value()
	if types {
		sb.WriteString(p.tag("!%s", v.Type) + " ")
	}
	sb.WriteString(dumpValue(v, p, types))
	return sb.String()
}

func entryName(e stream.Element, p *palette) string {
	if !e.HasName() {
		return p.sep("-")
	}
	return p.name("%s", e.Name())
}

func dumpValue(v stream.Value, p *palette, types bool) string {
	if !types {
		return p.str("%s", strconv.Quote(v.String()))
	}
	switch {
	case v.Type == stream.TypeBool:
		return p.boolean("%s", v.Text)
	case v.Type == stream.TypeString, v.Type == stream.TypeChar, v.Type == stream.TypeBytes:
		return p.str("%s", strconv.Quote(v.String()))
	case !v.IsFinite():
		return p.num("%s", strconv.Quote(v.Text))
	}
	return p.num("%s", v.Text)
}
