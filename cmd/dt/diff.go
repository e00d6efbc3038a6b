package main

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	var dumps [2]string
	for i, path := range args {
		f, err := cfg.inFormat(path)
		if err != nil {
			return err
		}
		in, err := openInput(cc, path)
		if err != nil {
			return err
		}
		var buf bytes.Buffer
		if err := dumpStream(&buf, in, f, plain(), cfg.Types); err != nil {
			return fmt.Errorf("error decoding %s: %w", inputName(path), err)
		}
		dumps[i] = buf.String()
	}
	differs, err := diffDumps(cc.Out, dumps[0], dumps[1], cfg.colors(cc.Out))
	if err != nil {
		return err
	}
	if differs {
		return cli.ExitCodeErr(1)
	}
	return nil
}

// diffDumps writes a line diff of two dumps to w: removed lines prefixed
// by "-", added lines by "+" and common lines by a space. Nothing is
// written when the dumps are equal.
func diffDumps(w io.Writer, a, b string, colors bool) (bool, error) {
	if a == b {
		return false, nil
	}
	dmp := diffpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)

	del, ins := fmt.Sprintf, fmt.Sprintf
	if colors {
		del, ins = sprintf(color.New(color.FgRed)), sprintf(color.New(color.FgGreen))
	}
	var sb strings.Builder
	for _, d := range diffs {
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			line = strings.TrimSuffix(line, "\n")
			switch d.Type {
			case diffpatch.DiffDelete:
				sb.WriteString(del("-%s", line))
			case diffpatch.DiffInsert:
				sb.WriteString(ins("+%s", line))
			default:
				sb.WriteString(" " + line)
			}
			sb.WriteByte('\n')
		}
	}
	_, err := io.WriteString(w, sb.String())
	return true, err
}
