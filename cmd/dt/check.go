package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"

	"github.com/teamworkguy2/datatransfer"
	"github.com/teamworkguy2/datatransfer/format"
	"github.com/teamworkguy2/datatransfer/stream"
)

func check(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	failed := 0
	for _, path := range args {
		f, err := cfg.inFormat(path)
		if err != nil {
			return err
		}
		in, err := openInput(cc, path)
		if err != nil {
			return err
		}
		st, err := checkStream(in, f)
		if err != nil {
			failed++
			fmt.Fprintf(cc.Out, "%s: %v\n", inputName(path), err)
			continue
		}
		fmt.Fprintf(cc.Out, "%s: %s\n", inputName(path), st)
	}
	if failed > 0 {
		return cli.ExitCodeErr(1)
	}
	return nil
}

type stats struct {
	Leaves, Blocks, MaxDepth int
}

func (s stats) String() string {
	return fmt.Sprintf("ok, %d elements (%d leaves, %d blocks), depth %d",
		s.Leaves+2*s.Blocks, s.Leaves, s.Blocks, s.MaxDepth)
}

// checkStream reads the document on in to the end. The Reader checks
// nesting and names as it goes.
func checkStream(in io.Reader, f format.Format) (stats, error) {
	var st stats
	r, err := datatransfer.NewReader(f, in)
	if err != nil {
		return st, err
	}
	defer r.Close()
	for {
		e, err := r.ReadNext()
		if err == io.EOF {
			return st, nil
		}
		if err != nil {
			return st, err
		}
		switch e.Kind() {
		case stream.KindLeaf:
			st.Leaves++
		case stream.KindStart:
			st.Blocks++
			st.MaxDepth = max(st.MaxDepth, r.Depth())
		}
	}
}
