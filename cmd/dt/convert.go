package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"

	"github.com/teamworkguy2/datatransfer"
	"github.com/teamworkguy2/datatransfer/debug"
	"github.com/teamworkguy2/datatransfer/format"
	"github.com/teamworkguy2/datatransfer/stream"
)

func convert(cfg *ConvertConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Convert.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) > 1 {
		return fmt.Errorf("%w: convert takes at most one file, got %v", cli.ErrUsage, args)
	}
	path := ""
	if len(args) == 1 {
		path = args[0]
	}
	inFmt, err := cfg.inFormat(path)
	if err != nil {
		return err
	}
	outFmt, err := cfg.outFormat()
	if err != nil {
		return err
	}
	in, err := openInput(cc, path)
	if err != nil {
		return err
	}
	n, err := convertStream(in, inFmt, borrowed{cc.Out}, outFmt, cfg.writeOpts()...)
	if err != nil {
		return fmt.Errorf("error converting %s: %w", inputName(path), err)
	}
	if debug.Collect() {
		debug.Logf("converted %d elements from %s to %s\n", n, inFmt, outFmt)
	}
	return nil
}

// convertStream copies the document on in to out, changing its format. in
// is closed when done; out is closed only if it is an io.Closer.
func convertStream(in io.Reader, inFmt format.Format, out io.Writer, outFmt format.Format, opts ...datatransfer.Option) (int, error) {
	r, err := datatransfer.NewReader(inFmt, in)
	if err != nil {
		return 0, err
	}
	defer r.Close()
	w, err := datatransfer.NewWriter(outFmt, out, opts...)
	if err != nil {
		return 0, err
	}
	n, err := stream.Copy(w, r)
	if err != nil {
		w.Close()
		return n, err
	}
	return n, w.Close()
}

func inputName(path string) string {
	if path == "" || path == "-" {
		return "stdin"
	}
	return path
}
