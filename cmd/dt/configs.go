package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/teamworkguy2/datatransfer"
	"github.com/teamworkguy2/datatransfer/format"
)

type MainConfig struct {
	Color   bool   `cli:"name=color desc='dump with color'"`
	Compact bool   `cli:"name=compact desc='write text formats without indentation'"`
	Root    string `cli:"name=root desc='root element name of written xml'"`
	Config  string `cli:"name=config desc='toml file holding default settings'"`
	Trace   bool   `cli:"name=trace desc='log every element read and written to stderr'"`

	InFormat, OutFormat *format.Format
	// Indent is set by the config file; -compact overrides it.
	Indent *string
	// ColorSet records that Color was decided by a flag or the config file.
	ColorSet bool

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fps ...**format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

// flagSet reports whether the main option name was given on the command
// line.
func (cfg *MainConfig) flagSet(name string) bool {
	if cfg.Main == nil {
		return false
	}
	for _, opt := range cfg.Main.Opts {
		if opt.Name == name {
			return opt.Value != nil
		}
	}
	return false
}

// inFormat resolves the format of the input at path ("" or "-" for stdin).
func (cfg *MainConfig) inFormat(path string) (format.Format, error) {
	if cfg.InFormat != nil {
		return *cfg.InFormat, nil
	}
	if path == "" || path == "-" {
		return 0, fmt.Errorf("%w: reading stdin requires -I", cli.ErrUsage)
	}
	f, err := format.FromPath(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %w (use -I)", cli.ErrUsage, err)
	}
	return f, nil
}

func (cfg *MainConfig) outFormat() (format.Format, error) {
	if cfg.OutFormat != nil {
		return *cfg.OutFormat, nil
	}
	if cfg.Out == "" || cfg.Out == "-" {
		return 0, fmt.Errorf("%w: writing stdout requires -O", cli.ErrUsage)
	}
	f, err := format.FromPath(cfg.Out)
	if err != nil {
		return 0, fmt.Errorf("%w: %w (use -O)", cli.ErrUsage, err)
	}
	return f, nil
}

func (cfg *MainConfig) writeOpts() []datatransfer.Option {
	var res []datatransfer.Option
	switch {
	case cfg.Compact:
		res = append(res, datatransfer.WithIndent(""))
	case cfg.Indent != nil:
		res = append(res, datatransfer.WithIndent(*cfg.Indent))
	}
	if cfg.Root != "" {
		res = append(res, datatransfer.WithXMLRoot(cfg.Root))
	}
	return res
}

// colors decides whether output to w is colored: an explicit setting
// wins, otherwise terminals get color.
func (cfg *MainConfig) colors(w io.Writer) bool {
	if cfg.Color || cfg.ColorSet || cfg.flagSet("color") {
		return cfg.Color
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

type ConvertConfig struct {
	*MainConfig
	Convert *cli.Command
}

type DumpConfig struct {
	*MainConfig
	Types bool `cli:"name=types desc='show value types'"`
	Dump  *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Types bool `cli:"name=types desc='compare value types too'"`
	Diff  *cli.Command
}

type CheckConfig struct {
	*MainConfig
	Check *cli.Command
}
