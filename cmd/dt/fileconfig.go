package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/teamworkguy2/datatransfer/format"
)

// dt config file keys. Command line flags take precedence.
type fileConfig struct {
	Input   string `toml:"input"`
	Output  string `toml:"output"`
	Indent  string `toml:"indent"`
	XMLRoot string `toml:"xml_root"`
	Color   bool   `toml:"color"`
	Compact bool   `toml:"compact"`
}

func loadFileConfig(path string, cfg *MainConfig) error {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("load config %s: unknown key %q", path, undecoded[0].String())
	}
	if meta.IsDefined("input") && cfg.InFormat == nil {
		f, err := format.ParseFormat(strings.TrimSpace(raw.Input))
		if err != nil {
			return fmt.Errorf("load config %s: input: %w", path, err)
		}
		cfg.InFormat = &f
	}
	if meta.IsDefined("output") && cfg.OutFormat == nil {
		f, err := format.ParseFormat(strings.TrimSpace(raw.Output))
		if err != nil {
			return fmt.Errorf("load config %s: output: %w", path, err)
		}
		cfg.OutFormat = &f
	}
	if meta.IsDefined("indent") {
		cfg.Indent = &raw.Indent
	}
	if meta.IsDefined("xml_root") && cfg.Root == "" {
		cfg.Root = strings.TrimSpace(raw.XMLRoot)
	}
	if meta.IsDefined("color") && !cfg.flagSet("color") {
		cfg.Color = raw.Color
		cfg.ColorSet = true
	}
	if meta.IsDefined("compact") && !cfg.flagSet("compact") {
		cfg.Compact = raw.Compact
	}
	return nil
}
