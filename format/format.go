package format

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

type Format int

const (
	BinaryFormat Format = iota
	MsgPackFormat
	XMLFormat
	JSONFormat
	YAMLFormat
)

var ErrBadFormat = errors.New("bad format")

func ParseFormat(v string) (Format, error) {
	f, ok := map[string]Format{
		"b":       BinaryFormat,
		"bin":     BinaryFormat,
		"binary":  BinaryFormat,
		"m":       MsgPackFormat,
		"msgpack": MsgPackFormat,
		"x":       XMLFormat,
		"xml":     XMLFormat,
		"j":       JSONFormat,
		"json":    JSONFormat,
		"y":       YAMLFormat,
		"yaml":    YAMLFormat,
	}[strings.ToLower(v)]
	if ok {
		return f, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadFormat, v)
}

func (f Format) String() string {
	d, err := f.MarshalText()
	if err != nil {
		return err.Error()
	}
	return string(d)
}

func (f Format) MarshalText() ([]byte, error) {
	switch f {
	case BinaryFormat:
		return []byte("binary"), nil
	case MsgPackFormat:
		return []byte("msgpack"), nil
	case XMLFormat:
		return []byte("xml"), nil
	case JSONFormat:
		return []byte("json"), nil
	case YAMLFormat:
		return []byte("yaml"), nil
	default:
		return nil, fmt.Errorf("<err: %d is not a format>", f)
	}
}

func (f *Format) UnmarshalText(d []byte) error {
	pf, err := ParseFormat(string(d))
	if err != nil {
		return err
	}
	*f = pf
	return nil
}

// IsText reports whether documents in f are human readable.
func (f Format) IsText() bool {
	switch f {
	case XMLFormat, JSONFormat, YAMLFormat:
		return true
	}
	return false
}

// Suffix returns the file extension for this format (including the dot).
func (f Format) Suffix() string {
	switch f {
	case BinaryFormat:
		return ".dtb"
	case MsgPackFormat:
		return ".msgpack"
	case XMLFormat:
		return ".xml"
	case JSONFormat:
		return ".json"
	case YAMLFormat:
		return ".yaml"
	default:
		return ""
	}
}

// FromPath guesses the format of a file from its extension.
func FromPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".yml" {
		return YAMLFormat, nil
	}
	for _, f := range AllFormats() {
		if f.Suffix() == ext {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: no format for %q", ErrBadFormat, path)
}

// AllFormats returns all supported formats in preference order.
func AllFormats() []Format {
	return []Format{BinaryFormat, MsgPackFormat, XMLFormat, JSONFormat, YAMLFormat}
}
