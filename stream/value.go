package stream

import (
	"encoding/base64"
	"errors"
	"fmt"
	"math"
	"strconv"
	"unicode/utf8"
)

// ValueType records how a leaf was written. Text formats that cannot
// distinguish numeric widths report TypeNumber.
type ValueType uint8

const (
	TypeString ValueType = iota
	TypeBool
	TypeInt8
	TypeChar
	TypeInt16
	TypeInt32
	TypeInt64
	TypeFloat32
	TypeFloat64
	TypeBytes
	TypeNumber
)

var typeNames = [...]string{
	TypeString:  "string",
	TypeBool:    "bool",
	TypeInt8:    "int8",
	TypeChar:    "char",
	TypeInt16:   "int16",
	TypeInt32:   "int32",
	TypeInt64:   "int64",
	TypeFloat32: "float32",
	TypeFloat64: "float64",
	TypeBytes:   "bytes",
	TypeNumber:  "number",
}

func (t ValueType) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "unknown"
}

// Valid reports whether t is a known type.
func (t ValueType) Valid() bool { return int(t) < len(typeNames) }

// IsNumeric reports whether values of type t are written as numbers.
func (t ValueType) IsNumeric() bool {
	switch t {
	case TypeInt8, TypeInt16, TypeInt32, TypeInt64, TypeFloat32, TypeFloat64, TypeNumber:
		return true
	}
	return false
}

// Value is a leaf payload. Text holds the canonical textual form of every
// scalar; Data holds raw byte ranges when the backend carries them natively.
type Value struct {
	Type ValueType
	Text string
	Data []byte
}

var errBadChar = errors.New("not a single character")

func StringValue(s string) Value { return Value{Type: TypeString, Text: s} }
func BoolValue(b bool) Value     { return Value{Type: TypeBool, Text: strconv.FormatBool(b)} }
func Int8Value(i int8) Value     { return Value{Type: TypeInt8, Text: strconv.FormatInt(int64(i), 10)} }
func CharValue(r rune) Value     { return Value{Type: TypeChar, Text: string(r)} }
func Int16Value(i int16) Value   { return Value{Type: TypeInt16, Text: strconv.FormatInt(int64(i), 10)} }
func Int32Value(i int32) Value   { return Value{Type: TypeInt32, Text: strconv.FormatInt(int64(i), 10)} }
func Int64Value(i int64) Value   { return Value{Type: TypeInt64, Text: strconv.FormatInt(i, 10)} }
func NumberValue(s string) Value { return Value{Type: TypeNumber, Text: s} }

func Float32Value(f float32) Value {
	return Value{Type: TypeFloat32, Text: strconv.FormatFloat(float64(f), 'g', -1, 32)}
}

func Float64Value(f float64) Value {
	return Value{Type: TypeFloat64, Text: strconv.FormatFloat(f, 'g', -1, 64)}
}

// BytesValue holds b natively; its Text is the base64 form used by text
// formats.
func BytesValue(b []byte) Value {
	if b == nil {
		b = []byte{}
	}
	return Value{Type: TypeBytes, Data: b, Text: base64.StdEncoding.EncodeToString(b)}
}

// String returns the textual form of v.
func (v Value) String() string {
	if v.Type == TypeBytes && v.Text == "" && len(v.Data) > 0 {
		return base64.StdEncoding.EncodeToString(v.Data)
	}
	return v.Text
}

// IsFinite reports whether a numeric value can be written as a plain number.
// Text formats quote NaN and infinities.
func (v Value) IsFinite() bool {
	if v.Type != TypeFloat32 && v.Type != TypeFloat64 {
		return true
	}
	f, err := strconv.ParseFloat(v.Text, 64)
	return err == nil && !math.IsInf(f, 0) && !math.IsNaN(f)
}

func (v Value) Bool() (bool, error) {
	return strconv.ParseBool(v.Text)
}

// Int parses v as a signed integer that fits in bitSize bits.
func (v Value) Int(bitSize int) (int64, error) {
	return strconv.ParseInt(v.Text, 10, bitSize)
}

// Float parses v as a float of bitSize bits.
func (v Value) Float(bitSize int) (float64, error) {
	return strconv.ParseFloat(v.Text, bitSize)
}

// Char returns the single character held by v.
func (v Value) Char() (rune, error) {
	r, n := utf8.DecodeRuneInString(v.Text)
	if n == 0 || n != len(v.Text) || (r == utf8.RuneError && n == 1) {
		return 0, fmt.Errorf("%w: %q", errBadChar, v.Text)
	}
	return r, nil
}

// Bytes returns the byte range held by v, decoding base64 text when the
// backend did not carry raw bytes.
func (v Value) Bytes() ([]byte, error) {
	if v.Data != nil {
		return v.Data, nil
	}
	return base64.StdEncoding.DecodeString(v.Text)
}
