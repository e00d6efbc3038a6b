package debug

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Read    bool
	Write   bool
	Close   bool
	Collect bool
}

var d *debug

func init() {
	d = &debug{}
	d.Read = boolEnv("DT_DEBUG_READ")
	d.Write = boolEnv("DT_DEBUG_WRITE")
	d.Close = boolEnv("DT_DEBUG_CLOSE")
	d.Collect = boolEnv("DT_DEBUG_COLLECT")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Read() bool {
	return d.Read
}
func Write() bool {
	return d.Write
}
func Close() bool {
	return d.Close
}
func Collect() bool {
	return d.Collect
}

// Set overrides the environment settings; used by tests and the dt tool.
func Set(read, write, closing, collect bool) {
	d.Read, d.Write, d.Close, d.Collect = read, write, closing, collect
}

func LogAny(v any) {
	d, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", v)
		return
	}
	os.Stderr.Write(d)
}
