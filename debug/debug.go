package debug

import (
	"os"
	"strconv"
)

type debug struct {
	LoadEnv bool
	Parse   bool
	Encode  bool
	Merge   bool
	Match   bool
	Diff    bool
	Eval    bool
	LSP     bool
}

var d *debug

func init() {
	d = &debug{}
	d.LoadEnv = boolEnv("KVS_DEBUG_LOAD_ENV")
	d.Parse = boolEnv("KVS_DEBUG_PARSE")
	d.Encode = boolEnv("KVS_DEBUG_ENCODE")
	d.Merge = boolEnv("KVS_DEBUG_MERGE")
	d.Match = boolEnv("KVS_DEBUG_MATCH")
	d.Diff = boolEnv("KVS_DEBUG_DIFF")
	d.Eval = boolEnv("KVS_DEBUG_EVAL")
	d.LSP = boolEnv("KVS_DEBUG_LSP")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func LoadEnv() bool {
	return d.LoadEnv
}
func Parse() bool {
	return d.Parse
}
func Encode() bool {
	return d.Encode
}
func Merge() bool {
	return d.Merge
}
func Match() bool {
	return d.Match
}
func Diff() bool {
	return d.Diff
}
func Eval() bool {
	return d.Eval
}
func LSP() bool {
	return d.LSP
}
