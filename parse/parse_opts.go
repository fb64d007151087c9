package parse

import (
	"github.com/signadot/kvs-format/go-kvs/format"
	"github.com/signadot/kvs-format/go-kvs/ir"
	"github.com/signadot/kvs-format/go-kvs/token"
)

const DefaultMaxDepth = 512

type parseOpts struct {
	format    format.Format
	maxDepth  int
	strict    bool
	diags     *[]Diagnostic
	positions map[*ir.Node]*token.Pos
}

func newParseOpts(opts []ParseOption) *parseOpts {
	pOpts := &parseOpts{format: format.KVSFormat, maxDepth: DefaultMaxDepth}
	for _, f := range opts {
		f(pOpts)
	}
	return pOpts
}

type ParseOption func(*parseOpts)

func ParseKVS() ParseOption {
	return ParseFormat(format.KVSFormat)
}
func ParseJSON() ParseOption {
	return ParseFormat(format.JSONFormat)
}
func ParseYAML() ParseOption {
	return ParseFormat(format.YAMLFormat)
}
func ParseFormat(f format.Format) ParseOption {
	return func(o *parseOpts) { o.format = f }
}

// ParseMaxDepth bounds the nesting of '[' structures. Values below 1 mean
// DefaultMaxDepth.
func ParseMaxDepth(n int) ParseOption {
	return func(o *parseOpts) {
		if n < 1 {
			n = DefaultMaxDepth
		}
		o.maxDepth = n
	}
}

// ParseDiagnostics appends the irregularities found in KVS input to dst.
func ParseDiagnostics(dst *[]Diagnostic) ParseOption {
	return func(o *parseOpts) { o.diags = dst }
}

// ParseStrict makes the first diagnostic an error wrapping ErrParse.
func ParseStrict() ParseOption {
	return func(o *parseOpts) { o.strict = true }
}

// ParsePositions records where each entry of KVS input starts.
func ParsePositions(m map[*ir.Node]*token.Pos) ParseOption {
	return func(o *parseOpts) {
		o.positions = m
	}
}
