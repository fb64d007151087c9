package parse

import (
	"bufio"
	"io"

	"github.com/signadot/kvs-format/go-kvs/ir"
	"github.com/signadot/kvs-format/go-kvs/token"
)

// Decoder reads KVS entries from a stream. Only the KVS format is
// supported; format options are ignored.
type Decoder struct {
	p *parser
}

func NewDecoder(r io.Reader, opts ...ParseOption) *Decoder {
	br, ok := r.(io.ByteScanner)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Decoder{p: newParser(token.NewSource(br), newParseOpts(opts))}
}

// Decode reads at most itemCount top level entries into n, or all
// remaining entries when itemCount is negative. Input after the last
// entry read stays buffered for the next call. Blank keys are numbered
// from 0 on each call. Decode returns io.EOF when the input is exhausted
// and no entry was read.
func (d *Decoder) Decode(n *ir.Node, itemCount int) (int, error) {
	if itemCount == 0 {
		return 0, nil
	}
	if d.p.err != nil {
		return 0, d.p.err
	}
	if d.p.eof {
		return 0, io.EOF
	}
	if n.Type != ir.ObjectType {
		n.Clear()
	}
	k := d.p.parseNode(n, 0, d.p.src.Pos(), itemCount)
	err := d.p.finish()
	if err == nil && k == 0 && d.p.eof {
		return 0, io.EOF
	}
	return k, err
}

// Pos returns the position of the next unread byte.
func (d *Decoder) Pos() token.Pos {
	return d.p.src.Pos()
}
