package parse

import (
	"fmt"
	"io"
	"strings"

	"github.com/signadot/kvs-format/go-kvs/debug"
	"github.com/signadot/kvs-format/go-kvs/format"
	"github.com/signadot/kvs-format/go-kvs/ir"
	"github.com/signadot/kvs-format/go-kvs/token"
)

// Parse parses d into a new object node. For KVS input the error is nil
// unless ParseStrict was given or the nesting limit was hit; in both cases
// the partial tree is returned along with the error.
func Parse(d []byte, opts ...ParseOption) (*ir.Node, error) {
	pOpts := newParseOpts(opts)
	switch pOpts.format {
	case format.JSONFormat:
		res, err := ir.FromJSON(d)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParse, err)
		}
		return res, nil
	case format.YAMLFormat:
		return parseYAML(d)
	}
	p := newParser(token.NewBytesSource(d), pOpts)
	res := ir.NewObject()
	p.track(res, token.Pos{})
	p.parseNode(res, 0, token.Pos{}, -1)
	return res, p.finish()
}

func ParseString(s string, opts ...ParseOption) (*ir.Node, error) {
	return Parse([]byte(s), opts...)
}

type parser struct {
	src   *token.Source
	opts  *parseOpts
	diags []Diagnostic
	err   error
	eof   bool
}

func newParser(src *token.Source, opts *parseOpts) *parser {
	return &parser{src: src, opts: opts}
}

func (p *parser) diag(k DiagKind, pos token.Pos) {
	d := Diagnostic{Kind: k, Pos: pos}
	if debug.Parse() {
		debug.Logf("parse: %s\n", d)
	}
	p.diags = append(p.diags, d)
}

func (p *parser) track(n *ir.Node, pos token.Pos) {
	if p.opts.positions != nil {
		p.opts.positions[n] = &pos
	}
}

// finish hands diagnostics to the caller and computes the parse error.
func (p *parser) finish() error {
	diags := p.diags
	p.diags = nil
	if p.opts.diags != nil {
		*p.opts.diags = append(*p.opts.diags, diags...)
	}
	if p.err != nil {
		return p.err
	}
	if p.opts.strict && len(diags) != 0 {
		return fmt.Errorf("%w: %s", ErrParse, diags[0])
	}
	return nil
}

// parseNode reads entries into n until the ']' closing its level or the
// end of input. At depth 0 it also stops once limit entries are stored,
// a negative limit meaning no limit. open is the position of the '['
// which started the level. It returns the number of entries stored.
func (p *parser) parseNode(n *ir.Node, depth int, open token.Pos, limit int) int {
	var (
		key, val []byte
		inMeta   bool
		inValue  bool
		started  bool
		entryPos token.Pos
		valPos   token.Pos
		pending  ir.Key
		blanks   int
		count    int
	)
	seen := make(map[string]struct{}, len(n.Fields))
	for i := range n.Fields {
		seen[n.Fields[i].String()] = struct{}{}
	}
	commitKey := func(pos token.Pos) ir.Key {
		if !started {
			entryPos = pos
		}
		k := strings.TrimSpace(string(key))
		key = key[:0]
		inMeta = false
		started = false
		if k == "" {
			res := ir.Positional(blanks)
			blanks++
			return res
		}
		return ir.Named(k)
	}
	store := func(k ir.Key, v *ir.Node) {
		ks := k.String()
		if _, dup := seen[ks]; dup {
			v = n.Put(k, v)
		} else {
			seen[ks] = struct{}{}
			v = n.Append(k, v)
		}
		p.track(v, entryPos)
		count++
	}

	for {
		pos := p.src.Pos()
		c, err := p.src.Next()
		if err != nil {
			if err != io.EOF {
				p.err = err
				return count
			}
			p.eof = true
			if inValue {
				p.diag(UnterminatedValue, valPos)
			}
			if depth > 0 {
				p.diag(UnclosedOpen, open)
			}
			return count
		}
		if inValue {
			if c != token.ValueEnd {
				if len(val) == 0 && token.IsSpace(c) {
					continue
				}
				val = append(val, c)
				continue
			}
			if next, err := p.src.Peek(); err == nil && next == token.ValueEnd {
				p.src.Next()
				val = append(val, c)
				continue
			}
			store(pending, ir.FromString(string(val)))
			val = val[:0]
			inValue = false
			if count == limit {
				return count
			}
			continue
		}
		switch c {
		case token.MetaStart:
			if !started {
				entryPos = pos
				started = true
			}
			inMeta = true
		case token.KeyEnd:
			pending = commitKey(pos)
			inValue = true
			valPos = pos
		case token.StructStart:
			k := commitKey(pos)
			if depth >= p.opts.maxDepth {
				p.diag(TooDeep, pos)
				p.err = fmt.Errorf("%w: limit %d at %s", ErrMaxDepth, p.opts.maxDepth, pos)
				return count
			}
			child := ir.NewObject()
			p.parseNode(child, depth+1, pos, -1)
			store(k, child)
			if p.err != nil || count == limit {
				return count
			}
		case token.StructEnd:
			if depth == 0 {
				p.diag(UnmatchedClose, pos)
				continue
			}
			return count
		case token.ValueEnd:
			p.diag(StrayValueEnd, pos)
		default:
			if inMeta {
				continue
			}
			if len(key) == 0 && token.IsSpace(c) {
				continue
			}
			if !started {
				entryPos = pos
				started = true
			}
			key = append(key, c)
		}
	}
}
