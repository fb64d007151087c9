package main

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/signadot/kvs-format/go-kvs/ir"
	"github.com/signadot/kvs-format/go-kvs/token"
	"go.lsp.dev/protocol"
)

func (s *Server) DocumentSymbol(ctx context.Context, params *protocol.DocumentSymbolParams) ([]interface{}, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil {
		return nil, nil
	}
	syms := documentSymbols(doc, doc.node)
	res := make([]interface{}, len(syms))
	for i := range syms {
		res[i] = syms[i]
	}
	return res, nil
}

func documentSymbols(doc *document, n *ir.Node) []protocol.DocumentSymbol {
	res := []protocol.DocumentSymbol{}
	if !n.IsObject() {
		return res
	}
	for i, c := range n.Values {
		sp, ok := doc.spans[c]
		if !ok {
			continue
		}
		key := n.Fields[i]
		sym := protocol.DocumentSymbol{
			Name:           symbolName(key),
			Range:          lspRange(sp.start, sp.end),
			SelectionRange: lspRange(sp.start, keyEnd(key, sp)),
		}
		if c.IsObject() {
			sym.Kind = protocol.SymbolKindObject
			sym.Detail = fmt.Sprintf("%d keys", c.Len())
			sym.Children = documentSymbols(doc, c)
		} else {
			sym.Kind = protocol.SymbolKindString
			sym.Detail = c.String
		}
		res = append(res, sym)
	}
	return res
}

func symbolName(k ir.Key) string {
	if k.IsPositional() {
		return fmt.Sprintf("[%d]", k.Index)
	}
	if k.Name == "" {
		return `""`
	}
	return k.Name
}

// keyEnd approximates where the key of an entry ends, keeping it inside
// the entry.
func keyEnd(k ir.Key, sp span) token.Pos {
	if k.IsPositional() {
		return sp.start
	}
	n := utf8.RuneCountInString(k.Name)
	res := sp.start
	res.Col += n
	res.Offset += len(k.Name)
	if res.Offset > sp.end.Offset || (sp.end.Line == sp.start.Line && res.Col > sp.end.Col) {
		return sp.start
	}
	return res
}
