package main

import (
	"context"
	"slices"
	"strings"

	"github.com/signadot/kvs-format/go-kvs/ir"
	"go.lsp.dev/protocol"
)

func (s *Server) Completion(ctx context.Context, params *protocol.CompletionParams) (*protocol.CompletionList, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil {
		return nil, nil
	}
	off := offsetOf(doc.content, int(params.Position.Line), int(params.Position.Character))
	return &protocol.CompletionList{Items: completeKeys(doc, off)}, nil
}

// objectAt returns the innermost object whose span holds offset off. The
// root always qualifies.
func (doc *document) objectAt(off int) *ir.Node {
	best := doc.node
	bestStart := -1
	for n, sp := range doc.spans {
		if n == doc.node || !n.IsObject() {
			continue
		}
		if sp.start.Offset < off && off <= sp.end.Offset && sp.start.Offset > bestStart {
			best = n
			bestStart = sp.start.Offset
		}
	}
	return best
}

// shape is the key path of n with positional keys replaced by "*", so that
// entries of sibling lists share a shape.
func shape(n *ir.Node) string {
	var parts []string
	for x := n; x.Parent != nil; x = x.Parent {
		k := x.Parent.Fields[x.ParentIndex]
		if k.IsPositional() {
			parts = append(parts, "*")
			continue
		}
		parts = append(parts, k.Name)
	}
	slices.Reverse(parts)
	return ir.FormatPath(parts...)
}

// completeKeys suggests named keys which appear in objects shaped like the
// one at off but are missing from it.
func completeKeys(doc *document, off int) []protocol.CompletionItem {
	target := doc.objectAt(off)
	want := shape(target)
	present := map[string]bool{}
	for _, k := range target.Fields {
		if !k.IsPositional() {
			present[k.Name] = true
		}
	}
	items := []protocol.CompletionItem{}
	doc.node.Visit(func(n *ir.Node, isPost bool) (bool, error) {
		if isPost || !n.IsObject() {
			return true, nil
		}
		if n == target || shape(n) != want {
			return true, nil
		}
		for i, k := range n.Fields {
			if k.IsPositional() || present[k.Name] {
				continue
			}
			present[k.Name] = true
			item := protocol.CompletionItem{
				Label:      k.Name,
				Kind:       protocol.CompletionItemKindProperty,
				Detail:     "from " + n.Path(),
				InsertText: k.Name + "=",
			}
			if n.Values[i].IsObject() {
				item.Kind = protocol.CompletionItemKindModule
				item.InsertText = k.Name + "["
			}
			items = append(items, item)
		}
		return true, nil
	})
	slices.SortStableFunc(items, func(a, b protocol.CompletionItem) int {
		return strings.Compare(a.Label, b.Label)
	})
	return items
}
