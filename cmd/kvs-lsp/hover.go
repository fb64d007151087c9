package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/signadot/kvs-format/go-kvs/ir"
	"go.lsp.dev/protocol"
)

func (s *Server) Hover(ctx context.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil {
		return nil, nil
	}
	off := offsetOf(doc.content, int(params.Position.Line), int(params.Position.Character))
	node := doc.entryAt(off)
	if node == nil {
		return nil, nil
	}
	sp := doc.spans[node]
	r := lspRange(sp.start, sp.end)
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.Markdown,
			Value: buildHoverText(node),
		},
		Range: &r,
	}, nil
}

// entryAt returns the innermost entry whose span holds offset off, or nil.
func (doc *document) entryAt(off int) *ir.Node {
	var (
		best      *ir.Node
		bestStart = -1
	)
	for n, sp := range doc.spans {
		if n == doc.node {
			continue
		}
		if sp.start.Offset <= off && off < sp.end.Offset && sp.start.Offset > bestStart {
			best = n
			bestStart = sp.start.Offset
		}
	}
	return best
}

func buildHoverText(node *ir.Node) string {
	parts := []string{fmt.Sprintf("**Path:** `%s`", node.Path())}
	if node.Parent != nil && node.Parent.Fields[node.ParentIndex].IsPositional() {
		parts = append(parts, "**Key:** positional")
	}
	switch node.Type {
	case ir.StringType:
		val := node.String
		if len(val) > 50 {
			val = val[:50] + "..."
		}
		parts = append(parts, fmt.Sprintf("**Value:** `%s`", val))
	case ir.ObjectType:
		parts = append(parts, fmt.Sprintf("**Value:** object with %d keys", node.Len()))
	}
	return strings.Join(parts, "\n\n")
}
