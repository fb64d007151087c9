package main

import (
	"bytes"
	"context"
	"strings"

	"github.com/signadot/kvs-format/go-kvs/encode"
	"go.lsp.dev/protocol"
)

func (s *Server) Formatting(ctx context.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil {
		return nil, nil
	}
	formatted, ok := formatDocument(doc, params.Options)
	if !ok || formatted == doc.content {
		return []protocol.TextEdit{}, nil
	}
	return []protocol.TextEdit{
		{
			Range:   lspRange(doc.spans[doc.node].start, doc.spans[doc.node].end),
			NewText: formatted,
		},
	}, nil
}

// formatDocument pretty prints doc. Documents with irregularities are left
// alone, as formatting would drop their unparsed text.
func formatDocument(doc *document, opts protocol.FormattingOptions) (string, bool) {
	if doc.err != nil || len(doc.diags) != 0 {
		return "", false
	}
	indent := "\t"
	if opts.InsertSpaces && opts.TabSize > 0 {
		indent = strings.Repeat(" ", int(opts.TabSize))
	}
	var buf bytes.Buffer
	err := encode.Encode(doc.node, &buf,
		encode.EncodePretty(true),
		encode.EncodeIndent(indent),
	)
	if err != nil {
		return "", false
	}
	if opts.InsertFinalNewline && buf.Len() != 0 {
		buf.WriteByte('\n')
	}
	return buf.String(), true
}
