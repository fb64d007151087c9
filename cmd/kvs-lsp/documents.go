package main

import (
	"context"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/signadot/kvs-format/go-kvs/debug"
	"github.com/signadot/kvs-format/go-kvs/ir"
	"github.com/signadot/kvs-format/go-kvs/parse"
	"github.com/signadot/kvs-format/go-kvs/token"
	"go.lsp.dev/protocol"
)

type documentStore struct {
	mu   sync.RWMutex
	docs map[string]*document
}

// span is the extent of an entry, from the start of its key to the start
// of whatever follows it.
type span struct {
	start, end token.Pos
}

type document struct {
	uri     string
	content string
	version int32
	node    *ir.Node
	err     error
	diags   []parse.Diagnostic
	spans   map[*ir.Node]span
}

func newDocument(uri, content string, version int32) *document {
	positions := make(map[*ir.Node]*token.Pos)
	doc := &document{
		uri:     uri,
		content: content,
		version: version,
	}
	doc.node, doc.err = parse.ParseString(content, parse.ParseDiagnostics(&doc.diags), parse.ParsePositions(positions))
	if doc.node == nil {
		doc.node = ir.NewObject()
	}
	doc.spans = make(map[*ir.Node]span, len(positions)+1)
	end := endPos(content)
	doc.spans[doc.node] = span{end: end}
	computeSpans(doc.node, positions, end, doc.spans)
	if debug.LSP() {
		debug.Logf("parsed %s version %d: %d entries, %d diagnostics\n", uri, version, len(positions), len(doc.diags))
	}
	return doc
}

// computeSpans records the span of each child of n; the last child ends
// where n ends.
func computeSpans(n *ir.Node, positions map[*ir.Node]*token.Pos, end token.Pos, spans map[*ir.Node]span) {
	if !n.IsObject() {
		return
	}
	for i := len(n.Values) - 1; i >= 0; i-- {
		c := n.Values[i]
		p := positions[c]
		if p == nil {
			continue
		}
		spans[c] = span{start: *p, end: end}
		computeSpans(c, positions, end, spans)
		end = *p
	}
}

func endPos(content string) token.Pos {
	res := token.Pos{Offset: len(content)}
	for _, r := range content {
		if r == '\n' {
			res.Line++
			res.Col = 0
			continue
		}
		res.Col++
	}
	return res
}

func (ds *documentStore) get(uri string) *document {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return ds.docs[uri]
}

func (ds *documentStore) put(uri string, content string, version int32) *document {
	doc := newDocument(uri, content, version)
	ds.mu.Lock()
	defer ds.mu.Unlock()
	ds.docs[uri] = doc
	return doc
}

func (ds *documentStore) remove(uri string) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	delete(ds.docs, uri)
}

func lspPos(p token.Pos) protocol.Position {
	return protocol.Position{Line: uint32(p.Line), Character: uint32(p.Col)}
}

func lspRange(start, end token.Pos) protocol.Range {
	return protocol.Range{Start: lspPos(start), End: lspPos(end)}
}

func (s *Server) publishDiagnostics(ctx context.Context, doc *document) {
	if s.conn == nil {
		return
	}
	s.conn.Notify(ctx, protocol.MethodTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         protocol.DocumentURI(doc.uri),
		Version:     uint32(doc.version),
		Diagnostics: validateDocument(doc),
	})
}

func validateDocument(doc *document) []protocol.Diagnostic {
	res := []protocol.Diagnostic{}
	for _, d := range doc.diags {
		sev := protocol.DiagnosticSeverityWarning
		if d.Kind == parse.TooDeep {
			sev = protocol.DiagnosticSeverityError
		}
		end := d.Pos
		end.Col++
		end.Offset++
		res = append(res, protocol.Diagnostic{
			Range:    lspRange(d.Pos, end),
			Severity: sev,
			Message:  d.Kind.String(),
			Source:   "kvs",
		})
	}
	return res
}

func (s *Server) DidOpen(ctx context.Context, params *protocol.DidOpenTextDocumentParams) error {
	doc := s.docs.put(string(params.TextDocument.URI), params.TextDocument.Text, params.TextDocument.Version)
	s.publishDiagnostics(ctx, doc)
	return nil
}

func (s *Server) DidChange(ctx context.Context, params *protocol.DidChangeTextDocumentParams) error {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil {
		return nil
	}
	content := applyChanges(doc.content, params.ContentChanges)
	doc = s.docs.put(string(params.TextDocument.URI), content, params.TextDocument.Version)
	s.publishDiagnostics(ctx, doc)
	return nil
}

func applyChanges(content string, changes []protocol.TextDocumentContentChangeEvent) string {
	for _, change := range changes {
		r := change.Range
		if r == (protocol.Range{}) && change.RangeLength == 0 {
			content = change.Text
			continue
		}
		start := offsetOf(content, int(r.Start.Line), int(r.Start.Character))
		end := offsetOf(content, int(r.End.Line), int(r.End.Character))
		if start > end {
			start, end = end, start
		}
		content = content[:start] + change.Text + content[end:]
	}
	return content
}

func (s *Server) DidClose(ctx context.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.docs.remove(string(params.TextDocument.URI))
	return nil
}

// offsetOf returns the byte offset of a 0 based line and rune column,
// clamped to the end of the line.
func offsetOf(content string, line, col int) int {
	i := 0
	for l := 0; l < line; l++ {
		j := strings.IndexByte(content[i:], '\n')
		if j == -1 {
			return len(content)
		}
		i += j + 1
	}
	for c := 0; c < col && i < len(content); c++ {
		if content[i] == '\n' {
			break
		}
		_, w := utf8.DecodeRuneInString(content[i:])
		i += w
	}
	return i
}
