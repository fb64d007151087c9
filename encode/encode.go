package encode

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/signadot/kvs-format/go-kvs/format"
	"github.com/signadot/kvs-format/go-kvs/ir"
	"github.com/signadot/kvs-format/go-kvs/token"
)

type EncState struct {
	depth     int
	indent    string
	pretty    bool
	forceKeys bool
	wrap      *string
	started   bool
	lineEmpty bool

	format format.Format

	Color func(ir.Type, ColorAttr, string) string
}

// Encode writes node to w. KVS output has no leading or trailing newline.
// A leaf node can only be encoded as KVS under EncodeWrap.
func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{
		indent: "\t",
	}
	for _, opt := range opts {
		opt(es)
	}
	switch es.format {
	case format.JSONFormat:
		return encodeJSON(node, w, es)
	case format.YAMLFormat:
		return encodeYAML(node, w, es)
	}
	if es.wrap != nil {
		return encodeEntry(w, es, ir.Named(*es.wrap), *es.wrap == "", node)
	}
	if node.Type != ir.ObjectType {
		return fmt.Errorf("%w: leaf at top level", ErrEncoding)
	}
	return encodeEntries(node, w, es)
}

func writeString(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	return err
}

// startEntry puts pretty output on a fresh, indented line.
func startEntry(w io.Writer, es *EncState) error {
	if !es.pretty {
		return nil
	}
	s := strings.Repeat(es.indent, es.depth)
	if es.started {
		s = "\n" + s
	}
	es.started = true
	es.lineEmpty = true
	return writeString(w, s)
}

func applyColor(es *EncState, t ir.Type, attr ColorAttr, v string) string {
	if es.Color == nil {
		return v
	}
	return es.Color(t, attr, v)
}

func checkKey(k string) error {
	for i := 0; i < len(k); i++ {
		if token.IsStructural(k[i]) {
			return fmt.Errorf("%w: key %q contains %q", ErrEncoding, k, k[i])
		}
	}
	if strings.TrimSpace(k) != k {
		return fmt.Errorf("%w: key %q has surrounding space", ErrEncoding, k)
	}
	return nil
}

// encodeEntries writes the entries of node. A key is left out when it
// equals both its index and the number of keys left out before it, so
// that the parser's blank key counter restores it.
func encodeEntries(node *ir.Node, w io.Writer, es *EncState) error {
	blanks := 0
	for i, v := range node.Values {
		k := node.Fields[i]
		elide := !es.forceKeys && k.AtIndex(i) && k.AtIndex(blanks)
		if elide {
			blanks++
		}
		if err := encodeEntry(w, es, k, elide, v); err != nil {
			return err
		}
	}
	return nil
}

func encodeEntry(w io.Writer, es *EncState, k ir.Key, elide bool, v *ir.Node) error {
	if err := startEntry(w, es); err != nil {
		return err
	}
	if !elide {
		ks := k.String()
		if ks == "" {
			return fmt.Errorf("%w: empty key would be read back as positional", ErrEncoding)
		}
		if err := checkKey(ks); err != nil {
			return err
		}
		attr := FieldColor
		if k.IsPositional() {
			attr = IndexColor
		}
		if err := writeString(w, applyColor(es, v.Type, attr, ks)); err != nil {
			return err
		}
		es.lineEmpty = false
	}
	if v.Type == ir.StringType {
		return encodeLeaf(w, es, v.String)
	}
	return encodeObject(w, es, v)
}

func encodeLeaf(w io.Writer, es *EncState, s string) error {
	parts := []string{
		applyColor(es, ir.StringType, SepColor, string(token.KeyEnd)),
		applyColor(es, ir.StringType, ValueColor, token.Escape(s)),
		applyColor(es, ir.StringType, SepColor, string(token.ValueEnd)),
	}
	return writeString(w, strings.Join(parts, ""))
}

func encodeObject(w io.Writer, es *EncState, v *ir.Node) error {
	open := applyColor(es, ir.ObjectType, BracketColor, string(token.StructStart))
	end := applyColor(es, ir.ObjectType, BracketColor, string(token.StructEnd))
	if err := bracket(w, es, open); err != nil {
		return err
	}
	es.lineEmpty = false
	es.depth++
	if err := encodeEntries(v, w, es); err != nil {
		return err
	}
	es.depth--
	es.lineEmpty = false
	return bracket(w, es, end)
}

func bracket(w io.Writer, es *EncState, b string) error {
	if es.pretty && !es.lineEmpty {
		if err := writeString(w, "\n"+strings.Repeat(es.indent, es.depth)); err != nil {
			return err
		}
	}
	return writeString(w, b)
}

func encodeJSON(node *ir.Node, w io.Writer, es *EncState) error {
	d, err := node.MarshalJSON()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	if es.pretty {
		buf := bytes.NewBuffer(nil)
		if err := json.Indent(buf, d, strings.Repeat(es.indent, es.depth), es.indent); err != nil {
			return fmt.Errorf("%w: %w", ErrEncoding, err)
		}
		d = buf.Bytes()
	}
	_, err = w.Write(d)
	return err
}

// isSequence reports whether node's keys are exactly 0..n-1 in order.
func isSequence(node *ir.Node) bool {
	if node.Len() == 0 {
		return false
	}
	for i := range node.Fields {
		if !node.Fields[i].AtIndex(i) {
			return false
		}
	}
	return true
}
