package parse

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/signadot/kvs-format/go-kvs/ir"
	"github.com/signadot/kvs-format/go-kvs/token"
)

func toJSON(t *testing.T, n *ir.Node) string {
	t.Helper()
	d, err := ir.ToJSON(n)
	if err != nil {
		t.Fatal(err)
	}
	return string(d)
}

type parseTest struct {
	name  string
	in    string
	out   string
	diags []DiagKind
}

func TestParse(t *testing.T) {
	pts := []parseTest{
		{name: "empty", in: ``, out: `{}`},
		{name: "whitespace", in: " \n\t", out: `{}`},
		{
			name: "nesting",
			in:   `host[ip=127.0.0.1;port=80;]`,
			out:  `{"host":{"ip":"127.0.0.1","port":"80"}}`,
		},
		{name: "positional", in: `=x;=y;`, out: `{"0":"x","1":"y"}`},
		{name: "escape", in: `a=a;;b;`, out: `{"a":"a;b"}`},
		{name: "escape at end", in: `a=b;;;`, out: `{"a":"b;"}`},
		{
			name: "blank counter shared",
			in:   `=x;=y;a=z;[b=1;]`,
			out:  `{"0":"x","1":"y","a":"z","2":{"b":"1"}}`,
		},
		{name: "blank counts blanks", in: `a=1;=x;`, out: `{"a":"1","0":"x"}`},
		{
			name: "counter per level",
			in:   `=a;[=b;=c;]=d;`,
			out:  `{"0":"a","1":{"0":"b","1":"c"},"2":"d"}`,
		},
		{
			name: "sibling structures",
			in:   `[a=1;][b=2;]`,
			out:  `{"0":{"a":"1"},"1":{"b":"2"}}`,
		},
		{name: "meta discarded", in: `key~meta=v;`, out: `{"key":"v"}`},
		{name: "meta only", in: `~m[x=1;]`, out: `{"0":{"x":"1"}}`},
		{name: "key and value space", in: "  a  =  v ;\n", out: `{"a":"v "}`},
		{name: "pretty layout", in: "a=1;\nhost\n[\n\tip=x;\n]", out: `{"a":"1","host":{"ip":"x"}}`},
		{name: "literal structurals", in: `a=x=[y]~;`, out: `{"a":"x=[y]~"}`},
		{name: "duplicate keys", in: `a=1;b=2;a=3;`, out: `{"a":"3","b":"2"}`},
		{name: "empty value", in: `a=;`, out: `{"a":""}`},
		{name: "partial key at close", in: `a[b=1;c]d=2;`, out: `{"a":{"b":"1"},"d":"2"}`},
		{name: "unicode", in: `clé=värde;`, out: `{"clé":"värde"}`},
		{
			name:  "unterminated value",
			in:    `a=1;b=2`,
			out:   `{"a":"1"}`,
			diags: []DiagKind{UnterminatedValue},
		},
		{
			name:  "unclosed",
			in:    `a[b=1;`,
			out:   `{"a":{"b":"1"}}`,
			diags: []DiagKind{UnclosedOpen},
		},
		{
			name:  "unclosed twice",
			in:    `a[b[c=1;`,
			out:   `{"a":{"b":{"c":"1"}}}`,
			diags: []DiagKind{UnclosedOpen, UnclosedOpen},
		},
		{
			name:  "unmatched close",
			in:    `]a=1;`,
			out:   `{"a":"1"}`,
			diags: []DiagKind{UnmatchedClose},
		},
		{
			name:  "stray value end",
			in:    `;a=1;`,
			out:   `{"a":"1"}`,
			diags: []DiagKind{StrayValueEnd},
		},
	}
	for _, pt := range pts {
		t.Run(pt.name, func(t *testing.T) {
			var diags []Diagnostic
			n, err := Parse([]byte(pt.in), ParseDiagnostics(&diags))
			if err != nil {
				t.Fatal(err)
			}
			if got := toJSON(t, n); got != pt.out {
				t.Errorf("got %s want %s", got, pt.out)
			}
			kinds := []DiagKind{}
			for _, d := range diags {
				kinds = append(kinds, d.Kind)
			}
			want := pt.diags
			if want == nil {
				want = []DiagKind{}
			}
			if diff := cmp.Diff(want, kinds); diff != "" {
				t.Errorf("diagnostics (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBlankKeysArePositional(t *testing.T) {
	n, err := ParseString(`=x;a=y;[]`)
	if err != nil {
		t.Fatal(err)
	}
	want := []ir.Key{ir.Positional(0), ir.Named("a"), ir.Positional(1)}
	if diff := cmp.Diff(want, n.Fields); diff != "" {
		t.Errorf("keys (-want +got):\n%s", diff)
	}
}

func TestParentLinks(t *testing.T) {
	n, err := ParseString(`a=1;b[c=2;]`)
	if err != nil {
		t.Fatal(err)
	}
	c := n.GetNode("b", "c")
	if c.Path() != "$.b.c" {
		t.Errorf("path %s", c.Path())
	}
	for i, v := range n.Values {
		if v.Parent != n || v.ParentIndex != i {
			t.Errorf("bad links at %d", i)
		}
	}
}

func TestDiagnosticPosition(t *testing.T) {
	var diags []Diagnostic
	_, err := ParseString("a=1;\nb=2", ParseDiagnostics(&diags))
	if err != nil {
		t.Fatal(err)
	}
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics", len(diags))
	}
	want := token.Pos{Offset: 6, Line: 1, Col: 1}
	if diags[0].Pos != want {
		t.Errorf("got %s want %s", diags[0].Pos, want)
	}
}

func TestStrict(t *testing.T) {
	n, err := ParseString(`a=1;]`, ParseStrict())
	if !errors.Is(err, ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
	if got := toJSON(t, n); got != `{"a":"1"}` {
		t.Errorf("partial tree %s", got)
	}
	if _, err := ParseString(`a=1;`, ParseStrict()); err != nil {
		t.Errorf("regular input: %v", err)
	}
}

func TestMaxDepth(t *testing.T) {
	n, err := ParseString(`a[b[c[d=1;]]]`, ParseMaxDepth(2))
	if !errors.Is(err, ErrMaxDepth) {
		t.Fatalf("expected ErrMaxDepth, got %v", err)
	}
	if got := toJSON(t, n); got != `{"a":{"b":{}}}` {
		t.Errorf("partial tree %s", got)
	}
	if _, err := ParseString(`a[b[d=1;]]`, ParseMaxDepth(2)); err != nil {
		t.Errorf("within limit: %v", err)
	}
}

func TestDefaultMaxDepth(t *testing.T) {
	deep := strings.Repeat("[", DefaultMaxDepth+1)
	_, err := ParseString(deep)
	if !errors.Is(err, ErrMaxDepth) {
		t.Fatalf("expected ErrMaxDepth, got %v", err)
	}
	ok := strings.Repeat("[", DefaultMaxDepth) + strings.Repeat("]", DefaultMaxDepth)
	if _, err := ParseString(ok); err != nil {
		t.Errorf("at limit: %v", err)
	}
}

func TestPositions(t *testing.T) {
	m := map[*ir.Node]*token.Pos{}
	n, err := ParseString("a=1;\n  b[=2;]", ParsePositions(m))
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		path []string
		want token.Pos
	}{
		{nil, token.Pos{}},
		{[]string{"a"}, token.Pos{Offset: 0}},
		{[]string{"b"}, token.Pos{Offset: 7, Line: 1, Col: 2}},
		{[]string{"b", "0"}, token.Pos{Offset: 9, Line: 1, Col: 4}},
	}
	for _, tt := range tests {
		p := m[n.GetNode(tt.path...)]
		if p == nil {
			t.Errorf("%v: no position", tt.path)
			continue
		}
		if *p != tt.want {
			t.Errorf("%v: got %s want %s", tt.path, p, tt.want)
		}
	}
}

func TestParseJSON(t *testing.T) {
	n, err := ParseString(`{"b":1,"a":["x",true,null]}`, ParseJSON())
	if err != nil {
		t.Fatal(err)
	}
	if got := toJSON(t, n); got != `{"b":"1","a":{"0":"x","1":"true","2":""}}` {
		t.Errorf("got %s", got)
	}
	if _, err := ParseString(`{`, ParseJSON()); !errors.Is(err, ErrParse) {
		t.Errorf("expected ErrParse, got %v", err)
	}
}

func TestParseYAML(t *testing.T) {
	in := "b: 1\na:\n  - x\n  - y\nc:\n  d: e\n"
	n, err := ParseString(in, ParseYAML())
	if err != nil {
		t.Fatal(err)
	}
	if got := toJSON(t, n); got != `{"b":"1","a":{"0":"x","1":"y"},"c":{"d":"e"}}` {
		t.Errorf("got %s", got)
	}
	empty, err := ParseString("", ParseYAML())
	if err != nil {
		t.Fatal(err)
	}
	if !empty.IsObject() || empty.Len() != 0 {
		t.Error("empty yaml")
	}
}
