package eval

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/signadot/kvs-format/go-kvs/encode"
	"github.com/signadot/kvs-format/go-kvs/ir"
)

// GetRaw returns expr for a leaf of the form ".[expr]", and "" otherwise.
func GetRaw(v string) string {
	if !strings.HasPrefix(v, ".[") || !strings.HasSuffix(v, "]") {
		return ""
	}
	return strings.TrimSpace(v[2 : len(v)-1])
}

// ExpandString replaces each "$[expr]" in v with the text of its value.
//
// Within expressions, backslash escaping is supported:
//   - \] → literal ] (does not close the expression)
//   - \\ → literal \
//
// An expression without a closing ']' is left as is.
func ExpandString(v string, env Env) (string, error) {
	return expandString(v, nil, env)
}

func expandString(v string, doc *ir.Node, env Env) (string, error) {
	if !strings.Contains(v, "$[") {
		return v, nil
	}
	out := make([]byte, 0, len(v))
	for {
		start := strings.Index(v, "$[")
		if start == -1 {
			out = append(out, v...)
			return string(out), nil
		}
		out = append(out, v[:start]...)
		code, n, ok := scanExpr(v[start+2:])
		if !ok {
			out = append(out, v[start:]...)
			return string(out), nil
		}
		x, err := run(strings.TrimSpace(code), doc, env)
		if err != nil {
			return "", fmt.Errorf("error evaluating %q: %w", code, err)
		}
		s, err := anyToString(x)
		if err != nil {
			return "", fmt.Errorf("could not render result of %q: %w", code, err)
		}
		out = append(out, s...)
		v = v[start+2+n:]
	}
}

// scanExpr reads up to the first unescaped ']' and returns the unescaped
// expression and the number of bytes consumed.
func scanExpr(v string) (string, int, bool) {
	buf := make([]byte, 0, len(v))
	for i := 0; i < len(v); i++ {
		switch c := v[i]; c {
		case '\\':
			if i+1 < len(v) {
				i++
				buf = append(buf, v[i])
				continue
			}
			buf = append(buf, c)
		case ']':
			return string(buf), i + 1, true
		default:
			buf = append(buf, c)
		}
	}
	return "", 0, false
}

func anyToString(v any) (string, error) {
	switch x := v.(type) {
	case nil:
		return "", nil
	case string:
		return x, nil
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(x), nil
	case int:
		return strconv.Itoa(x), nil
	case *ir.Node:
		if x.Type == ir.StringType {
			return x.String, nil
		}
		return nodeString(x)
	default:
		node, err := toNode(v)
		if err != nil {
			return "", err
		}
		if node.Type == ir.StringType {
			return node.String, nil
		}
		return nodeString(node)
	}
}

func nodeString(n *ir.Node) (string, error) {
	b := &strings.Builder{}
	if err := encode.Encode(n, b, encode.EncodeWrap("")); err != nil {
		return "", err
	}
	return b.String(), nil
}

// ExpandEnv expands the leaves of node in place. Expressions see the leaf
// being expanded as the current node.
func ExpandEnv(node *ir.Node, env Env) error {
	switch node.Type {
	case ir.ObjectType:
		for _, v := range node.List() {
			if err := ExpandEnv(v, env); err != nil {
				return err
			}
		}
		return nil
	}
	if raw := GetRaw(node.String); raw != "" {
		val, err := run(raw, node, env)
		if err != nil {
			return fmt.Errorf("error evaluating %q at %s: %w", raw, node.Path(), err)
		}
		repl, err := toNode(val)
		if err != nil {
			return fmt.Errorf("could not translate evaluation result at %s: %w", node.Path(), err)
		}
		repl.CloneTo(node)
		return nil
	}
	v, err := expandString(node.String, node, env)
	if err != nil {
		return fmt.Errorf("error expanding %s: %w", node.Path(), err)
	}
	node.String = v
	return nil
}
