package ir

import (
	"fmt"
	"strconv"
	"strings"
)

// Path returns the key path of y from its root, as in "$.host.'a.b'".
func (y *Node) Path() string {
	if y.Parent == nil {
		return "$"
	}
	return y.Parent.Path() + "." + pathString(y.ParentField)
}

// KeyPath returns the keys leading from the root to y.
func (y *Node) KeyPath() []string {
	var res []string
	for x := y; x.Parent != nil; x = x.Parent {
		res = append(res, x.ParentField)
	}
	for i, j := 0, len(res)-1; i < j; i, j = i+1, j-1 {
		res[i], res[j] = res[j], res[i]
	}
	return res
}

// FormatPath renders keys the way Path does.
func FormatPath(keys ...string) string {
	var b strings.Builder
	b.WriteByte('$')
	for _, k := range keys {
		b.WriteByte('.')
		b.WriteString(pathString(k))
	}
	return b.String()
}

var pathEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

func pathString(f string) string {
	if f != "" && strings.IndexAny(f, "'.$[]\\ \t\n") == -1 {
		return f
	}
	return "'" + pathEscaper.Replace(f) + "'"
}

// ParsePath parses a key path as produced by Path. The leading '$' is
// optional, and "[n]" may be used for the positional key n.
func ParsePath(p string) ([]string, error) {
	if strings.HasPrefix(p, "$") {
		p = p[1:]
	} else if p != "" && p[0] != '.' && p[0] != '[' {
		p = "." + p
	}
	res := []string{}
	for len(p) != 0 {
		switch p[0] {
		case '.':
			field, rest, err := parseField(p[1:])
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrPath, err)
			}
			res = append(res, field)
			p = rest
		case '[':
			i := strings.IndexByte(p, ']')
			if i == -1 {
				return nil, fmt.Errorf("%w: expected '[' <index> ']'", ErrPath)
			}
			n, err := strconv.ParseUint(p[1:i], 10, 32)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrPath, err)
			}
			res = append(res, strconv.FormatUint(n, 10))
			p = p[i+1:]
		default:
			return nil, fmt.Errorf("%w: expected '.' or '[' at %q", ErrPath, p)
		}
	}
	return res, nil
}

func parseField(frag string) (field, rest string, err error) {
	if len(frag) == 0 {
		return "", "", fmt.Errorf("expected field at end of string")
	}
	if frag[0] != '\'' {
		i := strings.IndexAny(frag, ".[")
		if i == -1 {
			return frag, "", nil
		}
		if i == 0 {
			return "", "", fmt.Errorf("empty field")
		}
		return frag[:i], frag[i:], nil
	}
	escaped := false
	res := make([]byte, 0, len(frag))
	for i := 1; i < len(frag); i++ {
		c := frag[i]
		switch c {
		case '\\':
			if escaped {
				res = append(res, c)
			}
			escaped = !escaped
		case '\'':
			if !escaped {
				return string(res), frag[i+1:], nil
			}
			fallthrough
		default:
			escaped = false
			res = append(res, c)
		}
	}
	return "", "", fmt.Errorf("end of string scanning for \"'\"")
}

// GetPath is GetNode with a textual key path.
func (y *Node) GetPath(p string) (*Node, error) {
	keys, err := ParsePath(p)
	if err != nil {
		return nil, err
	}
	return y.GetNode(keys...), nil
}
