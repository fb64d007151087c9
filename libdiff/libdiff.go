// Package libdiff computes and applies differences between KVS trees.
//
// A diff is an ordered list of [Change] values addressed by key path.
// Leaves that differ only a little are recorded as text edits using the
// delta encoding of github.com/sergi/go-diff. A diff can itself be
// represented as a KVS document with [ToNode] and [FromNode].
package libdiff

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/signadot/kvs-format/go-kvs/encode"
	"github.com/signadot/kvs-format/go-kvs/ir"
)

var (
	ErrConflict = errors.New("patch conflict")
	ErrBadDiff  = errors.New("malformed diff")
)

type Op int

const (
	Insert Op = iota
	Delete
	Replace
	Edit
)

func (o Op) String() string {
	switch o {
	case Insert:
		return "insert"
	case Delete:
		return "delete"
	case Replace:
		return "replace"
	case Edit:
		return "edit"
	}
	return "<unknown op>"
}

func ParseOp(s string) (Op, error) {
	for _, o := range []Op{Insert, Delete, Replace, Edit} {
		if o.String() == s {
			return o, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown op %q", ErrBadDiff, s)
}

// Change is one difference at Path. From holds the old value for Delete,
// Replace and Edit, To the new value for Insert and Replace. Delta is the
// text delta turning From into the new leaf for Edit.
type Change struct {
	Op    Op
	Path  []string
	From  *ir.Node
	To    *ir.Node
	Delta string
}

func (c *Change) String() string {
	p := ir.FormatPath(c.Path...)
	switch c.Op {
	case Insert:
		return "+ " + p + " " + render(c.To)
	case Delete:
		return "- " + p + " " + render(c.From)
	case Replace:
		return "~ " + p + " " + render(c.From) + " -> " + render(c.To)
	case Edit:
		return "~ " + p + " " + render(c.From) + " -> " + render(ir.FromString(editTarget(c)))
	}
	return "? " + p
}

func editTarget(c *Change) string {
	to, err := applyDelta(c.From.String, c.Delta)
	if err != nil {
		return "<" + err.Error() + ">"
	}
	return to
}

func render(n *ir.Node) string {
	if n == nil {
		return "<nil>"
	}
	if n.Type == ir.StringType {
		return strconv.Quote(n.String)
	}
	s, err := encodeString(n)
	if err != nil {
		return "<" + err.Error() + ">"
	}
	return s
}

func encodeString(n *ir.Node) (string, error) {
	b := &strings.Builder{}
	if err := encode.Encode(n, b, encode.EncodeWrap("")); err != nil {
		return "", err
	}
	return b.String(), nil
}
