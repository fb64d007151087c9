package libdiff

import (
	"fmt"

	"github.com/signadot/kvs-format/go-kvs/ir"
)

// ToNode represents changes as a sequence of entries of the form
//
//	[op=edit;path=$.a.b;from=...;delta=...;]
func ToNode(changes []Change) *ir.Node {
	res := ir.NewObject()
	for i := range changes {
		c := &changes[i]
		e := ir.NewObject()
		e.SetString(c.Op.String(), "op")
		e.SetString(ir.FormatPath(c.Path...), "path")
		if c.From != nil {
			e.Set(c.From, "from")
		}
		if c.To != nil {
			e.Set(c.To, "to")
		}
		if c.Op == Edit {
			e.SetString(c.Delta, "delta")
		}
		res.Add(e)
	}
	return res
}

// FromNode is the inverse of ToNode.
func FromNode(n *ir.Node) ([]Change, error) {
	if n.Type != ir.ObjectType {
		return nil, fmt.Errorf("%w: not an object", ErrBadDiff)
	}
	res := make([]Change, 0, n.Len())
	for i, e := range n.Values {
		if e.Type != ir.ObjectType {
			return nil, fmt.Errorf("%w: entry %s is not an object", ErrBadDiff, n.Fields[i])
		}
		op, err := ParseOp(e.Get("op"))
		if err != nil {
			return nil, err
		}
		path, err := ir.ParsePath(e.Get("path"))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBadDiff, err)
		}
		c := Change{Op: op, Path: path}
		if f := e.GetNode("from"); f != nil {
			c.From = f.Clone()
		}
		if t := e.GetNode("to"); t != nil {
			c.To = t.Clone()
		}
		c.Delta = e.Get("delta")
		if err := c.check(); err != nil {
			return nil, err
		}
		res = append(res, c)
	}
	return res, nil
}

func (c *Change) check() error {
	p := ir.FormatPath(c.Path...)
	switch c.Op {
	case Insert:
		if c.To == nil {
			return fmt.Errorf("%w: insert without to at %s", ErrBadDiff, p)
		}
	case Delete:
		if c.From == nil {
			return fmt.Errorf("%w: delete without from at %s", ErrBadDiff, p)
		}
	case Replace:
		if c.From == nil || c.To == nil {
			return fmt.Errorf("%w: replace needs from and to at %s", ErrBadDiff, p)
		}
	case Edit:
		if c.From == nil || c.From.Type != ir.StringType {
			return fmt.Errorf("%w: edit needs leaf from at %s", ErrBadDiff, p)
		}
	}
	return nil
}
