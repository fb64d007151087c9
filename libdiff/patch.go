package libdiff

import (
	"fmt"

	"github.com/signadot/kvs-format/go-kvs/ir"
)

// Patch applies changes to doc in order. A change whose expected old value
// is not found stops the patch with an error wrapping ErrConflict; changes
// before it stay applied.
func Patch(doc *ir.Node, changes []Change) error {
	for i := range changes {
		if err := apply(doc, &changes[i]); err != nil {
			return err
		}
	}
	return nil
}

func apply(doc *ir.Node, c *Change) error {
	if len(c.Path) == 0 {
		return fmt.Errorf("%w: empty path", ErrBadDiff)
	}
	cur := doc.GetNode(c.Path...)
	p := ir.FormatPath(c.Path...)
	switch c.Op {
	case Insert:
		if cur != nil {
			return fmt.Errorf("%w: %s already exists", ErrConflict, p)
		}
		doc.Set(c.To, c.Path...)
	case Delete:
		if err := expect(cur, c.From, p); err != nil {
			return err
		}
		doc.Remove(c.Path...)
	case Replace:
		if err := expect(cur, c.From, p); err != nil {
			return err
		}
		doc.Set(c.To, c.Path...)
	case Edit:
		if err := expect(cur, c.From, p); err != nil {
			return err
		}
		to, err := applyDelta(cur.String, c.Delta)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrConflict, p, err)
		}
		cur.String = to
	default:
		return fmt.Errorf("%w: op %d", ErrBadDiff, c.Op)
	}
	return nil
}

func expect(cur, want *ir.Node, p string) error {
	if cur == nil {
		return fmt.Errorf("%w: %s does not exist", ErrConflict, p)
	}
	if want != nil && !ir.Equal(cur, want) {
		return fmt.Errorf("%w: %s changed", ErrConflict, p)
	}
	return nil
}
