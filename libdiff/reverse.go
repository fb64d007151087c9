package libdiff

import (
	"fmt"
	"slices"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/signadot/kvs-format/go-kvs/ir"
)

// Reverse returns the changes undoing changes.
func Reverse(changes []Change) ([]Change, error) {
	res := make([]Change, 0, len(changes))
	for i := len(changes) - 1; i >= 0; i-- {
		c := changes[i]
		r := Change{Path: slices.Clone(c.Path)}
		switch c.Op {
		case Insert:
			r.Op = Delete
			r.From = c.To
		case Delete:
			r.Op = Insert
			r.To = c.From
		case Replace:
			r.Op = Replace
			r.From, r.To = c.To, c.From
		case Edit:
			to, err := applyDelta(c.From.String, c.Delta)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %w", ErrBadDiff, ir.FormatPath(c.Path...), err)
			}
			dmp := diffpatch.New()
			r.Op = Edit
			r.From = ir.FromString(to)
			r.Delta = dmp.DiffToDelta(dmp.DiffMain(to, c.From.String, false))
		default:
			return nil, fmt.Errorf("%w: op %d", ErrBadDiff, c.Op)
		}
		res = append(res, r)
	}
	return res, nil
}
