package libdiff

import (
	"slices"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/signadot/kvs-format/go-kvs/debug"
	"github.com/signadot/kvs-format/go-kvs/ir"
)

// Diff returns the changes turning from into to. Removed and changed keys
// are reported in the order of from, added keys after them in the order
// of to.
func Diff(from, to *ir.Node) []Change {
	res := diff(nil, from, to, nil)
	if debug.Diff() {
		for i := range res {
			debug.Logf("diff: %s\n", res[i].String())
		}
	}
	return res
}

func diff(dst []Change, from, to *ir.Node, path []string) []Change {
	if from.Type != to.Type {
		return append(dst, Change{Op: Replace, Path: path, From: from.Clone(), To: to.Clone()})
	}
	if from.Type == ir.StringType {
		if from.String == to.String {
			return dst
		}
		return append(dst, diffString(from.String, to.String, path))
	}
	for i, fv := range from.Values {
		k := from.Fields[i].String()
		p := append(slices.Clip(path), k)
		tv := to.Child(k)
		if tv == nil {
			dst = append(dst, Change{Op: Delete, Path: p, From: fv.Clone()})
			continue
		}
		dst = diff(dst, fv, tv, p)
	}
	for i, tv := range to.Values {
		k := to.Fields[i].String()
		if from.Index(k) != -1 {
			continue
		}
		p := append(slices.Clip(path), k)
		dst = append(dst, Change{Op: Insert, Path: p, To: tv.Clone()})
	}
	return dst
}

// diffString records an Edit when the text delta is small compared to the
// values, and a Replace otherwise.
func diffString(from, to string, path []string) Change {
	dmp := diffpatch.New()
	diffs := dmp.DiffMain(from, to, false)
	diffSize := 0
	for _, d := range diffs {
		if d.Type != diffpatch.DiffEqual {
			diffSize += len(d.Text)
		}
	}
	if diffSize > min(len(from), len(to))/2 {
		return Change{Op: Replace, Path: path, From: ir.FromString(from), To: ir.FromString(to)}
	}
	return Change{Op: Edit, Path: path, From: ir.FromString(from), Delta: dmp.DiffToDelta(diffs)}
}

func applyDelta(from, delta string) (string, error) {
	dmp := diffpatch.New()
	diffs, err := dmp.DiffFromDelta(from, delta)
	if err != nil {
		return "", err
	}
	return dmp.DiffText2(diffs), nil
}
