package kvs

import (
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"

	"github.com/signadot/kvs-format/go-kvs/ir"
)

// JSONPatch applies an RFC 6902 patch to the document. Paths address
// keys, including positional ones, as object members: "/tags/0".
func (k *KVS) JSONPatch(patch []byte) error {
	p, err := jsonpatch.DecodePatch(patch)
	if err != nil {
		return fmt.Errorf("could not decode json patch: %w", err)
	}
	return k.applyJSON(func(doc []byte) ([]byte, error) {
		return p.Apply(doc)
	})
}

// MergePatch applies an RFC 7386 merge patch to the document.
func (k *KVS) MergePatch(patch []byte) error {
	return k.applyJSON(func(doc []byte) ([]byte, error) {
		return jsonpatch.MergePatch(doc, patch)
	})
}

func (k *KVS) applyJSON(f func([]byte) ([]byte, error)) error {
	doc, err := ir.ToJSON(k.node)
	if err != nil {
		return err
	}
	out, err := f(doc)
	if err != nil {
		return fmt.Errorf("could not apply patch: %w", err)
	}
	res, err := ir.FromJSON(out)
	if err != nil {
		return err
	}
	if !res.IsObject() {
		return fmt.Errorf("patch result is not an object: %s", out)
	}
	k.node = restoreOrder(k.node, res)
	k.Touch()
	return nil
}

// restoreOrder returns res with the keys also present in orig put back in
// orig's order and key kinds, followed by the keys new in res.
func restoreOrder(orig, res *ir.Node) *ir.Node {
	if !orig.IsObject() || !res.IsObject() {
		return res
	}
	out := ir.NewObject()
	for _, kv := range orig.KeyVals() {
		v := res.Child(kv.Key.String())
		if v == nil {
			continue
		}
		out.Put(kv.Key, restoreOrder(kv.Val, v))
	}
	for _, kv := range res.KeyVals() {
		if out.Index(kv.Key.String()) == -1 {
			out.Put(kv.Key, kv.Val)
		}
	}
	return out
}
