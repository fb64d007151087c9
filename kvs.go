package kvs

import (
	"strings"

	"github.com/signadot/kvs-format/go-kvs/debug"
	"github.com/signadot/kvs-format/go-kvs/encode"
	"github.com/signadot/kvs-format/go-kvs/ir"
	"github.com/signadot/kvs-format/go-kvs/parse"
)

// KVS is a document tree with a cache of its compact text.
//
// Mutating methods on KVS, and writes through a View from KVS.View, drop
// the cache. The tree returned by Node is live: mutating it directly must
// be followed by Touch.
type KVS struct {
	node *ir.Node
	text *string
}

// New returns an empty document.
func New() *KVS {
	return &KVS{node: ir.NewObject()}
}

// Parse parses text. On irregular input the partial tree is returned with
// any error from the parser.
func Parse(text string, opts ...parse.ParseOption) (*KVS, error) {
	n, err := parse.ParseString(text, opts...)
	if n == nil {
		return nil, err
	}
	return &KVS{node: n}, err
}

// FromNode wraps node and encodes its canonical text immediately.
func FromNode(node *ir.Node) (*KVS, error) {
	if node == nil {
		node = ir.NewObject()
	}
	k := &KVS{node: node}
	if _, err := k.Text(); err != nil {
		return nil, err
	}
	return k, nil
}

// Node returns the live tree.
func (k *KVS) Node() *ir.Node { return k.node }

// Touch drops the cached text after a direct mutation of Node.
func (k *KVS) Touch() { k.text = nil }

// Text encodes the document. Without options the compact text is cached.
func (k *KVS) Text(opts ...encode.EncodeOption) (string, error) {
	if len(opts) == 0 && k.text != nil {
		return *k.text, nil
	}
	s, err := encodeString(k.node, opts...)
	if err != nil {
		return "", err
	}
	if len(opts) == 0 {
		k.text = &s
	}
	return s, nil
}

func encodeString(n *ir.Node, opts ...encode.EncodeOption) (string, error) {
	b := &strings.Builder{}
	if err := encode.Encode(n, b, opts...); err != nil {
		if debug.Encode() {
			debug.Logf("encode %s: %v\n", n.Path(), err)
		}
		return "", err
	}
	return b.String(), nil
}

// String returns the compact text, or "" if the tree cannot be encoded.
func (k *KVS) String() string {
	s, _ := k.Text()
	return s
}

// Pretty returns the indented text.
func (k *KVS) Pretty() string {
	s, _ := k.Text(encode.EncodePretty(true))
	return s
}

func (k *KVS) Get(path ...string) string { return k.node.Get(path...) }
func (k *KVS) GetNode(path ...string) *ir.Node { return k.node.GetNode(path...) }
func (k *KVS) Exists(path ...string) bool { return k.node.Exists(path...) }
func (k *KVS) Keys(path ...string) []string { return k.node.Keys(path...) }
func (k *KVS) Values(path ...string) []*ir.Node { return k.node.List(path...) }
func (k *KVS) GetList(path ...string) []string { return k.node.GetList(path...) }
func (k *KVS) FirstKey() string { return k.node.FirstKey() }
func (k *KVS) FirstValue() *ir.Node { return k.node.FirstValue() }
func (k *KVS) KeyVals() []ir.KeyVal { return k.node.KeyVals() }
func (k *KVS) Len() int { return k.node.Len() }
func (k *KVS) IsEmpty() bool { return k.node.IsEmpty() }
func (k *KVS) GetPath(p string) (*ir.Node, error) { return k.node.GetPath(p) }

// View returns a live View of the subtree at path. Writes through it, or
// through Views nested below it, drop the cache of k.
func (k *KVS) View(path ...string) *ir.View {
	return k.node.View(path...).OnWrite(k.Touch)
}

func (k *KVS) GetString(def string, path ...string) string {
	return k.node.GetStringOr(def, path...)
}
func (k *KVS) GetInt(def int, path ...string) int { return k.node.GetInt(def, path...) }
func (k *KVS) GetInt64(def int64, path ...string) int64 {
	return k.node.GetInt64(def, path...)
}
func (k *KVS) GetFloat64(def float64, path ...string) float64 {
	return k.node.GetFloat64(def, path...)
}
func (k *KVS) GetBool(def bool, path ...string) bool { return k.node.GetBool(def, path...) }

// GetMap returns the leaves directly under path by key. Nested objects are
// skipped.
func (k *KVS) GetMap(path ...string) map[string]string {
	n := k.node.GetNode(path...)
	res := map[string]string{}
	if !n.IsObject() {
		return res
	}
	for _, kv := range n.KeyVals() {
		if kv.Val.IsLeaf() {
			res[kv.Key.String()] = kv.Val.String
		}
	}
	return res
}

// Set stores a copy of v at path. See (*ir.Node).Set.
func (k *KVS) Set(v *ir.Node, path ...string) *ir.Node {
	k.Touch()
	return k.node.Set(v, path...)
}

func (k *KVS) SetString(s string, path ...string) *ir.Node {
	k.Touch()
	return k.node.SetString(s, path...)
}

func (k *KVS) SetDefault(v *ir.Node, path ...string) *ir.Node {
	k.Touch()
	return k.node.SetDefault(v, path...)
}

func (k *KVS) Remove(path ...string) bool {
	k.Touch()
	return k.node.Remove(path...)
}

// Add appends v under the next positional key.
func (k *KVS) Add(v *ir.Node) *ir.Node {
	k.Touch()
	return k.node.Add(v)
}

func (k *KVS) AddString(s string) *ir.Node {
	k.Touch()
	return k.node.AddString(s)
}

func (k *KVS) AddAll(vs ...*ir.Node) {
	k.Touch()
	k.node.AddAll(vs...)
}

// Merge merges other into k; other wins on conflicts.
func (k *KVS) Merge(other *KVS) {
	k.MergeNode(other.node)
}

func (k *KVS) MergeNode(other *ir.Node) {
	if debug.Merge() {
		debug.Logf("merge %s into %s\n", debug.KVS{Node: other}, debug.KVS{Node: k.node})
	}
	k.Touch()
	k.node.Merge(other)
}

// Clear empties the document.
func (k *KVS) Clear() {
	k.Touch()
	k.node.Clear()
}

// Clone returns a deep copy of k.
func (k *KVS) Clone() *KVS {
	return &KVS{node: k.node.Clone(), text: k.text}
}

// Equal reports whether k and o hold equal trees.
func (k *KVS) Equal(o *KVS) bool {
	return ir.Equal(k.node, o.node)
}
