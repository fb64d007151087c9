package kvs

import (
	"github.com/signadot/kvs-format/go-kvs/debug"
	"github.com/signadot/kvs-format/go-kvs/ir"
)

// Wildcard is the pattern leaf which matches any leaf.
const Wildcard = "*"

// Match reports whether doc matches pattern. A leaf pattern matches an
// equal leaf, or any leaf when it is Wildcard. An object pattern matches an
// object holding a matching value for each of its keys; doc may hold more.
func Match(doc, pattern *ir.Node) bool {
	if doc == nil || pattern == nil {
		return doc == pattern
	}
	if debug.Match() {
		debug.Logf("match %s against %s\n", doc.Path(), debug.KVS{Node: pattern})
	}
	if pattern.IsLeaf() {
		return doc.IsLeaf() && (pattern.String == Wildcard || doc.String == pattern.String)
	}
	if !doc.IsObject() {
		return false
	}
	for _, kv := range pattern.KeyVals() {
		if !Match(doc.Child(kv.Key.String()), kv.Val) {
			return false
		}
	}
	return true
}

// Match reports whether k matches pattern.
func (k *KVS) Match(pattern *KVS) bool {
	return Match(k.node, pattern.node)
}

// Trim returns a copy of doc holding only the keys named in pattern.
func Trim(pattern, doc *ir.Node) *ir.Node {
	if !pattern.IsObject() || !doc.IsObject() {
		return doc.Clone()
	}
	res := ir.NewObject()
	for _, kv := range doc.KeyVals() {
		p := pattern.Child(kv.Key.String())
		if p == nil {
			continue
		}
		res.Put(kv.Key, Trim(p, kv.Val))
	}
	return res
}
