// Package ir provides the in-memory tree of a KVS document.
//
// # Overview
//
// A KVS document is an ordered mapping from keys to values, where each value
// is either leaf text or another ordered mapping. Both are represented by
// [Node]: a Node of [StringType] carries its text in String, a Node of
// [ObjectType] carries parallel Fields and Values slices. Fields[i] is the
// key of Values[i] and insertion order is significant: the encoder elides a
// key that equals its position, and the parser assigns positional keys to
// entries written without one.
//
// # Keys
//
// A [Key] is either named or positional. Both render to one canonical
// string (a positional key renders in decimal) and two keys are the same
// key when their canonical strings are equal, so Named("0") and
// Positional(0) address the same entry.
//
// # Key paths
//
// Accessors take a key path, a sequence of canonical key strings:
//
//	root.SetString("127.0.0.1", "host", "ip")
//	root.Get("host", "ip")       // "127.0.0.1"
//	root.Get("missing", "deep")  // ""
//	root.Exists("host")          // true
//
// Set auto-vivifies missing intermediate nodes. Lookups never fail; absent
// paths yield empty sentinels.
//
// # Ownership and aliasing
//
// Every Node has at most one parent. Inserting a node that already has a
// parent, or that is an ancestor of the target, inserts a clone instead.
// [Node.GetNode] and the Values field return live nodes: mutating them
// mutates the tree. [View] is the explicit aliasing handle: it stores a root
// and a key path and resolves the path on each call.
//
// # JSON
//
// A Node maps 1:1 onto JSON objects with string leaves, see [ToJSON] and
// [FromJSON]. Key order is preserved in both directions.
//
// # Thread Safety
//
// Nodes are not safe for concurrent mutation.
package ir
