package ir

import (
	"cmp"
	"strings"
)

// Compare returns an integer comparing two nodes.
// The result will be 0 if a==b, -1 if a < b, and +1 if a > b.
// Leaves sort before objects; objects compare entry by entry, key first.
func Compare(a, b *Node) int {
	if a == b {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}
	if a.Type != b.Type {
		return cmp.Compare(a.Type, b.Type)
	}
	if a.Type == StringType {
		return strings.Compare(a.String, b.String)
	}
	minLen := min(len(a.Fields), len(b.Fields))
	for i := 0; i < minLen; i++ {
		if c := strings.Compare(a.Fields[i].String(), b.Fields[i].String()); c != 0 {
			return c
		}
		if c := Compare(a.Values[i], b.Values[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(a.Fields), len(b.Fields))
}

// Equal reports whether a and b hold the same entries in the same order.
func Equal(a, b *Node) bool {
	return Compare(a, b) == 0
}
