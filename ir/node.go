package ir

import (
	"maps"
	"slices"
)

type Node struct {
	Type        Type
	Parent      *Node
	ParentIndex int
	ParentField string

	Fields []Key
	Values []*Node

	String string
}

type KeyVal struct {
	Key Key
	Val *Node
}

func NewObject() *Node {
	return &Node{Type: ObjectType}
}

func FromString(v string) *Node {
	return &Node{Type: StringType, String: v}
}

// FromMap builds an object with the keys of m in sorted order.
func FromMap(m map[string]*Node) *Node {
	res := NewObject()
	for _, k := range slices.Sorted(maps.Keys(m)) {
		res.Put(Named(k), m[k])
	}
	return res
}

// FromStringMap is FromMap for leaf values.
func FromStringMap(m map[string]string) *Node {
	res := NewObject()
	for _, k := range slices.Sorted(maps.Keys(m)) {
		res.Put(Named(k), FromString(m[k]))
	}
	return res
}

// FromSlice builds a sequence-like object with positional keys 0..n-1.
func FromSlice(vs []*Node) *Node {
	res := NewObject()
	for i, v := range vs {
		res.Put(Positional(i), v)
	}
	return res
}

func FromStrings(vs ...string) *Node {
	res := NewObject()
	for i, v := range vs {
		res.Put(Positional(i), FromString(v))
	}
	return res
}

func FromKeyVals(kvs []KeyVal) *Node {
	res := NewObject()
	for _, kv := range kvs {
		res.Put(kv.Key, kv.Val)
	}
	return res
}

func (y *Node) KeyVals() []KeyVal {
	res := make([]KeyVal, len(y.Fields))
	for i := range y.Fields {
		res[i] = KeyVal{Key: y.Fields[i], Val: y.Values[i]}
	}
	return res
}

func (y *Node) IsLeaf() bool   { return y != nil && y.Type == StringType }
func (y *Node) IsObject() bool { return y != nil && y.Type == ObjectType }

// Len returns the number of entries of an object, 0 for leaves.
func (y *Node) Len() int {
	if y == nil {
		return 0
	}
	return len(y.Fields)
}

func (y *Node) IsEmpty() bool {
	return y.Len() == 0
}

func (y *Node) Root() *Node {
	x := y
	for x.Parent != nil {
		x = x.Parent
	}
	return x
}

func (y *Node) Clone() *Node {
	return y.CloneTo(&Node{})
}

// CloneTo deep copies y into dst, keeping dst's own parent links.
func (y *Node) CloneTo(dst *Node) *Node {
	dst.Type = y.Type
	dst.String = y.String
	dst.Fields = slices.Clone(y.Fields)
	dst.Values = make([]*Node, len(y.Values))
	for i, yv := range y.Values {
		c := yv.CloneTo(&Node{})
		c.Parent = dst
		c.ParentIndex = i
		c.ParentField = y.Fields[i].String()
		dst.Values[i] = c
	}
	if dst.Type == StringType {
		dst.Fields = nil
		dst.Values = nil
	}
	return dst
}

// Index returns the position of key in y, or -1.
func (y *Node) Index(key string) int {
	if y == nil || y.Type != ObjectType {
		return -1
	}
	for i := range y.Fields {
		if y.Fields[i].String() == key {
			return i
		}
	}
	return -1
}

// Child returns the live value stored under key, or nil.
func (y *Node) Child(key string) *Node {
	i := y.Index(key)
	if i == -1 {
		return nil
	}
	return y.Values[i]
}

// Put stores v under k. An existing entry with the same key keeps its
// position and key. A v that is already owned elsewhere, or that would create a
// cycle, is cloned first. Put turns a leaf y into an empty object before
// storing. It returns the node actually stored.
func (y *Node) Put(k Key, v *Node) *Node {
	if y.Type != ObjectType {
		y.Type = ObjectType
		y.String = ""
	}
	if v == nil {
		v = FromString("")
	}
	ks := k.String()
	i := y.Index(ks)
	if i != -1 && y.Values[i] == v {
		return v
	}
	if v.Parent != nil || v.isAncestorOf(y) {
		v = v.Clone()
	}
	v.Parent = y
	v.ParentField = ks
	if i != -1 {
		old := y.Values[i]
		old.Parent = nil
		v.ParentIndex = i
		y.Values[i] = v
		return v
	}
	v.ParentIndex = len(y.Values)
	y.Fields = append(y.Fields, k)
	y.Values = append(y.Values, v)
	return v
}

func (y *Node) isAncestorOf(x *Node) bool {
	for p := x; p != nil; p = p.Parent {
		if p == y {
			return true
		}
	}
	return false
}

// Delete removes key from y and reports whether it was present.
func (y *Node) Delete(key string) bool {
	i := y.Index(key)
	if i == -1 {
		return false
	}
	old := y.Values[i]
	old.Parent = nil
	y.Fields = slices.Delete(y.Fields, i, i+1)
	y.Values = slices.Delete(y.Values, i, i+1)
	for j := i; j < len(y.Values); j++ {
		y.Values[j].ParentIndex = j
	}
	return true
}

// Clear removes all entries of y and makes it an empty object.
func (y *Node) Clear() {
	for _, v := range y.Values {
		v.Parent = nil
	}
	y.Type = ObjectType
	y.String = ""
	y.Fields = nil
	y.Values = nil
}

// Visit walks y depth first, calling f before (isPost false) and after
// (isPost true) the children. Children are visited only when the pre call
// returns true.
func (y *Node) Visit(f func(y *Node, isPost bool) (bool, error)) error {
	dive, err := f(y, false)
	if err != nil {
		return err
	}
	if dive {
		for _, yy := range y.Values {
			if err := yy.Visit(f); err != nil {
				return err
			}
		}
	}
	if _, err := f(y, true); err != nil {
		return err
	}
	return nil
}

// Append adds v under k at the end of y without looking for an existing
// k. Callers must know k is not present.
func (y *Node) Append(k Key, v *Node) *Node {
	if v.Parent != nil || v.isAncestorOf(y) {
		v = v.Clone()
	}
	v.Parent = y
	v.ParentField = k.String()
	v.ParentIndex = len(y.Values)
	y.Fields = append(y.Fields, k)
	y.Values = append(y.Values, v)
	return v
}
