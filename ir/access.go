package ir

import "strconv"

// GetNode returns the node at path, or nil if some key along the path is
// absent. The result is live: mutating it mutates y. An empty path
// returns y.
func (y *Node) GetNode(path ...string) *Node {
	x := y
	for _, k := range path {
		x = x.Child(k)
		if x == nil {
			return nil
		}
	}
	return x
}

// Get returns the leaf text at path. It returns "" when the path is absent
// or resolves to an object.
func (y *Node) Get(path ...string) string {
	x := y.GetNode(path...)
	if x == nil || x.Type != StringType {
		return ""
	}
	return x.String
}

// Exists reports whether every key in path is present. It does not
// distinguish leaves from objects.
func (y *Node) Exists(path ...string) bool {
	return y.GetNode(path...) != nil
}

// vivify returns the object at path, creating empty objects for missing
// keys and replacing leaves found along the way.
func (y *Node) vivify(path []string) *Node {
	x := y
	if x.Type != ObjectType {
		x.Clear()
	}
	for _, k := range path {
		c := x.Child(k)
		if c == nil || c.Type != ObjectType {
			c = x.Put(Named(k), NewObject())
		}
		x = c
	}
	return x
}

// Set stores v at path, creating intermediate objects as needed. An
// existing final key keeps its position. Set with an empty path does
// nothing. It returns the stored node, which is a clone of v when v is
// already owned by some other node.
func (y *Node) Set(v *Node, path ...string) *Node {
	if len(path) == 0 {
		return nil
	}
	p := y.vivify(path[:len(path)-1])
	return p.Put(Named(path[len(path)-1]), v)
}

func (y *Node) SetString(s string, path ...string) *Node {
	return y.Set(FromString(s), path...)
}

// SetDefault stores v at path unless something is already there, and
// returns the live node at path.
func (y *Node) SetDefault(v *Node, path ...string) *Node {
	if x := y.GetNode(path...); x != nil {
		return x
	}
	return y.Set(v, path...)
}

// Remove deletes the final key of path if the full path resolves.
func (y *Node) Remove(path ...string) bool {
	if len(path) == 0 {
		return false
	}
	p := y.GetNode(path[:len(path)-1]...)
	if p == nil {
		return false
	}
	return p.Delete(path[len(path)-1])
}

// NextIndex returns the positional key Add would use: the entry count, or
// the next integer above it that is not taken.
func (y *Node) NextIndex() int {
	i := y.Len()
	for y.Index(strconv.Itoa(i)) != -1 {
		i++
	}
	return i
}

// Add appends v under a fresh positional key.
func (y *Node) Add(v *Node) *Node {
	if y.Type != ObjectType {
		y.Clear()
	}
	return y.Put(Positional(y.NextIndex()), v)
}

func (y *Node) AddString(s string) *Node {
	return y.Add(FromString(s))
}

func (y *Node) AddAll(vs ...*Node) {
	for _, v := range vs {
		y.Add(v)
	}
}

// Merge merges other into y. Keys present in both are merged recursively
// when both values are objects, otherwise other's value replaces y's.
// Nodes taken from other are cloned.
func (y *Node) Merge(other *Node) {
	if other == nil || other == y {
		return
	}
	if y.Type != ObjectType || other.Type != ObjectType {
		for _, v := range y.Values {
			v.Parent = nil
		}
		other.CloneTo(y)
		return
	}
	for i, ov := range other.Values {
		k := other.Fields[i]
		yv := y.Child(k.String())
		if yv != nil && yv.Type == ObjectType && ov.Type == ObjectType {
			yv.Merge(ov)
			continue
		}
		y.Put(k, ov)
	}
}

// Keys returns the canonical keys of the object at path, in order.
func (y *Node) Keys(path ...string) []string {
	x := y.GetNode(path...)
	if x == nil || x.Type != ObjectType {
		return []string{}
	}
	res := make([]string, len(x.Fields))
	for i := range x.Fields {
		res[i] = x.Fields[i].String()
	}
	return res
}

// List returns the values of the object at path, in order. The slice is
// fresh but the nodes are live.
func (y *Node) List(path ...string) []*Node {
	x := y.GetNode(path...)
	if x == nil || x.Type != ObjectType {
		return []*Node{}
	}
	res := make([]*Node, len(x.Values))
	copy(res, x.Values)
	return res
}

func (y *Node) FirstKey() string {
	if y.Len() == 0 {
		return ""
	}
	return y.Fields[0].String()
}

func (y *Node) FirstValue() *Node {
	if y.Len() == 0 {
		return nil
	}
	return y.Values[0]
}

func (y *Node) FirstString() string {
	v := y.FirstValue()
	if v == nil || v.Type != StringType {
		return ""
	}
	return v.String
}

// GetList returns the leaf at path as a one element list, or the leaf
// values of the object at path. Nested objects are skipped.
func (y *Node) GetList(path ...string) []string {
	x := y.GetNode(path...)
	if x == nil {
		return nil
	}
	if x.Type == StringType {
		return []string{x.String}
	}
	res := make([]string, 0, len(x.Values))
	for _, v := range x.Values {
		if v.Type == StringType {
			res = append(res, v.String)
		}
	}
	return res
}
