package ir

import "slices"

// View is a live window onto the subtree of root at a fixed key path. Every
// call resolves the path again, so a View observes and causes changes in
// the tree it was made from. A View never owns nodes.
type View struct {
	root    *Node
	path    []string
	onWrite func()
}

// View returns a View of the subtree at path. The subtree need not exist
// yet; writes through the View create it.
func (y *Node) View(path ...string) *View {
	return &View{root: y, path: slices.Clone(path)}
}

// OnWrite sets f to be called before each write through v or through
// Views nested below it, and returns v.
func (v *View) OnWrite(f func()) *View {
	v.onWrite = f
	return v
}

func (v *View) wrote() {
	if v.onWrite != nil {
		v.onWrite()
	}
}

func (v *View) Path() []string {
	return slices.Clone(v.path)
}

func (v *View) Root() *Node {
	return v.root
}

func (v *View) at(path []string) []string {
	res := make([]string, 0, len(v.path)+len(path))
	res = append(res, v.path...)
	return append(res, path...)
}

// Node returns the live node the View points at, or nil.
func (v *View) Node() *Node {
	return v.root.GetNode(v.path...)
}

// Vivify makes sure the View points at an object and returns it.
func (v *View) Vivify() *Node {
	v.wrote()
	return v.root.vivify(v.path)
}

func (v *View) Exists(path ...string) bool {
	return v.root.Exists(v.at(path)...)
}

func (v *View) Get(path ...string) string {
	return v.root.Get(v.at(path)...)
}

func (v *View) GetNode(path ...string) *Node {
	return v.root.GetNode(v.at(path)...)
}

func (v *View) Set(n *Node, path ...string) *Node {
	v.wrote()
	if len(path) == 0 && len(v.path) == 0 {
		v.root.Clear()
		v.root.Merge(n)
		return v.root
	}
	return v.root.Set(n, v.at(path)...)
}

func (v *View) SetString(s string, path ...string) *Node {
	return v.Set(FromString(s), path...)
}

func (v *View) Remove(path ...string) bool {
	v.wrote()
	return v.root.Remove(v.at(path)...)
}

func (v *View) Add(n *Node) *Node {
	return v.Vivify().Add(n)
}

func (v *View) Merge(other *Node) {
	v.Vivify().Merge(other)
}

func (v *View) Keys() []string {
	return v.root.Keys(v.path...)
}

func (v *View) Len() int {
	return v.Node().Len()
}

// Clear empties the object the View points at, if any.
func (v *View) Clear() {
	v.wrote()
	if x := v.Node(); x != nil {
		x.Clear()
	}
}

// View returns a View nested below v.
func (v *View) View(path ...string) *View {
	return &View{root: v.root, path: v.at(path), onWrite: v.onWrite}
}
