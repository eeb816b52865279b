package tree

// node is one element of a Tree. It names raw[start:end] of its owning tree.
type node struct {
	name     string
	start    int
	end      int
	children []node // insertion order; the slice tail is the append cursor
}

// shifted returns a deep copy of n with every offset moved by delta.
func (n *node) shifted(delta int) node {
	c := node{
		name:  n.name,
		start: n.start + delta,
		end:   n.end + delta,
	}
	if len(n.children) > 0 {
		c.children = make([]node, len(n.children))
		for i := range n.children {
			c.children[i] = n.children[i].shifted(delta)
		}
	}
	return c
}

func (n *node) equal(o *node) bool {
	if n.name != o.name || n.start != o.start || n.end != o.end || len(n.children) != len(o.children) {
		return false
	}
	for i := range n.children {
		if !n.children[i].equal(&o.children[i]) {
			return false
		}
	}
	return true
}

// valid checks that n and its subtree lie within [lo, hi).
func (n *node) valid(lo, hi int) bool {
	if n.start < lo || n.end > hi || n.start > n.end {
		return false
	}
	prev := n.start
	for i := range n.children {
		c := &n.children[i]
		if c.start < prev {
			return false
		}
		if !c.valid(n.start, n.end) {
			return false
		}
		prev = c.start
	}
	return true
}

// NodeView is a read-only handle on a node of a Tree.
type NodeView struct {
	raw []byte
	n   *node
}

// Name returns the node name.
func (v NodeView) Name() string { return v.n.name }

// Start returns the offset of the first byte the node names.
func (v NodeView) Start() int { return v.n.start }

// End returns the offset one past the last byte the node names.
func (v NodeView) End() int { return v.n.end }

// Text returns the bytes the node names as a string.
func (v NodeView) Text() string { return string(v.raw[v.n.start:v.n.end]) }

// NumChildren returns the number of direct children.
func (v NodeView) NumChildren() int { return len(v.n.children) }

// Child returns the i'th child.
func (v NodeView) Child(i int) NodeView {
	return NodeView{raw: v.raw, n: &v.n.children[i]}
}

// Children returns views of the direct children in insertion order.
func (v NodeView) Children() []NodeView {
	out := make([]NodeView, len(v.n.children))
	for i := range v.n.children {
		out[i] = v.Child(i)
	}
	return out
}

// Walk calls fn for v and every descendant in depth-first pre-order.
// depth is 0 for v. Returning false from fn skips that node's children.
func (v NodeView) Walk(fn func(n NodeView, depth int) bool) {
	v.walk(fn, 0)
}

func (v NodeView) walk(fn func(NodeView, int) bool, depth int) {
	if !fn(v, depth) {
		return
	}
	for i := range v.n.children {
		v.Child(i).walk(fn, depth+1)
	}
}
