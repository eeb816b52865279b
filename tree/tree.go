package tree

import (
	"strconv"
)

// Tree is a backing byte string plus a root node naming slices of it.
type Tree struct {
	raw  []byte
	root node
	null bool
}

// New returns an empty tree whose root is called name.
func New(name string) (*Tree, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	return &Tree{root: node{name: name}}, nil
}

// MustNew is like New but panics when name is invalid. Node names are
// chosen by the program, so an invalid one is a programming error.
func MustNew(name string) *Tree {
	t, err := New(name)
	if err != nil {
		panic(err)
	}
	return t
}

// Anonymous returns a tree with an unnamed root, usable as a transient text
// accumulator. Text appends are allowed; appending it into another tree or
// encoding it panics with ErrAnonymous.
func Anonymous() *Tree {
	return &Tree{}
}

var null = &Tree{root: node{name: RootName}, null: true}

// Null returns the shared null tree. Appending to it has no effect, so it can
// be handed out by helpers that must return a tree but have nothing to say.
func Null() *Tree { return null }

// IsNull reports whether t is the shared null tree.
func (t *Tree) IsNull() bool { return t == nil || t.null }

// Name returns the root name; "" for an anonymous tree.
func (t *Tree) Name() string { return t.root.name }

// Anonymous reports whether the root has no name.
func (t *Tree) Anonymous() bool { return t.root.name == "" }

// Len returns the length of the backing string.
func (t *Tree) Len() int { return len(t.raw) }

// Raw returns the backing string. The caller must not modify it.
func (t *Tree) Raw() []byte { return t.raw }

// Root returns a read-only view of the root node.
func (t *Tree) Root() NodeView { return NodeView{raw: t.raw, n: &t.root} }

// AppendText appends s to the backing string and extends the root over it.
// No child node is created.
func (t *Tree) AppendText(s string) *Tree {
	if t.null {
		return t
	}
	t.raw = append(t.raw, s...)
	t.root.end = len(t.raw)
	return t
}

// AppendBytes is AppendText for a byte slice.
func (t *Tree) AppendBytes(b []byte) *Tree {
	if t.null {
		return t
	}
	t.raw = append(t.raw, b...)
	t.root.end = len(t.raw)
	return t
}

// AppendInt appends the decimal form of n.
func (t *Tree) AppendInt(n int64) *Tree {
	if t.null {
		return t
	}
	t.raw = strconv.AppendInt(t.raw, n, 10)
	t.root.end = len(t.raw)
	return t
}

// AppendTree appends other's backing string and attaches a copy of other's
// root as the last child of t's root, with every offset in the copy moved by
// the length t had before the call. other is not modified.
//
// An empty other still adds its (empty) node. AppendTree panics when other
// is anonymous.
func (t *Tree) AppendTree(other *Tree) *Tree {
	if other.Anonymous() {
		panic(ErrAnonymous)
	}
	if t.null {
		return t
	}
	// Copy the donor before touching t: other may be t itself.
	delta := len(t.raw)
	child := other.root.shifted(delta)
	donor := other.raw
	t.raw = append(t.raw, donor...)
	t.root.end = len(t.raw)
	t.root.children = append(t.root.children, child)
	return t
}

// Clone returns a deep copy of t.
func (t *Tree) Clone() *Tree {
	if t.null {
		return t
	}
	return &Tree{
		raw:  append([]byte(nil), t.raw...),
		root: t.root.shifted(0),
	}
}

// Equal reports whether t and o have the same bytes and the same node
// structure (names, offsets and children).
func (t *Tree) Equal(o *Tree) bool {
	if t == nil || o == nil {
		return t == o
	}
	return string(t.raw) == string(o.raw) && t.root.equal(&o.root)
}

// Hash returns the length of the backing string. It is a deliberately cheap,
// collision-prone hash; do not rely on its distribution.
func (t *Tree) Hash() uint32 {
	return uint32(len(t.raw))
}

// Valid checks the offset invariants of every node against the backing
// string. It is meant for tests and debugging.
func (t *Tree) Valid() bool {
	if t.root.start != 0 || t.root.end != len(t.raw) {
		return false
	}
	return t.root.valid(0, len(t.raw))
}
