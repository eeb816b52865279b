// Package tree implements LioLi trees: a single backing byte string plus a
// hierarchy of named nodes that each name a [start, end) slice of it.
//
// # Model
//
// A Tree owns all of its data in one contiguous buffer. Nodes never copy
// bytes; they carry offsets into the owning tree's buffer. Composing trees is
// concatenation with reindexing:
//
//	root := tree.MustNew("$")
//	root.AppendTree(tree.MustNew("principal").AppendText("10.0.0.1"))
//	root.AppendTree(tree.MustNew("endpoint").AppendText("10.0.0.2"))
//
// After the two appends root's buffer is "10.0.0.110.0.0.2", the root node
// spans all of it and its two children span [0,8) and [8,16).
//
// Invariants maintained by every public mutation:
//   - 0 <= start <= end <= Len() for every node;
//   - a child's range lies inside its parent's range;
//   - children keep insertion order with non-decreasing starts; bytes between
//     children belong to the parent;
//   - the root spans [0, Len()).
//
// # Names
//
// A node name is either "$" (the conventional outer wrapper) or matches
// [a-z_][a-z_0-9]*. Names are checked when a Tree is constructed.
//
// # Renderings
//
// String returns the indented debug dump, Lorth the bracketed text form, and
// AppendBinary the BILL node encoding consumed by package bill.
//
// Trees are not safe for concurrent mutation. Once handed to a stream or a
// sink a tree must not be modified again.
package tree
