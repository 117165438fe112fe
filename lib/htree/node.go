// Copyright (C) 2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package htree

// Element is one ordered child of a Node: a key Interval over the
// dimension the owning Node partitions on, plus exactly one of Child
// (interior node, recurses to the next dimension) or Leaf (this is the
// deepest level, Key is the last dimension's range).
type Element struct {
	Key   Interval
	Child *Node
	Leaf  Bucket
}

// IsLeaf reports whether this Element terminates in a Bucket rather than
// recursing into a Child.
func (e Element) IsLeaf() bool { return e.Child == nil }

// Node is one level of the tree: a non-empty, Key-ordered slice of
// Elements, all partitioning the same dimension (arity-1-Level).
type Node struct {
	Level    int
	Elements []Element
}

// Tree is the library's top-level handle: an immutable, read-only-after
// construction H-Tree. The zero value is not useful; construct one with
// Build or htreeio.Decode. Root == nil represents the empty tree (built
// from zero tuples).
type Tree struct {
	Arity        int
	Root         *Node
	TotalBuckets uint64
}

// NumBuckets returns the number of leaf buckets in the tree.
func (t *Tree) NumBuckets() uint64 {
	if t == nil {
		return 0
	}
	return t.TotalBuckets
}
