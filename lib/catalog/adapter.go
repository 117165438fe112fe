// Copyright (C) 2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

// Package catalog wraps an H-Tree in the planner-facing shape a relational
// engine's catalog actually holds: an optional, atomically-replaceable
// per-relation histogram (Adapter), and a thin named-relation wrapper
// (Relation) that ties that histogram to a column list and a compiled range
// predicate. Neither type models storage blocks, partition schemes, or a
// protobuf schema registry — those belong to the surrounding engine; this
// package only realizes the statistics adapter plus enough surrounding
// structure for the CLI (cmd/htreeidx) to have something to build against.
package catalog

import (
	"sync"

	"github.com/sealdb/htreeidx/lib/htree"
	"github.com/sealdb/htreeidx/lib/htreeio"
)

// Adapter holds at most one H-Tree for a relation, guarded so that any
// number of readers may call Estimate concurrently while a build or drop
// replaces the tree wholesale. Whole-pointer publication is all the
// synchronization a query needs: the write lock is held only long enough
// to swap the pointer, never for the duration of a query.
type Adapter struct {
	mu   sync.RWMutex
	tree *htree.Tree
}

// Set installs tree as the relation's current histogram, replacing
// whatever was installed before. A nil tree is equivalent to Drop.
func (a *Adapter) Set(tree *htree.Tree) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.tree = tree
}

// Drop removes the installed histogram, if any. Subsequent Estimate calls
// fall back to the zero sentinel until Set is called again.
func (a *Adapter) Drop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.tree = nil
}

// Tree returns a read-only snapshot of the installed histogram, or nil if
// none is installed. The snapshot stays valid (and immutable) even if a
// concurrent Set or Drop replaces the Adapter's tree afterward.
func (a *Adapter) Tree() *htree.Tree {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.tree
}

// NumBuckets returns the installed tree's leaf-bucket count, or 0 if no
// tree is installed.
func (a *Adapter) NumBuckets() uint64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.tree == nil {
		return 0
	}
	return a.tree.NumBuckets()
}

// Estimate returns the installed tree's selectivity estimate for query. If
// no tree is installed, it returns (0, nil) rather than an error, so a
// planner can fall through to a default heuristic.
func (a *Adapter) Estimate(query htree.Bucket) (float64, error) {
	a.mu.RLock()
	tree := a.tree
	a.mu.RUnlock()
	if tree == nil {
		return 0, nil
	}
	return tree.EstimateSelectivity(query)
}

// MarshalBinary persists the installed tree (or its absence) so it can be
// stored alongside the rest of a Relation's metadata. The wire form is
// htreeio's, with one presence byte prefixed so an absent histogram costs a
// single byte rather than an empty-but-present Tree.
func (a *Adapter) MarshalBinary() ([]byte, error) {
	a.mu.RLock()
	tree := a.tree
	a.mu.RUnlock()
	if tree == nil {
		return []byte{0}, nil
	}
	blob, err := htreeio.Encode(tree)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 1+len(blob))
	out[0] = 1
	copy(out[1:], blob)
	return out, nil
}

// UnmarshalBinary restores an Adapter's state from a MarshalBinary blob. It
// never partially installs a tree: on error the Adapter is left unchanged.
func (a *Adapter) UnmarshalBinary(data []byte) error {
	if len(data) == 0 {
		return htreeio.ErrMalformedBlob{Reason: "empty catalog adapter blob"}
	}
	if data[0] == 0 {
		a.Set(nil)
		return nil
	}
	tree, err := htreeio.Decode(data[1:])
	if err != nil {
		return err
	}
	a.Set(tree)
	return nil
}
