// Copyright (C) 2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package htree

import (
	"context"
	"math"
	"sort"

	"github.com/datawire/dlib/dlog"

	"github.com/sealdb/htreeidx/lib/scalar"
)

// Build constructs a Tree from a sample of tuples, one bucket count per
// dimension. Construction is synchronous, single-threaded, and bulk: there
// is no incremental insert, and the returned Tree is never mutated again.
//
// len(bucketCounts) fixes the tree's arity. An empty tuples slice yields a
// valid empty Tree (Root == nil), not an error. Every bucketCounts[i] must
// be >= 1, and every tuple must have exactly arity scalar.Values whose Tags
// match the first tuple's, column for column.
func Build(tuples [][]scalar.Value, bucketCounts []int) (*Tree, error) {
	return BuildContext(context.Background(), tuples, bucketCounts)
}

// BuildContext is Build, but takes a context.Context purely so construction
// can emit structured progress logs via dlog. Construction never checks the
// context for cancellation — it is synchronous and uncancellable by design
// (there is no partially-built Tree to hand back).
func BuildContext(ctx context.Context, tuples [][]scalar.Value, bucketCounts []int) (*Tree, error) {
	arity := len(bucketCounts)
	for i, b := range bucketCounts {
		if b < 1 {
			return nil, ErrInvalidBucketCount{Index: i, Value: b}
		}
	}
	if len(tuples) == 0 || arity == 0 {
		return &Tree{Arity: arity, Root: nil}, nil
	}

	dimTags := make([]scalar.Tag, arity)
	for i, tuple := range tuples {
		if len(tuple) != arity {
			return nil, ErrArityMismatch{Want: arity, Got: len(tuple)}
		}
		for col, v := range tuple {
			if i == 0 {
				dimTags[col] = v.Tag
				continue
			}
			if v.Tag != dimTags[col] {
				return nil, scalar.ErrTypeTagMismatch{A: dimTags[col], B: v.Tag}
			}
		}
	}

	dlog.Debugf(ctx, "htree: building tree: %d tuples, arity %d, bucket counts %v", len(tuples), arity, bucketCounts)
	work := make([][]scalar.Value, len(tuples))
	copy(work, tuples)
	root, total := buildLevel(ctx, work, bucketCounts, 0, nil)
	dlog.Debugf(ctx, "htree: built tree: %d leaf buckets", total)
	return &Tree{Arity: arity, Root: root, TotalBuckets: total}, nil
}

// buildLevel sorts tuples by dimension dim, partitions them into
// ⌈n/bucketCounts[dim]⌉-sized chunks, and recurses on dimension dim+1 for
// each chunk — the "recursive sort-then-partition" construction. path
// carries the key Interval chosen by each ancestor level, so a leaf's
// Bucket can be reconstructed as path plus the leaf's own key.
//
// Level counts from the leaves up (leaves are 0, the root is arity-1), so
// the node partitioning dimension dim sits at level arity-1-dim.
func buildLevel(ctx context.Context, tuples [][]scalar.Value, bucketCounts []int, dim int, path []Interval) (*Node, uint64) {
	// Ties on dim are broken by the tuple's dimensions in order, so the
	// partitioning depends only on the tuple values, not on input order.
	sort.SliceStable(tuples, func(i, j int) bool {
		if cmp, _ := tuples[i][dim].Compare(tuples[j][dim]); cmp != 0 {
			return cmp < 0
		}
		for d := range tuples[i] {
			if cmp, _ := tuples[i][d].Compare(tuples[j][d]); cmp != 0 {
				return cmp < 0
			}
		}
		return false
	})

	n := len(tuples)
	chunkSize := int(math.Ceil(float64(n) / float64(bucketCounts[dim])))
	if chunkSize < 1 {
		chunkSize = 1
	}
	last := dim == len(bucketCounts)-1

	var elements []Element
	var total uint64
	for start := 0; start < n; start += chunkSize {
		end := start + chunkSize
		if end > n {
			end = n
		}
		chunk := tuples[start:end]
		key := Interval{
			HasLo: true, Lo: chunk[0][dim],
			HasHi: true, Hi: chunk[len(chunk)-1][dim],
		}

		if last {
			bucket := make(Bucket, 0, len(path)+1)
			bucket = append(bucket, path...)
			bucket = append(bucket, key)
			elements = append(elements, Element{Key: key, Leaf: bucket})
			total++
		} else {
			childPath := make([]Interval, len(path), len(path)+1)
			copy(childPath, path)
			childPath = append(childPath, key)

			dlog.Debug(dlog.WithField(ctx, "htreeidx.build.step", dim), "partitioning")
			child, childTotal := buildLevel(ctx, chunk, bucketCounts, dim+1, childPath)
			elements = append(elements, Element{Key: key, Child: child})
			total += childTotal
		}
	}

	return &Node{Level: len(bucketCounts) - 1 - dim, Elements: elements}, total
}
