// Copyright (C) 2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package htree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sealdb/htreeidx/lib/htree"
	"github.com/sealdb/htreeidx/lib/scalar"
)

func buildIntTree(t *testing.T, n int, buckets int) *htree.Tree {
	t.Helper()
	var tuples [][]scalar.Value
	for i := 0; i < n; i++ {
		tuples = append(tuples, tuple(int32(i)))
	}
	tr, err := htree.Build(tuples, []int{buckets})
	require.NoError(t, err)
	return tr
}

func iv(lo, hi int32) htree.Interval {
	return htree.Interval{HasLo: true, Lo: scalar.NewI32(lo), HasHi: true, Hi: scalar.NewI32(hi)}
}

func TestSearchArityMismatch(t *testing.T) {
	t.Parallel()
	tr := buildIntTree(t, 10, 5)
	_, err := tr.Search(htree.Bucket{iv(0, 1), iv(0, 1)})
	require.Error(t, err)
	var arErr htree.ErrArityMismatch
	require.ErrorAs(t, err, &arErr)
}

func TestSearchEmptyTree(t *testing.T) {
	t.Parallel()
	tr, err := htree.Build(nil, []int{3})
	require.NoError(t, err)
	buckets, err := tr.Search(htree.Bucket{iv(0, 100)})
	require.NoError(t, err)
	assert.Nil(t, buckets)

	sel, err := tr.EstimateSelectivity(htree.Bucket{iv(0, 100)})
	require.NoError(t, err)
	assert.Equal(t, float64(0), sel)
}

func TestSearchFindsOverlappingBuckets(t *testing.T) {
	t.Parallel()
	tr := buildIntTree(t, 20, 4) // buckets: [0-4] [5-9] [10-14] [15-19]

	buckets, err := tr.Search(htree.Bucket{iv(6, 11)})
	require.NoError(t, err)
	require.Len(t, buckets, 2)
}

func TestSearchUnboundedQuery(t *testing.T) {
	t.Parallel()
	tr := buildIntTree(t, 20, 4)
	buckets, err := tr.Search(htree.Bucket{{HasHi: true, Hi: scalar.NewI32(2)}})
	require.NoError(t, err)
	require.Len(t, buckets, 1)
}

func TestEstimateSelectivityFullRange(t *testing.T) {
	t.Parallel()
	tr := buildIntTree(t, 20, 4)
	sel, err := tr.EstimateSelectivity(htree.Bucket{iv(0, 19)})
	require.NoError(t, err)
	assert.InDelta(t, 4.0, sel, 0.001)
}

func TestEstimateSelectivityPartialOverlap(t *testing.T) {
	t.Parallel()
	tr := buildIntTree(t, 20, 4)
	// Query [7,9] touches only bucket [5-9], covering 3 of its 5 points.
	sel, err := tr.EstimateSelectivity(htree.Bucket{iv(7, 9)})
	require.NoError(t, err)
	assert.Greater(t, sel, 0.0)
	assert.LessOrEqual(t, sel, 1.0)
}
