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

func tuple(vals ...int32) []scalar.Value {
	out := make([]scalar.Value, len(vals))
	for i, v := range vals {
		out[i] = scalar.NewI32(v)
	}
	return out
}

func TestBuildEmpty(t *testing.T) {
	t.Parallel()
	tr, err := htree.Build(nil, []int{4, 4})
	require.NoError(t, err)
	assert.Equal(t, 2, tr.Arity)
	assert.Nil(t, tr.Root)
	assert.Equal(t, uint64(0), tr.NumBuckets())
}

func TestBuildInvalidBucketCount(t *testing.T) {
	t.Parallel()
	_, err := htree.Build([][]scalar.Value{tuple(1, 2)}, []int{1, 0})
	require.Error(t, err)
	var bcErr htree.ErrInvalidBucketCount
	require.ErrorAs(t, err, &bcErr)
	assert.Equal(t, 1, bcErr.Index)
}

func TestBuildArityMismatch(t *testing.T) {
	t.Parallel()
	_, err := htree.Build([][]scalar.Value{tuple(1, 2), tuple(1)}, []int{2, 2})
	require.Error(t, err)
	var arErr htree.ErrArityMismatch
	require.ErrorAs(t, err, &arErr)
}

func TestBuildSingleDimension(t *testing.T) {
	t.Parallel()
	var tuples [][]scalar.Value
	for i := int32(0); i < 10; i++ {
		tuples = append(tuples, tuple(i))
	}
	tr, err := htree.Build(tuples, []int{5})
	require.NoError(t, err)
	assert.Equal(t, uint64(5), tr.NumBuckets())
	require.NotNil(t, tr.Root)
	assert.Len(t, tr.Root.Elements, 5)
	for _, el := range tr.Root.Elements {
		assert.True(t, el.IsLeaf())
		require.Len(t, el.Leaf, 1)
	}
}

func TestBuildTwoDimensions(t *testing.T) {
	t.Parallel()
	var tuples [][]scalar.Value
	for i := int32(0); i < 4; i++ {
		for j := int32(0); j < 4; j++ {
			tuples = append(tuples, tuple(i, j))
		}
	}
	tr, err := htree.Build(tuples, []int{2, 2})
	require.NoError(t, err)
	assert.Equal(t, uint64(4), tr.NumBuckets())
	require.NotNil(t, tr.Root)
	assert.Equal(t, 1, tr.Root.Level)
	for _, el := range tr.Root.Elements {
		require.False(t, el.IsLeaf())
		assert.Equal(t, 0, el.Child.Level)
		for _, leafEl := range el.Child.Elements {
			require.True(t, leafEl.IsLeaf())
			require.Len(t, leafEl.Leaf, 2)
			// dimension 0 of the leaf bucket is the ancestor's key.
			eq, err := leafEl.Leaf[0].Equal(el.Key)
			require.NoError(t, err)
			assert.True(t, eq)
			// dimension 1 is the leaf's own key.
			eq, err = leafEl.Leaf[1].Equal(leafEl.Key)
			require.NoError(t, err)
			assert.True(t, eq)
		}
	}
}
