// Copyright (C) 2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sealdb/htreeidx/lib/catalog"
	"github.com/sealdb/htreeidx/lib/htree"
	"github.com/sealdb/htreeidx/lib/rangeexpr"
	"github.com/sealdb/htreeidx/lib/scalar"
)

func tuple(vals ...int32) []scalar.Value {
	out := make([]scalar.Value, len(vals))
	for i, v := range vals {
		out[i] = scalar.NewI32(v)
	}
	return out
}

func TestAdapterEstimateWithNoTreeInstalled(t *testing.T) {
	t.Parallel()
	var a catalog.Adapter
	sel, err := a.Estimate(htree.Bucket{{HasLo: true, Lo: scalar.NewI32(0), HasHi: true, Hi: scalar.NewI32(1)}})
	require.NoError(t, err)
	assert.Equal(t, float64(0), sel)
	assert.Equal(t, uint64(0), a.NumBuckets())
}

func TestAdapterSetDropRoundTrip(t *testing.T) {
	t.Parallel()
	var tuples [][]scalar.Value
	for i := int32(0); i < 10; i++ {
		tuples = append(tuples, tuple(i))
	}
	tree, err := htree.Build(tuples, []int{5})
	require.NoError(t, err)

	var a catalog.Adapter
	a.Set(tree)
	assert.Equal(t, uint64(5), a.NumBuckets())

	blob, err := a.MarshalBinary()
	require.NoError(t, err)

	var b catalog.Adapter
	require.NoError(t, b.UnmarshalBinary(blob))
	assert.Equal(t, uint64(5), b.NumBuckets())

	a.Drop()
	assert.Equal(t, uint64(0), a.NumBuckets())

	dropBlob, err := a.MarshalBinary()
	require.NoError(t, err)
	var c catalog.Adapter
	require.NoError(t, c.UnmarshalBinary(dropBlob))
	assert.Equal(t, uint64(0), c.NumBuckets())
}

func TestRelationRebuildAndEstimate(t *testing.T) {
	t.Parallel()
	rel := catalog.NewRelation("widgets", []catalog.Column{
		{Name: "id", Tag: scalar.I32},
		{Name: "price", Tag: scalar.I32},
	})

	var tuples [][]scalar.Value
	for i := int32(0); i < 3; i++ {
		for j := int32(0); j < 3; j++ {
			tuples = append(tuples, tuple(i, j))
		}
	}
	require.NoError(t, rel.Rebuild(context.Background(), tuples, []int{1, 1}))

	pred, err := rangeexpr.Parse("id = 1 AND price = 1")
	require.NoError(t, err)
	sel, err := rel.EstimateSelectivity(pred)
	require.NoError(t, err)
	assert.Greater(t, sel, 0.0)
}

func TestRelationMarshalRoundTrip(t *testing.T) {
	t.Parallel()
	rel := catalog.NewRelation("widgets", []catalog.Column{
		{Name: "id", Tag: scalar.I32},
		{Name: "price", Tag: scalar.F64},
	})
	tuples := [][]scalar.Value{
		{scalar.NewI32(1), scalar.NewF64(9.5)},
		{scalar.NewI32(2), scalar.NewF64(3.25)},
		{scalar.NewI32(3), scalar.NewF64(7.0)},
	}
	require.NoError(t, rel.Rebuild(context.Background(), tuples, []int{3, 1}))

	blob, err := rel.MarshalBinary()
	require.NoError(t, err)

	var got catalog.Relation
	require.NoError(t, got.UnmarshalBinary(blob))
	assert.Equal(t, rel.Name, got.Name)
	assert.Equal(t, rel.Columns, got.Columns)
	assert.Equal(t, rel.Stats.NumBuckets(), got.Stats.NumBuckets())

	// A relation persisted with no histogram loads with an empty Adapter,
	// not a nil one.
	bare := catalog.NewRelation("empty", []catalog.Column{{Name: "id", Tag: scalar.I32}})
	blob, err = bare.MarshalBinary()
	require.NoError(t, err)
	var gotBare catalog.Relation
	require.NoError(t, gotBare.UnmarshalBinary(blob))
	require.NotNil(t, gotBare.Stats)
	assert.Equal(t, uint64(0), gotBare.Stats.NumBuckets())
}

func TestNewRelationRejectsDuplicateColumns(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() {
		catalog.NewRelation("widgets", []catalog.Column{
			{Name: "id", Tag: scalar.I32},
			{Name: "id", Tag: scalar.I32},
		})
	})
}

func TestRelationRebuildArityMismatch(t *testing.T) {
	t.Parallel()
	rel := catalog.NewRelation("widgets", []catalog.Column{
		{Name: "id", Tag: scalar.I32},
	})
	err := rel.Rebuild(context.Background(), nil, []int{1, 1})
	require.Error(t, err)
	var arErr htree.ErrArityMismatch
	require.ErrorAs(t, err, &arErr)
}
