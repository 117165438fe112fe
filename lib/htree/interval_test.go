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

func TestIntervalContains(t *testing.T) {
	t.Parallel()
	bounded := iv(3, 7)
	for val, want := range map[int32]bool{2: false, 3: true, 5: true, 7: true, 8: false} {
		got, err := bounded.Contains(scalar.NewI32(val))
		require.NoError(t, err)
		assert.Equal(t, want, got, "Contains(%d)", val)
	}

	leftUnbounded := htree.Interval{HasHi: true, Hi: scalar.NewI32(7)}
	got, err := leftUnbounded.Contains(scalar.NewI32(-1000))
	require.NoError(t, err)
	assert.True(t, got)
	got, err = leftUnbounded.Contains(scalar.NewI32(8))
	require.NoError(t, err)
	assert.False(t, got)
}

func TestIntervalContainsTagMismatch(t *testing.T) {
	t.Parallel()
	_, err := iv(3, 7).Contains(scalar.NewI64(5))
	require.Error(t, err)
	var tagErr scalar.ErrTypeTagMismatch
	require.ErrorAs(t, err, &tagErr)
}

func TestIntervalEqualIgnoresUnboundedPayload(t *testing.T) {
	t.Parallel()
	// Two left-unbounded intervals compare equal no matter what value is
	// sitting in the unused Lo field.
	a := htree.Interval{Lo: scalar.NewI32(123), HasHi: true, Hi: scalar.NewI32(7)}
	b := htree.Interval{Lo: scalar.NewI32(-9), HasHi: true, Hi: scalar.NewI32(7)}
	eq, err := a.Equal(b)
	require.NoError(t, err)
	assert.True(t, eq)

	eq, err = a.Equal(iv(123, 7))
	require.NoError(t, err)
	assert.False(t, eq)
}

func TestOverlapRatioBoundedQuery(t *testing.T) {
	t.Parallel()
	// Cell [0,9] (10 integer points) against query [5,14]: 5 of 10 points.
	r, err := iv(0, 9).OverlapRatio(iv(5, 14))
	require.NoError(t, err)
	assert.InDelta(t, 0.5, r, 1e-12)

	// Disjoint.
	r, err = iv(0, 9).OverlapRatio(iv(20, 30))
	require.NoError(t, err)
	assert.Equal(t, 0.0, r)

	// Query fully covers the cell.
	r, err = iv(0, 9).OverlapRatio(iv(-5, 100))
	require.NoError(t, err)
	assert.InDelta(t, 1.0, r, 1e-12)
}

func TestOverlapRatioUnboundedQuerySides(t *testing.T) {
	t.Parallel()
	q := htree.Interval{HasHi: true, Hi: scalar.NewI32(4)}
	r, err := iv(0, 9).OverlapRatio(q)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, r, 1e-12)

	r, err = iv(0, 9).OverlapRatio(htree.Interval{})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, r, 1e-12)
}

func TestOverlapRatioDegenerateCell(t *testing.T) {
	t.Parallel()
	// A single-point integer cell is all-or-nothing.
	r, err := iv(5, 5).OverlapRatio(iv(0, 10))
	require.NoError(t, err)
	assert.Equal(t, 1.0, r)
	r, err = iv(5, 5).OverlapRatio(iv(6, 10))
	require.NoError(t, err)
	assert.Equal(t, 0.0, r)

	// Same for a float point, even though its Width is 0.
	r, err = fiv(1.5, 1.5).OverlapRatio(fiv(1.0, 2.0))
	require.NoError(t, err)
	assert.Equal(t, 1.0, r)
	r, err = fiv(1.5, 1.5).OverlapRatio(fiv(2.0, 3.0))
	require.NoError(t, err)
	assert.Equal(t, 0.0, r)
}

func TestOverlapRatioRequiresBoundedReceiver(t *testing.T) {
	t.Parallel()
	h := htree.Interval{HasLo: true, Lo: scalar.NewI32(0)}
	_, err := h.OverlapRatio(iv(0, 1))
	require.Error(t, err)
	var ubErr htree.ErrIntervalUnbounded
	require.ErrorAs(t, err, &ubErr)
}

func TestBucketOverlapRatioFactorizes(t *testing.T) {
	t.Parallel()
	h := htree.Bucket{iv(0, 9), iv(0, 4)}
	q := htree.Bucket{iv(0, 4), iv(0, 4)}
	r, err := h.OverlapRatio(q)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, r, 1e-12)

	_, err = h.OverlapRatio(htree.Bucket{iv(0, 1)})
	require.Error(t, err)
	var arErr htree.ErrArityMismatch
	require.ErrorAs(t, err, &arErr)
}
