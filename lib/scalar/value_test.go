// Copyright (C) 2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package scalar_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sealdb/htreeidx/lib/scalar"
)

func TestCompareSameTag(t *testing.T) {
	t.Parallel()
	cmp, err := scalar.NewI32(3).Compare(scalar.NewI32(5))
	require.NoError(t, err)
	assert.Equal(t, -1, cmp)

	cmp, err = scalar.NewF64(5.5).Compare(scalar.NewF64(5.5))
	require.NoError(t, err)
	assert.Equal(t, 0, cmp)
}

func TestCompareTagMismatch(t *testing.T) {
	t.Parallel()
	_, err := scalar.NewI32(3).Compare(scalar.NewI64(3))
	require.Error(t, err)
	var tagErr scalar.ErrTypeTagMismatch
	require.ErrorAs(t, err, &tagErr)
	assert.Equal(t, scalar.I32, tagErr.A)
	assert.Equal(t, scalar.I64, tagErr.B)
}

func TestWidthIntegers(t *testing.T) {
	t.Parallel()
	w, err := scalar.NewI32(3).Width(scalar.NewI32(10))
	require.NoError(t, err)
	assert.Equal(t, float64(8), w)

	w, err = scalar.NewI32(10).Width(scalar.NewI32(3))
	require.NoError(t, err)
	assert.Equal(t, float64(0), w)
}

func TestWidthFloats(t *testing.T) {
	t.Parallel()
	w, err := scalar.NewF64(1.5).Width(scalar.NewF64(4.5))
	require.NoError(t, err)
	assert.Equal(t, float64(3), w)
}

func TestWidthUnsupported(t *testing.T) {
	t.Parallel()
	now := time.Now()
	_, err := scalar.NewDate(now).Width(scalar.NewDate(now))
	require.Error(t, err)
	var widthErr scalar.ErrWidthUnsupported
	require.ErrorAs(t, err, &widthErr)
	assert.Equal(t, scalar.Date, widthErr.Tag)
}

func TestMarshalRoundTrip(t *testing.T) {
	t.Parallel()
	cases := []scalar.Value{
		scalar.NewI32(-42),
		scalar.NewI64(1 << 40),
		scalar.NewF32(3.25),
		scalar.NewF64(-1.125),
		scalar.NewDate(time.Date(2026, 7, 29, 0, 0, 0, 0, time.UTC)),
		scalar.NewDateTime(time.Date(2026, 7, 29, 12, 30, 0, 0, time.UTC)),
		scalar.NewDateTimeInterval(90 * time.Minute),
		scalar.NewYearMonthInterval(-5),
	}
	for _, orig := range cases {
		bs, err := orig.MarshalBinary()
		require.NoError(t, err)

		var got scalar.Value
		require.NoError(t, got.UnmarshalBinary(bs))
		assert.Equal(t, orig.Tag, got.Tag)

		cmp, err := orig.Compare(got)
		require.NoError(t, err)
		assert.Equal(t, 0, cmp)
	}
}
