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

func TestParseNumeric(t *testing.T) {
	t.Parallel()
	v, err := scalar.Parse("-42", scalar.I32)
	require.NoError(t, err)
	assert.Equal(t, int32(-42), v.I32())

	v, err = scalar.Parse("3.5", scalar.F64)
	require.NoError(t, err)
	assert.InDelta(t, 3.5, v.F64(), 1e-9)
}

func TestParseDateTime(t *testing.T) {
	t.Parallel()
	v, err := scalar.Parse("2023-01-02T03:04:05Z", scalar.DateTime)
	require.NoError(t, err)
	assert.True(t, v.Time().Equal(time.Date(2023, 1, 2, 3, 4, 5, 0, time.UTC)))
}

func TestParseInterval(t *testing.T) {
	t.Parallel()
	v, err := scalar.Parse("90m", scalar.DateTimeInterval)
	require.NoError(t, err)
	assert.Equal(t, 90*time.Minute, v.Duration())

	v, err = scalar.Parse("6", scalar.YearMonthInterval)
	require.NoError(t, err)
	assert.Equal(t, int32(6), v.Months())
}

func TestParseRejectsMalformedInput(t *testing.T) {
	t.Parallel()
	_, err := scalar.Parse("not-a-number", scalar.I32)
	assert.Error(t, err)

	_, err = scalar.Parse("nope", scalar.DateTime)
	assert.Error(t, err)
}

func TestParseTag(t *testing.T) {
	t.Parallel()
	tag, err := scalar.ParseTag("f64")
	require.NoError(t, err)
	assert.Equal(t, scalar.F64, tag)

	_, err = scalar.ParseTag("bogus")
	assert.Error(t, err)
}
