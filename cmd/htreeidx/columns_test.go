// Copyright (C) 2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sealdb/htreeidx/lib/catalog"
	"github.com/sealdb/htreeidx/lib/scalar"
)

func TestParseColumnsFlag(t *testing.T) {
	t.Parallel()
	cols, err := parseColumnsFlag("id:i32, price:f64")
	require.NoError(t, err)
	assert.Equal(t, []catalog.Column{
		{Name: "id", Tag: scalar.I32},
		{Name: "price", Tag: scalar.F64},
	}, cols)
}

func TestParseColumnsFlagRejectsMalformedEntry(t *testing.T) {
	t.Parallel()
	_, err := parseColumnsFlag("id")
	assert.Error(t, err)
	_, err = parseColumnsFlag("id:notatype")
	assert.Error(t, err)
	_, err = parseColumnsFlag("")
	assert.Error(t, err)
}

func TestParseColumnsFlagRejectsDuplicateName(t *testing.T) {
	t.Parallel()
	_, err := parseColumnsFlag("id:i32,id:i64")
	assert.Error(t, err)
}

func TestParseBucketsFlag(t *testing.T) {
	t.Parallel()
	counts, err := parseBucketsFlag("4, 8", 2)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 8}, counts)

	_, err = parseBucketsFlag("4", 2)
	assert.Error(t, err)

	_, err = parseBucketsFlag("four", 1)
	assert.Error(t, err)
}
