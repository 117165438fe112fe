// Copyright (C) 2022  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

// Package slices holds small generic slice helpers shared by lib/maps and
// cmd/htreeidx.
package slices

import (
	"sort"

	"golang.org/x/exp/constraints"
)

// Contains reports whether needle appears anywhere in haystack. Used by
// cmd/htreeidx's --columns flag parser to reject a duplicate column name
// before it ever reaches catalog.NewRelation's panic path.
func Contains[T comparable](needle T, haystack []T) bool {
	for _, straw := range haystack {
		if needle == straw {
			return true
		}
	}
	return false
}

// Sort sorts slice in place by its natural order.
func Sort[T constraints.Ordered](slice []T) {
	sort.Slice(slice, func(i, j int) bool {
		return slice[i] < slice[j]
	})
}
