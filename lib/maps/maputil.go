// Copyright (C) 2022  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

// Package maps holds small generic map helpers used by lib/containers (for
// deterministic Set JSON encoding) and by the catalog package (for
// deterministic error messages over a relation's column names).
package maps

import (
	"golang.org/x/exp/constraints"

	"github.com/sealdb/htreeidx/lib/slices"
)

// Keys returns m's keys in unspecified order.
func Keys[K comparable, V any](m map[K]V) []K {
	ret := make([]K, 0, len(m))
	for k := range m {
		ret = append(ret, k)
	}
	return ret
}

// SortedKeys returns m's keys sorted by natural order.
func SortedKeys[K constraints.Ordered, V any](m map[K]V) []K {
	ret := Keys(m)
	slices.Sort(ret)
	return ret
}
