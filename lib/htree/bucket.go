// Copyright (C) 2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package htree

// Bucket is one leaf of the tree: a per-dimension Interval, one entry per
// attribute, in the same attribute order the tree was built with.
type Bucket []Interval

// Equal reports whether two Buckets describe the same per-dimension ranges.
func (b Bucket) Equal(other Bucket) (bool, error) {
	if len(b) != len(other) {
		return false, nil
	}
	for i := range b {
		eq, err := b[i].Equal(other[i])
		if err != nil {
			return false, err
		}
		if !eq {
			return false, nil
		}
	}
	return true, nil
}

// OverlapRatio returns the product, across every dimension, of that
// dimension's Interval.OverlapRatio against query — the standard
// independence-assumption estimate of what fraction of b's tuples also
// satisfy query.
func (b Bucket) OverlapRatio(query Bucket) (float64, error) {
	if len(b) != len(query) {
		return 0, ErrArityMismatch{Want: len(b), Got: len(query)}
	}
	ratio := 1.0
	for i := range b {
		r, err := b[i].OverlapRatio(query[i])
		if err != nil {
			return 0, err
		}
		ratio *= r
		if ratio == 0 {
			return 0, nil
		}
	}
	return ratio, nil
}
