// Copyright (C) 2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

// Package htree implements a recursive, level-indexed, multidimensional
// histogram index: an H-Tree. Each level partitions tuples by one
// dimension's value into ordered intervals, where adjacent intervals share
// an endpoint only when tied values straddle a partition; the leaves are
// buckets holding a per-dimension interval and (conceptually) a tuple count.
// Once built, a Tree is read-only: Search and EstimateSelectivity never
// mutate it, so any number of goroutines may query the same Tree
// concurrently.
package htree

import "github.com/sealdb/htreeidx/lib/scalar"

// Interval is a possibly-one-sided-unbounded closed range over a single
// dimension. HasLo/HasHi record presence explicitly rather than using a
// sentinel Value, so an unbounded end never needs a tag-specific "minus
// infinity" encoding.
type Interval struct {
	HasLo bool
	Lo    scalar.Value
	HasHi bool
	Hi    scalar.Value
}

// Contains reports whether v falls within the interval.
func (iv Interval) Contains(v scalar.Value) (bool, error) {
	if iv.HasLo {
		cmp, err := iv.Lo.Compare(v)
		if err != nil {
			return false, err
		}
		if cmp > 0 {
			return false, nil
		}
	}
	if iv.HasHi {
		cmp, err := iv.Hi.Compare(v)
		if err != nil {
			return false, err
		}
		if cmp < 0 {
			return false, nil
		}
	}
	return true, nil
}

// Equal reports whether iv and other describe the same range. Two
// unbounded ends on the same side compare equal regardless of the payload
// left in the unused Lo/Hi field.
func (iv Interval) Equal(other Interval) (bool, error) {
	if iv.HasLo != other.HasLo || iv.HasHi != other.HasHi {
		return false, nil
	}
	if iv.HasLo {
		cmp, err := iv.Lo.Compare(other.Lo)
		if err != nil {
			return false, err
		}
		if cmp != 0 {
			return false, nil
		}
	}
	if iv.HasHi {
		cmp, err := iv.Hi.Compare(other.Hi)
		if err != nil {
			return false, err
		}
		if cmp != 0 {
			return false, nil
		}
	}
	return true, nil
}

// OverlapRatio returns the fraction of iv's width covered by the
// intersection of iv and query, for use as a per-dimension selectivity
// factor. iv (the receiver) must be two-sided bounded — it is always a
// stored tree key, never a caller-supplied query range — or
// ErrIntervalUnbounded is returned.
//
// A degenerate cell (iv.Lo == iv.Hi) counts as fully covered whenever the
// intersection is non-empty; this keeps single-point cells meaningful for
// float dimensions, where a point's Width is 0.
func (iv Interval) OverlapRatio(query Interval) (float64, error) {
	if !iv.HasLo || !iv.HasHi {
		return 0, ErrIntervalUnbounded{}
	}

	lo := iv.Lo
	if query.HasLo {
		cmp, err := query.Lo.Compare(lo)
		if err != nil {
			return 0, err
		}
		if cmp > 0 {
			lo = query.Lo
		}
	}
	hi := iv.Hi
	if query.HasHi {
		cmp, err := query.Hi.Compare(hi)
		if err != nil {
			return 0, err
		}
		if cmp < 0 {
			hi = query.Hi
		}
	}

	cmp, err := lo.Compare(hi)
	if err != nil {
		return 0, err
	}
	if cmp > 0 {
		return 0, nil
	}

	cmp, err = iv.Lo.Compare(iv.Hi)
	if err != nil {
		return 0, err
	}
	if cmp == 0 {
		return 1, nil
	}

	total, err := iv.Lo.Width(iv.Hi)
	if err != nil {
		return 0, err
	}
	overlap, err := lo.Width(hi)
	if err != nil {
		return 0, err
	}
	return overlap / total, nil
}
