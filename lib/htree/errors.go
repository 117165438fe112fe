// Copyright (C) 2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package htree

import "fmt"

// ErrArityMismatch is returned whenever a tuple, query Bucket, or
// bucket-count slice doesn't have exactly as many dimensions as the tree
// (or the tuple set being built) expects.
type ErrArityMismatch struct {
	Want, Got int
}

func (e ErrArityMismatch) Error() string {
	return fmt.Sprintf("htree: arity mismatch: want %d dimensions, got %d", e.Want, e.Got)
}

// ErrInvalidBucketCount is returned by Build when a per-dimension bucket
// count is less than 1.
type ErrInvalidBucketCount struct {
	Index, Value int
}

func (e ErrInvalidBucketCount) Error() string {
	return fmt.Sprintf("htree: invalid bucket count at dimension %d: %d", e.Index, e.Value)
}

// ErrIntervalUnbounded is returned by Interval.OverlapRatio when the
// receiver (the stored key, not the query) isn't bounded on both ends.
// Every key actually stored by Build is two-sided bounded, so this only
// fires against an Interval a caller constructed by hand.
type ErrIntervalUnbounded struct{}

func (ErrIntervalUnbounded) Error() string {
	return "htree: interval is not bounded on both ends"
}
