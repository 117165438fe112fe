// Copyright (C) 2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package scalar

import "fmt"

// ErrTypeTagMismatch is returned whenever two Values with different Tags are
// compared or widened against one another.
type ErrTypeTagMismatch struct {
	A, B Tag
}

func (e ErrTypeTagMismatch) Error() string {
	return fmt.Sprintf("scalar: type tag mismatch: %v vs %v", e.A, e.B)
}

// ErrWidthUnsupported is returned by Value.Width for tags that compare but
// don't have a meaningful cardinality-estimation width (calendar and
// duration tags).
type ErrWidthUnsupported struct {
	Tag Tag
}

func (e ErrWidthUnsupported) Error() string {
	return fmt.Sprintf("scalar: %v does not support Width", e.Tag)
}

// ErrUnsupportedTag is returned when a Value carries a Tag outside of the
// closed set this package knows how to compare, marshal, or widen.
type ErrUnsupportedTag struct {
	Tag Tag
}

func (e ErrUnsupportedTag) Error() string {
	return fmt.Sprintf("scalar: unsupported tag %v", e.Tag)
}
