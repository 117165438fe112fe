// Copyright (C) 2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package htreeio

import (
	"fmt"

	"github.com/sealdb/htreeidx/lib/scalar"
)

// ErrMalformedBlob is returned by Decode when the byte stream doesn't
// follow the wire grammar: truncated buffers, an empty node, a leaf bucket
// whose arity doesn't match the tree's, or a body tag appearing at the
// wrong depth.
type ErrMalformedBlob struct {
	Reason string
}

func (e ErrMalformedBlob) Error() string {
	return fmt.Sprintf("htreeio: malformed blob: %s", e.Reason)
}

// ErrUnsupportedScalarTag is returned by Decode when a Scalar's tag byte
// doesn't name one of scalar's closed set of Tags. An unrecognized tag is
// a hard error: reconstructing a placeholder value would silently poison
// every estimate the rehydrated tree produces.
type ErrUnsupportedScalarTag struct {
	Tag scalar.Tag
}

func (e ErrUnsupportedScalarTag) Error() string {
	return fmt.Sprintf("htreeio: unsupported scalar tag %v", e.Tag)
}
