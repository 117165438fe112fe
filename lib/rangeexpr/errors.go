// Copyright (C) 2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package rangeexpr

import "fmt"

// ErrUnknownColumn is returned by Compile when a Clause names a column
// absent from the column list it's being compiled against.
type ErrUnknownColumn struct {
	Column string
}

func (e ErrUnknownColumn) Error() string {
	return fmt.Sprintf("rangeexpr: unknown column %q", e.Column)
}
