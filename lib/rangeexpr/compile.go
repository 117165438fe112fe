// Copyright (C) 2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package rangeexpr

import (
	"fmt"

	"github.com/sealdb/htreeidx/lib/htree"
	"github.com/sealdb/htreeidx/lib/scalar"
)

// Column names and types one dimension a Predicate can be compiled
// against. It mirrors catalog.Column's shape without this package
// importing catalog, so catalog can import rangeexpr without a cycle.
type Column struct {
	Name string
	Tag  scalar.Tag
}

// Compile maps pred onto an unbounded htree.Bucket of len(cols) dimensions
// — one Interval per column, in column order — and narrows each dimension
// per the Clauses that name it. A column with no matching Clause stays
// fully unbounded. Compile reports ErrUnknownColumn for a Clause naming a
// column absent from cols.
//
// The Interval model only expresses closed, two-sided-bounded (or
// one-sided-unbounded) ranges, so OpLt and OpLe both narrow the upper
// bound to the literal value, and OpGt/OpGe both narrow the lower bound —
// there is no open-interval representation to distinguish strict from
// non-strict. This is an intentional simplification of the mini-language,
// not a gap in the core: a real query planner would need a richer
// predicate-to-bucket compiler, which is out of scope here.
func Compile(pred Predicate, cols []Column) (htree.Bucket, error) {
	index := make(map[string]int, len(cols))
	for i, c := range cols {
		index[c.Name] = i
	}

	bucket := make(htree.Bucket, len(cols))
	for _, clause := range pred.Clauses {
		i, ok := index[clause.Column]
		if !ok {
			return nil, ErrUnknownColumn{Column: clause.Column}
		}
		tag := cols[i].Tag
		if err := narrow(&bucket[i], clause, tag); err != nil {
			return nil, err
		}
	}
	return bucket, nil
}

func narrow(iv *htree.Interval, clause Clause, tag scalar.Tag) error {
	switch clause.Op {
	case OpEq:
		v, err := parseLiteral(clause.Lit, tag)
		if err != nil {
			return err
		}
		iv.HasLo, iv.Lo = true, v
		iv.HasHi, iv.Hi = true, v
	case OpLt, OpLe:
		v, err := parseLiteral(clause.Lit, tag)
		if err != nil {
			return err
		}
		iv.HasHi, iv.Hi = true, v
	case OpGt, OpGe:
		v, err := parseLiteral(clause.Lit, tag)
		if err != nil {
			return err
		}
		iv.HasLo, iv.Lo = true, v
	case OpBetween:
		lo, err := parseLiteral(clause.Lit, tag)
		if err != nil {
			return err
		}
		hi, err := parseLiteral(clause.HiLit, tag)
		if err != nil {
			return err
		}
		iv.HasLo, iv.Lo = true, lo
		iv.HasHi, iv.Hi = true, hi
	default:
		return fmt.Errorf("rangeexpr: unknown operator %v", clause.Op)
	}
	return nil
}

// parseLiteral resolves a clause's raw literal text into a scalar.Value of
// the given tag, via scalar.Parse (the same resolver cmd/htreeidx uses for
// CSV fields, so a predicate literal and a sample-row field agree on
// format).
func parseLiteral(lit string, tag scalar.Tag) (scalar.Value, error) {
	v, err := scalar.Parse(lit, tag)
	if err != nil {
		return scalar.Value{}, fmt.Errorf("rangeexpr: %w", err)
	}
	return v, nil
}
