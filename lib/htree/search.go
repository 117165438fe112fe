// Copyright (C) 2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package htree

import "sort"

// Search returns every leaf Bucket whose key range overlaps query,
// descending one dimension per tree level. query must have exactly t.Arity
// entries, in the same dimension order the tree was built with.
func (t *Tree) Search(query Bucket) ([]Bucket, error) {
	if len(query) != t.Arity {
		return nil, ErrArityMismatch{Want: t.Arity, Got: len(query)}
	}
	if t.Root == nil {
		return nil, nil
	}
	var out []Bucket
	if err := searchNode(t.Root, query, 0, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// EstimateSelectivity returns the estimated number of leaf buckets' worth
// of tuples matching query: the sum, over every overlapping leaf Bucket, of
// that bucket's OverlapRatio against query. Multiplying it by the per-bucket
// row count gives an expected cardinality. A tree with no installed Root
// (the empty tree) estimates 0, not an error.
func (t *Tree) EstimateSelectivity(query Bucket) (float64, error) {
	if len(query) != t.Arity {
		return 0, ErrArityMismatch{Want: t.Arity, Got: len(query)}
	}
	if t.Root == nil {
		return 0, nil
	}
	buckets, err := t.Search(query)
	if err != nil {
		return 0, err
	}
	var sum float64
	for _, b := range buckets {
		ratio, err := b.OverlapRatio(query)
		if err != nil {
			return 0, err
		}
		sum += ratio
	}
	return sum, nil
}

// searchNode visits the elements of node whose keys overlap query's attr-th
// dimension. attr counts from the root down while Node.Level counts from
// the leaves up, so attr + node.Level + 1 == arity throughout the descent.
func searchNode(node *Node, query Bucket, attr int, out *[]Bucket) error {
	lower, upper, err := elementRange(node.Elements, query[attr])
	if err != nil {
		return err
	}
	for i := lower; i < upper; i++ {
		el := node.Elements[i]
		if el.IsLeaf() {
			*out = append(*out, el.Leaf)
			continue
		}
		if err := searchNode(el.Child, query, attr+1, out); err != nil {
			return err
		}
	}
	return nil
}

// elementRange binary-searches the key-ordered elements slice (adjacent
// keys share at most an endpoint) for the half-open index range
// [lower, upper) whose keys overlap q.
func elementRange(elements []Element, q Interval) (lower, upper int, err error) {
	if !q.HasLo {
		lower = 0
	} else {
		lower = sort.Search(len(elements), func(i int) bool {
			cmp, e := elements[i].Key.Hi.Compare(q.Lo)
			if e != nil {
				err = e
			}
			return cmp >= 0
		})
		if err != nil {
			return 0, 0, err
		}
	}

	if !q.HasHi {
		upper = len(elements)
	} else {
		upper = sort.Search(len(elements), func(i int) bool {
			cmp, e := elements[i].Key.Lo.Compare(q.Hi)
			if e != nil {
				err = e
			}
			return cmp > 0
		})
		if err != nil {
			return 0, 0, err
		}
	}

	return lower, upper, nil
}
