// Copyright (C) 2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package catalog

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"

	"github.com/sealdb/htreeidx/lib/containers"
	"github.com/sealdb/htreeidx/lib/htree"
	"github.com/sealdb/htreeidx/lib/htreeio"
	"github.com/sealdb/htreeidx/lib/maps"
	"github.com/sealdb/htreeidx/lib/rangeexpr"
	"github.com/sealdb/htreeidx/lib/scalar"
)

// Column names and types one indexed attribute of a Relation, in the same
// order the underlying H-Tree's dimensions are built and queried in.
type Column struct {
	Name string
	Tag  scalar.Tag
}

// Relation is this repository's minimal stand-in for a catalog table: a
// name, an ordered column list, and the histogram that estimates range
// predicates over those columns. It deliberately carries nothing about row
// storage, partition schemes, or a protobuf schema registry — those belong
// to the surrounding engine, not to the statistics layer.
type Relation struct {
	Name    string
	Columns []Column
	Stats   *Adapter
}

// NewRelation returns an empty Relation (no histogram installed) over the
// given columns. It panics if columns contains a duplicate name — a
// caller-programming error, not a runtime condition a planner should
// recover from.
func NewRelation(name string, columns []Column) *Relation {
	seen := containers.NewSet[string]()
	for _, c := range columns {
		if seen.Has(c.Name) {
			panic(fmt.Sprintf("catalog: relation %q has duplicate column name %q (columns so far: %v)", name, c.Name, maps.SortedKeys(seen)))
		}
		seen.Insert(c.Name)
	}
	return &Relation{Name: name, Columns: columns, Stats: &Adapter{}}
}

// Rebuild constructs a fresh H-Tree from tuples (one row per sample tuple,
// column order matching r.Columns) and installs it via r.Stats.Set,
// replacing whatever histogram was previously installed. It is the
// catalog-level entry point for a planner handing over a sampled row-set
// plus a per-attribute bucket count.
func (r *Relation) Rebuild(ctx context.Context, tuples [][]scalar.Value, bucketCounts []int) error {
	if len(bucketCounts) != len(r.Columns) {
		return htree.ErrArityMismatch{Want: len(r.Columns), Got: len(bucketCounts)}
	}
	tree, err := htree.BuildContext(ctx, tuples, bucketCounts)
	if err != nil {
		return err
	}
	r.Stats.Set(tree)
	return nil
}

// MarshalBinary persists the relation's metadata — name and columns — with
// the histogram blob emitted alongside, so a relation and its statistics
// load and store as one unit.
func (r *Relation) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	putString(&buf, r.Name)
	putUvarint(&buf, uint64(len(r.Columns)))
	for _, c := range r.Columns {
		putString(&buf, c.Name)
		buf.WriteByte(byte(c.Tag))
	}
	stats, err := r.Stats.MarshalBinary()
	if err != nil {
		return nil, err
	}
	buf.Write(stats)
	return buf.Bytes(), nil
}

// UnmarshalBinary restores a MarshalBinary'd Relation, either restoring the
// stored histogram or initializing an empty Adapter when none was persisted.
func (r *Relation) UnmarshalBinary(data []byte) error {
	buf := bytes.NewBuffer(data)
	name, err := takeString(buf)
	if err != nil {
		return err
	}
	numCols, err := binary.ReadUvarint(buf)
	if err != nil {
		return htreeio.ErrMalformedBlob{Reason: "truncated relation column count"}
	}
	columns := make([]Column, numCols)
	for i := range columns {
		colName, err := takeString(buf)
		if err != nil {
			return err
		}
		tag, err := buf.ReadByte()
		if err != nil {
			return htreeio.ErrMalformedBlob{Reason: "truncated relation column tag"}
		}
		columns[i] = Column{Name: colName, Tag: scalar.Tag(tag)}
	}
	stats := &Adapter{}
	if err := stats.UnmarshalBinary(buf.Bytes()); err != nil {
		return err
	}
	r.Name = name
	r.Columns = columns
	r.Stats = stats
	return nil
}

func putUvarint(buf *bytes.Buffer, v uint64) {
	var tmp [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(tmp[:], v)
	buf.Write(tmp[:n])
}

func putString(buf *bytes.Buffer, s string) {
	putUvarint(buf, uint64(len(s)))
	buf.WriteString(s)
}

func takeString(buf *bytes.Buffer) (string, error) {
	n, err := binary.ReadUvarint(buf)
	if err != nil {
		return "", htreeio.ErrMalformedBlob{Reason: "truncated relation string length"}
	}
	if uint64(buf.Len()) < n {
		return "", htreeio.ErrMalformedBlob{Reason: "truncated relation string"}
	}
	return string(buf.Next(int(n))), nil
}

// EstimateSelectivity compiles pred against r.Columns and delegates to
// r.Stats.Estimate. It returns (0, nil), not an error, when no histogram is
// installed, inheriting Adapter.Estimate's zero sentinel.
func (r *Relation) EstimateSelectivity(pred rangeexpr.Predicate) (float64, error) {
	cols := make([]rangeexpr.Column, len(r.Columns))
	for i, c := range r.Columns {
		cols[i] = rangeexpr.Column{Name: c.Name, Tag: c.Tag}
	}
	bucket, err := rangeexpr.Compile(pred, cols)
	if err != nil {
		return 0, err
	}
	return r.Stats.Estimate(bucket)
}
