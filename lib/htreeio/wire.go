// Copyright (C) 2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

// Package htreeio symmetrically encodes and decodes htree.Tree values to
// and from a stable binary form, and renders a human-readable JSON dump for
// debugging. The core (lib/htree) never touches a byte stream itself — this
// package is the only place an H-Tree crosses an I/O boundary.
package htreeio

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"git.lukeshu.com/go/lowmemjson"

	"github.com/sealdb/htreeidx/lib/htree"
	"github.com/sealdb/htreeidx/lib/scalar"
)

// wireVersion is bumped whenever the encoded grammar changes
// incompatibly. A decoder seeing a higher version than it knows must
// reject the blob rather than guess; appended trailer bytes within a
// version are tolerated, so compatible extensions can ride behind the
// tree body.
const wireVersion = 1

// Encode serializes t: a version varuint, the arity, then presence(root)
// and, if present, the root Node recursively. Arity is stored explicitly
// (rather than recovered from the root's Level) so that an empty tree —
// one with no Root at all — still round-trips its arity.
func Encode(t *htree.Tree) ([]byte, error) {
	var buf bytes.Buffer
	putUvarint(&buf, wireVersion)
	putUvarint(&buf, uint64(t.Arity))
	if t.Root == nil {
		buf.WriteByte(0)
		return buf.Bytes(), nil
	}
	buf.WriteByte(1)
	if err := encodeNode(&buf, t.Root); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeNode(buf *bytes.Buffer, n *htree.Node) error {
	if len(n.Elements) == 0 {
		return ErrMalformedBlob{Reason: "refusing to encode a node with zero elements"}
	}
	putUvarint(buf, uint64(n.Level))
	putUvarint(buf, uint64(len(n.Elements)))
	for _, el := range n.Elements {
		if err := encodeInterval(buf, el.Key); err != nil {
			return err
		}
		if el.IsLeaf() {
			buf.WriteByte(1)
			if err := encodeBucket(buf, el.Leaf); err != nil {
				return err
			}
		} else {
			buf.WriteByte(0)
			if err := encodeNode(buf, el.Child); err != nil {
				return err
			}
		}
	}
	return nil
}

func encodeBucket(buf *bytes.Buffer, b htree.Bucket) error {
	putUvarint(buf, uint64(len(b)))
	for _, iv := range b {
		if err := encodeInterval(buf, iv); err != nil {
			return err
		}
	}
	return nil
}

func encodeInterval(buf *bytes.Buffer, iv htree.Interval) error {
	if err := encodeOptionalScalar(buf, iv.HasLo, iv.Lo); err != nil {
		return err
	}
	return encodeOptionalScalar(buf, iv.HasHi, iv.Hi)
}

func encodeOptionalScalar(buf *bytes.Buffer, present bool, v scalar.Value) error {
	if !present {
		buf.WriteByte(0)
		return nil
	}
	buf.WriteByte(1)
	payload, err := v.MarshalBinary()
	if err != nil {
		return err
	}
	buf.Write(payload)
	return nil
}

func putUvarint(buf *bytes.Buffer, v uint64) {
	var tmp [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(tmp[:], v)
	buf.Write(tmp[:n])
}

// Decode is the inverse of Encode. It rejects truncated buffers, empty
// nodes, leaf buckets whose arity disagrees with the tree's depth, and
// scalar tags outside the closed set scalar.Value knows — all reported as
// ErrMalformedBlob or ErrUnsupportedScalarTag, never as a silently
// reconstructed garbage value.
func Decode(b []byte) (*htree.Tree, error) {
	r := &reader{buf: b}
	version, err := r.uvarint()
	if err != nil {
		return nil, err
	}
	if version != wireVersion {
		return nil, ErrMalformedBlob{Reason: fmt.Sprintf("unsupported wire version %d (this decoder speaks %d)", version, wireVersion)}
	}
	arity64, err := r.uvarint()
	if err != nil {
		return nil, err
	}
	arity := int(arity64)
	hasRoot, err := r.byte()
	if err != nil {
		return nil, err
	}
	if hasRoot == 0 {
		return &htree.Tree{Arity: arity}, nil
	}
	root, total, err := decodeNode(r, arity, 0, nil)
	if err != nil {
		return nil, err
	}
	if root.Level != arity-1 {
		return nil, ErrMalformedBlob{Reason: fmt.Sprintf("root level %d does not match arity %d", root.Level, arity)}
	}
	return &htree.Tree{Arity: arity, Root: root, TotalBuckets: total}, nil
}

// decodeNode decodes one Node, expecting it to sit at depth dim (attribute
// index, counting from the root) within a tree of the given arity. path
// accumulates ancestor keys so a leaf bucket read further down can be
// validated against them.
func decodeNode(r *reader, arity, dim int, path []htree.Interval) (*htree.Node, uint64, error) {
	level, err := r.uvarint()
	if err != nil {
		return nil, 0, err
	}
	if int(level) != arity-1-dim {
		return nil, 0, ErrMalformedBlob{Reason: fmt.Sprintf("node at depth %d has level %d, want %d", dim, level, arity-1-dim)}
	}
	count, err := r.uvarint()
	if err != nil {
		return nil, 0, err
	}
	if count == 0 {
		return nil, 0, ErrMalformedBlob{Reason: "node has zero elements"}
	}

	elements := make([]htree.Element, count)
	var total uint64
	last := dim == arity-1
	for i := range elements {
		key, err := decodeInterval(r)
		if err != nil {
			return nil, 0, err
		}
		bodyTag, err := r.byte()
		if err != nil {
			return nil, 0, err
		}
		switch {
		case bodyTag == 1 && last:
			childPath := append(append([]htree.Interval(nil), path...), key)
			bucket, err := decodeBucket(r, arity)
			if err != nil {
				return nil, 0, err
			}
			if err := validateLeafPath(bucket, childPath); err != nil {
				return nil, 0, err
			}
			elements[i] = htree.Element{Key: key, Leaf: bucket}
			total++
		case bodyTag == 0 && !last:
			childPath := append(append([]htree.Interval(nil), path...), key)
			child, childTotal, err := decodeNode(r, arity, dim+1, childPath)
			if err != nil {
				return nil, 0, err
			}
			elements[i] = htree.Element{Key: key, Child: child}
			total += childTotal
		default:
			return nil, 0, ErrMalformedBlob{Reason: fmt.Sprintf("body tag %d inconsistent with depth %d of %d", bodyTag, dim, arity)}
		}
	}
	return &htree.Node{Level: int(level), Elements: elements}, total, nil
}

// validateLeafPath checks that a decoded leaf bucket's dimensions equal the
// ancestor keys placed on the path to it: every well-formed tree's leaf
// buckets are exactly their ancestors' keys plus the leaf's own.
func validateLeafPath(bucket htree.Bucket, path []htree.Interval) error {
	if len(bucket) != len(path) {
		return ErrMalformedBlob{Reason: fmt.Sprintf("leaf bucket has %d dimensions, want %d", len(bucket), len(path))}
	}
	for i := range bucket {
		eq, err := bucket[i].Equal(path[i])
		if err != nil {
			return err
		}
		if !eq {
			return ErrMalformedBlob{Reason: fmt.Sprintf("leaf bucket dimension %d disagrees with ancestor key", i)}
		}
	}
	return nil
}

func decodeBucket(r *reader, arity int) (htree.Bucket, error) {
	n, err := r.uvarint()
	if err != nil {
		return nil, err
	}
	if int(n) != arity {
		return nil, ErrMalformedBlob{Reason: fmt.Sprintf("bucket has %d dimensions, want %d", n, arity)}
	}
	bucket := make(htree.Bucket, n)
	for i := range bucket {
		iv, err := decodeInterval(r)
		if err != nil {
			return nil, err
		}
		bucket[i] = iv
	}
	return bucket, nil
}

func decodeInterval(r *reader) (htree.Interval, error) {
	hasLo, lo, err := decodeOptionalScalar(r)
	if err != nil {
		return htree.Interval{}, err
	}
	hasHi, hi, err := decodeOptionalScalar(r)
	if err != nil {
		return htree.Interval{}, err
	}
	return htree.Interval{HasLo: hasLo, Lo: lo, HasHi: hasHi, Hi: hi}, nil
}

func decodeOptionalScalar(r *reader) (bool, scalar.Value, error) {
	present, err := r.byte()
	if err != nil {
		return false, scalar.Value{}, err
	}
	if present == 0 {
		return false, scalar.Value{}, nil
	}
	tag, err := r.peekByte()
	if err != nil {
		return false, scalar.Value{}, err
	}
	n := scalar.PayloadLen(scalar.Tag(tag))
	if n < 0 {
		return false, scalar.Value{}, ErrUnsupportedScalarTag{Tag: scalar.Tag(tag)}
	}
	raw, err := r.take(1 + n)
	if err != nil {
		return false, scalar.Value{}, err
	}
	var v scalar.Value
	if err := v.UnmarshalBinary(raw); err != nil {
		return false, scalar.Value{}, err
	}
	return true, v, nil
}

// reader is a small bounds-checked cursor over the encoded buffer; every
// short read becomes ErrMalformedBlob rather than a panic.
type reader struct {
	buf []byte
	pos int
}

func (r *reader) byte() (byte, error) {
	if r.pos >= len(r.buf) {
		return 0, ErrMalformedBlob{Reason: "unexpected end of buffer"}
	}
	b := r.buf[r.pos]
	r.pos++
	return b, nil
}

func (r *reader) peekByte() (byte, error) {
	if r.pos >= len(r.buf) {
		return 0, ErrMalformedBlob{Reason: "unexpected end of buffer"}
	}
	return r.buf[r.pos], nil
}

func (r *reader) take(n int) ([]byte, error) {
	if r.pos+n > len(r.buf) {
		return nil, ErrMalformedBlob{Reason: "unexpected end of buffer"}
	}
	out := r.buf[r.pos : r.pos+n]
	r.pos += n
	return out, nil
}

func (r *reader) uvarint() (uint64, error) {
	v, n := binary.Uvarint(r.buf[r.pos:])
	if n <= 0 {
		return 0, ErrMalformedBlob{Reason: "invalid varuint"}
	}
	r.pos += n
	return v, nil
}

// DumpJSON renders t as indented, human-readable JSON for CLI inspection.
// It is not part of the round-trip contract (Decode cannot read its own
// output back) — only Encode/Decode are symmetric.
func DumpJSON(t *htree.Tree) ([]byte, error) {
	var buf bytes.Buffer
	if err := lowmemjson.Encode(&lowmemjson.ReEncoder{
		Out: &buf,

		Indent:                "  ",
		ForceTrailingNewlines: true,
	}, dumpTree(t)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type jsonTree struct {
	Arity        int       `json:"arity"`
	TotalBuckets uint64    `json:"total_buckets"`
	Root         *jsonNode `json:"root,omitempty"`
}

type jsonNode struct {
	Level    int           `json:"level"`
	Elements []jsonElement `json:"elements"`
}

type jsonElement struct {
	Key   jsonInterval   `json:"key"`
	Child *jsonNode      `json:"child,omitempty"`
	Leaf  []jsonInterval `json:"leaf,omitempty"`
}

type jsonInterval struct {
	Lo *string `json:"lo,omitempty"`
	Hi *string `json:"hi,omitempty"`
}

func dumpTree(t *htree.Tree) jsonTree {
	out := jsonTree{Arity: t.Arity, TotalBuckets: t.TotalBuckets}
	if t.Root != nil {
		out.Root = dumpNode(t.Root)
	}
	return out
}

func dumpNode(n *htree.Node) *jsonNode {
	out := &jsonNode{Level: n.Level, Elements: make([]jsonElement, len(n.Elements))}
	for i, el := range n.Elements {
		je := jsonElement{Key: dumpInterval(el.Key)}
		if el.IsLeaf() {
			je.Leaf = make([]jsonInterval, len(el.Leaf))
			for j, iv := range el.Leaf {
				je.Leaf[j] = dumpInterval(iv)
			}
		} else {
			je.Child = dumpNode(el.Child)
		}
		out.Elements[i] = je
	}
	return out
}

func dumpInterval(iv htree.Interval) jsonInterval {
	var out jsonInterval
	if iv.HasLo {
		s := dumpScalar(iv.Lo)
		out.Lo = &s
	}
	if iv.HasHi {
		s := dumpScalar(iv.Hi)
		out.Hi = &s
	}
	return out
}

func dumpScalar(v scalar.Value) string {
	switch v.Tag {
	case scalar.I32:
		return fmt.Sprintf("%d", v.I32())
	case scalar.I64:
		return fmt.Sprintf("%d", v.I64())
	case scalar.F32:
		return fmt.Sprintf("%v", v.F32())
	case scalar.F64:
		return fmt.Sprintf("%v", v.F64())
	case scalar.Date, scalar.DateTime:
		return v.Time().Format("2006-01-02T15:04:05.999999999Z07:00")
	case scalar.DateTimeInterval:
		return v.Duration().String()
	case scalar.YearMonthInterval:
		return fmt.Sprintf("%dmo", v.Months())
	default:
		return fmt.Sprintf("<tag %v>", v.Tag)
	}
}
