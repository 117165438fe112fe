// Copyright (C) 2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

// Package scalar implements the closed set of typed values that an H-Tree
// dimension can range over: fixed-width numbers, calendar instants, and
// calendar/duration intervals. It is deliberately small and closed — callers
// outside this package cannot add a Tag — mirroring the original
// HypedValue's role as the single place type-punning across a histogram
// dimension happens.
package scalar

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"
)

// Tag discriminates the closed union realized by Value.
type Tag uint8

const (
	I32 Tag = iota
	I64
	F32
	F64
	Date
	DateTime
	DateTimeInterval
	YearMonthInterval
)

func (t Tag) String() string {
	switch t {
	case I32:
		return "i32"
	case I64:
		return "i64"
	case F32:
		return "f32"
	case F64:
		return "f64"
	case Date:
		return "date"
	case DateTime:
		return "datetime"
	case DateTimeInterval:
		return "datetime_interval"
	case YearMonthInterval:
		return "year_month_interval"
	default:
		return fmt.Sprintf("Tag(%d)", uint8(t))
	}
}

// Value is a tagged scalar: exactly one of the untyped payload fields below
// is meaningful, selected by Tag.
type Value struct {
	Tag Tag

	i32    int32
	i64    int64
	f32    float32
	f64    float64
	t      time.Time     // Date, DateTime
	dur    time.Duration // DateTimeInterval
	months int32         // YearMonthInterval
}

func NewI32(v int32) Value { return Value{Tag: I32, i32: v} }
func NewI64(v int64) Value { return Value{Tag: I64, i64: v} }
func NewF32(v float32) Value { return Value{Tag: F32, f32: v} }
func NewF64(v float64) Value { return Value{Tag: F64, f64: v} }
func NewDate(v time.Time) Value { return Value{Tag: Date, t: v} }
func NewDateTime(v time.Time) Value { return Value{Tag: DateTime, t: v} }

func NewDateTimeInterval(v time.Duration) Value {
	return Value{Tag: DateTimeInterval, dur: v}
}

func NewYearMonthInterval(months int32) Value {
	return Value{Tag: YearMonthInterval, months: months}
}

func (v Value) I32() int32             { return v.i32 }
func (v Value) I64() int64             { return v.i64 }
func (v Value) F32() float32           { return v.f32 }
func (v Value) F64() float64           { return v.f64 }
func (v Value) Time() time.Time        { return v.t }
func (v Value) Duration() time.Duration { return v.dur }
func (v Value) Months() int32          { return v.months }

// Compare returns -1/0/+1 as v is less than, equal to, or greater than
// other. It fails with ErrTypeTagMismatch when the two Values don't share a
// Tag; callers that need cross-tag coercion must convert before calling.
func (v Value) Compare(other Value) (int, error) {
	if v.Tag != other.Tag {
		return 0, ErrTypeTagMismatch{A: v.Tag, B: other.Tag}
	}
	switch v.Tag {
	case I32:
		return cmpOrdered(v.i32, other.i32), nil
	case I64:
		return cmpOrdered(v.i64, other.i64), nil
	case F32:
		return cmpOrdered(v.f32, other.f32), nil
	case F64:
		return cmpOrdered(v.f64, other.f64), nil
	case Date, DateTime:
		switch {
		case v.t.Before(other.t):
			return -1, nil
		case v.t.After(other.t):
			return 1, nil
		default:
			return 0, nil
		}
	case DateTimeInterval:
		return cmpOrdered(v.dur, other.dur), nil
	case YearMonthInterval:
		return cmpOrdered(v.months, other.months), nil
	default:
		return 0, ErrUnsupportedTag{Tag: v.Tag}
	}
}

func cmpOrdered[T int32 | int64 | float32 | float64 | time.Duration](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Width returns the number of discrete values (I32/I64) or the measure
// (F32/F64) covered by the closed range [v, hi], treating v as the low end.
// It returns 0 (not an error) when v > hi. Calendar and duration tags
// compare but don't have a well-defined width, per ErrWidthUnsupported.
func (v Value) Width(hi Value) (float64, error) {
	if v.Tag != hi.Tag {
		return 0, ErrTypeTagMismatch{A: v.Tag, B: hi.Tag}
	}
	switch v.Tag {
	case I32:
		if hi.i32 < v.i32 {
			return 0, nil
		}
		return float64(hi.i32-v.i32) + 1, nil
	case I64:
		if hi.i64 < v.i64 {
			return 0, nil
		}
		return float64(hi.i64-v.i64) + 1, nil
	case F32:
		if hi.f32 < v.f32 {
			return 0, nil
		}
		return float64(hi.f32 - v.f32), nil
	case F64:
		if hi.f64 < v.f64 {
			return 0, nil
		}
		return hi.f64 - v.f64, nil
	default:
		return 0, ErrWidthUnsupported{Tag: v.Tag}
	}
}

// MarshalBinary implements encoding.BinaryMarshaler. The wire shape is a
// single tag byte followed by a tag-specific fixed-width payload; see
// htreeio's wire-format documentation for the full grammar this is embedded
// in.
func (v Value) MarshalBinary() ([]byte, error) {
	switch v.Tag {
	case I32:
		buf := make([]byte, 5)
		buf[0] = byte(v.Tag)
		binary.LittleEndian.PutUint32(buf[1:], uint32(v.i32))
		return buf, nil
	case I64:
		buf := make([]byte, 9)
		buf[0] = byte(v.Tag)
		binary.LittleEndian.PutUint64(buf[1:], uint64(v.i64))
		return buf, nil
	case F32:
		buf := make([]byte, 5)
		buf[0] = byte(v.Tag)
		binary.LittleEndian.PutUint32(buf[1:], math.Float32bits(v.f32))
		return buf, nil
	case F64:
		buf := make([]byte, 9)
		buf[0] = byte(v.Tag)
		binary.LittleEndian.PutUint64(buf[1:], math.Float64bits(v.f64))
		return buf, nil
	case Date, DateTime:
		buf := make([]byte, 9)
		buf[0] = byte(v.Tag)
		binary.LittleEndian.PutUint64(buf[1:], uint64(v.t.UnixNano()))
		return buf, nil
	case DateTimeInterval:
		buf := make([]byte, 13)
		buf[0] = byte(v.Tag)
		binary.LittleEndian.PutUint64(buf[1:9], uint64(v.dur))
		// bytes [9:13) are reserved (overflow flag, unused) and always zero.
		return buf, nil
	case YearMonthInterval:
		buf := make([]byte, 5)
		buf[0] = byte(v.Tag)
		binary.LittleEndian.PutUint32(buf[1:], uint32(v.months))
		return buf, nil
	default:
		return nil, ErrUnsupportedTag{Tag: v.Tag}
	}
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (v *Value) UnmarshalBinary(data []byte) error {
	if len(data) < 1 {
		return fmt.Errorf("scalar: empty payload")
	}
	tag := Tag(data[0])
	body := data[1:]
	switch tag {
	case I32:
		if len(body) < 4 {
			return fmt.Errorf("scalar: truncated i32 payload")
		}
		*v = Value{Tag: I32, i32: int32(binary.LittleEndian.Uint32(body))}
	case I64:
		if len(body) < 8 {
			return fmt.Errorf("scalar: truncated i64 payload")
		}
		*v = Value{Tag: I64, i64: int64(binary.LittleEndian.Uint64(body))}
	case F32:
		if len(body) < 4 {
			return fmt.Errorf("scalar: truncated f32 payload")
		}
		*v = Value{Tag: F32, f32: math.Float32frombits(binary.LittleEndian.Uint32(body))}
	case F64:
		if len(body) < 8 {
			return fmt.Errorf("scalar: truncated f64 payload")
		}
		*v = Value{Tag: F64, f64: math.Float64frombits(binary.LittleEndian.Uint64(body))}
	case Date, DateTime:
		if len(body) < 8 {
			return fmt.Errorf("scalar: truncated %v payload", tag)
		}
		nanos := int64(binary.LittleEndian.Uint64(body))
		*v = Value{Tag: tag, t: time.Unix(0, nanos).UTC()}
	case DateTimeInterval:
		if len(body) < 12 {
			return fmt.Errorf("scalar: truncated datetime_interval payload")
		}
		*v = Value{Tag: DateTimeInterval, dur: time.Duration(binary.LittleEndian.Uint64(body[:8]))}
	case YearMonthInterval:
		if len(body) < 4 {
			return fmt.Errorf("scalar: truncated year_month_interval payload")
		}
		*v = Value{Tag: YearMonthInterval, months: int32(binary.LittleEndian.Uint32(body))}
	default:
		return ErrUnsupportedTag{Tag: tag}
	}
	return nil
}

// PayloadLen returns the number of bytes UnmarshalBinary will consume from
// data[1:] for a given tag, or -1 for an unrecognized tag. Used by the
// decoder to advance past a Scalar without re-parsing it.
func PayloadLen(tag Tag) int {
	switch tag {
	case I32, F32, YearMonthInterval:
		return 4
	case I64, F64, Date, DateTime:
		return 8
	case DateTimeInterval:
		return 12
	default:
		return -1
	}
}
