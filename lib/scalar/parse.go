// Copyright (C) 2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package scalar

import (
	"fmt"
	"strconv"
	"time"
)

// Parse resolves textual input (a CSV field, a range-predicate literal)
// into a Value of the given Tag. It is the single place string-to-Value
// conversion happens, shared by cmd/htreeidx's CSV ingestion and
// lib/rangeexpr's literal resolution, so both sides agree on formats (RFC
// 3339 timestamps, Go duration syntax for datetime intervals, a bare
// integer month count for year-month intervals).
func Parse(s string, tag Tag) (Value, error) {
	switch tag {
	case I32:
		n, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			return Value{}, fmt.Errorf("scalar: %q is not a valid i32: %w", s, err)
		}
		return NewI32(int32(n)), nil
	case I64:
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return Value{}, fmt.Errorf("scalar: %q is not a valid i64: %w", s, err)
		}
		return NewI64(n), nil
	case F32:
		f, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return Value{}, fmt.Errorf("scalar: %q is not a valid f32: %w", s, err)
		}
		return NewF32(float32(f)), nil
	case F64:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Value{}, fmt.Errorf("scalar: %q is not a valid f64: %w", s, err)
		}
		return NewF64(f), nil
	case Date, DateTime:
		tm, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return Value{}, fmt.Errorf("scalar: %q is not a valid RFC3339 timestamp: %w", s, err)
		}
		if tag == Date {
			return NewDate(tm), nil
		}
		return NewDateTime(tm), nil
	case DateTimeInterval:
		d, err := time.ParseDuration(s)
		if err != nil {
			return Value{}, fmt.Errorf("scalar: %q is not a valid duration: %w", s, err)
		}
		return NewDateTimeInterval(d), nil
	case YearMonthInterval:
		n, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			return Value{}, fmt.Errorf("scalar: %q is not a valid month count: %w", s, err)
		}
		return NewYearMonthInterval(int32(n)), nil
	default:
		return Value{}, ErrUnsupportedTag{Tag: tag}
	}
}

// ParseTag resolves a column-type name (as used in cmd/htreeidx's
// --columns flag) to a Tag.
func ParseTag(s string) (Tag, error) {
	switch s {
	case "i32":
		return I32, nil
	case "i64":
		return I64, nil
	case "f32":
		return F32, nil
	case "f64":
		return F64, nil
	case "date":
		return Date, nil
	case "datetime":
		return DateTime, nil
	case "datetime_interval":
		return DateTimeInterval, nil
	case "year_month_interval":
		return YearMonthInterval, nil
	default:
		return 0, fmt.Errorf("scalar: unrecognized type name %q", s)
	}
}
