// Copyright (C) 2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sealdb/htreeidx/lib/catalog"
	"github.com/sealdb/htreeidx/lib/scalar"
	"github.com/sealdb/htreeidx/lib/slices"
)

// parseColumnsFlag parses the --columns flag's "name:tag,name:tag,..."
// syntax into an ordered column list. Column order here fixes the H-Tree
// dimension order for the rest of the invocation.
func parseColumnsFlag(s string) ([]catalog.Column, error) {
	parts := strings.Split(s, ",")
	cols := make([]catalog.Column, 0, len(parts))
	var names []string
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		nameType := strings.SplitN(part, ":", 2)
		if len(nameType) != 2 {
			return nil, fmt.Errorf("--columns: malformed entry %q, want name:type", part)
		}
		name := strings.TrimSpace(nameType[0])
		if slices.Contains(name, names) {
			return nil, fmt.Errorf("--columns: duplicate column name %q", name)
		}
		tag, err := scalar.ParseTag(strings.TrimSpace(nameType[1]))
		if err != nil {
			return nil, fmt.Errorf("--columns: %w", err)
		}
		names = append(names, name)
		cols = append(cols, catalog.Column{Name: name, Tag: tag})
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("--columns: must name at least one column")
	}
	return cols, nil
}

// parseBucketsFlag parses the --buckets flag's "n0,n1,..." syntax into a
// per-dimension bucket-count slice, one entry per column.
func parseBucketsFlag(s string, numCols int) ([]int, error) {
	parts := strings.Split(s, ",")
	counts := make([]int, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("--buckets: %q is not an integer: %w", part, err)
		}
		counts = append(counts, n)
	}
	if len(counts) != numCols {
		return nil, fmt.Errorf("--buckets: got %d bucket counts for %d columns", len(counts), numCols)
	}
	return counts, nil
}
