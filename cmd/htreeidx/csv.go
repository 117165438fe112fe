// Copyright (C) 2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/datawire/dlib/dlog"

	"github.com/sealdb/htreeidx/lib/catalog"
	"github.com/sealdb/htreeidx/lib/scalar"
	"github.com/sealdb/htreeidx/lib/textui"
)

// countingReader reports bytes pulled through it to a textui.Progress, so
// ingesting a multi-gigabyte sample file shows byte-level progress while
// encoding/csv does the actual record splitting.
type countingReader struct {
	ctx            context.Context //nolint:containedctx
	r              io.Reader
	progress       textui.Portion[int64]
	progressWriter *textui.Progress[textui.Portion[int64]]
}

func newCountingReader(ctx context.Context, fh *os.File) (*countingReader, error) {
	fi, err := fh.Stat()
	if err != nil {
		return nil, err
	}
	return &countingReader{
		ctx: ctx,
		r:   fh,
		progress: textui.Portion[int64]{
			D: fi.Size(),
		},
		progressWriter: textui.NewProgress[textui.Portion[int64]](ctx, dlog.LogLevelInfo, textui.Tunable(1*time.Second)),
	}, nil
}

func (cr *countingReader) Read(p []byte) (int, error) {
	if err := cr.ctx.Err(); err != nil {
		return 0, err
	}
	n, err := cr.r.Read(p)
	cr.progress.N += int64(n)
	cr.progressWriter.Set(cr.progress)
	return n, err
}

func (cr *countingReader) Done() {
	cr.progressWriter.Done()
}

// readCSVTuples reads every row of a CSV file at filename into
// []scalar.Value tuples typed per cols, logging ingestion progress at info
// level. Column count mismatches and per-field parse failures are reported
// with the offending row number.
func readCSVTuples(ctx context.Context, filename string, cols []catalog.Column) ([][]scalar.Value, error) {
	fh, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = fh.Close()
	}()

	cr, err := newCountingReader(dlog.WithField(ctx, "htreeidx.csv.file", filename), fh)
	if err != nil {
		return nil, err
	}
	defer cr.Done()

	reader := csv.NewReader(cr)
	reader.FieldsPerRecord = len(cols)
	reader.ReuseRecord = true

	var tuples [][]scalar.Value
	lineNo := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		lineNo++
		if err != nil {
			return nil, fmt.Errorf("csv:%d: %w", lineNo, err)
		}
		tuple := make([]scalar.Value, len(cols))
		for i, field := range record {
			v, err := scalar.Parse(field, cols[i].Tag)
			if err != nil {
				return nil, fmt.Errorf("csv:%d: column %q: %w", lineNo, cols[i].Name, err)
			}
			tuple[i] = v
		}
		tuples = append(tuples, tuple)
	}
	dlog.Infof(ctx, "read %d tuples from %s", len(tuples), filename)
	return tuples, nil
}
