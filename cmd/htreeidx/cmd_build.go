// Copyright (C) 2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"os"
	"time"

	"github.com/datawire/dlib/dlog"
	"github.com/datawire/ocibuild/pkg/cliutil"
	"github.com/spf13/cobra"

	"github.com/sealdb/htreeidx/lib/catalog"
	"github.com/sealdb/htreeidx/lib/htreeio"
	"github.com/sealdb/htreeidx/lib/textui"
)

func init() {
	var columnsFlag, bucketsFlag string
	cmd := subcommand{
		Command: cobra.Command{
			Use:   "build SAMPLE.csv OUT.htree",
			Short: "Build an H-Tree histogram from a sampled CSV row set",
			Long: "" +
				"build reads SAMPLE.csv (one row per sampled tuple, columns in the " +
				"order given by --columns), constructs an H-Tree with the given " +
				"per-dimension --buckets counts, and writes the encoded tree to " +
				"OUT.htree.",
			Args: cliutil.WrapPositionalArgs(cobra.ExactArgs(2)),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx := cmd.Context()

				cols, err := parseColumnsFlag(columnsFlag)
				if err != nil {
					return err
				}
				buckets, err := parseBucketsFlag(bucketsFlag, len(cols))
				if err != nil {
					return err
				}

				tuples, err := readCSVTuples(ctx, args[0], cols)
				if err != nil {
					return err
				}

				rel := catalog.NewRelation("sample", cols)

				memProgress := textui.NewProgress[*textui.LiveMemUse](ctx, dlog.LogLevelTrace, textui.Tunable(1*time.Second))
				memProgress.Set(&textui.LiveMemUse{})
				defer memProgress.Done()

				dlog.Infof(ctx, "building H-Tree over %d tuples with bucket counts %v", len(tuples), buckets)
				if err := rel.Rebuild(ctx, tuples, buckets); err != nil {
					return err
				}

				blob, err := htreeio.Encode(rel.Stats.Tree())
				if err != nil {
					return err
				}
				if err := os.WriteFile(args[1], blob, 0o644); err != nil {
					return err
				}
				dlog.Infof(ctx, "wrote %d buckets to %s", rel.Stats.NumBuckets(), args[1])

				return nil
			},
		},
	}
	cmd.Command.Flags().StringVar(&columnsFlag, "columns", "", "comma-separated name:type column list, e.g. id:i32,price:f64")
	cmd.Command.Flags().StringVar(&bucketsFlag, "buckets", "", "comma-separated per-column bucket counts, e.g. 8,8")
	subcommands = append(subcommands, cmd)
}
