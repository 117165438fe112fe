// Copyright (C) 2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"os"

	"github.com/datawire/dlib/dlog"
	"github.com/datawire/ocibuild/pkg/cliutil"
	"github.com/spf13/cobra"

	"github.com/sealdb/htreeidx/lib/catalog"
	"github.com/sealdb/htreeidx/lib/htreeio"
	"github.com/sealdb/htreeidx/lib/rangeexpr"
	"github.com/sealdb/htreeidx/lib/textui"
)

func init() {
	var columnsFlag string
	var rowsFlag int64
	cmd := subcommand{
		Command: cobra.Command{
			Use:   "estimate TREE.htree PREDICATE",
			Short: "Estimate a range predicate's selectivity against a built histogram",
			Long: "" +
				"estimate parses PREDICATE as a conjunction of column range clauses " +
				"(see lib/rangeexpr), compiles it against the columns named by " +
				"--columns, and reports how many of TREE.htree's buckets' worth of " +
				"rows the predicate overlaps (the sum of per-bucket overlap ratios). " +
				"With --rows set, it additionally reports an estimated matching row " +
				"count.",
			Args: cliutil.WrapPositionalArgs(cobra.ExactArgs(2)),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx := cmd.Context()

				cols, err := parseColumnsFlag(columnsFlag)
				if err != nil {
					return err
				}

				blob, err := os.ReadFile(args[0])
				if err != nil {
					return err
				}
				tree, err := htreeio.Decode(blob)
				if err != nil {
					return err
				}

				rel := catalog.NewRelation("query", cols)
				rel.Stats.Set(tree)
				dlog.Infof(ctx, "loaded histogram with %d buckets from %s", rel.Stats.NumBuckets(), args[0])

				pred, err := rangeexpr.Parse(args[1])
				if err != nil {
					return err
				}

				sel, err := rel.EstimateSelectivity(pred)
				if err != nil {
					return err
				}

				textui.Fprintf(os.Stdout, "selectivity: %v\n", sel)
				if numBuckets := rel.Stats.NumBuckets(); rowsFlag > 0 && numBuckets > 0 {
					rowsPerBucket := float64(rowsFlag) / float64(numBuckets)
					textui.Fprintf(os.Stdout, "estimated rows: %v\n", int64(sel*rowsPerBucket))
				}
				return nil
			},
		},
	}
	cmd.Command.Flags().StringVar(&columnsFlag, "columns", "", "comma-separated name:type column list, must match the order used for build")
	cmd.Command.Flags().Int64Var(&rowsFlag, "rows", 0, "if set, also print an estimated matching row count out of this many total rows")
	subcommands = append(subcommands, cmd)
}
