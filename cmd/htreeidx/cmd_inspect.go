// Copyright (C) 2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/datawire/ocibuild/pkg/cliutil"
	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/sealdb/htreeidx/lib/htreeio"
)

func init() {
	var jsonFlag, spewFlag bool
	cmd := subcommand{
		Command: cobra.Command{
			Use:   "inspect TREE.htree",
			Short: "Print a built H-Tree's shape, or its full contents as JSON",
			Args:  cliutil.WrapPositionalArgs(cobra.ExactArgs(1)),
			RunE: func(cmd *cobra.Command, args []string) error {
				blob, err := os.ReadFile(args[0])
				if err != nil {
					return err
				}
				tree, err := htreeio.Decode(blob)
				if err != nil {
					return err
				}

				if spewFlag {
					cfg := spew.NewDefaultConfig()
					cfg.DisablePointerAddresses = true
					cfg.Dump(tree)
					return nil
				}

				if jsonFlag {
					out, err := htreeio.DumpJSON(tree)
					if err != nil {
						return err
					}
					_, err = os.Stdout.Write(out)
					return err
				}

				table := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
				fmt.Fprintf(table, "arity\t%d\n", tree.Arity)
				fmt.Fprintf(table, "total buckets\t%d\n", tree.NumBuckets())
				if tree.Root != nil {
					fmt.Fprintf(table, "root level\t%d\n", tree.Root.Level)
					fmt.Fprintf(table, "root elements\t%d\n", len(tree.Root.Elements))
				} else {
					fmt.Fprintf(table, "root\t<empty>\n")
				}
				return table.Flush()
			},
		},
	}
	cmd.Command.Flags().BoolVar(&jsonFlag, "json", false, "dump the full tree as indented JSON instead of a summary")
	cmd.Command.Flags().BoolVar(&spewFlag, "spew", false, "dump the raw in-memory tree structure via go-spew, for debugging the decoder itself")
	subcommands = append(subcommands, cmd)
}
