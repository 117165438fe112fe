// Copyright (C) 2022  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"context"
	"os"

	"github.com/datawire/dlib/dgroup"
	"github.com/datawire/dlib/dlog"
	"github.com/datawire/ocibuild/pkg/cliutil"
	"github.com/spf13/cobra"

	"github.com/sealdb/htreeidx/lib/textui"
)

// subcommand pairs a cobra.Command with the common setup main() wraps every
// leaf command in: a logger built from the root --log-level flag, and a
// signal-handling dgroup so a ^C during a large build/estimate run exits
// cleanly instead of leaving a half-written .htree file.
type subcommand struct {
	cobra.Command
}

var subcommands []subcommand

func main() {
	logLevelFlag := textui.LogLevelFlag{Level: dlog.LogLevelInfo}

	argparser := &cobra.Command{
		Use:   "htreeidx {[flags]|SUBCOMMAND}",
		Short: "Build and query H-Tree multidimensional selectivity histograms",

		Args: cliutil.WrapPositionalArgs(cliutil.OnlySubcommands),
		RunE: cliutil.RunSubcommands,

		SilenceErrors: true, // main() handles this after .ExecuteContext() returns
		SilenceUsage:  true, // our FlagErrorFunc handles it

		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
	argparser.SetFlagErrorFunc(cliutil.FlagErrorFunc)
	argparser.SetHelpTemplate(cliutil.HelpTemplate)
	argparser.PersistentFlags().Var(&logLevelFlag, "log-level", "set the verbosity (error|warn|info|debug|trace)")

	for _, child := range subcommands {
		cmd := child.Command
		innerRunE := cmd.RunE
		cmd.RunE = func(cmd *cobra.Command, args []string) error {
			ctx := dlog.WithLogger(cmd.Context(), textui.NewLogger(os.Stderr, logLevelFlag.Level))

			grp := dgroup.NewGroup(ctx, dgroup.GroupConfig{
				EnableSignalHandling: true,
			})
			grp.Go("main", func(ctx context.Context) error {
				cmd.SetContext(ctx)
				return innerRunE(cmd, args)
			})
			return grp.Wait()
		}
		argparser.AddCommand(&cmd)
	}

	if err := argparser.ExecuteContext(context.Background()); err != nil {
		textui.Fprintf(os.Stderr, "%v: error: %v\n", argparser.CommandPath(), err)
		os.Exit(1)
	}
}
