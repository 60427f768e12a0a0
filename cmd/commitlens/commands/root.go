// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Commitlens - Commitlens parses version-control commit messages into structured
semantic records and correlates commit streams to drop reverted commits.

Copyright (C) 2025  Bartek Kus

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd constructs the commitlens root Cobra command.
func NewRootCmd() *cobra.Command {
	version := os.Getenv("COMMITLENS_VERSION")
	if version == "" {
		version = "0.0.0-dev"
	}

	cmd := &cobra.Command{
		Use:           "commitlens",
		Short:         "Commitlens - Structured commit message parsing",
		Long:          "Commitlens parses raw commit messages into structured records and filters reverted commits out of commit streams.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number of Commitlens",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Commitlens version %s\n", version)
		},
	})

	cmd.AddCommand(NewParseCommand())
	cmd.AddCommand(NewFilterCommand())

	return cmd
}
