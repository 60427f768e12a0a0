// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bartekus/commitlens/cmd/commitlens/internal/clierr"
	"github.com/bartekus/commitlens/internal/filter"
	"github.com/bartekus/commitlens/internal/parser"
)

// NewFilterCommand returns the `commitlens filter` command.
func NewFilterCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filter [file...]",
		Short: "Parse commit messages and drop reverted ones",
		Long:  "Reads raw commit messages in history order, parses them, suppresses revert/reverted pairs, and writes the surviving JSON records",
		RunE:  runFilter,
	}

	addMessageFlags(cmd)
	return cmd
}

func runFilter(cmd *cobra.Command, args []string) error {
	p, err := parserFromFlags(cmd)
	if err != nil {
		return err
	}

	messages, err := readMessages(cmd, args)
	if err != nil {
		return err
	}

	policy, err := policyFromFlags(cmd)
	if err != nil {
		return err
	}

	commits, err := parser.ParseBatch(p, messages, policy)
	if err != nil {
		var invalid *parser.InvalidInputError
		if errors.As(err, &invalid) {
			return clierr.Wrap(clierr.CodeInvalidInput, "parsing messages", err)
		}
		return fmt.Errorf("parsing messages: %w", err)
	}

	return writeJSON(cmd, filter.FilterAll(commits))
}
