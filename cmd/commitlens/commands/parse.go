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
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bartekus/commitlens/cmd/commitlens/internal/clierr"
	"github.com/bartekus/commitlens/internal/output"
	"github.com/bartekus/commitlens/internal/parser"
)

// NewParseCommand returns the `commitlens parse` command.
func NewParseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [file...]",
		Short: "Parse commit messages into structured records",
		Long:  "Reads raw commit messages from files or stdin, separated by a separator line, and writes one JSON record per message",
		RunE:  runParse,
	}

	addMessageFlags(cmd)
	return cmd
}

// addMessageFlags registers the flags shared by parse and filter.
// Flags in alphabetical order for deterministic help output.
func addMessageFlags(cmd *cobra.Command) {
	cmd.Flags().String("config", "", "Path to a YAML parser options file")
	cmd.Flags().String("on-error", "fail", "Malformed message policy: fail, skip, or warn")
	cmd.Flags().String("output", "", "Write JSON to this file atomically instead of stdout")
	cmd.Flags().String("separator", "---", "Line separating messages in the input")
}

func runParse(cmd *cobra.Command, args []string) error {
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

	return writeJSON(cmd, commits)
}

// parserFromFlags builds the parser from defaults or the --config file.
func parserFromFlags(cmd *cobra.Command) (*parser.Parser, error) {
	configFlag, _ := cmd.Flags().GetString("config")

	opts := parser.DefaultOptions()
	if configFlag != "" {
		loaded, err := parser.LoadOptionsFile(configFlag)
		if err != nil {
			return nil, clierr.Wrap(clierr.CodeConfig, "loading options", err)
		}
		opts = loaded
	}

	p, err := parser.New(opts)
	if err != nil {
		return nil, clierr.Wrap(clierr.CodeConfig, "building parser", err)
	}
	return p, nil
}

// policyFromFlags maps --on-error onto a batch error policy.
func policyFromFlags(cmd *cobra.Command) (parser.ErrorPolicy, error) {
	onError, _ := cmd.Flags().GetString("on-error")
	switch onError {
	case "fail":
		return parser.FailFast, nil
	case "skip":
		return parser.SkipInvalid, nil
	case "warn":
		stderr := cmd.ErrOrStderr()
		return func(index int, err error) error {
			fmt.Fprintf(stderr, "commitlens: skipping message %d: %v\n", index+1, err)
			return nil
		}, nil
	default:
		return nil, clierr.Wrap(clierr.CodeConfig,
			fmt.Sprintf("invalid on-error policy: %s (must be 'fail', 'skip', or 'warn')", onError), nil)
	}
}

// readMessages reads raw input from file args or stdin and splits it
// into messages on separator lines. Chunks that are nothing but line
// terminators (e.g. after a trailing separator) are dropped; anything
// else, including whitespace-only garbage, is kept so the error policy
// gets to see it.
func readMessages(cmd *cobra.Command, args []string) ([]string, error) {
	separator, _ := cmd.Flags().GetString("separator")

	var raw strings.Builder
	if len(args) == 0 {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		raw.Write(data)
	} else {
		for i, path := range args {
			data, err := os.ReadFile(path) //nolint:gosec // G304: paths are explicit user arguments
			if err != nil {
				return nil, fmt.Errorf("reading %s: %w", path, err)
			}
			if i > 0 {
				raw.WriteString("\n" + separator + "\n")
			}
			raw.Write(data)
		}
	}

	return splitMessages(raw.String(), separator), nil
}

func splitMessages(text, separator string) []string {
	var (
		messages []string
		current  []string
	)
	flush := func() {
		msg := strings.Join(current, "\n")
		current = nil
		if strings.Trim(msg, "\r\n") != "" {
			messages = append(messages, msg)
		}
	}

	for _, line := range strings.Split(text, "\n") {
		if strings.TrimRight(line, "\r") == separator {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()
	return messages
}

// writeJSON renders commits as an indented JSON array, to stdout or
// atomically to the --output path.
func writeJSON(cmd *cobra.Command, commits []*parser.Commit) error {
	data, err := json.MarshalIndent(commits, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	data = append(data, '\n')

	outputFlag, _ := cmd.Flags().GetString("output")
	if outputFlag != "" {
		if err := output.AtomicWrite(outputFlag, data); err != nil {
			return fmt.Errorf("writing %s: %w", outputFlag, err)
		}
		return nil
	}

	if _, err := cmd.OutOrStdout().Write(data); err != nil {
		return fmt.Errorf("writing JSON output: %w", err)
	}
	return nil
}
