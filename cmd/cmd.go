// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cmd contains the command-line interface (CLI) for the module.
package cmd

import (
	"fmt"
	"os"

	"github.com/matt-FFFFFF/fanrun"
	"github.com/matt-FFFFFF/fanrun/cmd/run"
	"github.com/matt-FFFFFF/fanrun/cmd/show"
	"github.com/urfave/cli/v3"
)

// RootCmd is the root command for the CLI.
var RootCmd = &cli.Command{
	Commands: []*cli.Command{
		run.RunCmd,
		show.ShowCmd,
	},
	Writer:    os.Stdout,
	ErrWriter: os.Stderr,
	Name:      "fanrun",
	Version:   fmt.Sprintf("%s (%s)", fanrun.Version, fanrun.Commit),
	Description: `Fanrun runs one external command per item from a supplied list,
substituting each item into a command template and executing up to N items
concurrently. Failed executions are retried a bounded number of times and a
final success/failure summary is reported with a non-zero exit status if any
item ultimately fails.`,
	Usage:     "fanrun run 'deploy --region {ITEM}' eu us apac",
	Copyright: "Copyright (c) matt-FFFFFF 2025. All rights reserved.",
	Authors: []any{
		"Matt White (matt-FFFFFF)",
	},
	EnableShellCompletion: true,
}
