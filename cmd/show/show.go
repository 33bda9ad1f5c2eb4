// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package show

import (
	"context"
	"fmt"

	"github.com/matt-FFFFFF/fanrun/internal/color"
	"github.com/matt-FFFFFF/fanrun/internal/manifest"
	"github.com/matt-FFFFFF/fanrun/internal/render"
	"github.com/matt-FFFFFF/fanrun/internal/runner"
	"github.com/urfave/cli/v3"
)

const (
	templateArg = "template"

	fileFlag        = "file"
	placeholderFlag = "placeholder"
)

// ShowCmd prints the rendered command for every item without executing
// anything.
var ShowCmd = &cli.Command{
	Name: "show",
	Description: `Show the command that would be run for each item, without executing
anything. Accepts the same template, placeholder and manifest inputs as run.`,
	Arguments: []cli.Argument{
		&cli.StringArg{
			Name:      templateArg,
			UsageText: "TEMPLATE [ITEM ...]",
			Config: cli.StringConfig{
				TrimSpace: true,
			},
		},
	},
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     fileFlag,
			Aliases:  []string{"f"},
			Usage:    "Read the run definition from a YAML manifest (local path or go-getter URL).",
			OnlyOnce: true,
		},
		&cli.StringFlag{
			Name:     placeholderFlag,
			Usage:    "Placeholder token replaced by each item. Delimiters are added if omitted.",
			OnlyOnce: true,
		},
	},
	Action: actionFunc,
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	base := &manifest.Manifest{}

	if f := cmd.String(fileFlag); f != "" {
		m, err := manifest.Fetch(ctx, f)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}

		base = m
	}

	m := base.Merge(&manifest.Manifest{
		Template:    cmd.StringArg(templateArg),
		Placeholder: cmd.String(placeholderFlag),
		Items:       cmd.Args().Slice(),
	})

	if m.Template == "" {
		return cli.Exit("a command template is required, as an argument or via --file", 1)
	}

	if len(m.Items) == 0 {
		return cli.Exit("at least one item is required", 1)
	}

	token := render.NormalizeToken(m.Placeholder)

	retries := m.Retries
	if retries <= 0 {
		retries = runner.DefaultRetries
	}

	parallelism := m.Parallelism
	if parallelism <= 0 {
		parallelism = runner.DefaultParallelism()
	}

	fmt.Fprintf(cmd.Writer, "%s %s\n", color.Colorize("Template:", color.Bold), m.Template)
	fmt.Fprintf(cmd.Writer, "%s %s\n", color.Colorize("Placeholder:", color.Bold), token)
	fmt.Fprintf(cmd.Writer, "%s %d\n", color.Colorize("Retries:", color.Bold), retries)
	fmt.Fprintf(cmd.Writer, "%s %d\n", color.Colorize("Parallelism:", color.Bold), parallelism)
	fmt.Fprintln(cmd.Writer)

	for _, item := range m.Items {
		fmt.Fprintf(cmd.Writer, "%s %s\n",
			color.Colorize(item, color.FgCyan),
			render.Command(m.Template, token, item))
	}

	return nil
}
