// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package run

import (
	"bytes"
	"context"
	"os"

	"github.com/matt-FFFFFF/fanrun/internal/ctxlog"
	"github.com/matt-FFFFFF/fanrun/internal/manifest"
	"github.com/matt-FFFFFF/fanrun/internal/progress"
	"github.com/matt-FFFFFF/fanrun/internal/report"
	"github.com/matt-FFFFFF/fanrun/internal/runner"
	"github.com/matt-FFFFFF/fanrun/internal/tui"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

const (
	templateArg = "template"

	fileFlag        = "file"
	placeholderFlag = "placeholder"
	retriesFlag     = "retries"
	parallelismFlag = "parallelism"
	workdirFlag     = "workdir"
	tuiFlag         = "tui"

	eventBufferSize = 64
)

// RunCmd runs the command template once per item.
var RunCmd = &cli.Command{
	Name: "run",
	Description: `Run the command template once per item, up to the configured number of
items concurrently. Each occurrence of the placeholder token in the template
is replaced by the item identifier. Failed commands are retried a bounded
number of times with a fixed delay between attempts.

Inputs may also come from a YAML manifest (--file), which accepts a local
path or any URL in Hashicorp's go-getter syntax. Command-line values take
precedence over manifest values.`,
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
			Value:    "",
			OnlyOnce: true,
		},
		&cli.IntFlag{
			Name:     retriesFlag,
			Aliases:  []string{"r"},
			Usage:    "Maximum attempts per item before it is marked failed. Defaults to 3.",
			Value:    0,
			OnlyOnce: true,
		},
		&cli.IntFlag{
			Name:    parallelismFlag,
			Aliases: []string{"p"},
			Usage: "Maximum number of items running concurrently. " +
				"Defaults to FANRUN_PARALLELISM or the number of CPU cores available.",
			Value:    0,
			OnlyOnce: true,
		},
		&cli.StringFlag{
			Name:     workdirFlag,
			Usage:    "Directory for generated wrapper scripts and markers. Purged at run start.",
			OnlyOnce: true,
		},
		&cli.BoolFlag{
			Name:        tuiFlag,
			Aliases:     []string{"t", "interactive"},
			Usage:       "Run with an interactive terminal view showing real-time progress.",
			Value:       false,
			DefaultText: "false",
			OnlyOnce:    true,
		},
	},
	Action: actionFunc,
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	logger := ctxlog.Logger(ctx).With("command", cmd.Name)

	m, err := resolve(ctx, cmd)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	if m.Template == "" {
		return cli.Exit("a command template is required, as an argument or via --file", 1)
	}

	if len(m.Items) == 0 {
		return cli.Exit("at least one item is required", 1)
	}

	reporter := progress.NewChannelReporter(ctx, eventBufferSize)

	r, err := runner.New(runner.Options{
		Template:    m.Template,
		Placeholder: m.Placeholder,
		Items:       m.Items,
		Retries:     m.Retries,
		Parallelism: m.Parallelism,
		WorkDir:     m.WorkDir,
		Reporter:    reporter,
	})
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	var summary *report.Summary

	switch cmd.Bool(tuiFlag) && isTerminal() {
	case true:
		// Buffer log output so it cannot corrupt the TUI display.
		buf := new(bytes.Buffer)
		tuiCtx := ctxlog.NewForTUI(ctx, buf)

		summary, err = tui.Run(tuiCtx, m.Items, reporter, r.Run)

		buf.WriteTo(cmd.Writer) //nolint:errcheck
	default:
		reporter.Listen(report.NewConsole(cmd.Writer))

		summary, err = r.Run(ctx)

		reporter.Close()
	}

	if err != nil {
		logger.Error("run aborted", "error", err)
		return cli.Exit("", 1)
	}

	if err := summary.Write(cmd.Writer); err != nil {
		return cli.Exit(err.Error(), 1)
	}

	if summary.ExitCode() != 0 {
		return cli.Exit("", 1)
	}

	return nil
}

// resolve merges the optional manifest with command-line values; the command
// line wins.
func resolve(ctx context.Context, cmd *cli.Command) (*manifest.Manifest, error) {
	base := &manifest.Manifest{}

	if f := cmd.String(fileFlag); f != "" {
		m, err := manifest.Fetch(ctx, f)
		if err != nil {
			return nil, err
		}

		base = m
	}

	return base.Merge(&manifest.Manifest{
		Template:    cmd.StringArg(templateArg),
		Placeholder: cmd.String(placeholderFlag),
		Retries:     cmd.Int(retriesFlag),
		Parallelism: cmd.Int(parallelismFlag),
		WorkDir:     cmd.String(workdirFlag),
		Items:       cmd.Args().Slice(),
	}), nil
}

// isTerminal is a variable so tests can force the non-TUI path.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
