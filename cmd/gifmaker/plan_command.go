package main

import (
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"gifmaker/internal/failures"
	"gifmaker/internal/frames"
	"gifmaker/internal/pipeline"
	"gifmaker/internal/preflight"
)

func newPlanCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "plan <dir> <interior-delay> <boundary-delay>",
		Short: "Show frame order and delays without writing a GIF",
		Long: `plan lists the files gifmaker would use, in the order it would use them,
with each frame's order key and delay. Nothing is decoded or written.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runArgs, err := pipeline.ParseArgs(args)
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			candidates, err := frames.Plan(runArgs.Dir)
			if err != nil {
				return err
			}
			if len(candidates) == 0 {
				return failures.Wrap(failures.ErrEmptyDirectory, "plan", fmt.Sprintf("no images in %s", runArgs.Dir), nil)
			}
			outputPath, err := pipeline.OutputPath(runArgs.Dir, cfg.Output.Filename)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			delays := runArgs.Policy.Delays(len(candidates))
			var totalCS int
			rows := make([][]string, 0, len(candidates))
			for i, candidate := range candidates {
				key := candidate.Key.String()
				if candidate.Key.Fallback && colorize {
					key = text.FgYellow.Sprint(key)
				}
				totalCS += int(delays[i])
				rows = append(rows, []string{
					strconv.Itoa(i + 1),
					candidate.Name,
					key,
					strconv.Itoa(int(delays[i])),
				})
			}

			fmt.Fprintln(out, renderTable(
				[]string{"#", "File", "Order key", "Delay (cs)"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignRight, alignRight},
				[]string{"", fmt.Sprintf("%d frames", len(candidates)), "", fmt.Sprintf("%.2fs", float64(totalCS)/100)},
			))
			fmt.Fprintf(out, "Output: %s\n", outputPath)

			checks := preflight.RunAll(cfg, runArgs.Dir, outputPath)
			checkRows := make([][]string, 0, len(checks))
			for _, check := range checks {
				checkRows = append(checkRows, []string{check.Name, statusLabel(check.Passed, colorize), check.Detail})
			}
			fmt.Fprintln(out, renderTable([]string{"Check", "Status", "Detail"}, checkRows, nil, nil))
			return nil
		},
	}
}

func statusLabel(passed, colorize bool) string {
	if passed {
		if colorize {
			return text.FgGreen.Sprint("ok")
		}
		return "ok"
	}
	if colorize {
		return text.FgRed.Sprint("fail")
	}
	return "fail"
}
