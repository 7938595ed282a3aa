package main

import (
	"github.com/spf13/cobra"

	"gifmaker/internal/gifenc"
	"gifmaker/internal/logging"
	"gifmaker/internal/pipeline"
	"gifmaker/internal/progress"
)

func newRootCommand() *cobra.Command {
	var flags rootFlags

	ctx := newCommandContext(&flags)

	rootCmd := &cobra.Command{
		Use:   "gifmaker [flags] <dir> <interior-delay> <boundary-delay>",
		Short: "Assemble numbered images into a looping GIF",
		Long: `gifmaker reads every image in <dir>, orders them by the number at the
start of each file name (1.png, 2.png, 10.png), and writes a looping GIF named
out.gif next to <dir>.

Delays are in hundredths of a second. The first and last frames are shown for
<boundary-delay>; every other frame for <interior-delay>.`,
		Example:       "  gifmaker ./frames 10 100\n  gifmaker --progress bar --dimension-policy clip ./shots 4 50",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runArgs, err := pipeline.ParseArgs(args)
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.newRunLogger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			dimensions, err := gifenc.ParseDimensionPolicy(cfg.Frames.DimensionPolicy)
			if err != nil {
				return err
			}

			result, err := pipeline.Run(cmd.Context(), runArgs, pipeline.Options{
				OutputName: cfg.Output.Filename,
				Dimensions: dimensions,
				Logger:     logger,
				Reporter:   progress.Resolve(cfg.Progress.Style, cmd.OutOrStdout()),
			})
			if err != nil {
				logging.ErrorWithContext(logger, "gif not written", "run_failed",
					logging.String(logging.FieldPath, runArgs.Dir),
					logging.Error(err),
				)
				return err
			}
			logger.Debug("run summary", logging.String("summary", result.Summary()))
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&flags.config, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&flags.logFormat, "log-format", "", "Log format (console, json)")
	rootCmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file name, written next to <dir> (default out.gif)")
	rootCmd.Flags().StringVar(&flags.dimensionPolicy, "dimension-policy", "", "Frames whose size differs from the first: reject or clip")
	rootCmd.Flags().StringVar(&flags.progress, "progress", "", "Progress output: auto, lines, bar, none")

	rootCmd.AddCommand(newPlanCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
