package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"srtbadge/config"
)

var verbose bool

// statePath locates the remembered-paths file; tests point it elsewhere.
var statePath = config.DefaultStatePath

var rootCmd = &cobra.Command{
	Use:   "srtbadge",
	Short: "Stamp a badge image along a video timeline from subtitle timing",
	Long: `srtbadge places a small badge image onto a transparent canvas once per
subtitle cue, at the horizontal position given by the cue's timing, and writes
the result as a single PNG. Overlay it on a video to visualize how dense the
comments or subtitles are over time.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging(cmd, verbose)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setupLogging(cmd *cobra.Command, verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(h))
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(cuesCmd)
	rootCmd.AddCommand(probeCmd)
	rootCmd.AddCommand(stateCmd)
}
