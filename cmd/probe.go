package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"srtbadge/probe"
	"srtbadge/subtitle"
)

var probeCmd = &cobra.Command{
	Use:   "probe <media-file>",
	Short: "Print the duration of a media file",
	Long:  "Print the container duration ffprobe reports; render --video uses the same value as the total duration.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := probe.Duration(args[0])
		if err != nil {
			return fmt.Errorf("error probing %s: %w", args[0], err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s (%.3fs)\n", args[0], subtitle.FormatTime(d), d.Seconds())
		return nil
	},
}
