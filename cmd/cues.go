package cmd

import (
	"fmt"
	"image"
	"time"

	"github.com/spf13/cobra"

	"srtbadge/config"
	"srtbadge/placement"
	"srtbadge/subtitle"
	"srtbadge/timing"
)

var cuesCmd = &cobra.Command{
	Use:   "cues <cues.srt>",
	Short: "List the cues of a subtitle file with their timeline positions",
	Long: `List every cue with its start and end time, the ratio along the total
duration for the chosen strategy and the x coordinate it maps to.`,
	Args: cobra.ExactArgs(1),
	RunE: runCuesCommand,
}

var (
	cuesStrategy timing.Strategy
	cuesTotal    time.Duration
	cuesWidth    int
	cuesEncoding string
)

func init() {
	f := cuesCmd.Flags()
	f.VarP(&cuesStrategy, "timecode-strategy", "t", strategyUsage)
	f.DurationVarP(&cuesTotal, "total-duration", "d", 0, "Total timeline duration (default: end of the last cue)")
	f.IntVarP(&cuesWidth, "width", "w", config.DefaultWidth, "Canvas width used for the x column")
	f.StringVarP(&cuesEncoding, "encoding", "e", subtitle.EncodingAuto, "Cue file text encoding")
}

func runCuesCommand(cmd *cobra.Command, args []string) error {
	cues, err := subtitle.ParseFile(args[0], cuesEncoding)
	if err != nil {
		return fmt.Errorf("error parsing cue file: %w", err)
	}
	total, err := timing.TotalDuration(cues, cuesTotal)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%d cues, total %s, strategy %s\n\n", len(cues), subtitle.FormatTime(total), cuesStrategy)
	fmt.Fprintf(out, "%5s  %-12s  %-12s  %7s  %6s  %s\n", "#", "start", "end", "ratio", "x", "text")
	for _, c := range cues {
		ratio, err := timing.Ratio(c, total, cuesStrategy)
		if err != nil {
			return err
		}
		x := placement.Anchor(ratio, image.Pt(cuesWidth, 0), image.Point{}, 0).X
		fmt.Fprintf(out, "%5d  %-12s  %-12s  %7.4f  %6d  %s\n",
			c.Index, subtitle.FormatTime(c.Start), subtitle.FormatTime(c.End), ratio, x, truncate(c.Text, 40))
	}
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
