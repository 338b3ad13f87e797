package cmd

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"srtbadge/config"
	"srtbadge/pipeline"
	"srtbadge/timing"
)

var renderCmd = &cobra.Command{
	Use:   "render [badge.png cues.srt baseline]",
	Short: "Render the badge strip for a subtitle file",
	Long: `Render places the badge once per cue and writes a transparent PNG.

The badge's horizontal center follows the cue time (its start, end or middle,
see --timecode-strategy) scaled to the canvas width. baseline is the distance
in pixels from the canvas bottom to the badge's bottom edge; pass negative
values after "--" or with --position-height.

When a badge lands on the previous one it is raised by --raise pixels.

Without positional arguments the paths remembered by the last --remember run
are used.`,
	Example: `  srtbadge render badge.png movie.srt 40 -o strip.png -s 0.5
  srtbadge render badge.png movie.srt 0 -t middle --video movie.mp4
  srtbadge render -- badge.png movie.srt -20
  srtbadge render --config preset.yaml`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 0 && len(args) != 3 {
			return fmt.Errorf("accepts 0 or 3 arg(s), received %d", len(args))
		}
		return nil
	},
	RunE: runRenderCommand,
}

var (
	renderFlags    = config.Defaults()
	backgroundSize []int
	presetPath     string
	remember       bool
)

func init() {
	f := renderCmd.Flags()
	f.StringVarP(&renderFlags.OutputPath, "output", "o", config.DefaultOutput, "Output image path")
	f.Float64VarP(&renderFlags.Scale, "scale", "s", config.DefaultScale, "Badge scaling factor")
	f.IntSliceVarP(&backgroundSize, "background-size", "b", []int{config.DefaultWidth, config.DefaultHeight}, "Background WIDTH,HEIGHT")
	f.VarP(&renderFlags.Strategy, "timecode-strategy", "t", strategyUsage)
	f.IntVarP(&renderFlags.RaiseHeight, "raise", "r", renderFlags.RaiseHeight, "Raise height for overlapping badges, 0 disables")
	f.IntVarP(&renderFlags.Baseline, "position-height", "p", 0, "Badge bottom distance from the canvas bottom")
	f.DurationVarP(&renderFlags.TotalDuration, "total-duration", "d", 0, "Total timeline duration (default: end of the last cue)")
	f.StringVar(&renderFlags.Video, "video", "", "Read the total duration from this media file with ffprobe")
	f.StringVarP(&renderFlags.Encoding, "encoding", "e", renderFlags.Encoding, "Cue file text encoding (auto, utf-8, gbk, gb18030, big5, ...)")
	f.StringVarP(&presetPath, "config", "c", "", "YAML preset with render options")
	f.BoolVar(&remember, "remember", false, "Remember the badge, cue and output paths for the next run")
}

func runRenderCommand(cmd *cobra.Command, args []string) error {
	opts, err := buildRenderOptions(cmd, args)
	if err != nil {
		return err
	}

	res, err := pipeline.Run(opts)
	if err != nil {
		return err
	}

	if remember {
		if err := saveState(opts); err != nil {
			slog.Warn("could not remember paths", "err", err)
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Placed %d badges (%d raised, %d off canvas) over %v into %s\n",
		len(res.Placements), res.Raised(), res.Skipped(), res.Total, opts.OutputPath)
	return nil
}

// buildRenderOptions layers defaults, the preset, remembered paths,
// changed flags and finally positional arguments.
func buildRenderOptions(cmd *cobra.Command, args []string) (config.Options, error) {
	opts := config.Defaults()
	if presetPath != "" {
		var err error
		if opts, err = config.LoadPreset(presetPath); err != nil {
			return opts, err
		}
	}

	// Remembered paths go under the flags so an explicit -o always wins.
	if len(args) == 0 && (opts.BadgePath == "" || opts.CuePath == "") {
		state, err := loadState()
		if err != nil {
			return opts, err
		}
		if !state.Empty() {
			slog.Info("using remembered paths", "updated", state.UpdatedAt)
		}
		state.Apply(&opts)
	}

	f := cmd.Flags()
	if f.Changed("output") {
		opts.OutputPath = renderFlags.OutputPath
	}
	if f.Changed("scale") {
		opts.Scale = renderFlags.Scale
	}
	if f.Changed("background-size") {
		if len(backgroundSize) != 2 {
			return opts, fmt.Errorf("%w: --background-size takes WIDTH,HEIGHT, got %v", config.ErrInvalid, backgroundSize)
		}
		opts.Width, opts.Height = backgroundSize[0], backgroundSize[1]
	}
	if f.Changed("timecode-strategy") {
		opts.Strategy = renderFlags.Strategy
	}
	if f.Changed("raise") {
		opts.RaiseHeight = renderFlags.RaiseHeight
	}
	if f.Changed("position-height") {
		opts.Baseline = renderFlags.Baseline
	}
	if f.Changed("total-duration") {
		opts.TotalDuration = renderFlags.TotalDuration
	}
	if f.Changed("video") {
		opts.Video = renderFlags.Video
	}
	if f.Changed("encoding") {
		opts.Encoding = renderFlags.Encoding
	}

	if len(args) == 3 {
		baseline, err := strconv.Atoi(args[2])
		if err != nil {
			return opts, fmt.Errorf("%w: baseline must be an integer, got %q", config.ErrInvalid, args[2])
		}
		opts.BadgePath, opts.CuePath, opts.Baseline = args[0], args[1], baseline
	}
	return opts, nil
}

func loadState() (config.State, error) {
	path, err := statePath()
	if err != nil {
		return config.State{}, err
	}
	return config.LoadState(path)
}

func saveState(opts config.Options) error {
	path, err := statePath()
	if err != nil {
		return err
	}
	return config.SaveState(path, config.Remember(opts))
}

// strategyUsage is shared by commands that accept a strategy.
var strategyUsage = fmt.Sprintf("Timecode strategy: %v", timing.Strategies)
