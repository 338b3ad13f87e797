package pipeline

import (
	"errors"
	"fmt"
	"log/slog"

	"srtbadge/badge"
	"srtbadge/config"
	"srtbadge/probe"
	"srtbadge/subtitle"
)

// Run validates opts, loads the cues and the badge, renders and writes
// the output PNG. Configuration errors wrap config.ErrInvalid and codec
// errors wrap badge.ErrCodec; in both cases no output file is written.
func Run(opts config.Options) (*Result, error) {
	opts.Normalize()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	slog.Info("render parameters",
		"badge", opts.BadgePath,
		"cues", opts.CuePath,
		"baseline", opts.Baseline,
		"output", opts.OutputPath,
		"scale", opts.Scale,
		"size", fmt.Sprintf("%dx%d", opts.Width, opts.Height),
		"strategy", opts.Strategy,
		"raise", opts.RaiseHeight,
	)

	if opts.Video != "" && opts.TotalDuration == 0 {
		d, err := probe.Duration(opts.Video)
		if err != nil {
			return nil, fmt.Errorf("%w: probe %s: %w", config.ErrInvalid, opts.Video, err)
		}
		slog.Info("total duration from media", "video", opts.Video, "duration", d)
		opts.TotalDuration = d
	}

	cues, err := subtitle.ParseFile(opts.CuePath, opts.Encoding)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", config.ErrInvalid, err)
	}
	slog.Info("loaded cues", "count", len(cues), "last_end", subtitle.FormatTime(cues[len(cues)-1].End))

	img, err := badge.Load(opts.BadgePath, opts.Scale)
	if errors.Is(err, badge.ErrCodec) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", config.ErrInvalid, err)
	}
	slog.Info("loaded badge", "width", img.Bounds().Dx(), "height", img.Bounds().Dy())

	res, err := Render(cues, img, ParamsFrom(opts))
	if err != nil {
		return nil, err
	}

	if err := badge.Save(opts.OutputPath, res.Canvas); err != nil {
		return nil, err
	}
	slog.Info("wrote output", "path", opts.OutputPath, "placed", len(res.Placements), "raised", res.Raised(), "skipped", res.Skipped())
	return res, nil
}
