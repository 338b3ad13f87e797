// Package pipeline folds the cue list through timing, placement and
// compositing to produce the finished canvas.
package pipeline

import (
	"fmt"
	"image"
	"log/slog"
	"time"

	"srtbadge/composite"
	"srtbadge/config"
	"srtbadge/placement"
	"srtbadge/subtitle"
	"srtbadge/timing"
)

// Params are the geometry and timing settings of one render.
type Params struct {
	Width, Height int
	Baseline      int
	RaiseHeight   int
	Strategy      timing.Strategy
	// TotalDuration overrides the end of the last cue when positive.
	TotalDuration time.Duration
}

// ParamsFrom extracts render parameters from options.
func ParamsFrom(o config.Options) Params {
	return Params{
		Width:         o.Width,
		Height:        o.Height,
		Baseline:      o.Baseline,
		RaiseHeight:   o.RaiseHeight,
		Strategy:      o.Strategy,
		TotalDuration: o.TotalDuration,
	}
}

// Placement records what happened to one cue.
type Placement struct {
	Cue   int
	Ratio float64
	// Candidate is the mapped anchor before overlap resolution.
	Candidate image.Point
	// Anchor is where the badge went: center x, top y.
	Anchor  image.Point
	Raised  bool
	Visible bool
}

// Result is the finished canvas plus the per-cue decisions.
type Result struct {
	Canvas     *image.NRGBA
	Total      time.Duration
	Placements []Placement
}

// Render stamps badge once per cue, in cue order. Configuration problems
// are reported before the canvas is allocated; badges that end up off the
// canvas are skipped silently.
func Render(cues []subtitle.Cue, badge *image.NRGBA, p Params) (*Result, error) {
	if badge == nil || badge.Bounds().Empty() {
		return nil, fmt.Errorf("%w: badge image is empty", config.ErrInvalid)
	}
	if p.Width <= 0 || p.Height <= 0 {
		return nil, fmt.Errorf("%w: background size must be positive, got %dx%d", config.ErrInvalid, p.Width, p.Height)
	}
	if p.RaiseHeight < 0 {
		return nil, fmt.Errorf("%w: raise height must not be negative, got %d", config.ErrInvalid, p.RaiseHeight)
	}
	if _, err := timing.ParseStrategy(p.Strategy.String()); err != nil {
		return nil, fmt.Errorf("%w: %w", config.ErrInvalid, err)
	}
	total, err := timing.TotalDuration(cues, p.TotalDuration)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", config.ErrInvalid, err)
	}

	canvasSize := image.Pt(p.Width, p.Height)
	badgeSize := badge.Bounds().Size()
	canvas := image.NewNRGBA(image.Rectangle{Max: canvasSize})

	res := &Result{
		Canvas:     canvas,
		Total:      total,
		Placements: make([]Placement, 0, len(cues)),
	}
	resolver := placement.NewResolver(badgeSize.X, p.RaiseHeight)

	for _, cue := range cues {
		ratio, err := timing.Ratio(cue, total, p.Strategy)
		if err != nil {
			return nil, fmt.Errorf("%w: cue %d: %w", config.ErrInvalid, cue.Index, err)
		}
		candidate := placement.Anchor(ratio, canvasSize, badgeSize, p.Baseline)

		var anchor image.Point
		anchor, resolver = resolver.Next(candidate)

		_, _, visible := composite.Clip(canvas.Bounds(), badgeSize, anchor)
		composite.Paste(canvas, badge, anchor)

		if !visible {
			slog.Debug("badge outside canvas, skipped", "cue", cue.Index, "x", anchor.X, "y", anchor.Y)
		}
		res.Placements = append(res.Placements, Placement{
			Cue:       cue.Index,
			Ratio:     ratio,
			Candidate: candidate,
			Anchor:    anchor,
			Raised:    anchor != candidate,
			Visible:   visible,
		})
	}
	return res, nil
}

// Raised counts placements moved by overlap resolution.
func (r *Result) Raised() int {
	n := 0
	for _, pl := range r.Placements {
		if pl.Raised {
			n++
		}
	}
	return n
}

// Skipped counts placements that fell entirely off the canvas.
func (r *Result) Skipped() int {
	n := 0
	for _, pl := range r.Placements {
		if !pl.Visible {
			n++
		}
	}
	return n
}
