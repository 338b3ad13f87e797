package placement

import "image"

// DefaultRaiseHeight is the vertical step used when none is configured.
const DefaultRaiseHeight = 30

// Resolver remembers only the previous placement. Three or more mutually
// overlapping badges can still collide; that single-step lookback is the
// intended behavior.
//
// Resolver is a value: Next returns the updated state instead of mutating
// the receiver, so a pipeline folds it over cues in order.
type Resolver struct {
	BadgeWidth  int
	RaiseHeight int

	last   image.Point
	placed bool
}

func NewResolver(badgeWidth, raiseHeight int) Resolver {
	return Resolver{BadgeWidth: badgeWidth, RaiseHeight: raiseHeight}
}

// Next decides where candidate p actually goes and returns it together
// with the resolver state for the following cue.
//
// Overlap is tested on the start x only (p.X < last.X + width), not on the
// true interval, so a badge to the left of the previous one also counts.
func (r Resolver) Next(p image.Point) (image.Point, Resolver) {
	if r.placed && p.X < r.last.X+r.BadgeWidth {
		switch {
		case p.Y == r.last.Y:
			p.Y -= r.RaiseHeight
		case p.Y > r.last.Y:
			p.Y = r.last.Y - r.RaiseHeight
		}
	}
	r.last = p
	r.placed = true
	return p, r
}

// Last returns the previous placement, if any.
func (r Resolver) Last() (image.Point, bool) {
	return r.last, r.placed
}
