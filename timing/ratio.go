// Package timing turns cue timestamps into fractional offsets along the
// total duration of a subtitle track.
package timing

import (
	"errors"
	"fmt"
	"time"

	"srtbadge/subtitle"
)

// ErrNoDuration is returned when the total duration is zero or negative,
// which would make every ratio a division by zero.
var ErrNoDuration = errors.New("total duration must be positive")

// Ratio returns the cue's position along total as a fraction. The result
// is not clamped: cues past total, or the middle of a long last cue, may
// land outside [0,1].
func Ratio(c subtitle.Cue, total time.Duration, s Strategy) (float64, error) {
	if total <= 0 {
		return 0, fmt.Errorf("%w: got %v", ErrNoDuration, total)
	}

	var point float64
	switch s {
	case Start:
		point = c.Start.Seconds()
	case Middle:
		point = c.Start.Seconds() + (c.End-c.Start).Seconds()/2
	case End:
		point = c.End.Seconds()
	default:
		return 0, fmt.Errorf("unknown strategy %v", s)
	}
	return point / total.Seconds(), nil
}

// TotalDuration returns override when it is positive, otherwise the end
// of the last cue.
func TotalDuration(cues []subtitle.Cue, override time.Duration) (time.Duration, error) {
	if override > 0 {
		return override, nil
	}
	if override < 0 {
		return 0, fmt.Errorf("%w: override %v", ErrNoDuration, override)
	}
	if len(cues) == 0 {
		return 0, subtitle.ErrNoCues
	}
	total := cues[len(cues)-1].End
	if total <= 0 {
		return 0, fmt.Errorf("%w: last cue ends at %v", ErrNoDuration, total)
	}
	return total, nil
}
