package subtitle

import (
	"fmt"
	"time"
)

// Cue is a single timed subtitle entry.
type Cue struct {
	Index int
	Start time.Duration
	End   time.Duration
	Text  string
}

// Duration returns how long the cue stays on screen.
func (c Cue) Duration() time.Duration {
	return c.End - c.Start
}

func (c Cue) String() string {
	return fmt.Sprintf("#%d %s --> %s", c.Index, FormatTime(c.Start), FormatTime(c.End))
}

// FormatTime renders d as HH:MM:SS,mmm.
func FormatTime(d time.Duration) string {
	if d < 0 {
		return "-" + FormatTime(-d)
	}
	hour := d / time.Hour
	d -= hour * time.Hour
	minute := d / time.Minute
	d -= minute * time.Minute
	second := d / time.Second
	d -= second * time.Second
	millisecond := d / time.Millisecond
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hour, minute, second, millisecond)
}
