package probe

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"time"
)

// FFprobe is the ffprobe binary used by Duration.
var FFprobe = "ffprobe"

// Duration uses ffprobe to read the container duration of a media file.
// It lets the timeline span the whole video instead of ending at the last
// subtitle.
func Duration(mediaPath string) (time.Duration, error) {
	if _, err := os.Stat(mediaPath); err != nil {
		return 0, err
	}

	cmd := exec.Command(FFprobe, "-v", "quiet", "-print_format", "json", "-show_format", mediaPath)
	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("failed to run %s: %w", FFprobe, err)
	}
	return parseFormatDuration(output)
}

func parseFormatDuration(output []byte) (time.Duration, error) {
	var result struct {
		Format struct {
			Duration string `json:"duration"`
		} `json:"format"`
	}
	if err := json.Unmarshal(output, &result); err != nil {
		return 0, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}
	if result.Format.Duration == "" {
		return 0, fmt.Errorf("ffprobe reported no duration")
	}

	// Parse duration as float seconds
	seconds, err := strconv.ParseFloat(result.Format.Duration, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse duration %q: %w", result.Format.Duration, err)
	}
	if seconds <= 0 {
		return 0, fmt.Errorf("non-positive duration %q", result.Format.Duration)
	}
	return time.Duration(seconds * float64(time.Second)), nil
}
