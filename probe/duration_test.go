package probe

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParseFormatDuration(t *testing.T) {
	out := []byte(`{"format": {"filename": "a.mp4", "duration": "83.250000", "size": "1"}}`)
	got, err := parseFormatDuration(out)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if got != 83250*time.Millisecond {
		t.Errorf("got %v", got)
	}

	for _, bad := range []string{
		`not json`,
		`{"format": {}}`,
		`{"format": {"duration": "N/A"}}`,
		`{"format": {"duration": "0.000000"}}`,
	} {
		if _, err := parseFormatDuration([]byte(bad)); err == nil {
			t.Errorf("expected error for %s", bad)
		}
	}
}

func TestDurationMissingFile(t *testing.T) {
	if _, err := Duration(filepath.Join(t.TempDir(), "nope.mp4")); !os.IsNotExist(err) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestDurationMissingBinary(t *testing.T) {
	old := FFprobe
	FFprobe = "ffprobe-that-does-not-exist"
	defer func() { FFprobe = old }()

	media := filepath.Join(t.TempDir(), "clip.mp4")
	if err := os.WriteFile(media, []byte{0}, 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Duration(media); err == nil {
		t.Error("expected error when ffprobe is missing")
	}
}
