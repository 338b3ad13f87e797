package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"srtbadge/timing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
}

func validOptions(t *testing.T) Options {
	t.Helper()
	dir := t.TempDir()
	o := Defaults()
	o.BadgePath = filepath.Join(dir, "badge.png")
	o.CuePath = filepath.Join(dir, "subs.srt")
	o.OutputPath = filepath.Join(dir, "out.png")
	touch(t, o.BadgePath)
	touch(t, o.CuePath)
	return o
}

func TestDefaults(t *testing.T) {
	o := Defaults()
	if o.Width != 1920 || o.Height != 1080 {
		t.Errorf("default size %dx%d", o.Width, o.Height)
	}
	if o.Scale != 1.0 || o.RaiseHeight != 30 || o.Strategy != timing.End || o.OutputPath != "out.png" {
		t.Errorf("unexpected defaults: %+v", o)
	}
}

func TestValidateOK(t *testing.T) {
	if err := validOptions(t).Validate(); err != nil {
		t.Errorf("Validate failed: %v", err)
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Options)
		want   string
	}{
		{"missing badge", func(o *Options) { o.BadgePath = o.BadgePath + ".gone.png" }, "does not exist"},
		{"badge not png", func(o *Options) { o.BadgePath = o.CuePath }, "only PNG images"},
		{"cue not srt", func(o *Options) { o.CuePath = o.BadgePath }, "only .srt and .vtt"},
		{"empty cue path", func(o *Options) { o.CuePath = "" }, "cue file path is required"},
		{"output not png", func(o *Options) { o.OutputPath = "out.jpg" }, "only PNG output"},
		{"zero scale", func(o *Options) { o.Scale = 0 }, "scale factor"},
		{"bad size", func(o *Options) { o.Width = 0 }, "background size"},
		{"negative raise", func(o *Options) { o.RaiseHeight = -1 }, "raise height"},
		{"negative duration", func(o *Options) { o.TotalDuration = -time.Second }, "total duration"},
		{"bad strategy", func(o *Options) { o.Strategy = timing.Strategy(9) }, "strategy"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := validOptions(t)
			tt.mutate(&o)
			err := o.Validate()
			if !errors.Is(err, ErrInvalid) {
				t.Fatalf("expected ErrInvalid, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	o := Options{OutputPath: "result"}
	o.Normalize()
	if o.OutputPath != "result.png" || o.Encoding != "auto" {
		t.Errorf("Normalize = %+v", o)
	}

	o = Options{}
	o.Normalize()
	if o.OutputPath != DefaultOutput {
		t.Errorf("empty output should default, got %q", o.OutputPath)
	}
}

func TestLoadPreset(t *testing.T) {
	dir := t.TempDir()
	preset := filepath.Join(dir, "preset.yaml")
	content := `badge: assets/badge.png
cues: /abs/subs.srt
baseline: -20
scale: 0.5
strategy: middle
raise: 12
total_duration: 1m30s
`
	if err := os.WriteFile(preset, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	o, err := LoadPreset(preset)
	if err != nil {
		t.Fatalf("LoadPreset failed: %v", err)
	}
	if o.BadgePath != filepath.Join(dir, "assets", "badge.png") {
		t.Errorf("relative path not resolved: %s", o.BadgePath)
	}
	if o.CuePath != "/abs/subs.srt" {
		t.Errorf("absolute path changed: %s", o.CuePath)
	}
	if o.Baseline != -20 || o.Scale != 0.5 || o.Strategy != timing.Middle || o.RaiseHeight != 12 {
		t.Errorf("values not loaded: %+v", o)
	}
	if o.TotalDuration != 90*time.Second {
		t.Errorf("duration = %v", o.TotalDuration)
	}
	if o.Width != DefaultWidth || o.Height != DefaultHeight {
		t.Errorf("defaults lost: %dx%d", o.Width, o.Height)
	}
}

func TestLoadPresetOutput(t *testing.T) {
	dir := t.TempDir()
	for _, tc := range []struct {
		content string
		want    string
	}{
		{"width: 200\n", DefaultOutput},
		{"output: strip.png\n", filepath.Join(dir, "strip.png")},
		{"output: /abs/strip.png\n", "/abs/strip.png"},
	} {
		preset := filepath.Join(dir, "preset.yaml")
		if err := os.WriteFile(preset, []byte(tc.content), 0644); err != nil {
			t.Fatal(err)
		}
		o, err := LoadPreset(preset)
		if err != nil {
			t.Fatalf("%q: %v", tc.content, err)
		}
		if o.OutputPath != tc.want {
			t.Errorf("%q: output = %q, want %q", tc.content, o.OutputPath, tc.want)
		}
	}
}

func TestLoadPresetKeepsRememberedOutput(t *testing.T) {
	preset := filepath.Join(t.TempDir(), "preset.yaml")
	if err := os.WriteFile(preset, []byte("width: 200\n"), 0644); err != nil {
		t.Fatal(err)
	}
	o, err := LoadPreset(preset)
	if err != nil {
		t.Fatal(err)
	}
	State{BadgePath: "/b.png", CuePath: "/c.srt", OutputPath: "/remembered.png"}.Apply(&o)
	if o.OutputPath != "/remembered.png" {
		t.Errorf("remembered output ignored after preset: %q", o.OutputPath)
	}
}

func TestLoadPresetErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadPreset(filepath.Join(dir, "none.yaml")); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid for missing preset, got %v", err)
	}

	for name, content := range map[string]string{
		"unknown.yaml":  "colour: red\n",
		"strategy.yaml": "strategy: sideways\n",
	} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadPreset(path); !errors.Is(err, ErrInvalid) {
			t.Errorf("%s: expected ErrInvalid, got %v", name, err)
		}
	}
}

func TestStateRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.yaml")

	s, err := LoadState(path)
	if err != nil || !s.Empty() {
		t.Fatalf("missing state should load empty, got %+v %v", s, err)
	}

	o := Options{BadgePath: "/b/badge.png", CuePath: "/c/subs.srt", OutputPath: "/o/out.png"}
	want := Remember(o)
	if err := SaveState(path, want); err != nil {
		t.Fatalf("SaveState failed: %v", err)
	}
	got, err := LoadState(path)
	if err != nil {
		t.Fatalf("LoadState failed: %v", err)
	}
	if got.BadgePath != want.BadgePath || got.CuePath != want.CuePath || got.OutputPath != want.OutputPath {
		t.Errorf("got %+v, want %+v", got, want)
	}
	if !got.UpdatedAt.Equal(want.UpdatedAt) {
		t.Errorf("timestamp %v != %v", got.UpdatedAt, want.UpdatedAt)
	}

	if err := ClearState(path); err != nil {
		t.Fatal(err)
	}
	if err := ClearState(path); err != nil {
		t.Errorf("clearing twice should succeed: %v", err)
	}
}

func TestStateApply(t *testing.T) {
	s := State{BadgePath: "/b.png", CuePath: "/c.srt", OutputPath: "/o.png"}

	o := Defaults()
	s.Apply(&o)
	if o.BadgePath != "/b.png" || o.CuePath != "/c.srt" || o.OutputPath != "/o.png" {
		t.Errorf("Apply = %+v", o)
	}

	o = Defaults()
	o.BadgePath = "mine.png"
	o.OutputPath = "custom.png"
	s.Apply(&o)
	if o.BadgePath != "mine.png" || o.OutputPath != "custom.png" {
		t.Errorf("explicit values overwritten: %+v", o)
	}
}
