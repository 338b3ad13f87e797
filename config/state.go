package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// State is what the tool remembers between runs: the last paths used.
type State struct {
	BadgePath  string    `yaml:"badge"`
	CuePath    string    `yaml:"cues"`
	OutputPath string    `yaml:"output"`
	UpdatedAt  time.Time `yaml:"updated_at"`
}

// DefaultStatePath returns <user config dir>/srtbadge/state.yaml.
func DefaultStatePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "srtbadge", "state.yaml"), nil
}

// LoadState reads path. A missing file yields an empty State.
func LoadState(path string) (State, error) {
	var s State
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, err
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parse state %s: %w", path, err)
	}
	return s, nil
}

// SaveState writes s to path, creating the directory when needed.
func SaveState(path string, s State) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ClearState removes the state file; a missing file is not an error.
func ClearState(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Remember records the paths of o, made absolute so the next run works
// from any directory.
func Remember(o Options) State {
	return State{
		BadgePath:  absPath(o.BadgePath),
		CuePath:    absPath(o.CuePath),
		OutputPath: absPath(o.OutputPath),
		UpdatedAt:  time.Now().UTC().Truncate(time.Second),
	}
}

// Apply fills empty paths of o from s.
func (s State) Apply(o *Options) {
	if o.BadgePath == "" {
		o.BadgePath = s.BadgePath
	}
	if o.CuePath == "" {
		o.CuePath = s.CuePath
	}
	if s.OutputPath != "" && (o.OutputPath == "" || o.OutputPath == DefaultOutput) {
		o.OutputPath = s.OutputPath
	}
}

// Empty reports whether nothing has been remembered yet.
func (s State) Empty() bool {
	return s.BadgePath == "" && s.CuePath == "" && s.OutputPath == ""
}

func absPath(p string) string {
	if p == "" {
		return ""
	}
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
