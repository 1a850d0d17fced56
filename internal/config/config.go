// ABOUTME: Viewer settings loading with global + project config deep merge
// ABOUTME: YAML configuration via gopkg.in/yaml.v3, validated and defaulted after merge

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Tmux modes select whether graphics escapes get passthrough wrapping.
const (
	TmuxAuto = "auto"
	TmuxOn   = "on"
	TmuxOff  = "off"
)

// Status formats control how much the HUD shows.
const (
	StatusFull = "full"
	StatusName = "name"
)

// Defaults applied to fields left unset after merging.
const (
	DefaultMaxDimension  = 2000
	DefaultMaxBytes      = 4 * 1024 * 1024
	DefaultEncodeWorkers = 2
)

// Settings holds the merged configuration.
type Settings struct {
	LogFile       string  `yaml:"log_file,omitempty"`
	Verbose       bool    `yaml:"verbose,omitempty"`
	MaxDimension  int     `yaml:"max_dimension,omitempty"`
	MaxBytes      int     `yaml:"max_bytes,omitempty"`
	EncodeWorkers int     `yaml:"encode_workers,omitempty"`
	Tmux          string  `yaml:"tmux,omitempty"`
	StatusFormat  string  `yaml:"status_format,omitempty"`
	CellAspect    float64 `yaml:"cell_aspect,omitempty"`
}

// Load reads and merges global and project-local settings.
// Project settings override global settings. Missing files are not errors.
func Load(projectRoot string) (*Settings, error) {
	global, err := loadFile(GlobalConfigFile())
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading global config: %w", err)
	}

	project, err := loadFile(ProjectConfigFile(projectRoot))
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	merged := merge(global, project)
	ResolveEnvVars(merged)
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	merged.ApplyDefaults()
	return merged, nil
}

// loadFile reads Settings from a YAML file. Returns zero Settings and the
// os error if the file does not exist. Unknown keys are rejected so typos
// surface instead of silently falling back to defaults.
func loadFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return &Settings{}, err
	}
	var s Settings
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &s, nil
}

// merge deep-merges project settings onto global settings.
// Non-zero project values override global values.
func merge(global, project *Settings) *Settings {
	if global == nil {
		global = &Settings{}
	}
	if project == nil {
		return global
	}

	result := *global

	if project.LogFile != "" {
		result.LogFile = project.LogFile
	}
	if project.Verbose {
		result.Verbose = true
	}
	if project.MaxDimension != 0 {
		result.MaxDimension = project.MaxDimension
	}
	if project.MaxBytes != 0 {
		result.MaxBytes = project.MaxBytes
	}
	if project.EncodeWorkers != 0 {
		result.EncodeWorkers = project.EncodeWorkers
	}
	if project.Tmux != "" {
		result.Tmux = project.Tmux
	}
	if project.StatusFormat != "" {
		result.StatusFormat = project.StatusFormat
	}
	if project.CellAspect != 0 {
		result.CellAspect = project.CellAspect
	}

	return &result
}

// Validate rejects values no component can act on. Zero values are allowed
// and mean "use the default".
func (s *Settings) Validate() error {
	switch s.Tmux {
	case "", TmuxAuto, TmuxOn, TmuxOff:
	default:
		return fmt.Errorf("invalid tmux mode %q (want auto, on or off)", s.Tmux)
	}
	switch s.StatusFormat {
	case "", StatusFull, StatusName:
	default:
		return fmt.Errorf("invalid status_format %q (want full or name)", s.StatusFormat)
	}
	if s.MaxDimension < 0 {
		return fmt.Errorf("max_dimension must not be negative, got %d", s.MaxDimension)
	}
	if s.MaxBytes < 0 {
		return fmt.Errorf("max_bytes must not be negative, got %d", s.MaxBytes)
	}
	if s.EncodeWorkers < 0 {
		return fmt.Errorf("encode_workers must not be negative, got %d", s.EncodeWorkers)
	}
	if s.CellAspect < 0 {
		return fmt.Errorf("cell_aspect must not be negative, got %g", s.CellAspect)
	}
	return nil
}

// ApplyDefaults fills every unset field with its default.
func (s *Settings) ApplyDefaults() {
	if s.MaxDimension == 0 {
		s.MaxDimension = DefaultMaxDimension
	}
	if s.MaxBytes == 0 {
		s.MaxBytes = DefaultMaxBytes
	}
	if s.EncodeWorkers == 0 {
		s.EncodeWorkers = DefaultEncodeWorkers
	}
	if s.Tmux == "" {
		s.Tmux = TmuxAuto
	}
	if s.StatusFormat == "" {
		s.StatusFormat = StatusFull
	}
}

// Multiplexed resolves the tmux mode against the detected environment.
func (s *Settings) Multiplexed(detected bool) bool {
	switch s.Tmux {
	case TmuxOn:
		return true
	case TmuxOff:
		return false
	default:
		return detected
	}
}
