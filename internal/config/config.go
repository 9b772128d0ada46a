// Package config provides configuration types and defaults for vidsweep.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/five82/vidsweep/internal/ffprobe"
	"github.com/five82/vidsweep/internal/filter"
	"gopkg.in/yaml.v3"
)

// Default constants
const (
	// DefaultMode is the combinator used when neither flag nor profile sets one.
	DefaultMode = filter.And

	// DefaultFFprobe is the probe binary looked up on PATH.
	DefaultFFprobe = ffprobe.DefaultBinary
)

// Profile holds the filter thresholds loaded from a YAML file or flags.
// A nil field means "not supplied".
type Profile struct {
	MinWidth  *int     `yaml:"min_width"`
	MinHeight *int     `yaml:"min_height"`
	MinFPS    *float64 `yaml:"min_fps"`
	MinSizeMB *float64 `yaml:"min_size_mb"`
	Mode      string   `yaml:"mode"`
}

// LoadProfile reads a YAML filter profile. Unknown keys are rejected.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}
	return ParseProfile(data)
}

// ParseProfile decodes a YAML filter profile. An empty document is an empty profile.
func ParseProfile(data []byte) (*Profile, error) {
	var p Profile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}
	if p.Mode != "" {
		if _, err := filter.ParseCombinator(p.Mode); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidProfile, err)
		}
	}
	return &p, nil
}

// Override returns a copy of p with every field supplied in o taking precedence.
func (p Profile) Override(o Profile) Profile {
	if o.MinWidth != nil {
		p.MinWidth = o.MinWidth
	}
	if o.MinHeight != nil {
		p.MinHeight = o.MinHeight
	}
	if o.MinFPS != nil {
		p.MinFPS = o.MinFPS
	}
	if o.MinSizeMB != nil {
		p.MinSizeMB = o.MinSizeMB
	}
	if o.Mode != "" {
		p.Mode = o.Mode
	}
	return p
}

// Condition converts the profile into a filter condition.
func (p Profile) Condition() (filter.Condition, error) {
	mode := DefaultMode
	if p.Mode != "" {
		m, err := filter.ParseCombinator(p.Mode)
		if err != nil {
			return filter.Condition{}, err
		}
		mode = m
	}

	c := filter.Condition{
		MinWidth:   p.MinWidth,
		MinHeight:  p.MinHeight,
		MinFPS:     p.MinFPS,
		MinSizeMB:  p.MinSizeMB,
		Combinator: mode,
	}
	if err := c.Validate(); err != nil {
		return filter.Condition{}, err
	}
	return c, nil
}

// Config holds all configuration for a vidsweep run.
type Config struct {
	// Scan root
	Root string

	// Logging
	LogDir  string
	Verbose bool
	NoLog   bool

	// Output
	JSON       bool
	EventsPath string // Optional NDJSON event log written alongside terminal output

	// Probe binary
	FFprobePath string

	// Filter thresholds
	Profile Profile

	// Action options
	DryRun    bool
	AssumeYes bool
}

// NewConfig creates a new Config with default values.
func NewConfig(root, logDir string) *Config {
	return &Config{
		Root:        root,
		LogDir:      logDir,
		FFprobePath: DefaultFFprobe,
		Profile:     Profile{Mode: string(DefaultMode)},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Root == "" {
		return ErrMissingRoot
	}
	if _, err := c.Profile.Condition(); err != nil {
		return err
	}
	return nil
}

// Condition returns the validated filter condition for this run.
func (c *Config) Condition() (filter.Condition, error) {
	return c.Profile.Condition()
}
