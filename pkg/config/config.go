// Package config describes a YAML build manifest for one animated GIF.
package config

import (
	"os"

	"gopkg.in/yaml.v2"
)

// Frame is one entry in a build manifest.
type Frame struct {
	// Source is a file path or http(s) URL of the frame image.
	Source string `yaml:"source"`
	// Delay is how long the frame is shown, in hundredths of a second.
	Delay int `yaml:"delay"`
}

// Config describes one animated GIF build.
type Config struct {
	Output    string  `yaml:"output"`
	LoopCount int     `yaml:"loop_count"`
	Frames    []Frame `yaml:"frames"`
}

// Load reads and parses a YAML manifest.
func Load(path string) (*Config, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
