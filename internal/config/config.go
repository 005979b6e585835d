// Package config loads run settings from YAML. Values from the file replace
// the defaults; command-line flags are applied on top by the caller.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultBasecall = "Basecall_1D"
	DefaultDetected = "EventDetection_000"
	DefaultOutput   = "ReSegmentBasecall_000"
	DefaultDetector = "minknow_event_detect"
)

// Config is the on-disk run configuration.
type Config struct {
	DB               string   `yaml:"db"`
	Threads          int      `yaml:"threads"`
	Analyses         Analyses `yaml:"analyses"`
	StrictContiguity bool     `yaml:"strict_contiguity"`
	Overwrite        bool     `yaml:"overwrite"`
	Accuracy         bool     `yaml:"accuracy"`
	LogLevel         string   `yaml:"log_level"`
	Detector         Detector `yaml:"detector"`
}

// Analyses names the input and output tables inside the store.
type Analyses struct {
	Basecall string `yaml:"basecall"`
	Detected string `yaml:"detected"`
	Output   string `yaml:"output"`
}

// Detector describes the event detector whose output is relabeled.
// Params are copied verbatim into the output provenance.
type Detector struct {
	Name   string            `yaml:"name"`
	Params map[string]string `yaml:"params"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Threads: 0,
		Analyses: Analyses{
			Basecall: DefaultBasecall,
			Detected: DefaultDetected,
			Output:   DefaultOutput,
		},
		LogLevel: "info",
		Detector: Detector{
			Name: DefaultDetector,
			Params: map[string]string{
				"window_lengths": "5,10",
				"thresholds":     "2.0,1.1",
				"peak_height":    "1.2",
			},
		},
	}
}

// Load reads path over Default. Environment variables in the file are expanded.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err := Parse(bytes.NewReader([]byte(os.ExpandEnv(string(data)))))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML from r over Default. Unknown keys are rejected.
func Parse(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the fields that have no usable zero value.
func (c Config) Validate() error {
	if c.Threads < 0 {
		return errors.New("threads must be >= 0")
	}
	if c.Analyses.Basecall == "" || c.Analyses.Detected == "" || c.Analyses.Output == "" {
		return errors.New("analyses: basecall, detected and output names are required")
	}
	if c.Analyses.Output == c.Analyses.Basecall || c.Analyses.Output == c.Analyses.Detected {
		return fmt.Errorf("analyses: output %q would overwrite an input", c.Analyses.Output)
	}
	return nil
}
