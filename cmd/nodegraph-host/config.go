package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the host's on-disk configuration, loaded over defaultConfig —
// fields present in the file override the defaults, and a flag given a
// non-zero (non-empty) value wins over both (see run in main.go).
type Config struct {
	SampleRate      int    `yaml:"sampleRate"`
	BlockSize       int32  `yaml:"blockSize"`
	GraphFile       string `yaml:"graphFile"`
	LogLevel        string `yaml:"logLevel"`
	UpdateRateHz    int    `yaml:"updateRateHz"`
}

// defaultConfig supplies the values used when neither the config file nor
// a flag sets a field, so running with no config file and no flags still
// produces a usable host.
func defaultConfig() Config {
	return Config{
		SampleRate:   44100,
		BlockSize:    256,
		LogLevel:     "info",
		UpdateRateHz: 60,
	}
}

// loadConfig reads and parses a YAML config file. A missing file is not
// an error — it just means defaults (and flags) apply unmodified.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}
