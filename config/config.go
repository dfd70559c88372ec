// Copyright (c) 2017 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

// Package config defines sessiond's YAML configuration file format and the defaults used
// when a setting is absent from both the file and the command line.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// Duration wraps time.Duration so the YAML config file can spell durations the way a human
// would ("5m", "300s", "1h") instead of as a raw integer of nanoseconds, which is all
// gopkg.in/yaml.v2 understands about a bare time.Duration field.
type Duration time.Duration

// UnmarshalYAML accepts either a duration string ("5m") or a plain integer of nanoseconds,
// the latter kept for YAML documents that already spell out time.Duration's native form.
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	// The integer form is tried first: yaml.v2 also decodes an integer scalar into a
	// string, which time.ParseDuration would then reject for lacking a unit.
	var ns int64
	if err := unmarshal(&ns); err == nil {
		*d = Duration(ns)
		return nil
	}
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %v", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML renders the duration in its string form, e.g. "5m0s".
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// KafkaConfig configures the optional Kafka event sink.
type KafkaConfig struct {
	Enabled bool     `yaml:"enabled"`
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

// Config is the representation of sessiond's YAML config file.
type Config struct {
	Listen        string        `yaml:"listen"`
	M0            uint64        `yaml:"m0"`
	MaxFillFactor float64       `yaml:"maxFillFactor"`
	LowerBound    float64       `yaml:"lowerBound"`
	SessionTTL    Duration      `yaml:"sessionTTL"`
	SweepInterval Duration      `yaml:"sweepInterval"`
	CatalogPath   string        `yaml:"catalogPath"`
	StaticDir     string        `yaml:"staticDir"`
	Kafka         KafkaConfig   `yaml:"kafka"`
}

// Default returns the configuration used when no file is supplied.
func Default() Config {
	return Config{
		Listen:        ":8080",
		M0:            4,
		MaxFillFactor: 0.75,
		LowerBound:    0.40,
		SessionTTL:    Duration(5 * time.Minute),
		SweepInterval: Duration(300 * time.Second),
		Kafka:         KafkaConfig{Topic: "sessions"},
	}
}

// Parse parses a YAML config file's contents on top of Default().
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %v", err)
	}
	return cfg, nil
}

// Load reads and parses the YAML config file at path. An empty path returns Default().
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return Parse(data)
}
