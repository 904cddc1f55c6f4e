package main

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/ieee0824/beamdecode-go/decoder"
)

// config mirrors decoder.Options plus the acoustic scale, loadable from a
// YAML file. Flag values set explicitly on the command line win over the
// file; the file wins over defaults.
type config struct {
	Beam          float64 `yaml:"beam" validate:"gt=0"`
	MaxActive     int     `yaml:"max_active" validate:"gte=1"`
	MinActive     int     `yaml:"min_active" validate:"gte=0,ltefield=MaxActive"`
	BeamDelta     float64 `yaml:"beam_delta" validate:"gt=0"`
	HashRatio     float64 `yaml:"hash_ratio" validate:"gte=1"`
	AcousticScale float64 `yaml:"acoustic_scale" validate:"gt=0"`
}

func defaultConfig() config {
	opts := decoder.DefaultOptions()
	return config{
		Beam:          opts.Beam,
		MaxActive:     opts.MaxActive,
		MinActive:     opts.MinActive,
		BeamDelta:     opts.BeamDelta,
		HashRatio:     opts.HashRatio,
		AcousticScale: 1.0,
	}
}

// loadConfig overlays the YAML file at path onto cfg in place.
func loadConfig(path string, cfg *config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}

func (c config) validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func (c config) decoderOptions() decoder.Options {
	return decoder.Options{
		Beam:      c.Beam,
		MaxActive: c.MaxActive,
		MinActive: c.MinActive,
		BeamDelta: c.BeamDelta,
		HashRatio: c.HashRatio,
	}
}
