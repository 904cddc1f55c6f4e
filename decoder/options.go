package decoder

import (
	"fmt"
	"math"
)

// Options holds beam search parameters. They are consumed at construction
// and never change during an active decode; to change them between
// utterances, build a new Decoder.
type Options struct {
	Beam      float64 // nominal log-domain beam width
	MaxActive int     // hard cap on surviving hypotheses per frame
	MinActive int     // floor on surviving hypotheses per frame
	BeamDelta float64 // step by which the effective beam adapts per frame
	HashRatio float64 // frontier capacity relative to expected token count
}

// DefaultOptions returns reasonable default parameters.
func DefaultOptions() Options {
	return Options{
		Beam:      16.0,
		MaxActive: math.MaxInt32,
		MinActive: 20,
		BeamDelta: 0.5,
		HashRatio: 2.0,
	}
}

// Check validates the configuration. Invalid options are rejected here,
// before any decoding state exists.
func (o Options) Check() error {
	if o.Beam <= 0 {
		return fmt.Errorf("decoder: beam must be positive, got %g", o.Beam)
	}
	if o.BeamDelta <= 0 {
		return fmt.Errorf("decoder: beam delta must be positive, got %g", o.BeamDelta)
	}
	if o.MaxActive < 1 {
		return fmt.Errorf("decoder: max active must be at least 1, got %d", o.MaxActive)
	}
	if o.MinActive < 0 {
		return fmt.Errorf("decoder: min active must be non-negative, got %d", o.MinActive)
	}
	if o.MinActive > o.MaxActive {
		return fmt.Errorf("decoder: min active %d exceeds max active %d", o.MinActive, o.MaxActive)
	}
	if o.HashRatio < 1 {
		return fmt.Errorf("decoder: hash ratio must be at least 1, got %g", o.HashRatio)
	}
	return nil
}
