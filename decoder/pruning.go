package decoder

import (
	"github.com/ieee0824/beamdecode-go/internal/mathutil"
)

// beamControl decides, each frame, which tokens survive. The effective beam
// is a control loop, not a per-frame computation: enforcing MaxActive
// narrows it, an underfull or collapsed frontier widens it, and otherwise it
// drifts back toward the configured beam one BeamDelta step at a time. Its
// state persists across frames of an utterance and is reset by Init.
type beamControl struct {
	opts Options
	eff  float64 // current effective beam

	costScratch []float64 // reused by the selection pass
}

func newBeamControl(opts Options) *beamControl {
	return &beamControl{opts: opts, eff: opts.Beam}
}

func (c *beamControl) reset() { c.eff = c.opts.Beam }

// effective returns the current effective beam width.
func (c *beamControl) effective() float64 { return c.eff }

// prune retains a bounded subset of f and adapts the effective beam.
// Survivor selection is deterministic: exact cost ties are resolved by
// insertion order.
func (c *beamControl) prune(f *frontier) {
	n := f.len()
	if n == 0 {
		// Total collapse: the beam was too tight for anything to survive
		// expansion. Widen so a re-initialized decode recovers.
		c.widen()
		return
	}

	best := f.bestCost()
	cutoff := best + c.eff
	inBeam := 0
	for _, s := range f.order {
		if f.toks[s].cost <= cutoff {
			inBeam++
		}
	}

	tightened := inBeam > c.opts.MaxActive
	widened := false
	target := inBeam
	if tightened {
		target = c.opts.MaxActive
	} else if inBeam < c.opts.MinActive {
		target = c.opts.MinActive
		if target > n {
			target = n
		}
		widened = target > inBeam
	}

	if tightened || widened {
		c.keepCheapest(f, target)
	} else {
		f.restrict(func(t *token) bool { return t.cost <= cutoff })
	}

	switch {
	case tightened:
		c.narrow()
	case widened:
		c.widen()
	default:
		c.drift()
	}
}

// keepCheapest retains exactly target tokens: everything strictly cheaper
// than the target-th smallest cost, then ties in insertion order until the
// quota is filled.
func (c *beamControl) keepCheapest(f *frontier, target int) {
	costs := c.costScratch[:0]
	for _, s := range f.order {
		costs = append(costs, f.toks[s].cost)
	}
	c.costScratch = costs
	kth := mathutil.NthSmallest(costs, target)

	below := 0
	for _, s := range f.order {
		if f.toks[s].cost < kth {
			below++
		}
	}
	quota := target - below
	f.restrict(func(t *token) bool {
		if t.cost < kth {
			return true
		}
		if t.cost == kth && quota > 0 {
			quota--
			return true
		}
		return false
	})
}

func (c *beamControl) narrow() {
	c.eff -= c.opts.BeamDelta
	if c.eff < c.opts.BeamDelta {
		c.eff = c.opts.BeamDelta
	}
}

func (c *beamControl) widen() {
	c.eff += c.opts.BeamDelta
}

// drift steps the effective beam back toward the configured beam.
func (c *beamControl) drift() {
	switch {
	case c.eff < c.opts.Beam:
		c.eff += c.opts.BeamDelta
		if c.eff > c.opts.Beam {
			c.eff = c.opts.Beam
		}
	case c.eff > c.opts.Beam:
		c.eff -= c.opts.BeamDelta
		if c.eff < c.opts.Beam {
			c.eff = c.opts.Beam
		}
	}
}
