// Package decoder implements a beam-pruned, frame-synchronous token-passing
// search over a weighted finite-state transducer, driven incrementally by a
// pull-based score source. It finds the single best path; there is no
// lattice output.
package decoder

import (
	"errors"
	"fmt"

	"github.com/ieee0824/beamdecode-go/fst"
	"github.com/ieee0824/beamdecode-go/internal/mathutil"
	"github.com/ieee0824/beamdecode-go/score"
)

var (
	// ErrNotInitialized is returned when a decode operation is requested
	// before Init.
	ErrNotInitialized = errors.New("decoder: not initialized")
	// ErrNoPath is returned by BestPath when no hypothesis survives, either
	// because the search space collapsed or nothing was ever decoded.
	ErrNoPath = errors.New("decoder: no path available")
)

// phase is the decoder lifecycle: Uninitialized -> Decoding -> Finalized.
type phase int

const (
	phaseUninitialized phase = iota
	phaseDecoding
	phaseFinalized
)

// Decoder decodes one utterance at a time over a shared read-only graph.
// A Decoder owns its frontier exclusively: it is not safe for concurrent use
// by more than one caller, but any number of Decoders may share one graph.
type Decoder struct {
	graph fst.Fst
	opts  Options

	cur       *frontier
	control   *beamControl
	numFrames int
	finalSeen bool // a final state was active at the last completed frame
	phase     phase
}

// New creates a Decoder over graph. The options are validated here and are
// immutable for the Decoder's lifetime.
func New(graph fst.Fst, opts Options) (*Decoder, error) {
	if graph == nil {
		return nil, fmt.Errorf("decoder: nil graph")
	}
	if err := opts.Check(); err != nil {
		return nil, err
	}
	return &Decoder{
		graph:   graph,
		opts:    opts,
		control: newBeamControl(opts),
	}, nil
}

// Init resets the decoder for a new utterance: the frontier becomes the
// epsilon closure of the graph's start state at cost zero and the frame
// counter returns to zero. Init may be called at any time, including mid
// decode.
func (d *Decoder) Init() error {
	start := d.graph.Start()
	if start == fst.NoState {
		return fmt.Errorf("decoder: graph has no start state")
	}
	d.control.reset()
	d.cur = newFrontier(d.capHint(1))
	d.cur.insertOrRelax(start, 0, nil, fst.Arc{Next: start})
	d.closure(d.cur, mathutil.InfCost)
	d.numFrames = 0
	d.finalSeen = d.anyFinal()
	d.phase = phaseDecoding
	return nil
}

// Advance decodes at most maxFrames additional frames (all available frames
// if maxFrames is negative), reading only frames whose availability src has
// confirmed. It returns control once nothing more is ready; the caller may
// feed the source and call Advance again without losing decoder state.
// After search collapse Advance is a no-op.
func (d *Decoder) Advance(src score.Source, maxFrames int) error {
	if d.phase == phaseUninitialized {
		return ErrNotInitialized
	}
	if src == nil {
		return fmt.Errorf("decoder: nil score source")
	}
	if d.phase == phaseFinalized {
		return nil
	}
	target := src.NumFramesReady()
	if maxFrames >= 0 && d.numFrames+maxFrames < target {
		target = d.numFrames + maxFrames
	}
	for d.numFrames < target {
		if d.cur.len() == 0 {
			return nil
		}
		d.step(src)
	}
	return nil
}

// Decode runs a whole utterance: Init, then Advance until the source is
// exhausted, the search collapses, or no further frames are ready. A failed
// search is not an error here; it is observable through ReachedFinal and
// BestPath.
func (d *Decoder) Decode(src score.Source) error {
	if err := d.Init(); err != nil {
		return err
	}
	for {
		before := d.numFrames
		if err := d.Advance(src, -1); err != nil {
			return err
		}
		if d.cur.len() == 0 {
			break
		}
		if src.Finished() && d.numFrames >= src.NumFramesReady() {
			break
		}
		if d.numFrames == before {
			// Nothing was ready; run-to-completion decodes only what the
			// source has.
			break
		}
	}
	d.phase = phaseFinalized
	return nil
}

// NumFramesDecoded returns the number of frames decoded so far; zero
// immediately after Init and before any Init.
func (d *Decoder) NumFramesDecoded() int {
	if d.phase == phaseUninitialized {
		return 0
	}
	return d.numFrames
}

// ReachedFinal reports whether a final graph state was active at the last
// completed frame. It is false before Init and after search collapse.
func (d *Decoder) ReachedFinal() bool {
	if d.phase == phaseUninitialized {
		return false
	}
	return d.finalSeen
}

// step decodes exactly one frame: emitting expansion of the current frontier
// into the next, epsilon closure of the next frontier, then the pruning pass.
func (d *Decoder) step(src score.Source) {
	frame := d.numFrames
	next := newFrontier(d.capHint(d.cur.len()))
	eff := d.control.effective()

	bestNext := mathutil.InfCost
	for _, s := range d.cur.order {
		tok := d.cur.toks[s]
		for _, arc := range d.graph.Arcs(s) {
			if arc.IsEpsilon() {
				continue
			}
			ac := src.Cost(frame, int(arc.Out))
			cost := tok.cost + arc.Weight + ac
			if cost > bestNext+eff {
				continue
			}
			a := arc
			a.Weight += ac
			if next.insertOrRelax(arc.Next, cost, tok, a) && cost < bestNext {
				bestNext = cost
			}
		}
	}

	d.closure(next, bestNext+eff)
	d.control.prune(next)

	d.cur = next
	d.numFrames++
	d.finalSeen = d.anyFinal()
}

// closure expands epsilon arcs until no cheaper arrival is found. Only
// strict improvements re-enter the queue, which both propagates relaxations
// and guards against infinite loops on epsilon cycles.
func (d *Decoder) closure(f *frontier, cutoff float64) {
	queue := make([]fst.StateID, len(f.order))
	copy(queue, f.order)
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		tok := f.get(s)
		if tok.cost > cutoff {
			continue
		}
		for _, arc := range d.graph.Arcs(s) {
			if !arc.IsEpsilon() {
				continue
			}
			cost := tok.cost + arc.Weight
			if cost > cutoff {
				continue
			}
			if f.insertOrRelax(arc.Next, cost, tok, arc) {
				queue = append(queue, arc.Next)
			}
		}
	}
}

func (d *Decoder) anyFinal() bool {
	for _, s := range d.cur.order {
		if _, ok := d.graph.Final(s); ok {
			return true
		}
	}
	return false
}

// capHint sizes the next frontier from the previous token count and the
// configured hash ratio, bounded by the graph size.
func (d *Decoder) capHint(prev int) int {
	hint := int(d.opts.HashRatio * float64(prev))
	if n := d.graph.NumStates(); hint > n {
		hint = n
	}
	return hint
}
