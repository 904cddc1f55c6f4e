// Package fst provides a minimal weighted finite-state transducer
// representation: a read-only accessor interface consumed by the decoder,
// and a mutable vector implementation used for building test graphs and
// for rendering best-path results.
package fst

import "fmt"

// StateID identifies a state within an Fst.
type StateID int32

// NoState marks the absence of a state (e.g. an Fst with no start state).
const NoState StateID = -1

// Arc is a weighted transition between two states.
// An output label of 0 marks an epsilon (non-emitting) arc: traversing it
// consumes no observation frame.
type Arc struct {
	Next   StateID // destination state
	In     int32   // input label
	Out    int32   // output label (0 = epsilon)
	Weight float64 // transition cost (lower is better)
}

// IsEpsilon reports whether traversing the arc consumes no frame.
func (a Arc) IsEpsilon() bool { return a.Out == 0 }

// Fst is a read-only view of a weighted automaton. Implementations must be
// safe for concurrent readers; the decoder never mutates the graph.
type Fst interface {
	// Start returns the start state, or NoState if none is set.
	Start() StateID
	// Final returns the final cost of s and whether s is a final state.
	Final(s StateID) (float64, bool)
	// Arcs returns the outgoing arcs of s. The returned slice must not be
	// modified by the caller.
	Arcs(s StateID) []Arc
	// NumStates returns the number of states in the automaton.
	NumStates() int
}

// VectorFst is a mutable Fst backed by per-state arc slices.
type VectorFst struct {
	start  StateID
	arcs   [][]Arc
	finals map[StateID]float64
}

// NewVectorFst creates an empty automaton with no states.
func NewVectorFst() *VectorFst {
	return &VectorFst{
		start:  NoState,
		finals: make(map[StateID]float64),
	}
}

// AddState appends a new state and returns its id.
func (f *VectorFst) AddState() StateID {
	f.arcs = append(f.arcs, nil)
	return StateID(len(f.arcs) - 1)
}

// SetStart marks s as the start state.
func (f *VectorFst) SetStart(s StateID) {
	f.start = s
}

// SetFinal marks s as a final state with the given terminal cost.
func (f *VectorFst) SetFinal(s StateID, cost float64) {
	f.finals[s] = cost
}

// AddArc appends an outgoing arc to state s.
func (f *VectorFst) AddArc(s StateID, a Arc) {
	f.arcs[s] = append(f.arcs[s], a)
}

// Start implements Fst.
func (f *VectorFst) Start() StateID { return f.start }

// Final implements Fst.
func (f *VectorFst) Final(s StateID) (float64, bool) {
	cost, ok := f.finals[s]
	return cost, ok
}

// Arcs implements Fst.
func (f *VectorFst) Arcs(s StateID) []Arc {
	if int(s) < 0 || int(s) >= len(f.arcs) {
		return nil
	}
	return f.arcs[s]
}

// NumStates implements Fst.
func (f *VectorFst) NumStates() int { return len(f.arcs) }

// LinearLabels walks a linear automaton (each state at most one outgoing
// arc) from its start state and returns the input labels, output labels and
// total cost including the terminal cost of the last state.
// It fails if f is empty or branches.
func LinearLabels(f Fst) (in, out []int32, total float64, err error) {
	s := f.Start()
	if s == NoState {
		return nil, nil, 0, fmt.Errorf("fst: no start state")
	}
	for step := 0; ; step++ {
		if step > f.NumStates() {
			return nil, nil, 0, fmt.Errorf("fst: cycle detected at state %d", s)
		}
		arcs := f.Arcs(s)
		switch len(arcs) {
		case 0:
			cost, ok := f.Final(s)
			if !ok {
				return nil, nil, 0, fmt.Errorf("fst: path ends at non-final state %d", s)
			}
			return in, out, total + cost, nil
		case 1:
			a := arcs[0]
			in = append(in, a.In)
			out = append(out, a.Out)
			total += a.Weight
			s = a.Next
		default:
			return nil, nil, 0, fmt.Errorf("fst: state %d has %d outgoing arcs, not linear", s, len(arcs))
		}
	}
}
