package decoder

import (
	"github.com/ieee0824/beamdecode-go/fst"
	"github.com/ieee0824/beamdecode-go/internal/mathutil"
)

// token is one live hypothesis at a graph state. Tokens are immutable once
// created: relaxation replaces the frontier entry with a fresh token, so a
// descendant created earlier keeps a consistent view of its ancestry. The
// prev pointers form a lattice of shared chains; a chain segment is freed by
// the garbage collector exactly when no live token's ancestry reaches it.
type token struct {
	state fst.StateID
	cost  float64 // accumulated graph + acoustic cost from the start
	prev  *token  // nil marks the decode-start sentinel
	arc   fst.Arc // the arc that produced this token; Weight includes the acoustic cost
}

// frontier is the set of tokens alive at the current frame, at most one per
// graph state. order records first-insertion order so that iteration (and
// therefore tie-breaking) is deterministic for a fixed input sequence.
type frontier struct {
	toks  map[fst.StateID]*token
	order []fst.StateID
}

func newFrontier(capHint int) *frontier {
	if capHint < 16 {
		capHint = 16
	}
	return &frontier{
		toks:  make(map[fst.StateID]*token, capHint),
		order: make([]fst.StateID, 0, capHint),
	}
}

func (f *frontier) len() int { return len(f.order) }

func (f *frontier) get(s fst.StateID) *token { return f.toks[s] }

// insertOrRelax creates a token at state s, or replaces the existing one if
// cost is a strict improvement. Non-finite costs are never retained. Reports
// whether the frontier changed.
func (f *frontier) insertOrRelax(s fst.StateID, cost float64, prev *token, arc fst.Arc) bool {
	if !mathutil.IsCost(cost) {
		return false
	}
	if old, ok := f.toks[s]; ok {
		if cost < old.cost {
			f.toks[s] = &token{state: s, cost: cost, prev: prev, arc: arc}
			return true
		}
		return false
	}
	f.toks[s] = &token{state: s, cost: cost, prev: prev, arc: arc}
	f.order = append(f.order, s)
	return true
}

// bestCost returns the lowest token cost in the frontier, or +Inf when empty.
func (f *frontier) bestCost() float64 {
	best := mathutil.InfCost
	for _, s := range f.order {
		if c := f.toks[s].cost; c < best {
			best = c
		}
	}
	return best
}

// restrict keeps only the tokens keep reports true for, preserving insertion
// order.
func (f *frontier) restrict(keep func(*token) bool) {
	kept := f.order[:0]
	for _, s := range f.order {
		if keep(f.toks[s]) {
			kept = append(kept, s)
		} else {
			delete(f.toks, s)
		}
	}
	f.order = kept
}
