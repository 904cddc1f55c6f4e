package decoder

import (
	"github.com/ieee0824/beamdecode-go/fst"
	"github.com/ieee0824/beamdecode-go/internal/mathutil"
)

// BestPath reconstructs the best current hypothesis as a fresh linear
// transducer, one arc per decoded hop, ordered from the start of the
// utterance. With useFinalProbs set, tokens at final graph states are
// preferred and compared including their terminal cost; if no current token
// is at a final state (or useFinalProbs is unset) the globally cheapest
// token wins. The returned graph shares nothing with decoder state, so the
// decoder remains usable and re-extraction after further Advance calls is
// well-defined.
func (d *Decoder) BestPath(useFinalProbs bool) (*fst.VectorFst, error) {
	if d.phase == phaseUninitialized {
		return nil, ErrNotInitialized
	}
	if d.cur == nil || d.cur.len() == 0 {
		return nil, ErrNoPath
	}

	var best *token
	bestCost := mathutil.InfCost
	finalCost := 0.0
	atFinal := false
	if useFinalProbs {
		for _, s := range d.cur.order {
			tok := d.cur.toks[s]
			fc, ok := d.graph.Final(tok.state)
			if !ok {
				continue
			}
			if tok.cost+fc < bestCost {
				best = tok
				bestCost = tok.cost + fc
				finalCost = fc
				atFinal = true
			}
		}
	}
	if best == nil {
		for _, s := range d.cur.order {
			tok := d.cur.toks[s]
			if tok.cost < bestCost {
				best = tok
				bestCost = tok.cost
			}
		}
	}

	arcs := make([]fst.Arc, 0, 16)
	for tok := best; tok.prev != nil; tok = tok.prev {
		arcs = append(arcs, tok.arc)
	}
	for i, j := 0, len(arcs)-1; i < j; i, j = i+1, j-1 {
		arcs[i], arcs[j] = arcs[j], arcs[i]
	}

	out := fst.NewVectorFst()
	cur := out.AddState()
	out.SetStart(cur)
	for _, a := range arcs {
		next := out.AddState()
		out.AddArc(cur, fst.Arc{Next: next, In: a.In, Out: a.Out, Weight: a.Weight})
		cur = next
	}
	if atFinal {
		out.SetFinal(cur, finalCost)
	} else {
		out.SetFinal(cur, 0)
	}
	return out, nil
}
