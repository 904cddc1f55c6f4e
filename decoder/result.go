package decoder

import (
	"fmt"

	"github.com/ieee0824/beamdecode-go/fst"
)

// Result holds the decoded output in a directly consumable form.
type Result struct {
	Inputs       []int32 // non-epsilon input labels along the best path
	Outputs      []int32 // output symbols along the best path
	Cost         float64 // total path cost, including any terminal cost
	Frames       int     // number of frames decoded
	ReachedFinal bool    // a final state was active at the last frame
}

// ResultFromPath flattens a best-path transducer into a Result.
func ResultFromPath(path fst.Fst, frames int, reachedFinal bool) (*Result, error) {
	in, out, total, err := fst.LinearLabels(path)
	if err != nil {
		return nil, fmt.Errorf("decoder: flatten best path: %w", err)
	}
	r := &Result{
		Cost:         total,
		Frames:       frames,
		ReachedFinal: reachedFinal,
	}
	for _, l := range in {
		if l != 0 {
			r.Inputs = append(r.Inputs, l)
		}
	}
	for _, l := range out {
		if l != 0 {
			r.Outputs = append(r.Outputs, l)
		}
	}
	return r, nil
}
