package feature

// Splice stacks each frame with its left and right context frames, producing
// vectors of dimension (2*context+1) * upstream dim. Stream edges repeat the
// first or last frame, matching the usual splicing convention.
type Splice struct {
	up      Pipeline
	context int
}

// NewSplice wraps up with ±context frame splicing.
// A negative context defaults to 0 (no-op splice).
func NewSplice(up Pipeline, context int) *Splice {
	if context < 0 {
		context = 0
	}
	return &Splice{up: up, context: context}
}

// Frame implements Pipeline.
func (s *Splice) Frame(i int) ([]float64, bool) {
	if i < 0 || i >= s.NumFramesReady() {
		return nil, false
	}
	dim := s.up.Dim()
	last := s.up.NumFramesReady() - 1
	out := make([]float64, (2*s.context+1)*dim)
	for k := -s.context; k <= s.context; k++ {
		t := i + k
		if t < 0 {
			t = 0
		}
		if t > last {
			t = last
		}
		vec, ok := s.up.Frame(t)
		if !ok {
			return nil, false
		}
		copy(out[(k+s.context)*dim:], vec)
	}
	return out, true
}

// NumFramesReady implements Pipeline. Right context is withheld until
// available, exactly as in Deltas.
func (s *Splice) NumFramesReady() int {
	ready := s.up.NumFramesReady()
	if s.up.Finished() {
		return ready
	}
	if ready <= s.context {
		return 0
	}
	return ready - s.context
}

// Finished implements Pipeline.
func (s *Splice) Finished() bool { return s.up.Finished() }

// Dim implements Pipeline.
func (s *Splice) Dim() int { return (2*s.context + 1) * s.up.Dim() }
