package feature

// Deltas appends delta (first derivative) coefficients to each frame using
// the regression formula d[t] = sum_{n=1}^{N} n*(c[t+n] - c[t-n]) / (2 * sum n^2).
// A frame is ready only once its right context is available or the stream is
// closed; at stream edges indices clamp to the valid range.
type Deltas struct {
	up     Pipeline
	window int
	denom  float64
}

// NewDeltas wraps up with delta computation over the given regression window.
// A non-positive window defaults to 2.
func NewDeltas(up Pipeline, window int) *Deltas {
	if window <= 0 {
		window = 2
	}
	denom := 0.0
	for n := 1; n <= window; n++ {
		denom += float64(n * n)
	}
	return &Deltas{up: up, window: window, denom: 2 * denom}
}

// Frame implements Pipeline.
func (d *Deltas) Frame(i int) ([]float64, bool) {
	if i < 0 || i >= d.NumFramesReady() {
		return nil, false
	}
	base, ok := d.up.Frame(i)
	if !ok {
		return nil, false
	}
	dim := d.up.Dim()
	last := d.up.NumFramesReady() - 1
	out := make([]float64, 2*dim)
	copy(out, base)
	for dd := 0; dd < dim; dd++ {
		num := 0.0
		for n := 1; n <= d.window; n++ {
			tp := i + n
			if tp > last {
				tp = last
			}
			tn := i - n
			if tn < 0 {
				tn = 0
			}
			fp, _ := d.up.Frame(tp)
			fn, _ := d.up.Frame(tn)
			num += float64(n) * (fp[dd] - fn[dd])
		}
		out[dim+dd] = num / d.denom
	}
	return out, true
}

// NumFramesReady implements Pipeline. Before the stream is closed the last
// window frames are withheld so that no frame is ever produced with a
// provisional right edge.
func (d *Deltas) NumFramesReady() int {
	ready := d.up.NumFramesReady()
	if d.up.Finished() {
		return ready
	}
	if ready <= d.window {
		return 0
	}
	return ready - d.window
}

// Finished implements Pipeline.
func (d *Deltas) Finished() bool { return d.up.Finished() }

// Dim implements Pipeline.
func (d *Deltas) Dim() int { return 2 * d.up.Dim() }
