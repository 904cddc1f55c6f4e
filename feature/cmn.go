package feature

// MeanNorm subtracts the running mean from each feature dimension (causal
// cepstral mean normalization). Unlike an utterance-level CMN, the mean at
// frame t covers frames 0..t only, so normalized frames never change once
// produced and the stage adds no latency.
type MeanNorm struct {
	up Pipeline

	// Cumulative sums per frame, extended lazily; sums[t] covers 0..t.
	sums [][]float64
	out  [][]float64
}

// NewMeanNorm wraps up with causal mean normalization.
func NewMeanNorm(up Pipeline) *MeanNorm {
	return &MeanNorm{up: up}
}

// Frame implements Pipeline.
func (m *MeanNorm) Frame(i int) ([]float64, bool) {
	if i < 0 || i >= m.up.NumFramesReady() {
		return nil, false
	}
	m.extend(i)
	return m.out[i], true
}

// extend materializes cumulative sums and normalized frames through index i.
func (m *MeanNorm) extend(i int) {
	dim := m.up.Dim()
	for t := len(m.sums); t <= i; t++ {
		vec, ok := m.up.Frame(t)
		if !ok {
			return
		}
		sum := make([]float64, dim)
		if t > 0 {
			copy(sum, m.sums[t-1])
		}
		for d := 0; d < dim; d++ {
			sum[d] += vec[d]
		}
		m.sums = append(m.sums, sum)

		norm := make([]float64, dim)
		invN := 1.0 / float64(t+1)
		for d := 0; d < dim; d++ {
			norm[d] = vec[d] - sum[d]*invN
		}
		m.out = append(m.out, norm)
	}
}

// NumFramesReady implements Pipeline.
func (m *MeanNorm) NumFramesReady() int { return m.up.NumFramesReady() }

// Finished implements Pipeline.
func (m *MeanNorm) Finished() bool { return m.up.Finished() }

// Dim implements Pipeline.
func (m *MeanNorm) Dim() int { return m.up.Dim() }
