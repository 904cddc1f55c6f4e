package score

import (
	"fmt"
	"math"

	"github.com/ieee0824/beamdecode-go/feature"
	"github.com/ieee0824/beamdecode-go/internal/mathutil"
)

// Gaussian scores frames of a feature pipeline against one diagonal-covariance
// Gaussian per symbol, returning the negative log density as the acoustic
// cost. Frame readiness delegates to the pipeline, so a Gaussian source can
// sit at the end of a streaming feature chain.
type Gaussian struct {
	pipe feature.Pipeline

	// Per-symbol parameters, indexed by symbol-1.
	means  [][]float64
	invVar [][]float64
	gconst []float64 // precomputed log normalization constant per symbol
}

// NewGaussian builds a Gaussian source. means and variances are indexed by
// symbol-1 and must all match the pipeline dimension.
func NewGaussian(pipe feature.Pipeline, means, variances [][]float64) (*Gaussian, error) {
	if len(means) == 0 {
		return nil, fmt.Errorf("score: no symbols")
	}
	if len(variances) != len(means) {
		return nil, fmt.Errorf("score: %d means but %d variances", len(means), len(variances))
	}
	dim := pipe.Dim()
	g := &Gaussian{
		pipe:   pipe,
		means:  means,
		invVar: make([][]float64, len(means)),
		gconst: make([]float64, len(means)),
	}
	for i := range means {
		if len(means[i]) != dim || len(variances[i]) != dim {
			return nil, fmt.Errorf("score: symbol %d: dimension mismatch (pipeline dim %d)", i+1, dim)
		}
		g.invVar[i] = make([]float64, dim)
		logDet := 0.0
		for d, v := range variances[i] {
			if v <= 0 {
				return nil, fmt.Errorf("score: symbol %d: non-positive variance", i+1)
			}
			g.invVar[i][d] = 1.0 / v
			logDet += math.Log(v)
		}
		g.gconst[i] = float64(dim)/2.0*math.Log(2*math.Pi) + 0.5*logDet
	}
	return g, nil
}

// Cost implements Source.
func (g *Gaussian) Cost(frame, symbol int) float64 {
	j := symbol - 1
	if j < 0 || j >= len(g.means) {
		return mathutil.InfCost
	}
	x, ok := g.pipe.Frame(frame)
	if !ok {
		return mathutil.InfCost
	}
	maha := 0.0
	mean, inv := g.means[j], g.invVar[j]
	for d := range x {
		diff := x[d] - mean[d]
		maha += diff * diff * inv[d]
	}
	return 0.5*maha + g.gconst[j]
}

// NumFramesReady implements Source.
func (g *Gaussian) NumFramesReady() int { return g.pipe.NumFramesReady() }

// Finished implements Source.
func (g *Gaussian) Finished() bool { return g.pipe.Finished() }
