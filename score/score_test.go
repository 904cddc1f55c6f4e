package score

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ieee0824/beamdecode-go/feature"
)

func TestMatrixFeed(t *testing.T) {
	m := NewMatrix(nil)
	require.Equal(t, 0, m.NumFramesReady())
	require.False(t, m.Finished())
	require.True(t, math.IsInf(m.Cost(0, 1), 1))

	m.Feed([]float64{1, 2}, []float64{3, 4})
	require.Equal(t, 2, m.NumFramesReady())
	require.Equal(t, 1.0, m.Cost(0, 1))
	require.Equal(t, 4.0, m.Cost(1, 2))

	// Out of range: unknown symbol, epsilon, unseen frame.
	require.True(t, math.IsInf(m.Cost(0, 3), 1))
	require.True(t, math.IsInf(m.Cost(0, 0), 1))
	require.True(t, math.IsInf(m.Cost(2, 1), 1))

	m.Finish()
	require.True(t, m.Finished())
	require.Panics(t, func() { m.Feed([]float64{5}) })
}

func TestMatrixConcurrentFeed(t *testing.T) {
	m := NewMatrix(nil)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			m.Feed([]float64{float64(i)})
		}
		m.Finish()
	}()

	// Reader only touches frames whose availability was confirmed.
	seen := 0
	for !m.Finished() || seen < m.NumFramesReady() {
		ready := m.NumFramesReady()
		for ; seen < ready; seen++ {
			require.Equal(t, float64(seen), m.Cost(seen, 1))
		}
	}
	wg.Wait()
	require.Equal(t, 100, seen)
}

func TestScaled(t *testing.T) {
	m := NewMatrix([][]float64{{2, 4}})
	m.Finish()
	s := NewScaled(m, 0.5)

	require.Equal(t, 1.0, s.Cost(0, 1))
	require.Equal(t, 2.0, s.Cost(0, 2))
	require.Equal(t, 1, s.NumFramesReady())
	require.True(t, s.Finished())
}

func TestGaussian(t *testing.T) {
	buf := feature.NewBuffer(1)
	buf.Push([]float64{0})
	buf.Push([]float64{5})
	buf.Close()

	g, err := NewGaussian(buf,
		[][]float64{{0}, {5}},
		[][]float64{{1}, {1}},
	)
	require.NoError(t, err)
	require.Equal(t, 2, g.NumFramesReady())
	require.True(t, g.Finished())

	// Each frame must be cheaper under its own symbol's Gaussian.
	require.Less(t, g.Cost(0, 1), g.Cost(0, 2))
	require.Less(t, g.Cost(1, 2), g.Cost(1, 1))

	// A frame at the mean costs exactly the normalization constant.
	require.InDelta(t, 0.5*math.Log(2*math.Pi), g.Cost(0, 1), 1e-12)

	// Unknown symbols and unready frames are impossible.
	require.True(t, math.IsInf(g.Cost(0, 3), 1))
	require.True(t, math.IsInf(g.Cost(9, 1), 1))
}

func TestGaussianValidation(t *testing.T) {
	buf := feature.NewBuffer(2)

	_, err := NewGaussian(buf, nil, nil)
	require.Error(t, err)

	_, err = NewGaussian(buf, [][]float64{{0, 0}}, [][]float64{{1, 1}, {1, 1}})
	require.Error(t, err)

	_, err = NewGaussian(buf, [][]float64{{0}}, [][]float64{{1}})
	require.Error(t, err) // dimension mismatch

	_, err = NewGaussian(buf, [][]float64{{0, 0}}, [][]float64{{1, 0}})
	require.Error(t, err) // non-positive variance
}
