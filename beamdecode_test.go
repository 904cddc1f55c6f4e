package beamdecode

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ieee0824/beamdecode-go/decoder"
	"github.com/ieee0824/beamdecode-go/fst"
	"github.com/ieee0824/beamdecode-go/score"
)

// buildDigitGraph builds a two-symbol acceptor: the decoder must choose, per
// frame, between symbol 1 and symbol 2, with both states final.
func buildDigitGraph() *fst.VectorFst {
	g := fst.NewVectorFst()
	start := g.AddState()
	one := g.AddState()
	two := g.AddState()
	g.SetStart(start)
	for _, s := range []fst.StateID{one, two} {
		g.SetFinal(s, 0)
	}
	for _, from := range []fst.StateID{start, one, two} {
		g.AddArc(from, fst.Arc{Next: one, In: 1, Out: 1, Weight: 0})
		g.AddArc(from, fst.Arc{Next: two, In: 2, Out: 2, Weight: 0})
	}
	return g
}

// digitScores prefers symbol 1 on even frames and symbol 2 on odd ones.
func digitScores(frames int) [][]float64 {
	rows := make([][]float64, frames)
	for i := range rows {
		if i%2 == 0 {
			rows[i] = []float64{0, 1}
		} else {
			rows[i] = []float64{1, 0}
		}
	}
	return rows
}

func TestRecognize(t *testing.T) {
	rec, err := NewRecognizer(buildDigitGraph())
	require.NoError(t, err)

	src := score.NewMatrix(digitScores(4))
	src.Finish()
	res, err := rec.Recognize(src)
	require.NoError(t, err)

	require.Equal(t, []int32{1, 2, 1, 2}, res.Outputs)
	require.Equal(t, 4, res.Frames)
	require.True(t, res.ReachedFinal)
	require.Equal(t, 0.0, res.Cost)
}

func TestRecognizeRejectsBadOptions(t *testing.T) {
	opts := decoder.DefaultOptions()
	opts.Beam = -1
	_, err := NewRecognizer(buildDigitGraph(), WithDecoderOptions(opts))
	require.Error(t, err)

	_, err = NewRecognizer(nil)
	require.Error(t, err)
}

func TestRecognizeUndecodable(t *testing.T) {
	// A graph whose only path is shorter than the utterance collapses.
	g := fst.NewVectorFst()
	s0 := g.AddState()
	s1 := g.AddState()
	g.SetStart(s0)
	g.AddArc(s0, fst.Arc{Next: s1, In: 1, Out: 1, Weight: 0})
	g.SetFinal(s1, 0)

	rec, err := NewRecognizer(g)
	require.NoError(t, err)

	src := score.NewMatrix(digitScores(3))
	src.Finish()
	_, err = rec.Recognize(src)
	require.ErrorIs(t, err, decoder.ErrNoPath)
}

// Run-to-completion and incremental chunked decoding must produce identical
// results.
func TestIncrementalMatchesWhole(t *testing.T) {
	rows := digitScores(9)

	rec, err := NewRecognizer(buildDigitGraph())
	require.NoError(t, err)

	whole := score.NewMatrix(rows)
	whole.Finish()
	want, err := rec.Recognize(whole)
	require.NoError(t, err)

	for _, chunk := range []int{1, 2, 4} {
		dec, err := rec.NewDecoder()
		require.NoError(t, err)
		require.NoError(t, dec.Init())
		require.Equal(t, 0, dec.NumFramesDecoded())

		src := score.NewMatrix(nil)
		for start := 0; start < len(rows); start += chunk {
			end := start + chunk
			if end > len(rows) {
				end = len(rows)
			}
			src.Feed(rows[start:end]...)
			require.NoError(t, dec.Advance(src, -1))
			require.Equal(t, end, dec.NumFramesDecoded())
		}
		src.Finish()
		require.NoError(t, dec.Advance(src, -1))

		path, err := dec.BestPath(true)
		require.NoError(t, err)
		got, err := decoder.ResultFromPath(path, dec.NumFramesDecoded(), dec.ReachedFinal())
		require.NoError(t, err)
		require.Equal(t, want, got, "chunk size %d", chunk)
	}
}

func TestAcousticScale(t *testing.T) {
	rec, err := NewRecognizer(buildDigitGraph(), WithAcousticScale(0.5))
	require.NoError(t, err)

	src := score.NewMatrix(digitScores(2))
	src.Finish()
	res, err := rec.Recognize(src)
	require.NoError(t, err)
	require.Equal(t, []int32{1, 2}, res.Outputs)
	require.Equal(t, 0.0, res.Cost)
}
