package fst

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVectorFstBasics(t *testing.T) {
	g := NewVectorFst()
	require.Equal(t, NoState, g.Start())
	require.Equal(t, 0, g.NumStates())

	s0 := g.AddState()
	s1 := g.AddState()
	g.SetStart(s0)
	g.SetFinal(s1, 1.5)
	g.AddArc(s0, Arc{Next: s1, In: 3, Out: 4, Weight: 0.5})

	require.Equal(t, s0, g.Start())
	require.Equal(t, 2, g.NumStates())

	cost, ok := g.Final(s1)
	require.True(t, ok)
	require.Equal(t, 1.5, cost)
	_, ok = g.Final(s0)
	require.False(t, ok)

	arcs := g.Arcs(s0)
	require.Len(t, arcs, 1)
	require.Equal(t, Arc{Next: s1, In: 3, Out: 4, Weight: 0.5}, arcs[0])
	require.Empty(t, g.Arcs(s1))
	require.Empty(t, g.Arcs(99))
}

func TestArcIsEpsilon(t *testing.T) {
	require.True(t, Arc{Out: 0, In: 5}.IsEpsilon())
	require.False(t, Arc{Out: 1}.IsEpsilon())
}

func TestLinearLabels(t *testing.T) {
	g := NewVectorFst()
	s0 := g.AddState()
	s1 := g.AddState()
	s2 := g.AddState()
	g.SetStart(s0)
	g.AddArc(s0, Arc{Next: s1, In: 1, Out: 10, Weight: 0.5})
	g.AddArc(s1, Arc{Next: s2, In: 2, Out: 20, Weight: 0.25})
	g.SetFinal(s2, 1.0)

	in, out, total, err := LinearLabels(g)
	require.NoError(t, err)
	require.Equal(t, []int32{1, 2}, in)
	require.Equal(t, []int32{10, 20}, out)
	require.InDelta(t, 1.75, total, 1e-12)
}

func TestLinearLabelsErrors(t *testing.T) {
	t.Run("no start", func(t *testing.T) {
		g := NewVectorFst()
		g.AddState()
		_, _, _, err := LinearLabels(g)
		require.Error(t, err)
	})

	t.Run("branching", func(t *testing.T) {
		g := NewVectorFst()
		s0 := g.AddState()
		s1 := g.AddState()
		g.SetStart(s0)
		g.AddArc(s0, Arc{Next: s1, In: 1, Out: 1})
		g.AddArc(s0, Arc{Next: s1, In: 2, Out: 2})
		_, _, _, err := LinearLabels(g)
		require.Error(t, err)
	})

	t.Run("non-final end", func(t *testing.T) {
		g := NewVectorFst()
		s0 := g.AddState()
		g.SetStart(s0)
		_, _, _, err := LinearLabels(g)
		require.Error(t, err)
	})

	t.Run("cycle", func(t *testing.T) {
		g := NewVectorFst()
		s0 := g.AddState()
		g.SetStart(s0)
		g.AddArc(s0, Arc{Next: s0, In: 1, Out: 1})
		_, _, _, err := LinearLabels(g)
		require.Error(t, err)
	})
}

func TestReadText(t *testing.T) {
	text := `
# two-state acceptor
0	1	1	1	0.5
0	1	2	2	1
1	1	3	0	0.25
1	2.5
`
	g, err := ReadText(strings.NewReader(text))
	require.NoError(t, err)
	require.Equal(t, StateID(0), g.Start())
	require.Equal(t, 2, g.NumStates())
	require.Len(t, g.Arcs(0), 2)
	require.Len(t, g.Arcs(1), 1)
	require.True(t, g.Arcs(1)[0].IsEpsilon())

	cost, ok := g.Final(1)
	require.True(t, ok)
	require.Equal(t, 2.5, cost)
}

func TestReadTextErrors(t *testing.T) {
	for name, text := range map[string]string{
		"bad state":       "x 1 1 1 0.5",
		"bad weight":      "0 1 1 1 abc",
		"bad field count": "0 1 1",
		"negative state":  "-1 0 1 1",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ReadText(strings.NewReader(text))
			require.Error(t, err)
		})
	}
}

func TestTextRoundTrip(t *testing.T) {
	g := NewVectorFst()
	s0 := g.AddState()
	s1 := g.AddState()
	g.SetStart(s0)
	g.AddArc(s0, Arc{Next: s1, In: 1, Out: 2, Weight: 0.5})
	g.AddArc(s1, Arc{Next: s0, In: 0, Out: 0, Weight: 1})
	g.SetFinal(s1, 0.75)

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, g))

	back, err := ReadText(&buf)
	require.NoError(t, err)
	require.Equal(t, g.Start(), back.Start())
	require.Equal(t, g.NumStates(), back.NumStates())
	require.Equal(t, g.Arcs(s0), back.Arcs(s0))
	require.Equal(t, g.Arcs(s1), back.Arcs(s1))
	cost, ok := back.Final(s1)
	require.True(t, ok)
	require.Equal(t, 0.75, cost)
}
