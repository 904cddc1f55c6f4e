// Package score defines the decodable interface: a pull-based, frame-indexed
// provider of per-symbol acoustic costs, plus concrete sources backed by a
// cost matrix or a feature pipeline.
package score

import (
	"sync"

	"github.com/ieee0824/beamdecode-go/internal/mathutil"
)

// Source supplies acoustic costs to the decoder. A Source may be fed
// concurrently by an upstream pipeline; the decoder only ever queries frames
// whose availability NumFramesReady has confirmed.
type Source interface {
	// Cost returns the acoustic cost of emitting symbol at frame.
	// Symbols are 1-based; 0 is reserved for epsilon and is never queried.
	Cost(frame, symbol int) float64
	// NumFramesReady returns how many frames may currently be queried.
	// It is monotonically non-decreasing while the upstream feed is live.
	NumFramesReady() int
	// Finished reports that no more frames will ever arrive.
	Finished() bool
}

// Matrix is a Source backed by an append-only matrix of costs: row f holds
// the costs of frame f, column j the cost of symbol j+1. Feed and Finish may
// be called from a goroutine other than the decoding one.
type Matrix struct {
	mu       sync.Mutex
	rows     [][]float64
	finished bool
}

// NewMatrix creates a Matrix pre-loaded with the given rows. A nil argument
// creates an empty source to be filled by Feed.
func NewMatrix(rows [][]float64) *Matrix {
	return &Matrix{rows: rows}
}

// Feed appends frames of costs. Calling Feed after Finish panics: the feed
// contract promised no more frames.
func (m *Matrix) Feed(rows ...[]float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.finished {
		panic("score: Feed after Finish")
	}
	m.rows = append(m.rows, rows...)
}

// Finish marks the end of the stream.
func (m *Matrix) Finish() {
	m.mu.Lock()
	m.finished = true
	m.mu.Unlock()
}

// Cost implements Source. Out-of-range frames or symbols cost +Inf, so
// hypotheses relying on them are never retained.
func (m *Matrix) Cost(frame, symbol int) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if frame < 0 || frame >= len(m.rows) {
		return mathutil.InfCost
	}
	j := symbol - 1
	if j < 0 || j >= len(m.rows[frame]) {
		return mathutil.InfCost
	}
	return m.rows[frame][j]
}

// NumFramesReady implements Source.
func (m *Matrix) NumFramesReady() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

// Finished implements Source.
func (m *Matrix) Finished() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.finished
}

// Scaled wraps a Source, multiplying every cost by a fixed acoustic scale.
type Scaled struct {
	Src   Source
	Scale float64
}

// NewScaled wraps src with the given scale.
func NewScaled(src Source, scale float64) *Scaled {
	return &Scaled{Src: src, Scale: scale}
}

// Cost implements Source.
func (s *Scaled) Cost(frame, symbol int) float64 {
	return s.Scale * s.Src.Cost(frame, symbol)
}

// NumFramesReady implements Source.
func (s *Scaled) NumFramesReady() int { return s.Src.NumFramesReady() }

// Finished implements Source.
func (s *Scaled) Finished() bool { return s.Src.Finished() }
