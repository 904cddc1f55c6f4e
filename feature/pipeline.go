// Package feature provides a streaming, frame-indexed feature transform
// pipeline. Stages wrap one another and expose the same pull interface, so a
// chain can be recomposed without touching its consumers; the decoder never
// sees this package, only a score source built on top of it.
package feature

import "sync"

// Pipeline is a frame-indexed sequence of feature vectors. A frame may be
// requested only once NumFramesReady covers it; stages that need right
// context report fewer ready frames than their upstream until the stream is
// closed.
type Pipeline interface {
	// Frame returns the vector at index i, or false if i is not ready.
	// The returned slice must not be modified by the caller.
	Frame(i int) ([]float64, bool)
	// NumFramesReady returns how many leading frames may be requested.
	NumFramesReady() int
	// Finished reports that no more frames will ever arrive.
	Finished() bool
	// Dim returns the vector dimension produced by this stage.
	Dim() int
}

// Buffer is the root of a pipeline: a slice-backed store fed by Push.
// Push and Close may be called from a goroutine other than the reading one.
type Buffer struct {
	mu     sync.Mutex
	dim    int
	frames [][]float64
	closed bool
}

// NewBuffer creates an empty buffer producing vectors of the given dimension.
func NewBuffer(dim int) *Buffer {
	return &Buffer{dim: dim}
}

// Push appends a frame. The vector is copied; length mismatches panic since
// they indicate a wiring bug, not a runtime condition.
func (b *Buffer) Push(vec []float64) {
	if len(vec) != b.dim {
		panic("feature: frame dimension mismatch")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		panic("feature: Push after Close")
	}
	cp := make([]float64, len(vec))
	copy(cp, vec)
	b.frames = append(b.frames, cp)
}

// Close marks the end of the stream.
func (b *Buffer) Close() {
	b.mu.Lock()
	b.closed = true
	b.mu.Unlock()
}

// Frame implements Pipeline.
func (b *Buffer) Frame(i int) ([]float64, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if i < 0 || i >= len(b.frames) {
		return nil, false
	}
	return b.frames[i], true
}

// NumFramesReady implements Pipeline.
func (b *Buffer) NumFramesReady() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.frames)
}

// Finished implements Pipeline.
func (b *Buffer) Finished() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed
}

// Dim implements Pipeline.
func (b *Buffer) Dim() int { return b.dim }
