// Package beamdecode ties a decoding graph, a score source and the
// token-passing decoder into a single-call recognition surface.
package beamdecode

import (
	"fmt"
	"log/slog"

	"github.com/ieee0824/beamdecode-go/decoder"
	"github.com/ieee0824/beamdecode-go/fst"
	"github.com/ieee0824/beamdecode-go/score"
)

// Recognizer runs run-to-completion decodes over a fixed graph. The graph is
// read-only and may be shared by any number of Recognizers and Decoders.
type Recognizer struct {
	Graph         fst.Fst
	Opts          decoder.Options
	AcousticScale float64 // multiplier applied to every acoustic cost; 1 = off

	log *slog.Logger
}

// Option configures a Recognizer.
type Option func(*Recognizer)

// WithDecoderOptions sets custom beam search parameters.
func WithDecoderOptions(opts decoder.Options) Option {
	return func(r *Recognizer) {
		r.Opts = opts
	}
}

// WithAcousticScale scales all acoustic costs before decoding.
func WithAcousticScale(scale float64) Option {
	return func(r *Recognizer) {
		r.AcousticScale = scale
	}
}

// WithLogger sets the logger for per-utterance summaries.
func WithLogger(log *slog.Logger) Option {
	return func(r *Recognizer) {
		r.log = log
	}
}

// NewRecognizer creates a Recognizer over graph. Options are validated here
// so misconfiguration fails before the first utterance.
func NewRecognizer(graph fst.Fst, opts ...Option) (*Recognizer, error) {
	r := &Recognizer{
		Graph:         graph,
		Opts:          decoder.DefaultOptions(),
		AcousticScale: 1.0,
		log:           slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if graph == nil {
		return nil, fmt.Errorf("beamdecode: nil graph")
	}
	if err := r.Opts.Check(); err != nil {
		return nil, err
	}
	return r, nil
}

// NewDecoder creates a fresh incremental decoder over the recognizer's graph
// for callers that drive Advance themselves.
func (r *Recognizer) NewDecoder() (*decoder.Decoder, error) {
	return decoder.New(r.Graph, r.Opts)
}

// Recognize decodes one utterance to completion and extracts the best path.
// An exhausted search returns decoder.ErrNoPath; the caller should treat the
// utterance as undecodable and move on.
func (r *Recognizer) Recognize(src score.Source) (*decoder.Result, error) {
	if r.AcousticScale != 1.0 {
		src = score.NewScaled(src, r.AcousticScale)
	}
	dec, err := decoder.New(r.Graph, r.Opts)
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(src); err != nil {
		return nil, err
	}
	path, err := dec.BestPath(true)
	if err != nil {
		r.log.Warn("utterance undecodable",
			"frames", dec.NumFramesDecoded(),
			"error", err)
		return nil, err
	}
	res, err := decoder.ResultFromPath(path, dec.NumFramesDecoded(), dec.ReachedFinal())
	if err != nil {
		return nil, err
	}
	r.log.Debug("utterance decoded",
		"frames", res.Frames,
		"cost", res.Cost,
		"outputs", len(res.Outputs),
		"reached_final", res.ReachedFinal)
	return res, nil
}
