package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	beamdecode "github.com/ieee0824/beamdecode-go"
	"github.com/ieee0824/beamdecode-go/decoder"
	"github.com/ieee0824/beamdecode-go/fst"
	"github.com/ieee0824/beamdecode-go/score"
)

func newDecodeCmd() *cobra.Command {
	var (
		graphPath  string
		scoresPath string
		configPath string
		chunk      int
		verbose    bool
	)
	cfg := defaultConfig()

	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Decode a score matrix against a graph and print the best path",
		RunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
			slog.SetDefault(log)

			// File config applies only where the flag was not set explicitly.
			if configPath != "" {
				fileCfg := cfg
				if err := loadConfig(configPath, &fileCfg); err != nil {
					return err
				}
				applyUnset(cmd, &cfg, fileCfg)
			}
			if err := cfg.validate(); err != nil {
				return err
			}

			graphFile, err := os.Open(graphPath)
			if err != nil {
				return fmt.Errorf("open graph: %w", err)
			}
			defer graphFile.Close()
			graph, err := fst.ReadText(graphFile)
			if err != nil {
				return fmt.Errorf("load graph: %w", err)
			}

			rows, err := readScores(scoresPath)
			if err != nil {
				return fmt.Errorf("load scores: %w", err)
			}
			log.Debug("inputs loaded", "states", graph.NumStates(), "frames", len(rows))

			var res *decoder.Result
			if chunk > 0 {
				res, err = decodeChunked(graph, cfg, rows, chunk)
			} else {
				res, err = decodeWhole(graph, cfg, rows)
			}
			if err != nil {
				return err
			}

			out := make([]string, len(res.Outputs))
			for i, l := range res.Outputs {
				out[i] = strconv.Itoa(int(l))
			}
			fmt.Println(strings.Join(out, " "))
			if verbose {
				log.Info("decoded",
					"frames", res.Frames,
					"cost", res.Cost,
					"reached_final", res.ReachedFinal)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&graphPath, "graph", "", "path to decoding graph (text format)")
	cmd.Flags().StringVar(&scoresPath, "scores", "", "path to per-frame cost matrix")
	cmd.Flags().StringVar(&configPath, "config", "", "path to YAML configuration file")
	cmd.Flags().IntVar(&chunk, "chunk", 0, "feed scores N frames at a time through the incremental API (0 = all at once)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	cmd.Flags().Float64Var(&cfg.Beam, "beam", cfg.Beam, "beam width")
	cmd.Flags().IntVar(&cfg.MaxActive, "max-active", cfg.MaxActive, "maximum active hypotheses per frame")
	cmd.Flags().IntVar(&cfg.MinActive, "min-active", cfg.MinActive, "minimum active hypotheses per frame")
	cmd.Flags().Float64Var(&cfg.BeamDelta, "beam-delta", cfg.BeamDelta, "adaptive beam step")
	cmd.Flags().Float64Var(&cfg.HashRatio, "hash-ratio", cfg.HashRatio, "frontier capacity ratio")
	cmd.Flags().Float64Var(&cfg.AcousticScale, "acoustic-scale", cfg.AcousticScale, "acoustic cost scale")
	_ = cmd.MarkFlagRequired("graph")
	_ = cmd.MarkFlagRequired("scores")

	return cmd
}

// applyUnset copies file-config fields into cfg for every flag the user did
// not set on the command line.
func applyUnset(cmd *cobra.Command, cfg *config, file config) {
	if !cmd.Flags().Changed("beam") {
		cfg.Beam = file.Beam
	}
	if !cmd.Flags().Changed("max-active") {
		cfg.MaxActive = file.MaxActive
	}
	if !cmd.Flags().Changed("min-active") {
		cfg.MinActive = file.MinActive
	}
	if !cmd.Flags().Changed("beam-delta") {
		cfg.BeamDelta = file.BeamDelta
	}
	if !cmd.Flags().Changed("hash-ratio") {
		cfg.HashRatio = file.HashRatio
	}
	if !cmd.Flags().Changed("acoustic-scale") {
		cfg.AcousticScale = file.AcousticScale
	}
}

func decodeWhole(graph fst.Fst, cfg config, rows [][]float64) (*decoder.Result, error) {
	rec, err := newRecognizer(graph, cfg)
	if err != nil {
		return nil, err
	}
	src := score.NewMatrix(rows)
	src.Finish()
	return rec.Recognize(src)
}

// decodeChunked drives the incremental API, feeding the matrix a chunk of
// frames at a time the way a live feed would.
func decodeChunked(graph fst.Fst, cfg config, rows [][]float64, chunk int) (*decoder.Result, error) {
	rec, err := newRecognizer(graph, cfg)
	if err != nil {
		return nil, err
	}
	dec, err := rec.NewDecoder()
	if err != nil {
		return nil, err
	}
	if err := dec.Init(); err != nil {
		return nil, err
	}
	src := score.NewMatrix(nil)
	var feed score.Source = src
	if cfg.AcousticScale != 1.0 {
		feed = score.NewScaled(src, cfg.AcousticScale)
	}
	for start := 0; start < len(rows); start += chunk {
		end := start + chunk
		if end > len(rows) {
			end = len(rows)
		}
		src.Feed(rows[start:end]...)
		if err := dec.Advance(feed, -1); err != nil {
			return nil, err
		}
	}
	src.Finish()
	if err := dec.Advance(feed, -1); err != nil {
		return nil, err
	}
	path, err := dec.BestPath(true)
	if err != nil {
		return nil, err
	}
	return decoder.ResultFromPath(path, dec.NumFramesDecoded(), dec.ReachedFinal())
}

func newRecognizer(graph fst.Fst, cfg config) (*beamdecode.Recognizer, error) {
	return beamdecode.NewRecognizer(graph,
		beamdecode.WithDecoderOptions(cfg.decoderOptions()),
		beamdecode.WithAcousticScale(cfg.AcousticScale),
	)
}

// readScores parses a whitespace-separated cost matrix, one frame per line.
func readScores(path string) ([][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var rows [][]float64
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		row := make([]float64, len(fields))
		for i, field := range fields {
			row[i], err = strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: bad cost %q", lineNo, field)
			}
		}
		rows = append(rows, row)
	}
	return rows, scanner.Err()
}
