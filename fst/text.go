package fst

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ReadText reads an automaton in text format. Each line is either an arc
//
//	src dst ilabel olabel [weight]
//
// or a final-state declaration
//
//	state [cost]
//
// States are numeric and created on first mention; the source state of the
// first line becomes the start state. Missing weights default to 0.
func ReadText(r io.Reader) (*VectorFst, error) {
	f := NewVectorFst()
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch len(fields) {
		case 1, 2:
			s, err := parseState(fields[0])
			if err != nil {
				return nil, fmt.Errorf("fst: line %d: %w", lineNo, err)
			}
			f.ensure(s)
			cost := 0.0
			if len(fields) == 2 {
				cost, err = strconv.ParseFloat(fields[1], 64)
				if err != nil {
					return nil, fmt.Errorf("fst: line %d: bad final cost %q", lineNo, fields[1])
				}
			}
			f.SetFinal(s, cost)
		case 4, 5:
			src, err := parseState(fields[0])
			if err != nil {
				return nil, fmt.Errorf("fst: line %d: %w", lineNo, err)
			}
			dst, err := parseState(fields[1])
			if err != nil {
				return nil, fmt.Errorf("fst: line %d: %w", lineNo, err)
			}
			in, err := strconv.ParseInt(fields[2], 10, 32)
			if err != nil {
				return nil, fmt.Errorf("fst: line %d: bad input label %q", lineNo, fields[2])
			}
			out, err := strconv.ParseInt(fields[3], 10, 32)
			if err != nil {
				return nil, fmt.Errorf("fst: line %d: bad output label %q", lineNo, fields[3])
			}
			weight := 0.0
			if len(fields) == 5 {
				weight, err = strconv.ParseFloat(fields[4], 64)
				if err != nil {
					return nil, fmt.Errorf("fst: line %d: bad weight %q", lineNo, fields[4])
				}
			}
			f.ensure(src)
			f.ensure(dst)
			if f.start == NoState {
				f.SetStart(src)
			}
			f.AddArc(src, Arc{Next: dst, In: int32(in), Out: int32(out), Weight: weight})
		default:
			return nil, fmt.Errorf("fst: line %d: expected 1, 2, 4 or 5 fields, got %d", lineNo, len(fields))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("fst: read: %w", err)
	}
	return f, nil
}

// WriteText writes f in the text format accepted by ReadText. The start
// state's arcs are written first so a round trip preserves the start state.
func WriteText(w io.Writer, f Fst) error {
	bw := bufio.NewWriter(w)
	order := make([]StateID, 0, f.NumStates())
	if s := f.Start(); s != NoState {
		order = append(order, s)
	}
	for i := 0; i < f.NumStates(); i++ {
		if StateID(i) != f.Start() {
			order = append(order, StateID(i))
		}
	}
	for _, s := range order {
		for _, a := range f.Arcs(s) {
			if _, err := fmt.Fprintf(bw, "%d\t%d\t%d\t%d\t%g\n", s, a.Next, a.In, a.Out, a.Weight); err != nil {
				return fmt.Errorf("fst: write: %w", err)
			}
		}
		if cost, ok := f.Final(s); ok {
			if _, err := fmt.Fprintf(bw, "%d\t%g\n", s, cost); err != nil {
				return fmt.Errorf("fst: write: %w", err)
			}
		}
	}
	return bw.Flush()
}

func parseState(s string) (StateID, error) {
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil || n < 0 {
		return NoState, fmt.Errorf("bad state id %q", s)
	}
	return StateID(n), nil
}

// ensure grows the state table so that s is a valid state.
func (f *VectorFst) ensure(s StateID) {
	for int(s) >= len(f.arcs) {
		f.AddState()
	}
}
