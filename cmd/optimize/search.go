package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"gonum.org/v1/gonum/optimize"

	"github.com/Akodiat/treeCultivator/params"
)

// EvalLog writes one CSV row per evaluation: index, fitness, measured
// shape, then every parameter value.
type EvalLog struct {
	w *csv.Writer
}

// NewEvalLog writes the header row to w.
func NewEvalLog(w io.Writer, defs []params.Definition) (*EvalLog, error) {
	l := &EvalLog{w: csv.NewWriter(w)}
	header := []string{"eval", "fitness", "height", "width", "branches"}
	for _, d := range defs {
		header = append(header, string(d.Key))
	}
	if err := l.w.Write(header); err != nil {
		return nil, fmt.Errorf("writing log header: %w", err)
	}
	return l, nil
}

// Write appends one evaluation.
func (l *EvalLog) Write(eval int, fitness float64, shape Shape, s params.Set) error {
	row := []string{
		strconv.Itoa(eval),
		fmt.Sprintf("%.6f", fitness),
		fmt.Sprintf("%.3f", shape.Height),
		fmt.Sprintf("%.3f", shape.Width),
		fmt.Sprintf("%.0f", shape.Branches),
	}
	for _, val := range s.Values {
		row = append(row, fmt.Sprintf("%.6f", val))
	}
	return l.w.Write(row)
}

// Flush writes buffered rows and reports any write error so far.
func (l *EvalLog) Flush() error {
	l.w.Flush()
	return l.w.Error()
}

// SearchResult is the best set seen during a search.
type SearchResult struct {
	Best    params.Set
	Fitness float64
	Evals   int
}

// Progress is called after every evaluation.
type Progress func(eval int, fitness, best float64)

// Search minimizes the evaluator's fitness with Nelder-Mead, starting at
// start, for at most maxEvals evaluations. The start set counts as a
// candidate, so the result is never worse than it. Log write errors stop
// nothing but the first one is returned.
func Search(ev *FitnessEvaluator, start params.Set, maxEvals int, log *EvalLog, progress Progress) (SearchResult, error) {
	pv := ev.params
	res := SearchResult{Best: start, Fitness: ev.EvaluateSet(start)}
	var logErr error

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			s := pv.Denormalize(x)
			fitness := ev.EvaluateSet(s)
			res.Evals++

			if fitness < res.Fitness {
				res.Fitness = fitness
				res.Best = s
			}
			if log != nil {
				if err := log.Write(res.Evals, fitness, ev.LastShape(), s); err != nil && logErr == nil {
					logErr = fmt.Errorf("writing eval %d: %w", res.Evals, err)
				}
			}
			if progress != nil {
				progress(res.Evals, fitness, res.Fitness)
			}
			return fitness
		},
	}

	settings := &optimize.Settings{
		FuncEvaluations: maxEvals,
		Concurrent:      0, // Sequential evaluation
	}
	method := &optimize.NelderMead{SimplexSize: 0.2}

	if _, err := optimize.Minimize(problem, pv.Normalize(start), settings, method); err != nil {
		return res, fmt.Errorf("optimization ended: %w", err)
	}
	return res, logErr
}
