package main

import (
	"bytes"
	"encoding/csv"
	"errors"
	"testing"

	"github.com/Akodiat/treeCultivator/params"
	"github.com/Akodiat/treeCultivator/tree"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestEvalLogRows(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewEvalLog(&buf, params.Definitions())
	if err != nil {
		t.Fatalf("NewEvalLog: %v", err)
	}
	if err := l.Write(1, 0.5, Shape{Height: 2, Width: 1, Branches: 30}, midSet()); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := l.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header + 1 row, got %d rows", len(rows))
	}
	want := 5 + params.Count
	if len(rows[0]) != want || len(rows[1]) != want {
		t.Errorf("expected %d columns, got %d and %d", want, len(rows[0]), len(rows[1]))
	}
	if rows[0][5] != string(params.Levels) || rows[1][0] != "1" {
		t.Errorf("unexpected cells: header %v, row %v", rows[0][:6], rows[1][:2])
	}
}

func TestEvalLogReportsWriteError(t *testing.T) {
	l, err := NewEvalLog(failingWriter{}, params.Definitions())
	if err != nil {
		t.Fatalf("NewEvalLog: %v", err)
	}
	_ = l.Write(1, 0, Shape{}, midSet())
	if err := l.Flush(); err == nil {
		t.Error("expected flush error from failing writer")
	}
}

func TestSearchRunsNelderMead(t *testing.T) {
	s := midSet()
	target := Measure(tree.Generate(s, 0))
	fe := NewFitnessEvaluator(NewParamVector(s.Seed, s.Segments), target, 0)

	start := s
	start.Values[1] = params.At(1).Range.Min // vMultiplier
	start.Values[3] = params.At(3).Range.Max // initalBranchLength
	startFitness := fe.EvaluateSet(start)

	var buf bytes.Buffer
	l, err := NewEvalLog(&buf, params.Definitions())
	if err != nil {
		t.Fatalf("NewEvalLog: %v", err)
	}
	calls := 0
	res, err := Search(fe, start, 60, l, func(eval int, fitness, best float64) {
		calls++
		if best > fitness {
			t.Errorf("eval %d: best %v worse than current %v", eval, best, fitness)
		}
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if err := l.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	if res.Evals == 0 || calls != res.Evals {
		t.Errorf("evals = %d, progress calls = %d", res.Evals, calls)
	}
	if res.Fitness > startFitness {
		t.Errorf("best fitness %v worse than start %v", res.Fitness, startFitness)
	}
	if !res.Best.InRange() {
		t.Error("best set out of range")
	}
	if res.Best.Seed != s.Seed || res.Best.Segments != s.Segments {
		t.Errorf("structural fields changed: %+v", res.Best)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	if len(rows) != res.Evals+1 {
		t.Errorf("log rows = %d, want %d", len(rows), res.Evals+1)
	}
}
