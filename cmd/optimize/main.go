// Package main provides a derivative-free search for tree parameters whose
// skeleton matches a target height, crown width and branch count.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/Akodiat/treeCultivator/config"
	"github.com/Akodiat/treeCultivator/params"
	"github.com/Akodiat/treeCultivator/tree"
)

// formatDuration formats a duration as HH:MM:SS or MM:SS for shorter durations.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	variant := flag.String("variant", "", "Variant to start from (empty = use config)")
	height := flag.Float64("height", 0, "Target tree height (0 = ignore)")
	width := flag.Float64("width", 0, "Target crown width (0 = ignore)")
	branches := flag.Float64("branches", 0, "Target branch count (0 = ignore)")
	maxBranches := flag.Int("max-branches", tree.DefaultMaxBranches, "Branch cap per tree")
	maxEvals := flag.Int("max-evals", 400, "Maximum number of evaluations")
	seed := flag.Uint64("seed", 1, "RNG seed for keys the variant leaves unset")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	if *height == 0 && *width == 0 && *branches == 0 {
		log.Fatal("at least one of --height, --width, --branches is required")
	}

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg := config.Cfg()
	if *variant != "" {
		if err := cfg.SelectVariant(*variant); err != nil {
			log.Fatalf("invalid variant: %v", err)
		}
	}

	v := cfg.Derived.Variant
	start, err := FromTemplate(v.Template(), rand.New(rand.NewPCG(*seed, *seed)))
	if err != nil {
		log.Fatalf("invalid variant template: %v", err)
	}

	pv := NewParamVector(v.Seed, v.Segments)
	target := Shape{Height: *height, Width: *width, Branches: *branches}
	evaluator := NewFitnessEvaluator(pv, target, *maxBranches)

	logPath := filepath.Join(*outputDir, "optimize_log.csv")
	logFile, err := os.Create(logPath)
	if err != nil {
		log.Fatalf("failed to create log file: %v", err)
	}
	defer logFile.Close()

	evalLog, err := NewEvalLog(logFile, pv.Defs)
	if err != nil {
		log.Fatalf("failed to start log: %v", err)
	}

	startTime := time.Now()
	progress := func(eval int, fitness, best float64) {
		if eval%25 != 0 {
			return
		}
		if err := evalLog.Flush(); err != nil {
			log.Printf("log write failed: %v", err)
		}
		fmt.Printf("Eval %d/%d: fitness=%.4f (best=%.4f) | elapsed: %s\n",
			eval, *maxEvals, fitness, best, formatDuration(time.Since(startTime)))
	}

	fmt.Printf("Starting Nelder-Mead search over %d parameters, max_evals=%d\n", pv.Dim(), *maxEvals)
	fmt.Printf("Target: height=%.2f width=%.2f branches=%.0f\n", target.Height, target.Width, target.Branches)

	res, err := Search(evaluator, start, *maxEvals, evalLog, progress)
	if err != nil {
		log.Printf("search: %v", err)
	}
	if err := evalLog.Flush(); err != nil {
		log.Printf("failed to write %s: %v", logPath, err)
	}
	bestSet := res.Best

	fmt.Printf("\nSearch complete after %d evaluations in %s\n", res.Evals, formatDuration(time.Since(startTime)))
	fmt.Printf("Best fitness: %.6f\n", res.Fitness)
	fmt.Printf("\nBest parameters:\n%s", bestSet.Format())

	paramsPath := filepath.Join(*outputDir, "best_params.yaml")
	if err := os.WriteFile(paramsPath, []byte(bestSet.Format()), 0644); err != nil {
		log.Printf("failed to write best params: %v", err)
	}

	applyToConfig(cfg, bestSet)
	configOutPath := filepath.Join(*outputDir, "best_config.yaml")
	if err := cfg.WriteYAML(configOutPath); err != nil {
		log.Printf("failed to write best config: %v", err)
	} else {
		fmt.Printf("\nBest config saved to: %s\n", configOutPath)
	}
}

// applyToConfig stores s as the values of the selected variant.
func applyToConfig(cfg *config.Config, s params.Set) {
	v := cfg.Variants[cfg.Variant]
	v.Values = make(map[string]float64, params.Count)
	for k, val := range s.Map() {
		v.Values[string(k)] = val
	}
	cfg.Variants[cfg.Variant] = v
}
