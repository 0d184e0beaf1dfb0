package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/Akodiat/treeCultivator/config"
	"github.com/Akodiat/treeCultivator/game"
)

// exit is swapped out in tests.
var exit = os.Exit

// mustStart creates the game, or runs cleanup and exits with status 1.
func mustStart(cfg *config.Config, opts game.Options, cleanup func()) *game.Game {
	g, err := game.NewGame(cfg, opts)
	if err != nil {
		slog.Error("failed to start", "error", err)
		if cleanup != nil {
			cleanup()
		}
		exit(1)
		return nil
	}
	return g
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	variant := flag.String("variant", "", "Seed variant to start from (empty = use config)")
	headless := flag.Bool("headless", false, "Run without graphics, selecting random trees")
	generations := flag.Int("generations", 0, "Headless: number of random selections to perform")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	verbose := flag.Bool("v", false, "Debug logging and plain-text selection log on stderr")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
		game.SetLogWriter(os.Stderr)
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	if *variant != "" {
		if err := cfg.SelectVariant(*variant); err != nil {
			slog.Error("invalid variant", "error", err)
			os.Exit(1)
		}
	}

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := game.Options{
		Seed:      rngSeed,
		OutputDir: *outputDir,
		Headless:  *headless,
		Logger:    logger,
	}

	if *headless {
		g := mustStart(cfg, opts, nil)
		defer g.Unload()

		slog.Info("starting headless run",
			"seed", rngSeed,
			"variant", cfg.Variant,
			"generations", *generations,
		)
		if err := g.RunHeadless(*generations); err != nil {
			slog.Error("headless run failed", "error", err)
			g.Unload()
			os.Exit(1)
		}
		return
	}

	// Graphical mode
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Screen.Title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g := mustStart(cfg, opts, rl.CloseWindow)
	defer g.Unload()

	for !rl.WindowShouldClose() {
		g.Update()
		if err := g.Err(); err != nil {
			slog.Error("stopping", "error", err)
			break
		}
		g.Draw()
	}
}
