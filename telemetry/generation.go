package telemetry

import (
	"log/slog"
	"time"

	"github.com/Akodiat/treeCultivator/evolve"
	"github.com/Akodiat/treeCultivator/genome"
	"github.com/Akodiat/treeCultivator/params"
)

// GenerationRecord summarizes one generation change.
type GenerationRecord struct {
	Generation int    `csv:"generation"`
	Selected   int    `csv:"selected"` // -1 when seeded
	Timestamp  string `csv:"timestamp"`

	// Normalized distance of each slot from the winner (or from slot 0 when seeded)
	DistMean float64 `csv:"dist_mean"`
	DistStd  float64 `csv:"dist_std"`
	DistP50  float64 `csv:"dist_p50"`
	DistMax  float64 `csv:"dist_max"`

	// Distance the winner moved from the previous winner
	WinnerStep float64 `csv:"winner_step"`

	// Seconds since the previous generation (decision time)
	ElapsedSec float64 `csv:"elapsed_sec"`
}

// LogValue implements slog.LogValuer for structured logging.
func (r GenerationRecord) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("generation", r.Generation),
		slog.Int("selected", r.Selected),
		slog.Float64("dist_mean", r.DistMean),
		slog.Float64("dist_max", r.DistMax),
		slog.Float64("winner_step", r.WinnerStep),
		slog.Float64("elapsed_sec", r.ElapsedSec),
	)
}

// LineageRecord is the winner's full parameter set for one generation.
type LineageRecord struct {
	Generation          int     `csv:"generation"`
	Selected            int     `csv:"selected"`
	Seed                int64   `csv:"seed"`
	Segments            int     `csv:"segments"`
	Levels              float64 `csv:"levels"`
	VMultiplier         float64 `csv:"vMultiplier"`
	TwigScale           float64 `csv:"twigScale"`
	InitialBranchLength float64 `csv:"initalBranchLength"`
	LengthFalloffFactor float64 `csv:"lengthFalloffFactor"`
	LengthFalloffPower  float64 `csv:"lengthFalloffPower"`
	ClumpMax            float64 `csv:"clumpMax"`
	ClumpMin            float64 `csv:"clumpMin"`
	BranchFactor        float64 `csv:"branchFactor"`
	DropAmount          float64 `csv:"dropAmount"`
	GrowAmount          float64 `csv:"growAmount"`
	SweepAmount         float64 `csv:"sweepAmount"`
	MaxRadius           float64 `csv:"maxRadius"`
	ClimbRate           float64 `csv:"climbRate"`
	TrunkKink           float64 `csv:"trunkKink"`
	TreeSteps           float64 `csv:"treeSteps"`
	TaperRate           float64 `csv:"taperRate"`
	RadiusFalloffRate   float64 `csv:"radiusFalloffRate"`
	TwistRate           float64 `csv:"twistRate"`
	TrunkLength         float64 `csv:"trunkLength"`
}

// NewLineageRecord flattens s into a CSV row.
func NewLineageRecord(generation, selected int, s params.Set) LineageRecord {
	return LineageRecord{
		Generation:          generation,
		Selected:            selected,
		Seed:                s.Seed,
		Segments:            s.Segments,
		Levels:              s.Get(params.Levels),
		VMultiplier:         s.Get(params.VMultiplier),
		TwigScale:           s.Get(params.TwigScale),
		InitialBranchLength: s.Get(params.InitialBranchLength),
		LengthFalloffFactor: s.Get(params.LengthFalloffFactor),
		LengthFalloffPower:  s.Get(params.LengthFalloffPower),
		ClumpMax:            s.Get(params.ClumpMax),
		ClumpMin:            s.Get(params.ClumpMin),
		BranchFactor:        s.Get(params.BranchFactor),
		DropAmount:          s.Get(params.DropAmount),
		GrowAmount:          s.Get(params.GrowAmount),
		SweepAmount:         s.Get(params.SweepAmount),
		MaxRadius:           s.Get(params.MaxRadius),
		ClimbRate:           s.Get(params.ClimbRate),
		TrunkKink:           s.Get(params.TrunkKink),
		TreeSteps:           s.Get(params.TreeSteps),
		TaperRate:           s.Get(params.TaperRate),
		RadiusFalloffRate:   s.Get(params.RadiusFalloffRate),
		TwistRate:           s.Get(params.TwistRate),
		TrunkLength:         s.Get(params.TrunkLength),
	}
}

// Recorder observes a controller and writes one generation and one lineage
// row per generation change.
type Recorder struct {
	out    *OutputManager
	logger *slog.Logger
	now    func() time.Time

	last       time.Time
	prevWinner *genome.Genome
	history    []GenerationRecord
}

// NewRecorder creates a recorder writing to out, which may be nil.
func NewRecorder(out *OutputManager, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{out: out, logger: logger, now: time.Now}
}

// Observe is an evolve.Observer.
func (r *Recorder) Observe(ev evolve.Event) {
	now := r.now()
	rec := r.record(ev, now)
	r.history = append(r.history, rec)

	if err := r.out.WriteGeneration(rec); err != nil {
		r.logger.Error("writing generation", "error", err)
	}
	if ev.Selected >= 0 {
		if err := r.out.WriteLineage(NewLineageRecord(ev.Generation, ev.Selected, ev.Winner)); err != nil {
			r.logger.Error("writing lineage", "error", err)
		}
	}
	r.logger.Debug("generation recorded", "record", rec)
}

// History returns every record observed so far.
func (r *Recorder) History() []GenerationRecord {
	return r.history
}

func (r *Recorder) record(ev evolve.Event, now time.Time) GenerationRecord {
	rec := GenerationRecord{
		Generation: ev.Generation,
		Selected:   ev.Selected,
		Timestamp:  now.UTC().Format(time.RFC3339Nano),
	}
	if !r.last.IsZero() {
		rec.ElapsedSec = now.Sub(r.last).Seconds()
	}
	r.last = now

	if len(ev.Slots) == 0 {
		return rec
	}

	ref := genome.FromSet(ev.Slots[0])
	if ev.Selected >= 0 {
		ref = genome.FromSet(ev.Winner)
	}
	dists := make([]float64, 0, len(ev.Slots))
	for _, s := range ev.Slots {
		dists = append(dists, ref.Distance(genome.FromSet(s)))
	}
	spread := ComputeSpread(dists)
	rec.DistMean, rec.DistStd, rec.DistP50, rec.DistMax = spread.Mean, spread.Std, spread.P50, spread.Max

	if ev.Selected >= 0 {
		if r.prevWinner != nil {
			rec.WinnerStep = r.prevWinner.Distance(ref)
		}
		r.prevWinner = ref
	} else {
		r.prevWinner = nil
	}
	return rec
}
