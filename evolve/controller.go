// Package evolve drives generational selection: the user picks one tree,
// and the whole population is rebuilt from it.
package evolve

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/Akodiat/treeCultivator/genome"
	"github.com/Akodiat/treeCultivator/params"
	"github.com/Akodiat/treeCultivator/population"
	"github.com/Akodiat/treeCultivator/scene"
)

// ErrSelectionOutOfRange is returned when a selection index does not name
// a population slot.
var ErrSelectionOutOfRange = errors.New("evolve: selection out of range")

// Event describes a completed generation.
type Event struct {
	Generation int
	Selected   int // -1 for the seeding generation
	Winner     params.Set
	Slots      []params.Set
}

// Observer is notified after every generation change.
type Observer func(Event)

// Option configures a Controller.
type Option func(*Controller)

// WithMutation overrides the per-parameter perturbation.
func WithMutation(g genome.Gaussian) Option {
	return func(c *Controller) { c.mutation = g }
}

// WithLogger sets the logger used for generation messages.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// Controller owns the selection algorithm. It is the only writer of the
// population after startup.
type Controller struct {
	pop      *population.Population
	builder  scene.MeshBuilder
	rng      genome.Uniform
	mutation genome.Gaussian
	logger   *slog.Logger

	generation int
	winner     *genome.Genome
	observers  []Observer
}

// New creates a controller for pop.
func New(pop *population.Population, b scene.MeshBuilder, rng genome.Uniform, opts ...Option) *Controller {
	c := &Controller{
		pop:      pop,
		builder:  b,
		rng:      rng,
		mutation: genome.DefaultMutation,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OnGeneration registers an observer.
func (c *Controller) OnGeneration(o Observer) {
	c.observers = append(c.observers, o)
}

// Seed fills the population from one template: every slot gets its own
// completion of t, mutated once.
func (c *Controller) Seed(t genome.Template) error {
	n := c.pop.Size()
	next := make([]*genome.Genome, n)
	for i := range next {
		g, err := genome.New(t, c.rng)
		if err != nil {
			return fmt.Errorf("seeding slot %d: %w", i, err)
		}
		g.MutateWith(c.rng, c.mutation)
		next[i] = g
	}
	if err := c.pop.ReplaceAll(next, c.builder); err != nil {
		return fmt.Errorf("seeding population: %w", err)
	}

	c.generation = 0
	c.winner = nil
	c.logger.Info("population seeded", "size", n, "seed", t.Seed)
	c.notify(-1)
	return nil
}

// OnSelect makes slot index the parent of the next generation. The winner
// is copied verbatim into its own slot and every other slot receives a
// mutated clone of it. Nothing is changed when the index is invalid or a
// mesh cannot be built.
func (c *Controller) OnSelect(index int) error {
	n := c.pop.Size()
	if index < 0 || index >= n {
		return fmt.Errorf("%w: index %d, population size %d", ErrSelectionOutOfRange, index, n)
	}
	parent := c.pop.Genome(index)
	if parent == nil {
		return fmt.Errorf("evolve: population not seeded")
	}
	winner := parent.Clone()

	next := make([]*genome.Genome, n)
	for j := range next {
		child := winner.Clone()
		if j != index {
			child.MutateWith(c.rng, c.mutation)
		}
		next[j] = child
	}
	if err := c.pop.ReplaceAll(next, c.builder); err != nil {
		return fmt.Errorf("generation %d: %w", c.generation+1, err)
	}

	c.generation++
	c.winner = winner
	c.logger.Info("generation selected",
		"generation", c.generation,
		"index", index,
		"winner", winnerValue(winner.Params()),
	)
	c.notify(index)
	return nil
}

// Winner returns the most recently selected genome's parameters.
func (c *Controller) Winner() (params.Set, bool) {
	if c.winner == nil {
		return params.Set{}, false
	}
	return c.winner.Params(), true
}

// Generation returns the number of selections made since seeding.
func (c *Controller) Generation() int {
	return c.generation
}

// Population returns the controlled population.
func (c *Controller) Population() *population.Population {
	return c.pop
}

func (c *Controller) notify(selected int) {
	if len(c.observers) == 0 {
		return
	}
	ev := Event{
		Generation: c.generation,
		Selected:   selected,
		Slots:      make([]params.Set, c.pop.Size()),
	}
	c.pop.Each(func(i int, s population.Slot) {
		ev.Slots[i] = s.Genome.Params()
	})
	if c.winner != nil {
		ev.Winner = c.winner.Params()
	}
	for _, o := range c.observers {
		o(ev)
	}
}

// winnerValue renders a parameter set as a slog group.
func winnerValue(s params.Set) slog.Value {
	attrs := make([]slog.Attr, 0, params.Count+2)
	attrs = append(attrs, slog.Int64("seed", s.Seed), slog.Int("segments", s.Segments))
	for i, k := range params.Keys() {
		attrs = append(attrs, slog.Float64(string(k), s.Values[i]))
	}
	return slog.GroupValue(attrs...)
}
