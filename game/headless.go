package game

import "fmt"

// RunHeadless performs n selections of random slots without a window, as a
// stand-in for a user clicking through generations.
func (g *Game) RunHeadless(n int) error {
	size := g.pop.Size()
	for i := 0; i < n; i++ {
		slot := g.rng.IntN(size)
		if !g.inbox.Select(slot) {
			return fmt.Errorf("selection %d dropped", i)
		}
		g.drainSelections()
		if g.fatal != nil {
			return g.fatal
		}
	}
	g.logger.Info("headless run finished",
		"generations", g.controller.Generation(),
		"records", len(g.recorder.History()),
	)
	return nil
}
