package game

// flushPerf writes one perf record per full window.
func (g *Game) flushPerf() {
	if !g.perf.WindowFull() {
		return
	}
	stats := g.perf.Stats()
	g.logger.Debug("perf", "stats", stats)

	if err := g.output.WritePerf(stats, g.perf.Frames()); err != nil {
		g.logger.Error("failed to write perf", "error", err)
	}
}
