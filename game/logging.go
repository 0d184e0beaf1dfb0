package game

import (
	"fmt"
	"io"

	"github.com/Akodiat/treeCultivator/evolve"
)

// logWriter is the destination for the plain-text selection log.
var logWriter io.Writer

// SetLogWriter sets the plain-text log destination. Nil disables it.
func SetLogWriter(w io.Writer) {
	logWriter = w
}

// Logf writes a formatted line to the plain-text log.
func Logf(format string, args ...interface{}) {
	if logWriter == nil {
		return
	}
	fmt.Fprintln(logWriter, fmt.Sprintf(format, args...))
}

// logSelection prints the selected slot and the winner's parameters as the
// same YAML text the panel shows.
func logSelection(ev evolve.Event) {
	if ev.Selected < 0 {
		Logf("Seeded generation %d", ev.Generation)
		return
	}
	Logf("Selected tree %d (generation %d)", ev.Selected, ev.Generation)
	Logf("%s", ev.Winner.Format())
}
