package evolve

// Inbox is the single inbound channel of selection events. The
// presentation layer calls Select; the frame loop calls Drain between
// frames so each selection runs to completion before the next render.
type Inbox struct {
	ch chan int
}

// NewInbox creates an inbox holding up to capacity pending selections.
func NewInbox(capacity int) *Inbox {
	if capacity < 1 {
		capacity = 1
	}
	return &Inbox{ch: make(chan int, capacity)}
}

// Select queues a selection. It reports false and drops the event when the
// inbox is full.
func (in *Inbox) Select(index int) bool {
	select {
	case in.ch <- index:
		return true
	default:
		return false
	}
}

// Pending returns the number of queued selections.
func (in *Inbox) Pending() int {
	return len(in.ch)
}

// Drain applies every queued selection to c in arrival order. It stops at
// the first error.
func (in *Inbox) Drain(c *Controller) (int, error) {
	handled := 0
	for {
		select {
		case idx := <-in.ch:
			if err := c.OnSelect(idx); err != nil {
				return handled, err
			}
			handled++
		default:
			return handled, nil
		}
	}
}
