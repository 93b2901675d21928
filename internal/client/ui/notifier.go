// Package ui holds the transient user-facing state of the CLI: the current
// notice and the progress indicator. Both are small mutex-guarded cells whose
// expiry timers fire on their own goroutines; the last call always wins.
package ui

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultNoticeTTL is how long a notice stays current before auto-expiring.
const DefaultNoticeTTL = 3000 * time.Millisecond

// Notifier shows transient status messages. A message is printed immediately
// (styled by success/failure) and stays readable via Current for a fixed
// duration. A new Notify overwrites the pending notice and restarts the
// clock; there is no queue.
type Notifier struct {
	mu      sync.Mutex
	logger  *log.Logger
	ttl     time.Duration
	current string
	ok      bool
	seq     int
}

func NewNotifier(logger *log.Logger) *Notifier {
	return &Notifier{logger: logger, ttl: DefaultNoticeTTL}
}

// Notify displays message, colored by ok, and keeps it current for the
// notifier's TTL.
func (n *Notifier) Notify(message string, ok bool) {
	n.mu.Lock()
	n.current = message
	n.ok = ok
	n.seq++
	seq := n.seq
	n.mu.Unlock()

	if n.logger != nil {
		if ok {
			n.logger.Info(message)
		} else {
			n.logger.Error(message)
		}
	}

	time.AfterFunc(n.ttl, func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		// A later Notify restarted the clock; leave its notice alone.
		if n.seq == seq {
			n.current = ""
		}
	})
}

// Current returns the live notice and whether it reported success.
// An expired notice reads as "".
func (n *Notifier) Current() (string, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current, n.ok
}
