// Package abort provides the cooperative cancellation poll: a latched
// interrupt signal checked once per file, never delivered
// asynchronously into the deletion logic.
package abort

import (
	"os"
	"os/signal"
	"syscall"
)

// Poller latches interrupt signals for later polling.
type Poller struct {
	sigs    chan os.Signal
	pending bool
}

// NewPoller starts listening for SIGINT and SIGTERM.
func NewPoller() *Poller {
	p := &Poller{sigs: make(chan os.Signal, 1)}
	signal.Notify(p.sigs, syscall.SIGINT, syscall.SIGTERM)
	return p
}

// Pending reports whether an abort has been requested. Once an abort
// is observed it stays pending for every later poll.
func (p *Poller) Pending() bool {
	if p.pending {
		return true
	}
	select {
	case <-p.sigs:
		p.pending = true
	default:
	}
	return p.pending
}

// Stop detaches the poller from signal delivery.
func (p *Poller) Stop() {
	signal.Stop(p.sigs)
}
