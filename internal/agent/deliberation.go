package agent

import (
	"context"
	"sync"
	"time"
)

// deliberation is the handle on an actor's single live decision process.
type deliberation struct {
	cancel context.CancelFunc
	done   chan struct{}

	mu     sync.Mutex
	stream Stream
	closed bool

	// thoughts is written by the deliberation goroutine and read after done.
	thoughts []string
}

func newDeliberation(cancel context.CancelFunc) *deliberation {
	return &deliberation{cancel: cancel, done: make(chan struct{})}
}

// attach records the open stream. It returns false if the deliberation was
// interrupted first; the caller must then close s itself.
func (d *deliberation) attach(s Stream) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return false
	}
	d.stream = s
	return true
}

// closeStream closes the attached stream once. Safe to call from any goroutine.
func (d *deliberation) closeStream() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	if d.stream != nil {
		d.stream.Close()
		d.stream = nil
	}
}

// stop cancels the deliberation, closes its stream and waits for it to
// return. It reports whether stopping took longer than grace.
func (d *deliberation) stop(grace time.Duration) (slow bool) {
	d.cancel()
	d.closeStream()

	timer := time.NewTimer(grace)
	defer timer.Stop()
	select {
	case <-d.done:
		return false
	case <-timer.C:
	}
	<-d.done
	return true
}
