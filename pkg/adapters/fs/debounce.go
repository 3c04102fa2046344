package fs

import (
	"fmt"
	"sync"
	"time"

	"github.com/aretw0/jotter/pkg/core"
)

// debouncer coalesces events for the same record that arrive within delay.
// A CREATE followed by MODIFY stays a CREATE; otherwise the latest type wins.
type debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	pending map[string]*pendingEvent
	wg      sync.WaitGroup
	stopped bool
}

type pendingEvent struct {
	event core.Event
	timer *time.Timer
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{
		delay:   delay,
		pending: make(map[string]*pendingEvent),
	}
}

func (d *debouncer) add(e core.Event, emit func(core.Event)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}

	key := fmt.Sprintf("%s/%d", e.Entity, e.ID)
	if p, ok := d.pending[key]; ok && p.timer.Stop() {
		if p.event.Type != core.EventCreate || e.Type != core.EventModify {
			p.event.Type = e.Type
		}
		p.event.Timestamp = e.Timestamp
		p.timer.Reset(d.delay)
		return
	}

	p := &pendingEvent{event: e}
	d.wg.Add(1)
	p.timer = time.AfterFunc(d.delay, func() {
		defer d.wg.Done()
		d.mu.Lock()
		ev := p.event
		if d.pending[key] == p {
			delete(d.pending, key)
		}
		d.mu.Unlock()
		emit(ev)
	})
	d.pending[key] = p
}

// stopAndWait drops pending events and waits up to timeout for emissions in flight.
func (d *debouncer) stopAndWait(timeout time.Duration) {
	d.mu.Lock()
	d.stopped = true
	for key, p := range d.pending {
		if p.timer.Stop() {
			d.wg.Done()
		}
		delete(d.pending, key)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
	}
}
