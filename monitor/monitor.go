// Package monitor polls for viewport changes on a fixed interval. Each tick
// cancels whatever timer is pending and schedules the next one, so at most
// one check is ever outstanding.
package monitor

import (
	"sync"
	"time"
)

const DefaultInterval = 50 * time.Millisecond

// Monitor calls Post on every tick. Post runs on the timer goroutine and
// must only hand the tick to the event loop, never touch report state.
type Monitor struct {
	Interval time.Duration
	Post     func()

	mu      sync.Mutex
	timer   *time.Timer
	running bool
}

func New(interval time.Duration, post func()) *Monitor {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Monitor{Interval: interval, Post: post}
}

// Start schedules the first tick. Starting a running monitor reschedules it.
func (m *Monitor) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.running = true
	m.schedule()
}

// Stop cancels the pending tick. A Post already in flight still completes.
func (m *Monitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.running = false
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}

// Running reports whether a tick is scheduled.
func (m *Monitor) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

// schedule must be called with mu held.
func (m *Monitor) schedule() {
	if m.timer != nil {
		m.timer.Stop()
	}

	var self *time.Timer
	self = time.AfterFunc(m.Interval, func() {
		m.mu.Lock()
		// A Stop or a reschedule raced with this tick.
		if !m.running || m.timer != self {
			m.mu.Unlock()
			return
		}
		m.schedule()
		post := m.Post
		m.mu.Unlock()

		if post != nil {
			post()
		}
	})
	m.timer = self
}
