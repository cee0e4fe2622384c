package monitor

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestMonitorTicks(t *testing.T) {
	var ticks int32
	m := New(2*time.Millisecond, func() { atomic.AddInt32(&ticks, 1) })
	m.Start()
	defer m.Stop()

	deadline := time.Now().Add(2 * time.Second)
	for atomic.LoadInt32(&ticks) < 3 {
		if time.Now().After(deadline) {
			t.Fatalf("only %d ticks before the deadline", atomic.LoadInt32(&ticks))
		}
		time.Sleep(time.Millisecond)
	}
}

func TestMonitorStop(t *testing.T) {
	var ticks int32
	m := New(2*time.Millisecond, func() { atomic.AddInt32(&ticks, 1) })
	m.Start()
	time.Sleep(20 * time.Millisecond)
	m.Stop()

	if m.Running() {
		t.Fatalf("monitor still running after Stop")
	}

	// Let any in-flight tick settle before sampling.
	time.Sleep(10 * time.Millisecond)
	stopped := atomic.LoadInt32(&ticks)
	time.Sleep(30 * time.Millisecond)
	if got := atomic.LoadInt32(&ticks); got != stopped {
		t.Errorf("ticks kept firing after Stop: %d then %d", stopped, got)
	}
}

func TestMonitorRestartKeepsOnePending(t *testing.T) {
	var ticks int32
	m := New(50*time.Millisecond, func() { atomic.AddInt32(&ticks, 1) })

	// Rapid restarts cancel the pending timer each time.
	for i := 0; i < 10; i++ {
		m.Start()
	}
	time.Sleep(75 * time.Millisecond)
	m.Stop()
	time.Sleep(10 * time.Millisecond)

	if got := atomic.LoadInt32(&ticks); got != 1 {
		t.Errorf("expected exactly one tick, got %d", got)
	}
}

func TestDefaultInterval(t *testing.T) {
	if m := New(0, nil); m.Interval != DefaultInterval {
		t.Errorf("interval %v, expected %v", m.Interval, DefaultInterval)
	}
}
