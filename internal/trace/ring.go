package trace

import (
	"io"
	"sync"
)

// RingTracer keeps the last N events in memory.
type RingTracer struct {
	mu     sync.RWMutex
	events []Event
	head   int  // next write position
	full   bool // has wrapped around
	level  Level
}

// NewRingTracer creates a new RingTracer with the given capacity.
func NewRingTracer(capacity int, level Level) *RingTracer {
	if capacity <= 0 {
		capacity = defaultRingSize
	}
	return &RingTracer{
		events: make([]Event, capacity),
		level:  level,
	}
}

// Emit stores a copy of ev, overwriting the oldest event when full.
func (t *RingTracer) Emit(ev *Event) {
	if !t.level.ShouldEmit(ev.Scope) {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	stored := *ev
	if stored.Seq == 0 {
		stored.Seq = NextSeq()
	}
	t.events[t.head] = stored
	t.head = (t.head + 1) % len(t.events)
	if t.head == 0 {
		t.full = true
	}
}

// Snapshot returns the stored events, oldest first.
func (t *RingTracer) Snapshot() []Event {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if !t.full {
		out := make([]Event, t.head)
		copy(out, t.events[:t.head])
		return out
	}
	out := make([]Event, 0, len(t.events))
	out = append(out, t.events[t.head:]...)
	return append(out, t.events[:t.head]...)
}

// Dump writes the stored events to w.
func (t *RingTracer) Dump(w io.Writer, format Format) error {
	for _, ev := range t.Snapshot() {
		if _, err := w.Write(FormatEvent(&ev, format)); err != nil {
			return err
		}
	}
	return nil
}

// Flush is a no-op.
func (t *RingTracer) Flush() error { return nil }

// Close is a no-op.
func (t *RingTracer) Close() error { return nil }

// Level returns the current tracing level.
func (t *RingTracer) Level() Level { return t.level }

// Enabled returns true if tracing is active.
func (t *RingTracer) Enabled() bool { return t.level > LevelOff }
