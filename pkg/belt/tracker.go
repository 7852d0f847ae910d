// Package belt tracks open/close transitions of the monitored belt.
// The tracker is driven by external signals and shares no state with
// the camera capture loop.
package belt

import (
	"errors"
	"sync"
	"time"

	"github.com/john-holland/matic-belt/internal/log"
)

// ErrNotOpen is returned by Close when the belt was not open.
// This is a reported condition, never fatal.
var ErrNotOpen = errors.New("belt: not open")

// Action identifies a belt transition.
type Action string

const (
	ActionOpen  Action = "open"
	ActionClose Action = "close"
)

// Event is one recorded belt transition.
type Event struct {
	Action    Action    `json:"action"`
	Timestamp time.Time `json:"timestamp"`

	// Duration is how long the belt was open, in seconds. Present on
	// every successful close event, including a 0.0 for an open and
	// close within the same instant; absent otherwise.
	Duration *float64 `json:"duration,omitempty"`

	// TotalOpens is the running open counter. Only set on open events.
	TotalOpens int `json:"total_opens,omitempty"`

	IsOpen bool `json:"is_open"`

	// Error flags a rejected transition, such as closing a belt that
	// was never opened.
	Error string `json:"error,omitempty"`
}

// Stats is a point-in-time view of the tracker.
type Stats struct {
	IsOpen        bool      `json:"is_open"`
	LastOpenTime  time.Time `json:"last_open_time,omitzero"`
	LastCloseTime time.Time `json:"last_close_time,omitzero"`
	TotalOpens    int       `json:"total_opens"`

	// CurrentOpenDuration is seconds elapsed since the last open,
	// still increasing while the belt remains open. Zero when closed.
	CurrentOpenDuration float64 `json:"current_open_duration"`
}

// Tracker is the belt open/close state machine. Initial state is closed.
type Tracker struct {
	mu sync.RWMutex

	isOpen       bool
	lastOpen     time.Time
	lastClose    time.Time
	openDuration time.Duration
	totalOpens   int

	now func() time.Time // Clock hook for tests
}

// NewTracker creates a tracker in the closed state.
func NewTracker() *Tracker {
	return &Tracker{now: time.Now}
}

// Open records a belt open. Re-opening an already-open belt overwrites
// the open timestamp and still increments the counter; that matches the
// historical behavior callers depend on.
func (t *Tracker) Open() Event {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	t.lastOpen = now
	t.isOpen = true
	t.totalOpens++

	log.Info("belt opened", "at", now, "total_opens", t.totalOpens)

	return Event{
		Action:     ActionOpen,
		Timestamp:  now,
		TotalOpens: t.totalOpens,
		IsOpen:     true,
	}
}

// Close records a belt close and the open duration. Closing a belt that
// is not open returns an error-flagged event and leaves state unchanged.
func (t *Tracker) Close() (Event, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	if !t.isOpen {
		log.Warn("attempted to close belt that wasn't open")
		return Event{
			Action:    ActionClose,
			Timestamp: now,
			Error:     "Belt was not open",
		}, ErrNotOpen
	}

	t.lastClose = now
	t.isOpen = false
	t.openDuration = now.Sub(t.lastOpen)

	duration := t.openDuration.Seconds()
	log.Info("belt closed", "at", now, "duration_seconds", duration)

	return Event{
		Action:    ActionClose,
		Timestamp: now,
		Duration:  &duration,
		IsOpen:    false,
	}, nil
}

// Stats returns the current tracking statistics.
func (t *Tracker) Stats() Stats {
	t.mu.RLock()
	defer t.mu.RUnlock()

	stats := Stats{
		IsOpen:        t.isOpen,
		LastOpenTime:  t.lastOpen,
		LastCloseTime: t.lastClose,
		TotalOpens:    t.totalOpens,
	}
	if t.isOpen && !t.lastOpen.IsZero() {
		stats.CurrentOpenDuration = t.now().Sub(t.lastOpen).Seconds()
	}
	return stats
}
