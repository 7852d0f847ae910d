package belt

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"
	"time"
)

// fakeClock steps a tracker's clock manually.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestTracker() (*Tracker, *fakeClock) {
	clock := &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	tr := NewTracker()
	tr.now = clock.now
	return tr, clock
}

func TestTracker_CloseWithoutOpen(t *testing.T) {
	tr, _ := newTestTracker()

	ev, err := tr.Close()
	if !errors.Is(err, ErrNotOpen) {
		t.Fatalf("err = %v, want ErrNotOpen", err)
	}
	if ev.Error != "Belt was not open" {
		t.Errorf("event error = %q, want %q", ev.Error, "Belt was not open")
	}

	stats := tr.Stats()
	if stats.IsOpen || stats.TotalOpens != 0 {
		t.Errorf("state changed by rejected close: %+v", stats)
	}
}

func TestTracker_OpenCloseDuration(t *testing.T) {
	tr, clock := newTestTracker()

	tr.Open()
	clock.advance(90 * time.Second)
	ev, err := tr.Close()
	if err != nil {
		t.Fatalf("Close: %v", err)
	}
	if ev.Duration == nil || math.Abs(*ev.Duration-90.0) > 1e-9 {
		t.Errorf("duration = %v, want 90s", ev.Duration)
	}

	// A second pair is independent of the first.
	clock.advance(5 * time.Minute)
	tr.Open()
	clock.advance(7 * time.Second)
	ev, err = tr.Close()
	if err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if ev.Duration == nil || math.Abs(*ev.Duration-7.0) > 1e-9 {
		t.Errorf("second duration = %v, want 7s", ev.Duration)
	}

	stats := tr.Stats()
	if stats.TotalOpens != 2 {
		t.Errorf("total opens = %d, want 2", stats.TotalOpens)
	}
	if stats.IsOpen {
		t.Error("belt should be closed")
	}
}

func TestTracker_ReopenOverwritesTimestamp(t *testing.T) {
	tr, clock := newTestTracker()

	tr.Open()
	clock.advance(time.Minute)
	ev := tr.Open() // Double open: counter still increments
	if ev.TotalOpens != 2 {
		t.Errorf("total opens after double open = %d, want 2", ev.TotalOpens)
	}

	clock.advance(10 * time.Second)
	closed, err := tr.Close()
	if err != nil {
		t.Fatalf("Close: %v", err)
	}
	// Duration measured from the second open, not the first.
	if closed.Duration == nil || math.Abs(*closed.Duration-10.0) > 1e-9 {
		t.Errorf("duration = %v, want 10s", closed.Duration)
	}
}

func TestTracker_ZeroDurationCloseKeepsDurationField(t *testing.T) {
	tr, _ := newTestTracker()

	tr.Open()
	ev, err := tr.Close() // Same instant: duration is a legitimate 0.0
	if err != nil {
		t.Fatalf("Close: %v", err)
	}
	if ev.Duration == nil || *ev.Duration != 0 {
		t.Fatalf("duration = %v, want present 0", ev.Duration)
	}

	data, err := json.Marshal(ev)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"duration":0`) {
		t.Errorf("close event JSON missing zero duration: %s", data)
	}

	// Open events carry no duration at all.
	data, err = json.Marshal(tr.Open())
	if err != nil {
		t.Fatalf("marshal open: %v", err)
	}
	if strings.Contains(string(data), `"duration"`) {
		t.Errorf("open event JSON should omit duration: %s", data)
	}
}

func TestTracker_StatsWhileOpen(t *testing.T) {
	tr, clock := newTestTracker()

	if d := tr.Stats().CurrentOpenDuration; d != 0 {
		t.Errorf("closed-belt duration = %v, want 0", d)
	}

	tr.Open()
	clock.advance(42 * time.Second)

	stats := tr.Stats()
	if !stats.IsOpen {
		t.Fatal("belt should be open")
	}
	if math.Abs(stats.CurrentOpenDuration-42.0) > 1e-9 {
		t.Errorf("current open duration = %v, want 42s", stats.CurrentOpenDuration)
	}
}
