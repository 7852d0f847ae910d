package capture

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/john-holland/matic-belt/internal/log"
	"github.com/john-holland/matic-belt/pkg/camera"
	"github.com/john-holland/matic-belt/pkg/motion"
)

// historyCap is how many recent movement samples are retained.
const historyCap = 10

// Stats is a point-in-time view of a session. Slices are copies; the
// caller can hold them freely.
type Stats struct {
	IsCapturing     bool            `json:"is_capturing"`
	CaptureCount    int             `json:"capture_count"`
	Settings        camera.Settings `json:"settings"`
	RecentMovements []motion.Sample `json:"recent_movements"`
}

// Session binds a frame source and the capture scheduler into one
// lifecycle. It owns the movement baseline and history; all ticks,
// timer-driven or manual, serialize through it.
type Session struct {
	settings camera.Settings
	source   camera.FrameSource
	store    Store

	// OnRecord, if set, is called with every capture record as the
	// tick completes. Set it before Start. It runs on the tick path,
	// so it must be quick and must not trigger another capture.
	OnRecord func(Record)

	// lifeMu serializes Start and Stop so the open-device-then-spawn
	// transition is atomic; racing Starts must never spawn a second
	// scheduler that Stop would orphan.
	lifeMu sync.Mutex

	// tickMu serializes ticks so classification always sees a
	// consistent baseline.
	tickMu sync.Mutex

	// mu guards the fields below for snapshot readers. Ticks hold
	// tickMu first, so writes here are brief.
	mu           sync.RWMutex
	capturing    bool
	captureCount int
	baseline     motion.Luma
	history      []motion.Sample

	sched *Scheduler
}

// NewSession validates the settings and creates a stopped session.
func NewSession(settings camera.Settings, source camera.FrameSource, store Store) (*Session, error) {
	if errs := settings.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("capture: invalid settings: %v", errs)
	}
	return &Session{
		settings: settings,
		source:   source,
		store:    store,
	}, nil
}

// Settings returns the session's immutable settings snapshot.
func (s *Session) Settings() camera.Settings {
	return s.settings
}

// Start opens the frame source and begins the timer-driven capture
// loop. If the device cannot be opened no loop is started and the
// session stays not-capturing. Starting a running session is a no-op.
func (s *Session) Start() error {
	s.lifeMu.Lock()
	defer s.lifeMu.Unlock()

	s.mu.RLock()
	capturing := s.capturing
	s.mu.RUnlock()
	if capturing {
		return nil
	}

	if err := s.source.Open(s.settings); err != nil {
		log.Error("failed to start camera", "error", err)
		return fmt.Errorf("capture: start: %w", err)
	}

	s.mu.Lock()
	s.capturing = true
	s.sched = NewScheduler(s.settings.Interval(), func() {
		s.Capture(TriggerTimer)
	})
	sched := s.sched
	s.mu.Unlock()

	sched.Start()
	log.Info("camera started",
		"interval", s.settings.Interval(),
		"resolution", fmt.Sprintf("%dx%d", s.settings.Width, s.settings.Height),
		"fps", s.settings.FPS)
	return nil
}

// Stop halts the capture loop and releases the frame source. The
// current tick is allowed to finish. Safe to call when already stopped.
func (s *Session) Stop() {
	s.lifeMu.Lock()
	defer s.lifeMu.Unlock()

	s.mu.Lock()
	if !s.capturing {
		s.mu.Unlock()
		return
	}
	s.capturing = false
	sched := s.sched
	s.sched = nil
	s.mu.Unlock()

	if sched != nil {
		sched.Stop()
	}
	if err := s.source.Release(); err != nil {
		log.Warn("failed to release camera", "error", err)
	}
	log.Info("camera stopped")
}

// Capture runs one tick: pull a frame, classify it against the
// baseline, record the sample and persist the frame. A failed pull
// returns an error record and leaves the baseline, history and counters
// untouched so movement continuity survives transient device faults.
func (s *Session) Capture(trigger Trigger) Record {
	s.tickMu.Lock()
	defer s.tickMu.Unlock()

	rec := Record{
		ID:        uuid.NewString(),
		Trigger:   trigger,
		Timestamp: time.Now(),
	}

	s.mu.RLock()
	capturing := s.capturing
	s.mu.RUnlock()
	if !capturing {
		rec.Status = StatusError
		rec.Message = "camera not initialized or not capturing"
		return s.finish(rec)
	}

	frame, err := s.source.Read()
	if err != nil {
		log.Warn("failed to capture frame", "trigger", trigger, "error", err)
		rec.Status = StatusError
		rec.Message = fmt.Sprintf("failed to capture frame: %v", err)
		return s.finish(rec)
	}

	// Baseline is only written by ticks, which we serialize, so this
	// read needs no extra locking.
	sample, err := motion.Classify(s.baseline, frame.Gray, s.settings.Thresholds(), frame.CapturedAt)
	if err != nil {
		log.Error("movement classification failed", "error", err)
		rec.Status = StatusError
		rec.Message = fmt.Sprintf("classification failed: %v", err)
		return s.finish(rec)
	}

	s.mu.Lock()
	s.baseline = frame.Gray
	s.history = append(s.history, sample)
	if len(s.history) > historyCap {
		s.history = s.history[1:]
	}
	s.captureCount++
	s.mu.Unlock()

	rec.Movement = &sample

	name := fileName(rec.Timestamp, trigger)
	path, err := s.store.Save(frame.JPEG, name)
	if err != nil {
		log.Warn("failed to persist frame", "file", name, "error", err)
		rec.Status = StatusError
		rec.Message = fmt.Sprintf("failed to persist frame: %v", err)
		return s.finish(rec)
	}

	rec.Status = StatusSuccess
	rec.FileName = path
	log.Debug("captured frame",
		"file", path,
		"trigger", trigger,
		"movement", sample.Type.String(),
		"magnitude", sample.Magnitude)
	return s.finish(rec)
}

// finish hands the record to the OnRecord hook and returns it.
func (s *Session) finish(rec Record) Record {
	if s.OnRecord != nil {
		s.OnRecord(rec)
	}
	return rec
}

// Snapshot returns the session state and the recent movement history.
// The history slice is a copy, never a live reference.
func (s *Session) Snapshot() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recent := make([]motion.Sample, len(s.history))
	copy(recent, s.history)

	return Stats{
		IsCapturing:     s.capturing,
		CaptureCount:    s.captureCount,
		Settings:        s.settings,
		RecentMovements: recent,
	}
}
