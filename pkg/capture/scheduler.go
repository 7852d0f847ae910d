package capture

import (
	"sync"
	"time"

	"github.com/john-holland/matic-belt/internal/log"
)

// Scheduler runs a tick function on a fixed cadence in a single
// background goroutine. The first tick fires immediately; each
// subsequent tick fires interval after the previous tick finished, so a
// slow tick never causes overlapping work.
type Scheduler struct {
	interval time.Duration
	tick     func()

	mu       sync.Mutex
	started  bool
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// NewScheduler creates a scheduler for the given tick function.
func NewScheduler(interval time.Duration, tick func()) *Scheduler {
	return &Scheduler{
		interval: interval,
		tick:     tick,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the loop. Starting an already-started scheduler is a
// no-op.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.started = true
	go s.run()
}

func (s *Scheduler) run() {
	defer close(s.done)

	log.Debug("capture scheduler started", "interval", s.interval)
	timer := time.NewTimer(0) // First tick fires immediately
	defer timer.Stop()

	for {
		select {
		case <-s.stop:
			log.Debug("capture scheduler stopped")
			return
		case <-timer.C:
		}

		// Stop may have raced the timer; never tick after stop.
		select {
		case <-s.stop:
			log.Debug("capture scheduler stopped")
			return
		default:
		}

		s.tick()
		timer.Reset(s.interval)
	}
}

// Stop signals the loop to exit after its current tick and waits for it
// to drain. Idempotent; stopping a stopped scheduler is a no-op.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	started := s.started
	s.mu.Unlock()

	s.stopOnce.Do(func() {
		close(s.stop)
	})
	if started {
		<-s.done
	}
}
