// Package camera provides camera settings and frame acquisition for the
// belt monitor. Settings are validated once and treated as an immutable
// snapshot for the lifetime of a capture session.
package camera

import (
	"time"

	"github.com/john-holland/matic-belt/pkg/motion"
)

// Settings holds all camera and movement-detection parameters for one
// capture session. A Settings value is never mutated after the session
// starts; reconfiguring means stopping and starting a new session.
type Settings struct {
	// === Capture cadence ===
	// TimerInterval is the delay in seconds between timer-driven
	// captures, measured from the end of the previous capture.
	TimerInterval float64 `json:"timer_interval" toml:"timer_interval"`

	// === Movement thresholds ===
	// Magnitude cut-offs for each movement category. Must satisfy
	// movement <= running <= fall.
	MovementThreshold float64 `json:"movement_threshold" toml:"movement_threshold"`
	RunningThreshold  float64 `json:"running_threshold" toml:"running_threshold"`
	FallThreshold     float64 `json:"fall_threshold" toml:"fall_threshold"`

	// === Output ===
	// SaveDirectory is where captured frames are written.
	SaveDirectory string `json:"save_directory" toml:"save_directory"`

	// === Device ===
	Width  int `json:"width" toml:"width"`   // Frame width in pixels
	Height int `json:"height" toml:"height"` // Frame height in pixels
	FPS    int `json:"fps" toml:"fps"`       // Target capture framerate
}

// DefaultSettings returns the standard configuration: one capture per
// minute at 640x480 with the baseline detection thresholds.
func DefaultSettings() Settings {
	return Settings{
		TimerInterval:     60.0,
		MovementThreshold: 30.0,
		RunningThreshold:  40.0,
		FallThreshold:     50.0,
		SaveDirectory:     "captures",
		Width:             640,
		Height:            480,
		FPS:               30,
	}
}

// Interval returns the timer interval as a duration.
func (s Settings) Interval() time.Duration {
	return time.Duration(s.TimerInterval * float64(time.Second))
}

// Thresholds returns the movement thresholds in classifier form.
func (s Settings) Thresholds() motion.Thresholds {
	return motion.Thresholds{
		Walking: s.MovementThreshold,
		Running: s.RunningThreshold,
		Fall:    s.FallThreshold,
	}
}

// Validate checks that the settings are usable.
// Returns a list of validation errors, or nil if valid.
func (s Settings) Validate() []string {
	var errs []string

	if s.TimerInterval <= 0 {
		errs = append(errs, "timer_interval must be greater than 0")
	}
	if s.MovementThreshold < 0 || s.RunningThreshold < 0 || s.FallThreshold < 0 {
		errs = append(errs, "thresholds must be non-negative")
	}
	if s.MovementThreshold > s.RunningThreshold || s.RunningThreshold > s.FallThreshold {
		errs = append(errs, "thresholds must satisfy movement <= running <= fall")
	}
	if s.SaveDirectory == "" {
		errs = append(errs, "save_directory must not be empty")
	}
	if s.Width < 1 || s.Height < 1 {
		errs = append(errs, "resolution must be positive")
	}
	if s.FPS < 1 {
		errs = append(errs, "fps must be at least 1")
	}

	return errs
}
