// Package capture drives the periodic capture-and-classify loop and the
// session lifecycle binding a frame source to it.
package capture

import (
	"fmt"
	"time"

	"github.com/john-holland/matic-belt/pkg/motion"
)

// Trigger identifies what initiated a capture.
type Trigger string

const (
	// TriggerTimer marks captures issued by the background loop.
	TriggerTimer Trigger = "timer"
	// TriggerManual marks captures requested by a caller.
	TriggerManual Trigger = "manual"
)

// Status is the outcome of one capture attempt.
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Record is the result of one capture attempt. Records are immutable
// once produced.
type Record struct {
	ID        string         `json:"id"`
	Status    Status         `json:"status"`
	Message   string         `json:"message,omitempty"`
	FileName  string         `json:"filename,omitempty"`
	Movement  *motion.Sample `json:"movement,omitempty"`
	Trigger   Trigger        `json:"trigger"`
	Timestamp time.Time      `json:"timestamp"`
}

// fileName builds the capture file name for a frame taken at the given
// time: capture_<YYYYMMDD_HHMMSS>_<trigger>.jpg
func fileName(at time.Time, trigger Trigger) string {
	return fmt.Sprintf("capture_%s_%s.jpg", at.Format("20060102_150405"), trigger)
}
