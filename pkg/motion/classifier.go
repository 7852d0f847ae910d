package motion

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for classification.
var (
	// ErrShapeMismatch is returned when the baseline and current frames
	// have different dimensions. This is a caller contract violation;
	// the classifier never resizes or truncates.
	ErrShapeMismatch = errors.New("motion: frame shapes do not match")

	// ErrEmptyFrame is returned when the current frame holds no pixels.
	ErrEmptyFrame = errors.New("motion: current frame is empty")
)

// Thresholds are the magnitude cut-offs for each movement category.
// They must be ordered Walking <= Running <= Fall.
type Thresholds struct {
	Walking float64
	Running float64
	Fall    float64
}

// Validate checks that the thresholds are non-negative and ordered.
func (t Thresholds) Validate() error {
	if t.Walking < 0 || t.Running < 0 || t.Fall < 0 {
		return fmt.Errorf("motion: thresholds must be non-negative, got %+v", t)
	}
	if t.Walking > t.Running || t.Running > t.Fall {
		return fmt.Errorf("motion: thresholds must satisfy walking <= running <= fall, got %+v", t)
	}
	return nil
}

// Classify compares the current frame against the previous baseline and
// produces one Sample.
//
// When prev is empty this is a calibration call: the result is
// {TypeNone, 0, 0} and the caller should store cur as the new baseline.
// Thresholds are evaluated strictest-first so a fall-level magnitude is
// never reported as running.
func Classify(prev, cur Luma, th Thresholds, at time.Time) (Sample, error) {
	if cur.Empty() {
		return Sample{}, ErrEmptyFrame
	}
	if prev.Empty() {
		return Sample{Type: TypeNone, CapturedAt: at}, nil
	}
	if !prev.SameShape(cur) {
		return Sample{}, fmt.Errorf("%w: baseline %dx%d, current %dx%d",
			ErrShapeMismatch, prev.Width, prev.Height, cur.Width, cur.Height)
	}

	magnitude := meanAbsDiff(prev.Pix, cur.Pix)

	confidence := 0.0
	switch {
	case th.Walking > 0:
		confidence = magnitude / th.Walking
		if confidence > 1.0 {
			confidence = 1.0
		}
	case magnitude > 0:
		confidence = 1.0
	}

	kind := TypeNone
	switch {
	case magnitude > th.Fall:
		kind = TypeFall
	case magnitude > th.Running:
		kind = TypeRunning
	case magnitude > th.Walking:
		kind = TypeWalking
	}

	return Sample{
		Type:       kind,
		Confidence: confidence,
		Magnitude:  magnitude,
		CapturedAt: at,
	}, nil
}

// meanAbsDiff computes the mean absolute per-pixel difference between
// two equal-length intensity buffers.
func meanAbsDiff(a, b []uint8) float64 {
	if len(a) == 0 {
		return 0
	}
	var sum uint64
	for i := range a {
		d := int(a[i]) - int(b[i])
		if d < 0 {
			d = -d
		}
		sum += uint64(d)
	}
	return float64(sum) / float64(len(a))
}
