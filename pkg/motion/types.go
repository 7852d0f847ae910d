// Package motion classifies frame-to-frame camera activity into coarse
// movement categories using a mean absolute-difference measure between
// consecutive grayscale frames.
package motion

import (
	"encoding/json"
	"fmt"
	"time"
)

// Type is the movement category detected between two frames.
type Type int

const (
	// TypeNone means no movement above the walking threshold.
	TypeNone Type = iota
	// TypeWalking is low-magnitude movement.
	TypeWalking
	// TypeRunning is sustained high-magnitude movement.
	TypeRunning
	// TypeFall is the highest-magnitude category.
	TypeFall
)

// String returns the wire name of the movement type.
func (t Type) String() string {
	switch t {
	case TypeWalking:
		return "walking"
	case TypeRunning:
		return "running"
	case TypeFall:
		return "fall"
	default:
		return "none"
	}
}

// MarshalJSON encodes the type as its string name.
func (t Type) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON decodes a type from its string name.
func (t *Type) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "none":
		*t = TypeNone
	case "walking":
		*t = TypeWalking
	case "running":
		*t = TypeRunning
	case "fall":
		*t = TypeFall
	default:
		return fmt.Errorf("motion: unknown movement type %q", s)
	}
	return nil
}

// Sample is one classification result. Samples are immutable once produced.
type Sample struct {
	// Type is the detected movement category.
	Type Type `json:"type"`

	// Confidence is magnitude relative to the walking threshold,
	// saturated at 1.0.
	Confidence float64 `json:"confidence"`

	// Magnitude is the raw mean absolute per-pixel difference.
	Magnitude float64 `json:"movement_value"`

	// CapturedAt is when the frame producing this sample was taken.
	CapturedAt time.Time `json:"captured_at"`
}
