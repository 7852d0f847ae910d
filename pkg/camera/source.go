package camera

import (
	"errors"
	"time"

	"github.com/john-holland/matic-belt/pkg/motion"
)

// Sentinel errors for frame acquisition.
var (
	// ErrDeviceUnavailable is returned when the capture device cannot
	// be opened. Fatal to session start, not to the process.
	ErrDeviceUnavailable = errors.New("camera: device unavailable")

	// ErrNoFrame is returned when a single frame pull fails. The
	// capture loop reports it and continues.
	ErrNoFrame = errors.New("camera: no frame available")

	// ErrNotOpen is returned when reading from a source that has not
	// been opened.
	ErrNotOpen = errors.New("camera: source not open")
)

// Frame is one captured frame: the encoded image for persistence plus
// the grayscale plane used for movement classification.
type Frame struct {
	JPEG       []byte
	Gray       motion.Luma
	CapturedAt time.Time
}

// FrameSource supplies raw frames on demand. Implementations own the
// underlying device; the capture session is the only caller.
type FrameSource interface {
	// Open configures and opens the device for the given settings.
	// Returns ErrDeviceUnavailable if the device cannot be opened.
	Open(s Settings) error

	// Read pulls one frame. Returns ErrNoFrame when the device
	// produced nothing; the caller treats this as a per-tick failure.
	Read() (Frame, error)

	// Release closes the device. Safe to call when not open.
	Release() error
}
