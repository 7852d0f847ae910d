package camera

import (
	"fmt"
	"sync"
	"time"

	"gocv.io/x/gocv"

	"github.com/john-holland/matic-belt/pkg/motion"
)

// Webcam is a FrameSource backed by an OpenCV video capture device.
type Webcam struct {
	deviceID int

	mu  sync.Mutex // Protects cam across Open/Read/Release
	cam *gocv.VideoCapture
}

// NewWebcam creates a webcam source for the given device index
// (0 is the first attached camera).
func NewWebcam(deviceID int) *Webcam {
	return &Webcam{deviceID: deviceID}
}

// Open opens the device and applies resolution and framerate settings.
func (w *Webcam) Open(s Settings) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.cam != nil {
		return nil // Already open
	}

	cam, err := gocv.OpenVideoCapture(w.deviceID)
	if err != nil {
		return fmt.Errorf("%w: device %d: %v", ErrDeviceUnavailable, w.deviceID, err)
	}

	cam.Set(gocv.VideoCaptureFrameWidth, float64(s.Width))
	cam.Set(gocv.VideoCaptureFrameHeight, float64(s.Height))
	cam.Set(gocv.VideoCaptureFPS, float64(s.FPS))

	if !cam.IsOpened() {
		cam.Close()
		return fmt.Errorf("%w: device %d did not open", ErrDeviceUnavailable, w.deviceID)
	}

	w.cam = cam
	return nil
}

// Read pulls one frame, converting it to grayscale for classification
// and encoding it as JPEG for persistence.
func (w *Webcam) Read() (Frame, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.cam == nil {
		return Frame{}, ErrNotOpen
	}

	img := gocv.NewMat()
	defer img.Close()

	if ok := w.cam.Read(&img); !ok || img.Empty() {
		return Frame{}, ErrNoFrame
	}
	capturedAt := time.Now()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(img, &gray, gocv.ColorBGRToGray)

	luma, err := motion.NewLuma(gray.Cols(), gray.Rows(), gray.ToBytes())
	if err != nil {
		return Frame{}, fmt.Errorf("camera: grayscale conversion: %w", err)
	}

	buf, err := gocv.IMEncode(gocv.JPEGFileExt, img)
	if err != nil {
		return Frame{}, fmt.Errorf("camera: jpeg encode: %w", err)
	}
	defer buf.Close()

	// GetBytes is only valid until the buffer is closed
	jpeg := make([]byte, len(buf.GetBytes()))
	copy(jpeg, buf.GetBytes())

	return Frame{JPEG: jpeg, Gray: luma, CapturedAt: capturedAt}, nil
}

// Release closes the device. Safe to call when not open.
func (w *Webcam) Release() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.cam == nil {
		return nil
	}
	err := w.cam.Close()
	w.cam = nil
	return err
}
