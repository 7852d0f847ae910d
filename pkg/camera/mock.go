package camera

import (
	"sync"
	"time"

	"github.com/john-holland/matic-belt/pkg/motion"
)

// MockSource is an in-memory FrameSource for testing capture flows
// without camera hardware.
type MockSource struct {
	mu sync.Mutex

	// OpenErr, if set, is returned by Open.
	OpenErr error

	// ReadErr, if set, is returned by every Read.
	ReadErr error

	// ReadFunc, if set, overrides the queued frames entirely.
	ReadFunc func() (Frame, error)

	frames []Frame

	opened    bool
	released  bool
	readCount int
}

// NewMockSource creates an empty mock source.
func NewMockSource() *MockSource {
	return &MockSource{}
}

// PushGray queues a frame whose grayscale plane is filled with a single
// intensity, which makes the resulting diff magnitude easy to predict.
func (m *MockSource) PushGray(width, height int, value uint8) {
	pix := make([]uint8, width*height)
	for i := range pix {
		pix[i] = value
	}
	luma, _ := motion.NewLuma(width, height, pix)
	m.mu.Lock()
	m.frames = append(m.frames, Frame{
		JPEG:       []byte{0xff, 0xd8, value, 0xff, 0xd9},
		Gray:       luma,
		CapturedAt: time.Now(),
	})
	m.mu.Unlock()
}

// Open records the open call or fails with OpenErr.
func (m *MockSource) Open(_ Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.OpenErr != nil {
		return m.OpenErr
	}
	m.opened = true
	m.released = false
	return nil
}

// Read pops the next queued frame, or fails per ReadErr/ReadFunc.
// An exhausted queue behaves like a device with no frame ready.
func (m *MockSource) Read() (Frame, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.readCount++
	if m.ReadFunc != nil {
		return m.ReadFunc()
	}
	if m.ReadErr != nil {
		return Frame{}, m.ReadErr
	}
	if !m.opened {
		return Frame{}, ErrNotOpen
	}
	if len(m.frames) == 0 {
		return Frame{}, ErrNoFrame
	}
	f := m.frames[0]
	m.frames = m.frames[1:]
	return f, nil
}

// Release records the release call.
func (m *MockSource) Release() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.opened = false
	m.released = true
	return nil
}

// Opened reports whether the source is currently open.
func (m *MockSource) Opened() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.opened
}

// Released reports whether Release has been called.
func (m *MockSource) Released() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.released
}

// ReadCount returns the number of Read calls observed.
func (m *MockSource) ReadCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.readCount
}
