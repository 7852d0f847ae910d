package motion

import "fmt"

// Luma is a single-channel 8-bit intensity plane. A zero Luma means
// "no frame yet" and is used as the absent baseline on the first tick.
type Luma struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewLuma wraps a pixel buffer, checking that its length matches the
// declared dimensions.
func NewLuma(width, height int, pix []uint8) (Luma, error) {
	if width <= 0 || height <= 0 {
		return Luma{}, fmt.Errorf("motion: invalid luma dimensions %dx%d", width, height)
	}
	if len(pix) != width*height {
		return Luma{}, fmt.Errorf("motion: luma buffer is %d bytes, want %d", len(pix), width*height)
	}
	return Luma{Width: width, Height: height, Pix: pix}, nil
}

// Empty reports whether the plane holds no pixels.
func (l Luma) Empty() bool {
	return len(l.Pix) == 0
}

// SameShape reports whether two planes have identical dimensions.
func (l Luma) SameShape(other Luma) bool {
	return l.Width == other.Width && l.Height == other.Height
}
