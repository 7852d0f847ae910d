package capture

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Store persists captured frames. The session hands it the encoded
// frame and a file name; layout beyond that is the store's business.
type Store interface {
	Save(jpeg []byte, name string) (path string, err error)
}

// DiskStore writes frames as JPEG files under a single directory.
type DiskStore struct {
	dir string

	mkdir sync.Once
}

// NewDiskStore creates a store rooted at dir. The directory is created
// on first save.
func NewDiskStore(dir string) *DiskStore {
	return &DiskStore{dir: dir}
}

// Save writes the frame and returns the full path it was written to.
func (s *DiskStore) Save(jpeg []byte, name string) (string, error) {
	var mkdirErr error
	s.mkdir.Do(func() {
		mkdirErr = os.MkdirAll(s.dir, 0o755)
	})
	if mkdirErr != nil {
		return "", fmt.Errorf("capture: create %s: %w", s.dir, mkdirErr)
	}

	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, jpeg, 0o644); err != nil {
		return "", fmt.Errorf("capture: save %s: %w", path, err)
	}
	return path, nil
}
