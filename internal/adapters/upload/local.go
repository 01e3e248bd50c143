package upload

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"eventhub/internal/domain"
)

type localImageStore struct {
	dir string
}

// NewLocalImageStore returns an ImageStore that writes uploaded images to dir,
// creating it if needed. Stored paths are relative to the working directory
// and treated as opaque by the rest of the system.
func NewLocalImageStore(dir string) (domain.ImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &localImageStore{dir: dir}, nil
}

func (s *localImageStore) Save(filename, contentType string, r io.Reader) (string, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return "", domain.NewValidationError("file must be an image")
	}
	// Timestamp prefix avoids collisions; Base strips any path components a
	// client may have smuggled into the filename.
	name := fmt.Sprintf("%d-%s", time.Now().UnixNano(), filepath.Base(filename))
	path := filepath.Join(s.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write image file: %w", err)
	}
	return path, nil
}
