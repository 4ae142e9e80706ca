package listing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Upload is a file chosen by the vendor.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// PreviewStore stages uploaded files until the draft is submitted or discarded. Every
// handle returned by Stage must be released exactly once.
type PreviewStore interface {
	Stage(ctx context.Context, u Upload) (string, error)
	Open(handle string) (io.ReadCloser, error)
	Release(ctx context.Context, handle string) error
}

// DiskPreviewStore keeps staged files in a local directory.
type DiskPreviewStore struct {
	Dir string
}

func NewDiskPreviewStore(dir string) (*DiskPreviewStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("listing.NewDiskPreviewStore: %w", err)
	}
	return &DiskPreviewStore{Dir: dir}, nil
}

// Stage copies the upload into the store. The handle is the staged file name.
func (s *DiskPreviewStore) Stage(ctx context.Context, u Upload) (string, error) {
	handle := uuid.New().String() + "-" + sanitizeFilename(u.Filename)
	f, err := os.OpenFile(s.path(handle), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to stage %s: %w", u.Filename, err)
	}
	if _, err := io.Copy(f, u.Content); err != nil {
		f.Close()
		os.Remove(s.path(handle))
		return "", fmt.Errorf("failed to stage %s: %w", u.Filename, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(s.path(handle))
		return "", fmt.Errorf("failed to stage %s: %w", u.Filename, err)
	}
	return handle, nil
}

func (s *DiskPreviewStore) Open(handle string) (io.ReadCloser, error) {
	f, err := os.Open(s.path(handle))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrPreviewReleased
	}
	return f, err
}

// Release deletes the staged file.
func (s *DiskPreviewStore) Release(ctx context.Context, handle string) error {
	err := os.Remove(s.path(handle))
	if errors.Is(err, os.ErrNotExist) {
		return ErrPreviewReleased
	}
	return err
}

// Path returns the location of a staged file on disk.
func (s *DiskPreviewStore) Path(handle string) string {
	return s.path(handle)
}

func (s *DiskPreviewStore) path(handle string) string {
	return filepath.Join(s.Dir, filepath.Base(handle))
}

func sanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		return "file"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		}
		return '_'
	}, name)
}
