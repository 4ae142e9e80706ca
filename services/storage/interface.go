package storage

import (
	"context"
	"io"
)

// ImageStore keeps the images of published listings. Images are addressed by the
// public id returned from Upload.
type ImageStore interface {
	Upload(ctx context.Context, filename string, content io.Reader) (string, error)
	Delete(ctx context.Context, publicID string) error
	URL(publicID string) (string, error)
}
