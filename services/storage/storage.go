package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"
)

// CloudinaryImageStore implements ImageStore on Cloudinary.
type CloudinaryImageStore struct {
	cld    *cloudinary.Cloudinary
	folder string
	logger *zap.Logger
}

// NewCloudinaryImageStore connects to Cloudinary with the given credentials.
func NewCloudinaryImageStore(cloudName, apiKey, apiSecret, folder string, logger *zap.Logger) (*CloudinaryImageStore, error) {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, fmt.Errorf("cloudinary credentials not set in configuration")
	}
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("storage.NewCloudinaryImageStore: failed to initialize Cloudinary: %w", err)
	}
	cld.Config.URL.Secure = true
	return &CloudinaryImageStore{cld: cld, folder: folder, logger: logger}, nil
}

// Upload stores an image and returns its permanent public id.
func (s *CloudinaryImageStore) Upload(ctx context.Context, filename string, content io.Reader) (string, error) {
	result, err := s.cld.Upload.Upload(ctx, content, uploader.UploadParams{
		Folder:         s.folder,
		PublicID:       strings.TrimSuffix(path.Base(filename), path.Ext(filename)),
		UniqueFilename: api.Bool(true),
		ResourceType:   "image",
	})
	if err != nil {
		return "", fmt.Errorf("CloudinaryImageStore: failed to upload %s: %w", filename, err)
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("CloudinaryImageStore: upload of %s rejected: %s", filename, result.Error.Message)
	}
	if result.PublicID == "" {
		return "", fmt.Errorf("CloudinaryImageStore: no public ID returned for %s", filename)
	}
	s.logger.Debug("image uploaded", zap.String("publicID", result.PublicID))
	return result.PublicID, nil
}

// Delete removes an image by public id.
func (s *CloudinaryImageStore) Delete(ctx context.Context, publicID string) error {
	result, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("CloudinaryImageStore: failed to delete %s: %w", publicID, err)
	}
	if result.Result != "ok" && result.Result != "not found" {
		return fmt.Errorf("CloudinaryImageStore: delete of %s returned %q", publicID, result.Result)
	}
	return nil
}

// URL builds the delivery URL of an image.
func (s *CloudinaryImageStore) URL(publicID string) (string, error) {
	img, err := s.cld.Image(publicID)
	if err != nil {
		return "", fmt.Errorf("CloudinaryImageStore: failed to get asset: %w", err)
	}
	url, err := img.String()
	if err != nil {
		return "", fmt.Errorf("CloudinaryImageStore: failed to get URL string: %w", err)
	}
	return url, nil
}
