package listing

import (
	"context"
	"errors"
	"fmt"

	"eventify/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Reconciler tracks the image set of a draft: the images of the published service,
// the ones scheduled for removal, and new files waiting to be uploaded.
type Reconciler struct {
	Previews PreviewStore
	Logger   *zap.Logger
}

func NewReconciler(previews PreviewStore, logger *zap.Logger) *Reconciler {
	return &Reconciler{Previews: previews, Logger: logger}
}

// AddFiles stages uploads and appends them to the draft. A batch that would take the
// listing over MaxImages is rejected as a whole with a *CapacityError.
func (r *Reconciler) AddFiles(ctx context.Context, d *models.ServiceDraft, uploads []Upload) error {
	current := d.ImageCount()
	if current+len(uploads) > MaxImages {
		return &CapacityError{Limit: MaxImages, Current: current, Requested: len(uploads)}
	}

	staged := make([]models.NewFile, 0, len(uploads))
	for _, u := range uploads {
		handle, err := r.Previews.Stage(ctx, u)
		if err != nil {
			r.releaseAll(ctx, staged)
			return fmt.Errorf("listing.AddFiles: %w", err)
		}
		staged = append(staged, models.NewFile{
			ID:          uuid.New().String(),
			Filename:    u.Filename,
			ContentType: u.ContentType,
			Size:        u.Size,
			Preview:     handle,
		})
	}
	d.PendingNewFiles = append(d.PendingNewFiles, staged...)
	return nil
}

// RemoveExisting schedules ExistingImages[index] for removal. Removing an image that is
// already scheduled is a no-op.
func (r *Reconciler) RemoveExisting(d *models.ServiceDraft, index int) error {
	if index < 0 || index >= len(d.ExistingImages) {
		return indexError("existing image", index, len(d.ExistingImages))
	}
	ref := d.ExistingImages[index]
	if d.IsRemoved(ref) {
		return nil
	}
	d.PendingRemovals = append(d.PendingRemovals, ref)
	return nil
}

// RemoveNew drops the pending file at index and releases its preview.
func (r *Reconciler) RemoveNew(ctx context.Context, d *models.ServiceDraft, index int) error {
	if index < 0 || index >= len(d.PendingNewFiles) {
		return indexError("new file", index, len(d.PendingNewFiles))
	}
	f := d.PendingNewFiles[index]
	d.PendingNewFiles = append(d.PendingNewFiles[:index], d.PendingNewFiles[index+1:]...)
	if err := r.Previews.Release(ctx, f.Preview); err != nil && !errors.Is(err, ErrPreviewReleased) {
		return fmt.Errorf("listing.RemoveNew: %w", err)
	}
	return nil
}

// Dispose releases the previews of every pending file and clears the list.
func (r *Reconciler) Dispose(ctx context.Context, d *models.ServiceDraft) error {
	files := d.PendingNewFiles
	d.PendingNewFiles = nil
	return r.releaseAll(ctx, files)
}

func (r *Reconciler) releaseAll(ctx context.Context, files []models.NewFile) error {
	var errs []error
	for _, f := range files {
		if err := r.Previews.Release(ctx, f.Preview); err != nil && !errors.Is(err, ErrPreviewReleased) {
			r.Logger.Warn("failed to release preview", zap.String("preview", f.Preview), zap.Error(err))
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
