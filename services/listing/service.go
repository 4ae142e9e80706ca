package listing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventify/models"
	"eventify/services/catalog"

	"go.uber.org/zap"
)

// DraftStore persists drafts between editing requests.
type DraftStore interface {
	Get(ctx context.Context, id string) (*models.ServiceDraft, error)
	Save(ctx context.Context, d *models.ServiceDraft) error
	Delete(ctx context.Context, id string) error
}

// ServiceSource loads published services for edit mode.
type ServiceSource interface {
	GetByID(ctx context.Context, id string) (*models.Service, error)
}

// SchemaResolver resolves the dynamic schema of a category.
type SchemaResolver interface {
	Resolve(ctx context.Context, categoryID string) (catalog.Schema, error)
}

// ExpiryScheduler arranges for an abandoned draft to be disposed of later.
type ExpiryScheduler interface {
	ScheduleExpiry(ctx context.Context, draftID string, at time.Time) error
}

// DraftService runs the editing operations of a draft against the draft store.
type DraftService struct {
	Store      DraftStore
	Services   ServiceSource
	Schemas    SchemaResolver
	Reconciler *Reconciler
	Submitter  *Submitter
	Expiry     ExpiryScheduler
	TTL        time.Duration
	Logger     *zap.Logger
}

// Create starts a draft. With a serviceID the draft edits that service.
func (s *DraftService) Create(ctx context.Context, vendorID, serviceID string) (*models.ServiceDraft, error) {
	var d *models.ServiceDraft
	if serviceID == "" {
		d = NewDraft(vendorID)
	} else {
		svc, err := s.Services.GetByID(ctx, serviceID)
		if err != nil {
			return nil, fmt.Errorf("listing.Create: %w", err)
		}
		d = DraftFromService(svc)
	}
	if err := s.Store.Save(ctx, d); err != nil {
		return nil, fmt.Errorf("listing.Create: %w", err)
	}
	s.scheduleExpiry(ctx, d)
	s.Logger.Info("draft created", zap.String("draftID", d.ID), zap.String("mode", string(d.Mode)))
	return d, nil
}

func (s *DraftService) Get(ctx context.Context, id string) (*models.ServiceDraft, error) {
	return s.Store.Get(ctx, id)
}

// Schema resolves the dynamic schema of the draft's current category.
func (s *DraftService) Schema(ctx context.Context, d *models.ServiceDraft) (catalog.Schema, error) {
	if d.Category == "" {
		return catalog.Schema{}, nil
	}
	return s.Schemas.Resolve(ctx, d.Category)
}

func (s *DraftService) UpdateFields(ctx context.Context, id string, patch FieldsPatch) (*models.ServiceDraft, error) {
	return s.mutate(ctx, id, func(d *models.ServiceDraft) error {
		schema, err := s.Schema(ctx, d)
		if err != nil {
			return err
		}
		return ApplyFields(d, patch, schema.Fields)
	})
}

func (s *DraftService) ChangeCategory(ctx context.Context, id, categoryID string) (*models.ServiceDraft, error) {
	return s.mutate(ctx, id, func(d *models.ServiceDraft) error {
		SetCategory(d, categoryID)
		return nil
	})
}

func (s *DraftService) AddVariant(ctx context.Context, id string) (*models.ServiceDraft, error) {
	return s.mutate(ctx, id, func(d *models.ServiceDraft) error {
		AddVariant(d)
		return nil
	})
}

func (s *DraftService) UpdateVariant(ctx context.Context, id string, index int, patch VariantPatch) (*models.ServiceDraft, error) {
	return s.mutate(ctx, id, func(d *models.ServiceDraft) error {
		return UpdateVariant(d, index, patch)
	})
}

func (s *DraftService) RemoveVariant(ctx context.Context, id string, index int) (*models.ServiceDraft, error) {
	return s.mutate(ctx, id, func(d *models.ServiceDraft) error {
		return RemoveVariant(d, index)
	})
}

func (s *DraftService) AddFAQ(ctx context.Context, id string, faq models.FAQ) (*models.ServiceDraft, error) {
	return s.mutate(ctx, id, func(d *models.ServiceDraft) error {
		AddFAQ(d, faq)
		return nil
	})
}

func (s *DraftService) RemoveFAQ(ctx context.Context, id string, index int) (*models.ServiceDraft, error) {
	return s.mutate(ctx, id, func(d *models.ServiceDraft) error {
		return RemoveFAQ(d, index)
	})
}

// AddFiles stages uploads into the draft. Staged previews are released again if the
// draft cannot be saved.
func (s *DraftService) AddFiles(ctx context.Context, id string, uploads []Upload) (*models.ServiceDraft, error) {
	d, err := s.Store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	before := len(d.PendingNewFiles)
	if err := s.Reconciler.AddFiles(ctx, d, uploads); err != nil {
		return nil, err
	}
	d.UpdatedAt = time.Now()
	if err := s.Store.Save(ctx, d); err != nil {
		if relErr := s.Reconciler.releaseAll(ctx, d.PendingNewFiles[before:]); relErr != nil {
			s.Logger.Error("failed to release previews after save error", zap.Error(relErr))
		}
		return nil, fmt.Errorf("listing.AddFiles: %w", err)
	}
	return d, nil
}

func (s *DraftService) RemoveExistingImage(ctx context.Context, id string, index int) (*models.ServiceDraft, error) {
	return s.mutate(ctx, id, func(d *models.ServiceDraft) error {
		return s.Reconciler.RemoveExisting(d, index)
	})
}

func (s *DraftService) RemoveNewFile(ctx context.Context, id string, index int) (*models.ServiceDraft, error) {
	return s.mutate(ctx, id, func(d *models.ServiceDraft) error {
		return s.Reconciler.RemoveNew(ctx, d, index)
	})
}

// Validate runs the draft validator against the draft's category schema.
func (s *DraftService) Validate(ctx context.Context, id string) (ValidationErrors, error) {
	d, err := s.Store.Get(ctx, id)
	if err != nil {
		return ValidationErrors{}, err
	}
	return s.validate(ctx, d)
}

func (s *DraftService) validate(ctx context.Context, d *models.ServiceDraft) (ValidationErrors, error) {
	schema, err := s.Schema(ctx, d)
	if err != nil {
		return ValidationErrors{}, err
	}
	return Validate(d, schema.Fields, d.IsEditMode()), nil
}

// Submit validates and sends the draft. An invalid draft yields ErrInvalidDraft together
// with the validation errors. On success the draft is discarded; on a transport error it
// is kept so that the vendor can retry.
func (s *DraftService) Submit(ctx context.Context, id string) (*models.Service, ValidationErrors, error) {
	d, err := s.Store.Get(ctx, id)
	if err != nil {
		return nil, ValidationErrors{}, err
	}
	verrs, err := s.validate(ctx, d)
	if err != nil {
		return nil, ValidationErrors{}, err
	}
	if !verrs.Valid() {
		return nil, verrs, ErrInvalidDraft
	}

	svc, err := s.Submitter.Submit(ctx, d)
	if err != nil {
		return nil, ValidationErrors{}, err
	}
	if err := s.discard(ctx, d); err != nil {
		s.Logger.Warn("failed to discard submitted draft", zap.String("draftID", d.ID), zap.Error(err))
	}
	s.Logger.Info("draft submitted", zap.String("draftID", d.ID), zap.String("serviceID", svc.ID))
	return svc, ValidationErrors{}, nil
}

// Discard drops the draft and releases its previews.
func (s *DraftService) Discard(ctx context.Context, id string) error {
	d, err := s.Store.Get(ctx, id)
	if err != nil {
		return err
	}
	return s.discard(ctx, d)
}

// Expire discards a draft that has not been touched for TTL. A draft that was edited in
// the meantime gets a new expiry.
func (s *DraftService) Expire(ctx context.Context, id string) error {
	d, err := s.Store.Get(ctx, id)
	if errors.Is(err, ErrDraftNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if deadline := d.UpdatedAt.Add(s.TTL); time.Now().Before(deadline) {
		if s.Expiry != nil {
			return s.Expiry.ScheduleExpiry(ctx, d.ID, deadline)
		}
		return nil
	}
	s.Logger.Info("discarding abandoned draft", zap.String("draftID", d.ID))
	return s.discard(ctx, d)
}

func (s *DraftService) discard(ctx context.Context, d *models.ServiceDraft) error {
	relErr := s.Reconciler.Dispose(ctx, d)
	if err := s.Store.Delete(ctx, d.ID); err != nil {
		return errors.Join(relErr, err)
	}
	return relErr
}

func (s *DraftService) mutate(ctx context.Context, id string, fn func(d *models.ServiceDraft) error) (*models.ServiceDraft, error) {
	d, err := s.Store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(d); err != nil {
		return nil, err
	}
	d.UpdatedAt = time.Now()
	if err := s.Store.Save(ctx, d); err != nil {
		return nil, fmt.Errorf("listing: failed to save draft %s: %w", id, err)
	}
	return d, nil
}

func (s *DraftService) scheduleExpiry(ctx context.Context, d *models.ServiceDraft) {
	if s.Expiry == nil || s.TTL <= 0 {
		return
	}
	if err := s.Expiry.ScheduleExpiry(ctx, d.ID, d.CreatedAt.Add(s.TTL)); err != nil {
		s.Logger.Warn("failed to schedule draft expiry", zap.String("draftID", d.ID), zap.Error(err))
	}
}
