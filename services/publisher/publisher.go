package publisher

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	serviceRepo "eventify/database/repository/service"
	"eventify/models"
	"eventify/services/listing"
	"eventify/services/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ImageCleanup schedules deletion of images a listing dropped.
type ImageCleanup interface {
	ScheduleImageDestroy(ctx context.Context, serviceID, publicID string) error
}

// Publisher applies listing submissions to the service repository.
type Publisher struct {
	Services serviceRepo.ServiceRepository
	Images   storage.ImageStore
	Cleanup  ImageCleanup
	Logger   *zap.Logger
}

func NewPublisher(services serviceRepo.ServiceRepository, images storage.ImageStore, cleanup ImageCleanup, logger *zap.Logger) *Publisher {
	return &Publisher{Services: services, Images: images, Cleanup: cleanup, Logger: logger}
}

// Apply creates a listing when serviceID is empty and updates it otherwise. New files are
// uploaded before the record is written; removed images are only destroyed once the
// updated record has been stored.
func (p *Publisher) Apply(ctx context.Context, serviceID string, sub *listing.Submission) (*models.Service, error) {
	if sub == nil {
		return nil, errors.New("publisher.Apply: empty submission")
	}

	now := time.Now()
	svc := &models.Service{ID: uuid.New().String(), CreatedAt: now}
	if serviceID != "" {
		existing, err := p.Services.GetByID(ctx, serviceID)
		if err != nil {
			return nil, err
		}
		svc = existing
	}

	removed, err := removedImages(svc.Images, sub.RemovedImages)
	if err != nil {
		return nil, err
	}
	if count := len(svc.Images) - len(removed) + len(sub.Files); count > listing.MaxImages {
		return nil, &listing.CapacityError{Limit: listing.MaxImages, Current: len(svc.Images) - len(removed), Requested: len(sub.Files)}
	}

	uploaded, err := p.upload(ctx, sub.Files)
	if err != nil {
		return nil, err
	}

	apply(svc, sub)
	svc.Images = mergeImages(svc.Images, removed, uploaded)
	svc.UpdatedAt = now

	if serviceID == "" {
		err = p.Services.Create(ctx, svc)
	} else {
		err = p.Services.Update(ctx, svc)
	}
	if err != nil {
		p.rollback(ctx, uploaded)
		return nil, err
	}

	for _, ref := range removed {
		p.destroy(ctx, svc.ID, ref)
	}
	p.Logger.Info("listing published",
		zap.String("serviceID", svc.ID),
		zap.Int("uploaded", len(uploaded)),
		zap.Int("removed", len(removed)))
	return svc, nil
}

// apply copies the submitted fields onto svc. Optional fields the sender left out keep
// their stored value.
func apply(svc *models.Service, sub *listing.Submission) {
	svc.Title = strings.TrimSpace(sub.Title)
	svc.Description = strings.TrimSpace(sub.Description)
	svc.Category = sub.Category
	svc.SubCategory = sub.SubCategory
	svc.Location = strings.TrimSpace(sub.Location)
	if sub.Tags != nil {
		svc.Tags = listing.SplitTags(*sub.Tags)
	}
	if sub.Phone != nil {
		svc.Phone = strings.TrimSpace(*sub.Phone)
	}
	if sub.Website != nil {
		svc.Website = strings.TrimSpace(*sub.Website)
	}
	if sub.SocialLinks != nil {
		links := *sub.SocialLinks
		svc.SocialLinks = &links
	}
	if sub.Details != nil {
		svc.Details = sub.Details
	}
	if svc.Details == nil {
		svc.Details = map[string]models.DetailValue{}
	}
	if sub.FAQs != nil {
		svc.FAQs = sub.FAQs
	}
	if svc.FAQs == nil {
		svc.FAQs = []models.FAQ{}
	}
	if svc.Tags == nil {
		svc.Tags = []string{}
	}

	svc.Variants = make([]models.Variant, 0, len(sub.Variants))
	for _, v := range sub.Variants {
		if v.ID == "" {
			v.ID = uuid.New().String()
		}
		svc.Variants = append(svc.Variants, v)
	}
}

// removedImages checks that every removed reference belongs to the listing and drops
// duplicates.
func removedImages(current, refs []string) ([]string, error) {
	known := make(map[string]bool, len(current))
	for _, ref := range current {
		known[ref] = true
	}
	seen := make(map[string]bool, len(refs))
	removed := make([]string, 0, len(refs))
	for _, ref := range refs {
		if !known[ref] {
			return nil, fmt.Errorf("%w: image %q is not part of this listing", ErrUnknownImage, ref)
		}
		if seen[ref] {
			continue
		}
		seen[ref] = true
		removed = append(removed, ref)
	}
	return removed, nil
}

func mergeImages(current, removed, uploaded []string) []string {
	drop := make(map[string]bool, len(removed))
	for _, ref := range removed {
		drop[ref] = true
	}
	images := make([]string, 0, len(current)-len(removed)+len(uploaded))
	for _, ref := range current {
		if !drop[ref] {
			images = append(images, ref)
		}
	}
	return append(images, uploaded...)
}

func (p *Publisher) upload(ctx context.Context, files []*multipart.FileHeader) ([]string, error) {
	uploaded := make([]string, 0, len(files))
	for _, fh := range files {
		ref, err := p.uploadOne(ctx, fh)
		if err != nil {
			p.rollback(ctx, uploaded)
			return nil, err
		}
		uploaded = append(uploaded, ref)
	}
	return uploaded, nil
}

func (p *Publisher) uploadOne(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", fh.Filename, err)
	}
	defer f.Close()
	return p.Images.Upload(ctx, fh.Filename, f)
}

// rollback deletes images uploaded for a submission that was not stored.
func (p *Publisher) rollback(ctx context.Context, uploaded []string) {
	for _, ref := range uploaded {
		if err := p.Images.Delete(ctx, ref); err != nil {
			p.Logger.Warn("failed to roll back uploaded image", zap.String("publicID", ref), zap.Error(err))
		}
	}
}

func (p *Publisher) destroy(ctx context.Context, serviceID, ref string) {
	if p.Cleanup != nil {
		err := p.Cleanup.ScheduleImageDestroy(ctx, serviceID, ref)
		if err == nil {
			return
		}
		p.Logger.Warn("failed to schedule image destroy, deleting inline", zap.String("publicID", ref), zap.Error(err))
	}
	if err := p.Images.Delete(ctx, ref); err != nil {
		p.Logger.Error("failed to delete removed image", zap.String("publicID", ref), zap.Error(err))
	}
}
