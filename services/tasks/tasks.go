package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

const (
	TypeImageDestroy = "image:destroy"
	TypeDraftExpire  = "draft:expire"
)

// ImageDestroyPayload names an image removed from a published listing.
type ImageDestroyPayload struct {
	ServiceID string `json:"serviceId"`
	PublicID  string `json:"publicId"`
}

// DraftExpirePayload names a draft to check for abandonment.
type DraftExpirePayload struct {
	DraftID string `json:"draftId"`
}

func NewImageDestroyTask(p ImageDestroyPayload) (*asynq.Task, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeImageDestroy, b, asynq.MaxRetry(5)), nil
}

func NewDraftExpireTask(p DraftExpirePayload) (*asynq.Task, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeDraftExpire, b, asynq.MaxRetry(3)), nil
}

// Enqueuer is the part of *asynq.Client the schedulers use.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Scheduler enqueues background work on asynq.
type Scheduler struct {
	Client Enqueuer
}

func NewScheduler(client Enqueuer) *Scheduler {
	return &Scheduler{Client: client}
}

// ScheduleImageDestroy queues the deletion of an image that a listing no longer uses.
func (s *Scheduler) ScheduleImageDestroy(ctx context.Context, serviceID, publicID string) error {
	task, err := NewImageDestroyTask(ImageDestroyPayload{ServiceID: serviceID, PublicID: publicID})
	if err != nil {
		return err
	}
	if _, err := s.Client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("tasks: failed to enqueue image destroy for %s: %w", publicID, err)
	}
	return nil
}

// ScheduleExpiry queues an abandonment check for a draft at the given time.
func (s *Scheduler) ScheduleExpiry(ctx context.Context, draftID string, at time.Time) error {
	task, err := NewDraftExpireTask(DraftExpirePayload{DraftID: draftID})
	if err != nil {
		return err
	}
	if _, err := s.Client.EnqueueContext(ctx, task, asynq.ProcessAt(at)); err != nil {
		return fmt.Errorf("tasks: failed to enqueue expiry for draft %s: %w", draftID, err)
	}
	return nil
}
