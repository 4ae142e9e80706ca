package cron

import (
	"context"
	"encoding/json"
	"fmt"

	"eventify/config"
	"eventify/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// ImageDeleter removes images from the image store.
type ImageDeleter interface {
	Delete(ctx context.Context, publicID string) error
}

// DraftExpirer discards abandoned drafts.
type DraftExpirer interface {
	Expire(ctx context.Context, draftID string) error
}

// RedisOpt returns the asynq connection settings from the app config.
func RedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// NewMux registers the background task handlers.
func NewMux(images ImageDeleter, drafts DraftExpirer, logger *zap.Logger) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeImageDestroy, handleImageDestroy(images, logger))
	mux.HandleFunc(tasks.TypeDraftExpire, handleDraftExpire(drafts, logger))
	return mux
}

// StartWorker runs the asynq server in the background and returns it for shutdown.
func StartWorker(mux *asynq.ServeMux, logger *zap.Logger) *asynq.Server {
	srv := asynq.NewServer(RedisOpt(), asynq.Config{
		Concurrency: 5,
		Queues: map[string]int{
			"default": 1,
		},
	})
	go func() {
		logger.Info("starting background worker")
		if err := srv.Run(mux); err != nil {
			logger.Error("background worker stopped", zap.Error(err))
		}
	}()
	return srv
}

func handleImageDestroy(images ImageDeleter, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p tasks.ImageDestroyPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			return fmt.Errorf("invalid payload: %v: %w", err, asynq.SkipRetry)
		}
		if err := images.Delete(ctx, p.PublicID); err != nil {
			logger.Warn("failed to delete image", zap.String("publicID", p.PublicID), zap.Error(err))
			return err
		}
		logger.Info("image deleted", zap.String("serviceID", p.ServiceID), zap.String("publicID", p.PublicID))
		return nil
	}
}

func handleDraftExpire(drafts DraftExpirer, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p tasks.DraftExpirePayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			return fmt.Errorf("invalid payload: %v: %w", err, asynq.SkipRetry)
		}
		if err := drafts.Expire(ctx, p.DraftID); err != nil {
			logger.Warn("failed to expire draft", zap.String("draftID", p.DraftID), zap.Error(err))
			return err
		}
		return nil
	}
}
