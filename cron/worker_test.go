package cron

import (
	"context"
	"errors"
	"testing"

	"eventify/services/tasks"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeImages struct {
	deleted []string
	err     error
}

func (f *fakeImages) Delete(_ context.Context, publicID string) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, publicID)
	return nil
}

type fakeDrafts struct {
	expired []string
}

func (f *fakeDrafts) Expire(_ context.Context, draftID string) error {
	f.expired = append(f.expired, draftID)
	return nil
}

func TestMux_ImageDestroy(t *testing.T) {
	images := &fakeImages{}
	mux := NewMux(images, &fakeDrafts{}, zap.NewNop())
	task, err := tasks.NewImageDestroyTask(tasks.ImageDestroyPayload{ServiceID: "svc-1", PublicID: "img-1"})
	require.NoError(t, err)

	require.NoError(t, mux.ProcessTask(context.Background(), task))

	assert.Equal(t, []string{"img-1"}, images.deleted)
}

func TestMux_ImageDestroyFailureRetries(t *testing.T) {
	mux := NewMux(&fakeImages{err: errors.New("cloudinary timeout")}, &fakeDrafts{}, zap.NewNop())
	task, err := tasks.NewImageDestroyTask(tasks.ImageDestroyPayload{PublicID: "img-1"})
	require.NoError(t, err)

	err = mux.ProcessTask(context.Background(), task)

	require.Error(t, err)
	assert.False(t, errors.Is(err, asynq.SkipRetry))
}

func TestMux_DraftExpire(t *testing.T) {
	drafts := &fakeDrafts{}
	mux := NewMux(&fakeImages{}, drafts, zap.NewNop())
	task, err := tasks.NewDraftExpireTask(tasks.DraftExpirePayload{DraftID: "draft-1"})
	require.NoError(t, err)

	require.NoError(t, mux.ProcessTask(context.Background(), task))

	assert.Equal(t, []string{"draft-1"}, drafts.expired)
}

func TestMux_BadPayloadSkipsRetry(t *testing.T) {
	mux := NewMux(&fakeImages{}, &fakeDrafts{}, zap.NewNop())

	err := mux.ProcessTask(context.Background(), asynq.NewTask(tasks.TypeDraftExpire, []byte("{")))

	assert.ErrorIs(t, err, asynq.SkipRetry)
}
