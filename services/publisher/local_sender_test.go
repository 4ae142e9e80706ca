package publisher

import (
	"bytes"
	"context"
	"io"
	"testing"

	"eventify/models"
	"eventify/services/listing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLocalSender_SubmitsDraft(t *testing.T) {
	repo := newMemoryRepo(&models.Service{ID: "svc-1", Title: "Old", Images: []string{"img-0", "img-1"}})
	images := newMemoryImages()
	cleanup := &recordingCleanup{}
	staged := map[string][]byte{"preview-1": []byte("jpeg bytes")}
	open := func(handle string) (io.ReadCloser, error) {
		data, ok := staged[handle]
		if !ok {
			return nil, listing.ErrPreviewReleased
		}
		return io.NopCloser(bytes.NewReader(data)), nil
	}
	sender := NewLocalSender(NewPublisher(repo, images, cleanup, zap.NewNop()), open)
	submitter := listing.NewSubmitter(sender, zap.NewNop())

	d := listing.DraftFromService(repo.services["svc-1"])
	d.Title = "Renovated"
	d.Variants = []models.Variant{{Name: "Day", Unit: "day", Price: models.Float(10), MinQty: models.Int(1)}}
	d.PendingRemovals = []string{"img-0"}
	d.PendingNewFiles = []models.NewFile{{ID: "n1", Filename: "new.jpg", ContentType: "image/jpeg", Preview: "preview-1"}}

	svc, err := submitter.Submit(context.Background(), d)
	require.NoError(t, err)

	assert.Equal(t, "svc-1", svc.ID)
	assert.Equal(t, "Renovated", svc.Title)
	assert.Equal(t, []string{"img-1", "eventify/services/1-new.jpg"}, svc.Images)
	assert.Equal(t, "jpeg bytes", images.uploaded["eventify/services/1-new.jpg"])
	assert.Equal(t, []string{"img-0"}, cleanup.scheduled)
	require.Len(t, svc.Variants, 1)
	assert.NotEmpty(t, svc.Variants[0].ID)
}
