package publisher

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"

	"eventify/models"
	"eventify/services/listing"
)

const maxFormMemory = 32 << 20

// LocalSender delivers payloads to an in-process Publisher. The payload goes through
// the same multipart encoding as a remote submission.
type LocalSender struct {
	Publisher *Publisher
	Open      listing.Opener
}

func NewLocalSender(p *Publisher, open listing.Opener) *LocalSender {
	return &LocalSender{Publisher: p, Open: open}
}

func (s *LocalSender) Send(ctx context.Context, p *listing.Payload) (*models.Service, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if err := p.WriteMultipart(mw, s.Open); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	form, err := multipart.NewReader(&body, mw.Boundary()).ReadForm(maxFormMemory)
	if err != nil {
		return nil, fmt.Errorf("publisher.LocalSender: %w", err)
	}
	defer form.RemoveAll()

	sub, err := listing.DecodeMultipart(form)
	if err != nil {
		return nil, err
	}
	return s.Publisher.Apply(ctx, p.ServiceID, sub)
}
