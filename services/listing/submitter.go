package listing

import (
	"context"

	"eventify/models"

	"go.uber.org/zap"
)

// Sender delivers a payload to the listing backend. It is called once per submission.
type Sender interface {
	Send(ctx context.Context, p *Payload) (*models.Service, error)
}

// Submitter serializes a draft and hands it to the Sender. It does not retry; a
// transport error is returned as is.
type Submitter struct {
	Sender Sender
	Logger *zap.Logger
}

func NewSubmitter(sender Sender, logger *zap.Logger) *Submitter {
	return &Submitter{Sender: sender, Logger: logger}
}

// Submit sends d. The draft must have passed Validate.
func (s *Submitter) Submit(ctx context.Context, d *models.ServiceDraft) (*models.Service, error) {
	p, err := Serialize(d)
	if err != nil {
		return nil, err
	}
	svc, err := s.Sender.Send(ctx, p)
	if err != nil {
		s.Logger.Warn("listing submission failed",
			zap.String("draftID", d.ID),
			zap.String("serviceID", d.ServiceID),
			zap.Error(err))
		return nil, err
	}
	return svc, nil
}
