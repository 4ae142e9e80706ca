package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"eventify/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ServiceReader loads the published service whose variants are being booked.
type ServiceReader interface {
	GetByID(ctx context.Context, id string) (*models.Service, error)
}

// BookingStore receives finished bookings.
type BookingStore interface {
	Create(ctx context.Context, b *models.Booking) error
}

// Service prices selections and creates bookings.
type Service struct {
	Services   ServiceReader
	Store      BookingStore
	Calculator Calculator
	Logger     *zap.Logger
}

func NewService(services ServiceReader, store BookingStore, calc Calculator, logger *zap.Logger) *Service {
	return &Service{Services: services, Store: store, Calculator: calc, Logger: logger}
}

// Variants returns the bookable variants of a service.
func (s *Service) Variants(ctx context.Context, serviceID string) ([]models.Variant, error) {
	svc, err := s.Services.GetByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	return svc.Variants, nil
}

// Quote prices a raw selection for a service.
func (s *Service) Quote(ctx context.Context, serviceID string, selection map[string]int) (models.Quote, error) {
	variants, err := s.Variants(ctx, serviceID)
	if err != nil {
		return models.Quote{}, err
	}
	return s.Calculator.Quote(variants, NormalizeSelection(variants, selection))
}

// Create prices the request and hands the booking to the store. Requests whose total
// is not positive are refused with ErrNothingSelected.
func (s *Service) Create(ctx context.Context, req models.BookingRequest) (*models.Booking, error) {
	if _, err := time.Parse(DateLayout, req.Date); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, req.Date)
	}
	quote, err := s.Quote(ctx, req.ServiceID, req.Selection)
	if err != nil {
		return nil, err
	}
	if err := CheckPolicy(quote); err != nil {
		return nil, err
	}

	b := &models.Booking{
		ID:            uuid.New().String(),
		ServiceID:     req.ServiceID,
		CustomerName:  strings.TrimSpace(req.CustomerName),
		CustomerEmail: strings.TrimSpace(req.CustomerEmail),
		CustomerPhone: strings.TrimSpace(req.CustomerPhone),
		Date:          req.Date,
		Message:       req.Message,
		TotalPrice:    quote.Subtotal,
		LineItems:     quote.LineItems,
		Status:        models.BookingStatusPending,
		CreatedAt:     time.Now(),
	}
	if err := s.Store.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("booking.Create: %w", err)
	}
	s.Logger.Info("booking created",
		zap.String("bookingID", b.ID),
		zap.String("serviceID", b.ServiceID),
		zap.Float64("totalPrice", b.TotalPrice))
	return b, nil
}
