package serviceRepo

import (
	"context"

	"eventify/models"
)

// ServiceRepository defines methods for published service data access.
type ServiceRepository interface {
	// GetByID retrieves a service by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Service, error)
	// GetByCategory returns the services listed under a category.
	GetByCategory(ctx context.Context, categoryID string) ([]models.Service, error)
	// Create inserts a new service record.
	Create(ctx context.Context, svc *models.Service) error
	// Update replaces an existing service record.
	Update(ctx context.Context, svc *models.Service) error
	// Delete removes a service record by its ID.
	Delete(ctx context.Context, id string) error
}
