package catalog

import (
	"context"
	"fmt"
	"sync"

	"eventify/models"

	"go.uber.org/zap"
)

// CategorySource supplies the category configuration, usually from the database.
type CategorySource interface {
	GetAll(ctx context.Context) ([]models.CategoryConfig, error)
}

// Service keeps the last loaded catalog in memory.
type Service struct {
	Source CategorySource
	Logger *zap.Logger

	mu      sync.RWMutex
	current *Catalog
}

func NewService(source CategorySource, logger *zap.Logger) *Service {
	return &Service{Source: source, Logger: logger}
}

// Reload fetches the categories from the source and swaps the cached catalog.
func (s *Service) Reload(ctx context.Context) error {
	categories, err := s.Source.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("catalog.Reload: %w", err)
	}
	c := New(categories)
	s.mu.Lock()
	s.current = c
	s.mu.Unlock()
	s.Logger.Info("category catalog loaded", zap.Int("categories", len(categories)))
	return nil
}

// Catalog returns the cached catalog, loading it on first use.
func (s *Service) Catalog(ctx context.Context) (*Catalog, error) {
	s.mu.RLock()
	c := s.current
	s.mu.RUnlock()
	if c != nil {
		return c, nil
	}
	if err := s.Reload(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, nil
}

// Resolve looks up the schema of categoryID in the cached catalog.
func (s *Service) Resolve(ctx context.Context, categoryID string) (Schema, error) {
	c, err := s.Catalog(ctx)
	if err != nil {
		return Schema{}, err
	}
	return c.Resolve(categoryID), nil
}
