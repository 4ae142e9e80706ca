package draftRepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"eventify/models"
	"eventify/services/listing"
	"eventify/utils"

	"github.com/go-redis/redis/v8"
)

// RedisDraftStore keeps drafts as JSON documents in Redis.
type RedisDraftStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisDraftStore creates a store whose entries live for ttl after their last save.
func NewRedisDraftStore(client *redis.Client, ttl time.Duration) *RedisDraftStore {
	return &RedisDraftStore{client: client, ttl: ttl}
}

func (s *RedisDraftStore) key(id string) string {
	return utils.DraftCachePrefix + id
}

func (s *RedisDraftStore) Get(ctx context.Context, id string) (*models.ServiceDraft, error) {
	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("draft %s: %w", id, listing.ErrDraftNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load draft %s: %w", id, err)
	}
	var d models.ServiceDraft
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to decode draft %s: %w", id, err)
	}
	return &d, nil
}

func (s *RedisDraftStore) Save(ctx context.Context, d *models.ServiceDraft) error {
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to encode draft %s: %w", d.ID, err)
	}
	if err := s.client.Set(ctx, s.key(d.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save draft %s: %w", d.ID, err)
	}
	return nil
}

func (s *RedisDraftStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete draft %s: %w", id, err)
	}
	return nil
}
