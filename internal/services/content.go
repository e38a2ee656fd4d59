package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"festregistration/internal/cache"
	"festregistration/internal/domain"
)

const contentReadTTL = 60 * time.Second

type contentService struct {
	store domain.ContentStore
	reads *cache.TTLCache[json.RawMessage]
}

// NewContentService returns a ContentService over the given store with a
// short read-through cache. A Put refreshes the cached entry so a caller
// reading its own write observes it immediately.
func NewContentService(store domain.ContentStore) domain.ContentService {
	return &contentService{
		store: store,
		reads: cache.NewTTLCache[json.RawMessage](contentReadTTL),
	}
}

func (s *contentService) GetSection(ctx context.Context, section string) (json.RawMessage, error) {
	if body, ok := s.reads.Get(section); ok {
		return body, nil
	}
	body, err := s.store.Get(ctx, section)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get content section: %w", err)
	}
	s.reads.Set(section, body)
	return body, nil
}

func (s *contentService) PutSection(ctx context.Context, section string, body json.RawMessage) error {
	if section == "" {
		return fmt.Errorf("section is required: %w", domain.ErrInvalidInput)
	}
	if !json.Valid(body) {
		return fmt.Errorf("body is not valid JSON: %w", domain.ErrInvalidInput)
	}
	if err := s.store.Put(ctx, section, body); err != nil {
		return fmt.Errorf("put content section: %w", err)
	}
	s.reads.Set(section, body)
	return nil
}
