package service

import (
	"context"
	"errors"
	"fmt"

	"toiletmap-api/internal/models"
)

// HomeStore reads and writes the per-user home toilet.
type HomeStore interface {
	GetHome(ctx context.Context, ownerID string) (*models.HomeRecord, error)
	PutHome(ctx context.Context, ownerID string, h models.HomeRecord) error
}

// HomeService reads and replaces a user's home toilet.
type HomeService struct {
	homes HomeStore
}

// NewHomeService creates a new home service
func NewHomeService(homes HomeStore) *HomeService {
	return &HomeService{homes: homes}
}

// Get returns uid's home toilet, or nil when none is registered.
func (s *HomeService) Get(ctx context.Context, uid string) (*models.HomeRecord, error) {
	if uid == "" {
		return nil, ErrNoCurrentUser
	}
	h, err := s.homes.GetHome(ctx, uid)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("service: failed to get home toilet: %w", err)
	}
	return h, nil
}

// Put replaces uid's home toilet.
func (s *HomeService) Put(ctx context.Context, uid string, h models.HomeRecord) (*models.HomeRecord, error) {
	if uid == "" {
		return nil, ErrNoCurrentUser
	}
	if err := validateLocation(h.Location()); err != nil {
		return nil, err
	}
	h.Sender = uid
	if err := s.homes.PutHome(ctx, uid, h); err != nil {
		return nil, fmt.Errorf("service: failed to put home toilet: %w", err)
	}
	return &h, nil
}
