package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"toiletmap-api/internal/geo"
	"toiletmap-api/internal/identity"
	"toiletmap-api/internal/metrics"
	"toiletmap-api/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ToiletStore reads and writes shared toilet records.
type ToiletStore interface {
	FetchAllToilets(ctx context.Context, limit int) ([]models.ToiletRecord, error)
	FetchToiletByLocation(ctx context.Context, loc models.Location) (*models.ToiletRecord, error)
	CreateToilet(ctx context.Context, rec models.ToiletRecord, id string) error
	FetchToilet(ctx context.Context, id string) (*models.ToiletRecord, error)
	FetchToiletsBySender(ctx context.Context, sender string) ([]models.ToiletRecord, error)
	UpdateToilet(ctx context.Context, rec models.ToiletRecord) error
	DeleteToilet(ctx context.Context, uid, id string) error
}

// ArchiveStore reads and writes a user's archived toilets.
type ArchiveStore interface {
	FetchArchived(ctx context.Context, ownerID string) ([]models.ArchivedRecord, error)
	CreateArchived(ctx context.Context, rec models.ArchivedRecord, id string) error
	DeleteArchived(ctx context.Context, ownerID, id string) error
}

// ToiletService creates toilets and archives without duplicating places.
type ToiletService struct {
	toilets      ToiletStore
	archives     ArchiveStore
	resolver     *identity.Resolver
	ambientLimit int
}

// NewToiletService creates a new toilet service
func NewToiletService(toilets ToiletStore, archives ArchiveStore, resolver *identity.Resolver, ambientLimit int) *ToiletService {
	return &ToiletService{toilets: toilets, archives: archives, resolver: resolver, ambientLimit: ambientLimit}
}

// snapshot returns the known toilets around loc: the ambient window plus the
// exact match at loc when it falls outside that window.
func (s *ToiletService) snapshot(ctx context.Context, loc models.Location) ([]models.ToiletRecord, error) {
	known, err := s.toilets.FetchAllToilets(ctx, s.ambientLimit)
	if err != nil {
		return nil, fmt.Errorf("service: failed to fetch toilets: %w", err)
	}
	for _, t := range known {
		if geo.Same(t.Location(), loc) {
			return known, nil
		}
	}

	exact, err := s.toilets.FetchToiletByLocation(ctx, loc)
	switch {
	case errors.Is(err, ErrNotFound):
		return known, nil
	case err != nil:
		return nil, fmt.Errorf("service: failed to fetch toilet by location: %w", err)
	}
	return append(known, *exact), nil
}

// Resolve returns the id of the toilet at loc, or a fresh id with isNew set
// when none exists. Nothing is written.
func (s *ToiletService) Resolve(ctx context.Context, loc models.Location) (id string, isNew bool, err error) {
	if err := validateLocation(loc); err != nil {
		return "", false, err
	}
	known, err := s.snapshot(ctx, loc)
	if err != nil {
		return "", false, err
	}
	id, isNew = s.resolver.Resolve(loc, known)
	return id, isNew, nil
}

// Create stores rec unless a toilet already exists at its location, in which
// case the existing toilet is returned with created=false.
func (s *ToiletService) Create(ctx context.Context, uid string, rec models.ToiletRecord) (*models.ToiletRecord, bool, error) {
	if uid == "" {
		return nil, false, ErrNoCurrentUser
	}
	loc := rec.Location()
	if err := validateLocation(loc); err != nil {
		return nil, false, err
	}
	known, err := s.snapshot(ctx, loc)
	if err != nil {
		return nil, false, err
	}

	id, isNew := s.resolver.Resolve(loc, known)
	if !isNew {
		for _, t := range known {
			if t.ID == id {
				return &t, false, nil
			}
		}
	}

	rec.ID = ""
	rec.Sender = uid
	if err := s.toilets.CreateToilet(ctx, rec, id); err != nil {
		return nil, false, fmt.Errorf("service: failed to create toilet: %w", err)
	}
	metrics.ToiletsMintedTotal.Inc()
	log.Info().Str("toilet_id", id).Str("sender", uid).Msg("toilet created")

	rec.ID = id
	return &rec, true, nil
}

// EnsureToilet returns the id of the toilet at rec's location, creating it
// first when the place is unknown.
func (s *ToiletService) EnsureToilet(ctx context.Context, uid string, rec models.ToiletRecord) (string, error) {
	t, _, err := s.Create(ctx, uid, rec)
	if err != nil {
		return "", err
	}
	return t.ID, nil
}

// Get returns the toilet stored under id.
func (s *ToiletService) Get(ctx context.Context, id string) (*models.ToiletRecord, error) {
	t, err := s.toilets.FetchToilet(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: failed to fetch toilet: %w", err)
	}
	return t, nil
}

// ListCreated returns the toilets uid registered, newest first.
func (s *ToiletService) ListCreated(ctx context.Context, uid string) ([]models.ToiletRecord, error) {
	if uid == "" {
		return nil, ErrNoCurrentUser
	}
	toilets, err := s.toilets.FetchToiletsBySender(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("service: failed to fetch created toilets: %w", err)
	}
	return toilets, nil
}

// ToiletEdit carries the editable fields of a toilet. The location is the
// toilet's identity and cannot be edited.
type ToiletEdit struct {
	Name   string `json:"name" binding:"required"`
	Detail string `json:"detail"`
}

// Update renames one of uid's toilets and returns the stored result.
func (s *ToiletService) Update(ctx context.Context, uid, id string, edit ToiletEdit) (*models.ToiletRecord, error) {
	if uid == "" {
		return nil, ErrNoCurrentUser
	}
	name := strings.TrimSpace(edit.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", ErrInvalidInput)
	}

	rec := models.ToiletRecord{ID: id, Sender: uid, Name: name, Detail: strings.TrimSpace(edit.Detail)}
	if err := s.toilets.UpdateToilet(ctx, rec); err != nil {
		return nil, fmt.Errorf("service: failed to update toilet: %w", err)
	}
	return s.Get(ctx, id)
}

// Delete removes one of uid's toilets.
func (s *ToiletService) Delete(ctx context.Context, uid, id string) error {
	if uid == "" {
		return ErrNoCurrentUser
	}
	if err := s.toilets.DeleteToilet(ctx, uid, id); err != nil {
		return fmt.Errorf("service: failed to delete toilet: %w", err)
	}
	log.Info().Str("toilet_id", id).Str("sender", uid).Msg("toilet deleted")
	return nil
}

// ArchiveRequest describes a place the user wants to bookmark.
type ArchiveRequest struct {
	Name      string  `json:"name"`
	Detail    string  `json:"detail"`
	Memo      string  `json:"memo"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Location returns the requested coordinates.
func (r ArchiveRequest) Location() models.Location {
	return models.Location{Latitude: r.Latitude, Longitude: r.Longitude}
}

// Archive bookmarks the place for uid. The backing toilet is created when
// the place is unknown. Archiving a place twice returns the first archive.
func (s *ToiletService) Archive(ctx context.Context, uid string, req ArchiveRequest) (*models.ArchivedRecord, bool, error) {
	if uid == "" {
		return nil, false, ErrNoCurrentUser
	}
	loc := req.Location()
	if err := validateLocation(loc); err != nil {
		return nil, false, err
	}

	existing, err := s.archives.FetchArchived(ctx, uid)
	if err != nil {
		return nil, false, fmt.Errorf("service: failed to fetch archived toilets: %w", err)
	}
	for _, a := range existing {
		if geo.Same(a.Location(), loc) {
			return &a, false, nil
		}
	}

	toiletID, err := s.EnsureToilet(ctx, uid, models.ToiletRecord{
		Name:      req.Name,
		Detail:    req.Detail,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	if err != nil {
		return nil, false, err
	}

	rec := models.ArchivedRecord{
		ToiletRef: toiletID,
		Sender:    uid,
		Name:      req.Name,
		Detail:    req.Detail,
		Memo:      req.Memo,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	}
	id := uuid.NewString()
	if err := s.archives.CreateArchived(ctx, rec, id); err != nil {
		return nil, false, fmt.Errorf("service: failed to create archived toilet: %w", err)
	}

	rec.ID = id
	return &rec, true, nil
}

// Unarchive removes one of uid's archives.
func (s *ToiletService) Unarchive(ctx context.Context, uid, id string) error {
	if uid == "" {
		return ErrNoCurrentUser
	}
	if err := s.archives.DeleteArchived(ctx, uid, id); err != nil {
		return fmt.Errorf("service: failed to delete archived toilet: %w", err)
	}
	return nil
}
