package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"toiletmap-api/internal/geo"
	"toiletmap-api/internal/metrics"
	"toiletmap-api/internal/models"
	"toiletmap-api/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// DiaryRemote is the shared diary store.
type DiaryRemote interface {
	CreateDiary(ctx context.Context, d models.DiaryEntry) error
	ListDiaries(ctx context.Context, uid string) ([]models.DiaryEntry, error)
	UpdateDiary(ctx context.Context, d models.DiaryEntry) error
	DeleteDiary(ctx context.Context, uid, id string) error
}

// DiaryLocal holds entries recorded offline until they are synced.
type DiaryLocal interface {
	Save(ctx context.Context, d models.DiaryEntry) error
	List(ctx context.Context, sender string) ([]models.DiaryEntry, error)
	Delete(ctx context.Context, ids ...string) error
}

// DiaryPlaces is what the diary needs to name the toilet of a visit.
type DiaryPlaces interface {
	FetchAllToilets(ctx context.Context, limit int) ([]models.ToiletRecord, error)
	GetHome(ctx context.Context, ownerID string) (*models.HomeRecord, error)
}

// DiaryService records toilet visits.
type DiaryService struct {
	remote       DiaryRemote
	local        DiaryLocal
	places       DiaryPlaces
	ambientLimit int
	now          func() time.Time
}

// NewDiaryService creates a diary service. local may be nil, which disables
// offline recording.
func NewDiaryService(remote DiaryRemote, local DiaryLocal, places DiaryPlaces, ambientLimit int) *DiaryService {
	return &DiaryService{remote: remote, local: local, places: places, ambientLimit: ambientLimit, now: time.Now}
}

// DiaryRequest describes a visit.
type DiaryRequest struct {
	Type      string    `json:"toilet_diary_type" binding:"required"`
	Date      time.Time `json:"date"`
	Memo      string    `json:"memo"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
}

var errLocalDisabled = errors.New("service: local diary store is not configured")

func (s *DiaryService) build(ctx context.Context, uid string, req DiaryRequest) (models.DiaryEntry, error) {
	if uid == "" {
		return models.DiaryEntry{}, ErrNoCurrentUser
	}
	typ, err := models.ParseDiaryType(req.Type)
	if err != nil {
		return models.DiaryEntry{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	loc := models.Location{Latitude: req.Latitude, Longitude: req.Longitude}
	if err := validateLocation(loc); err != nil {
		return models.DiaryEntry{}, err
	}

	now := s.now().UTC()
	date := req.Date
	if date.IsZero() {
		date = now
	}

	d := models.DiaryEntry{
		ID:          uuid.NewString(),
		Sender:      uid,
		Type:        typ,
		Date:        date,
		Memo:        req.Memo,
		Latitude:    loc.Latitude,
		Longitude:   loc.Longitude,
		SharedUsers: []string{uid},
		CreatedAt:   now,
	}
	d.AtHome, d.ToiletID, err = s.placeOf(ctx, uid, loc)
	if err != nil {
		return models.DiaryEntry{}, err
	}
	return d, nil
}

// placeOf matches loc against the user's home first, then the ambient set.
func (s *DiaryService) placeOf(ctx context.Context, uid string, loc models.Location) (atHome bool, toiletID string, err error) {
	home, err := s.places.GetHome(ctx, uid)
	switch {
	case err == nil && home != nil && geo.Same(home.Location(), loc):
		return true, "", nil
	case err != nil && !errors.Is(err, ErrNotFound):
		return false, "", fmt.Errorf("service: failed to get home toilet: %w", err)
	}

	toilets, err := s.places.FetchAllToilets(ctx, s.ambientLimit)
	if err != nil {
		return false, "", fmt.Errorf("service: failed to fetch toilets: %w", err)
	}
	for _, t := range toilets {
		if geo.Same(t.Location(), loc) {
			return false, t.ID, nil
		}
	}
	return false, "", nil
}

// Record stores a visit in the shared store.
func (s *DiaryService) Record(ctx context.Context, uid string, req DiaryRequest) (*models.DiaryEntry, error) {
	d, err := s.build(ctx, uid, req)
	if err != nil {
		return nil, err
	}
	if err := s.remote.CreateDiary(ctx, d); err != nil {
		return nil, fmt.Errorf("service: failed to create diary: %w", err)
	}
	return &d, nil
}

// RecordLocal stores a visit in the local store for a later SyncLocal.
func (s *DiaryService) RecordLocal(ctx context.Context, uid string, req DiaryRequest) (*models.DiaryEntry, error) {
	if s.local == nil {
		return nil, errLocalDisabled
	}
	d, err := s.build(ctx, uid, req)
	if err != nil {
		return nil, err
	}
	if err := s.local.Save(ctx, d); err != nil {
		return nil, fmt.Errorf("service: failed to save local diary: %w", err)
	}
	return &d, nil
}

// SyncLocal uploads uid's local entries and removes the uploaded ones from
// the local store. Entries already present remotely count as uploaded.
func (s *DiaryService) SyncLocal(ctx context.Context, uid string) (int, error) {
	if uid == "" {
		return 0, ErrNoCurrentUser
	}
	if s.local == nil {
		return 0, errLocalDisabled
	}

	entries, err := s.local.List(ctx, uid)
	if err != nil {
		return 0, fmt.Errorf("service: failed to list local diaries: %w", err)
	}

	uploaded := make([]string, 0, len(entries))
	var uploadErr error
	for _, d := range entries {
		err := s.remote.CreateDiary(ctx, d)
		if err != nil && !errors.Is(err, repository.ErrConflict) {
			uploadErr = fmt.Errorf("service: failed to upload diary %s: %w", d.ID, err)
			break
		}
		uploaded = append(uploaded, d.ID)
	}

	if len(uploaded) > 0 {
		if err := s.local.Delete(ctx, uploaded...); err != nil {
			return 0, fmt.Errorf("service: failed to clear local diaries: %w", err)
		}
		metrics.DiarySyncedTotal.Add(float64(len(uploaded)))
		log.Info().Str("uid", uid).Int("count", len(uploaded)).Msg("local diaries synced")
	}
	return len(uploaded), uploadErr
}

// List returns the diaries shared with uid, newest first.
func (s *DiaryService) List(ctx context.Context, uid string) ([]models.DiaryEntry, error) {
	if uid == "" {
		return nil, ErrNoCurrentUser
	}
	entries, err := s.remote.ListDiaries(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list diaries: %w", err)
	}
	return entries, nil
}

// DiaryEdit carries the editable fields of a diary.
type DiaryEdit struct {
	Type string    `json:"toilet_diary_type" binding:"required"`
	Date time.Time `json:"date" binding:"required"`
	Memo string    `json:"memo"`
}

// Edit rewrites type, date and memo of one of uid's diaries.
func (s *DiaryService) Edit(ctx context.Context, uid, id string, edit DiaryEdit) error {
	if uid == "" {
		return ErrNoCurrentUser
	}
	typ, err := models.ParseDiaryType(edit.Type)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	d := models.DiaryEntry{ID: id, Sender: uid, Type: typ, Date: edit.Date, Memo: edit.Memo}
	if err := s.remote.UpdateDiary(ctx, d); err != nil {
		return fmt.Errorf("service: failed to update diary: %w", err)
	}
	return nil
}

// Delete removes one of uid's diaries.
func (s *DiaryService) Delete(ctx context.Context, uid, id string) error {
	if uid == "" {
		return ErrNoCurrentUser
	}
	if err := s.remote.DeleteDiary(ctx, uid, id); err != nil {
		return fmt.Errorf("service: failed to delete diary: %w", err)
	}
	return nil
}

// homeToilet is the MostUsedToilet value for visits at the user's home.
const homeToilet = "home"

// Day returns uid's entries on the calendar day of day, in day's location,
// and the toilet visited most often that day. Ties go to the toilet whose
// first visit comes first in the list.
func (s *DiaryService) Day(ctx context.Context, uid string, day time.Time) (*models.DiaryDay, error) {
	entries, err := s.List(ctx, uid)
	if err != nil {
		return nil, err
	}

	y, m, dd := day.Date()
	out := &models.DiaryDay{Date: day.Format("2006-01-02"), Entries: []models.DiaryEntry{}}
	counts := map[string]int{}
	var order []string
	for _, e := range entries {
		ey, em, ed := e.Date.In(day.Location()).Date()
		if ey != y || em != m || ed != dd {
			continue
		}
		out.Entries = append(out.Entries, e)

		place := e.ToiletID
		if e.AtHome {
			place = homeToilet
		}
		if place == "" {
			continue
		}
		if counts[place] == 0 {
			order = append(order, place)
		}
		counts[place]++
	}

	best := 0
	for _, p := range order {
		if counts[p] > best {
			best = counts[p]
			out.MostUsedToilet = p
		}
	}
	return out, nil
}
