package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"toiletmap-api/internal/geo"
	"toiletmap-api/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when a lookup matches no row or document.
var ErrNotFound = errors.New("repository: not found")

// ErrConflict is returned when a unique constraint rejects a write.
var ErrConflict = errors.New("repository: conflict")

const (
	archivedLimit = 50
	reviewLimit   = 30
)

// Repository implements the store interfaces for PostgreSQL with PostGIS.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// NewID mints a toilet id without writing anything.
func (r *Repository) NewID() string {
	return uuid.NewString()
}

func wrapWriteErr(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return fmt.Errorf("repository: failed to %s: %w", op, ErrConflict)
	}
	return fmt.Errorf("repository: failed to %s: %w", op, err)
}

// FetchAllToilets returns up to limit toilets, newest first.
func (r *Repository) FetchAllToilets(ctx context.Context, limit int) ([]models.ToiletRecord, error) {
	sql := `
		SELECT id, sender, name, detail, latitude, longitude, created_at, updated_at
		FROM toilets
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, sql, limit)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query toilets: %w", err)
	}
	return scanToilets(rows)
}

func scanToilets(rows pgx.Rows) ([]models.ToiletRecord, error) {
	defer rows.Close()

	toilets := []models.ToiletRecord{}
	for rows.Next() {
		var t models.ToiletRecord
		err := rows.Scan(&t.ID, &t.Sender, &t.Name, &t.Detail, &t.Latitude, &t.Longitude, &t.CreatedAt, &t.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan toilet: %w", err)
		}
		toilets = append(toilets, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating rows: %w", err)
	}

	return toilets, nil
}

// FetchToilet returns the toilet stored under id.
func (r *Repository) FetchToilet(ctx context.Context, id string) (*models.ToiletRecord, error) {
	sql := `
		SELECT id, sender, name, detail, latitude, longitude, created_at, updated_at
		FROM toilets
		WHERE id = $1
	`

	var t models.ToiletRecord
	err := r.db.QueryRow(ctx, sql, id).
		Scan(&t.ID, &t.Sender, &t.Name, &t.Detail, &t.Latitude, &t.Longitude, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("repository: failed to query toilet: %w", err)
	}
	return &t, nil
}

// FetchToiletsBySender returns the toilets sender registered, newest first.
func (r *Repository) FetchToiletsBySender(ctx context.Context, sender string) ([]models.ToiletRecord, error) {
	sql := `
		SELECT id, sender, name, detail, latitude, longitude, created_at, updated_at
		FROM toilets
		WHERE sender = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, sql, sender)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query toilets by sender: %w", err)
	}
	return scanToilets(rows)
}

// FetchToiletByLocation returns the toilet stored at the rounded location.
func (r *Repository) FetchToiletByLocation(ctx context.Context, loc models.Location) (*models.ToiletRecord, error) {
	sql := `
		SELECT id, sender, name, detail, latitude, longitude, created_at, updated_at
		FROM toilets
		WHERE lat_key = $1 AND lon_key = $2
		ORDER BY created_at
		LIMIT 1
	`

	key := geo.KeyOf(loc)
	var t models.ToiletRecord
	err := r.db.QueryRow(ctx, sql, key.Lat, key.Lon).
		Scan(&t.ID, &t.Sender, &t.Name, &t.Detail, &t.Latitude, &t.Longitude, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("repository: failed to query toilet by location: %w", err)
	}
	return &t, nil
}

// CreateToilet stores rec under id.
func (r *Repository) CreateToilet(ctx context.Context, rec models.ToiletRecord, id string) error {
	sql := `
		INSERT INTO toilets (id, sender, name, detail, latitude, longitude, lat_key, lon_key, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
	`

	key := geo.KeyOf(rec.Location())
	_, err := r.db.Exec(ctx, sql, id, rec.Sender, rec.Name, rec.Detail, rec.Latitude, rec.Longitude, key.Lat, key.Lon, time.Now().UTC())
	if err != nil {
		return wrapWriteErr("insert toilet", err)
	}
	return nil
}

// UpdateToilet rewrites name and detail of a toilet registered by rec.Sender.
// The location is its identity and never changes.
func (r *Repository) UpdateToilet(ctx context.Context, rec models.ToiletRecord) error {
	sql := `
		UPDATE toilets
		SET name = $3, detail = $4, updated_at = now()
		WHERE id = $1 AND sender = $2
	`

	tag, err := r.db.Exec(ctx, sql, rec.ID, rec.Sender, rec.Name, rec.Detail)
	if err != nil {
		return fmt.Errorf("repository: failed to update toilet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteToilet removes a toilet registered by uid. Its reviews and archives
// go with it.
func (r *Repository) DeleteToilet(ctx context.Context, uid, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM toilets WHERE id = $1 AND sender = $2`, id, uid)
	if err != nil {
		return fmt.Errorf("repository: failed to delete toilet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SearchToiletsByText runs a full-text search over stored toilet names and
// details, nearest to center first.
func (r *Repository) SearchToiletsByText(ctx context.Context, query string, center models.Location, limit int) ([]models.SearchCandidate, error) {
	sql := `
		SELECT id, name, detail, latitude, longitude
		FROM toilets
		WHERE search_tsvector @@ plainto_tsquery('simple', $1)
		ORDER BY geom <-> ST_SetSRID(ST_MakePoint($3, $2), 4326)::geography
		LIMIT $4
	`

	rows, err := r.db.Query(ctx, sql, query, center.Latitude, center.Longitude, limit)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to execute search query: %w", err)
	}
	defer rows.Close()

	hits := []models.SearchCandidate{}
	for rows.Next() {
		h := models.SearchCandidate{Origin: models.OriginIndex}
		if err := rows.Scan(&h.ToiletRef, &h.Title, &h.Subtitle, &h.Latitude, &h.Longitude); err != nil {
			return nil, fmt.Errorf("repository: failed to scan search hit: %w", err)
		}
		hits = append(hits, h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating rows: %w", err)
	}

	return hits, nil
}

// FetchArchived returns the owner's most recently updated archives.
func (r *Repository) FetchArchived(ctx context.Context, ownerID string) ([]models.ArchivedRecord, error) {
	sql := `
		SELECT id, toilet_id, owner_uid, name, detail, memo, latitude, longitude, created_at, updated_at
		FROM archived_toilets
		WHERE owner_uid = $1
		ORDER BY updated_at DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, sql, ownerID, archivedLimit)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query archived toilets: %w", err)
	}
	defer rows.Close()

	archived := []models.ArchivedRecord{}
	for rows.Next() {
		var a models.ArchivedRecord
		err := rows.Scan(&a.ID, &a.ToiletRef, &a.Sender, &a.Name, &a.Detail, &a.Memo, &a.Latitude, &a.Longitude, &a.CreatedAt, &a.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan archived toilet: %w", err)
		}
		archived = append(archived, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating rows: %w", err)
	}

	return archived, nil
}

// CreateArchived stores rec for its Sender under id.
func (r *Repository) CreateArchived(ctx context.Context, rec models.ArchivedRecord, id string) error {
	sql := `
		INSERT INTO archived_toilets (id, owner_uid, toilet_id, name, detail, memo, latitude, longitude, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
	`

	_, err := r.db.Exec(ctx, sql, id, rec.Sender, rec.ToiletRef, rec.Name, rec.Detail, rec.Memo, rec.Latitude, rec.Longitude, time.Now().UTC())
	if err != nil {
		return wrapWriteErr("insert archived toilet", err)
	}
	return nil
}

// DeleteArchived removes one of the owner's archives.
func (r *Repository) DeleteArchived(ctx context.Context, ownerID, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM archived_toilets WHERE owner_uid = $1 AND id = $2`, ownerID, id)
	if err != nil {
		return fmt.Errorf("repository: failed to delete archived toilet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// FetchReviews returns the newest reviews of a toilet.
func (r *Repository) FetchReviews(ctx context.Context, toiletID string) ([]models.Review, error) {
	sql := `
		SELECT id, toilet_id, sender_uid, can_use, is_free, has_washlet, has_accessible_restroom, created_at
		FROM reviews
		WHERE toilet_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, sql, toiletID, reviewLimit)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query reviews: %w", err)
	}
	return scanReviews(rows)
}

// FetchReviewsBySender returns every review uid wrote, newest first.
func (r *Repository) FetchReviewsBySender(ctx context.Context, uid string) ([]models.Review, error) {
	sql := `
		SELECT id, toilet_id, sender_uid, can_use, is_free, has_washlet, has_accessible_restroom, created_at
		FROM reviews
		WHERE sender_uid = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, sql, uid)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query reviews by sender: %w", err)
	}
	return scanReviews(rows)
}

func scanReviews(rows pgx.Rows) ([]models.Review, error) {
	defer rows.Close()

	reviews := []models.Review{}
	for rows.Next() {
		var rv models.Review
		err := rows.Scan(&rv.ID, &rv.ToiletID, &rv.SenderUID, &rv.CanUse, &rv.IsFree, &rv.HasWashlet, &rv.HasAccessibleRestroom, &rv.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan review: %w", err)
		}
		reviews = append(reviews, rv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating rows: %w", err)
	}

	return reviews, nil
}

// CreateReview stores rv under its ToiletID.
func (r *Repository) CreateReview(ctx context.Context, rv models.Review) error {
	sql := `
		INSERT INTO reviews (id, toilet_id, sender_uid, can_use, is_free, has_washlet, has_accessible_restroom, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	if rv.ID == "" {
		rv.ID = uuid.NewString()
	}
	_, err := r.db.Exec(ctx, sql, rv.ID, rv.ToiletID, rv.SenderUID, rv.CanUse, rv.IsFree, rv.HasWashlet, rv.HasAccessibleRestroom, time.Now().UTC())
	if err != nil {
		return wrapWriteErr("insert review", err)
	}
	return nil
}

// UpdateReview rewrites the answers of a review written by rv.SenderUID.
func (r *Repository) UpdateReview(ctx context.Context, rv models.Review) error {
	sql := `
		UPDATE reviews
		SET can_use = $3, is_free = $4, has_washlet = $5, has_accessible_restroom = $6
		WHERE id = $1 AND sender_uid = $2
	`

	tag, err := r.db.Exec(ctx, sql, rv.ID, rv.SenderUID, rv.CanUse, rv.IsFree, rv.HasWashlet, rv.HasAccessibleRestroom)
	if err != nil {
		return fmt.Errorf("repository: failed to update review: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// GetHome returns the owner's home toilet.
func (r *Repository) GetHome(ctx context.Context, ownerID string) (*models.HomeRecord, error) {
	sql := `SELECT owner_uid, name, detail, latitude, longitude FROM home_toilets WHERE owner_uid = $1`

	var h models.HomeRecord
	err := r.db.QueryRow(ctx, sql, ownerID).Scan(&h.Sender, &h.Name, &h.Detail, &h.Latitude, &h.Longitude)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("repository: failed to query home toilet: %w", err)
	}
	return &h, nil
}

// PutHome replaces the owner's home toilet.
func (r *Repository) PutHome(ctx context.Context, ownerID string, h models.HomeRecord) error {
	sql := `
		INSERT INTO home_toilets (owner_uid, name, detail, latitude, longitude, updated_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (owner_uid) DO UPDATE
		SET name = EXCLUDED.name, detail = EXCLUDED.detail,
			latitude = EXCLUDED.latitude, longitude = EXCLUDED.longitude, updated_at = now()
	`

	if _, err := r.db.Exec(ctx, sql, ownerID, h.Name, h.Detail, h.Latitude, h.Longitude); err != nil {
		return fmt.Errorf("repository: failed to upsert home toilet: %w", err)
	}
	return nil
}

// CreateDiary stores d under its ID.
func (r *Repository) CreateDiary(ctx context.Context, d models.DiaryEntry) error {
	sql := `
		INSERT INTO toilet_diaries (id, sender, diary_type, date, memo, latitude, longitude, toilet_id, at_home, shared_users, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	shared := d.SharedUsers
	if shared == nil {
		shared = []string{}
	}
	_, err := r.db.Exec(ctx, sql, d.ID, d.Sender, string(d.Type), d.Date, d.Memo, d.Latitude, d.Longitude, d.ToiletID, d.AtHome, shared, d.CreatedAt)
	if err != nil {
		return wrapWriteErr("insert diary", err)
	}
	return nil
}

// ListDiaries returns diaries shared with uid, newest first.
func (r *Repository) ListDiaries(ctx context.Context, uid string) ([]models.DiaryEntry, error) {
	sql := `
		SELECT id, sender, diary_type, date, memo, latitude, longitude, toilet_id, at_home, shared_users, created_at
		FROM toilet_diaries
		WHERE $1 = ANY(shared_users)
		ORDER BY date DESC
	`

	rows, err := r.db.Query(ctx, sql, uid)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query diaries: %w", err)
	}
	defer rows.Close()

	entries := []models.DiaryEntry{}
	for rows.Next() {
		var d models.DiaryEntry
		var typ string
		err := rows.Scan(&d.ID, &d.Sender, &typ, &d.Date, &d.Memo, &d.Latitude, &d.Longitude, &d.ToiletID, &d.AtHome, &d.SharedUsers, &d.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan diary: %w", err)
		}
		d.Type = models.DiaryType(typ)
		entries = append(entries, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating rows: %w", err)
	}

	return entries, nil
}

// UpdateDiary rewrites the editable fields of a diary owned by d.Sender.
func (r *Repository) UpdateDiary(ctx context.Context, d models.DiaryEntry) error {
	sql := `
		UPDATE toilet_diaries
		SET diary_type = $3, date = $4, memo = $5
		WHERE id = $1 AND sender = $2
	`

	tag, err := r.db.Exec(ctx, sql, d.ID, d.Sender, string(d.Type), d.Date, d.Memo)
	if err != nil {
		return fmt.Errorf("repository: failed to update diary: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteDiary removes a diary owned by uid.
func (r *Repository) DeleteDiary(ctx context.Context, uid, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM toilet_diaries WHERE id = $1 AND sender = $2`, id, uid)
	if err != nil {
		return fmt.Errorf("repository: failed to delete diary: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// WatchToilets polls FetchAllToilets every interval and emits each result.
func (r *Repository) WatchToilets(ctx context.Context, limit int, interval time.Duration) <-chan []models.ToiletRecord {
	return poll(ctx, interval, func(ctx context.Context) ([]models.ToiletRecord, error) {
		return r.FetchAllToilets(ctx, limit)
	})
}

// WatchArchived polls FetchArchived every interval and emits each result.
func (r *Repository) WatchArchived(ctx context.Context, ownerID string, interval time.Duration) <-chan []models.ArchivedRecord {
	return poll(ctx, interval, func(ctx context.Context) ([]models.ArchivedRecord, error) {
		return r.FetchArchived(ctx, ownerID)
	})
}
