package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"toiletmap-api/internal/geo"
	"toiletmap-api/internal/models"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	toiletsCollection  = "toilets"
	usersCollection    = "users"
	archivedCollection = "archived_toilets"
	reviewsCollection  = "reviews"
	diariesCollection  = "toilet_diaries"
)

// FirestoreRepository implements the store interfaces on Cloud Firestore.
//
// Layout:
//
//	toilets/{id}
//	toilets/{id}/reviews/{sender_uid}
//	users/{uid}                       (homeToilet field)
//	users/{uid}/archived_toilets/{id}
//	toilet_diaries/{id}
type FirestoreRepository struct {
	client    *firestore.Client
	scanLimit int
}

// NewFirestoreRepository creates a repository on client. scanLimit bounds the
// toilets read by SearchToiletsByText.
func NewFirestoreRepository(client *firestore.Client, scanLimit int) *FirestoreRepository {
	return &FirestoreRepository{client: client, scanLimit: scanLimit}
}

// NewID reserves a document id in the toilets collection. Nothing is written.
func (r *FirestoreRepository) NewID() string {
	return r.client.Collection(toiletsCollection).NewDoc().ID
}

func (r *FirestoreRepository) archived(uid string) *firestore.CollectionRef {
	return r.client.Collection(usersCollection).Doc(uid).Collection(archivedCollection)
}

func wrapFirestoreErr(op string, err error) error {
	switch status.Code(err) {
	case codes.NotFound:
		return ErrNotFound
	case codes.AlreadyExists:
		return fmt.Errorf("repository: failed to %s: %w", op, ErrConflict)
	}
	return fmt.Errorf("repository: failed to %s: %w", op, err)
}

func readToilets(iter *firestore.DocumentIterator) ([]models.ToiletRecord, error) {
	defer iter.Stop()
	toilets := []models.ToiletRecord{}
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}
		var t models.ToiletRecord
		if err := doc.DataTo(&t); err != nil {
			return nil, err
		}
		t.ID = doc.Ref.ID
		toilets = append(toilets, t)
	}
	return toilets, nil
}

func (r *FirestoreRepository) toiletsQuery(limit int) firestore.Query {
	return r.client.Collection(toiletsCollection).OrderBy("created_at", firestore.Desc).Limit(limit)
}

func (r *FirestoreRepository) FetchAllToilets(ctx context.Context, limit int) ([]models.ToiletRecord, error) {
	toilets, err := readToilets(r.toiletsQuery(limit).Documents(ctx))
	if err != nil {
		return nil, fmt.Errorf("repository: failed to list toilets: %w", err)
	}
	return toilets, nil
}

func (r *FirestoreRepository) FetchToiletByLocation(ctx context.Context, loc models.Location) (*models.ToiletRecord, error) {
	key := geo.KeyOf(loc)
	q := r.client.Collection(toiletsCollection).
		Where("lat_key", "==", key.Lat).
		Where("lon_key", "==", key.Lon).
		Limit(1)

	toilets, err := readToilets(q.Documents(ctx))
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query toilet by location: %w", err)
	}
	if len(toilets) == 0 {
		return nil, ErrNotFound
	}
	return &toilets[0], nil
}

// FetchToilet returns the toilet stored under document id.
func (r *FirestoreRepository) FetchToilet(ctx context.Context, id string) (*models.ToiletRecord, error) {
	doc, err := r.client.Collection(toiletsCollection).Doc(id).Get(ctx)
	if err != nil {
		return nil, wrapFirestoreErr("get toilet", err)
	}
	var t models.ToiletRecord
	if err := doc.DataTo(&t); err != nil {
		return nil, fmt.Errorf("repository: failed to decode toilet: %w", err)
	}
	t.ID = doc.Ref.ID
	return &t, nil
}

func (r *FirestoreRepository) FetchToiletsBySender(ctx context.Context, sender string) ([]models.ToiletRecord, error) {
	q := r.client.Collection(toiletsCollection).
		Where("sender", "==", sender).
		OrderBy("created_at", firestore.Desc)

	toilets, err := readToilets(q.Documents(ctx))
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query toilets by sender: %w", err)
	}
	return toilets, nil
}

// ownedToilet returns the toilet ref when uid registered it.
func (r *FirestoreRepository) ownedToilet(ctx context.Context, uid, id string) (*firestore.DocumentRef, error) {
	t, err := r.FetchToilet(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.Sender != uid {
		return nil, ErrNotFound
	}
	return r.client.Collection(toiletsCollection).Doc(id), nil
}

func (r *FirestoreRepository) UpdateToilet(ctx context.Context, rec models.ToiletRecord) error {
	ref, err := r.ownedToilet(ctx, rec.Sender, rec.ID)
	if err != nil {
		return err
	}
	_, err = ref.Update(ctx, []firestore.Update{
		{Path: "name", Value: rec.Name},
		{Path: "detail", Value: rec.Detail},
		{Path: "updated_at", Value: time.Now().UTC()},
	})
	if err != nil {
		return wrapFirestoreErr("update toilet", err)
	}
	return nil
}

// DeleteToilet removes a toilet uid registered together with its reviews.
// Archives keep their own copy of the place and are left alone.
func (r *FirestoreRepository) DeleteToilet(ctx context.Context, uid, id string) error {
	ref, err := r.ownedToilet(ctx, uid, id)
	if err != nil {
		return err
	}

	iter := ref.Collection(reviewsCollection).Documents(ctx)
	defer iter.Stop()
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return fmt.Errorf("repository: failed to list reviews of toilet: %w", err)
		}
		if _, err := doc.Ref.Delete(ctx); err != nil {
			return wrapFirestoreErr("delete review", err)
		}
	}

	if _, err := ref.Delete(ctx); err != nil {
		return wrapFirestoreErr("delete toilet", err)
	}
	return nil
}

func (r *FirestoreRepository) CreateToilet(ctx context.Context, rec models.ToiletRecord, id string) error {
	key := geo.KeyOf(rec.Location())
	now := time.Now().UTC()
	data := map[string]interface{}{
		"sender":     rec.Sender,
		"name":       rec.Name,
		"detail":     rec.Detail,
		"latitude":   rec.Latitude,
		"longitude":  rec.Longitude,
		"lat_key":    key.Lat,
		"lon_key":    key.Lon,
		"created_at": now,
		"updated_at": now,
	}
	if _, err := r.client.Collection(toiletsCollection).Doc(id).Create(ctx, data); err != nil {
		return wrapFirestoreErr("create toilet", err)
	}
	return nil
}

// SearchToiletsByText matches query against toilet names and details in the
// newest scanLimit toilets. Firestore has no full-text index, so this is a scan.
func (r *FirestoreRepository) SearchToiletsByText(ctx context.Context, query string, center models.Location, limit int) ([]models.SearchCandidate, error) {
	toilets, err := r.FetchAllToilets(ctx, r.scanLimit)
	if err != nil {
		return nil, err
	}
	return matchToilets(toilets, query, center, limit), nil
}

// matchToilets keeps the toilets whose name or detail contains query, nearest
// to center first, at most limit.
func matchToilets(toilets []models.ToiletRecord, query string, center models.Location, limit int) []models.SearchCandidate {
	needle := strings.ToLower(strings.TrimSpace(query))
	hits := []models.SearchCandidate{}
	for _, t := range toilets {
		if !strings.Contains(strings.ToLower(t.Name+" "+t.Detail), needle) {
			continue
		}
		hits = append(hits, models.SearchCandidate{
			Title:     t.Name,
			Subtitle:  t.Detail,
			Latitude:  t.Latitude,
			Longitude: t.Longitude,
			ToiletRef: t.ID,
			Origin:    models.OriginIndex,
		})
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return geo.Distance(center, hits[i].Location()) < geo.Distance(center, hits[j].Location())
	})
	if len(hits) > limit {
		hits = hits[:limit]
	}
	return hits
}

func readArchived(iter *firestore.DocumentIterator) ([]models.ArchivedRecord, error) {
	defer iter.Stop()
	archived := []models.ArchivedRecord{}
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}
		var a models.ArchivedRecord
		if err := doc.DataTo(&a); err != nil {
			return nil, err
		}
		a.ID = doc.Ref.ID
		archived = append(archived, a)
	}
	return archived, nil
}

func (r *FirestoreRepository) archivedQuery(uid string) firestore.Query {
	return r.archived(uid).OrderBy("updated_at", firestore.Desc).Limit(archivedLimit)
}

func (r *FirestoreRepository) FetchArchived(ctx context.Context, ownerID string) ([]models.ArchivedRecord, error) {
	archived, err := readArchived(r.archivedQuery(ownerID).Documents(ctx))
	if err != nil {
		return nil, fmt.Errorf("repository: failed to list archived toilets: %w", err)
	}
	return archived, nil
}

func (r *FirestoreRepository) CreateArchived(ctx context.Context, rec models.ArchivedRecord, id string) error {
	now := time.Now().UTC()
	rec.CreatedAt, rec.UpdatedAt = now, now
	if _, err := r.archived(rec.Sender).Doc(id).Create(ctx, rec); err != nil {
		return wrapFirestoreErr("create archived toilet", err)
	}
	return nil
}

func (r *FirestoreRepository) DeleteArchived(ctx context.Context, ownerID, id string) error {
	ref := r.archived(ownerID).Doc(id)
	if _, err := ref.Get(ctx); err != nil {
		return wrapFirestoreErr("get archived toilet", err)
	}
	if _, err := ref.Delete(ctx); err != nil {
		return wrapFirestoreErr("delete archived toilet", err)
	}
	return nil
}

// readReviews decodes review documents. The toilet id comes from the parent
// document, since reviews live under toilets/{id}/reviews.
func readReviews(iter *firestore.DocumentIterator) ([]models.Review, error) {
	defer iter.Stop()
	reviews := []models.Review{}
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}
		var rv models.Review
		if err := doc.DataTo(&rv); err != nil {
			return nil, err
		}
		if rv.ID == "" {
			rv.ID = doc.Ref.ID
		}
		if parent := doc.Ref.Parent.Parent; parent != nil {
			rv.ToiletID = parent.ID
		}
		reviews = append(reviews, rv)
	}
	return reviews, nil
}

func (r *FirestoreRepository) review(toiletID, uid string) *firestore.DocumentRef {
	return r.client.Collection(toiletsCollection).Doc(toiletID).Collection(reviewsCollection).Doc(uid)
}

func (r *FirestoreRepository) FetchReviews(ctx context.Context, toiletID string) ([]models.Review, error) {
	iter := r.client.Collection(toiletsCollection).Doc(toiletID).Collection(reviewsCollection).
		OrderBy("created_at", firestore.Desc).
		Limit(reviewLimit).
		Documents(ctx)

	reviews, err := readReviews(iter)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to list reviews: %w", err)
	}
	return reviews, nil
}

// FetchReviewsBySender returns uid's reviews across every toilet.
func (r *FirestoreRepository) FetchReviewsBySender(ctx context.Context, uid string) ([]models.Review, error) {
	iter := r.client.CollectionGroup(reviewsCollection).
		Where("sender_uid", "==", uid).
		OrderBy("created_at", firestore.Desc).
		Documents(ctx)

	reviews, err := readReviews(iter)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to list reviews by sender: %w", err)
	}
	return reviews, nil
}

// CreateReview stores rv keyed by its sender, so a user holds at most one
// review per toilet.
func (r *FirestoreRepository) CreateReview(ctx context.Context, rv models.Review) error {
	if rv.ID == "" {
		rv.ID = uuid.NewString()
	}
	rv.CreatedAt = time.Now().UTC()
	if _, err := r.review(rv.ToiletID, rv.SenderUID).Create(ctx, rv); err != nil {
		return wrapFirestoreErr("create review", err)
	}
	return nil
}

// UpdateReview rewrites the answers of rv.SenderUID's review of rv.ToiletID.
func (r *FirestoreRepository) UpdateReview(ctx context.Context, rv models.Review) error {
	_, err := r.review(rv.ToiletID, rv.SenderUID).Update(ctx, []firestore.Update{
		{Path: "can_use", Value: rv.CanUse},
		{Path: "is_free", Value: rv.IsFree},
		{Path: "has_washlet", Value: rv.HasWashlet},
		{Path: "has_accessible_restroom", Value: rv.HasAccessibleRestroom},
	})
	if err != nil {
		return wrapFirestoreErr("update review", err)
	}
	return nil
}

type userDoc struct {
	Home *models.HomeRecord `firestore:"homeToilet"`
}

func (r *FirestoreRepository) GetHome(ctx context.Context, ownerID string) (*models.HomeRecord, error) {
	doc, err := r.client.Collection(usersCollection).Doc(ownerID).Get(ctx)
	if err != nil {
		return nil, wrapFirestoreErr("get user", err)
	}
	var u userDoc
	if err := doc.DataTo(&u); err != nil {
		return nil, fmt.Errorf("repository: failed to decode user: %w", err)
	}
	if u.Home == nil {
		return nil, ErrNotFound
	}
	return u.Home, nil
}

func (r *FirestoreRepository) PutHome(ctx context.Context, ownerID string, h models.HomeRecord) error {
	h.Sender = ownerID
	_, err := r.client.Collection(usersCollection).Doc(ownerID).
		Set(ctx, map[string]interface{}{"homeToilet": h}, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("repository: failed to set home toilet: %w", err)
	}
	return nil
}

func (r *FirestoreRepository) CreateDiary(ctx context.Context, d models.DiaryEntry) error {
	if _, err := r.client.Collection(diariesCollection).Doc(d.ID).Create(ctx, d); err != nil {
		return wrapFirestoreErr("create diary", err)
	}
	return nil
}

func (r *FirestoreRepository) ListDiaries(ctx context.Context, uid string) ([]models.DiaryEntry, error) {
	iter := r.client.Collection(diariesCollection).
		Where("shared_users", "array-contains", uid).
		OrderBy("date", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	entries := []models.DiaryEntry{}
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("repository: failed to list diaries: %w", err)
		}
		var d models.DiaryEntry
		if err := doc.DataTo(&d); err != nil {
			return nil, fmt.Errorf("repository: failed to decode diary: %w", err)
		}
		d.ID = doc.Ref.ID
		entries = append(entries, d)
	}
	return entries, nil
}

// ownedDiary returns the diary ref when uid is its sender.
func (r *FirestoreRepository) ownedDiary(ctx context.Context, uid, id string) (*firestore.DocumentRef, error) {
	ref := r.client.Collection(diariesCollection).Doc(id)
	doc, err := ref.Get(ctx)
	if err != nil {
		return nil, wrapFirestoreErr("get diary", err)
	}
	var d models.DiaryEntry
	if err := doc.DataTo(&d); err != nil {
		return nil, fmt.Errorf("repository: failed to decode diary: %w", err)
	}
	if d.Sender != uid {
		return nil, ErrNotFound
	}
	return ref, nil
}

func (r *FirestoreRepository) UpdateDiary(ctx context.Context, d models.DiaryEntry) error {
	ref, err := r.ownedDiary(ctx, d.Sender, d.ID)
	if err != nil {
		return err
	}
	_, err = ref.Update(ctx, []firestore.Update{
		{Path: "toilet_diary_type", Value: string(d.Type)},
		{Path: "date", Value: d.Date},
		{Path: "memo", Value: d.Memo},
	})
	if err != nil {
		return wrapFirestoreErr("update diary", err)
	}
	return nil
}

func (r *FirestoreRepository) DeleteDiary(ctx context.Context, uid, id string) error {
	ref, err := r.ownedDiary(ctx, uid, id)
	if err != nil {
		return err
	}
	if _, err := ref.Delete(ctx); err != nil {
		return wrapFirestoreErr("delete diary", err)
	}
	return nil
}

// WatchToilets streams the ambient window on every server-side change. The
// interval is unused; Firestore pushes snapshots.
func (r *FirestoreRepository) WatchToilets(ctx context.Context, limit int, _ time.Duration) <-chan []models.ToiletRecord {
	out := make(chan []models.ToiletRecord)
	go func() {
		defer close(out)
		it := r.toiletsQuery(limit).Snapshots(ctx)
		defer it.Stop()
		for {
			snap, err := it.Next()
			if err != nil {
				if ctx.Err() == nil {
					log.Warn().Err(err).Msg("repository: toilets snapshot stopped")
				}
				return
			}
			toilets, err := readToilets(snap.Documents)
			if err != nil {
				log.Warn().Err(err).Msg("repository: failed to read toilets snapshot")
				continue
			}
			select {
			case out <- toilets:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// WatchArchived streams the owner's archives on every server-side change.
func (r *FirestoreRepository) WatchArchived(ctx context.Context, ownerID string, _ time.Duration) <-chan []models.ArchivedRecord {
	out := make(chan []models.ArchivedRecord)
	go func() {
		defer close(out)
		it := r.archivedQuery(ownerID).Snapshots(ctx)
		defer it.Stop()
		for {
			snap, err := it.Next()
			if err != nil {
				if ctx.Err() == nil {
					log.Warn().Err(err).Msg("repository: archived snapshot stopped")
				}
				return
			}
			archived, err := readArchived(snap.Documents)
			if err != nil {
				log.Warn().Err(err).Msg("repository: failed to read archived snapshot")
				continue
			}
			select {
			case out <- archived:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}
