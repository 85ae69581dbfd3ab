package service

import (
	"context"
	"time"

	"toiletmap-api/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockStore is a mock implementation of every store interface the services use.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) FetchAllToilets(ctx context.Context, limit int) ([]models.ToiletRecord, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]models.ToiletRecord), args.Error(1)
}

func (m *MockStore) FetchToiletByLocation(ctx context.Context, loc models.Location) (*models.ToiletRecord, error) {
	args := m.Called(ctx, loc)
	return args.Get(0).(*models.ToiletRecord), args.Error(1)
}

func (m *MockStore) CreateToilet(ctx context.Context, rec models.ToiletRecord, id string) error {
	args := m.Called(ctx, rec, id)
	return args.Error(0)
}

func (m *MockStore) FetchToilet(ctx context.Context, id string) (*models.ToiletRecord, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*models.ToiletRecord), args.Error(1)
}

func (m *MockStore) FetchToiletsBySender(ctx context.Context, sender string) ([]models.ToiletRecord, error) {
	args := m.Called(ctx, sender)
	return args.Get(0).([]models.ToiletRecord), args.Error(1)
}

func (m *MockStore) UpdateToilet(ctx context.Context, rec models.ToiletRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockStore) DeleteToilet(ctx context.Context, uid, id string) error {
	args := m.Called(ctx, uid, id)
	return args.Error(0)
}

func (m *MockStore) FetchArchived(ctx context.Context, ownerID string) ([]models.ArchivedRecord, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]models.ArchivedRecord), args.Error(1)
}

func (m *MockStore) CreateArchived(ctx context.Context, rec models.ArchivedRecord, id string) error {
	args := m.Called(ctx, rec, id)
	return args.Error(0)
}

func (m *MockStore) DeleteArchived(ctx context.Context, ownerID, id string) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

func (m *MockStore) FetchReviews(ctx context.Context, toiletID string) ([]models.Review, error) {
	args := m.Called(ctx, toiletID)
	return args.Get(0).([]models.Review), args.Error(1)
}

func (m *MockStore) CreateReview(ctx context.Context, rv models.Review) error {
	args := m.Called(ctx, rv)
	return args.Error(0)
}

func (m *MockStore) FetchReviewsBySender(ctx context.Context, uid string) ([]models.Review, error) {
	args := m.Called(ctx, uid)
	return args.Get(0).([]models.Review), args.Error(1)
}

func (m *MockStore) UpdateReview(ctx context.Context, rv models.Review) error {
	args := m.Called(ctx, rv)
	return args.Error(0)
}

func (m *MockStore) GetHome(ctx context.Context, ownerID string) (*models.HomeRecord, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(*models.HomeRecord), args.Error(1)
}

func (m *MockStore) PutHome(ctx context.Context, ownerID string, h models.HomeRecord) error {
	args := m.Called(ctx, ownerID, h)
	return args.Error(0)
}

func (m *MockStore) CreateDiary(ctx context.Context, d models.DiaryEntry) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockStore) ListDiaries(ctx context.Context, uid string) ([]models.DiaryEntry, error) {
	args := m.Called(ctx, uid)
	return args.Get(0).([]models.DiaryEntry), args.Error(1)
}

func (m *MockStore) UpdateDiary(ctx context.Context, d models.DiaryEntry) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockStore) DeleteDiary(ctx context.Context, uid, id string) error {
	args := m.Called(ctx, uid, id)
	return args.Error(0)
}

func (m *MockStore) WatchToilets(ctx context.Context, limit int, interval time.Duration) <-chan []models.ToiletRecord {
	args := m.Called(ctx, limit, interval)
	return args.Get(0).(<-chan []models.ToiletRecord)
}

func (m *MockStore) WatchArchived(ctx context.Context, ownerID string, interval time.Duration) <-chan []models.ArchivedRecord {
	args := m.Called(ctx, ownerID, interval)
	return args.Get(0).(<-chan []models.ArchivedRecord)
}

// MockPlaceSearcher is a mock implementation of PlaceSearcher.
type MockPlaceSearcher struct {
	mock.Mock
}

func (m *MockPlaceSearcher) SearchPlaces(ctx context.Context, query string, center models.Location, radius float64) ([]models.SearchCandidate, error) {
	args := m.Called(ctx, query, center, radius)
	return args.Get(0).([]models.SearchCandidate), args.Error(1)
}

// MockIndexSearcher is a mock implementation of IndexSearcher.
type MockIndexSearcher struct {
	mock.Mock
}

func (m *MockIndexSearcher) SearchToiletsByText(ctx context.Context, query string, center models.Location, limit int) ([]models.SearchCandidate, error) {
	args := m.Called(ctx, query, center, limit)
	return args.Get(0).([]models.SearchCandidate), args.Error(1)
}

// MockSearchCache is a mock implementation of SearchCache.
type MockSearchCache struct {
	mock.Mock
}

func (m *MockSearchCache) Get(ctx context.Context, key string) ([]models.SearchCandidate, bool, error) {
	args := m.Called(ctx, key)
	return args.Get(0).([]models.SearchCandidate), args.Bool(1), args.Error(2)
}

func (m *MockSearchCache) Set(ctx context.Context, key string, hits []models.SearchCandidate) error {
	args := m.Called(ctx, key, hits)
	return args.Error(0)
}

// MockSearcher is a mock implementation of Searcher.
type MockSearcher struct {
	mock.Mock
}

func (m *MockSearcher) Search(ctx context.Context, query string, center models.Location) ([]models.SearchCandidate, error) {
	args := m.Called(ctx, query, center)
	return args.Get(0).([]models.SearchCandidate), args.Error(1)
}

// MockDiaryLocal is a mock implementation of DiaryLocal.
type MockDiaryLocal struct {
	mock.Mock
}

func (m *MockDiaryLocal) Save(ctx context.Context, d models.DiaryEntry) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDiaryLocal) List(ctx context.Context, sender string) ([]models.DiaryEntry, error) {
	args := m.Called(ctx, sender)
	return args.Get(0).([]models.DiaryEntry), args.Error(1)
}

func (m *MockDiaryLocal) Delete(ctx context.Context, ids ...string) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}
