package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"time"

	"toiletmap-api/internal/middleware"
	"toiletmap-api/internal/models"
	"toiletmap-api/internal/reconcile"
	"toiletmap-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
)

// newTestContext builds a gin context for method and target, with an optional
// JSON body and signed-in uid.
func newTestContext(method, target string, body any, uid string) (*gin.Context, *httptest.ResponseRecorder) {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	if uid != "" {
		c.Set(middleware.UIDKey, uid)
	}
	return c, w
}

type MockAnnotationService struct {
	mock.Mock
}

func (m *MockAnnotationService) Annotations(ctx context.Context, q service.AnnotationQuery) (*reconcile.Result, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(*reconcile.Result), args.Error(1)
}

func (m *MockAnnotationService) Stream(ctx context.Context, q service.AnnotationQuery) (<-chan reconcile.Result, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(<-chan reconcile.Result), args.Error(1)
}

type MockSearchService struct {
	mock.Mock
}

func (m *MockSearchService) Search(ctx context.Context, query string, center models.Location) ([]models.SearchCandidate, error) {
	args := m.Called(ctx, query, center)
	return args.Get(0).([]models.SearchCandidate), args.Error(1)
}

type MockToiletService struct {
	mock.Mock
}

func (m *MockToiletService) Resolve(ctx context.Context, loc models.Location) (string, bool, error) {
	args := m.Called(ctx, loc)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockToiletService) Create(ctx context.Context, uid string, rec models.ToiletRecord) (*models.ToiletRecord, bool, error) {
	args := m.Called(ctx, uid, rec)
	return args.Get(0).(*models.ToiletRecord), args.Bool(1), args.Error(2)
}

func (m *MockToiletService) Archive(ctx context.Context, uid string, req service.ArchiveRequest) (*models.ArchivedRecord, bool, error) {
	args := m.Called(ctx, uid, req)
	return args.Get(0).(*models.ArchivedRecord), args.Bool(1), args.Error(2)
}

func (m *MockToiletService) Unarchive(ctx context.Context, uid, id string) error {
	args := m.Called(ctx, uid, id)
	return args.Error(0)
}

func (m *MockToiletService) Get(ctx context.Context, id string) (*models.ToiletRecord, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*models.ToiletRecord), args.Error(1)
}

func (m *MockToiletService) ListCreated(ctx context.Context, uid string) ([]models.ToiletRecord, error) {
	args := m.Called(ctx, uid)
	return args.Get(0).([]models.ToiletRecord), args.Error(1)
}

func (m *MockToiletService) Update(ctx context.Context, uid, id string, edit service.ToiletEdit) (*models.ToiletRecord, error) {
	args := m.Called(ctx, uid, id, edit)
	return args.Get(0).(*models.ToiletRecord), args.Error(1)
}

func (m *MockToiletService) Delete(ctx context.Context, uid, id string) error {
	args := m.Called(ctx, uid, id)
	return args.Error(0)
}

type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) List(ctx context.Context, loc models.Location) ([]models.Review, error) {
	args := m.Called(ctx, loc)
	return args.Get(0).([]models.Review), args.Error(1)
}

func (m *MockReviewService) Score(ctx context.Context, uid string, loc models.Location) (*models.ReviewScore, error) {
	args := m.Called(ctx, uid, loc)
	return args.Get(0).(*models.ReviewScore), args.Error(1)
}

func (m *MockReviewService) Create(ctx context.Context, uid string, req service.ReviewRequest) (*models.Review, error) {
	args := m.Called(ctx, uid, req)
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewService) ListMine(ctx context.Context, uid string) ([]models.Review, error) {
	args := m.Called(ctx, uid)
	return args.Get(0).([]models.Review), args.Error(1)
}

func (m *MockReviewService) Update(ctx context.Context, uid, id string, answers service.ReviewAnswers) (*models.Review, error) {
	args := m.Called(ctx, uid, id, answers)
	return args.Get(0).(*models.Review), args.Error(1)
}

type MockHomeService struct {
	mock.Mock
}

func (m *MockHomeService) Get(ctx context.Context, uid string) (*models.HomeRecord, error) {
	args := m.Called(ctx, uid)
	return args.Get(0).(*models.HomeRecord), args.Error(1)
}

func (m *MockHomeService) Put(ctx context.Context, uid string, h models.HomeRecord) (*models.HomeRecord, error) {
	args := m.Called(ctx, uid, h)
	return args.Get(0).(*models.HomeRecord), args.Error(1)
}

type MockDiaryService struct {
	mock.Mock
}

func (m *MockDiaryService) Record(ctx context.Context, uid string, req service.DiaryRequest) (*models.DiaryEntry, error) {
	args := m.Called(ctx, uid, req)
	return args.Get(0).(*models.DiaryEntry), args.Error(1)
}

func (m *MockDiaryService) RecordLocal(ctx context.Context, uid string, req service.DiaryRequest) (*models.DiaryEntry, error) {
	args := m.Called(ctx, uid, req)
	return args.Get(0).(*models.DiaryEntry), args.Error(1)
}

func (m *MockDiaryService) SyncLocal(ctx context.Context, uid string) (int, error) {
	args := m.Called(ctx, uid)
	return args.Int(0), args.Error(1)
}

func (m *MockDiaryService) List(ctx context.Context, uid string) ([]models.DiaryEntry, error) {
	args := m.Called(ctx, uid)
	return args.Get(0).([]models.DiaryEntry), args.Error(1)
}

func (m *MockDiaryService) Edit(ctx context.Context, uid, id string, edit service.DiaryEdit) error {
	args := m.Called(ctx, uid, id, edit)
	return args.Error(0)
}

func (m *MockDiaryService) Delete(ctx context.Context, uid, id string) error {
	args := m.Called(ctx, uid, id)
	return args.Error(0)
}

func (m *MockDiaryService) Day(ctx context.Context, uid string, day time.Time) (*models.DiaryDay, error) {
	args := m.Called(ctx, uid, day)
	return args.Get(0).(*models.DiaryDay), args.Error(1)
}
