package service

import (
	"context"
	"testing"

	"toiletmap-api/internal/models"
	"toiletmap-api/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockToiletResolver is a mock implementation of ToiletResolver.
type MockToiletResolver struct {
	mock.Mock
}

func (m *MockToiletResolver) Resolve(ctx context.Context, loc models.Location) (string, bool, error) {
	args := m.Called(ctx, loc)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockToiletResolver) EnsureToilet(ctx context.Context, uid string, rec models.ToiletRecord) (string, error) {
	args := m.Called(ctx, uid, rec)
	return args.String(0), args.Error(1)
}

func TestReviewService_Score(t *testing.T) {
	loc := station.Location()
	reviews := []models.Review{
		{SenderUID: "u1", CanUse: true, IsFree: true},
		{SenderUID: "u2", CanUse: true, HasWashlet: true},
	}

	tests := []struct {
		name          string
		uid           string
		resolvedID    string
		isNew         bool
		resolveErr    error
		reviews       []models.Review
		fetchErr      error
		expected      *models.ReviewScore
		expectedError error
		expectError   bool
	}{
		{
			name:          "no current user",
			uid:           "",
			expectedError: ErrNoCurrentUser,
		},
		{
			name:       "unknown place has no score",
			uid:        "u1",
			resolvedID: "minted",
			isNew:      true,
			expected:   nil,
		},
		{
			name:       "known place",
			uid:        "u1",
			resolvedID: "t1",
			reviews:    reviews,
			expected: &models.ReviewScore{
				CanUseRate:      100,
				IsFreeRate:      50,
				HasWashletRate:  50,
				AlreadyReviewed: false,
			},
		},
		{
			name:       "not yet reviewed by current user",
			uid:        "u3",
			resolvedID: "t1",
			reviews:    reviews,
			expected: &models.ReviewScore{
				CanUseRate:      100,
				IsFreeRate:      50,
				HasWashletRate:  50,
				AlreadyReviewed: true,
			},
		},
		{
			name:        "fetch error",
			uid:         "u1",
			resolvedID:  "t1",
			reviews:     []models.Review{},
			fetchErr:    assert.AnError,
			expectError: true,
		},
		{
			name:        "resolve error",
			uid:         "u1",
			resolveErr:  assert.AnError,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(MockStore)
			resolver := new(MockToiletResolver)
			svc := NewReviewService(store, resolver)

			if tt.uid != "" {
				resolver.On("Resolve", mock.Anything, loc).Return(tt.resolvedID, tt.isNew, tt.resolveErr)
			}
			if tt.reviews != nil {
				store.On("FetchReviews", mock.Anything, tt.resolvedID).Return(tt.reviews, tt.fetchErr)
			}

			score, err := svc.Score(context.Background(), tt.uid, loc)

			switch {
			case tt.expectedError != nil:
				assert.ErrorIs(t, err, tt.expectedError)
			case tt.expectError:
				assert.Error(t, err)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.expected, score)
			}
			resolver.AssertExpectations(t)
			store.AssertExpectations(t)
		})
	}
}

func TestReviewService_Create(t *testing.T) {
	req := ReviewRequest{Name: "Station", Latitude: station.Latitude, Longitude: station.Longitude, CanUse: true, HasWashlet: true}
	toilet := models.ToiletRecord{Name: "Station", Latitude: station.Latitude, Longitude: station.Longitude}

	t.Run("no current user", func(t *testing.T) {
		svc := NewReviewService(new(MockStore), new(MockToiletResolver))
		_, err := svc.Create(context.Background(), "", req)
		assert.ErrorIs(t, err, ErrNoCurrentUser)
	})

	t.Run("creates review", func(t *testing.T) {
		store := new(MockStore)
		resolver := new(MockToiletResolver)
		svc := NewReviewService(store, resolver)
		resolver.On("EnsureToilet", mock.Anything, "u1", toilet).Return("t1", nil)
		store.On("FetchReviews", mock.Anything, "t1").Return([]models.Review{{SenderUID: "u2"}}, nil)
		store.On("CreateReview", mock.Anything, models.Review{ToiletID: "t1", SenderUID: "u1", CanUse: true, HasWashlet: true}).Return(nil)

		rv, err := svc.Create(context.Background(), "u1", req)

		require.NoError(t, err)
		assert.Equal(t, "t1", rv.ToiletID)
		resolver.AssertExpectations(t)
		store.AssertExpectations(t)
	})

	t.Run("second review is rejected", func(t *testing.T) {
		store := new(MockStore)
		resolver := new(MockToiletResolver)
		svc := NewReviewService(store, resolver)
		resolver.On("EnsureToilet", mock.Anything, "u1", toilet).Return("t1", nil)
		store.On("FetchReviews", mock.Anything, "t1").Return([]models.Review{{SenderUID: "u1"}}, nil)

		_, err := svc.Create(context.Background(), "u1", req)

		assert.ErrorIs(t, err, ErrAlreadyReviewed)
		store.AssertNotCalled(t, "CreateReview", mock.Anything, mock.Anything)
	})

	t.Run("conflicting concurrent review is rejected", func(t *testing.T) {
		store := new(MockStore)
		resolver := new(MockToiletResolver)
		svc := NewReviewService(store, resolver)
		resolver.On("EnsureToilet", mock.Anything, "u1", toilet).Return("t1", nil)
		store.On("FetchReviews", mock.Anything, "t1").Return([]models.Review{}, nil)
		store.On("CreateReview", mock.Anything, mock.Anything).Return(repository.ErrConflict)

		_, err := svc.Create(context.Background(), "u1", req)

		assert.ErrorIs(t, err, ErrAlreadyReviewed)
	})
}

func TestReviewService_ListMine(t *testing.T) {
	t.Run("no current user", func(t *testing.T) {
		svc := NewReviewService(new(MockStore), new(MockToiletResolver))
		_, err := svc.ListMine(context.Background(), "")
		assert.ErrorIs(t, err, ErrNoCurrentUser)
	})

	t.Run("lists across toilets", func(t *testing.T) {
		store := new(MockStore)
		svc := NewReviewService(store, new(MockToiletResolver))
		mine := []models.Review{{ID: "r2", ToiletID: "t2", SenderUID: "u1"}, {ID: "r1", ToiletID: "t1", SenderUID: "u1"}}
		store.On("FetchReviewsBySender", mock.Anything, "u1").Return(mine, nil)

		got, err := svc.ListMine(context.Background(), "u1")

		require.NoError(t, err)
		assert.Equal(t, mine, got)
		store.AssertExpectations(t)
	})
}

func TestReviewService_Update(t *testing.T) {
	mine := []models.Review{
		{ID: "r1", ToiletID: "t1", SenderUID: "u1", CanUse: true},
		{ID: "r2", ToiletID: "t2", SenderUID: "u1"},
	}
	answers := ReviewAnswers{CanUse: true, IsFree: true, HasAccessibleRestroom: true}
	expected := models.Review{ID: "r2", ToiletID: "t2", SenderUID: "u1", CanUse: true, IsFree: true, HasAccessibleRestroom: true}

	tests := []struct {
		name          string
		uid           string
		id            string
		fetchErr      error
		expectUpdate  bool
		updateErr     error
		expectedError error
		expectError   bool
	}{
		{name: "updates own review", uid: "u1", id: "r2", expectUpdate: true},
		{name: "no current user", uid: "", id: "r2", expectedError: ErrNoCurrentUser},
		{name: "unknown review", uid: "u1", id: "r9", expectedError: ErrNotFound},
		{name: "fetch error", uid: "u1", id: "r2", fetchErr: assert.AnError, expectError: true},
		{name: "update error", uid: "u1", id: "r2", expectUpdate: true, updateErr: assert.AnError, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(MockStore)
			svc := NewReviewService(store, new(MockToiletResolver))
			if tt.uid != "" {
				store.On("FetchReviewsBySender", mock.Anything, tt.uid).Return(mine, tt.fetchErr)
			}
			if tt.expectUpdate {
				store.On("UpdateReview", mock.Anything, expected).Return(tt.updateErr)
			}

			got, err := svc.Update(context.Background(), tt.uid, tt.id, answers)

			switch {
			case tt.expectedError != nil:
				assert.ErrorIs(t, err, tt.expectedError)
			case tt.expectError:
				assert.Error(t, err)
			default:
				require.NoError(t, err)
				assert.Equal(t, &expected, got)
			}
			store.AssertExpectations(t)
		})
	}
}
