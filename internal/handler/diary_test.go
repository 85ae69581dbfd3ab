package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"toiletmap-api/internal/models"
	"toiletmap-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDiaryHandler_Record(t *testing.T) {
	gin.SetMode(gin.TestMode)

	req := service.DiaryRequest{Type: "pee", Latitude: 35.6, Longitude: 139.6}
	entry := &models.DiaryEntry{ID: "d1", Sender: "u1", Type: models.DiaryPee, AtHome: true}

	tests := []struct {
		name           string
		target         string
		body           any
		method         string
		mockError      error
		expectedStatus int
	}{
		{name: "remote", target: "/v1/diaries", body: req, method: "Record", expectedStatus: http.StatusCreated},
		{name: "local", target: "/v1/diaries?local=true", body: req, method: "RecordLocal", expectedStatus: http.StatusCreated},
		{name: "unknown type", target: "/v1/diaries", body: service.DiaryRequest{Type: "nap"}, method: "Record", mockError: service.ErrInvalidInput, expectedStatus: http.StatusBadRequest},
		{name: "missing type", target: "/v1/diaries", body: gin.H{"memo": "x"}, expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockDiaryService)
			h := NewDiaryHandler(mockSvc)
			if tt.method != "" {
				out := entry
				if tt.mockError != nil {
					out = nil
				}
				mockSvc.On(tt.method, mock.Anything, "u1", tt.body).Return(out, tt.mockError)
			}

			c, w := newTestContext(http.MethodPost, tt.target, tt.body, "u1")
			h.Record(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockSvc.AssertExpectations(t)
		})
	}
}

func TestDiaryHandler_Sync(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mockSvc := new(MockDiaryService)
	h := NewDiaryHandler(mockSvc)
	mockSvc.On("SyncLocal", mock.Anything, "u1").Return(3, nil)

	c, w := newTestContext(http.MethodPost, "/v1/diaries/sync", nil, "u1")
	h.Sync(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"synced":3}`, w.Body.String())
	mockSvc.AssertExpectations(t)
}

func TestDiaryHandler_List(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mockSvc := new(MockDiaryService)
	h := NewDiaryHandler(mockSvc)
	mockSvc.On("List", mock.Anything, "u1").Return([]models.DiaryEntry{{ID: "d1"}, {ID: "d2"}}, nil)
	mockSvc.On("List", mock.Anything, "").Return([]models.DiaryEntry(nil), service.ErrNoCurrentUser)

	c, w := newTestContext(http.MethodGet, "/v1/diaries", nil, "u1")
	h.List(c)
	assert.Equal(t, http.StatusOK, w.Code)
	var got []models.DiaryEntry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Len(t, got, 2)

	c, w = newTestContext(http.MethodGet, "/v1/diaries", nil, "")
	h.List(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestDiaryHandler_EditAndDelete(t *testing.T) {
	gin.SetMode(gin.TestMode)

	date := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	edit := service.DiaryEdit{Type: "poop", Date: date, Memo: "m"}

	mockSvc := new(MockDiaryService)
	h := NewDiaryHandler(mockSvc)
	mockSvc.On("Edit", mock.Anything, "u1", "d1", edit).Return(nil)
	mockSvc.On("Delete", mock.Anything, "u1", "missing").Return(service.ErrNotFound)

	c, w := newTestContext(http.MethodPatch, "/v1/diaries/d1", edit, "u1")
	c.Params = gin.Params{{Key: "id", Value: "d1"}}
	h.Edit(c)
	c.Writer.WriteHeaderNow()
	assert.Equal(t, http.StatusNoContent, w.Code)

	c, w = newTestContext(http.MethodPatch, "/v1/diaries/d1", gin.H{"toilet_diary_type": "poop"}, "u1")
	c.Params = gin.Params{{Key: "id", Value: "d1"}}
	h.Edit(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	c, w = newTestContext(http.MethodDelete, "/v1/diaries/missing", nil, "u1")
	c.Params = gin.Params{{Key: "id", Value: "missing"}}
	h.Delete(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestDiaryHandler_Day(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	tests := []struct {
		name           string
		target         string
		expectedDay    time.Time
		expectedStatus int
	}{
		{name: "utc by default", target: "/v1/diaries/day?date=2024-05-01", expectedDay: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), expectedStatus: http.StatusOK},
		{name: "with time zone", target: "/v1/diaries/day?date=2024-05-01&tz=Asia/Tokyo", expectedDay: time.Date(2024, 5, 1, 0, 0, 0, 0, tokyo), expectedStatus: http.StatusOK},
		{name: "missing date", target: "/v1/diaries/day", expectedStatus: http.StatusBadRequest},
		{name: "bad date", target: "/v1/diaries/day?date=05/01/2024", expectedStatus: http.StatusBadRequest},
		{name: "bad time zone", target: "/v1/diaries/day?date=2024-05-01&tz=Mars/Olympus", expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockDiaryService)
			h := NewDiaryHandler(mockSvc)
			if tt.expectedStatus == http.StatusOK {
				mockSvc.On("Day", mock.Anything, "u1", mock.MatchedBy(func(d time.Time) bool {
					return d.Equal(tt.expectedDay) && d.Location().String() == tt.expectedDay.Location().String()
				})).Return(&models.DiaryDay{Date: "2024-05-01", Entries: []models.DiaryEntry{}, MostUsedToilet: "t1"}, nil)
			}

			c, w := newTestContext(http.MethodGet, tt.target, nil, "u1")
			h.Day(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.JSONEq(t, `{"date":"2024-05-01","entries":[],"most_used_toilet":"t1"}`, w.Body.String())
			}
			mockSvc.AssertExpectations(t)
		})
	}
}
