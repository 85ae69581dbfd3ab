package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"toiletmap-api/internal/models"
	"toiletmap-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSearchHandler_Search(t *testing.T) {
	gin.SetMode(gin.TestMode)

	center := models.Location{Latitude: 35.681236, Longitude: 139.767125}
	hits := []models.SearchCandidate{{Title: "Park", Latitude: 35.675, Longitude: 139.732, Origin: models.OriginPlace}}

	tests := []struct {
		name           string
		target         string
		mockHits       []models.SearchCandidate
		mockError      error
		callsService   bool
		expectedStatus int
		expectedBody   any
	}{
		{
			name:           "missing query parameter",
			target:         "/v1/search?lat=35.681236&lon=139.767125",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   map[string]any{"error": "missing required query parameter 'q'"},
		},
		{
			name:           "missing location",
			target:         "/v1/search?q=park",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   map[string]any{"error": "missing required query parameters 'lat' and 'lon'"},
		},
		{
			name:           "successful search",
			target:         "/v1/search?q=park&lat=35.681236&lon=139.767125",
			mockHits:       hits,
			callsService:   true,
			expectedStatus: http.StatusOK,
			expectedBody: []any{map[string]any{
				"title":     "Park",
				"subtitle":  "",
				"latitude":  35.675,
				"longitude": 139.732,
				"origin":    "place",
			}},
		},
		{
			name:           "blank query",
			target:         "/v1/search?q=%20&lat=35.681236&lon=139.767125",
			mockError:      service.ErrEmptyQuery,
			callsService:   true,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   map[string]any{"error": service.ErrEmptyQuery.Error()},
		},
		{
			name:           "service error",
			target:         "/v1/search?q=park&lat=35.681236&lon=139.767125",
			mockError:      assert.AnError,
			callsService:   true,
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   map[string]any{"error": "internal server error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockSearchService)
			h := NewSearchHandler(mockSvc)
			if tt.callsService {
				mockSvc.On("Search", mock.Anything, mock.AnythingOfType("string"), center).Return(tt.mockHits, tt.mockError)
			}

			c, w := newTestContext(http.MethodGet, tt.target, nil, "")
			h.Search(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			var actualBody any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &actualBody))
			assert.Equal(t, tt.expectedBody, actualBody)
			mockSvc.AssertExpectations(t)
		})
	}
}
