// Package placesearch queries an external points-of-interest service for
// places near a coordinate.
package placesearch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"toiletmap-api/internal/metrics"
	"toiletmap-api/internal/models"

	"github.com/rs/zerolog/log"
)

// DefaultBaseURL is the AMap web service endpoint.
const DefaultBaseURL = "https://restapi.amap.com"

// pageSize is the most POIs AMap returns per page.
const pageSize = 25

var ErrMissingKey = errors.New("placesearch: missing api key")

// Client calls the AMap "place/around" REST API.
type Client struct {
	baseURL string
	key     string
	http    *http.Client
}

// NewClient returns a client for baseURL. A nil httpClient is replaced by
// one with a 5s timeout.
func NewClient(baseURL, key string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), key: key, http: httpClient}
}

type aroundResponse struct {
	Status   string `json:"status"`
	Info     string `json:"info"`
	Infocode string `json:"infocode"`
	Pois     []poi  `json:"pois"`
}

type poi struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
	// AMap sends [] instead of "" for an empty address.
	Address json.RawMessage `json:"address"`
}

// SearchPlaces returns POIs matching query within radius meters of center.
func (c *Client) SearchPlaces(ctx context.Context, query string, center models.Location, radius float64) ([]models.SearchCandidate, error) {
	if c.key == "" {
		return nil, ErrMissingKey
	}

	q := url.Values{}
	q.Set("key", c.key)
	q.Set("keywords", query)
	q.Set("location", formatLocation(center))
	q.Set("radius", strconv.Itoa(int(radius)))
	q.Set("offset", strconv.Itoa(pageSize))
	q.Set("page", "1")
	u := c.baseURL + "/v3/place/around?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("placesearch: failed to build request: %w", err)
	}

	t0 := time.Now()
	metrics.PlaceSearchRequestsTotal.Inc()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.PlaceSearchFailTotal.Inc()
		return nil, fmt.Errorf("placesearch: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.PlaceSearchFailTotal.Inc()
		return nil, fmt.Errorf("placesearch: unexpected status %d", resp.StatusCode)
	}

	var r aroundResponse
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		metrics.PlaceSearchFailTotal.Inc()
		return nil, fmt.Errorf("placesearch: failed to decode response: %w", err)
	}
	dur := time.Since(t0).Milliseconds()
	metrics.PlaceSearchDurationMs.Observe(float64(dur))

	if r.Status != "1" {
		metrics.PlaceSearchFailTotal.Inc()
		return nil, fmt.Errorf("placesearch: api error %s: %s", r.Infocode, r.Info)
	}
	log.Debug().Str("query", query).Int("pois", len(r.Pois)).Int64("duration_ms", dur).Msg("place_search")

	candidates := make([]models.SearchCandidate, 0, len(r.Pois))
	for _, p := range r.Pois {
		loc, err := parseLocation(p.Location)
		if err != nil {
			log.Debug().Err(err).Str("poi", p.ID).Msg("place_search_skip")
			continue
		}
		candidates = append(candidates, models.SearchCandidate{
			Title:     p.Name,
			Subtitle:  addressText(p.Address),
			Latitude:  loc.Latitude,
			Longitude: loc.Longitude,
			Origin:    models.OriginPlace,
		})
	}
	return candidates, nil
}

// formatLocation renders "lon,lat" as AMap expects.
func formatLocation(l models.Location) string {
	return strconv.FormatFloat(l.Longitude, 'f', 6, 64) + "," + strconv.FormatFloat(l.Latitude, 'f', 6, 64)
}

func parseLocation(s string) (models.Location, error) {
	lon, lat, ok := strings.Cut(s, ",")
	if !ok {
		return models.Location{}, fmt.Errorf("malformed location %q", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(lon), 64)
	if err != nil {
		return models.Location{}, fmt.Errorf("malformed longitude %q", lon)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	if err != nil {
		return models.Location{}, fmt.Errorf("malformed latitude %q", lat)
	}
	return models.Location{Latitude: y, Longitude: x}, nil
}

func addressText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}
