package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "toiletmap_requests_total",
		Help: "Total number of API requests",
	}, []string{"route", "status"})
	RequestDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "toiletmap_request_duration_ms",
		Help:    "Request duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000},
	}, []string{"route"})
	AnnotationsReturned = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "toiletmap_annotations_returned",
		Help:    "Number of annotations in a reconciled list",
		Buckets: []float64{0, 10, 50, 100, 250, 500, 1000, 2000},
	})
	ToiletsMintedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "toiletmap_toilets_minted_total",
		Help: "Total identities minted for previously unknown places",
	})
	SearchCacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "toiletmap_search_cache_hits_total",
		Help: "Total place search cache hits",
	})
	SearchCacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "toiletmap_search_cache_misses_total",
		Help: "Total place search cache misses",
	})
	PlaceSearchRequestsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "toiletmap_place_search_requests_total",
		Help: "Total external place search requests",
	})
	PlaceSearchFailTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "toiletmap_place_search_fail_total",
		Help: "Total external place search failures",
	})
	PlaceSearchDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "toiletmap_place_search_duration_ms",
		Help:    "External place search duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000},
	})
	DiarySyncedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "toiletmap_diary_synced_total",
		Help: "Total local diary entries uploaded to the remote store",
	})
)

func init() {
	prometheus.MustRegister(
		RequestsTotal,
		RequestDurationMs,
		AnnotationsReturned,
		ToiletsMintedTotal,
		SearchCacheHitsTotal,
		SearchCacheMissesTotal,
		PlaceSearchRequestsTotal,
		PlaceSearchFailTotal,
		PlaceSearchDurationMs,
		DiarySyncedTotal,
	)
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware counts requests per matched route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		RequestsTotal.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).Inc()
		RequestDurationMs.WithLabelValues(route).Observe(float64(time.Since(start).Milliseconds()))
	}
}
