package metrics

import (
	"regexp"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestDuration tracks HTTP request duration in seconds by method, path, status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts HTTP requests by method, path, status.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// AnnouncementWrites counts create/update/delete attempts by outcome.
	AnnouncementWrites = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "announcement_writes_total",
			Help: "Announcement write operations by op and result",
		},
		[]string{"op", "result"},
	)

	// Logins counts login attempts by result (ok, rejected, error).
	Logins = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_logins_total",
			Help: "Login attempts by result",
		},
		[]string{"result"},
	)

	// AnnouncementsCurrent is the number of announcements visible at the last refresh.
	AnnouncementsCurrent = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "announcements_current",
			Help: "Announcements inside their visibility window at the last refresh",
		},
	)
)

var (
	// UUIDs and numeric ids both collapse to {id}.
	idPathSegment = regexp.MustCompile(`/([0-9]+|[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12})(/|$)`)
	initOnce      sync.Once
)

func init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestDuration, RequestTotal, AnnouncementWrites, Logins, AnnouncementsCurrent)
	})
}

// NormalizePath reduces cardinality by replacing id path segments with {id}.
// E.g. /announcements/6f1c...-... -> /announcements/{id}.
func NormalizePath(path string) string {
	return idPathSegment.ReplaceAllString(path, "/{id}$2")
}

// RecordRequest records duration and count for an HTTP request. Call from middleware with method, path, statusCode, duration.
func RecordRequest(method, path string, statusCode int, durationSeconds float64) {
	path = NormalizePath(path)
	status := strconv.Itoa(statusCode)
	RequestDuration.WithLabelValues(method, path, status).Observe(durationSeconds)
	RequestTotal.WithLabelValues(method, path, status).Inc()
}

// IncAnnouncementWrite counts one write; op is create|update|delete.
func IncAnnouncementWrite(op, result string) {
	AnnouncementWrites.WithLabelValues(op, result).Inc()
}

// IncLogin counts one login attempt.
func IncLogin(result string) {
	Logins.WithLabelValues(result).Inc()
}

// SetAnnouncementsCurrent sets the current-announcement gauge.
func SetAnnouncementsCurrent(n int) {
	AnnouncementsCurrent.Set(float64(n))
}
