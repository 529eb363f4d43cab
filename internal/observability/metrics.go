package observability

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gazette_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "gazette_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	// RegistrationsTotal counts user registrations by role.
	RegistrationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gazette_registrations_total",
		Help: "Total number of user registrations by role",
	}, []string{"role"})

	// AuthFailuresTotal counts failed authentication attempts by reason.
	AuthFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gazette_auth_failures_total",
		Help: "Total number of failed authentication attempts by reason",
	}, []string{"reason"})

	// PostsCreatedTotal counts created posts by status.
	PostsCreatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gazette_posts_created_total",
		Help: "Total number of posts created by status",
	}, []string{"status"})

	// CommentsCreatedTotal counts created comments by commenter kind.
	CommentsCreatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gazette_comments_created_total",
		Help: "Total number of comments created",
	}, []string{"commenter"})

	// ImageUploadsTotal counts image uploads by outcome.
	ImageUploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gazette_image_uploads_total",
		Help: "Total number of image upload attempts by outcome",
	}, []string{"outcome"})
)

// ObserveQuery records the latency of a database query, labeled by the
// leading SQL keyword.
func ObserveQuery(sql string, start time.Time) {
	operation := "other"
	if fields := strings.Fields(sql); len(fields) > 0 {
		operation = strings.ToLower(fields[0])
	}
	DatabaseQueryLatency.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
