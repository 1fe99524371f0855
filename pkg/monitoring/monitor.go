package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	LockConflicts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "lesson_lock_conflicts_total",
			Help: "Lock acquisitions rejected because another user holds a fresh lock",
		},
	)

	LockSteals = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "lesson_lock_steals_total",
			Help: "Expired lesson locks taken over by a different user",
		},
	)

	CascadeDeletes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_cascade_deletes_total",
			Help: "Cascade deletions executed, by hierarchy level",
		},
		[]string{"level"},
	)
)

func Init() {
	prometheus.MustRegister(RequestCounter)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(LockConflicts)
	prometheus.MustRegister(LockSteals)
	prometheus.MustRegister(CascadeDeletes)
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
