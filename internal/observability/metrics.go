package observability

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "secret_pages_http_requests_total",
			Help: "Total number of HTTP requests processed by the service.",
		},
		[]string{"method", "route", "status"},
	)
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "secret_pages_http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)
	friendRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "secret_pages_friend_requests_total",
			Help: "Friend request attempts by outcome.",
		},
		[]string{"outcome"},
	)
	friendAcceptsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "secret_pages_friend_accepts_total",
			Help: "Total number of accepted friend requests.",
		},
	)
	secretMessageSavesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "secret_pages_secret_message_saves_total",
			Help: "Total number of secret message upserts.",
		},
	)
	amqpPublishErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "secret_pages_amqp_publish_errors_total",
			Help: "Total number of AMQP publish errors.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		httpRequestsTotal,
		httpRequestDuration,
		friendRequestsTotal,
		friendAcceptsTotal,
		secretMessageSavesTotal,
		amqpPublishErrorsTotal,
	)
}

// HTTPMetricsMiddleware records request counts and latencies per route.
func HTTPMetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		status := c.Writer.Status()

		httpRequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).Inc()
		httpRequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

func IncFriendRequest(outcome string) {
	friendRequestsTotal.WithLabelValues(outcome).Inc()
}

func IncFriendAccept() {
	friendAcceptsTotal.Inc()
}

func IncSecretMessageSave() {
	secretMessageSavesTotal.Inc()
}

func IncAMQPPublishError() {
	amqpPublishErrorsTotal.Inc()
}
