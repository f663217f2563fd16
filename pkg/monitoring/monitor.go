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

	ReadinessScore = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "prepos_readiness_score",
			Help:    "Readiness scores computed for dashboards",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
		[]string{"track"},
	)

	ReadinessWrites = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prepos_readiness_writes_total",
			Help: "Readiness score changes persisted to the user record",
		},
		[]string{"track"},
	)

	AIRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prepos_ai_requests_total",
			Help: "AI advisory calls by adapter and outcome (ok, unavailable, fallback, rejected, limited)",
		},
		[]string{"adapter", "outcome"},
	)

	QueryPlan = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "prepos_store_query_plan",
			Help: "1 when the collection is listed with the ordered plan, 0 for the in-memory sort plan",
		},
		[]string{"collection"},
	)
)

// 领域指标在包加载时即可使用，Init 只负责注册
func Init() {
	prometheus.MustRegister(RequestCounter)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(ReadinessScore)
	prometheus.MustRegister(ReadinessWrites)
	prometheus.MustRegister(AIRequests)
	prometheus.MustRegister(QueryPlan)
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
