// Package metrics Prometheus-метрики сервиса: HTTP запросы, запросы к БД,
// состояние connection pool.
package metrics

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор коллекторов сервиса
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueryDuration *prometheus.HistogramVec

	dbConnectionsMaxOpen *prometheus.GaugeVec
	dbConnectionsOpen    *prometheus.GaugeVec
	dbConnectionsInUse   *prometheus.GaugeVec
	dbConnectionsIdle    *prometheus.GaugeVec
}

// New регистрирует коллекторы в дефолтном registry
func New(service string) *Metrics {
	constLabels := prometheus.Labels{"service": service}

	return &Metrics{
		httpRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests.",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		httpRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds.",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: constLabels,
		}, []string{"method", "path"}),

		dbQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds.",
			Buckets:     []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
			ConstLabels: constLabels,
		}, []string{"operation"}),

		dbConnectionsMaxOpen: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_connections_max_open",
			Help:        "Maximum number of open connections to the database.",
			ConstLabels: constLabels,
		}, nil),

		dbConnectionsOpen: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_connections_open",
			Help:        "Number of established connections to the database.",
			ConstLabels: constLabels,
		}, nil),

		dbConnectionsInUse: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_connections_in_use",
			Help:        "Number of database connections currently in use.",
			ConstLabels: constLabels,
		}, nil),

		dbConnectionsIdle: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_connections_idle",
			Help:        "Number of idle database connections.",
			ConstLabels: constLabels,
		}, nil),
	}
}

// ObserveHTTPRequest фиксирует завершенный HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// ObserveDBQuery фиксирует длительность запроса к БД
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration) {
	m.dbQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// SetDBPoolStats публикует текущее состояние connection pool
func (m *Metrics) SetDBPoolStats(stats sql.DBStats) {
	m.dbConnectionsMaxOpen.WithLabelValues().Set(float64(stats.MaxOpenConnections))
	m.dbConnectionsOpen.WithLabelValues().Set(float64(stats.OpenConnections))
	m.dbConnectionsInUse.WithLabelValues().Set(float64(stats.InUse))
	m.dbConnectionsIdle.WithLabelValues().Set(float64(stats.Idle))
}
