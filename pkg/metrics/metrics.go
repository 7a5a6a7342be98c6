package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "slot_booking"

// Metrics набор метрик сервиса
type Metrics struct {
	serviceName string

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration   *prometheus.HistogramVec
	DBQueryErrors     *prometheus.CounterVec
	DBOpenConnections *prometheus.GaugeVec
	DBInUse           *prometheus.GaugeVec
	DBIdle            *prometheus.GaugeVec
	DBWaitCount       *prometheus.GaugeVec

	BookingOutcomes *prometheus.CounterVec
}

// New создает метрики и регистрирует их в prometheus.DefaultRegisterer
func New(serviceName string) *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer, serviceName)
}

// NewWithRegisterer создает метрики и регистрирует их в указанном реестре
func NewWithRegisterer(reg prometheus.Registerer, serviceName string) *Metrics {
	m := &Metrics{
		serviceName: serviceName,

		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests by route and status.",
			},
			[]string{"service", "method", "route", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"service", "method", "route"},
		),

		DBQueryDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "db_query_duration_seconds",
				Help:      "Database query latency by operation.",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
			},
			[]string{"service", "operation"},
		),
		DBQueryErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "db_query_errors_total",
				Help:      "Database query errors by operation.",
			},
			[]string{"service", "operation"},
		),
		DBOpenConnections: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "db_open_connections",
				Help:      "Number of established connections.",
			},
			[]string{"service"},
		),
		DBInUse: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "db_in_use_connections",
				Help:      "Number of connections currently in use.",
			},
			[]string{"service"},
		),
		DBIdle: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "db_idle_connections",
				Help:      "Number of idle connections.",
			},
			[]string{"service"},
		),
		DBWaitCount: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "db_wait_count",
				Help:      "Total number of connections waited for.",
			},
			[]string{"service"},
		),

		BookingOutcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "booking_outcomes_total",
				Help:      "Booking submissions by outcome.",
			},
			[]string{"service", "outcome"},
		),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBQueryErrors,
		m.DBOpenConnections,
		m.DBInUse,
		m.DBIdle,
		m.DBWaitCount,
		m.BookingOutcomes,
	)

	return m
}

// ServiceName имя сервиса, которым помечаются метрики
func (m *Metrics) ServiceName() string {
	return m.serviceName
}

// IncBookingOutcome увеличивает счетчик исходов бронирования.
// Безопасен на nil, когда метрики выключены.
func (m *Metrics) IncBookingOutcome(outcome string) {
	if m == nil {
		return
	}
	m.BookingOutcomes.WithLabelValues(m.serviceName, outcome).Inc()
}
