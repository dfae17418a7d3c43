package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application. A nil *Metrics is
// valid and records nothing, so services can run without instrumentation.
type Metrics struct {
	EntityWrites      *prometheus.CounterVec
	ConflictsRejected *prometheus.CounterVec
	RemindersDone     prometheus.Counter
	CareLogsRecorded  *prometheus.CounterVec
	StatsCache        *prometheus.CounterVec
	EventsPublished   *prometheus.CounterVec
	RequestDuration   *prometheus.HistogramVec
}

// New creates and registers all metrics on the default registry.
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry registers on reg; tests pass a fresh prometheus.NewRegistry().
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		EntityWrites: f.NewCounterVec(prometheus.CounterOpts{
			Name: "plantcare_entity_writes_total",
			Help: "Entity create, update and delete operations by entity and operation",
		}, []string{"entity", "op"}),
		ConflictsRejected: f.NewCounterVec(prometheus.CounterOpts{
			Name: "plantcare_delete_conflicts_total",
			Help: "Deletes refused because the record is still referenced",
		}, []string{"entity"}),
		RemindersDone: f.NewCounter(prometheus.CounterOpts{
			Name: "plantcare_reminders_completed_total",
			Help: "Reminders marked as done",
		}),
		CareLogsRecorded: f.NewCounterVec(prometheus.CounterOpts{
			Name: "plantcare_care_logs_recorded_total",
			Help: "Care logs recorded by type and outcome",
		}, []string{"type", "success"}),
		StatsCache: f.NewCounterVec(prometheus.CounterOpts{
			Name: "plantcare_stats_cache_total",
			Help: "Care log stats cache lookups by result",
		}, []string{"result"}),
		EventsPublished: f.NewCounterVec(prometheus.CounterOpts{
			Name: "plantcare_events_published_total",
			Help: "Care events handed to the publisher by type and result",
		}, []string{"type", "result"}),
		RequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "plantcare_http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern and status",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

func (m *Metrics) IncrementWrite(entity, op string) {
	if m == nil {
		return
	}
	m.EntityWrites.WithLabelValues(entity, op).Inc()
}

func (m *Metrics) IncrementConflict(entity string) {
	if m == nil {
		return
	}
	m.ConflictsRejected.WithLabelValues(entity).Inc()
}

func (m *Metrics) IncrementRemindersDone() {
	if m == nil {
		return
	}
	m.RemindersDone.Inc()
}

func (m *Metrics) IncrementCareLogged(logType string, success bool) {
	if m == nil {
		return
	}
	m.CareLogsRecorded.WithLabelValues(logType, strconv.FormatBool(success)).Inc()
}

func (m *Metrics) IncrementStatsCache(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.StatsCache.WithLabelValues(result).Inc()
}

func (m *Metrics) IncrementEventPublished(eventType string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.EventsPublished.WithLabelValues(eventType, result).Inc()
}

func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.RequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
}
