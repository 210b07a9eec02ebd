package service

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Freeeeeet/tutor_dashboard/internal/model"
)

// MetricsService инкапсулирует Prometheus метрики приложения.
// Все методы безопасны для nil получателя.
type MetricsService struct {
	registry          *prometheus.Registry
	handler           http.Handler
	requestDuration   *prometheus.HistogramVec
	requestTotal      *prometheus.CounterVec
	dashboardDuration prometheus.Histogram
	dashboardTotal    *prometheus.CounterVec
	remindersSent     *prometheus.CounterVec
	reminderFailures  prometheus.Counter
}

// NewMetricsService регистрирует коллекторы в собственном реестре
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	dashboardDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "dashboard_compute_duration_seconds",
		Help:    "Time spent aggregating a dashboard snapshot",
		Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25},
	})

	dashboardTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_requests_total",
		Help: "Dashboard computations by outcome",
	}, []string{"outcome"})

	remindersSent := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "reminders_sent_total",
		Help: "Lesson reminders delivered to students",
	}, []string{"kind"})

	reminderFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "reminder_failures_total",
		Help: "Lesson reminders that could not be delivered or recorded",
	})

	registry.MustRegister(
		requestDuration,
		requestTotal,
		dashboardDuration,
		dashboardTotal,
		remindersSent,
		reminderFailures,
		collectors.NewGoCollector(),
	)

	return &MetricsService{
		registry:          registry,
		handler:           promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration:   requestDuration,
		requestTotal:      requestTotal,
		dashboardDuration: dashboardDuration,
		dashboardTotal:    dashboardTotal,
		remindersSent:     remindersSent,
		reminderFailures:  reminderFailures,
	}
}

// Registry возвращает реестр коллекторов
func (m *MetricsService) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler отдаёт метрики в формате Prometheus
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest записывает длительность и количество HTTP запросов
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := strconv.Itoa(status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// ObserveDashboard записывает время агрегации и исход запроса дашборда
func (m *MetricsService) ObserveDashboard(outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	if duration > 0 {
		m.dashboardDuration.Observe(duration.Seconds())
	}
	m.dashboardTotal.WithLabelValues(outcome).Inc()
}

// ReminderSent учитывает доставленное напоминание
func (m *MetricsService) ReminderSent(kind model.ReminderKind) {
	if m == nil {
		return
	}
	m.remindersSent.WithLabelValues(strconv.Itoa(int(kind))).Inc()
}

// ReminderFailed учитывает неудачную попытку напоминания
func (m *MetricsService) ReminderFailed() {
	if m == nil {
		return
	}
	m.reminderFailures.Inc()
}
