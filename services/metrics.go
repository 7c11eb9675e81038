package services

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"qwesty-backend/store"
)

// Types de leads comptabilisés
const (
	LeadContact     = "contact"
	LeadInscription = "inscription"
)

// MetricsService regroupe l'instrumentation Prometheus de l'API
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	leadsTotal      *prometheus.CounterVec
	durableStorage  prometheus.Gauge
}

// NewMetricsService enregistre les collecteurs
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

	leadsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "qwesty_leads_total",
		Help: "Contact and inscription requests received",
	}, []string{"kind"})

	durableStorage := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "qwesty_storage_durable",
		Help: "1 when MongoDB is the active storage, 0 when running in memory",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, leadsTotal, durableStorage, goroutines)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		leadsTotal:      leadsTotal,
		durableStorage:  durableStorage,
	}
}

// Handler expose les métriques au format Prometheus
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest enregistre la durée et le statut d'une requête
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// RecordLead compte une demande de contact ou d'inscription
func (m *MetricsService) RecordLead(kind string) {
	if m == nil {
		return
	}
	m.leadsTotal.WithLabelValues(kind).Inc()
}

// SetStorageMode reflète le backend actif
func (m *MetricsService) SetStorageMode(mode store.Mode) {
	if m == nil {
		return
	}
	if mode == store.ModeMongoDB {
		m.durableStorage.Set(1)
		return
	}
	m.durableStorage.Set(0)
}
