package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the HTTP layer,
// the document store and the attendance ledger.
type MetricsService struct {
	registry         *prometheus.Registry
	handler          http.Handler
	requestDuration  *prometheus.HistogramVec
	requestTotal     *prometheus.CounterVec
	storeDuration    *prometheus.HistogramVec
	storeErrors      *prometheus.CounterVec
	versionConflicts *prometheus.CounterVec
	ledgerWrites     *prometheus.CounterVec
	ledgerEntries    prometheus.Counter
}

// NewMetricsService registers core Prometheus collectors.
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

	storeDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "store_operation_duration_seconds",
		Help:    "Duration of document store operations",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "document"})

	storeErrors := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "store_operation_errors_total",
		Help: "Document store operations that failed",
	}, []string{"operation", "document"})

	versionConflicts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "store_version_conflicts_total",
		Help: "Optimistic writes retried because the document changed underneath",
	}, []string{"document"})

	ledgerWrites := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "attendance_ledger_writes_total",
		Help: "Attendance ledger mutations by operation",
	}, []string{"operation"})

	ledgerEntries := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "attendance_ledger_entries_written_total",
		Help: "Student statuses written to the attendance ledger",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, storeDuration, storeErrors, versionConflicts, ledgerWrites, ledgerEntries, goroutines)

	return &MetricsService{
		registry:         registry,
		handler:          promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration:  requestDuration,
		requestTotal:     requestTotal,
		storeDuration:    storeDuration,
		storeErrors:      storeErrors,
		versionConflicts: versionConflicts,
		ledgerWrites:     ledgerWrites,
		ledgerEntries:    ledgerEntries,
	}
}

// Registry exposes the underlying registry.
func (m *MetricsService) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// ObserveStoreOperation records document store timing and failures.
func (m *MetricsService) ObserveStoreOperation(operation, document string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.storeDuration.WithLabelValues(operation, document).Observe(duration.Seconds())
	if err != nil {
		m.storeErrors.WithLabelValues(operation, document).Inc()
	}
}

// RecordVersionConflict counts an optimistic write that has to be retried.
func (m *MetricsService) RecordVersionConflict(document string) {
	if m == nil {
		return
	}
	m.versionConflicts.WithLabelValues(document).Inc()
}

// RecordLedgerWrite counts a ledger mutation and the statuses it wrote.
func (m *MetricsService) RecordLedgerWrite(operation string, entries int) {
	if m == nil {
		return
	}
	m.ledgerWrites.WithLabelValues(operation).Inc()
	m.ledgerEntries.Add(float64(entries))
}
