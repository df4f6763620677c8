package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics is the package-wide metrics container.
type Metrics struct {
	// gRPC
	GRPCRequestsTotal    *prometheus.CounterVec
	GRPCRequestDuration  *prometheus.HistogramVec
	GRPCRequestsInFlight prometheus.Gauge

	// Port/sea-node snapping (C3, C6)
	SnapOperationsTotal *prometheus.CounterVec
	SnapDistanceKM      *prometheus.HistogramVec

	// Dispatch (C6)
	MatrixRequestsTotal *prometheus.CounterVec

	// Graph build (C5)
	BuildOperationsTotal    *prometheus.CounterVec
	BuildDuration           prometheus.Histogram
	GraphNodesTotal         prometheus.Gauge
	GraphEdgesTotal         prometheus.Gauge
	ConnectedComponents     prometheus.Gauge
	LargestComponentSize    prometheus.Gauge

	// Service info
	ServiceInfo *prometheus.GaugeVec
}

var defaultMetrics *Metrics

// InitMetrics creates and registers the package's Prometheus metrics.
func InitMetrics(namespace, subsystem string) *Metrics {
	m := &Metrics{
		GRPCRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace, Subsystem: subsystem,
				Name: "grpc_requests_total", Help: "Total number of gRPC requests",
			},
			[]string{"method", "status"},
		),

		GRPCRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace, Subsystem: subsystem,
				Name: "grpc_request_duration_seconds", Help: "Duration of gRPC requests",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method"},
		),

		GRPCRequestsInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace, Subsystem: subsystem,
				Name: "grpc_requests_in_flight", Help: "Current number of gRPC requests being processed",
			},
		),

		SnapOperationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace, Subsystem: subsystem,
				Name: "snap_operations_total", Help: "Total number of port/sea-node snap operations",
			},
			[]string{"kind", "status"}, // kind: port, sea_node
		),

		SnapDistanceKM: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace, Subsystem: subsystem,
				Name: "snap_distance_km", Help: "Distance from the query point to the snapped element",
				Buckets: []float64{0.1, 1, 5, 10, 50, 100, 300, 1000},
			},
			[]string{"kind"},
		),

		MatrixRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace, Subsystem: subsystem,
				Name: "matrix_requests_total", Help: "Total number of matrix requests dispatched by mode",
			},
			[]string{"mode", "status"}, // mode: road, sea
		),

		BuildOperationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace, Subsystem: subsystem,
				Name: "build_operations_total", Help: "Total number of sea-lane graph build runs",
			},
			[]string{"status"},
		),

		BuildDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace, Subsystem: subsystem,
				Name: "build_duration_seconds", Help: "Duration of sea-lane graph build runs",
				Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600},
			},
		),

		GraphNodesTotal: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace, Subsystem: subsystem,
				Name: "graph_nodes_total", Help: "Node count of the last built sea-lane graph",
			},
		),

		GraphEdgesTotal: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace, Subsystem: subsystem,
				Name: "graph_edges_total", Help: "Edge count of the last built sea-lane graph",
			},
		),

		ConnectedComponents: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace, Subsystem: subsystem,
				Name: "connected_components", Help: "Connected component count of the last built sea-lane graph",
			},
		),

		LargestComponentSize: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace, Subsystem: subsystem,
				Name: "largest_component_size", Help: "Size of the largest connected component",
			},
		),

		ServiceInfo: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace, Subsystem: subsystem,
				Name: "service_info", Help: "Service information",
			},
			[]string{"version", "environment"},
		),
	}

	defaultMetrics = m
	return m
}

// Get returns the package-level metrics, initializing defaults if unset.
func Get() *Metrics {
	if defaultMetrics == nil {
		return InitMetrics("sealane", "")
	}
	return defaultMetrics
}

// RecordGRPCRequest records a completed gRPC request.
func (m *Metrics) RecordGRPCRequest(method string, status string, duration time.Duration) {
	m.GRPCRequestsTotal.WithLabelValues(method, status).Inc()
	m.GRPCRequestDuration.WithLabelValues(method).Observe(duration.Seconds())
}

// RecordSnap records a port or sea-node snap operation outcome.
func (m *Metrics) RecordSnap(kind string, success bool, distanceKM float64) {
	status := "success"
	if !success {
		status = "error"
	}
	m.SnapOperationsTotal.WithLabelValues(kind, status).Inc()
	if success {
		m.SnapDistanceKM.WithLabelValues(kind).Observe(distanceKM)
	}
}

// RecordMatrixRequest records a dispatched matrix request.
func (m *Metrics) RecordMatrixRequest(mode string, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	m.MatrixRequestsTotal.WithLabelValues(mode, status).Inc()
}

// RecordBuild records the outcome and shape of a graph build run.
func (m *Metrics) RecordBuild(success bool, duration time.Duration, nodeCount, edgeCount, componentCount, largestComponent int) {
	status := "success"
	if !success {
		status = "error"
	}
	m.BuildOperationsTotal.WithLabelValues(status).Inc()
	m.BuildDuration.Observe(duration.Seconds())
	m.GraphNodesTotal.Set(float64(nodeCount))
	m.GraphEdgesTotal.Set(float64(edgeCount))
	m.ConnectedComponents.Set(float64(componentCount))
	m.LargestComponentSize.Set(float64(largestComponent))
}

// SetServiceInfo records the version/environment gauge.
func (m *Metrics) SetServiceInfo(version, environment string) {
	m.ServiceInfo.WithLabelValues(version, environment).Set(1)
}

// Handler returns the HTTP handler serving /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

// StartMetricsServer starts a standalone HTTP server exposing /metrics and /health.
func StartMetricsServer(port int) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	server := &http.Server{
		Addr:         ":" + strconv.Itoa(port),
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	return server.ListenAndServe()
}
