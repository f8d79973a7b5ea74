// Package metrics holds the Prometheus collectors of the engine.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds all engine metrics on a private Prometheus registry.
// Record methods are safe to call on a nil *Registry.
type Registry struct {
	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Routing
	RouteOptimizationsTotal   *prometheus.CounterVec
	RouteOptimizationDuration *prometheus.HistogramVec
	RouteAlternatives         prometheus.Histogram

	// Trust
	TrustAssessmentsTotal *prometheus.CounterVec
	TrustScore            prometheus.Histogram
	FraudFlagsTotal       *prometheus.CounterVec

	// Tracking
	ActiveShipments   prometheus.Gauge
	ShipmentAlerts    *prometheus.CounterVec
	ShipmentDelivered prometheus.Counter

	// Verification
	VerificationsTotal      *prometheus.CounterVec
	VerificationCacheEvents *prometheus.CounterVec

	registry *prometheus.Registry
}

// NewRegistry creates a registry with every collector initialized.
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
	}

	r.initHTTPMetrics()
	r.initEngineMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry.
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
