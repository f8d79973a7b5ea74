package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initEngineMetrics() {
	r.RouteOptimizationsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "chainflow_route_optimizations_total",
			Help: "Route optimizations by algorithm and outcome",
		},
		[]string{"algorithm", "outcome"},
	)

	r.RouteOptimizationDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chainflow_route_optimization_duration_seconds",
			Help:    "Route optimization latency in seconds",
			Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5, 1, 5},
		},
		[]string{"algorithm"},
	)

	r.RouteAlternatives = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "chainflow_route_alternatives",
			Help:    "Number of alternative routes returned per optimization",
			Buckets: []float64{0, 1, 2, 3},
		},
	)

	r.TrustAssessmentsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "chainflow_trust_assessments_total",
			Help: "Trust assessments by resulting risk level",
		},
		[]string{"risk_level"},
	)

	r.TrustScore = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "chainflow_trust_score",
			Help:    "Distribution of computed trust scores",
			Buckets: []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		},
	)

	r.FraudFlagsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "chainflow_fraud_flags_total",
			Help: "Fraud flags raised by type and severity",
		},
		[]string{"type", "severity"},
	)

	r.ActiveShipments = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "chainflow_active_shipments",
			Help: "Shipments currently in transit",
		},
	)

	r.ShipmentAlerts = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "chainflow_shipment_alerts_total",
			Help: "Shipment alerts by type",
		},
		[]string{"type"},
	)

	r.ShipmentDelivered = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "chainflow_shipments_delivered_total",
			Help: "Shipments that reached their destination",
		},
	)

	r.VerificationsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "chainflow_verifications_total",
			Help: "Integrated verifications by authenticity verdict",
		},
		[]string{"authentic"},
	)

	r.VerificationCacheEvents = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "chainflow_verification_cache_events_total",
			Help: "Verification cache hits and misses",
		},
		[]string{"event"},
	)
}
