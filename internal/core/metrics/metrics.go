package metrics

import (
	"strconv"
	"time"
)

// RecordHTTPRequest records an HTTP request with its duration.
func (r *Registry) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil {
		return
	}
	r.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordRouteOptimization records one optimizer run.
func (r *Registry) RecordRouteOptimization(algorithm string, success bool, duration time.Duration, alternatives int) {
	if r == nil {
		return
	}
	outcome := "success"
	if !success {
		outcome = "failure"
	}
	r.RouteOptimizationsTotal.WithLabelValues(algorithm, outcome).Inc()
	r.RouteOptimizationDuration.WithLabelValues(algorithm).Observe(duration.Seconds())
	if success {
		r.RouteAlternatives.Observe(float64(alternatives))
	}
}

// RecordTrustAssessment records a scored assessment and its flags.
func (r *Registry) RecordTrustAssessment(riskLevel string, score float64, flags map[string]string) {
	if r == nil {
		return
	}
	r.TrustAssessmentsTotal.WithLabelValues(riskLevel).Inc()
	r.TrustScore.Observe(score)
	for typ, severity := range flags {
		r.FraudFlagsTotal.WithLabelValues(typ, severity).Inc()
	}
}

// SetActiveShipments sets the in-transit gauge.
func (r *Registry) SetActiveShipments(n int) {
	if r == nil {
		return
	}
	r.ActiveShipments.Set(float64(n))
}

// RecordShipmentAlert counts an alert raised during simulation.
func (r *Registry) RecordShipmentAlert(alertType string) {
	if r == nil {
		return
	}
	r.ShipmentAlerts.WithLabelValues(alertType).Inc()
}

// RecordDelivery counts a shipment reaching its destination.
func (r *Registry) RecordDelivery() {
	if r == nil {
		return
	}
	r.ShipmentDelivered.Inc()
}

// RecordVerification counts a computed verification.
func (r *Registry) RecordVerification(authentic bool) {
	if r == nil {
		return
	}
	r.VerificationsTotal.WithLabelValues(strconv.FormatBool(authentic)).Inc()
}

// RecordCacheHit counts a verification served from cache.
func (r *Registry) RecordCacheHit() {
	if r == nil {
		return
	}
	r.VerificationCacheEvents.WithLabelValues("hit").Inc()
}

// RecordCacheMiss counts a verification that had to be computed.
func (r *Registry) RecordCacheMiss() {
	if r == nil {
		return
	}
	r.VerificationCacheEvents.WithLabelValues("miss").Inc()
}
