package service

import (
	"math"

	netdomain "chainflow-engine/internal/features/network/domain"
	"chainflow-engine/internal/features/routing/domain"
	trustdomain "chainflow-engine/internal/features/trust/domain"
)

// Normalization scales of the edge attributes.
const (
	distanceScale = 20000.0
	timeScale     = 500.0
	costScale     = 10000.0
	maxRiskCount  = 5.0
)

// AdjustCostFactors applies preference and trust scaling to the defaults.
func AdjustCostFactors(prefs domain.Preferences, trust *trustdomain.Assessment) domain.CostFactors {
	f := domain.DefaultCostFactors()
	if prefs.PrioritizeCost {
		f.Cost *= 1.5
	}
	if prefs.PrioritizeTime {
		f.Time *= 1.5
	}
	if prefs.PrioritizeReliability {
		f.Reliability *= 1.5
	}
	if trust != nil && trust.RiskLevel == trustdomain.RiskHigh {
		f.Trust *= 2
		f.Risk *= 1.5
	}
	return f
}

// weigher computes edge weights for one optimization.
type weigher struct {
	factors  domain.CostFactors
	cargo    domain.Cargo
	trust    *trustdomain.Assessment
	modifier float64
}

func newWeigher(factors domain.CostFactors, cargo domain.Cargo, trust *trustdomain.Assessment) *weigher {
	m := 1.0
	if cargo.Priority == domain.PriorityHigh {
		m *= 0.8
	}
	if cargo.Fragile {
		m *= 1.2
	}
	if cargo.Hazardous {
		m *= 1.5
	}
	if cargo.Value > 10000 {
		m *= 1.1
	}
	if trust != nil {
		switch trust.RiskLevel {
		case trustdomain.RiskHigh:
			m *= 1.3
		case trustdomain.RiskLow:
			m *= 0.9
		}
	}
	return &weigher{factors: factors, cargo: cargo, trust: trust, modifier: m}
}

func (w *weigher) edge(e netdomain.Edge) float64 {
	trust := 0.5
	if w.trust != nil {
		trust = (100 - w.trust.TrustScore) / 100
	}
	var capacity float64
	if e.Capacity.Weight > 0 {
		capacity = math.Min(w.cargo.Weight/e.Capacity.Weight, 1)
	}

	sum := math.Min(e.Distance/distanceScale, 1)*w.factors.Distance +
		math.Min(e.EstimatedTime/timeScale, 1)*w.factors.Time +
		math.Min(e.Cost/costScale, 1)*w.factors.Cost +
		(1-e.Reliability)*w.factors.Reliability +
		float64(len(e.RiskFactors))/maxRiskCount*w.factors.Risk +
		capacity*w.factors.Capacity +
		trust*w.factors.Trust
	return math.Max(0, sum) * w.modifier
}

// lowerBound never exceeds the weight of any path covering distance km.
func (w *weigher) lowerBound(distance float64) float64 {
	return math.Min(distance/distanceScale, 1) * w.factors.Distance * w.modifier
}
