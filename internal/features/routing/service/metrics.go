package service

import (
	"math"

	"chainflow-engine/internal/features/routing/domain"
	trustdomain "chainflow-engine/internal/features/trust/domain"
)

const defaultEdgeReliability = 0.8

// routeMetrics aggregates a resolved path into a Route.
func routeMetrics(alg domain.Algorithm, path []domain.Segment, w *weigher) domain.Route {
	r := domain.Route{
		Algorithm:   alg,
		Nodes:       nodesOf(path),
		Path:        path,
		Reliability: 1,
	}
	if len(path) == 0 {
		r.Reliability = 0
		r.RiskScore = 1
		return r
	}

	var risk float64
	for _, s := range path {
		e := s.Edge
		r.TotalDistance += math.Max(0, e.Distance)
		r.TotalTime += math.Max(0, e.EstimatedTime)
		r.TotalCost += math.Max(0, e.Cost)
		r.EnvironmentalImpact += math.Max(0, e.EnvironmentalImpact)
		rel := e.Reliability
		if rel <= 0 {
			rel = defaultEdgeReliability
		}
		r.Reliability *= rel
		risk += float64(len(e.RiskFactors)) / maxRiskCount
		r.Weight += w.edge(e)
	}

	if t := w.trust; t != nil {
		r.TrustImpact = t.TrustScore / 100
		switch t.RiskLevel {
		case trustdomain.RiskHigh:
			r.TotalCost *= 1.1
			r.TotalTime *= 1.05
			risk += 0.2
		case trustdomain.RiskLow:
			r.TotalCost *= 0.95
			r.Reliability *= 1.02
		}
	}

	r.Reliability = math.Min(1, r.Reliability)
	r.RiskScore = clamp(risk/float64(len(path)), 0, 1)
	r.Efficiency = efficiency(r)
	return r
}

func efficiency(r domain.Route) float64 {
	trust := r.TrustImpact
	if trust == 0 {
		trust = 0.5
	}
	e := math.Max(0, 1-r.TotalDistance/distanceScale)*0.18 +
		math.Max(0, 1-r.TotalTime/timeScale)*0.22 +
		math.Max(0, 1-r.TotalCost/costScale)*0.22 +
		r.Reliability*0.15 +
		math.Max(0, 1-r.RiskScore)*0.13 +
		trust*0.10
	return clamp(e, 0, 1)
}

func nodesOf(path []domain.Segment) []string {
	if len(path) == 0 {
		return []string{}
	}
	nodes := make([]string, 0, len(path)+1)
	nodes = append(nodes, path[0].From)
	for _, s := range path {
		nodes = append(nodes, s.To)
	}
	return nodes
}

// assessRisk grades the shipment risk of an optimized route.
func assessRisk(r domain.Route, cargo domain.Cargo, trust *trustdomain.Assessment) domain.RiskAssessment {
	var score float64
	factors := []string{}
	if trust != nil && trust.RiskLevel == trustdomain.RiskHigh {
		score += 0.3
		factors = append(factors, "High supplier risk")
	}
	if cargo.Value > 50000 {
		score += 0.2
		factors = append(factors, "High-value cargo")
	}
	if cargo.Hazardous {
		score += 0.25
		factors = append(factors, "Hazardous materials")
	}
	if r.RiskScore > 0.5 {
		score += 0.15
		factors = append(factors, "High-risk corridor")
	}

	score = math.Min(score, 1)
	level := domain.RiskLow
	switch {
	case score > 0.7:
		level = domain.RiskHigh
	case score > 0.4:
		level = domain.RiskMedium
	}
	return domain.RiskAssessment{RiskScore: score, RiskLevel: level, RiskFactors: factors}
}

func routeRecommendations(r domain.Route, cargo domain.Cargo, trust *trustdomain.Assessment) []string {
	out := []string{}
	if trust != nil && trust.RiskLevel == trustdomain.RiskHigh {
		out = append(out,
			"Consider additional verification steps for high-risk supplier",
			"Implement enhanced tracking and monitoring")
	}
	if cargo.Fragile {
		out = append(out,
			"Use specialized handling equipment",
			"Consider climate-controlled transport")
	}
	if cargo.Hazardous {
		out = append(out, "Use carriers certified for hazardous materials")
	}
	if r.Reliability < 0.85 {
		out = append(out, "Add buffer time for low-reliability segments")
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}
