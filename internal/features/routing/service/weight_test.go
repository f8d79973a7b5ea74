package service

import (
	"testing"

	netdomain "chainflow-engine/internal/features/network/domain"
	"chainflow-engine/internal/features/routing/domain"
	trustdomain "chainflow-engine/internal/features/trust/domain"

	"github.com/stretchr/testify/assert"
)

func TestAdjustCostFactors(t *testing.T) {
	def := domain.DefaultCostFactors()

	f := AdjustCostFactors(domain.Preferences{PrioritizeCost: true, PrioritizeTime: true, PrioritizeReliability: true}, nil)
	assert.InDelta(t, def.Cost*1.5, f.Cost, 1e-12)
	assert.InDelta(t, def.Time*1.5, f.Time, 1e-12)
	assert.InDelta(t, def.Reliability*1.5, f.Reliability, 1e-12)
	assert.Equal(t, def.Trust, f.Trust)

	f = AdjustCostFactors(domain.Preferences{}, &trustdomain.Assessment{RiskLevel: trustdomain.RiskHigh})
	assert.InDelta(t, def.Trust*2, f.Trust, 1e-12)
	assert.InDelta(t, def.Risk*1.5, f.Risk, 1e-12)
}

func TestWeigher_Modifier(t *testing.T) {
	tests := []struct {
		name  string
		cargo domain.Cargo
		trust *trustdomain.Assessment
		want  float64
	}{
		{"Plain", domain.Cargo{}, nil, 1},
		{"HighPriority", domain.Cargo{Priority: "high"}, nil, 0.8},
		{"FragileHazardous", domain.Cargo{Fragile: true, Hazardous: true}, nil, 1.8},
		{"Valuable", domain.Cargo{Value: 20000}, nil, 1.1},
		{"HighRiskTrust", domain.Cargo{}, &trustdomain.Assessment{RiskLevel: trustdomain.RiskHigh}, 1.3},
		{"LowRiskTrust", domain.Cargo{}, &trustdomain.Assessment{RiskLevel: trustdomain.RiskLow}, 0.9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, newWeigher(domain.DefaultCostFactors(), tt.cargo, tt.trust).modifier, 1e-12)
		})
	}
}

func TestWeigher_Edge(t *testing.T) {
	e := netdomain.Edge{
		Distance:      10000,
		EstimatedTime: 250,
		Cost:          20000,
		Reliability:   0.9,
		RiskFactors:   []string{"weather", "piracy"},
		Capacity:      netdomain.Capacity{Weight: 100},
	}
	f := domain.DefaultCostFactors()
	w := newWeigher(f, domain.Cargo{Weight: 50}, nil)

	want := 0.5*f.Distance + 0.5*f.Time + 1*f.Cost + 0.1*f.Reliability + 0.4*f.Risk + 0.5*f.Capacity + 0.5*f.Trust
	assert.InDelta(t, want, w.edge(e), 1e-12)
	assert.LessOrEqual(t, w.lowerBound(e.Distance), w.edge(e))

	trusted := newWeigher(f, domain.Cargo{Weight: 50}, &trustdomain.Assessment{TrustScore: 100, RiskLevel: trustdomain.RiskMedium})
	assert.InDelta(t, want-0.5*f.Trust, trusted.edge(e), 1e-12)
}

func TestRouteMetrics_TrustAdjustments(t *testing.T) {
	path := []domain.Segment{
		{From: "A", To: "B", Edge: netdomain.Edge{Distance: 100, EstimatedTime: 10, Cost: 100, Reliability: 0.9, RiskFactors: []string{"a"}}},
		{From: "B", To: "C", Edge: netdomain.Edge{Distance: 200, EstimatedTime: 20, Cost: 300, Reliability: 0.8}},
	}

	plain := routeMetrics(domain.Dijkstra, path, newWeigher(domain.DefaultCostFactors(), domain.Cargo{}, nil))
	assert.Equal(t, []string{"A", "B", "C"}, plain.Nodes)
	assert.Equal(t, 300.0, plain.TotalDistance)
	assert.Equal(t, 30.0, plain.TotalTime)
	assert.Equal(t, 400.0, plain.TotalCost)
	assert.InDelta(t, 0.72, plain.Reliability, 1e-12)
	assert.InDelta(t, 0.1, plain.RiskScore, 1e-12)

	high := routeMetrics(domain.Dijkstra, path, newWeigher(domain.DefaultCostFactors(), domain.Cargo{},
		&trustdomain.Assessment{TrustScore: 25, RiskLevel: trustdomain.RiskHigh}))
	assert.InDelta(t, 440.0, high.TotalCost, 1e-9)
	assert.InDelta(t, 31.5, high.TotalTime, 1e-9)
	assert.InDelta(t, 0.2, high.RiskScore, 1e-12)
	assert.Equal(t, 0.25, high.TrustImpact)

	low := routeMetrics(domain.Dijkstra, path, newWeigher(domain.DefaultCostFactors(), domain.Cargo{},
		&trustdomain.Assessment{TrustScore: 90, RiskLevel: trustdomain.RiskLow}))
	assert.InDelta(t, 380.0, low.TotalCost, 1e-9)
	assert.InDelta(t, 0.72*1.02, low.Reliability, 1e-12)
}

func TestAssessRisk(t *testing.T) {
	r := assessRisk(domain.Route{RiskScore: 0.6}, domain.Cargo{Value: 60000, Hazardous: true},
		&trustdomain.Assessment{RiskLevel: trustdomain.RiskHigh})

	assert.InDelta(t, 0.9, r.RiskScore, 1e-12)
	assert.Equal(t, domain.RiskHigh, r.RiskLevel)
	assert.Len(t, r.RiskFactors, 4)

	assert.Equal(t, domain.RiskMedium, assessRisk(domain.Route{}, domain.Cargo{Value: 60000, Hazardous: true}, nil).RiskLevel)
	assert.Equal(t, domain.RiskLow, assessRisk(domain.Route{}, domain.Cargo{}, nil).RiskLevel)
}
