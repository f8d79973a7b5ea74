package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"chainflow-engine/internal/core/metrics"
	"chainflow-engine/internal/core/random"
	netdomain "chainflow-engine/internal/features/network/domain"
	netservice "chainflow-engine/internal/features/network/service"
	"chainflow-engine/internal/features/routing/domain"
	trustdomain "chainflow-engine/internal/features/trust/domain"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func generatedNetwork(t *testing.T, seed uint64) *netdomain.Network {
	t.Helper()
	g := netservice.NewGenerator(random.New(seed), netservice.GeneratorConfig{
		Seed: seed,
		Now:  func() time.Time { return fixedNow },
	})
	return g.Generate()
}

func newTestOptimizer(graph *netdomain.Network, trust *stubAssessor, cfg OptimizerConfig) *Optimizer {
	if cfg.Rand == nil {
		cfg.Rand = random.New(11)
	}
	if trust == nil {
		return NewOptimizer(graph, nil, cfg)
	}
	return NewOptimizer(graph, trust, cfg)
}

// stubAssessor returns a fixed assessment and counts calls.
type stubAssessor struct {
	assessment trustdomain.Assessment
	calls      int
}

func (s *stubAssessor) Assess(*netdomain.Product, *netdomain.Supplier, *netdomain.Category, *netdomain.SupplyChain) trustdomain.Assessment {
	s.calls++
	return s.assessment
}

// smallGraph: A->B->C is cheap, A->C is a single costly sea leg, D is unreachable.
func smallGraph() *netdomain.Network {
	locs := []netdomain.Location{
		{ID: "A", Latitude: 0, Longitude: 0, Type: netdomain.LocationPort},
		{ID: "B", Latitude: 0, Longitude: 10, Type: netdomain.LocationHub},
		{ID: "C", Latitude: 0, Longitude: 20, Type: netdomain.LocationPort},
		{ID: "D", Latitude: 10, Longitude: 10, Type: netdomain.LocationHub},
	}
	mk := func(from, to netdomain.Location, mode netdomain.TransportMode, speed, costPerKm, rel float64) netdomain.Edge {
		d := from.DistanceTo(to)
		return netdomain.Edge{
			ID:            netdomain.EdgeID(from.ID, to.ID, mode),
			OriginID:      from.ID,
			DestinationID: to.ID,
			Mode:          mode,
			Distance:      d,
			EstimatedTime: d / speed,
			Cost:          d * costPerKm,
			Reliability:   rel,
			Speed:         speed,
			Capacity:      netdomain.Capacity{Weight: 100, Volume: 100},
		}
	}
	edges := []netdomain.Edge{
		mk(locs[0], locs[1], netdomain.ModeAir, 800, 0.5, 0.95),
		mk(locs[1], locs[2], netdomain.ModeAir, 800, 0.5, 0.95),
		mk(locs[0], locs[2], netdomain.ModeSea, 25, 3.0, 0.85),
		mk(locs[3], locs[0], netdomain.ModeAir, 800, 0.5, 0.95),
	}
	return netdomain.NewNetwork(locs, nil, nil, nil, edges)
}

func TestOptimizer_NYCToShanghai(t *testing.T) {
	o := newTestOptimizer(generatedNetwork(t, 42), nil, OptimizerConfig{})

	res := o.OptimizeRoute(context.Background(), "NYC", "SHG", &domain.Cargo{Priority: "high"}, domain.Preferences{})

	require.True(t, res.Success, res.Error)
	require.NotNil(t, res.OptimalRoute)
	assert.Nil(t, res.FallbackRoute)
	assert.Equal(t, "NYC", res.OptimalRoute.Nodes[0])
	assert.Equal(t, "SHG", res.OptimalRoute.Nodes[len(res.OptimalRoute.Nodes)-1])
	assert.Equal(t, domain.Dijkstra, res.OptimalRoute.Algorithm)
	assert.GreaterOrEqual(t, res.Metrics.OptimizationTimeMs, 0.0)
	assert.Nil(t, res.Metrics.TrustScore)
	assert.Contains(t, []string{domain.RiskLow, domain.RiskMedium, domain.RiskHigh}, res.RiskAssessment.RiskLevel)
	assert.LessOrEqual(t, len(res.Alternatives), 3)
	for _, alt := range res.Alternatives {
		assert.NotEqual(t, res.OptimalRoute.Key(), alt.Key())
	}
}

func TestOptimizer_AllPairsProduceValidRoutes(t *testing.T) {
	n := generatedNetwork(t, 42)
	o := newTestOptimizer(n, nil, OptimizerConfig{})
	ctx := context.Background()

	for _, from := range n.LocationIDs() {
		for _, to := range n.LocationIDs() {
			if from == to {
				continue
			}
			res := o.OptimizeRoute(ctx, from, to, &domain.Cargo{}, domain.Preferences{})
			require.True(t, res.Success, "%s->%s: %s", from, to, res.Error)

			r := res.OptimalRoute
			assert.GreaterOrEqual(t, r.TotalCost, 0.0)
			assert.GreaterOrEqual(t, r.TotalDistance, 0.0)
			assert.GreaterOrEqual(t, r.TotalTime, 0.0)
			assert.Greater(t, r.Reliability, 0.0)
			assert.LessOrEqual(t, r.Reliability, 1.0)
			assert.GreaterOrEqual(t, r.Efficiency, 0.0)
			assert.LessOrEqual(t, r.Efficiency, 1.0)
			assert.GreaterOrEqual(t, r.RiskScore, 0.0)
			assert.LessOrEqual(t, r.RiskScore, 1.0)
		}
	}
}

func TestOptimizer_ShortestPathBeatsRandomRoutes(t *testing.T) {
	n := generatedNetwork(t, 42)
	o := newTestOptimizer(n, nil, OptimizerConfig{})
	cargo := domain.Cargo{Weight: 5}

	pairs := [][2]string{{"NYC", "SHG"}, {"SAO", "SYD"}, {"LHR", "BKK"}, {"MEX", "JNB"}}
	for _, p := range pairs {
		dijkstra := o.OptimizeRoute(context.Background(), p[0], p[1], &cargo, domain.Preferences{Algorithm: "dijkstra"})
		astar := o.OptimizeRoute(context.Background(), p[0], p[1], &cargo, domain.Preferences{Algorithm: "astar"})
		require.True(t, dijkstra.Success)
		require.True(t, astar.Success)

		assert.InDelta(t, dijkstra.OptimalRoute.Weight, astar.OptimalRoute.Weight, 1e-9)

		for range 50 {
			nodes := o.randomRoute(p[0], p[1])
			w, ok := o.PathWeight(nodes, cargo)
			if !ok {
				continue
			}
			assert.LessOrEqual(t, dijkstra.OptimalRoute.Weight, w+1e-9, "%v", nodes)
			assert.LessOrEqual(t, astar.OptimalRoute.Weight, w+1e-9, "%v", nodes)
		}
	}
}

func TestOptimizer_ValidationFallback(t *testing.T) {
	o := newTestOptimizer(smallGraph(), nil, OptimizerConfig{})
	ctx := context.Background()

	tests := []struct {
		name        string
		origin      string
		destination string
		cargo       *domain.Cargo
		prefs       domain.Preferences
	}{
		{"UnknownOrigin", "XXX", "C", &domain.Cargo{}, domain.Preferences{}},
		{"UnknownDestination", "A", "XXX", &domain.Cargo{}, domain.Preferences{}},
		{"SameEndpoints", "A", "A", &domain.Cargo{}, domain.Preferences{}},
		{"MissingCargo", "A", "C", nil, domain.Preferences{}},
		{"UnknownAlgorithm", "A", "C", &domain.Cargo{}, domain.Preferences{Algorithm: "bellman-ford"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := o.OptimizeRoute(ctx, tt.origin, tt.destination, tt.cargo, tt.prefs)

			assert.False(t, res.Success)
			assert.NotEmpty(t, res.Error)
			require.NotNil(t, res.FallbackRoute)
			assert.Equal(t, []string{tt.origin, tt.destination}, res.FallbackRoute.Nodes)
			assert.Equal(t, 1000.0, res.FallbackRoute.TotalDistance)
			assert.Equal(t, 24.0, res.FallbackRoute.TotalTime)
			assert.Equal(t, 500.0, res.FallbackRoute.TotalCost)
			assert.Equal(t, 0.8, res.FallbackRoute.Reliability)
			assert.Equal(t, 0.3, res.FallbackRoute.RiskScore)
		})
	}
}

func TestOptimizer_NoPath(t *testing.T) {
	o := newTestOptimizer(smallGraph(), nil, OptimizerConfig{Population: 10, Generations: 5})

	for _, alg := range []string{"dijkstra", "astar", "genetic"} {
		t.Run(alg, func(t *testing.T) {
			res := o.OptimizeRoute(context.Background(), "A", "D", &domain.Cargo{}, domain.Preferences{Algorithm: alg})

			assert.False(t, res.Success)
			assert.Equal(t, "No path found", res.Error)
			assert.NotNil(t, res.FallbackRoute)
		})
	}
}

func TestOptimizer_SmallGraph(t *testing.T) {
	o := newTestOptimizer(smallGraph(), nil, OptimizerConfig{})

	res := o.OptimizeRoute(context.Background(), "A", "C", &domain.Cargo{}, domain.Preferences{})

	require.True(t, res.Success)
	assert.Equal(t, []string{"A", "B", "C"}, res.OptimalRoute.Nodes)
	assert.InDelta(t, 0.95*0.95, res.OptimalRoute.Reliability, 1e-9)

	require.Len(t, res.Alternatives, 1)
	assert.Equal(t, []string{"A", "C"}, res.Alternatives[0].Nodes)
	assert.Equal(t, domain.AStar, res.Alternatives[0].Algorithm)
	assert.Greater(t, res.Alternatives[0].Weight, res.OptimalRoute.Weight)
}

func TestOptimizer_Genetic(t *testing.T) {
	n := generatedNetwork(t, 42)
	cfg := OptimizerConfig{Population: 20, Generations: 15, MutationRate: 0.1}

	run := func() domain.Result {
		cfg.Rand = random.New(99)
		o := newTestOptimizer(n, nil, cfg)
		return o.OptimizeRoute(context.Background(), "NYC", "SHG", &domain.Cargo{}, domain.Preferences{Algorithm: "genetic"})
	}

	a, b := run(), run()
	require.True(t, a.Success, a.Error)
	assert.Equal(t, domain.Genetic, a.OptimalRoute.Algorithm)
	assert.Equal(t, "NYC", a.OptimalRoute.Nodes[0])
	assert.Equal(t, "SHG", a.OptimalRoute.Nodes[len(a.OptimalRoute.Nodes)-1])
	assert.Equal(t, a.OptimalRoute.Nodes, b.OptimalRoute.Nodes)
	assert.LessOrEqual(t, len(a.Alternatives), 3)
}

func TestOptimizer_GeneticHonoursContext(t *testing.T) {
	o := newTestOptimizer(generatedNetwork(t, 42), nil, OptimizerConfig{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := o.OptimizeRoute(ctx, "NYC", "SHG", &domain.Cargo{}, domain.Preferences{Algorithm: "genetic"})

	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "context canceled")
}

func TestOptimizer_CallerTrustAssessment(t *testing.T) {
	o := newTestOptimizer(smallGraph(), nil, OptimizerConfig{})
	trust := &trustdomain.Assessment{TrustScore: 20, RiskLevel: trustdomain.RiskHigh}
	cargo := &domain.Cargo{Fragile: true}

	res := o.OptimizeRoute(context.Background(), "A", "C", cargo, domain.Preferences{TrustAssessment: trust})

	require.True(t, res.Success)
	require.NotNil(t, res.Metrics.TrustScore)
	assert.Equal(t, 20.0, *res.Metrics.TrustScore)
	assert.Equal(t, 0.2, res.OptimalRoute.TrustImpact)
	assert.Contains(t, res.RiskAssessment.RiskFactors, "High supplier risk")
	assert.Equal(t, []string{
		"Consider additional verification steps for high-risk supplier",
		"Implement enhanced tracking and monitoring",
		"Use specialized handling equipment",
		"Consider climate-controlled transport",
	}, res.Recommendations)
	assert.Same(t, trust, res.TrustAssessment)
}

func TestOptimizer_AssessesCargoTrust(t *testing.T) {
	n := generatedNetwork(t, 42)
	stub := &stubAssessor{assessment: trustdomain.Assessment{TrustScore: 85, RiskLevel: trustdomain.RiskLow}}
	o := newTestOptimizer(n, stub, OptimizerConfig{})

	product := n.Products[0]
	cargo := &domain.Cargo{SupplierID: product.SupplierID, ProductID: product.ID}

	res := o.OptimizeRoute(context.Background(), "NYC", "LHR", cargo, domain.Preferences{})
	require.True(t, res.Success)
	assert.Equal(t, 1, stub.calls)
	assert.Equal(t, 85.0, *res.Metrics.TrustScore)

	res = o.OptimizeRoute(context.Background(), "NYC", "LHR", &domain.Cargo{SupplierID: "SUP_999", ProductID: product.ID}, domain.Preferences{})
	require.True(t, res.Success)
	assert.Equal(t, 1, stub.calls)
	assert.Nil(t, res.TrustAssessment)
}

func TestOptimizer_Stats(t *testing.T) {
	m := metrics.NewRegistry()
	o := newTestOptimizer(smallGraph(), nil, OptimizerConfig{Metrics: m})
	ctx := context.Background()

	o.OptimizeRoute(ctx, "A", "C", &domain.Cargo{}, domain.Preferences{})
	o.OptimizeRoute(ctx, "A", "B", &domain.Cargo{}, domain.Preferences{Algorithm: "astar"})
	o.OptimizeRoute(ctx, "A", "D", &domain.Cargo{}, domain.Preferences{})

	s := o.Stats()
	assert.Equal(t, 3, s.TotalOptimizations)
	assert.Equal(t, 2, s.SuccessfulOptimizations)
	assert.InDelta(t, 66.67, s.SuccessRate, 0.01)
	assert.GreaterOrEqual(t, s.AverageOptimizationTimeMs, 0.0)

	var out dto.Metric
	require.NoError(t, m.RouteOptimizationsTotal.WithLabelValues("dijkstra", "failure").Write(&out))
	assert.Equal(t, 1.0, out.GetCounter().GetValue())
}

func TestOptimizer_UnknownAlgorithmLabelIsBounded(t *testing.T) {
	m := metrics.NewRegistry()
	o := newTestOptimizer(smallGraph(), nil, OptimizerConfig{Metrics: m})
	ctx := context.Background()

	for i := 0; i < 50; i++ {
		o.OptimizeRoute(ctx, "XXX", "C", &domain.Cargo{}, domain.Preferences{Algorithm: fmt.Sprintf("bogus-%d", i)})
		o.OptimizeRoute(ctx, "A", "C", &domain.Cargo{}, domain.Preferences{Algorithm: fmt.Sprintf("bogus-%d", i)})
	}

	families, err := m.GetPrometheusRegistry().Gather()
	require.NoError(t, err)
	var series int
	for _, f := range families {
		if f.GetName() != "chainflow_route_optimizations_total" {
			continue
		}
		for _, metric := range f.GetMetric() {
			series++
			for _, l := range metric.GetLabel() {
				if l.GetName() == "algorithm" {
					assert.Equal(t, "unknown", l.GetValue())
				}
			}
		}
	}
	assert.Equal(t, 1, series)

	var out dto.Metric
	require.NoError(t, m.RouteOptimizationsTotal.WithLabelValues("unknown", "failure").Write(&out))
	assert.Equal(t, 100.0, out.GetCounter().GetValue())
}

func TestOptimizer_InvalidDefaultAlgorithm(t *testing.T) {
	m := metrics.NewRegistry()
	o := newTestOptimizer(smallGraph(), nil, OptimizerConfig{DefaultAlgorithm: "genetics", Metrics: m})

	res := o.OptimizeRoute(context.Background(), "A", "C", &domain.Cargo{}, domain.Preferences{})

	require.True(t, res.Success, res.Error)
	assert.Equal(t, domain.Dijkstra, res.OptimalRoute.Algorithm)

	var out dto.Metric
	require.NoError(t, m.RouteOptimizationsTotal.WithLabelValues("dijkstra", "success").Write(&out))
	assert.Equal(t, 1.0, out.GetCounter().GetValue())
}

func TestOptimizer_DefaultAlgorithmIsCaseInsensitive(t *testing.T) {
	o := newTestOptimizer(smallGraph(), nil, OptimizerConfig{DefaultAlgorithm: "AStar"})

	res := o.OptimizeRoute(context.Background(), "A", "C", &domain.Cargo{}, domain.Preferences{})

	require.True(t, res.Success, res.Error)
	assert.Equal(t, domain.AStar, res.OptimalRoute.Algorithm)
}
