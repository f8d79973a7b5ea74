package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"chainflow-engine/internal/core/logger"
	"chainflow-engine/internal/core/metrics"
	"chainflow-engine/internal/core/random"
	netdomain "chainflow-engine/internal/features/network/domain"
	"chainflow-engine/internal/features/routing/domain"
	"chainflow-engine/internal/features/routing/ports"
	trustdomain "chainflow-engine/internal/features/trust/domain"

	"go.uber.org/zap"
)

const (
	maxAlternatives       = 3
	unknownAlgorithmLabel = "unknown"
)

// ErrInvalidInput is reported when origin, destination or cargo cannot be used.
var ErrInvalidInput = errors.New("invalid input parameters")

// OptimizerConfig tunes the optimizer.
type OptimizerConfig struct {
	DefaultAlgorithm domain.Algorithm
	Population       int
	Generations      int
	MutationRate     float64
	Rand             random.Source
	Metrics          *metrics.Registry
}

// Optimizer finds routes through the logistics graph. It is safe for concurrent use.
type Optimizer struct {
	graph   ports.Graph
	trust   ports.TrustAssessor
	cfg     OptimizerConfig
	rng     random.Source
	metrics *metrics.Registry
	log     *zap.Logger

	mu    sync.Mutex
	stats domain.Stats
}

// NewOptimizer creates an Optimizer over graph. trust may be nil, in which case
// only caller-supplied assessments are used.
func NewOptimizer(graph ports.Graph, trust ports.TrustAssessor, cfg OptimizerConfig) *Optimizer {
	log := logger.Named("routing")
	if def := domain.Algorithm(strings.ToLower(string(cfg.DefaultAlgorithm))); def.Valid() {
		cfg.DefaultAlgorithm = def
	} else {
		if cfg.DefaultAlgorithm != "" {
			log.Warn("Unknown default algorithm, using dijkstra", zap.String("algorithm", string(cfg.DefaultAlgorithm)))
		}
		cfg.DefaultAlgorithm = domain.Dijkstra
	}
	if cfg.Population <= 0 {
		cfg.Population = 50
	}
	if cfg.Generations <= 0 {
		cfg.Generations = 100
	}
	if cfg.MutationRate < 0 || cfg.MutationRate > 1 {
		cfg.MutationRate = 0.1
	}
	if cfg.Rand == nil {
		cfg.Rand = random.New(0)
	}
	return &Optimizer{
		graph:   graph,
		trust:   trust,
		cfg:     cfg,
		rng:     cfg.Rand,
		metrics: cfg.Metrics,
		log:     log,
	}
}

// OptimizeRoute searches the best route from origin to destination for cargo.
// Failures never panic; they return Success=false with a fallback route.
func (o *Optimizer) OptimizeRoute(ctx context.Context, origin, destination string, cargo *domain.Cargo, prefs domain.Preferences) (res domain.Result) {
	start := time.Now()
	alg, algErr := domain.ParseAlgorithm(prefs.Algorithm, o.cfg.DefaultAlgorithm)

	defer func() {
		if r := recover(); r != nil {
			o.log.Error("Route optimization panicked", zap.Any("panic", r))
			res = failure(origin, destination, fmt.Sprint(r))
		}
		o.observe(alg, res, time.Since(start))
	}()

	if err := o.validate(origin, destination, cargo); err != nil {
		return failure(origin, destination, err.Error())
	}
	if algErr != nil {
		return failure(origin, destination, algErr.Error())
	}

	trust := o.assessTrust(*cargo, prefs)
	w := newWeigher(AdjustCostFactors(prefs, trust), *cargo, trust)
	s := search{origin: origin, destination: destination, weigher: w}

	var (
		best         domain.Route
		alternatives []domain.Route
	)
	switch alg {
	case domain.Genetic:
		routes, err := o.genetic(ctx, s)
		if err != nil {
			return failure(origin, destination, searchError(err))
		}
		best, alternatives = routes[0], routes[1:]
	default:
		run := o.dijkstra
		if alg == domain.AStar {
			run = o.astar
		}
		path, err := run(s)
		if err != nil {
			return failure(origin, destination, searchError(err))
		}
		best = routeMetrics(alg, path, w)
		alternatives = o.alternatives(alg, s, best)
	}

	elapsed := time.Since(start)
	m := &domain.Metrics{
		TotalDistance:       best.TotalDistance,
		TotalTime:           best.TotalTime,
		TotalCost:           best.TotalCost,
		EnvironmentalImpact: best.EnvironmentalImpact,
		Reliability:         best.Reliability,
		RiskScore:           best.RiskScore,
		Efficiency:          best.Efficiency,
		TrustImpact:         best.TrustImpact,
		OptimizationTimeMs:  float64(elapsed.Microseconds()) / 1000,
	}
	if trust != nil {
		score := trust.TrustScore
		m.TrustScore = &score
	}
	risk := assessRisk(best, *cargo, trust)

	if alternatives == nil {
		alternatives = []domain.Route{}
	}
	return domain.Result{
		Success:         true,
		OptimalRoute:    &best,
		Metrics:         m,
		Alternatives:    alternatives,
		RiskAssessment:  &risk,
		TrustAssessment: trust,
		Recommendations: routeRecommendations(best, *cargo, trust),
	}
}

// PathWeight is the edge-weight sum of a waypoint sequence under default
// factors, resolving each hop to its cheapest edge. ok is false when a hop has no edge.
func (o *Optimizer) PathWeight(nodes []string, cargo domain.Cargo) (weight float64, ok bool) {
	w := newWeigher(domain.DefaultCostFactors(), cargo, nil)
	_, weight, ok = o.resolve(nodes, w)
	return weight, ok
}

// Stats returns a snapshot of the running counters.
func (o *Optimizer) Stats() domain.Stats {
	o.mu.Lock()
	defer o.mu.Unlock()
	s := o.stats
	if s.TotalOptimizations > 0 {
		s.SuccessRate = float64(s.SuccessfulOptimizations) / float64(s.TotalOptimizations) * 100
	}
	return s
}

func (o *Optimizer) validate(origin, destination string, cargo *domain.Cargo) error {
	if cargo == nil {
		return fmt.Errorf("%w: cargo is required", ErrInvalidInput)
	}
	if _, ok := o.graph.Location(origin); !ok {
		return fmt.Errorf("%w: unknown origin %q", ErrInvalidInput, origin)
	}
	if _, ok := o.graph.Location(destination); !ok {
		return fmt.Errorf("%w: unknown destination %q", ErrInvalidInput, destination)
	}
	if origin == destination {
		return fmt.Errorf("%w: origin equals destination", ErrInvalidInput)
	}
	return nil
}

// assessTrust prefers the caller's assessment, then scores the cargo's supplier and product.
func (o *Optimizer) assessTrust(cargo domain.Cargo, prefs domain.Preferences) *trustdomain.Assessment {
	if prefs.TrustAssessment != nil {
		return prefs.TrustAssessment
	}
	if o.trust == nil || cargo.SupplierID == "" || cargo.ProductID == "" {
		return nil
	}
	supplier, ok := o.graph.Supplier(cargo.SupplierID)
	if !ok {
		return nil
	}
	product, ok := o.graph.Product(cargo.ProductID)
	if !ok {
		return nil
	}
	var category *netdomain.Category
	if c, ok := o.graph.Category(product.Category); ok {
		category = &c
	}
	a := o.trust.Assess(&product, &supplier, category, product.SupplyChain)
	return &a
}

// alternatives re-runs the secondary strategy with each primary edge banned in turn.
// Any failure yields an empty list.
func (o *Optimizer) alternatives(primary domain.Algorithm, s search, best domain.Route) (out []domain.Route) {
	defer func() {
		if r := recover(); r != nil {
			o.log.Warn("Alternative routes failed", zap.Any("panic", r))
			out = []domain.Route{}
		}
	}()

	secondary, run := domain.AStar, o.astar
	if primary == domain.AStar {
		secondary, run = domain.Dijkstra, o.dijkstra
	}

	out = []domain.Route{}
	seen := map[string]bool{best.Key(): true}
	for _, seg := range best.Path {
		if len(out) == maxAlternatives {
			break
		}
		alt := s
		alt.banned = map[string]bool{seg.Edge.ID: true}
		path, err := run(alt)
		if err != nil {
			continue
		}
		r := routeMetrics(secondary, path, s.weigher)
		if seen[r.Key()] {
			continue
		}
		seen[r.Key()] = true
		out = append(out, r)
	}
	return out
}

func (o *Optimizer) observe(alg domain.Algorithm, res domain.Result, d time.Duration) {
	o.mu.Lock()
	o.stats.TotalOptimizations++
	if res.Success {
		o.stats.SuccessfulOptimizations++
	}
	n := float64(o.stats.TotalOptimizations)
	ms := float64(d.Microseconds()) / 1000
	o.stats.AverageOptimizationTimeMs = (o.stats.AverageOptimizationTimeMs*(n-1) + ms) / n
	o.mu.Unlock()

	// Unparsed names never reach label values.
	label := string(alg)
	if !alg.Valid() {
		label = unknownAlgorithmLabel
	}
	o.metrics.RecordRouteOptimization(label, res.Success, d, len(res.Alternatives))
	if !res.Success {
		o.log.Debug("Route optimization failed", zap.String("algorithm", string(alg)), zap.String("error", res.Error))
	}
}

func failure(origin, destination, msg string) domain.Result {
	fb := domain.FallbackRoute(origin, destination)
	return domain.Result{Success: false, Error: msg, FallbackRoute: &fb}
}

func searchError(err error) string {
	if errors.Is(err, domain.ErrNoPath) {
		return "No path found"
	}
	return err.Error()
}
