package service

import (
	"context"
	"encoding/hex"
	"errors"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"chainflow-engine/internal/core/logger"
	"chainflow-engine/internal/core/metrics"
	netdomain "chainflow-engine/internal/features/network/domain"
	routingdomain "chainflow-engine/internal/features/routing/domain"
	trustdomain "chainflow-engine/internal/features/trust/domain"
	"chainflow-engine/internal/features/verification/domain"
	"chainflow-engine/internal/features/verification/ports"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/sync/singleflight"
)

const (
	defaultCacheTTL = 24 * time.Hour

	lowTrustScore          = 80
	lowRouteReliability    = 0.85
	significantCostSavings = 15
	efficiencyBaseline     = 70
)

// OrchestratorConfig tunes the orchestrator.
type OrchestratorConfig struct {
	CacheTTL time.Duration
	Metrics  *metrics.Registry
	Now      func() time.Time
}

// Orchestrator composes route optimization and trust scoring into one verification.
type Orchestrator struct {
	routes     ports.RouteOptimizer
	trust      ports.TrustAssessor
	categories ports.Categories
	cache      ports.ResultCache
	cfg        OrchestratorConfig
	group      singleflight.Group
	log        *zap.Logger

	mu       sync.Mutex
	hits     int
	misses   int
	computed int
	busy     time.Duration
}

// NewOrchestrator creates an Orchestrator. categories may be nil.
func NewOrchestrator(routes ports.RouteOptimizer, trust ports.TrustAssessor, categories ports.Categories, cache ports.ResultCache, cfg OrchestratorConfig) *Orchestrator {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = defaultCacheTTL
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Orchestrator{
		routes:     routes,
		trust:      trust,
		categories: categories,
		cache:      cache,
		cfg:        cfg,
		log:        logger.Named("verification"),
	}
}

// Verify returns the cached result for the product when one is live,
// otherwise computes, caches and returns a fresh one. Concurrent calls for
// the same product share a single computation.
func (o *Orchestrator) Verify(ctx context.Context, req domain.Request) (domain.Result, error) {
	productID := req.Product.ID
	if productID == "" {
		return domain.Result{}, domain.ErrMissingProductID
	}

	cached, err := o.cache.Get(ctx, productID)
	switch {
	case err == nil:
		o.cfg.Metrics.RecordCacheHit()
		o.count(&o.hits)
		cached.Cached = true
		return cached, nil
	case !errors.Is(err, domain.ErrResultNotCached):
		o.log.Warn("Verification cache read failed", zap.String("product_id", productID), zap.Error(err))
	}
	o.cfg.Metrics.RecordCacheMiss()
	o.count(&o.misses)

	v, err, shared := o.group.Do(productID, func() (any, error) {
		// A flight that finished between our read and Do has already stored its result.
		if again, err := o.cache.Get(ctx, productID); err == nil {
			again.Cached = true
			return again, nil
		}
		result := o.compute(ctx, req)
		if err := o.cache.Save(ctx, result, o.cfg.CacheTTL); err != nil {
			o.log.Warn("Verification cache write failed", zap.String("product_id", productID), zap.Error(err))
		}
		return result, nil
	})
	if err != nil {
		return domain.Result{}, err
	}
	if shared {
		o.log.Debug("Verification shared", zap.String("product_id", productID))
	}
	return v.(domain.Result), nil
}

func (o *Orchestrator) compute(ctx context.Context, req domain.Request) domain.Result {
	start := time.Now()
	defer func() {
		d := time.Since(start)
		o.mu.Lock()
		o.computed++
		o.busy += d
		o.mu.Unlock()
	}()

	rr := req.Route
	cargo := rr.Cargo
	routeResult := o.routes.OptimizeRoute(ctx, rr.Origin, rr.Destination, &cargo, rr.Preferences)
	route := chosenRoute(routeResult)

	product, supplier := req.Product, req.Supplier
	assessment := o.trust.Assess(&product, &supplier, o.category(req), product.SupplyChain)

	improvement := Improve(rr, route)
	trustScore := int(math.Floor(assessment.TrustScore))
	routeEfficiency := int(math.Round(route.Efficiency * 100))
	authentic := assessment.TrustScore >= domain.AuthenticTrustScore && !assessment.Degraded

	result := domain.Result{
		ID:        uuid.NewString(),
		ProductID: product.ID,
		Timestamp: o.cfg.Now(),
		RouteOptimization: domain.RouteOptimization{
			Result:      routeResult,
			Improvement: improvement,
		},
		TrustAssessment: assessment,
		Verification: domain.Verdict{
			IsAuthentic:     authentic,
			TrustScore:      trustScore,
			RouteEfficiency: routeEfficiency,
			RiskLevel:       assessment.RiskLevel,
			Confidence:      Confidence(assessment.Confidence, route.Reliability),
		},
		Attestation:     attest(product.ID, authentic, trustScore, routeEfficiency),
		Recommendations: Recommend(assessment, routeResult, route, improvement),
	}

	o.cfg.Metrics.RecordVerification(authentic)
	o.log.Info("Verification completed",
		zap.String("product_id", product.ID),
		zap.Bool("authentic", authentic),
		zap.Int("trust_score", trustScore),
		zap.Bool("route_found", routeResult.Success),
	)
	return result
}

// Stats reports request counts, the cache hit rate and the mean computation time.
func (o *Orchestrator) Stats() domain.Stats {
	o.mu.Lock()
	defer o.mu.Unlock()
	s := domain.Stats{
		TotalVerifications: o.hits + o.misses,
		CacheHits:          o.hits,
		CacheMisses:        o.misses,
	}
	if s.TotalVerifications > 0 {
		s.CacheHitRate = round1(float64(o.hits) / float64(s.TotalVerifications) * 100)
	}
	if o.computed > 0 {
		s.AverageProcessingTimeMs = float64(o.busy.Microseconds()) / 1000 / float64(o.computed)
	}
	return s
}

func (o *Orchestrator) count(n *int) {
	o.mu.Lock()
	*n++
	o.mu.Unlock()
}

func (o *Orchestrator) category(req domain.Request) *netdomain.Category {
	if req.Category != nil {
		return req.Category
	}
	if o.categories == nil || req.Product.Category == "" {
		return nil
	}
	if c, ok := o.categories.Category(req.Product.Category); ok {
		return &c
	}
	return nil
}

// chosenRoute is the optimal route, or the fallback when optimization failed.
func chosenRoute(res routingdomain.Result) routingdomain.Route {
	if res.OptimalRoute != nil {
		return *res.OptimalRoute
	}
	if res.FallbackRoute != nil {
		return *res.FallbackRoute
	}
	return routingdomain.Route{}
}

// Improve measures route against the caller's baseline, in percent rounded to one decimal.
func Improve(baseline domain.RouteRequest, route routingdomain.Route) domain.Improvement {
	return domain.Improvement{
		DistanceReduction: reduction(orDefault(baseline.Distance, domain.BaselineDistance), route.TotalDistance),
		TimeReduction:     reduction(orDefault(baseline.EstimatedTime, domain.BaselineTime), route.TotalTime),
		CostReduction:     reduction(orDefault(baseline.EstimatedCost, domain.BaselineCost), route.TotalCost),
		EfficiencyGain:    round1(route.Efficiency*100 - efficiencyBaseline),
	}
}

// Confidence averages the trust confidence with the route reliability as a percentage.
func Confidence(trustConfidence, routeReliability float64) int {
	c := math.Floor((trustConfidence + routeReliability*100) / 2)
	return int(max(0, min(100, c)))
}

// Recommend merges the trust and route suggestions with the cross-cutting checks.
// Duplicate messages are dropped.
func Recommend(a trustdomain.Assessment, res routingdomain.Result, route routingdomain.Route, imp domain.Improvement) []domain.Recommendation {
	out := []domain.Recommendation{}
	seen := map[string]bool{}
	add := func(r domain.Recommendation) {
		if seen[r.Message] {
			return
		}
		seen[r.Message] = true
		out = append(out, r)
	}

	trustPriority := domain.PriorityMedium
	if a.RiskLevel == trustdomain.RiskHigh {
		trustPriority = domain.PriorityHigh
	}
	for _, msg := range a.Recommendations {
		add(domain.Recommendation{Type: domain.RecommendationTrust, Priority: trustPriority, Message: msg})
	}
	for _, msg := range res.Recommendations {
		add(domain.Recommendation{Type: domain.RecommendationRoute, Priority: domain.PriorityLow, Message: msg})
	}

	if a.TrustScore < lowTrustScore {
		add(domain.Recommendation{
			Type:     domain.RecommendationTrust,
			Priority: domain.PriorityHigh,
			Message:  "Consider additional supplier verification",
			Action:   "Request additional certifications",
		})
	}
	if route.Reliability < lowRouteReliability {
		add(domain.Recommendation{
			Type:     domain.RecommendationRoute,
			Priority: domain.PriorityMedium,
			Message:  "Route reliability could be improved",
			Action:   "Consider alternative routes or carriers",
		})
	}
	if imp.CostReduction > significantCostSavings {
		add(domain.Recommendation{
			Type:     domain.RecommendationOptimization,
			Priority: domain.PriorityLow,
			Message:  "Significant cost savings available",
			Action:   "Implement optimized route for future shipments",
		})
	}
	return out
}

// attest digests the public signals: validity, trust score, route efficiency and risk.
func attest(productID string, authentic bool, trustScore, routeEfficiency int) domain.Attestation {
	valid := "0"
	if authentic {
		valid = "1"
	}
	risk := (100 - trustScore + 100 - routeEfficiency) / 4
	signals := []string{valid, strconv.Itoa(trustScore), strconv.Itoa(routeEfficiency), strconv.Itoa(risk)}

	sum := blake2b.Sum256([]byte(productID + "|" + strings.Join(signals, "|")))
	return domain.Attestation{
		Digest:        hex.EncodeToString(sum[:]),
		PublicSignals: signals,
		Fallback:      true,
	}
}

func reduction(baseline, value float64) float64 {
	return round1((baseline - value) / baseline * 100)
}

func orDefault(v, def float64) float64 {
	if v > 0 {
		return v
	}
	return def
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
