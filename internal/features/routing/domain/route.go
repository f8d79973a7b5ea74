package domain

import (
	"errors"
	"fmt"
	"strings"

	netdomain "chainflow-engine/internal/features/network/domain"
	trustdomain "chainflow-engine/internal/features/trust/domain"
)

var (
	// ErrUnknownAlgorithm is returned for an unsupported search strategy name.
	ErrUnknownAlgorithm = errors.New("unknown optimization algorithm")
	// ErrNoPath is returned when no feasible route connects origin and destination.
	ErrNoPath = errors.New("no path found")
)

// Algorithm selects the search strategy.
type Algorithm string

const (
	Dijkstra Algorithm = "dijkstra"
	AStar    Algorithm = "astar"
	Genetic  Algorithm = "genetic"
)

// Valid reports whether a names a known strategy.
func (a Algorithm) Valid() bool {
	switch a {
	case Dijkstra, AStar, Genetic:
		return true
	}
	return false
}

// ParseAlgorithm resolves a strategy name. Empty selects def, which must itself be valid.
func ParseAlgorithm(name string, def Algorithm) (Algorithm, error) {
	if name == "" {
		if !def.Valid() {
			return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, def)
		}
		return def, nil
	}
	if a := Algorithm(strings.ToLower(name)); a.Valid() {
		return a, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
}

// PriorityHigh marks urgent cargo.
const PriorityHigh = "high"

// Cargo describes what is being shipped.
type Cargo struct {
	SupplierID string `json:"supplierId,omitempty"`
	ProductID  string `json:"productId,omitempty"`
	Priority   string `json:"priority,omitempty"`
	Fragile    bool   `json:"fragile,omitempty"`
	Hazardous  bool   `json:"hazardous,omitempty"`
	// Value in USD.
	Value float64 `json:"value,omitempty"`
	// Weight in tonnes.
	Weight float64 `json:"weight,omitempty"`
}

// Preferences tune a single optimization.
type Preferences struct {
	Algorithm             string `json:"algorithm,omitempty"`
	PrioritizeCost        bool   `json:"prioritizeCost,omitempty"`
	PrioritizeTime        bool   `json:"prioritizeTime,omitempty"`
	PrioritizeReliability bool   `json:"prioritizeReliability,omitempty"`
	// TrustAssessment overrides the assessment derived from the cargo.
	TrustAssessment *trustdomain.Assessment `json:"trustAssessment,omitempty"`
}

// CostFactors weight the normalized edge attributes.
type CostFactors struct {
	Distance    float64 `json:"distance"`
	Time        float64 `json:"time"`
	Risk        float64 `json:"risk"`
	Capacity    float64 `json:"capacity"`
	Reliability float64 `json:"reliability"`
	Trust       float64 `json:"trust"`
	Cost        float64 `json:"cost"`
}

// DefaultCostFactors returns the baseline weighting.
func DefaultCostFactors() CostFactors {
	return CostFactors{
		Distance:    0.25,
		Time:        0.22,
		Risk:        0.18,
		Capacity:    0.15,
		Reliability: 0.12,
		Trust:       0.08,
		Cost:        0.10,
	}
}

// Segment is one hop of a route.
type Segment struct {
	From string         `json:"from"`
	To   string         `json:"to"`
	Edge netdomain.Edge `json:"edge"`
}

// Route is a resolved path with its aggregate metrics.
type Route struct {
	Algorithm           Algorithm `json:"algorithm,omitempty"`
	Nodes               []string  `json:"nodes"`
	Path                []Segment `json:"path"`
	TotalDistance       float64   `json:"totalDistance"`
	TotalTime           float64   `json:"totalTime"`
	TotalCost           float64   `json:"totalCost"`
	EnvironmentalImpact float64   `json:"environmentalImpact"`
	// Reliability is in (0,1].
	Reliability float64 `json:"reliability"`
	// RiskScore is in [0,1].
	RiskScore float64 `json:"riskScore"`
	// Efficiency is in [0,1].
	Efficiency  float64 `json:"efficiency"`
	TrustImpact float64 `json:"trustImpact"`
	// Weight is the sum of edge weights under the cost factors used.
	Weight float64 `json:"weight"`
}

// Key identifies a route by the edges it uses.
func (r Route) Key() string {
	ids := make([]string, len(r.Path))
	for i, s := range r.Path {
		ids[i] = s.Edge.ID
	}
	return strings.Join(ids, ">")
}

// FallbackRoute is the fixed direct route returned when optimization cannot run.
func FallbackRoute(origin, destination string) Route {
	return Route{
		Nodes:         []string{origin, destination},
		Path:          []Segment{},
		TotalDistance: 1000,
		TotalTime:     24,
		TotalCost:     500,
		Reliability:   0.8,
		RiskScore:     0.3,
		Efficiency:    0.6,
	}
}

// Metrics summarises the optimal route and the optimization run.
type Metrics struct {
	TotalDistance       float64 `json:"totalDistance"`
	TotalTime           float64 `json:"totalTime"`
	TotalCost           float64 `json:"totalCost"`
	EnvironmentalImpact float64 `json:"environmentalImpact"`
	Reliability         float64 `json:"reliability"`
	RiskScore           float64 `json:"riskScore"`
	Efficiency          float64 `json:"efficiency"`
	TrustImpact         float64 `json:"trustImpact"`
	OptimizationTimeMs  float64 `json:"optimizationTime"`
	// TrustScore is nil when no trust assessment took part.
	TrustScore *float64 `json:"trustScore"`
}

// Risk levels of a route.
const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

// RiskAssessment grades the shipment risk of a route.
type RiskAssessment struct {
	RiskScore   float64  `json:"riskScore"`
	RiskLevel   string   `json:"riskLevel"`
	RiskFactors []string `json:"riskFactors"`
}

// Result is the outcome of an optimization. Success discriminates failures,
// which carry Error and FallbackRoute instead of the optimal route.
type Result struct {
	Success         bool                    `json:"success"`
	Error           string                  `json:"error,omitempty"`
	OptimalRoute    *Route                  `json:"optimalRoute,omitempty"`
	Metrics         *Metrics                `json:"metrics,omitempty"`
	Alternatives    []Route                 `json:"alternatives,omitempty"`
	RiskAssessment  *RiskAssessment         `json:"riskAssessment,omitempty"`
	TrustAssessment *trustdomain.Assessment `json:"trustAssessment,omitempty"`
	Recommendations []string                `json:"recommendations,omitempty"`
	FallbackRoute   *Route                  `json:"fallbackRoute,omitempty"`
}

// Stats are the optimizer's running performance counters.
type Stats struct {
	TotalOptimizations        int     `json:"totalOptimizations"`
	SuccessfulOptimizations   int     `json:"successfulOptimizations"`
	AverageOptimizationTimeMs float64 `json:"averageOptimizationTime"`
	// SuccessRate is a percentage.
	SuccessRate float64 `json:"successRate"`
}
