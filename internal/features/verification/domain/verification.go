package domain

import (
	"errors"
	"time"

	netdomain "chainflow-engine/internal/features/network/domain"
	routingdomain "chainflow-engine/internal/features/routing/domain"
	trustdomain "chainflow-engine/internal/features/trust/domain"
)

var (
	// ErrMissingProductID is returned when a product carries no id to verify or cache under.
	ErrMissingProductID = errors.New("product id is required")
	// ErrResultNotCached is returned by a ResultCache on a miss.
	ErrResultNotCached = errors.New("verification result not cached")
)

// Baselines used when the caller does not state the current route.
const (
	BaselineDistance = 1000.0
	BaselineTime     = 48.0
	BaselineCost     = 2000.0
)

// AuthenticTrustScore is the minimum trust score for a product to verify as authentic.
const AuthenticTrustScore = 70

// RouteRequest is the route half of a verification: where the goods move and
// the currently used route to measure the improvement against.
type RouteRequest struct {
	Origin      string                    `json:"origin" validate:"required"`
	Destination string                    `json:"destination" validate:"required"`
	Cargo       routingdomain.Cargo       `json:"cargo"`
	Preferences routingdomain.Preferences `json:"preferences"`
	// Distance, EstimatedTime and EstimatedCost describe the baseline route.
	// Zero means the package default.
	Distance      float64 `json:"distance,omitempty"`
	EstimatedTime float64 `json:"estimatedTime,omitempty"`
	EstimatedCost float64 `json:"estimatedCost,omitempty"`
}

// Request bundles the inputs of one verification.
type Request struct {
	Product  netdomain.Product   `json:"product"`
	Supplier netdomain.Supplier  `json:"supplier"`
	Category *netdomain.Category `json:"category,omitempty"`
	Route    RouteRequest        `json:"route"`
}

// Improvement compares the optimized route with the baseline, in percent.
type Improvement struct {
	DistanceReduction float64 `json:"distanceReduction"`
	TimeReduction     float64 `json:"timeReduction"`
	CostReduction     float64 `json:"costReduction"`
	// EfficiencyGain is the route efficiency in points above 70.
	EfficiencyGain float64 `json:"efficiencyGain"`
}

// RouteOptimization is the routing half of a verification.
type RouteOptimization struct {
	Result      routingdomain.Result `json:"result"`
	Improvement Improvement          `json:"improvement"`
}

// Verdict summarizes a verification.
type Verdict struct {
	IsAuthentic     bool                  `json:"isAuthentic"`
	TrustScore      int                   `json:"trustScore"`
	RouteEfficiency int                   `json:"routeEfficiency"`
	RiskLevel       trustdomain.RiskLevel `json:"riskLevel"`
	// Confidence is in [0,100].
	Confidence int `json:"confidence"`
}

// Attestation is a digest over the public verification signals.
// Fallback is always true: no proof system backs it.
type Attestation struct {
	Digest        string   `json:"digest"`
	PublicSignals []string `json:"publicSignals"`
	Fallback      bool     `json:"fallback"`
}

// Recommendation types and priorities.
const (
	RecommendationTrust        = "trust"
	RecommendationRoute        = "route"
	RecommendationOptimization = "optimization"

	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Recommendation is one suggested follow-up.
type Recommendation struct {
	Type     string `json:"type"`
	Priority string `json:"priority"`
	Message  string `json:"message"`
	Action   string `json:"action,omitempty"`
}

// Result is the full outcome of a verification.
type Result struct {
	ID                string                 `json:"id"`
	ProductID         string                 `json:"productId"`
	Timestamp         time.Time              `json:"timestamp"`
	Cached            bool                   `json:"cached"`
	RouteOptimization RouteOptimization      `json:"routeOptimization"`
	TrustAssessment   trustdomain.Assessment `json:"trustAssessment"`
	Verification      Verdict                `json:"verification"`
	Attestation       Attestation            `json:"attestation"`
	Recommendations   []Recommendation       `json:"recommendations"`
}

// Stats summarizes verification activity since startup.
type Stats struct {
	TotalVerifications int `json:"totalVerifications"`
	CacheHits          int `json:"cacheHits"`
	CacheMisses        int `json:"cacheMisses"`
	// CacheHitRate is a percentage rounded to one decimal.
	CacheHitRate float64 `json:"cacheHitRate"`
	// AverageProcessingTimeMs covers fresh computations only.
	AverageProcessingTimeMs float64 `json:"averageProcessingTime"`
}
