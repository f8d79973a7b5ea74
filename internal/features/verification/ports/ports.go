package ports

import (
	"context"
	"time"

	netdomain "chainflow-engine/internal/features/network/domain"
	routingdomain "chainflow-engine/internal/features/routing/domain"
	trustdomain "chainflow-engine/internal/features/trust/domain"
	"chainflow-engine/internal/features/verification/domain"
)

// Verifier defines the primary port for integrated verification.
type Verifier interface {
	Verify(ctx context.Context, req domain.Request) (domain.Result, error)
	Stats() domain.Stats
}

// ResultCache stores verification results per product id.
type ResultCache interface {
	// Get returns the cached result, or an error wrapping domain.ErrResultNotCached.
	Get(ctx context.Context, productID string) (domain.Result, error)
	Save(ctx context.Context, result domain.Result, ttl time.Duration) error
}

// RouteOptimizer finds the route half of a verification.
type RouteOptimizer interface {
	OptimizeRoute(ctx context.Context, origin, destination string, cargo *routingdomain.Cargo, prefs routingdomain.Preferences) routingdomain.Result
}

// TrustAssessor scores the product and supplier.
type TrustAssessor interface {
	Assess(product *netdomain.Product, supplier *netdomain.Supplier, category *netdomain.Category, supplyChain *netdomain.SupplyChain) trustdomain.Assessment
}

// Categories resolves a product category by name.
type Categories interface {
	Category(name string) (netdomain.Category, bool)
}
