package ports

import (
	"context"

	netdomain "chainflow-engine/internal/features/network/domain"
	"chainflow-engine/internal/features/routing/domain"
	trustdomain "chainflow-engine/internal/features/trust/domain"
)

// RouteOptimizer defines the primary port for route optimization.
type RouteOptimizer interface {
	OptimizeRoute(ctx context.Context, origin, destination string, cargo *domain.Cargo, prefs domain.Preferences) domain.Result
	Stats() domain.Stats
}

// Graph is the logistics network the optimizer searches.
type Graph interface {
	LocationIDs() []string
	Location(id string) (netdomain.Location, bool)
	Outgoing(id string) []netdomain.Edge
	Supplier(id string) (netdomain.Supplier, bool)
	Product(id string) (netdomain.Product, bool)
	Category(name string) (netdomain.Category, bool)
}

// TrustAssessor scores the supplier and product behind a cargo.
type TrustAssessor interface {
	Assess(product *netdomain.Product, supplier *netdomain.Supplier, category *netdomain.Category, supplyChain *netdomain.SupplyChain) trustdomain.Assessment
}
