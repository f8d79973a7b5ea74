package ports

import (
	netdomain "chainflow-engine/internal/features/network/domain"
	"chainflow-engine/internal/features/trust/domain"
)

// TrustService defines the primary port for trust scoring.
type TrustService interface {
	Assess(product *netdomain.Product, supplier *netdomain.Supplier, category *netdomain.Category, supplyChain *netdomain.SupplyChain) domain.Assessment
	Report(product *netdomain.Product, supplier *netdomain.Supplier, category *netdomain.Category) domain.Report
	HistoryStats() domain.HistoryStats
}

// Catalog resolves generated network records by id.
type Catalog interface {
	Product(id string) (netdomain.Product, bool)
	Supplier(id string) (netdomain.Supplier, bool)
	Category(name string) (netdomain.Category, bool)
}
