package ports

import (
	"context"

	netdomain "chainflow-engine/internal/features/network/domain"
	routingdomain "chainflow-engine/internal/features/routing/domain"
	"chainflow-engine/internal/features/tracking/domain"
)

// TrackingService defines the primary port for shipment tracking.
type TrackingService interface {
	StartTracking(ctx context.Context, shipmentID string, route routingdomain.Route, cargo routingdomain.Cargo) (domain.Shipment, error)
	Get(ctx context.Context, id string) (domain.Shipment, error)
	Active(ctx context.Context) ([]domain.Shipment, error)
	RouteView(ctx context.Context, id string) (domain.RouteView, error)
}

// ShipmentStore defines the secondary port for shipment state.
// Implementations return copies; callers never share state with the store.
type ShipmentStore interface {
	Save(ctx context.Context, s domain.Shipment) error
	Get(ctx context.Context, id string) (domain.Shipment, error)
	// Update applies fn to the stored shipment atomically and returns the result.
	Update(ctx context.Context, id string, fn func(*domain.Shipment)) (domain.Shipment, error)
	List(ctx context.Context) ([]domain.Shipment, error)
}

// Locations resolves location ids for map views.
type Locations interface {
	Location(id string) (netdomain.Location, bool)
}
