package adapters

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"chainflow-engine/internal/features/tracking/domain"
)

// MemoryShipmentStore implements ports.ShipmentStore in process memory.
// State is lost on restart.
type MemoryShipmentStore struct {
	mu        sync.Mutex
	shipments map[string]domain.Shipment
}

// NewMemoryShipmentStore creates an empty MemoryShipmentStore.
func NewMemoryShipmentStore() *MemoryShipmentStore {
	return &MemoryShipmentStore{
		shipments: make(map[string]domain.Shipment),
	}
}

// Save stores s, replacing any shipment with the same id.
func (m *MemoryShipmentStore) Save(_ context.Context, s domain.Shipment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shipments[s.ID] = s.Clone()
	return nil
}

// Get returns a copy of the shipment.
func (m *MemoryShipmentStore) Get(_ context.Context, id string) (domain.Shipment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.shipments[id]
	if !ok {
		return domain.Shipment{}, fmt.Errorf("%w: %s", domain.ErrShipmentNotFound, id)
	}
	return s.Clone(), nil
}

// Update applies fn under the store lock.
func (m *MemoryShipmentStore) Update(_ context.Context, id string, fn func(*domain.Shipment)) (domain.Shipment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.shipments[id]
	if !ok {
		return domain.Shipment{}, fmt.Errorf("%w: %s", domain.ErrShipmentNotFound, id)
	}
	s = s.Clone()
	fn(&s)
	m.shipments[id] = s
	return s.Clone(), nil
}

// List returns every shipment ordered by start time, then id.
func (m *MemoryShipmentStore) List(_ context.Context) ([]domain.Shipment, error) {
	m.mu.Lock()
	out := make([]domain.Shipment, 0, len(m.shipments))
	for _, s := range m.shipments {
		out = append(out, s.Clone())
	}
	m.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartTime.Equal(out[j].StartTime) {
			return out[i].StartTime.Before(out[j].StartTime)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
