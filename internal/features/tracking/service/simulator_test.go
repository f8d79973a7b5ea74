package service

import (
	"context"
	"testing"
	"time"

	"chainflow-engine/internal/core/metrics"
	"chainflow-engine/internal/core/random"
	netdomain "chainflow-engine/internal/features/network/domain"
	routingdomain "chainflow-engine/internal/features/routing/domain"
	"chainflow-engine/internal/features/tracking/adapters"
	"chainflow-engine/internal/features/tracking/domain"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

type locations map[string]netdomain.Location

func (l locations) Location(id string) (netdomain.Location, bool) {
	loc, ok := l[id]
	return loc, ok
}

func testLocations() locations {
	return locations{
		"NYC": {ID: "NYC", Name: "New York", Latitude: 40.7128, Longitude: -74.0060, Type: netdomain.LocationPort},
		"SHG": {ID: "SHG", Name: "Shanghai", Latitude: 31.2304, Longitude: 121.4737, Type: netdomain.LocationManufacturing},
	}
}

func testRoute() routingdomain.Route {
	return routingdomain.Route{
		Algorithm:     routingdomain.AStar,
		Nodes:         []string{"NYC", "LHR", "SHG"},
		TotalDistance: 15000,
		TotalTime:     20,
		TotalCost:     45000,
		RiskScore:     0.4,
		Efficiency:    0.7,
	}
}

func newTestSimulator(rng random.Source, m *metrics.Registry) *Simulator {
	return NewSimulator(adapters.NewMemoryShipmentStore(), testLocations(), SimulatorConfig{
		Interval: time.Hour,
		Rand:     rng,
		Metrics:  m,
		Now:      func() time.Time { return fixedNow },
	})
}

func TestSimulator_StartTracking(t *testing.T) {
	s := newTestSimulator(random.NewFixed(0.5), nil)
	ctx := context.Background()

	sh, err := s.StartTracking(ctx, "SHIP-1", testRoute(), routingdomain.Cargo{Fragile: true})

	require.NoError(t, err)
	assert.Equal(t, "SHIP-1", sh.ID)
	assert.Equal(t, domain.StatusInTransit, sh.Status)
	assert.Equal(t, 0.0, sh.CurrentPosition)
	assert.Equal(t, fixedNow, sh.StartTime)
	assert.Equal(t, fixedNow.Add(20*time.Hour), sh.EstimatedArrival)
	assert.Empty(t, sh.Alerts)
	assert.True(t, sh.Cargo.Fragile)
	assert.Equal(t, 1, s.scheduled())

	got, err := s.Get(ctx, "SHIP-1")
	require.NoError(t, err)
	assert.Equal(t, sh, got)
}

func TestSimulator_StartTrackingGeneratesID(t *testing.T) {
	s := newTestSimulator(random.NewFixed(0.5), nil)

	sh, err := s.StartTracking(context.Background(), "", testRoute(), routingdomain.Cargo{})

	require.NoError(t, err)
	assert.Len(t, sh.ID, 36)
}

func TestSimulator_StartTrackingRejectsShortRoute(t *testing.T) {
	s := newTestSimulator(random.NewFixed(0.5), nil)

	_, err := s.StartTracking(context.Background(), "SHIP-1", routingdomain.Route{Nodes: []string{"NYC"}}, routingdomain.Cargo{})

	assert.ErrorIs(t, err, domain.ErrInvalidRoute)
	assert.Equal(t, 0, s.scheduled())
}

func TestSimulator_ProgressIsMonotonicUntilDelivered(t *testing.T) {
	m := metrics.NewRegistry()
	s := newTestSimulator(random.New(2024), m)
	ctx := context.Background()

	_, err := s.StartTracking(ctx, "SHIP-1", testRoute(), routingdomain.Cargo{})
	require.NoError(t, err)

	last := 0.0
	var sh domain.Shipment
	for i := 0; i < 10000 && sh.Status != domain.StatusDelivered; i++ {
		sh, err = s.Tick(ctx, "SHIP-1")
		require.NoError(t, err)
		require.GreaterOrEqual(t, sh.CurrentPosition, last)
		require.LessOrEqual(t, sh.CurrentPosition, 1.0)
		last = sh.CurrentPosition
	}

	require.Equal(t, domain.StatusDelivered, sh.Status)
	assert.Equal(t, 1.0, sh.CurrentPosition)
	assert.Equal(t, 0, s.scheduled())

	alerts := len(sh.Alerts)
	for range 5 {
		after, err := s.Tick(ctx, "SHIP-1")
		require.NoError(t, err)
		assert.Equal(t, 1.0, after.CurrentPosition)
		assert.Equal(t, domain.StatusDelivered, after.Status)
		assert.Len(t, after.Alerts, alerts)
	}

	var out dto.Metric
	require.NoError(t, m.ShipmentDelivered.Write(&out))
	assert.Equal(t, 1.0, out.GetCounter().GetValue())
	require.NoError(t, m.ActiveShipments.Write(&out))
	assert.Equal(t, 0.0, out.GetGauge().GetValue())
}

func TestSimulator_Alerts(t *testing.T) {
	// Each tick draws the step, then the delay and deviation rolls.
	s := newTestSimulator(random.NewFixed(0.1, 0.01, 0.01), nil)
	ctx := context.Background()

	_, err := s.StartTracking(ctx, "SHIP-1", testRoute(), routingdomain.Cargo{})
	require.NoError(t, err)

	sh, err := s.Tick(ctx, "SHIP-1")
	require.NoError(t, err)

	assert.InDelta(t, 0.01, sh.CurrentPosition, 1e-12)
	require.Len(t, sh.Alerts, 2)
	assert.Equal(t, domain.AlertDelay, sh.Alerts[0].Type)
	assert.Equal(t, "medium", sh.Alerts[0].Severity)
	assert.Equal(t, domain.AlertRouteDeviation, sh.Alerts[1].Type)
	assert.Equal(t, "high", sh.Alerts[1].Severity)
	assert.Equal(t, fixedNow, sh.Alerts[0].Timestamp)
}

func TestSimulator_NoAlertsOnQuietTicks(t *testing.T) {
	s := newTestSimulator(random.NewFixed(0.5), nil)
	ctx := context.Background()

	_, err := s.StartTracking(ctx, "SHIP-1", testRoute(), routingdomain.Cargo{})
	require.NoError(t, err)

	for range 5 {
		sh, err := s.Tick(ctx, "SHIP-1")
		require.NoError(t, err)
		assert.Empty(t, sh.Alerts)
	}
}

func TestSimulator_TickUnknown(t *testing.T) {
	s := newTestSimulator(random.NewFixed(0.5), nil)

	_, err := s.Tick(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrShipmentNotFound)
}

func TestSimulator_Active(t *testing.T) {
	s := newTestSimulator(random.NewFixed(0.5), nil)
	ctx := context.Background()

	for _, id := range []string{"B", "A", "C"} {
		_, err := s.StartTracking(ctx, id, testRoute(), routingdomain.Cargo{})
		require.NoError(t, err)
	}

	all, err := s.Active(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "A", all[0].ID)
	assert.Equal(t, 3, s.scheduled())
}

func TestSimulator_RouteView(t *testing.T) {
	s := newTestSimulator(random.NewFixed(0.5), nil)
	ctx := context.Background()

	_, err := s.StartTracking(ctx, "SHIP-1", testRoute(), routingdomain.Cargo{})
	require.NoError(t, err)

	view, err := s.RouteView(ctx, "SHIP-1")
	require.NoError(t, err)

	assert.Equal(t, "route-SHIP-1", view.ID)
	assert.Equal(t, routingdomain.AStar, view.Algorithm)
	assert.Equal(t, 15000.0, view.Factors.Distance)
	require.Len(t, view.Path, 3)

	nyc := view.Path[0]
	assert.Equal(t, "New York", nyc.Name)
	assert.Equal(t, [2]float64{-74.0060, 40.7128}, nyc.Coordinates)
	assert.Equal(t, "port", nyc.Type)
	assert.Equal(t, fixedNow, nyc.EstimatedArrival)

	lhr := view.Path[1]
	assert.Equal(t, "Location LHR", lhr.Name)
	assert.Equal(t, "unknown", lhr.Type)
	assert.Equal(t, fixedNow.Add(10*time.Hour), lhr.EstimatedArrival)

	assert.Equal(t, fixedNow.Add(20*time.Hour), view.Path[2].EstimatedArrival)

	_, err = s.RouteView(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrShipmentNotFound)
}

func TestSimulator_StartStop(t *testing.T) {
	s := newTestSimulator(random.NewFixed(0.5), nil)
	s.Start()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, s.Stop(ctx))
}
