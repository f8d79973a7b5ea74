package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"chainflow-engine/internal/core/logger"
	"chainflow-engine/internal/core/metrics"
	"chainflow-engine/internal/core/random"
	routingdomain "chainflow-engine/internal/features/routing/domain"
	"chainflow-engine/internal/features/tracking/domain"
	"chainflow-engine/internal/features/tracking/ports"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	defaultTickInterval = 30 * time.Second
	maxStep             = 0.1
	delayChance         = 0.05
	deviationChance     = 0.02
	// defaultRouteHours is used for waypoint ETAs when a route has no total time.
	defaultRouteHours = 24.0
)

// SimulatorConfig tunes the simulator.
type SimulatorConfig struct {
	Interval time.Duration
	Rand     random.Source
	Metrics  *metrics.Registry
	Now      func() time.Time
}

// Simulator advances tracked shipments on a cron schedule until delivery.
type Simulator struct {
	store     ports.ShipmentStore
	locations ports.Locations
	cfg       SimulatorConfig
	cron      *cron.Cron
	log       *zap.Logger

	mu      sync.Mutex
	entries map[string]cron.EntryID
}

// NewSimulator creates a Simulator. Call Start to begin ticking.
func NewSimulator(store ports.ShipmentStore, locations ports.Locations, cfg SimulatorConfig) *Simulator {
	if cfg.Interval <= 0 {
		cfg.Interval = defaultTickInterval
	}
	if cfg.Rand == nil {
		cfg.Rand = random.New(0)
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	log := logger.Named("tracking")
	cronLog := cron.PrintfLogger(zap.NewStdLog(log))

	return &Simulator{
		store:     store,
		locations: locations,
		cfg:       cfg,
		cron:      cron.New(cron.WithLogger(cronLog), cron.WithChain(cron.Recover(cronLog))),
		log:       log,
		entries:   make(map[string]cron.EntryID),
	}
}

// Start runs the scheduler in the background.
func (s *Simulator) Start() {
	s.cron.Start()
}

// Stop halts the scheduler and waits for running ticks to finish or ctx to expire.
func (s *Simulator) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// StartTracking registers a shipment in transit and schedules its ticks.
// An empty id is replaced by a generated one. Tracking an existing id restarts it.
func (s *Simulator) StartTracking(ctx context.Context, shipmentID string, route routingdomain.Route, cargo routingdomain.Cargo) (domain.Shipment, error) {
	if len(route.Nodes) < 2 {
		return domain.Shipment{}, domain.ErrInvalidRoute
	}
	if shipmentID == "" {
		shipmentID = uuid.NewString()
	}

	now := s.cfg.Now()
	shipment := domain.Shipment{
		ID:               shipmentID,
		Route:            route,
		Cargo:            cargo,
		Status:           domain.StatusInTransit,
		StartTime:        now,
		EstimatedArrival: now.Add(hours(route.TotalTime)),
		Alerts:           []domain.Alert{},
		LastUpdate:       now,
	}
	if err := s.store.Save(ctx, shipment); err != nil {
		return domain.Shipment{}, fmt.Errorf("failed to save shipment: %w", err)
	}

	s.unschedule(shipmentID)
	id := s.cron.Schedule(cron.Every(s.cfg.Interval), cron.FuncJob(func() {
		if _, err := s.Tick(context.Background(), shipmentID); err != nil {
			s.log.Warn("Tick failed", zap.String("shipment_id", shipmentID), zap.Error(err))
		}
	}))
	s.mu.Lock()
	s.entries[shipmentID] = id
	s.mu.Unlock()

	s.log.Info("Tracking started",
		zap.String("shipment_id", shipmentID),
		zap.Strings("nodes", route.Nodes),
		zap.Time("estimated_arrival", shipment.EstimatedArrival),
	)
	s.refreshGauge(ctx)
	return shipment.Clone(), nil
}

// Tick advances a shipment once. Ticks on a delivered shipment change nothing.
func (s *Simulator) Tick(ctx context.Context, id string) (domain.Shipment, error) {
	var delivered bool
	var alerts []string

	shipment, err := s.store.Update(ctx, id, func(sh *domain.Shipment) {
		if sh.Status == domain.StatusDelivered {
			return
		}
		now := s.cfg.Now()
		sh.CurrentPosition += s.cfg.Rand.Float64() * maxStep
		sh.LastUpdate = now

		if sh.CurrentPosition >= 1 {
			sh.CurrentPosition = 1
			sh.Status = domain.StatusDelivered
			delivered = true
			return
		}

		if random.Chance(s.cfg.Rand, delayChance) {
			sh.Alerts = append(sh.Alerts, domain.Alert{
				Type:      domain.AlertDelay,
				Message:   "Shipment experiencing delays",
				Severity:  "medium",
				Timestamp: now,
			})
			alerts = append(alerts, domain.AlertDelay)
		}
		if random.Chance(s.cfg.Rand, deviationChance) {
			sh.Alerts = append(sh.Alerts, domain.Alert{
				Type:      domain.AlertRouteDeviation,
				Message:   "Shipment has deviated from planned route",
				Severity:  "high",
				Timestamp: now,
			})
			alerts = append(alerts, domain.AlertRouteDeviation)
		}
	})
	if err != nil {
		if errors.Is(err, domain.ErrShipmentNotFound) {
			s.unschedule(id)
		}
		return domain.Shipment{}, err
	}

	for _, a := range alerts {
		s.cfg.Metrics.RecordShipmentAlert(a)
	}
	if delivered {
		s.unschedule(id)
		s.cfg.Metrics.RecordDelivery()
		s.refreshGauge(ctx)
		s.log.Info("Shipment delivered", zap.String("shipment_id", id))
	}
	return shipment, nil
}

// Get returns the current state of a shipment.
func (s *Simulator) Get(ctx context.Context, id string) (domain.Shipment, error) {
	return s.store.Get(ctx, id)
}

// Active returns every tracked shipment, delivered ones included, oldest first.
func (s *Simulator) Active(ctx context.Context) ([]domain.Shipment, error) {
	return s.store.List(ctx)
}

// RouteView lays the shipment's route out as map waypoints with ETAs.
func (s *Simulator) RouteView(ctx context.Context, id string) (domain.RouteView, error) {
	sh, err := s.store.Get(ctx, id)
	if err != nil {
		return domain.RouteView{}, err
	}

	r := sh.Route
	total := r.TotalTime
	if total <= 0 {
		total = defaultRouteHours
	}
	alg := r.Algorithm
	if alg == "" {
		alg = routingdomain.Dijkstra
	}

	path := make([]domain.Waypoint, len(r.Nodes))
	last := max(len(r.Nodes)-1, 1)
	for i, nodeID := range r.Nodes {
		wp := domain.Waypoint{
			ID:               nodeID,
			Name:             "Location " + nodeID,
			Type:             "unknown",
			Order:            i,
			EstimatedArrival: sh.StartTime.Add(hours(total * float64(i) / float64(last))),
		}
		if loc, ok := s.locations.Location(nodeID); ok {
			wp.Name = loc.Name
			wp.Coordinates = [2]float64{loc.Longitude, loc.Latitude}
			wp.Type = string(loc.Type)
		}
		path[i] = wp
	}

	return domain.RouteView{
		ID:         "route-" + sh.ID,
		ShipmentID: sh.ID,
		Algorithm:  alg,
		Factors: domain.RouteFactors{
			Distance:   r.TotalDistance,
			Time:       r.TotalTime,
			Cost:       r.TotalCost,
			Risk:       r.RiskScore,
			Efficiency: r.Efficiency,
		},
		Path:            path,
		CurrentPosition: sh.CurrentPosition,
		Status:          sh.Status,
	}, nil
}

// scheduled reports how many shipments still have a cron entry.
func (s *Simulator) scheduled() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *Simulator) unschedule(id string) {
	s.mu.Lock()
	entry, ok := s.entries[id]
	delete(s.entries, id)
	s.mu.Unlock()
	if ok {
		s.cron.Remove(entry)
	}
}

func (s *Simulator) refreshGauge(ctx context.Context) {
	if s.cfg.Metrics == nil {
		return
	}
	all, err := s.store.List(ctx)
	if err != nil {
		return
	}
	n := 0
	for _, sh := range all {
		if sh.Status == domain.StatusInTransit {
			n++
		}
	}
	s.cfg.Metrics.SetActiveShipments(n)
}

func hours(h float64) time.Duration {
	return time.Duration(h * float64(time.Hour))
}
