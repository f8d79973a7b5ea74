package domain

import (
	"errors"
	"slices"
	"time"

	routingdomain "chainflow-engine/internal/features/routing/domain"
)

var (
	// ErrShipmentNotFound is returned when no shipment has the requested id.
	ErrShipmentNotFound = errors.New("shipment not found")
	// ErrInvalidRoute is returned when a route has fewer than two nodes.
	ErrInvalidRoute = errors.New("invalid route: at least two nodes are required")
)

// Status is the lifecycle state of a shipment. Delivered is terminal.
type Status string

const (
	StatusInTransit Status = "in_transit"
	StatusDelivered Status = "delivered"
)

// Alert types raised while a shipment is in transit.
const (
	AlertDelay          = "delay"
	AlertRouteDeviation = "route_deviation"
)

// Alert is an append-only event on a shipment.
type Alert struct {
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Severity  string    `json:"severity"`
	Timestamp time.Time `json:"timestamp"`
}

// Shipment is the simulated state of one tracked shipment.
type Shipment struct {
	ID    string              `json:"id"`
	Route routingdomain.Route `json:"route"`
	Cargo routingdomain.Cargo `json:"cargo"`
	// CurrentPosition is the travelled fraction of the route, in [0,1].
	CurrentPosition  float64   `json:"currentPosition"`
	Status           Status    `json:"status"`
	StartTime        time.Time `json:"startTime"`
	EstimatedArrival time.Time `json:"estimatedArrival"`
	Alerts           []Alert   `json:"alerts"`
	LastUpdate       time.Time `json:"lastUpdate"`
}

// Clone returns a copy that shares no slices with s.
func (s Shipment) Clone() Shipment {
	c := s
	c.Alerts = slices.Clone(s.Alerts)
	c.Route.Nodes = slices.Clone(s.Route.Nodes)
	c.Route.Path = slices.Clone(s.Route.Path)
	return c
}

// Waypoint is one stop of a route prepared for map display.
type Waypoint struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	// Coordinates are [lng, lat].
	Coordinates      [2]float64 `json:"coordinates"`
	Type             string     `json:"type"`
	Order            int        `json:"order"`
	EstimatedArrival time.Time  `json:"estimatedArrival"`
}

// RouteFactors are the headline numbers of a tracked route.
type RouteFactors struct {
	Distance   float64 `json:"distance"`
	Time       float64 `json:"time"`
	Cost       float64 `json:"cost"`
	Risk       float64 `json:"risk"`
	Efficiency float64 `json:"efficiency"`
}

// RouteView is the map visualization of a tracked shipment.
type RouteView struct {
	ID              string                  `json:"id"`
	ShipmentID      string                  `json:"shipmentId"`
	Algorithm       routingdomain.Algorithm `json:"algorithm"`
	Factors         RouteFactors            `json:"optimizationFactors"`
	Path            []Waypoint              `json:"path"`
	CurrentPosition float64                 `json:"currentPosition"`
	Status          Status                  `json:"status"`
}
