package domain

import "strings"

// TransportMode is the carrier type of an edge.
type TransportMode string

const (
	ModeSea  TransportMode = "sea"
	ModeAir  TransportMode = "air"
	ModeLand TransportMode = "land"
	ModeRail TransportMode = "rail"
)

// TransportModes lists every mode in generation order.
var TransportModes = []TransportMode{ModeSea, ModeAir, ModeLand, ModeRail}

// Capacity of a single edge.
type Capacity struct {
	// Weight in tons.
	Weight float64 `json:"weight"`
	// Volume in cubic metres.
	Volume float64 `json:"volume"`
}

// Edge is a directed transport option between two locations.
type Edge struct {
	ID            string        `json:"id"`
	OriginID      string        `json:"origin_id"`
	DestinationID string        `json:"destination_id"`
	Mode          TransportMode `json:"transport_mode"`
	// Distance is the great-circle distance in km.
	Distance float64 `json:"distance"`
	// EstimatedTime is in hours.
	EstimatedTime float64 `json:"estimated_time"`
	Cost          float64 `json:"cost"`
	Reliability   float64 `json:"reliability"`
	// Speed in km/h.
	Speed    float64  `json:"speed"`
	Capacity Capacity `json:"capacity"`
	// EnvironmentalImpact is in kg CO2.
	EnvironmentalImpact float64  `json:"environmental_impact"`
	RiskFactors         []string `json:"risk_factors"`
	Efficiency          float64  `json:"efficiency"`
}

// EdgeID builds the composite edge id, e.g. NYC_SHG_SEA.
func EdgeID(origin, destination string, mode TransportMode) string {
	return origin + "_" + destination + "_" + strings.ToUpper(string(mode))
}

// ValidMode reports whether mode may connect two locations at distance km.
func ValidMode(origin, destination Location, mode TransportMode, distance float64) bool {
	switch mode {
	case ModeSea:
		return (origin.Type == LocationPort || destination.Type == LocationPort) && distance > 500
	case ModeAir:
		return distance > 200
	case ModeLand:
		return distance < 5000
	case ModeRail:
		return distance > 100 && distance < 3000
	default:
		return false
	}
}
