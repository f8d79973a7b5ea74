package domain

import "math"

// EarthRadiusKm is the mean Earth radius used for great-circle distances.
const EarthRadiusKm = 6371.0

// LocationType classifies a logistics location.
type LocationType string

const (
	LocationPort          LocationType = "port"
	LocationManufacturing LocationType = "manufacturing"
	LocationHub           LocationType = "hub"
)

// Location is a named point of the logistics network.
type Location struct {
	// ID is the short location code, e.g. NYC.
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Country   string       `json:"country"`
	Latitude  float64      `json:"lat"`
	Longitude float64      `json:"lng"`
	Type      LocationType `json:"type"`
}

// Haversine returns the great-circle distance in kilometres between two coordinates.
func Haversine(lat1, lng1, lat2, lng2 float64) float64 {
	rad := math.Pi / 180
	dLat := (lat2 - lat1) * rad
	dLng := (lng2 - lng1) * rad

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*rad)*math.Cos(lat2*rad)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return EarthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// DistanceTo returns the great-circle distance to other in kilometres.
func (l Location) DistanceTo(other Location) float64 {
	return Haversine(l.Latitude, l.Longitude, other.Latitude, other.Longitude)
}
