package service

import "chainflow-engine/internal/features/network/domain"

// Locations is the fixed set of world locations.
var Locations = []domain.Location{
	{ID: "NYC", Name: "New York", Country: "USA", Latitude: 40.7128, Longitude: -74.0060, Type: domain.LocationPort},
	{ID: "LAX", Name: "Los Angeles", Country: "USA", Latitude: 34.0522, Longitude: -118.2437, Type: domain.LocationPort},
	{ID: "SHG", Name: "Shanghai", Country: "China", Latitude: 31.2304, Longitude: 121.4737, Type: domain.LocationManufacturing},
	{ID: "HKG", Name: "Hong Kong", Country: "China", Latitude: 22.3193, Longitude: 114.1694, Type: domain.LocationHub},
	{ID: "SIN", Name: "Singapore", Country: "Singapore", Latitude: 1.3521, Longitude: 103.8198, Type: domain.LocationHub},
	{ID: "DXB", Name: "Dubai", Country: "UAE", Latitude: 25.2048, Longitude: 55.2708, Type: domain.LocationHub},
	{ID: "FRA", Name: "Frankfurt", Country: "Germany", Latitude: 50.1109, Longitude: 8.6821, Type: domain.LocationHub},
	{ID: "LHR", Name: "London", Country: "UK", Latitude: 51.4700, Longitude: -0.4543, Type: domain.LocationHub},
	{ID: "MUM", Name: "Mumbai", Country: "India", Latitude: 19.0760, Longitude: 72.8777, Type: domain.LocationManufacturing},
	{ID: "SAO", Name: "São Paulo", Country: "Brazil", Latitude: -23.5505, Longitude: -46.6333, Type: domain.LocationManufacturing},
	{ID: "MEX", Name: "Mexico City", Country: "Mexico", Latitude: 19.4326, Longitude: -99.1332, Type: domain.LocationManufacturing},
	{ID: "BKK", Name: "Bangkok", Country: "Thailand", Latitude: 13.7563, Longitude: 100.5018, Type: domain.LocationManufacturing},
	{ID: "IST", Name: "Istanbul", Country: "Turkey", Latitude: 41.0082, Longitude: 28.9784, Type: domain.LocationHub},
	{ID: "JNB", Name: "Johannesburg", Country: "South Africa", Latitude: -26.2041, Longitude: 28.0473, Type: domain.LocationHub},
	{ID: "SYD", Name: "Sydney", Country: "Australia", Latitude: -33.8688, Longitude: 151.2093, Type: domain.LocationPort},
}

// Categories is the fixed product category table.
var Categories = []domain.Category{
	{Name: "electronics", RiskFactor: 0.6, AvgValue: 500},
	{Name: "pharmaceuticals", RiskFactor: 0.8, AvgValue: 200},
	{Name: "luxury", RiskFactor: 0.7, AvgValue: 1500},
	{Name: "automotive", RiskFactor: 0.4, AvgValue: 800},
	{Name: "food", RiskFactor: 0.5, AvgValue: 50},
	{Name: "textiles", RiskFactor: 0.3, AvgValue: 100},
	{Name: "machinery", RiskFactor: 0.4, AvgValue: 2000},
}

type modeProfile struct {
	speed       float64 // km/h
	costPerKm   float64
	reliability float64
	capacity    domain.Capacity
	emissions   float64 // kg CO2 per km
	risks       []string
}

var modeProfiles = map[domain.TransportMode]modeProfile{
	domain.ModeSea:  {25, 0.5, 0.85, domain.Capacity{Weight: 50000, Volume: 2000}, 0.01, []string{"weather", "piracy"}},
	domain.ModeAir:  {800, 3.0, 0.95, domain.Capacity{Weight: 100, Volume: 500}, 0.5, []string{"weather", "security"}},
	domain.ModeLand: {80, 1.0, 0.90, domain.Capacity{Weight: 25, Volume: 100}, 0.2, []string{"traffic", "border_delays"}},
	domain.ModeRail: {60, 0.8, 0.88, domain.Capacity{Weight: 1000, Volume: 800}, 0.05, []string{"infrastructure", "delays"}},
}

var geopoliticalRisks = []string{"political_instability", "customs_delays"}

var (
	supplierTypes   = []string{"manufacturer", "distributor", "wholesaler", "retailer"}
	supplierCountry = []string{"China", "USA", "Germany", "India", "Brazil", "Mexico", "Thailand", "UK"}
	certPool        = []string{"ISO9001", "ISO14001", "OHSAS18001", "FDA", "CE", "FCC", "HACCP", "GMP", "FSSC22000"}
	riskPool        = []string{"political_instability", "natural_disasters", "economic_volatility", "regulatory_changes", "cyber_threats"}

	namePrefixes = []string{"Global", "International", "Premier", "Elite", "Advanced", "Superior", "Prime"}
	nameMiddles  = []string{"Supply", "Trade", "Manufacturing", "Logistics", "Distribution", "Commerce"}
	nameSuffixes = []string{"Corp", "Industries", "Solutions", "Systems", "Enterprises", "Group", "Ltd"}

	productModels = []string{"Pro", "Elite", "Premium", "Standard", "Basic", "Advanced"}
)

var countryLocations = map[string][]string{
	"China":    {"SHG", "HKG"},
	"USA":      {"NYC", "LAX"},
	"Germany":  {"FRA"},
	"UK":       {"LHR"},
	"India":    {"MUM"},
	"Brazil":   {"SAO"},
	"Mexico":   {"MEX"},
	"Thailand": {"BKK"},
}

var productNames = map[string][]string{
	"electronics":     {"Smartphone", "Laptop", "Tablet", "Smartwatch", "Headphones", "Camera"},
	"pharmaceuticals": {"Antibiotic", "Painkiller", "Vitamin", "Supplement", "Vaccine", "Insulin"},
	"luxury":          {"Watch", "Handbag", "Jewelry", "Perfume", "Sunglasses", "Wallet"},
	"automotive":      {"Engine Part", "Brake Pad", "Tire", "Battery", "Filter", "Sensor"},
	"food":            {"Organic Coffee", "Premium Tea", "Spices", "Chocolate", "Wine", "Cheese"},
	"textiles":        {"Cotton Fabric", "Silk Scarf", "Wool Sweater", "Denim Jeans", "Leather Jacket"},
	"machinery":       {"Industrial Motor", "Pump", "Valve", "Bearing", "Gear", "Compressor"},
}
