package service

import (
	"encoding/hex"
	"fmt"
	"math"
	"strings"
	"time"

	"chainflow-engine/internal/core/logger"
	"chainflow-engine/internal/core/random"
	"chainflow-engine/internal/features/network/domain"

	"go.uber.org/zap"
	"golang.org/x/crypto/blake2b"
)

const (
	defaultSupplierCount = 50
	defaultProductCount  = 200
	day                  = 24 * time.Hour
	alnum                = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// GeneratorConfig tunes the synthetic world.
type GeneratorConfig struct {
	Suppliers int
	Products  int
	// Seed is recorded in the network summary.
	Seed uint64
	// Now defaults to time.Now.
	Now func() time.Time
}

// Generator builds the synthetic logistics network.
type Generator struct {
	rng random.Source
	cfg GeneratorConfig
	log *zap.Logger
}

// NewGenerator creates a Generator drawing every random value from rng.
func NewGenerator(rng random.Source, cfg GeneratorConfig) *Generator {
	if cfg.Suppliers <= 0 {
		cfg.Suppliers = defaultSupplierCount
	}
	if cfg.Products <= 0 {
		cfg.Products = defaultProductCount
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Generator{rng: rng, cfg: cfg, log: logger.Named("generator")}
}

// Generate builds the whole network once.
func (g *Generator) Generate() *domain.Network {
	now := g.cfg.Now()

	locations := make([]domain.Location, len(Locations))
	copy(locations, Locations)
	categories := make([]domain.Category, len(Categories))
	copy(categories, Categories)

	suppliers := g.suppliers(now)
	products := g.products(now, suppliers, locations)
	edges := g.edges(locations)

	n := domain.NewNetwork(locations, suppliers, products, categories, edges)
	n.Summary.GeneratedAt = now
	n.Summary.Seed = g.cfg.Seed

	g.log.Info("Synthetic network generated",
		zap.Int("locations", len(locations)),
		zap.Int("suppliers", len(suppliers)),
		zap.Int("products", len(products)),
		zap.Int("routes", len(edges)),
	)
	return n
}

func (g *Generator) suppliers(now time.Time) []domain.Supplier {
	out := make([]domain.Supplier, 0, g.cfg.Suppliers)
	for i := 0; i < g.cfg.Suppliers; i++ {
		country := random.Pick(g.rng, supplierCountry)
		typ := random.Pick(g.rng, supplierTypes)
		years := g.rng.IntN(25) + 1
		certs := g.distinct(certPool, g.rng.IntN(5))

		score := 50 + float64(years)*1.5 + float64(len(certs))*5 + random.Uniform(g.rng, -10, 10)
		score = math.Max(10, math.Min(100, score))
		verified := g.rng.Float64() > 0.2

		out = append(out, domain.Supplier{
			ID:                  fmt.Sprintf("SUP_%03d", i),
			Name:                g.companyName() + " " + strings.ToUpper(typ[:1]) + typ[1:],
			Type:                typ,
			Country:             country,
			Location:            g.locationIn(country),
			Status:              supplierStatus(verified, years),
			TrustScore:          math.Round(score),
			YearsInBusiness:     years,
			Certifications:      certs,
			Specialties:         g.specialties(),
			Tier:                domain.TierFor(score, years, len(certs)),
			Verified:            verified,
			ComplianceScore:     math.Round(random.Uniform(g.rng, 70, 100)),
			FinancialStability:  math.Round(random.Uniform(g.rng, 60, 100)),
			DeliveryPerformance: math.Round(random.Uniform(g.rng, 70, 100)),
			QualityRating:       math.Round(random.Uniform(g.rng, 75, 100)),
			RiskFactors:         g.distinct(riskPool, g.rng.IntN(3)),
			CreatedAt:           now.Add(-time.Duration(g.rng.Float64() * float64(365*day))),
		})
	}
	return out
}

func supplierStatus(verified bool, years int) string {
	switch {
	case verified:
		return "Verified"
	case years < 3:
		return "New Supplier"
	default:
		return "Pending Verification"
	}
}

func (g *Generator) products(now time.Time, suppliers []domain.Supplier, locations []domain.Location) []domain.Product {
	out := make([]domain.Product, 0, g.cfg.Products)
	for i := 0; i < g.cfg.Products; i++ {
		category := random.Pick(g.rng, Categories)
		supplier := random.Pick(g.rng, suppliers)

		name := random.Pick(g.rng, productNames[category.Name]) + " " + random.Pick(g.rng, productModels)
		batch := "BATCH_" + g.code(9)
		mfg := now.Add(-time.Duration(g.rng.Float64() * float64(180*day))).Unix()

		var expiry int64
		if category.Name == "food" || category.Name == "pharmaceuticals" {
			expiry = now.Add(time.Duration(g.rng.Float64() * float64(365*day))).Unix()
		}

		p := domain.Product{
			ID:         fmt.Sprintf("PROD_%04d", i),
			Name:       name,
			Category:   category.Name,
			SupplierID: supplier.ID,
			Value:      math.Round(category.AvgValue * random.Uniform(g.rng, 0.5, 1.5)),
			Weight:     math.Round(random.Uniform(g.rng, 1, 51)),
			Dimensions: domain.Dimensions{
				Length: math.Round(random.Uniform(g.rng, 10, 110)),
				Width:  math.Round(random.Uniform(g.rng, 10, 110)),
				Height: math.Round(random.Uniform(g.rng, 10, 110)),
			},
			ManufacturingDate:   mfg,
			ExpiryDate:          expiry,
			BatchNumber:         batch,
			QualityScore:        math.Round(random.Uniform(g.rng, 70, 100)),
			AuthenticityMarkers: g.markers(),
			SupplyChain:         g.supplyChain(supplier, locations),
			CreatedAt:           now.Add(-time.Duration(g.rng.Float64() * float64(90*day))),
		}
		p.ProductHash = ProductHash(p)
		out = append(out, p)
	}
	return out
}

// ProductHash returns the 0x-prefixed blake2b-256 digest of a product's identity fields.
func ProductHash(p domain.Product) string {
	sum := blake2b.Sum256([]byte(fmt.Sprintf("%s%s%d", p.Name, p.BatchNumber, p.ManufacturingDate)))
	return "0x" + hex.EncodeToString(sum[:])
}

func (g *Generator) markers() domain.AuthenticityMarkers {
	m := domain.AuthenticityMarkers{
		SerialNumber: g.code(12),
		QRCode:       "QR_" + g.code(16),
		HologramID:   "HOL_" + g.code(8),
	}
	if random.Chance(g.rng, 0.5) {
		m.RFIDTag = "RFID_" + g.code(10)
	}
	return m
}

func (g *Generator) supplyChain(supplier domain.Supplier, locations []domain.Location) *domain.SupplyChain {
	length := g.rng.IntN(4) + 2
	path := []string{supplier.Location}
	seen := map[string]bool{supplier.Location: true}
	for len(path) < length {
		next := random.Pick(g.rng, locations).ID
		if seen[next] {
			continue
		}
		seen[next] = true
		path = append(path, next)
	}

	byID := make(map[string]domain.Location, len(locations))
	for _, l := range locations {
		byID[l.ID] = l
	}
	var dist float64
	for i := 0; i+1 < len(path); i++ {
		dist += byID[path[i]].DistanceTo(byID[path[i+1]])
	}

	sc := &domain.SupplyChain{
		Path:          path,
		Origin:        path[0],
		Destination:   path[len(path)-1],
		Intermediates: append([]string(nil), path[1:len(path)-1]...),
		Signatures:    domain.Signatures{Manufacturer: "SIG_" + g.code(16)},
		TotalDistance: math.Round(dist),
		EstimatedTime: math.Round(dist/50*10) / 10,
	}
	if random.Chance(g.rng, 0.7) {
		sc.Signatures.Distributor = "SIG_" + g.code(16)
	}
	return sc
}

func (g *Generator) edges(locations []domain.Location) []domain.Edge {
	var out []domain.Edge
	for i, origin := range locations {
		for j, destination := range locations {
			if i == j {
				continue
			}
			distance := origin.DistanceTo(destination)
			for _, mode := range domain.TransportModes {
				if domain.ValidMode(origin, destination, mode, distance) {
					out = append(out, g.edge(origin, destination, mode, distance))
				}
			}
		}
	}
	return out
}

func (g *Generator) edge(origin, destination domain.Location, mode domain.TransportMode, distance float64) domain.Edge {
	p := modeProfiles[mode]

	speed := p.speed * random.Uniform(g.rng, 0.8, 1.2)
	cost := p.costPerKm * distance * random.Uniform(g.rng, 0.8, 1.2)
	reliability := p.reliability * random.Uniform(g.rng, 0.9, 1.0)

	risks := append([]string(nil), p.risks...)
	if random.Chance(g.rng, 0.3) {
		risks = append(risks, geopoliticalRisks[:g.rng.IntN(2)+1]...)
	}

	efficiency := 0.4*reliability + 0.3*(1-cost/distance/5) + 0.3*(speed/1000)

	return domain.Edge{
		ID:                  domain.EdgeID(origin.ID, destination.ID, mode),
		OriginID:            origin.ID,
		DestinationID:       destination.ID,
		Mode:                mode,
		Distance:            distance,
		EstimatedTime:       distance / speed,
		Cost:                cost,
		Reliability:         reliability,
		Speed:               speed,
		Capacity:            p.capacity,
		EnvironmentalImpact: p.emissions * distance,
		RiskFactors:         risks,
		Efficiency:          math.Max(0, math.Min(1, efficiency)),
	}
}

func (g *Generator) companyName() string {
	return random.Pick(g.rng, namePrefixes) + " " + random.Pick(g.rng, nameMiddles) + " " + random.Pick(g.rng, nameSuffixes)
}

func (g *Generator) locationIn(country string) string {
	ids, ok := countryLocations[country]
	if !ok {
		return "SIN"
	}
	return random.Pick(g.rng, ids)
}

// specialties picks one or two product lines the supplier is known for.
func (g *Generator) specialties() []string {
	var lines []string
	for _, c := range Categories {
		lines = append(lines, productNames[c.Name]...)
	}
	return g.distinct(lines, g.rng.IntN(2)+1)
}

// distinct draws n times from pool and keeps the first occurrence of each value.
func (g *Generator) distinct(pool []string, n int) []string {
	out := []string{}
	seen := map[string]bool{}
	for i := 0; i < n; i++ {
		v := random.Pick(g.rng, pool)
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

func (g *Generator) code(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = alnum[g.rng.IntN(len(alnum))]
	}
	return string(b)
}
