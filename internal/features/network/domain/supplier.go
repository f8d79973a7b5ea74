package domain

import "time"

// Supplier tiers.
const (
	TierPremium  = 1
	TierStandard = 2
	TierBasic    = 3
)

// Supplier is a company shipping products through the network.
// Zero values mean "not provided" to the trust scorer.
type Supplier struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	Type                string    `json:"type,omitempty"`
	Country             string    `json:"country,omitempty"`
	Location            string    `json:"location,omitempty"`
	Status              string    `json:"status,omitempty"`
	TrustScore          float64   `json:"trust_score"`
	YearsInBusiness     int       `json:"years_in_business,omitempty"`
	Certifications      []string  `json:"certifications,omitempty"`
	Specialties         []string  `json:"specialties,omitempty"`
	Tier                int       `json:"tier"`
	Verified            bool      `json:"verified"`
	ComplianceScore     float64   `json:"compliance_score,omitempty"`
	FinancialStability  float64   `json:"financial_stability,omitempty"`
	DeliveryPerformance float64   `json:"delivery_performance,omitempty"`
	QualityRating       float64   `json:"quality_rating,omitempty"`
	RiskFactors         []string  `json:"risk_factors,omitempty"`
	CreatedAt           time.Time `json:"created_at,omitzero"`
}

// TierFor derives the supplier tier from its trust score, experience and certificate count.
func TierFor(trustScore float64, years, certs int) int {
	score := trustScore + float64(years)*2 + float64(certs)*5
	switch {
	case score >= 120:
		return TierPremium
	case score >= 80:
		return TierStandard
	default:
		return TierBasic
	}
}
