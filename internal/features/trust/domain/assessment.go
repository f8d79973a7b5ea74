package domain

import "time"

// RiskLevel buckets a trust assessment.
type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// Severity of a fraud flag.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Fraud flag types.
const (
	FlagSuspiciousBatch       = "suspicious_batch"
	FlagMissingAuthMarkers    = "missing_auth_markers"
	FlagUnverifiedSupplier    = "unverified_supplier"
	FlagIncompleteSupplyChain = "incomplete_supply_chain"
	FlagSupplierStatus        = "supplier_status"
	FlagHighRiskLocation      = "high_risk_location"
	FlagTemporalAnomaly       = "temporal_anomaly"
	FlagAssessmentFailed      = "assessment_failed"
)

// FraudFlag is a structured finding raised when an input matches a suspicious pattern.
type FraudFlag struct {
	Type     string   `json:"type"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// DetailedScores holds the sub-scores, each in [0,1].
type DetailedScores struct {
	SupplierTrust         float64 `json:"supplierTrust"`
	ProductAuthenticity   float64 `json:"productAuthenticity"`
	SupplyChainIntegrity  float64 `json:"supplyChainIntegrity"`
	TemporalConsistency   float64 `json:"temporalConsistency"`
	CertificationValidity float64 `json:"certificationValidity"`
	BehavioralPatterns    float64 `json:"behavioralPatterns"`
}

// Values returns the sub-scores in declaration order.
func (d DetailedScores) Values() []float64 {
	return []float64{
		d.SupplierTrust,
		d.ProductAuthenticity,
		d.SupplyChainIntegrity,
		d.TemporalConsistency,
		d.CertificationValidity,
		d.BehavioralPatterns,
	}
}

// Assessment is the result of scoring a (product, supplier, category) triple.
type Assessment struct {
	// TrustScore is in [0,100].
	TrustScore float64   `json:"trustScore"`
	RiskLevel  RiskLevel `json:"riskLevel"`
	// Confidence is in [0,100].
	Confidence float64 `json:"confidence"`
	// AnomalyScore is in [0,1].
	AnomalyScore float64 `json:"anomalyScore"`
	// FraudRiskScore is the capped sum of flag contributions, in [0,1].
	FraudRiskScore  float64        `json:"fraudRiskScore"`
	FraudFlags      []FraudFlag    `json:"fraudFlags"`
	DetailedScores  DetailedScores `json:"detailedScores"`
	Recommendations []string       `json:"recommendations"`
	AssessedAt      time.Time      `json:"timestamp"`
	// Degraded marks a fail-closed default produced after an internal error.
	Degraded bool   `json:"degraded,omitempty"`
	Error    string `json:"error,omitempty"`
}

// HasFlag reports whether a flag of the given type was raised.
func (a Assessment) HasFlag(typ string) bool {
	for _, f := range a.FraudFlags {
		if f.Type == typ {
			return true
		}
	}
	return false
}

// CountSeverity counts flags of the given severity.
func (a Assessment) CountSeverity(s Severity) int {
	n := 0
	for _, f := range a.FraudFlags {
		if f.Severity == s {
			n++
		}
	}
	return n
}

// AuthenticityLevel is the verdict of an anti-counterfeit report.
type AuthenticityLevel string

const (
	Authentic         AuthenticityLevel = "Authentic"
	LikelyAuthentic   AuthenticityLevel = "Likely Authentic"
	Questionable      AuthenticityLevel = "Questionable"
	LikelyCounterfeit AuthenticityLevel = "Likely Counterfeit"
	UnableToVerify    AuthenticityLevel = "Unable to Verify"
)

// AuthenticityLevelFor maps a product authenticity sub-score to a verdict.
func AuthenticityLevelFor(score float64) AuthenticityLevel {
	switch {
	case score > 0.8:
		return Authentic
	case score > 0.6:
		return LikelyAuthentic
	case score > 0.4:
		return Questionable
	default:
		return LikelyCounterfeit
	}
}

// Report is an anti-counterfeit report for one product.
type Report struct {
	ReportID          string            `json:"reportId"`
	ProductID         string            `json:"productId"`
	SupplierID        string            `json:"supplierId"`
	SupplierName      string            `json:"supplierName"`
	Category          string            `json:"category"`
	AuthenticityScore float64           `json:"authenticityScore"`
	AuthenticityLevel AuthenticityLevel `json:"authenticityLevel"`
	Assessment        Assessment        `json:"assessment"`
	GeneratedAt       time.Time         `json:"timestamp"`
}

// HistoryStats summarises the bounded assessment history.
type HistoryStats struct {
	Legitimate  int       `json:"legitimate"`
	Fraud       int       `json:"fraud"`
	LastUpdated time.Time `json:"lastUpdated"`
}
