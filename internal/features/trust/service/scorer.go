package service

import (
	"fmt"
	"math"
	"strings"
	"time"

	"chainflow-engine/internal/core/logger"
	"chainflow-engine/internal/core/metrics"
	netdomain "chainflow-engine/internal/features/network/domain"
	"chainflow-engine/internal/features/trust/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"
)

// Weights of the sub-scores in the final trust score. They sum to 1.
var Weights = struct {
	SupplierHistory      float64
	CertificationValid   float64
	SupplyChainIntegrity float64
	ProductAuthenticity  float64
	TemporalConsistency  float64
	BehavioralPatterns   float64
}{
	SupplierHistory:      0.28,
	CertificationValid:   0.22,
	SupplyChainIntegrity: 0.20,
	ProductAuthenticity:  0.15,
	TemporalConsistency:  0.10,
	BehavioralPatterns:   0.05,
}

const (
	defaultSupplierTrust = 50
	defaultCategoryRisk  = 0.5
	unknownLocation      = "Unknown Location"
	failClosedScore      = 30
	day                  = 24 * time.Hour
)

// ScorerConfig wires a Scorer.
type ScorerConfig struct {
	// Rules defaults to the embedded tables.
	Rules *Rules
	// Now defaults to time.Now.
	Now     func() time.Time
	Metrics *metrics.Registry
	// HistoryLimit bounds each history class. Defaults to 1000.
	HistoryLimit int
}

// Scorer computes trust assessments. It is safe for concurrent use.
type Scorer struct {
	rules   *Rules
	now     func() time.Time
	metrics *metrics.Registry
	history *history
	log     *zap.Logger
}

// NewScorer creates a Scorer.
func NewScorer(cfg ScorerConfig) *Scorer {
	if cfg.Rules == nil {
		cfg.Rules = DefaultRules()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Scorer{
		rules:   cfg.Rules,
		now:     cfg.Now,
		metrics: cfg.Metrics,
		history: newHistory(cfg.HistoryLimit),
		log:     logger.Named("trust"),
	}
}

// input is the normalized view of the scored triple.
type input struct {
	product      netdomain.Product
	supplier     netdomain.Supplier
	rawSupplier  netdomain.Supplier
	categoryRisk float64
	chain        *netdomain.SupplyChain
}

// Assess scores a product from a supplier. Nil arguments are treated as empty
// records. It never panics: internal failures yield a degraded HIGH-risk assessment.
func (s *Scorer) Assess(product *netdomain.Product, supplier *netdomain.Supplier, category *netdomain.Category, supplyChain *netdomain.SupplyChain) (a domain.Assessment) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("Trust assessment failed", zap.Any("panic", r))
			a = s.degraded(fmt.Sprint(r))
		}
	}()

	in := s.normalize(product, supplier, category, supplyChain)
	now := s.now()

	scores := domain.DetailedScores{
		SupplierTrust:         s.supplierTrust(in.supplier),
		ProductAuthenticity:   s.productAuthenticity(in.product),
		SupplyChainIntegrity:  supplyChainIntegrity(in.chain),
		TemporalConsistency:   temporalConsistency(in.product.ManufacturingDate, now),
		CertificationValidity: s.certificationValidity(in.supplier),
		BehavioralPatterns:    behavioralPatterns(in.product, in.supplier),
	}

	flags, fraudRisk := s.detectFraud(in, now)

	score := 100 * (scores.SupplierTrust*Weights.SupplierHistory +
		scores.CertificationValidity*Weights.CertificationValid +
		scores.SupplyChainIntegrity*Weights.SupplyChainIntegrity +
		scores.ProductAuthenticity*Weights.ProductAuthenticity +
		scores.TemporalConsistency*Weights.TemporalConsistency +
		scores.BehavioralPatterns*Weights.BehavioralPatterns)
	score = round2(clamp(score, 0, 100))

	variance := stat.PopVariance(scores.Values(), nil)

	a = domain.Assessment{
		TrustScore:      score,
		Confidence:      round2(clamp(50+completeness(product, supplier)*30+(1-variance)*20, 0, 100)),
		AnomalyScore:    s.anomalyScore(in, variance, now),
		FraudRiskScore:  round2(fraudRisk),
		FraudFlags:      flags,
		DetailedScores:  roundScores(scores),
		AssessedAt:      now,
		Recommendations: nil,
	}
	a.RiskLevel = RiskLevelFor(score, flags)
	a.Recommendations = recommendations(a)

	s.history.record(s.snapshot(in, a))
	s.record(a)
	return a
}

// Report builds an anti-counterfeit report for a product.
func (s *Scorer) Report(product *netdomain.Product, supplier *netdomain.Supplier, category *netdomain.Category) domain.Report {
	a := s.Assess(product, supplier, category, nil)

	r := domain.Report{
		ReportID:          uuid.NewString(),
		AuthenticityScore: a.DetailedScores.ProductAuthenticity,
		AuthenticityLevel: domain.AuthenticityLevelFor(a.DetailedScores.ProductAuthenticity),
		Assessment:        a,
		GeneratedAt:       a.AssessedAt,
	}
	if a.Degraded {
		r.AuthenticityLevel = domain.UnableToVerify
	}
	if product != nil {
		r.ProductID = product.ID
		r.Category = product.Category
	}
	if supplier != nil {
		r.SupplierID = supplier.ID
		r.SupplierName = supplier.Name
	}
	if category != nil && category.Name != "" {
		r.Category = category.Name
	}
	return r
}

// HistoryStats reports the size of the assessment history.
func (s *Scorer) HistoryStats() domain.HistoryStats {
	return s.history.stats()
}

// RiskLevelFor buckets a trust score and its flags.
func RiskLevelFor(score float64, flags []domain.FraudFlag) domain.RiskLevel {
	var high, medium int
	for _, f := range flags {
		switch f.Severity {
		case domain.SeverityHigh:
			high++
		case domain.SeverityMedium:
			medium++
		}
	}
	switch {
	case score < 30 || high >= 2:
		return domain.RiskHigh
	case score < 60 || high >= 1 || medium >= 2:
		return domain.RiskMedium
	default:
		return domain.RiskLow
	}
}

func (s *Scorer) normalize(product *netdomain.Product, supplier *netdomain.Supplier, category *netdomain.Category, chain *netdomain.SupplyChain) input {
	var in input
	if product != nil {
		in.product = *product
	}
	if supplier != nil {
		in.supplier = *supplier
	}
	in.rawSupplier = in.supplier

	if in.supplier.Tier == 0 {
		in.supplier.Tier = netdomain.TierBasic
	}
	if in.supplier.TrustScore == 0 {
		in.supplier.TrustScore = defaultSupplierTrust
	}
	if in.supplier.Location == "" {
		in.supplier.Location = unknownLocation
	}

	in.categoryRisk = defaultCategoryRisk
	if category != nil && category.RiskFactor != 0 {
		in.categoryRisk = category.RiskFactor
	}

	in.chain = chain
	if in.chain == nil {
		in.chain = in.product.SupplyChain
	}
	return in
}

func (s *Scorer) supplierTrust(sup netdomain.Supplier) float64 {
	score := sup.TrustScore / 100

	switch sup.Tier {
	case netdomain.TierPremium:
		score += 0.3
	case netdomain.TierStandard:
		score += 0.1
	default:
		score -= 0.1
	}
	if sup.Verified {
		score += 0.2
	}
	score -= s.rules.LocationRisk[sup.Location] * 0.3

	return clamp(score, 0, 1)
}

func (s *Scorer) productAuthenticity(p netdomain.Product) float64 {
	score := 0.5

	m := p.AuthenticityMarkers
	if m.HologramID != "" {
		score += 0.2
	}
	if m.QRCode != "" {
		score += 0.15
	}
	if m.NFCTag != "" {
		score += 0.15
	}
	if m.TamperSeal != "" {
		score += 0.1
	}
	if m.RFIDTag != "" {
		score += 0.1
	}
	if validProductHash(p.ProductHash) {
		score += 0.2
	}
	if s.rules.SuspiciousBatch(p.BatchNumber) {
		score -= 0.4
	}
	return clamp(score, 0, 1)
}

// validProductHash accepts a 0x-prefixed 32-byte hex digest.
func validProductHash(h string) bool {
	if len(h) != 66 || !strings.HasPrefix(h, "0x") {
		return false
	}
	for _, c := range h[2:] {
		if !strings.ContainsRune("0123456789abcdefABCDEF", c) {
			return false
		}
	}
	return true
}

func supplyChainIntegrity(sc *netdomain.SupplyChain) float64 {
	if sc == nil {
		return 0.3
	}
	score := 0.5
	if sc.Origin != "" {
		score += 0.2
	}
	if sc.Destination != "" {
		score += 0.1
	}
	if n := len(sc.Intermediates); n > 0 {
		verified := n
		if sc.VerifiedIntermediates != nil {
			verified = min(max(*sc.VerifiedIntermediates, 0), n)
		}
		score += float64(verified) / float64(n) * 0.2
	}
	if sc.Signatures.Manufacturer != "" {
		score += 0.1
	}
	if sc.Signatures.Distributor != "" {
		score += 0.1
	}
	return clamp(score, 0, 1)
}

func temporalConsistency(mfg int64, now time.Time) float64 {
	if mfg == 0 {
		return 0.5
	}
	made := time.Unix(mfg, 0)
	if made.After(now) {
		return 0
	}
	age := now.Sub(made)
	switch {
	case age <= 30*day:
		return 1.0
	case age <= 365*day:
		return 0.9
	case age <= 2*365*day:
		return 0.8
	case age <= 5*365*day:
		return 0.6
	default:
		return 0.3
	}
}

func (s *Scorer) certificationValidity(sup netdomain.Supplier) float64 {
	valid := 0
	for _, c := range sup.Certifications {
		if s.rules.Recognized(c) {
			valid++
		}
	}
	return math.Min(1, float64(valid)/3)
}

func behavioralPatterns(p netdomain.Product, sup netdomain.Supplier) float64 {
	score := 0.5
	if p.Name != "" && sup.Name != "" && namingConsistent(p.Name, sup.Specialties) {
		score += 0.3
	}
	if p.ManufacturingDate != 0 {
		score += productionTiming(time.Unix(p.ManufacturingDate, 0).UTC()) * 0.2
	}
	return clamp(score, 0, 1)
}

func namingConsistent(name string, specialties []string) bool {
	lower := strings.ToLower(name)
	for _, sp := range specialties {
		if sp != "" && strings.Contains(lower, strings.ToLower(sp)) {
			return true
		}
	}
	return false
}

// productionTiming penalizes weekend and night production.
func productionTiming(t time.Time) float64 {
	if wd := t.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return -0.3
	}
	if h := t.Hour(); h < 6 || h > 20 {
		return -0.2
	}
	return 0.1
}

func temporalAnomaly(mfg int64, now time.Time) bool {
	if mfg == 0 {
		return false
	}
	made := time.Unix(mfg, 0)
	return made.After(now) || made.Before(now.AddDate(-5, 0, 0))
}

func (s *Scorer) detectFraud(in input, now time.Time) ([]domain.FraudFlag, float64) {
	flags := []domain.FraudFlag{}
	var risk float64
	w := s.rules.FraudWeights

	if s.rules.SuspiciousBatch(in.product.BatchNumber) {
		flags = append(flags, domain.FraudFlag{
			Type: domain.FlagSuspiciousBatch, Severity: domain.SeverityHigh,
			Message: "Batch number matches known counterfeit patterns",
		})
		risk += w[domain.FlagSuspiciousBatch]
	}

	if in.product.AuthenticityMarkers.Empty() {
		flags = append(flags, domain.FraudFlag{
			Type: domain.FlagMissingAuthMarkers, Severity: domain.SeverityMedium,
			Message: "Product lacks authenticity verification markers",
		})
		risk += w[domain.FlagMissingAuthMarkers]
	}

	if !in.supplier.Verified || in.supplier.TrustScore < 50 {
		flags = append(flags, domain.FraudFlag{
			Type: domain.FlagUnverifiedSupplier, Severity: domain.SeverityHigh,
			Message: "Product from unverified or low-trust supplier",
		})
		risk += w[domain.FlagUnverifiedSupplier]
	}

	if in.chain == nil || in.chain.Origin == "" {
		flags = append(flags, domain.FraudFlag{
			Type: domain.FlagIncompleteSupplyChain, Severity: domain.SeverityMedium,
			Message: "Supply chain information is incomplete",
		})
		risk += w[domain.FlagIncompleteSupplyChain]
	}

	if status := in.rawSupplier.Status; status != "" {
		if r := s.rules.SupplierStatusRisk[status]; r > s.rules.FlagThreshold {
			sev := domain.SeverityMedium
			if r >= s.rules.HighStatusRisk {
				sev = domain.SeverityHigh
			}
			flags = append(flags, domain.FraudFlag{
				Type: domain.FlagSupplierStatus, Severity: sev,
				Message: "High-risk supplier status: " + status,
			})
			risk += r * w[domain.FlagSupplierStatus]
		}
	}

	if r := s.rules.LocationRisk[in.supplier.Location]; r > s.rules.FlagThreshold {
		sev := domain.SeverityMedium
		if r >= s.rules.HighLocationRisk {
			sev = domain.SeverityHigh
		}
		flags = append(flags, domain.FraudFlag{
			Type: domain.FlagHighRiskLocation, Severity: sev,
			Message: "High-risk location: " + in.supplier.Location,
		})
		risk += r * w[domain.FlagHighRiskLocation]
	}

	if temporalAnomaly(in.product.ManufacturingDate, now) {
		flags = append(flags, domain.FraudFlag{
			Type: domain.FlagTemporalAnomaly, Severity: domain.SeverityMedium,
			Message: "Manufacturing date is in the future or more than five years old",
		})
		risk += w[domain.FlagTemporalAnomaly]
	}

	return flags, math.Min(1, risk)
}

func (s *Scorer) anomalyScore(in input, variance float64, now time.Time) float64 {
	var score float64
	if variance > s.rules.AnomalyVariance {
		score += 0.3
	}
	if in.product.BatchNumber != "" && s.rules.SuspiciousBatch(in.product.BatchNumber) {
		score += 0.4
	}
	if temporalAnomaly(in.product.ManufacturingDate, now) {
		score += 0.3
	}
	return round2(math.Min(1, score))
}

// completeness is the fraction of identity fields present on the raw product and supplier.
func completeness(p *netdomain.Product, s *netdomain.Supplier) float64 {
	var fields []bool
	if p != nil {
		fields = append(fields, p.ID != "", p.Name != "", p.BatchNumber != "", p.ManufacturingDate != 0)
	} else {
		fields = append(fields, false, false, false, false)
	}
	if s != nil {
		fields = append(fields, s.ID != "", s.Name != "", s.Tier != 0, s.TrustScore != 0, s.Location != "")
	} else {
		fields = append(fields, false, false, false, false, false)
	}
	return ratio(fields...)
}

func ratio(present ...bool) float64 {
	n := 0
	for _, ok := range present {
		if ok {
			n++
		}
	}
	return float64(n) / float64(len(present))
}

func recommendations(a domain.Assessment) []string {
	var out []string
	if a.TrustScore < 50 {
		out = append(out, "Consider additional verification before accepting this product")
	}
	if a.HasFlag(domain.FlagUnverifiedSupplier) {
		out = append(out, "Verify supplier credentials and certifications")
	}
	if a.HasFlag(domain.FlagMissingAuthMarkers) {
		out = append(out, "Request additional authenticity documentation")
	}
	if a.HasFlag(domain.FlagSuspiciousBatch) {
		out = append(out, "Investigate batch number authenticity with manufacturer")
	}
	if len(out) == 0 {
		out = append(out, "Product appears authentic and trustworthy")
	}
	return out
}

func (s *Scorer) snapshot(in input, a domain.Assessment) snapshot {
	return snapshot{
		hasSerialNumber: in.product.AuthenticityMarkers.SerialNumber != "",
		hasBatchNumber:  in.product.BatchNumber != "",
		hasMfgDate:      in.product.ManufacturingDate != 0,
		category:        in.product.Category,
		nameLength:      len(in.product.Name),
		tier:            in.supplier.Tier,
		supplierTrust:   in.supplier.TrustScore,
		hasLocation:     in.rawSupplier.Location != "",
		certifications:  len(in.supplier.Certifications),
		specialties:     len(in.supplier.Specialties),
		verified:        in.supplier.Verified,
		scores:          a.DetailedScores,
		trustScore:      a.TrustScore,
		at:              a.AssessedAt,
	}
}

func (s *Scorer) record(a domain.Assessment) {
	if s.metrics == nil {
		return
	}
	flags := make(map[string]string, len(a.FraudFlags))
	for _, f := range a.FraudFlags {
		flags[f.Type] = string(f.Severity)
	}
	s.metrics.RecordTrustAssessment(string(a.RiskLevel), a.TrustScore, flags)
}

func (s *Scorer) degraded(msg string) domain.Assessment {
	a := domain.Assessment{
		TrustScore:     failClosedScore,
		RiskLevel:      domain.RiskHigh,
		Confidence:     0,
		AnomalyScore:   1,
		FraudRiskScore: 1,
		FraudFlags: []domain.FraudFlag{{
			Type:     domain.FlagAssessmentFailed,
			Severity: domain.SeverityHigh,
			Message:  "Trust assessment failed: " + msg,
		}},
		DetailedScores: domain.DetailedScores{
			SupplierTrust: 0.5, ProductAuthenticity: 0.5, SupplyChainIntegrity: 0.5,
			TemporalConsistency: 0.5, CertificationValidity: 0.5, BehavioralPatterns: 0.5,
		},
		Recommendations: []string{"Data validation required", "Manual review recommended"},
		AssessedAt:      time.Now(),
		Degraded:        true,
		Error:           msg,
	}
	s.record(a)
	return a
}

func roundScores(d domain.DetailedScores) domain.DetailedScores {
	return domain.DetailedScores{
		SupplierTrust:         round2(d.SupplierTrust),
		ProductAuthenticity:   round2(d.ProductAuthenticity),
		SupplyChainIntegrity:  round2(d.SupplyChainIntegrity),
		TemporalConsistency:   round2(d.TemporalConsistency),
		CertificationValidity: round2(d.CertificationValidity),
		BehavioralPatterns:    round2(d.BehavioralPatterns),
	}
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
