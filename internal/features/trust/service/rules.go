package service

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

//go:embed rules.yaml
var defaultRulesYAML []byte

// ErrInvalidRules is returned when a rule document cannot be used.
var ErrInvalidRules = errors.New("invalid trust rules")

// Rules are the data tables driving fraud detection.
type Rules struct {
	BatchPatterns            []string           `yaml:"batch_patterns"`
	SupplierStatusRisk       map[string]float64 `yaml:"supplier_status_risk"`
	LocationRisk             map[string]float64 `yaml:"location_risk"`
	RecognizedCertifications []string           `yaml:"recognized_certifications"`
	FraudWeights             map[string]float64 `yaml:"fraud_weights"`
	FlagThreshold            float64            `yaml:"flag_threshold"`
	HighStatusRisk           float64            `yaml:"high_status_risk"`
	HighLocationRisk         float64            `yaml:"high_location_risk"`
	AnomalyVariance          float64            `yaml:"anomaly_variance"`

	batch []*regexp.Regexp
	certs map[string]bool
}

// LoadRules decodes and compiles a YAML rule document.
func LoadRules(r io.Reader) (*Rules, error) {
	var rules Rules
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&rules); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRules, err)
	}
	if err := rules.compile(); err != nil {
		return nil, err
	}
	return &rules, nil
}

// DefaultRules returns the embedded rule tables.
func DefaultRules() *Rules {
	rules, err := LoadRules(bytes.NewReader(defaultRulesYAML))
	if err != nil {
		panic(fmt.Sprintf("embedded trust rules: %v", err))
	}
	return rules
}

func (r *Rules) compile() error {
	if len(r.BatchPatterns) == 0 {
		return fmt.Errorf("%w: no batch patterns", ErrInvalidRules)
	}
	r.batch = make([]*regexp.Regexp, 0, len(r.BatchPatterns))
	for _, p := range r.BatchPatterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return fmt.Errorf("%w: batch pattern %q: %v", ErrInvalidRules, p, err)
		}
		r.batch = append(r.batch, re)
	}

	r.certs = make(map[string]bool, len(r.RecognizedCertifications))
	for _, c := range r.RecognizedCertifications {
		r.certs[certKey(c)] = true
	}
	return nil
}

// SuspiciousBatch reports whether a batch number is empty or matches a known counterfeit pattern.
func (r *Rules) SuspiciousBatch(batch string) bool {
	if batch == "" {
		return true
	}
	upper := strings.ToUpper(batch)
	for _, re := range r.batch {
		if re.MatchString(upper) {
			return true
		}
	}
	return false
}

// Recognized reports whether a certification is on the allow-list.
func (r *Rules) Recognized(cert string) bool {
	return r.certs[certKey(cert)]
}

// certKey folds "ISO 9001", "iso-9001" and "ISO9001" onto the same key.
func certKey(s string) string {
	var b strings.Builder
	for _, c := range s {
		if unicode.IsLetter(c) || unicode.IsDigit(c) {
			b.WriteRune(unicode.ToUpper(c))
		}
	}
	return b.String()
}
