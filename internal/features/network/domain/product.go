package domain

import "time"

// Category groups products by risk and typical value.
type Category struct {
	Name       string  `json:"name"`
	RiskFactor float64 `json:"risk_factor"`
	AvgValue   float64 `json:"avg_value"`
}

// Dimensions in centimetres.
type Dimensions struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// AuthenticityMarkers carries the anti-counterfeit markers of a product.
// A marker kind is present when its field is non-empty.
type AuthenticityMarkers struct {
	SerialNumber string `json:"serial_number,omitempty"`
	QRCode       string `json:"qr_code,omitempty"`
	HologramID   string `json:"hologram_id,omitempty"`
	RFIDTag      string `json:"rfid_tag,omitempty"`
	NFCTag       string `json:"nfc_tag,omitempty"`
	TamperSeal   string `json:"tamper_seal,omitempty"`
}

// Kinds returns the marker kinds present, in a stable order.
func (m AuthenticityMarkers) Kinds() []string {
	var kinds []string
	for _, f := range []struct {
		kind, value string
	}{
		{"serial_number", m.SerialNumber},
		{"qr_code", m.QRCode},
		{"hologram_id", m.HologramID},
		{"rfid_tag", m.RFIDTag},
		{"nfc_tag", m.NFCTag},
		{"tamper_seal", m.TamperSeal},
	} {
		if f.value != "" {
			kinds = append(kinds, f.kind)
		}
	}
	return kinds
}

// Empty reports whether no marker is present.
func (m AuthenticityMarkers) Empty() bool {
	return len(m.Kinds()) == 0
}

// Signatures of the parties that handled a product.
type Signatures struct {
	Manufacturer string `json:"manufacturer,omitempty"`
	Distributor  string `json:"distributor,omitempty"`
}

// SupplyChain is the path a product travelled: origin, intermediates, destination.
type SupplyChain struct {
	Path          []string `json:"path,omitempty"`
	Origin        string   `json:"origin,omitempty"`
	Destination   string   `json:"destination,omitempty"`
	Intermediates []string `json:"intermediates,omitempty"`
	// VerifiedIntermediates counts intermediates with a verified hand-off.
	// Nil means every intermediate is taken as verified.
	VerifiedIntermediates *int       `json:"verified_intermediates,omitempty"`
	Signatures            Signatures `json:"signatures,omitzero"`
	TotalDistance         float64    `json:"total_distance,omitempty"`
	EstimatedTime         float64    `json:"estimated_time,omitempty"`
}

// Product is a traded good.
type Product struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Category   string     `json:"category,omitempty"`
	SupplierID string     `json:"supplier_id,omitempty"`
	Value      float64    `json:"value,omitempty"`
	Weight     float64    `json:"weight,omitempty"`
	Dimensions Dimensions `json:"dimensions,omitzero"`
	// ManufacturingDate is in epoch seconds. 0 means unknown.
	ManufacturingDate int64 `json:"manufacturing_date,omitempty"`
	// ExpiryDate is in epoch seconds. 0 means the product does not expire.
	ExpiryDate          int64               `json:"expiry_date,omitempty"`
	BatchNumber         string              `json:"batch_number,omitempty"`
	QualityScore        float64             `json:"quality_score,omitempty"`
	AuthenticityMarkers AuthenticityMarkers `json:"authenticity_markers,omitzero"`
	SupplyChain         *SupplyChain        `json:"supply_chain,omitempty"`
	ProductHash         string              `json:"product_hash,omitempty"`
	CreatedAt           time.Time           `json:"created_at,omitzero"`
}
