package service

import (
	"sync"
	"time"

	"chainflow-engine/internal/features/trust/domain"
)

const (
	defaultHistoryLimit = 1000
	legitimateAbove     = 80
	fraudBelow          = 40
)

// snapshot is the feature vector of one confidently classified assessment.
type snapshot struct {
	hasSerialNumber bool
	hasBatchNumber  bool
	hasMfgDate      bool
	category        string
	nameLength      int
	tier            int
	supplierTrust   float64
	hasLocation     bool
	certifications  int
	specialties     int
	verified        bool
	scores          domain.DetailedScores
	trustScore      float64
	at              time.Time
}

// ring keeps the most recent limit snapshots.
type ring struct {
	buf  []snapshot
	next int
}

func (r *ring) push(s snapshot, limit int) {
	if len(r.buf) < limit {
		r.buf = append(r.buf, s)
		return
	}
	r.buf[r.next] = s
	r.next = (r.next + 1) % limit
}

func (r *ring) len() int {
	return len(r.buf)
}

// history holds legitimate (score > 80) and fraud (score < 40) cases.
// It is telemetry only and never feeds back into scoring.
type history struct {
	mu          sync.Mutex
	limit       int
	legitimate  ring
	fraud       ring
	lastUpdated time.Time
}

func newHistory(limit int) *history {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return &history{limit: limit}
}

func (h *history) record(s snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()

	switch {
	case s.trustScore > legitimateAbove:
		h.legitimate.push(s, h.limit)
	case s.trustScore < fraudBelow:
		h.fraud.push(s, h.limit)
	default:
		return
	}
	h.lastUpdated = s.at
}

func (h *history) stats() domain.HistoryStats {
	h.mu.Lock()
	defer h.mu.Unlock()
	return domain.HistoryStats{
		Legitimate:  h.legitimate.len(),
		Fraud:       h.fraud.len(),
		LastUpdated: h.lastUpdated,
	}
}
