package domain

import (
	"strings"
	"time"
)

// Transaction represents a single transfer in the uploaded ledger.
// Records are immutable once ingested; the full set is the sole input
// to an analysis run.
type Transaction struct {
	SenderID   string    `json:"sender_id"`
	ReceiverID string    `json:"receiver_id"`
	Amount     float64   `json:"amount"`
	Timestamp  time.Time `json:"timestamp"`
}

// IsSelfTransfer returns true if sender and receiver are the same account.
// Self-transfers are not filtered during ingestion; consumers that care
// must check for them.
func (t *Transaction) IsSelfTransfer() bool {
	return t.SenderID == t.ReceiverID
}

// Whitelist is a set of account ids pre-cleared as legitimate
// aggregators, distributors or intermediaries. Supplied per analysis
// run, never persisted. Ids that do not appear in the dataset simply
// never match.
type Whitelist map[string]struct{}

// NewWhitelist builds a whitelist from a flat list of account ids.
func NewWhitelist(ids []string) Whitelist {
	w := make(Whitelist, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		w[id] = struct{}{}
	}
	return w
}

// ParseWhitelist parses a comma-separated whitelist string as submitted
// by the upload form. Blank entries are dropped.
func ParseWhitelist(raw string) Whitelist {
	if strings.TrimSpace(raw) == "" {
		return Whitelist{}
	}
	parts := strings.Split(raw, ",")
	ids := make([]string, 0, len(parts))
	for _, p := range parts {
		ids = append(ids, strings.TrimSpace(p))
	}
	return NewWhitelist(ids)
}

// Contains reports whether the account id is whitelisted.
func (w Whitelist) Contains(id string) bool {
	_, ok := w[id]
	return ok
}
