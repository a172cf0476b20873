package domain

import "fmt"

// PatternType represents the typology a fraud ring was detected under
type PatternType string

const (
	PatternCycle          PatternType = "cycle"
	PatternSmurfingFanIn  PatternType = "smurfing_fan_in"
	PatternSmurfingFanOut PatternType = "smurfing_fan_out"
	PatternLayeredShell   PatternType = "layered_shell"
)

// CyclePatternTag returns the per-account tag for membership in a cycle
// of the given length, e.g. "cycle_len_3".
func CyclePatternTag(length int) string {
	return fmt.Sprintf("cycle_len_%d", length)
}

// FraudRing is one detected instance of a fraud pattern. Rings are
// never merged even when memberships overlap; overlap is reconciled at
// the per-account level instead.
type FraudRing struct {
	RingID         string      `json:"ring_id"`
	PatternType    PatternType `json:"pattern_type"`
	MemberAccounts []string    `json:"member_accounts"`
	RiskScore      float64     `json:"risk_score"`
}

// AccountMetadata carries the volume/count statistics computed from the
// full transaction table, independent of any pattern membership.
type AccountMetadata struct {
	TotalSent     float64 `json:"total_sent"`
	TotalReceived float64 `json:"total_received"`
	TxCount       int     `json:"tx_count"`
}

// SuspiciousAccount is the per-account view emitted for every account
// with a non-zero suspicion score.
//
// Known inconsistency, reproduced deliberately: RingID is the id of the
// last ring processed that contained the account, while SuspicionScore
// is the maximum across all of its rings. The two can disagree when an
// account belongs to multiple rings.
type SuspiciousAccount struct {
	AccountID        string          `json:"account_id"`
	SuspicionScore   float64         `json:"suspicion_score"`
	DetectedPatterns []string        `json:"detected_patterns"`
	RingID           string          `json:"ring_id"`
	Metadata         AccountMetadata `json:"metadata"`
}

// Summary describes one completed analysis run.
type Summary struct {
	TotalAccountsAnalyzed     int     `json:"total_accounts_analyzed"`
	SuspiciousAccountsFlagged int     `json:"suspicious_accounts_flagged"`
	FraudRingsDetected        int     `json:"fraud_rings_detected"`
	ProcessingTimeSeconds     float64 `json:"processing_time_seconds"`
}

// AnalysisResult is the final scored payload of one analysis run.
type AnalysisResult struct {
	SuspiciousAccounts []SuspiciousAccount `json:"suspicious_accounts"`
	FraudRings         []FraudRing         `json:"fraud_rings"`
	Summary            Summary             `json:"summary"`
}
