package analysis

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/sarasmohod/hackathon-rift/internal/config"
	"github.com/sarasmohod/hackathon-rift/internal/detect"
	"github.com/sarasmohod/hackathon-rift/internal/domain"
)

// accountFlag accumulates per-account state during aggregation. Created
// lazily on first reference, never deleted within a run, discarded with
// the ledger at the end of the run.
type accountFlag struct {
	score         float64
	patterns      []string
	patternSet    map[string]struct{}
	ringID        string
	totalSent     float64
	totalReceived float64
	txCount       int
}

func (f *accountFlag) addPattern(tag string) {
	if _, ok := f.patternSet[tag]; ok {
		return
	}
	f.patternSet[tag] = struct{}{}
	f.patterns = append(f.patterns, tag)
}

// ringLedger turns raw detector outputs into the final scored payload.
// One ledger exists per analysis run and owns all mutable aggregation
// state: the ring-id counter, the ring list and the account flag map.
// Processing order is fixed (cycles, fan-in, fan-out, shells) because
// ring-id assignment and the last-ring-wins semantics of an account's
// ring id depend on it.
type ringLedger struct {
	scoring *config.ScoringConfig

	counter    int
	rings      []domain.FraudRing
	flags      map[string]*accountFlag
	flagOrder  []string
	meanAmount float64
}

// newRingLedger runs the pre-pass over the full transaction table:
// account flags are initialized for every sender and receiver, volume
// and count statistics accumulate, and the dataset-wide mean amount is
// computed for cycle scoring. An empty table fails fast rather than
// propagating a division by zero.
func newRingLedger(txs []domain.Transaction, scoring *config.ScoringConfig) (*ringLedger, error) {
	if len(txs) == 0 {
		return nil, domain.NewEmptyDataset()
	}

	l := &ringLedger{
		scoring: scoring,
		flags:   make(map[string]*accountFlag),
	}

	var total float64
	for _, tx := range txs {
		sender := l.flag(tx.SenderID)
		receiver := l.flag(tx.ReceiverID)
		sender.totalSent += tx.Amount
		receiver.totalReceived += tx.Amount
		sender.txCount++
		total += tx.Amount
	}
	l.meanAmount = total / float64(len(txs))

	return l, nil
}

func (l *ringLedger) flag(accountID string) *accountFlag {
	if f, ok := l.flags[accountID]; ok {
		return f
	}
	f := &accountFlag{patternSet: make(map[string]struct{})}
	l.flags[accountID] = f
	l.flagOrder = append(l.flagOrder, accountID)
	return f
}

func (l *ringLedger) nextRingID() string {
	l.counter++
	return fmt.Sprintf("RING_%03d", l.counter)
}

// addRing creates one fraud ring and applies its score to every member:
// the pattern tag is unioned in, the ring id overwrites unconditionally
// and the account score is raised to the max of its rings, never summed.
func (l *ringLedger) addRing(pattern domain.PatternType, members []string, score float64, tag string) {
	ringID := l.nextRingID()

	memberCopy := make([]string, len(members))
	copy(memberCopy, members)

	l.rings = append(l.rings, domain.FraudRing{
		RingID:         ringID,
		PatternType:    pattern,
		MemberAccounts: memberCopy,
		RiskScore:      round1(score),
	})

	for _, id := range members {
		f := l.flag(id)
		f.addPattern(tag)
		f.ringID = ringID
		f.score = math.Max(f.score, score)
	}
}

// recordCycles processes cycles in detector-emitted order. The score
// scales with the total volume sent by cycle members relative to ten
// times the dataset mean, capped below 100.
func (l *ringLedger) recordCycles(cycles [][]string, txs []domain.Transaction) {
	for _, cycle := range cycles {
		members := make(map[string]struct{}, len(cycle))
		for _, id := range cycle {
			members[id] = struct{}{}
		}

		var cycleVolume float64
		for _, tx := range txs {
			if _, ok := members[tx.SenderID]; ok {
				cycleVolume += tx.Amount
			}
		}

		score := l.scoring.CycleBaseScore + cycleVolume/(l.meanAmount*10)
		if score > l.scoring.CycleScoreCap {
			score = l.scoring.CycleScoreCap
		}

		l.addRing(domain.PatternCycle, cycle, score, domain.CyclePatternTag(len(cycle)))
	}
}

// recordSmurfRings processes smurf rings in detector-emitted order.
// Larger rings carry the higher flat score.
func (l *ringLedger) recordSmurfRings(rings []detect.SmurfRing) {
	for _, ring := range rings {
		score := l.scoring.SmurfingBaseScore
		if len(ring.Members) > l.scoring.SmurfingLargeSize {
			score = l.scoring.SmurfingLargeScore
		}
		l.addRing(ring.Pattern, ring.Members, score, string(ring.Pattern))
	}
}

// recordShellChains processes shell chains in detector-emitted order
// with a fixed score.
func (l *ringLedger) recordShellChains(chains [][]string) {
	for _, chain := range chains {
		l.addRing(domain.PatternLayeredShell, chain, l.scoring.ShellScore, string(domain.PatternLayeredShell))
	}
}

// result emits the final payload: rings in creation order, flagged
// accounts sorted descending by score (stable, preserving first-seen
// order among ties), and the run summary.
func (l *ringLedger) result(totalAccounts int, elapsed time.Duration) *domain.AnalysisResult {
	accounts := make([]domain.SuspiciousAccount, 0)
	for _, id := range l.flagOrder {
		f := l.flags[id]
		if f.score <= 0 {
			continue
		}
		patterns := make([]string, len(f.patterns))
		copy(patterns, f.patterns)
		accounts = append(accounts, domain.SuspiciousAccount{
			AccountID:        id,
			SuspicionScore:   round1(f.score),
			DetectedPatterns: patterns,
			RingID:           f.ringID,
			Metadata: domain.AccountMetadata{
				TotalSent:     round2(f.totalSent),
				TotalReceived: round2(f.totalReceived),
				TxCount:       f.txCount,
			},
		})
	}

	sort.SliceStable(accounts, func(i, j int) bool {
		return accounts[i].SuspicionScore > accounts[j].SuspicionScore
	})

	rings := make([]domain.FraudRing, len(l.rings))
	copy(rings, l.rings)

	return &domain.AnalysisResult{
		SuspiciousAccounts: accounts,
		FraudRings:         rings,
		Summary: domain.Summary{
			TotalAccountsAnalyzed:     totalAccounts,
			SuspiciousAccountsFlagged: len(accounts),
			FraudRingsDetected:        len(rings),
			ProcessingTimeSeconds:     round2(elapsed.Seconds()),
		},
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
