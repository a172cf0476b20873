package detect

import (
	"context"
	"sort"
	"time"

	"github.com/sarasmohod/hackathon-rift/internal/config"
	"github.com/sarasmohod/hackathon-rift/internal/domain"
	"github.com/sarasmohod/hackathon-rift/internal/pkg/logger"
)

// SmurfRing is one detected fan-in or fan-out structuring ring. Members
// hold the center plus the full set of distinct counterparties across
// the center's entire history, not just the triggering window.
type SmurfRing struct {
	Center  string
	Members []string
	Pattern domain.PatternType
}

// SmurfingDetector flags accounts that aggregate funds from, or
// disperse funds to, at least FanThreshold distinct counterparties
// within any sliding window. The window is closed on both ends. An
// account is flagged at most once per direction no matter how many
// windows trigger. Whitelisted accounts are excluded only as centers;
// they may still appear as ordinary counterparties inside another ring.
type SmurfingDetector struct {
	window       time.Duration
	fanThreshold int
	log          *logger.Logger
}

// NewSmurfingDetector creates a smurfing detector from detection config.
func NewSmurfingDetector(cfg *config.DetectionConfig, log *logger.Logger) *SmurfingDetector {
	return &SmurfingDetector{
		window:       cfg.SmurfingWindow,
		fanThreshold: cfg.SmurfingFanThreshold,
		log:          log.Named("smurfing_detector"),
	}
}

// Detect analyzes both directions independently and returns the fan-in
// rings followed by the fan-out rings, each in first-seen center order.
func (d *SmurfingDetector) Detect(ctx context.Context, txs []domain.Transaction, whitelist domain.Whitelist) (fanIn, fanOut []SmurfRing, err error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	fanIn = d.detectDirection(txs, whitelist, domain.PatternSmurfingFanIn)

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	fanOut = d.detectDirection(txs, whitelist, domain.PatternSmurfingFanOut)
	return fanIn, fanOut, nil
}

// detectDirection groups transactions by the center account of the
// given direction (receiver for fan-in, sender for fan-out) and runs
// the sliding-window distinct-counterparty count per group.
func (d *SmurfingDetector) detectDirection(txs []domain.Transaction, whitelist domain.Whitelist, pattern domain.PatternType) []SmurfRing {
	centerOf := func(tx domain.Transaction) string { return tx.ReceiverID }
	counterpartyOf := func(tx domain.Transaction) string { return tx.SenderID }
	if pattern == domain.PatternSmurfingFanOut {
		centerOf = func(tx domain.Transaction) string { return tx.SenderID }
		counterpartyOf = func(tx domain.Transaction) string { return tx.ReceiverID }
	}

	groups := make(map[string][]domain.Transaction)
	var centers []string
	for _, tx := range txs {
		center := centerOf(tx)
		if _, seen := groups[center]; !seen {
			centers = append(centers, center)
		}
		groups[center] = append(groups[center], tx)
	}

	var rings []SmurfRing
	for _, center := range centers {
		if whitelist.Contains(center) {
			continue
		}

		group := make([]domain.Transaction, len(groups[center]))
		copy(group, groups[center])
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Timestamp.Before(group[j].Timestamp)
		})

		if !d.windowTriggers(group, counterpartyOf) {
			continue
		}

		members := distinctInOrder(group, counterpartyOf)
		if pattern == domain.PatternSmurfingFanOut {
			members = append([]string{center}, members...)
		} else {
			members = append(members, center)
		}

		rings = append(rings, SmurfRing{
			Center:  center,
			Members: members,
			Pattern: pattern,
		})
	}

	return rings
}

// windowTriggers slides over the time-sorted group using each
// transaction's timestamp as the window right edge and reports whether
// any window holds at least fanThreshold distinct counterparties.
func (d *SmurfingDetector) windowTriggers(group []domain.Transaction, counterpartyOf func(domain.Transaction) string) bool {
	counts := make(map[string]int)
	left := 0

	for right := range group {
		cutoff := group[right].Timestamp.Add(-d.window)
		for group[left].Timestamp.Before(cutoff) {
			cp := counterpartyOf(group[left])
			counts[cp]--
			if counts[cp] == 0 {
				delete(counts, cp)
			}
			left++
		}
		counts[counterpartyOf(group[right])]++
		if len(counts) >= d.fanThreshold {
			return true
		}
	}
	return false
}

func distinctInOrder(group []domain.Transaction, counterpartyOf func(domain.Transaction) string) []string {
	seen := make(map[string]struct{}, len(group))
	var out []string
	for _, tx := range group {
		cp := counterpartyOf(tx)
		if _, ok := seen[cp]; ok {
			continue
		}
		seen[cp] = struct{}{}
		out = append(out, cp)
	}
	return out
}
