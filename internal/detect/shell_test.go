package detect

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarasmohod/hackathon-rift/internal/config"
	"github.com/sarasmohod/hackathon-rift/internal/domain"
	"github.com/sarasmohod/hackathon-rift/internal/pkg/logger"
)

func newShellDetector() *ShellDetector {
	return NewShellDetector(&config.Default().Detection, logger.NewNop())
}

func TestShellDetectorFindsChain(t *testing.T) {
	// A -> B -> C -> D with B and C at degree 2.
	g := buildGraph(t, chainTxs(100, "A", "B", "C", "D"))

	chains, err := newShellDetector().Detect(context.Background(), g, domain.Whitelist{})
	require.NoError(t, err)
	require.Len(t, chains, 1)
	assert.Equal(t, []string{"A", "B", "C", "D"}, chains[0])
}

func TestShellDetectorWhitelistedIntermediarySuppresses(t *testing.T) {
	g := buildGraph(t, chainTxs(100, "A", "B", "C", "D"))

	chains, err := newShellDetector().Detect(context.Background(), g, domain.NewWhitelist([]string{"B"}))
	require.NoError(t, err)
	assert.Empty(t, chains, "no chain is emitted through a whitelisted intermediary")
}

func TestShellDetectorWhitelistedEndpointSuppresses(t *testing.T) {
	g := buildGraph(t, chainTxs(100, "A", "B", "C", "D"))

	d := newShellDetector()

	chains, err := d.Detect(context.Background(), g, domain.NewWhitelist([]string{"A"}))
	require.NoError(t, err)
	assert.Empty(t, chains)

	chains, err = d.Detect(context.Background(), g, domain.NewWhitelist([]string{"D"}))
	require.NoError(t, err)
	assert.Empty(t, chains)
}

func TestShellDetectorHighActivityIntermediaryDisqualifies(t *testing.T) {
	// B's degree is pushed to 4, outside the low-activity band.
	txs := chainTxs(100, "A", "B", "C", "D")
	txs = append(txs,
		tx("B", "E1", 10, 10*time.Hour),
		tx("B", "E2", 10, 11*time.Hour),
	)
	g := buildGraph(t, txs)

	chains, err := newShellDetector().Detect(context.Background(), g, domain.Whitelist{})
	require.NoError(t, err)
	assert.Empty(t, chains)
}

func TestShellDetectorLowActivitySourceSkipped(t *testing.T) {
	// Every node on a closed chain is low-activity, so no node
	// qualifies as a source.
	g := buildGraph(t, chainTxs(100, "A", "B", "C", "D", "A"))

	chains, err := newShellDetector().Detect(context.Background(), g, domain.Whitelist{})
	require.NoError(t, err)
	assert.Empty(t, chains)
}

func TestShellDetectorEmitsOverlappingChains(t *testing.T) {
	// A 6-node chain yields qualifying prefixes ending at each low
	// activity node from the 4th onward; overlap is not deduplicated.
	g := buildGraph(t, chainTxs(100, "A", "B", "C", "D", "E", "F"))

	chains, err := newShellDetector().Detect(context.Background(), g, domain.Whitelist{})
	require.NoError(t, err)
	require.Len(t, chains, 3)
	assert.Contains(t, chains, []string{"A", "B", "C", "D"})
	assert.Contains(t, chains, []string{"A", "B", "C", "D", "E"})
	assert.Contains(t, chains, []string{"A", "B", "C", "D", "E", "F"})
}

func TestShellDetectorHopCap(t *testing.T) {
	// 8-node chain: only paths of at most 5 edges are enumerated.
	g := buildGraph(t, chainTxs(100, "A", "B", "C", "D", "E", "F", "G", "H"))

	chains, err := newShellDetector().Detect(context.Background(), g, domain.Whitelist{})
	require.NoError(t, err)
	for _, chain := range chains {
		assert.LessOrEqual(t, len(chain), 6, "chain %v exceeds the 5-hop cap", chain)
	}
	assert.NotContains(t, chains, []string{"A", "B", "C", "D", "E", "F", "G"})
}

func TestShellDetectorNoPathIsNotAnError(t *testing.T) {
	// Two disconnected components.
	txs := chainTxs(100, "A", "B", "C", "D")
	txs = append(txs, tx("X", "Y", 100, 20*time.Hour))
	g := buildGraph(t, txs)

	chains, err := newShellDetector().Detect(context.Background(), g, domain.Whitelist{})
	require.NoError(t, err)
	assert.Len(t, chains, 1)
}
