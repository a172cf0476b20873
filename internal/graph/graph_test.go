package graph

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarasmohod/hackathon-rift/internal/domain"
)

var base = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

func tx(sender, receiver string, amount float64, offset time.Duration) domain.Transaction {
	return domain.Transaction{
		SenderID:   sender,
		ReceiverID: receiver,
		Amount:     amount,
		Timestamp:  base.Add(offset),
	}
}

func TestBuildPreservesParallelEdges(t *testing.T) {
	txs := []domain.Transaction{
		tx("A", "B", 100, 0),
		tx("A", "B", 200, time.Hour),
		tx("A", "B", 300, 2*time.Hour),
		tx("B", "C", 50, 3*time.Hour),
	}

	dg, _, err := Build(txs)
	require.NoError(t, err)

	assert.Equal(t, 3, dg.NodeCount())
	assert.Equal(t, 4, dg.EdgeCount())
	assert.Len(t, dg.OutEdges("A"), 3, "parallel edges must stay distinct")
	assert.Equal(t, []string{"B"}, dg.Successors("A"), "successors collapse parallel edges")
	assert.Equal(t, []string{"A", "B", "C"}, dg.Nodes(), "nodes keep first-seen order")
}

func TestDegreeCountsParallelEdges(t *testing.T) {
	dg, _, err := Build([]domain.Transaction{
		tx("A", "B", 100, 0),
		tx("A", "B", 100, time.Hour),
		tx("C", "A", 100, 2*time.Hour),
	})
	require.NoError(t, err)

	assert.Equal(t, 3, dg.Degree("A"))
	assert.Equal(t, 2, dg.Degree("B"))
	assert.Equal(t, 1, dg.Degree("C"))
}

func TestBuildAcceptsSelfTransfersAndDuplicates(t *testing.T) {
	txs := []domain.Transaction{
		tx("A", "A", 100, 0),
		tx("A", "B", 50, time.Hour),
		tx("A", "B", 50, time.Hour),
	}

	dg, _, err := Build(txs)
	require.NoError(t, err)
	assert.Equal(t, 3, dg.EdgeCount())
	assert.True(t, dg.HasNode("A"))
}

func TestUndirectedGraphAggregatesBothDirections(t *testing.T) {
	_, ug, err := Build([]domain.Transaction{
		tx("A", "B", 100, 0),
		tx("B", "A", 40, time.Hour),
		tx("A", "B", 10, 2*time.Hour),
		tx("C", "A", 5, 3*time.Hour),
	})
	require.NoError(t, err)

	assert.Equal(t, 2, ug.EdgeCount(), "one edge per unordered pair")

	w, ok := ug.Weight("A", "B")
	require.True(t, ok)
	assert.InDelta(t, 150, w, 1e-9)

	// Order-insensitive lookup
	w, ok = ug.Weight("B", "A")
	require.True(t, ok)
	assert.InDelta(t, 150, w, 1e-9)

	_, ok = ug.Weight("B", "C")
	assert.False(t, ok)
}

func TestBuildRejectsMalformedRows(t *testing.T) {
	cases := []struct {
		name string
		txs  []domain.Transaction
	}{
		{"negative amount", []domain.Transaction{tx("A", "B", -5, 0)}},
		{"zero amount", []domain.Transaction{tx("A", "B", 0, 0)}},
		{"empty sender", []domain.Transaction{tx("", "B", 10, 0)}},
		{"missing timestamp", []domain.Transaction{{SenderID: "A", ReceiverID: "B", Amount: 10}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dg, ug, err := Build(tc.txs)
			require.Error(t, err)
			assert.True(t, domain.IsKind(err, domain.ErrKindMalformedRecord))
			assert.Nil(t, dg, "no partial graph on failure")
			assert.Nil(t, ug)
		})
	}
}

func TestTopologyProjection(t *testing.T) {
	dg, _, err := Build([]domain.Transaction{
		tx("A", "B", 100, 0),
		tx("A", "B", 200, time.Hour),
		tx("B", "C", 50, 2*time.Hour),
	})
	require.NoError(t, err)

	topo := dg.Topology()
	assert.Equal(t, []TopologyNode{{ID: "A"}, {ID: "B"}, {ID: "C"}}, topo.Nodes)
	assert.Equal(t, []TopologyLink{
		{Source: "A", Target: "B"},
		{Source: "A", Target: "B"},
		{Source: "B", Target: "C"},
	}, topo.Links, "every transfer appears as a link")
}
