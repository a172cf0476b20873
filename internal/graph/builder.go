package graph

import (
	"fmt"
	"math"

	"github.com/sarasmohod/hackathon-rift/internal/domain"
)

// Build constructs the directed multigraph and the aggregated
// undirected graph from the transaction table. Every row becomes
// exactly one multigraph edge; duplicate rows, self-loops and
// out-of-order timestamps are accepted as-is. A row with a malformed
// amount or timestamp fails the whole build; no partial graph is
// returned.
func Build(txs []domain.Transaction) (*DirectedGraph, *UndirectedGraph, error) {
	dg := NewDirectedGraph()
	ug := NewUndirectedGraph()

	for i, tx := range txs {
		if err := validateRow(i+1, tx); err != nil {
			return nil, nil, err
		}

		dg.AddEdge(Edge{
			Sender:    tx.SenderID,
			Receiver:  tx.ReceiverID,
			Amount:    tx.Amount,
			Timestamp: tx.Timestamp,
		})
		ug.AddWeight(tx.SenderID, tx.ReceiverID, tx.Amount)
	}

	return dg, ug, nil
}

func validateRow(row int, tx domain.Transaction) error {
	if tx.SenderID == "" {
		return domain.NewMalformedRecord(row, "sender_id is empty")
	}
	if tx.ReceiverID == "" {
		return domain.NewMalformedRecord(row, "receiver_id is empty")
	}
	if math.IsNaN(tx.Amount) || math.IsInf(tx.Amount, 0) {
		return domain.NewMalformedRecord(row, "amount is not a finite number")
	}
	if tx.Amount <= 0 {
		return domain.NewMalformedRecord(row, fmt.Sprintf("amount %v is not positive", tx.Amount))
	}
	if tx.Timestamp.IsZero() {
		return domain.NewMalformedRecord(row, "timestamp is missing")
	}
	return nil
}
