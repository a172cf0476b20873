package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/sarasmohod/hackathon-rift/internal/domain"
)

// Column names expected in the uploaded ledger header.
const (
	colSender    = "sender_id"
	colReceiver  = "receiver_id"
	colAmount    = "amount"
	colTimestamp = "timestamp"
)

// Timestamp layouts accepted in uploads, tried in order.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseCSV reads an uploaded transaction ledger. The header row is
// required and columns are addressed by name, so column order does not
// matter. Any row that fails to coerce aborts the whole parse with a
// MalformedRecord error; no partial table is returned.
func ParseCSV(r io.Reader) ([]domain.Transaction, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, domain.NewMalformedRecord(0, fmt.Sprintf("cannot read header: %v", err))
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(strings.ToLower(name))] = i
	}
	for _, required := range []string{colSender, colReceiver, colAmount, colTimestamp} {
		if _, ok := cols[required]; !ok {
			return nil, domain.NewMalformedRecord(0, fmt.Sprintf("missing column %q", required))
		}
	}

	var txs []domain.Transaction
	row := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			return nil, domain.NewMalformedRecord(row, err.Error())
		}

		amount, err := strconv.ParseFloat(strings.TrimSpace(record[cols[colAmount]]), 64)
		if err != nil {
			return nil, domain.NewMalformedRecord(row, fmt.Sprintf("amount %q is not a number", record[cols[colAmount]]))
		}

		ts, err := parseTimestamp(strings.TrimSpace(record[cols[colTimestamp]]))
		if err != nil {
			return nil, domain.NewMalformedRecord(row, err.Error())
		}

		txs = append(txs, domain.Transaction{
			SenderID:   record[cols[colSender]],
			ReceiverID: record[cols[colReceiver]],
			Amount:     amount,
			Timestamp:  ts,
		})
	}

	return txs, nil
}

func parseTimestamp(raw string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("timestamp %q does not match any supported layout", raw)
}
