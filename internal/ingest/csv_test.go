package ingest

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarasmohod/hackathon-rift/internal/domain"
)

func TestParseCSV(t *testing.T) {
	input := `sender_id,receiver_id,amount,timestamp
ACC001,ACC002,1500.50,2024-03-01T10:00:00Z
ACC002,ACC003,99.99,2024-03-01 11:30:00
`
	txs, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, txs, 2)

	assert.Equal(t, "ACC001", txs[0].SenderID)
	assert.Equal(t, "ACC002", txs[0].ReceiverID)
	assert.InDelta(t, 1500.50, txs[0].Amount, 1e-9)
	assert.Equal(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), txs[0].Timestamp)

	assert.Equal(t, time.Date(2024, 3, 1, 11, 30, 0, 0, time.UTC), txs[1].Timestamp)
}

func TestParseCSVColumnOrderIndependent(t *testing.T) {
	input := `timestamp,amount,receiver_id,sender_id
2024-03-01T10:00:00Z,25,B,A
`
	txs, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "A", txs[0].SenderID)
	assert.Equal(t, "B", txs[0].ReceiverID)
}

func TestParseCSVMissingColumn(t *testing.T) {
	input := `sender_id,receiver_id,amount
A,B,10
`
	_, err := ParseCSV(strings.NewReader(input))
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.ErrKindMalformedRecord))
}

func TestParseCSVMalformedAmount(t *testing.T) {
	input := `sender_id,receiver_id,amount,timestamp
A,B,ten dollars,2024-03-01T10:00:00Z
`
	_, err := ParseCSV(strings.NewReader(input))
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.ErrKindMalformedRecord))
	assert.Contains(t, err.Error(), "row 1")
}

func TestParseCSVMalformedTimestamp(t *testing.T) {
	input := `sender_id,receiver_id,amount,timestamp
A,B,10,2024-03-01T10:00:00Z
C,D,20,yesterday
`
	_, err := ParseCSV(strings.NewReader(input))
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.ErrKindMalformedRecord))
	assert.Contains(t, err.Error(), "row 2")
}

func TestParseCSVEmptyInput(t *testing.T) {
	txs, err := ParseCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, txs, "an empty upload is not a parse error; the engine rejects the empty table")
}

func TestParseCSVHeaderOnly(t *testing.T) {
	txs, err := ParseCSV(strings.NewReader("sender_id,receiver_id,amount,timestamp\n"))
	require.NoError(t, err)
	assert.Empty(t, txs)
}
