package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseWhitelist(t *testing.T) {
	w := ParseWhitelist(" BANK_A , BANK_B ,, BANK_A ")
	assert.Len(t, w, 2)
	assert.True(t, w.Contains("BANK_A"))
	assert.True(t, w.Contains("BANK_B"))
	assert.False(t, w.Contains("BANK_C"))
}

func TestParseWhitelistEmpty(t *testing.T) {
	assert.Empty(t, ParseWhitelist(""))
	assert.Empty(t, ParseWhitelist("   "))
}

func TestIsKind(t *testing.T) {
	err := NewEmptyDataset()
	assert.True(t, IsKind(err, ErrKindEmptyDataset))
	assert.False(t, IsKind(err, ErrKindMalformedRecord))
	assert.False(t, IsKind(assert.AnError, ErrKindEmptyDataset))
}

func TestIsSelfTransfer(t *testing.T) {
	tx := Transaction{SenderID: "A", ReceiverID: "A"}
	assert.True(t, tx.IsSelfTransfer())
	tx.ReceiverID = "B"
	assert.False(t, tx.IsSelfTransfer())
}
