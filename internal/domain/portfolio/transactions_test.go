package portfolio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"strategy_dashboard/internal/domain/entity"
)

func TestClassifyTransaction_Status(t *testing.T) {
	tests := []struct {
		status int
		want   entity.TxLabel
	}{
		{1, entity.TxConfirmed},
		{0, entity.TxFailed},
		{2, entity.TxFailed},
		{-1, entity.TxFailed},
	}
	for _, tt := range tests {
		got := ClassifyTransaction(entity.Transaction{Status: tt.status})
		assert.Equal(t, tt.want, got.Label, "status %d", tt.status)
	}
}

func TestClassifyTransaction_DisplayAmountAssumes18Decimals(t *testing.T) {
	tx := entity.Transaction{
		Chain:   "polygon",
		Hash:    "0xabc",
		Value:   "2500000000000000000",
		Status:  1,
		Decoded: &entity.DecodedCall{Name: "transfer"},
	}
	got := ClassifyTransaction(tx)
	assert.InDelta(t, 2.5, got.DisplayAmount, 1e-12)
	assert.Equal(t, "transfer", got.Method)
	assert.Equal(t, "0xabc", got.Hash)

	assert.Equal(t, 0.0, ClassifyTransaction(entity.Transaction{Value: "garbage"}).DisplayAmount)
}

func TestClassifyTransactions_KeepsOrder(t *testing.T) {
	got := ClassifyTransactions([]entity.Transaction{{Hash: "a", Status: 1}, {Hash: "b"}})
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Hash)
	assert.Equal(t, entity.TxFailed, got[1].Label)
	assert.Empty(t, ClassifyTransactions(nil))
}
