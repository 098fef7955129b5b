package portfolio

import (
	"strategy_dashboard/internal/domain/entity"
	"strategy_dashboard/internal/pkg/utils"
)

// ClassifyTransaction labels a transaction confirmed (status 1) or failed (anything else)
// and converts its value to a display amount.
//
// The display amount always divides by 10^18, whatever the chain's native decimals are.
func ClassifyTransaction(tx entity.Transaction) entity.ClassifiedTransaction {
	label := entity.TxFailed
	if tx.Status == entity.TxStatusSuccess {
		label = entity.TxConfirmed
	}
	out := entity.ClassifiedTransaction{
		Chain:         tx.Chain,
		ChainID:       tx.ChainID,
		Hash:          tx.Hash,
		BlockNumber:   tx.BlockNumber,
		BlockTime:     tx.BlockTime,
		From:          tx.From,
		To:            tx.To,
		Label:         label,
		DisplayAmount: utils.WeiToNative(tx.Value),
		Fee:           tx.Fee,
	}
	if tx.Decoded != nil {
		out.Method = tx.Decoded.Name
	}
	return out
}

// ClassifyTransactions classifies txs in order.
func ClassifyTransactions(txs []entity.Transaction) []entity.ClassifiedTransaction {
	out := make([]entity.ClassifiedTransaction, len(txs))
	for i, tx := range txs {
		out[i] = ClassifyTransaction(tx)
	}
	return out
}
