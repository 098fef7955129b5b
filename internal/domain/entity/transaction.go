package entity

import "time"

// TxStatusSuccess is the only status code treated as a confirmed transaction.
const TxStatusSuccess = 1

// Transaction is one on-chain transaction touching the queried wallet.
type Transaction struct {
	Chain       string       `json:"chain"`
	ChainID     uint64       `json:"chain_id"`
	Hash        string       `json:"hash"`
	BlockNumber uint64       `json:"block_number"`
	BlockTime   time.Time    `json:"block_time"`
	From        string       `json:"from"`
	To          string       `json:"to"`
	Value       string       `json:"value"` // wei, base-10 or 0x-prefixed hex
	GasPrice    string       `json:"gas_price"`
	GasUsed     uint64       `json:"gas_used"`
	Fee         string       `json:"fee"`
	Status      int          `json:"status"`
	Decoded     *DecodedCall `json:"decoded,omitempty"`
}

// DecodedCall is the optional ABI-decoded function call of a transaction.
type DecodedCall struct {
	Name   string         `json:"name"`
	Inputs []DecodedInput `json:"inputs,omitempty"`
}

// DecodedInput is a single decoded call parameter.
type DecodedInput struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Value string `json:"value"`
}

// TxLabel is the binary display label of a transaction.
type TxLabel string

const (
	TxConfirmed TxLabel = "confirmed"
	TxFailed    TxLabel = "failed"
)

// ClassifiedTransaction is a Transaction prepared for rendering.
type ClassifiedTransaction struct {
	Chain         string    `json:"chain"`
	ChainID       uint64    `json:"chain_id"`
	Hash          string    `json:"hash"`
	BlockNumber   uint64    `json:"block_number"`
	BlockTime     time.Time `json:"block_time"`
	From          string    `json:"from"`
	To            string    `json:"to"`
	Method        string    `json:"method,omitempty"`
	Label         TxLabel   `json:"status"`
	DisplayAmount float64   `json:"display_amount"`
	Fee           string    `json:"fee,omitempty"`
}
