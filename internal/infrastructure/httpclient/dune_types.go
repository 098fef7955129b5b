package httpclient

import (
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common/math"

	"strategy_dashboard/internal/domain/entity"
)

type duneBalancesResponse struct {
	WalletAddress string           `json:"wallet_address"`
	Balances      []entity.Balance `json:"balances"`
	NextOffset    string           `json:"next_offset"`
}

type duneTransactionsResponse struct {
	WalletAddress string            `json:"wallet_address"`
	Transactions  []duneTransaction `json:"transactions"`
	NextOffset    string            `json:"next_offset"`
}

type duneTransaction struct {
	Chain             string              `json:"chain"`
	ChainID           uint64              `json:"chain_id"`
	Hash              string              `json:"hash"`
	BlockNumber       uint64              `json:"block_number"`
	BlockTime         string              `json:"block_time"`
	From              string              `json:"from"`
	To                string              `json:"to"`
	Value             string              `json:"value"`
	GasPrice          string              `json:"gas_price"`
	EffectiveGasPrice string              `json:"effective_gas_price"`
	GasUsed           string              `json:"gas_used"`
	Fee               string              `json:"fee"`
	Status            *int                `json:"status"`
	Success           *bool               `json:"success"`
	Decoded           *entity.DecodedCall `json:"decoded"`
}

func (t duneTransaction) toEntity() entity.Transaction {
	gasUsed, _ := math.ParseUint64(strings.TrimSpace(t.GasUsed))
	return entity.Transaction{
		Chain:       t.Chain,
		ChainID:     t.ChainID,
		Hash:        t.Hash,
		BlockNumber: t.BlockNumber,
		BlockTime:   parseBlockTime(t.BlockTime),
		From:        t.From,
		To:          t.To,
		Value:       t.Value,
		GasPrice:    t.GasPrice,
		GasUsed:     gasUsed,
		Fee:         t.fee(gasUsed),
		Status:      t.status(),
		Decoded:     t.Decoded,
	}
}

// status prefers an explicit status code, then the success flag; absent both the
// transaction is treated as failed.
func (t duneTransaction) status() int {
	if t.Status != nil {
		return *t.Status
	}
	if t.Success != nil && *t.Success {
		return entity.TxStatusSuccess
	}
	return 0
}

// fee is gas_used * effective gas price in wei when the upstream does not send one.
func (t duneTransaction) fee(gasUsed uint64) string {
	if t.Fee != "" {
		return t.Fee
	}
	priceStr := t.EffectiveGasPrice
	if priceStr == "" {
		priceStr = t.GasPrice
	}
	price, ok := math.ParseBig256(strings.TrimSpace(priceStr))
	if !ok || price == nil || priceStr == "" || gasUsed == 0 {
		return ""
	}
	return new(big.Int).Mul(price, new(big.Int).SetUint64(gasUsed)).String()
}

func parseBlockTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.UTC()
		}
	}
	return time.Time{}
}

type dunePositionsResponse struct {
	Positions []dunePosition `json:"positions"`
}

type duneQuote struct {
	Balance  *entity.FlexFloat `json:"balance"`
	Price    *entity.FlexFloat `json:"price"`
	ValueUSD *entity.FlexFloat `json:"value_usd"`
}

type dunePosition struct {
	Type        string                `json:"type"`
	Chain       string                `json:"chain"`
	ChainID     uint64                `json:"chain_id"`
	Protocol    string                `json:"protocol"`
	Token0      *entity.PositionToken `json:"token0"`
	Token1      *entity.PositionToken `json:"token1"`
	Token       *entity.PositionToken `json:"token"`
	USDValue    *entity.FlexFloat     `json:"usd_value"`
	Liquidity   *entity.FlexFloat     `json:"liquidity"`
	TVL         *entity.FlexFloat     `json:"tvl"`
	Earned      *entity.FlexFloat     `json:"earned"`
	SupplyQuote *duneQuote            `json:"supply_quote"`
	DebtQuote   *duneQuote            `json:"debt_quote"`
}

func optFloat(v *entity.FlexFloat) *float64 {
	if v == nil {
		return nil
	}
	return v.Ptr()
}

func (q *duneQuote) toEntity() *entity.Quote {
	if q == nil {
		return nil
	}
	return &entity.Quote{Balance: optFloat(q.Balance), PriceUSD: optFloat(q.Price), ValueUSD: optFloat(q.ValueUSD)}
}

func (p dunePosition) toEntity() entity.DefiPosition {
	liquidity := optFloat(p.Liquidity)
	if liquidity == nil {
		liquidity = optFloat(p.TVL)
	}
	token0 := p.Token0
	if token0 == nil {
		token0 = p.Token // single-asset positions (vaults, lending) name their token "token"
	}
	return entity.DefiPosition{
		Kind:        entity.ParsePositionKind(p.Type),
		Chain:       p.Chain,
		ChainID:     p.ChainID,
		Protocol:    p.Protocol,
		Token0:      token0,
		Token1:      p.Token1,
		USDValue:    optFloat(p.USDValue),
		Liquidity:   liquidity,
		Earned:      optFloat(p.Earned),
		SupplyQuote: p.SupplyQuote.toEntity(),
		DebtQuote:   p.DebtQuote.toEntity(),
	}
}
