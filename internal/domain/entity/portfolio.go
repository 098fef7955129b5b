package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Token is a priced Balance with its share of the token portfolio.
type Token struct {
	Chain        string          `json:"chain"`
	ChainID      uint64          `json:"chain_id"`
	Address      string          `json:"address"`
	Symbol       string          `json:"symbol"`
	Name         string          `json:"name"`
	Decimals     int             `json:"decimals"`
	Balance      decimal.Decimal `json:"balance"` // Amount / 10^Decimals
	PriceUSD     float64         `json:"price_usd"`
	ValueUSD     float64         `json:"value_usd"`
	LowLiquidity bool            `json:"low_liquidity,omitempty"`
	Allocation   float64         `json:"allocation"` // percent of total token value
}

// ProtocolPosition is the single synthetic row shown under a Protocol.
type ProtocolPosition struct {
	Asset    string  `json:"asset"`
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	ValueUSD float64 `json:"value_usd"`
	// APY is a display placeholder: no upstream field supplies a yield, so it is always 0.
	APY float64 `json:"apy"`
}

// Protocol is the display record derived from one DefiPosition.
type Protocol struct {
	Name           string             `json:"name"`
	Chain          string             `json:"chain"`
	ChainID        uint64             `json:"chain_id"`
	Kind           PositionKind       `json:"type"`
	AmountDeployed float64            `json:"amount_deployed"`
	AmountSource   string             `json:"amount_source"` // which field AmountDeployed came from
	Earned         float64            `json:"earned"`
	Positions      []ProtocolPosition `json:"positions"`
}

// Risk labels.
const (
	RiskLow    = "Low"
	RiskMedium = "Medium"
	RiskHigh   = "High"
	RiskReview = "Review"
)

// RiskMetrics holds heuristic, presentation-only portfolio scores.
type RiskMetrics struct {
	PortfolioHealth      int     `json:"portfolio_health"`
	DiversificationScore int     `json:"diversification_score"`
	TopAllocation        float64 `json:"top_allocation"`
	ChainCount           int     `json:"chain_count"`
	ExposureRisk         string  `json:"exposure_risk"`
	LiquidationRisk      string  `json:"liquidation_risk"`
}

// Totals are the top-line dashboard figures.
type Totals struct {
	TotalValue    float64 `json:"total_value"`
	TokenValue    float64 `json:"token_value"`
	DeployedValue float64 `json:"deployed_value"`
}

// SourceState tells the presentation layer where a feed's data came from.
type SourceState string

const (
	SourceLive  SourceState = "live"
	SourceMock  SourceState = "mock"
	SourceEmpty SourceState = "empty"
)

// Feed names used in PortfolioSnapshot.Sources and in metrics labels.
const (
	FeedBalances     = "balances"
	FeedTransactions = "transactions"
	FeedPositions    = "positions"
)

// PortfolioSnapshot is the immutable result of one portfolio fetch-and-aggregate cycle.
type PortfolioSnapshot struct {
	WalletAddress string                  `json:"wallet_address"`
	ChainIDs      []uint64                `json:"chain_ids,omitempty"`
	Tokens        []Token                 `json:"tokens"`
	Protocols     []Protocol              `json:"protocols"`
	Transactions  []ClassifiedTransaction `json:"transactions"`
	Risk          RiskMetrics             `json:"risk"`
	Totals        Totals                  `json:"totals"`
	Sources       map[string]SourceState  `json:"sources"`
	GeneratedAt   time.Time               `json:"generated_at"`
}
