package entity

// PositionKind tags the shape of a DeFi position.
type PositionKind string

const (
	PositionAMMLP          PositionKind = "amm_lp"
	PositionNFT            PositionKind = "nft_position"
	PositionTokenizedVault PositionKind = "tokenized_vault"
	PositionLendingSupply  PositionKind = "lending_supply"
	PositionLendingBorrow  PositionKind = "lending_borrow"
	PositionUnknown        PositionKind = "unknown"
)

var positionKindLabels = map[PositionKind]string{
	PositionAMMLP:          "Liquidity Pool",
	PositionNFT:            "NFT Position",
	PositionTokenizedVault: "Vault",
	PositionLendingSupply:  "Lending Supply",
	PositionLendingBorrow:  "Lending Borrow",
}

// Label returns the display tag used on protocol position rows.
func (k PositionKind) Label() string {
	if l, ok := positionKindLabels[k]; ok {
		return l
	}
	return "Position"
}

// ParsePositionKind maps an upstream position type tag onto the closed PositionKind set.
// Unrecognised tags map to PositionUnknown.
func ParsePositionKind(tag string) PositionKind {
	switch tag {
	case "amm_lp", "UniswapV2", "UniswapV2Pair", "Erc20LP", "lp":
		return PositionAMMLP
	case "nft_position", "Nft", "NFT", "UniswapV3", "UniswapV4":
		return PositionNFT
	case "tokenized_vault", "Tokenized", "Erc4626", "ERC4626", "vault":
		return PositionTokenizedVault
	case "lending_supply", "LendingSupply", "Supply", "AaveV3Supply", "CompoundSupply":
		return PositionLendingSupply
	case "lending_borrow", "LendingBorrow", "Borrow", "AaveV3Borrow", "CompoundBorrow":
		return PositionLendingBorrow
	}
	return PositionUnknown
}

// PositionToken is an underlying token of a DeFi position.
type PositionToken struct {
	Address  string `json:"address"`
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Decimals int    `json:"decimals"`
}

// Quote is a balance/price/value triple for one side of a lending position.
type Quote struct {
	Balance  *float64 `json:"balance,omitempty"`
	PriceUSD *float64 `json:"price_usd,omitempty"`
	ValueUSD *float64 `json:"value_usd,omitempty"`
}

// DefiPosition is one position of the wallet in an external protocol.
// Pointer fields are absent when the upstream did not supply them; a present zero is a value.
type DefiPosition struct {
	Kind        PositionKind   `json:"type"`
	Chain       string         `json:"chain"`
	ChainID     uint64         `json:"chain_id"`
	Protocol    string         `json:"protocol"`
	Token0      *PositionToken `json:"token0,omitempty"`
	Token1      *PositionToken `json:"token1,omitempty"`
	USDValue    *float64       `json:"usd_value,omitempty"`
	Liquidity   *float64       `json:"liquidity,omitempty"`
	Earned      *float64       `json:"earned,omitempty"`
	SupplyQuote *Quote         `json:"supply_quote,omitempty"`
	DebtQuote   *Quote         `json:"debt_quote,omitempty"`
}
