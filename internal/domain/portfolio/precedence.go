package portfolio

import "strategy_dashboard/internal/domain/entity"

// amountSource reads one candidate figure from a position. ok is false when the
// upstream did not supply the field; a supplied zero is still a value.
type amountSource struct {
	name string
	get  func(p entity.DefiPosition) (v float64, ok bool)
}

// sourceNone is reported when no source in a precedence list had a value.
const sourceNone = "none"

func present(v *float64) (float64, bool) {
	if v == nil {
		return 0, false
	}
	return *v, true
}

// deployedPrecedence is the lookup order for a protocol's "amount deployed":
// explicit liquidity/TVL, then the supply-side quote, then the raw position value.
var deployedPrecedence = []amountSource{
	{name: "liquidity", get: func(p entity.DefiPosition) (float64, bool) {
		return present(p.Liquidity)
	}},
	{name: "supply_quote", get: func(p entity.DefiPosition) (float64, bool) {
		if p.SupplyQuote == nil {
			return 0, false
		}
		return present(p.SupplyQuote.ValueUSD)
	}},
	{name: "usd_value", get: func(p entity.DefiPosition) (float64, bool) {
		return present(p.USDValue)
	}},
}

var earnedPrecedence = []amountSource{
	{name: "earned", get: func(p entity.DefiPosition) (float64, bool) {
		return present(p.Earned)
	}},
}

// resolveAmount walks sources in order and returns the first supplied figure and
// the name of the field it came from, or (0, "none").
func resolveAmount(p entity.DefiPosition, sources []amountSource) (float64, string) {
	for _, s := range sources {
		if v, ok := s.get(p); ok {
			return v, s.name
		}
	}
	return 0, sourceNone
}

// AmountDeployed returns the display "amount deployed" of a position and its source field.
func AmountDeployed(p entity.DefiPosition) (float64, string) {
	return resolveAmount(p, deployedPrecedence)
}
