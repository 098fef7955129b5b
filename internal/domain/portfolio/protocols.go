package portfolio

import "strategy_dashboard/internal/domain/entity"

// ComputeProtocols maps each DeFi position to exactly one Protocol display record.
// Positions of the same protocol are not merged.
func ComputeProtocols(positions []entity.DefiPosition) []entity.Protocol {
	protocols := make([]entity.Protocol, 0, len(positions))
	for _, p := range positions {
		deployed, source := AmountDeployed(p)
		earned, _ := resolveAmount(p, earnedPrecedence)

		protocols = append(protocols, entity.Protocol{
			Name:           protocolName(p),
			Chain:          p.Chain,
			ChainID:        p.ChainID,
			Kind:           p.Kind,
			AmountDeployed: deployed,
			AmountSource:   source,
			Earned:         earned,
			Positions: []entity.ProtocolPosition{{
				Asset:    assetSymbol(p),
				Name:     assetName(p),
				Type:     p.Kind.Label(),
				ValueUSD: deployed,
				APY:      0,
			}},
		})
	}
	return protocols
}

func protocolName(p entity.DefiPosition) string {
	if p.Protocol != "" {
		return p.Protocol
	}
	return "Unknown protocol"
}

func assetSymbol(p entity.DefiPosition) string {
	switch {
	case p.Token0 != nil && p.Token1 != nil:
		return p.Token0.Symbol + "/" + p.Token1.Symbol
	case p.Token0 != nil && p.Token0.Symbol != "":
		return p.Token0.Symbol
	case p.Token1 != nil && p.Token1.Symbol != "":
		return p.Token1.Symbol
	}
	return protocolName(p)
}

func assetName(p entity.DefiPosition) string {
	if p.Token0 != nil && p.Token0.Name != "" {
		if p.Token1 != nil && p.Token1.Name != "" {
			return p.Token0.Name + " / " + p.Token1.Name
		}
		return p.Token0.Name
	}
	return protocolName(p)
}
