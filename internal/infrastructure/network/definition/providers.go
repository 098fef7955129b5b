package networkdefinition

import (
	"fmt"
	"sort"
	"strings"

	"strategy_dashboard/internal/app/port"
	"strategy_dashboard/internal/domain/entity"
)

// NetworkDefinitionProvider resolves the chains the wallet data feed can be filtered by.
type NetworkDefinitionProvider struct {
	logger            port.Logger
	allNetworkDefs    map[string]entity.NetworkDefinition
	activeNetworkDefs []entity.NetworkDefinition
}

var _ port.NetworkDefinitionProvider = (*NetworkDefinitionProvider)(nil)

// Predefined network definitions. Identifier is the chain slug reported by the wallet data feed.
var ( //nolint:gochecknoglobals // Global for definitions
	Ethereum = entity.NetworkDefinition{
		ChainID:          1,
		Name:             "Ethereum Mainnet",
		Identifier:       "ethereum",
		NativeSymbol:     "ETH",
		Decimals:         18,
		BlockExplorerURL: "https://etherscan.io",
	}
	Optimism = entity.NetworkDefinition{
		ChainID:          10,
		Name:             "OP Mainnet",
		Identifier:       "optimism",
		NativeSymbol:     "ETH",
		Decimals:         18,
		BlockExplorerURL: "https://optimistic.etherscan.io",
	}
	BSC = entity.NetworkDefinition{
		ChainID:          56,
		Name:             "BNB Smart Chain",
		Identifier:       "bnb",
		NativeSymbol:     "BNB",
		Decimals:         18,
		BlockExplorerURL: "https://bscscan.com",
	}
	Gnosis = entity.NetworkDefinition{
		ChainID:          100,
		Name:             "Gnosis Chain",
		Identifier:       "gnosis",
		NativeSymbol:     "xDAI",
		Decimals:         18,
		BlockExplorerURL: "https://gnosisscan.io",
	}
	Polygon = entity.NetworkDefinition{
		ChainID:          137,
		Name:             "Polygon PoS",
		Identifier:       "polygon",
		NativeSymbol:     "POL",
		Decimals:         18,
		BlockExplorerURL: "https://polygonscan.com",
	}
	ZkSync = entity.NetworkDefinition{ // zkSync Era
		ChainID:          324,
		Name:             "zkSync Era Mainnet",
		Identifier:       "zksync",
		NativeSymbol:     "ETH",
		Decimals:         18,
		BlockExplorerURL: "https://explorer.zksync.io",
	}
	Mantle = entity.NetworkDefinition{
		ChainID:          5000,
		Name:             "Mantle Network",
		Identifier:       "mantle",
		NativeSymbol:     "MNT",
		Decimals:         18,
		BlockExplorerURL: "https://explorer.mantle.xyz",
	}
	Base = entity.NetworkDefinition{
		ChainID:          8453,
		Name:             "Base Mainnet",
		Identifier:       "base",
		NativeSymbol:     "ETH",
		Decimals:         18,
		BlockExplorerURL: "https://basescan.org",
	}
	Arbitrum = entity.NetworkDefinition{
		ChainID:          42161,
		Name:             "Arbitrum One",
		Identifier:       "arbitrum",
		NativeSymbol:     "ETH",
		Decimals:         18,
		BlockExplorerURL: "https://arbiscan.io",
	}
	Celo = entity.NetworkDefinition{
		ChainID:          42220,
		Name:             "Celo Mainnet",
		Identifier:       "celo",
		NativeSymbol:     "CELO",
		Decimals:         18,
		BlockExplorerURL: "https://celoscan.io",
	}
	Avalanche = entity.NetworkDefinition{
		ChainID:          43114,
		Name:             "Avalanche C-Chain",
		Identifier:       "avalanche_c",
		NativeSymbol:     "AVAX",
		Decimals:         18,
		BlockExplorerURL: "https://snowtrace.io",
	}
	Linea = entity.NetworkDefinition{
		ChainID:          59144,
		Name:             "Linea Mainnet",
		Identifier:       "linea",
		NativeSymbol:     "ETH",
		Decimals:         18,
		BlockExplorerURL: "https://lineascan.build",
	}
	Blast = entity.NetworkDefinition{
		ChainID:          81457,
		Name:             "Blast Mainnet",
		Identifier:       "blast",
		NativeSymbol:     "ETH",
		Decimals:         18,
		BlockExplorerURL: "https://blastscan.io",
	}
	Scroll = entity.NetworkDefinition{
		ChainID:          534352,
		Name:             "Scroll",
		Identifier:       "scroll",
		NativeSymbol:     "ETH",
		Decimals:         18,
		BlockExplorerURL: "https://scrollscan.com",
	}
	Zora = entity.NetworkDefinition{
		ChainID:          7777777,
		Name:             "Zora Mainnet",
		Identifier:       "zora",
		NativeSymbol:     "ETH",
		Decimals:         18,
		BlockExplorerURL: "https://explorer.zora.energy",
	}
)

// allKnownDefinitions is a helper to quickly access all hardcoded definitions.
var allKnownDefinitions = map[string]entity.NetworkDefinition{
	Ethereum.Identifier:  Ethereum,
	Optimism.Identifier:  Optimism,
	BSC.Identifier:       BSC,
	Gnosis.Identifier:    Gnosis,
	Polygon.Identifier:   Polygon,
	ZkSync.Identifier:    ZkSync,
	Mantle.Identifier:    Mantle,
	Base.Identifier:      Base,
	Arbitrum.Identifier:  Arbitrum,
	Celo.Identifier:      Celo,
	Avalanche.Identifier: Avalanche,
	Linea.Identifier:     Linea,
	Blast.Identifier:     Blast,
	Scroll.Identifier:    Scroll,
	Zora.Identifier:      Zora,
}

// NewNetworkDefinitionProvider creates a NetworkDefinitionProvider. Only the networks named in
// enabled are active; an empty list activates every known network.
func NewNetworkDefinitionProvider(log port.Logger, enabled []string) *NetworkDefinitionProvider {
	p := &NetworkDefinitionProvider{
		logger:            log,
		allNetworkDefs:    allKnownDefinitions,
		activeNetworkDefs: make([]entity.NetworkDefinition, 0, len(allKnownDefinitions)),
	}

	if len(enabled) == 0 {
		for _, def := range p.allNetworkDefs {
			p.activeNetworkDefs = append(p.activeNetworkDefs, def)
		}
	} else {
		activeIdentifiers := make(map[string]struct{})
		for _, raw := range enabled {
			identifier := strings.ToLower(strings.TrimSpace(raw))
			if _, alreadyActive := activeIdentifiers[identifier]; alreadyActive {
				p.logger.Warn(fmt.Sprintf("Duplicate network identifier in configuration: %s. Skipping.", identifier))
				continue
			}
			def, ok := p.allNetworkDefs[identifier]
			if !ok {
				p.logger.Warn(fmt.Sprintf("Network '%s' is enabled in configuration but has no definition. Skipping.", identifier))
				continue
			}
			p.activeNetworkDefs = append(p.activeNetworkDefs, def)
			activeIdentifiers[identifier] = struct{}{}
		}
	}

	sort.Slice(p.activeNetworkDefs, func(i, j int) bool {
		return p.activeNetworkDefs[i].ChainID < p.activeNetworkDefs[j].ChainID
	})

	if len(p.activeNetworkDefs) == 0 {
		p.logger.Warn("No networks are active; every chain filter will be rejected.")
	} else {
		p.logger.Info(fmt.Sprintf("NetworkDefinitionProvider initialized. Active networks: %d", len(p.activeNetworkDefs)))
	}
	return p
}

// GetAllNetworkDefinitions returns the active network definitions ordered by chain id.
func (p *NetworkDefinitionProvider) GetAllNetworkDefinitions() []entity.NetworkDefinition {
	if p == nil {
		return []entity.NetworkDefinition{}
	}
	defsCopy := make([]entity.NetworkDefinition, len(p.activeNetworkDefs))
	copy(defsCopy, p.activeNetworkDefs)
	return defsCopy
}

// GetNetworkDefinitionByName returns an active network definition by its identifier.
func (p *NetworkDefinitionProvider) GetNetworkDefinitionByName(identifier string) (entity.NetworkDefinition, bool) {
	if p == nil {
		return entity.NetworkDefinition{}, false
	}
	identifier = strings.ToLower(identifier)
	for _, def := range p.activeNetworkDefs {
		if def.Identifier == identifier {
			return def, true
		}
	}
	return entity.NetworkDefinition{}, false
}

// GetNetworkDefinitionByChainID returns an active network definition by its chain id.
func (p *NetworkDefinitionProvider) GetNetworkDefinitionByChainID(chainID uint64) (entity.NetworkDefinition, bool) {
	if p == nil {
		return entity.NetworkDefinition{}, false
	}
	for _, def := range p.activeNetworkDefs {
		if def.ChainID == chainID {
			return def, true
		}
	}
	return entity.NetworkDefinition{}, false
}
