package entity

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Wallet is a tracked wallet address.
type Wallet struct {
	Address string
	Label   string
}

// NormalizeWalletAddress validates a 0x-prefixed 20-byte hex address and returns its checksummed form.
func NormalizeWalletAddress(address string) (string, error) {
	address = strings.TrimSpace(address)
	if !strings.HasPrefix(address, "0x") && !strings.HasPrefix(address, "0X") {
		return "", fmt.Errorf("%w: %q: missing 0x prefix", ErrInvalidWalletAddress, address)
	}
	if !common.IsHexAddress(address) {
		return "", fmt.Errorf("%w: %q", ErrInvalidWalletAddress, address)
	}
	return common.HexToAddress(address).Hex(), nil
}
