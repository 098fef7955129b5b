package walletloader

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"strategy_dashboard/internal/app/port"
	"strategy_dashboard/internal/domain/entity"
)

// WalletFileLoader implements the port.WalletProvider interface by loading wallets from a file.
// Each non-blank, non-comment line holds an address, optionally followed by a label
// separated by a comma or whitespace.
type WalletFileLoader struct {
	filePath string
	logger   port.Logger
}

var _ port.WalletProvider = (*WalletFileLoader)(nil)

// NewWalletFileLoader creates a new WalletFileLoader.
func NewWalletFileLoader(filePath string, logger port.Logger) *WalletFileLoader {
	return &WalletFileLoader{filePath: filePath, logger: logger}
}

// GetWallets reads wallet addresses from the configured file path. Invalid lines are
// logged and skipped; duplicate addresses keep their first occurrence.
func (l *WalletFileLoader) GetWallets() ([]entity.Wallet, error) {
	file, err := os.Open(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open wallet file %s: %w", l.filePath, err)
	}
	defer file.Close()

	var wallets []entity.Wallet
	seen := make(map[string]struct{})
	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		addr, label := splitLine(line)
		normalized, err := entity.NormalizeWalletAddress(addr)
		if err != nil {
			l.logger.Warn("Skipping invalid wallet address format", "file", l.filePath, "line_number", lineNum, "address", addr)
			continue
		}
		if _, dup := seen[normalized]; dup {
			l.logger.Debug("Skipping duplicate wallet address", "file", l.filePath, "line_number", lineNum, "address", normalized)
			continue
		}
		seen[normalized] = struct{}{}
		wallets = append(wallets, entity.Wallet{Address: normalized, Label: label})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error scanning wallet file %s: %w", l.filePath, err)
	}

	l.logger.Info("Wallets loaded successfully from file", "count", len(wallets), "path", l.filePath)
	return wallets, nil
}

func splitLine(line string) (address, label string) {
	if i := strings.IndexAny(line, ", \t"); i >= 0 {
		return line[:i], strings.TrimSpace(strings.TrimLeft(line[i:], ", \t"))
	}
	return line, ""
}
