package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"strategy_dashboard/internal/domain/entity"
)

type staticWallets struct {
	wallets []entity.Wallet
	err     error
}

func (s staticWallets) GetWallets() ([]entity.Wallet, error) { return s.wallets, s.err }

func TestFetchAllWalletsPortfolio(t *testing.T) {
	svc := newTestPortfolioService(liveFeed(), nil, time.Second)
	wp := staticWallets{wallets: []entity.Wallet{
		{Address: wallet, Label: "main"},
		{Address: "not-an-address", Label: "broken"},
		{Address: "0x0000000000000000000000000000000000000001"},
	}}

	reports, err := FetchAllWalletsPortfolio(context.Background(), svc, wp, nil, 2, zap.NewNop())
	require.NoError(t, err)
	require.Len(t, reports, 3)

	assert.Equal(t, "main", reports[0].Wallet.Label)
	require.NoError(t, reports[0].Err)
	assert.Equal(t, 4500.0, reports[0].Snapshot.Totals.TotalValue)

	assert.ErrorIs(t, reports[1].Err, entity.ErrInvalidWalletAddress)
	assert.Nil(t, reports[1].Snapshot)

	assert.NoError(t, reports[2].Err)
}

func TestFetchAllWalletsPortfolio_ProviderError(t *testing.T) {
	svc := newTestPortfolioService(liveFeed(), nil, time.Second)
	_, err := FetchAllWalletsPortfolio(context.Background(), svc, staticWallets{err: errors.New("no file")}, nil, 2, zap.NewNop())
	assert.Error(t, err)
}
