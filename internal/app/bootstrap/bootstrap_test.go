package bootstrap

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"strategy_dashboard/internal/domain/entity"
	"strategy_dashboard/internal/infrastructure/configloader"
)

func TestBuild_WithoutCredentialsServesMockData(t *testing.T) {
	cfg := configloader.Default()
	cfg.Dune.APIKey = ""
	cfg.Catalog.BaseURL = ""
	cfg.PortfolioService.UseMock = true
	cfg.Preferences.Backend = "file"
	cfg.Preferences.FilePath = filepath.Join(t.TempDir(), "prefs.json")

	app, err := Build(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	assert.False(t, app.Upstreams["dune"])
	assert.False(t, app.Catalog.Configured())

	snap, err := app.Portfolio.GetPortfolio(context.Background(), "0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045", nil)
	require.NoError(t, err)
	assert.Equal(t, entity.SourceMock, snap.Sources[entity.FeedBalances])
	assert.NotEmpty(t, snap.Tokens)

	_, err = app.Preferences.AddRecentSearch(context.Background(), "owner", "aave")
	require.NoError(t, err)
}

func TestBuild_RedisUnreachable(t *testing.T) {
	cfg := configloader.Default()
	cfg.Preferences.Backend = "redis"
	cfg.Preferences.RedisAddr = "127.0.0.1:1"

	_, err := Build(context.Background(), cfg, zap.NewNop())
	assert.Error(t, err)
}
