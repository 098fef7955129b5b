// Package bootstrap wires configuration into the services shared by the API server and the CLI.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"strategy_dashboard/internal/app/port"
	"strategy_dashboard/internal/app/service"
	"strategy_dashboard/internal/infrastructure/configloader"
	"strategy_dashboard/internal/infrastructure/httpclient"
	"strategy_dashboard/internal/infrastructure/kvstore"
	"strategy_dashboard/internal/infrastructure/mockdata"
	networkdefinition "strategy_dashboard/internal/infrastructure/network/definition"
	"strategy_dashboard/internal/infrastructure/walletloader"
	"strategy_dashboard/internal/pkg/logger"
)

// App holds the wired services.
type App struct {
	Networks    port.NetworkDefinitionProvider
	Wallets     port.WalletProvider
	Portfolio   *service.PortfolioServiceImpl
	Catalog     *service.CatalogServiceImpl
	Market      *service.MarketServiceImpl
	Preferences *service.PreferencesServiceImpl
	// Upstreams reports which upstreams have credentials or endpoints configured.
	Upstreams map[string]bool

	closers []func() error
}

func millis(ms int64) time.Duration { return time.Duration(ms) * time.Millisecond }

// Build creates every client and service from cfg.
func Build(ctx context.Context, cfg *configloader.Config, zapLogger *zap.Logger) (*App, error) {
	appLogger := logger.NewSlogAdapter()

	netDefProvider := networkdefinition.NewNetworkDefinitionProvider(appLogger, cfg.Networks.Enabled)
	walletProvider := walletloader.NewWalletFileLoader(cfg.Wallets.FilePath, appLogger)

	dune := httpclient.NewDuneClient(httpclient.UpstreamOptions{
		BaseURL:           cfg.Dune.BaseURL,
		Timeout:           millis(cfg.Dune.RequestTimeoutMillis),
		RequestsPerSecond: cfg.Dune.RequestsPerSecond,
		Burst:             cfg.Dune.Burst,
	}, cfg.Dune.APIKey, cfg.Dune.TransactionLimit, zapLogger)
	if !dune.Configured() {
		zapLogger.Warn("Dune API key is not set; wallet feeds will use fallback data", zap.Bool("useMock", cfg.PortfolioService.UseMock))
	}

	var fallback port.WalletDataFeed
	if cfg.PortfolioService.UseMock {
		fallback = mockdata.Feed{}
	}
	portfolioSvc := service.NewPortfolioService(dune, fallback, netDefProvider, millis(cfg.PortfolioService.FetchTimeoutMillis), zapLogger)

	catalogClient := httpclient.NewCatalogClient(httpclient.UpstreamOptions{
		BaseURL: cfg.Catalog.BaseURL,
		Timeout: millis(cfg.Catalog.RequestTimeoutMillis),
	}, cfg.Catalog.APIKey, zapLogger)
	catalogSvc := service.NewCatalogService(catalogClient, mockdata.Listings, zapLogger)

	coinGecko := httpclient.NewCoinGeckoClient(httpclient.UpstreamOptions{
		BaseURL:           cfg.CoinGecko.BaseURL,
		Timeout:           millis(cfg.CoinGecko.RequestTimeoutMillis),
		RequestsPerSecond: cfg.CoinGecko.RequestsPerSecond,
		Burst:             cfg.CoinGecko.Burst,
	}, cfg.CoinGecko.APIKey, cfg.CoinGecko.VsCurrency, zapLogger)
	marketSvc := service.NewMarketService(coinGecko, time.Duration(cfg.CoinGecko.SymbolCacheTTLMinutes)*time.Minute, cfg.CoinGecko.DefaultOHLCVDays, zapLogger)

	app := &App{
		Networks:  netDefProvider,
		Wallets:   walletProvider,
		Portfolio: portfolioSvc,
		Catalog:   catalogSvc,
		Market:    marketSvc,
		Upstreams: map[string]bool{
			"dune":      dune.Configured(),
			"catalog":   catalogClient.Configured(),
			"coingecko": true,
		},
	}

	store, err := app.preferencesStore(ctx, cfg.Preferences)
	if err != nil {
		return nil, err
	}
	app.Preferences = service.NewPreferencesService(service.HooksFromStore(store), appLogger)
	zapLogger.Info("Services initialized", zap.String("preferencesBackend", cfg.Preferences.Backend))
	return app, nil
}

func (a *App) preferencesStore(ctx context.Context, cfg configloader.PreferencesConfig) (port.KVStore, error) {
	switch cfg.Backend {
	case "file":
		return kvstore.NewFile(cfg.FilePath), nil
	case "redis":
		r, err := kvstore.NewRedis(ctx, kvstore.RedisOptions{
			Addr:      cfg.RedisAddr,
			Password:  cfg.RedisPassword,
			DB:        cfg.RedisDB,
			KeyPrefix: cfg.KeyPrefix,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect preferences store: %w", err)
		}
		a.closers = append(a.closers, r.Close)
		return r, nil
	default:
		return kvstore.NewMemory(), nil
	}
}

// Close releases backend connections.
func (a *App) Close() error {
	var firstErr error
	for _, c := range a.closers {
		if err := c(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
