package configloader

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ServerConfig holds server-specific configurations.
type ServerConfig struct {
	Port                string   `yaml:"port"`
	ReadTimeoutSeconds  int      `yaml:"readTimeoutSeconds"`
	WriteTimeoutSeconds int      `yaml:"writeTimeoutSeconds"`
	IdleTimeoutSeconds  int      `yaml:"idleTimeoutSeconds"`
	AllowedOrigins      []string `yaml:"allowedOrigins"`
	Mode                string   `yaml:"mode"` // gin mode: debug, release, test
}

// LoggingConfig holds logging-specific configurations.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // json or console
}

// DuneConfig holds the wallet data feed (Dune Sim API) configuration.
type DuneConfig struct {
	APIKey               string  `yaml:"apiKey"`
	BaseURL              string  `yaml:"baseURL"`
	RequestTimeoutMillis int64   `yaml:"requestTimeoutMillis"`
	RequestsPerSecond    float64 `yaml:"requestsPerSecond"`
	Burst                int     `yaml:"burst"`
	TransactionLimit     int     `yaml:"transactionLimit"`
}

// CoinGeckoConfig holds CoinGecko API specific configurations.
type CoinGeckoConfig struct {
	APIKey                string  `yaml:"apiKey"`
	BaseURL               string  `yaml:"baseURL"`
	VsCurrency            string  `yaml:"vsCurrency"`
	RequestTimeoutMillis  int64   `yaml:"requestTimeoutMillis"`
	RequestsPerSecond     float64 `yaml:"requestsPerSecond"`
	Burst                 int     `yaml:"burst"`
	SymbolCacheTTLMinutes int     `yaml:"symbolCacheTTLMinutes"`
	DefaultOHLCVDays      int     `yaml:"defaultOHLCVDays"`
}

// CatalogConfig holds the remote strategy/agent catalog configuration.
// An empty BaseURL means the catalog is not configured.
type CatalogConfig struct {
	BaseURL              string `yaml:"baseURL"`
	APIKey               string `yaml:"apiKey"`
	RequestTimeoutMillis int64  `yaml:"requestTimeoutMillis"`
}

// PortfolioServiceConfig holds configuration for the PortfolioService.
type PortfolioServiceConfig struct {
	UseMock            bool  `yaml:"useMock"` // fall back to mock data instead of empty collections
	FetchTimeoutMillis int64 `yaml:"fetchTimeoutMillis"`
}

// PreferencesConfig selects the KV backend for client preferences.
type PreferencesConfig struct {
	Backend       string `yaml:"backend"` // memory, file or redis
	FilePath      string `yaml:"filePath"`
	RedisAddr     string `yaml:"redisAddr"`
	RedisPassword string `yaml:"redisPassword"`
	RedisDB       int    `yaml:"redisDB"`
	KeyPrefix     string `yaml:"keyPrefix"`
}

// PerformanceConfig holds performance-related configurations.
type PerformanceConfig struct {
	MaxConcurrentRoutines int `yaml:"max_concurrent_routines"`
}

// NetworksConfig restricts the chains accepted in chain filters. Empty enables every known chain.
type NetworksConfig struct {
	Enabled []string `yaml:"enabled"`
}

// WalletsConfig points at the wallet list used by batch reports.
type WalletsConfig struct {
	FilePath string `yaml:"filePath"`
}

// Config is the top-level configuration structure.
type Config struct {
	Server           ServerConfig           `yaml:"server"`
	Logging          LoggingConfig          `yaml:"logging"`
	Dune             DuneConfig             `yaml:"dune"`
	CoinGecko        CoinGeckoConfig        `yaml:"coingecko"`
	Catalog          CatalogConfig          `yaml:"catalog"`
	PortfolioService PortfolioServiceConfig `yaml:"portfolioService"`
	Preferences      PreferencesConfig      `yaml:"preferences"`
	Performance      PerformanceConfig      `yaml:"performance"`
	Networks         NetworksConfig         `yaml:"networks"`
	Wallets          WalletsConfig          `yaml:"wallets"`
}

// Load reads the YAML configuration file from the given path, unmarshals it,
// applies environment overrides and fills defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse is Load without the file read.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config data: %w", err)
	}
	cfg.applyEnv(os.LookupEnv)
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns a configuration built only from defaults and environment.
func Default() *Config {
	var cfg Config
	cfg.applyEnv(os.LookupEnv)
	cfg.applyDefaults()
	return &cfg
}

// Secrets and deployment-specific endpoints are usually injected through the environment.
func (cfg *Config) applyEnv(lookup func(string) (string, bool)) {
	set := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	set("DUNE_API_KEY", &cfg.Dune.APIKey)
	set("COINGECKO_API_KEY", &cfg.CoinGecko.APIKey)
	set("CATALOG_BASE_URL", &cfg.Catalog.BaseURL)
	set("CATALOG_API_KEY", &cfg.Catalog.APIKey)
	set("REDIS_ADDR", &cfg.Preferences.RedisAddr)
	set("LOG_LEVEL", &cfg.Logging.Level)
	set("PORT", &cfg.Server.Port)
}

func (cfg *Config) applyDefaults() {
	if cfg.Server.Port == "" {
		cfg.Server.Port = ":8080"
	}
	if !strings.HasPrefix(cfg.Server.Port, ":") && !strings.Contains(cfg.Server.Port, ":") {
		cfg.Server.Port = ":" + cfg.Server.Port
	}
	if cfg.Server.ReadTimeoutSeconds <= 0 {
		cfg.Server.ReadTimeoutSeconds = 15
	}
	if cfg.Server.WriteTimeoutSeconds <= 0 {
		cfg.Server.WriteTimeoutSeconds = 30
	}
	if cfg.Server.IdleTimeoutSeconds <= 0 {
		cfg.Server.IdleTimeoutSeconds = 60
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = "release"
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}

	// Defaults for DuneConfig
	if cfg.Dune.BaseURL == "" {
		cfg.Dune.BaseURL = "https://api.sim.dune.com"
	}
	if cfg.Dune.RequestTimeoutMillis <= 0 {
		cfg.Dune.RequestTimeoutMillis = 10000
	}
	if cfg.Dune.RequestsPerSecond <= 0 {
		cfg.Dune.RequestsPerSecond = 5
	}
	if cfg.Dune.Burst <= 0 {
		cfg.Dune.Burst = 3
	}
	if cfg.Dune.TransactionLimit <= 0 {
		cfg.Dune.TransactionLimit = 50
	}

	// Defaults for CoinGeckoConfig
	if cfg.CoinGecko.BaseURL == "" {
		cfg.CoinGecko.BaseURL = "https://api.coingecko.com/api/v3" // Default public API
	}
	if cfg.CoinGecko.VsCurrency == "" {
		cfg.CoinGecko.VsCurrency = "usd"
	}
	if cfg.CoinGecko.RequestTimeoutMillis <= 0 {
		cfg.CoinGecko.RequestTimeoutMillis = 10000
	}
	if cfg.CoinGecko.RequestsPerSecond <= 0 {
		cfg.CoinGecko.RequestsPerSecond = 0.5 // public tier allows ~30 calls/minute
	}
	if cfg.CoinGecko.Burst <= 0 {
		cfg.CoinGecko.Burst = 5
	}
	if cfg.CoinGecko.SymbolCacheTTLMinutes <= 0 {
		cfg.CoinGecko.SymbolCacheTTLMinutes = 60
	}
	if cfg.CoinGecko.DefaultOHLCVDays <= 0 {
		cfg.CoinGecko.DefaultOHLCVDays = 7
	}

	cfg.Catalog.BaseURL = strings.TrimRight(cfg.Catalog.BaseURL, "/")
	if cfg.Catalog.RequestTimeoutMillis <= 0 {
		cfg.Catalog.RequestTimeoutMillis = 10000
	}

	if cfg.PortfolioService.FetchTimeoutMillis <= 0 {
		cfg.PortfolioService.FetchTimeoutMillis = 15000
	}

	if cfg.Preferences.Backend == "" {
		cfg.Preferences.Backend = "memory"
	}
	if cfg.Preferences.FilePath == "" {
		cfg.Preferences.FilePath = "data/preferences.json"
	}
	if cfg.Preferences.KeyPrefix == "" {
		cfg.Preferences.KeyPrefix = "dashboard:prefs:"
	}

	if cfg.Performance.MaxConcurrentRoutines <= 0 {
		cfg.Performance.MaxConcurrentRoutines = 10 // Default to 10 if not specified or invalid
	}
	if cfg.Wallets.FilePath == "" {
		cfg.Wallets.FilePath = "data/wallets.txt"
	}
}

func (cfg *Config) validate() error {
	switch cfg.Preferences.Backend {
	case "memory", "file":
	case "redis":
		if cfg.Preferences.RedisAddr == "" {
			return fmt.Errorf("preferences backend redis requires redisAddr (or REDIS_ADDR)")
		}
	default:
		return fmt.Errorf("unknown preferences backend %q", cfg.Preferences.Backend)
	}
	switch strings.ToLower(cfg.Logging.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("unknown logging format %q", cfg.Logging.Format)
	}
	return nil
}

// DuneConfigured reports whether the wallet data feed has credentials.
func (cfg *Config) DuneConfigured() bool { return cfg.Dune.APIKey != "" }

// CatalogConfigured reports whether a remote catalog is set.
func (cfg *Config) CatalogConfigured() bool { return cfg.Catalog.BaseURL != "" }
