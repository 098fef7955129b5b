package configloader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"DUNE_API_KEY", "COINGECKO_API_KEY", "CATALOG_BASE_URL", "CATALOG_API_KEY", "REDIS_ADDR", "LOG_LEVEL", "PORT"} {
		t.Setenv(k, "")
	}
}

func TestParse_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Parse([]byte("{}"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, "https://api.sim.dune.com", cfg.Dune.BaseURL)
	assert.Equal(t, "https://api.coingecko.com/api/v3", cfg.CoinGecko.BaseURL)
	assert.Equal(t, "usd", cfg.CoinGecko.VsCurrency)
	assert.Equal(t, "memory", cfg.Preferences.Backend)
	assert.Equal(t, 10, cfg.Performance.MaxConcurrentRoutines)
	assert.Equal(t, 50, cfg.Dune.TransactionLimit)
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yml")
	body := `
server:
  port: "9090"
dune:
  apiKey: from-file
catalog:
  baseURL: https://catalog.example.com/api/
portfolioService:
  useMock: true
preferences:
  backend: file
  filePath: /tmp/prefs.json
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Port)
	assert.True(t, cfg.PortfolioService.UseMock)
	assert.Equal(t, "https://catalog.example.com/api", cfg.Catalog.BaseURL)
	assert.True(t, cfg.CatalogConfigured())
	assert.Equal(t, "file", cfg.Preferences.Backend)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}

func TestParse_Validation(t *testing.T) {
	clearEnv(t)
	_, err := Parse([]byte("preferences:\n  backend: etcd\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("preferences:\n  backend: redis\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("logging:\n  format: xml\n"))
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"DUNE_API_KEY":     "env-key",
		"CATALOG_BASE_URL": "https://catalog.internal",
		"PORT":             "7000",
	}
	var cfg Config
	cfg.Dune.APIKey = "file-key"
	cfg.applyEnv(func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	})
	cfg.applyDefaults()

	assert.Equal(t, "env-key", cfg.Dune.APIKey)
	assert.True(t, cfg.DuneConfigured())
	assert.Equal(t, "https://catalog.internal", cfg.Catalog.BaseURL)
	assert.Equal(t, ":7000", cfg.Server.Port)
}
