package restapi

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"strategy_dashboard/internal/app/service"
	"strategy_dashboard/internal/domain/entity"
	"strategy_dashboard/internal/infrastructure/httpclient"
	"strategy_dashboard/internal/infrastructure/kvstore"
	"strategy_dashboard/internal/infrastructure/mockdata"
	networkdefinition "strategy_dashboard/internal/infrastructure/network/definition"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const testWallet = "0xd8da6bf26964af9d7eed9e03e53415d37aa96045"

type nopLogger struct{}

func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

type stubMarket struct{}

func (stubMarket) Search(_ context.Context, q string) ([]entity.CoinRef, error) {
	if q == "eth" {
		return []entity.CoinRef{{ID: "ethereum", Symbol: "eth", Name: "Ethereum"}}, nil
	}
	return nil, nil
}

func (stubMarket) Markets(_ context.Context, ids []string) ([]entity.MarketSnapshot, error) {
	return []entity.MarketSnapshot{{ID: ids[0], Symbol: "eth", PriceUSD: 3000}}, nil
}

func (stubMarket) OHLC(context.Context, string, int) ([]entity.Candle, error) {
	return []entity.Candle{{Time: time.Unix(0, 0).UTC(), Close: 1}}, nil
}

func (stubMarket) Volumes(context.Context, string, int) ([]entity.Candle, error) {
	return []entity.Candle{{Time: time.Unix(0, 0).UTC(), Volume: 7}}, nil
}

func newTestRouter(t *testing.T, catalogURL string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := zap.NewNop()

	np := networkdefinition.NewNetworkDefinitionProvider(nopLogger{}, nil)
	portfolioSvc := service.NewPortfolioService(mockdata.Feed{}, nil, np, time.Second, log)
	catalogClient := httpclient.NewCatalogClient(httpclient.UpstreamOptions{BaseURL: catalogURL, Timeout: time.Second}, "", log)
	catalogSvc := service.NewCatalogService(catalogClient, mockdata.Listings, log)
	marketSvc := service.NewMarketService(stubMarket{}, time.Minute, 7, log)
	prefsSvc := service.NewPreferencesService(service.HooksFromStore(kvstore.NewMemory()), nopLogger{})

	return SetupRouter(Handlers{
		Portfolio:   NewPortfolioHandler(portfolioSvc),
		Catalog:     NewCatalogHandler(catalogSvc),
		Market:      NewMarketHandler(marketSvc, 7),
		Preferences: NewPreferencesHandler(prefsSvc),
		Upstreams:   map[string]bool{"dune": true, "catalog": catalogClient.Configured()},
	}, RouterOptions{}, log)
}

func do(t *testing.T, r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPortfolioEndpoint(t *testing.T) {
	r := newTestRouter(t, "")

	w := do(t, r, http.MethodGet, "/api/v1/portfolio/"+testWallet+"?chain_ids=1,8453", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	var snap entity.PortfolioSnapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.Equal(t, "0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045", snap.WalletAddress)
	assert.Equal(t, []uint64{1, 8453}, snap.ChainIDs)
	assert.Equal(t, entity.SourceLive, snap.Sources[entity.FeedBalances])
	for _, tok := range snap.Tokens {
		assert.Contains(t, []uint64{1, 8453}, tok.ChainID)
	}
}

func TestPortfolioEndpoint_ChainNames(t *testing.T) {
	r := newTestRouter(t, "")

	w := do(t, r, http.MethodGet, "/api/v1/portfolio/"+testWallet+"?chain_ids=base,ethereum", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var snap entity.PortfolioSnapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.Equal(t, []uint64{8453, 1}, snap.ChainIDs)
}

func TestPortfolioEndpoint_Errors(t *testing.T) {
	r := newTestRouter(t, "")

	tests := []struct {
		target string
		status int
	}{
		{"/api/v1/portfolio/not-an-address", http.StatusBadRequest},
		{"/api/v1/portfolio/" + testWallet + "?chain_ids=abc", http.StatusBadRequest},
		{"/api/v1/portfolio/" + testWallet + "?chain_ids=424242", http.StatusBadRequest},
	}
	for _, tt := range tests {
		w := do(t, r, http.MethodGet, tt.target, "")
		assert.Equal(t, tt.status, w.Code, tt.target)
		assert.Contains(t, w.Body.String(), `"error"`)
	}
}

func TestTransactionsEndpoint(t *testing.T) {
	r := newTestRouter(t, "")

	w := do(t, r, http.MethodGet, "/api/v1/portfolio/"+testWallet+"/transactions", "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp TransactionsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, entity.SourceLive, resp.Source)
	require.NotEmpty(t, resp.Transactions)
	assert.Equal(t, entity.TxConfirmed, resp.Transactions[0].Label)
}

func TestCatalogEndpoints_Unconfigured(t *testing.T) {
	r := newTestRouter(t, "")

	w := do(t, r, http.MethodGet, "/api/v1/strategies?sort=apy&chain=ethereum", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list ListingsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.False(t, list.Configured)
	require.NotEmpty(t, list.Items)
	for i := 1; i < len(list.Items); i++ {
		assert.GreaterOrEqual(t, list.Items[i-1].APY, list.Items[i].APY)
	}

	w = do(t, r, http.MethodGet, "/api/v1/agents/"+list.Items[0].ID, "")
	assert.Equal(t, http.StatusNotFound, w.Code, "strategy ids are not agent ids")

	w = do(t, r, http.MethodGet, "/api/v1/strategies/"+list.Items[0].ID, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodGet, "/api/v1/strategies?sort=random", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	for _, req := range []struct{ method, target string }{
		{http.MethodPost, "/api/v1/strategies"},
		{http.MethodPut, "/api/v1/strategies/x"},
		{http.MethodDelete, "/api/v1/agents/x"},
		{http.MethodPost, "/api/v1/agents/x/subscribe"},
	} {
		w = do(t, r, req.method, req.target, `{}`)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code, req.target)
		assert.JSONEq(t, `{"configured":false,"error":"catalog service not configured"}`, w.Body.String())
	}
}

func TestCatalogEndpoints_Proxy(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodPut && r.URL.Path == "/strategies/s1":
			body, _ := io.ReadAll(r.Body)
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(body)
		case r.Method == http.MethodGet && r.URL.Path == "/strategies":
			w.WriteHeader(http.StatusForbidden)
			_, _ = io.WriteString(w, `{"error":"nope"}`)
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"error":"missing"}`)
		}
	}))
	t.Cleanup(upstream.Close)
	r := newTestRouter(t, upstream.URL)

	w := do(t, r, http.MethodPut, "/api/v1/strategies/s1?x=1", `{"name":"renamed"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"name":"renamed"}`, w.Body.String())

	w = do(t, r, http.MethodGet, "/api/v1/strategies", "")
	assert.Equal(t, http.StatusForbidden, w.Code, "upstream status is relayed")
	assert.JSONEq(t, `{"error":"nope"}`, w.Body.String())

	w = do(t, r, http.MethodDelete, "/api/v1/agents/zz", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCatalogEndpoints_IDCannotLeaveCollection(t *testing.T) {
	var (
		mu   sync.Mutex
		seen []string
	)
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		seen = append(seen, r.Method+" "+r.URL.RequestURI())
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"ok"}`)
	}))
	t.Cleanup(upstream.Close)
	hits := func() []string {
		mu.Lock()
		defer mu.Unlock()
		return append([]string(nil), seen...)
	}
	r := newTestRouter(t, upstream.URL)

	for _, target := range []string{
		"/api/v1/strategies/%2e%2e",
		"/api/v1/strategies/x%3Fadmin=1",
		"/api/v1/agents/%2E",
	} {
		for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
			w := do(t, r, method, target, "")
			assert.Equal(t, http.StatusBadRequest, w.Code, method+" "+target)
		}
		w := do(t, r, http.MethodPost, target+"/subscribe", `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code, "subscribe "+target)
	}

	assert.Empty(t, hits())

	w := do(t, r, http.MethodDelete, "/api/v1/strategies/7b0e7a7e-3f0b-4a5e-9d8e-6f4b7e0a1c2d", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"DELETE /strategies/7b0e7a7e-3f0b-4a5e-9d8e-6f4b7e0a1c2d"}, hits())
}

func TestCatalogEndpoints_TransportFailure(t *testing.T) {
	dead := httptest.NewServer(http.NotFoundHandler())
	url := dead.URL
	dead.Close()
	r := newTestRouter(t, url)

	w := do(t, r, http.MethodPost, "/api/v1/strategies", `{}`)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), `"error"`)
}

func TestMarketEndpoints(t *testing.T) {
	r := newTestRouter(t, "")

	w := do(t, r, http.MethodGet, "/api/v1/market/ETH", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"price_usd":3000`)

	w = do(t, r, http.MethodGet, "/api/v1/market/eth/ohlcv?days=30", "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp OHLCVResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 30, resp.Days)
	assert.Equal(t, "ethereum", resp.ID)
	require.Len(t, resp.Candles, 1)
	assert.Equal(t, 7.0, resp.Candles[0].Volume)

	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodGet, "/api/v1/market/eth/ohlcv?days=0", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, "/api/v1/market/zzz", "").Code)
}

func TestPreferencesEndpoints(t *testing.T) {
	r := newTestRouter(t, "")
	base := "/api/v1/preferences/" + testWallet

	w := do(t, r, http.MethodPut, base+"/profile", `{"display_name":"Ana"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = do(t, r, http.MethodGet, base+"/profile", "")
	assert.Contains(t, w.Body.String(), `"display_name":"Ana"`)

	w = do(t, r, http.MethodPut, base+"/profile", `{"avatar_url":"ftp://x"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	do(t, r, http.MethodPost, base+"/searches", `{"query":"aave"}`)
	w = do(t, r, http.MethodPost, base+"/searches", `{"query":"morpho"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"searches":["morpho","aave"]}`, w.Body.String())

	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodPost, base+"/searches", `{}`).Code)
	assert.Equal(t, http.StatusNoContent, do(t, r, http.MethodDelete, base+"/searches", "").Code)
	assert.JSONEq(t, `{"searches":[]}`, do(t, r, http.MethodGet, base+"/searches", "").Body.String())
}

func TestHealthAndMetrics(t *testing.T) {
	r := newTestRouter(t, "")

	w := do(t, r, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","upstreams":{"dune":true,"catalog":false}}`, w.Body.String())

	w = do(t, r, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "dashboard_http_requests_total")
}

func TestRequestIDIsPropagated(t *testing.T) {
	r := newTestRouter(t, "")
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "7b0e7a7e-3f0b-4a5e-9d8e-6f4b7e0a1c2d")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "7b0e7a7e-3f0b-4a5e-9d8e-6f4b7e0a1c2d", w.Header().Get(RequestIDHeader))
}
