package restapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"strategy_dashboard/internal/app/port"
	"strategy_dashboard/internal/domain/entity"
)

const maxOHLCVDays = 365

// OHLCVResponse is the body of the candle endpoint.
type OHLCVResponse struct {
	Symbol  string          `json:"symbol"`
	ID      string          `json:"id"`
	Days    int             `json:"days"`
	Candles []entity.Candle `json:"candles"`
}

// MarketHandler serves market data for the token detail view.
type MarketHandler struct {
	marketService port.MarketService
	defaultDays   int
}

// NewMarketHandler creates a new MarketHandler.
func NewMarketHandler(ms port.MarketService, defaultDays int) *MarketHandler {
	if defaultDays <= 0 {
		defaultDays = 7
	}
	return &MarketHandler{marketService: ms, defaultDays: defaultDays}
}

// GetSnapshot handles GET /market/:symbol.
func (h *MarketHandler) GetSnapshot(c *gin.Context) {
	snapshot, err := h.marketService.Snapshot(c.Request.Context(), c.Param("symbol"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// GetOHLCV handles GET /market/:symbol/ohlcv?days=N.
func (h *MarketHandler) GetOHLCV(c *gin.Context) {
	days := h.defaultDays
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > maxOHLCVDays {
			badRequest(c, "days must be an integer between 1 and 365")
			return
		}
		days = n
	}
	ctx := c.Request.Context()
	ref, err := h.marketService.ResolveSymbol(ctx, c.Param("symbol"))
	if err != nil {
		writeError(c, err)
		return
	}
	candles, err := h.marketService.OHLCV(ctx, c.Param("symbol"), days)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, OHLCVResponse{Symbol: ref.Symbol, ID: ref.ID, Days: days, Candles: candles})
}
