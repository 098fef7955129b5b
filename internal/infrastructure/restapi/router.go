package restapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"strategy_dashboard/internal/domain/entity"
	"strategy_dashboard/internal/pkg/metrics"
)

// Handlers groups the route handlers mounted by SetupRouter.
type Handlers struct {
	Portfolio   *PortfolioHandler
	Catalog     *CatalogHandler
	Market      *MarketHandler
	Preferences *PreferencesHandler
	// Upstreams reports, per upstream name, whether it is configured. Served on /healthz.
	Upstreams map[string]bool
}

// RouterOptions holds HTTP-level settings.
type RouterOptions struct {
	AllowedOrigins []string // empty or "*" allows every origin
}

// SetupRouter настраивает и возвращает экземпляр Gin роутера.
func SetupRouter(h Handlers, opts RouterOptions, logger *zap.Logger) *gin.Engine {
	router := gin.New()

	corsConfig := cors.DefaultConfig()
	if len(opts.AllowedOrigins) == 0 || (len(opts.AllowedOrigins) == 1 && opts.AllowedOrigins[0] == "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = opts.AllowedOrigins
	}
	corsConfig.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", RequestIDHeader}
	corsConfig.ExposeHeaders = []string{RequestIDHeader}
	corsConfig.MaxAge = 12 * time.Hour

	router.Use(cors.New(corsConfig))
	router.Use(RequestIDMiddleware())
	router.Use(ZapLoggerMiddleware(logger))
	router.Use(metrics.GinMiddleware())
	router.Use(gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "upstreams": h.Upstreams})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	if h.Portfolio != nil {
		v1.GET("/portfolio/:address", h.Portfolio.GetPortfolio)
		v1.GET("/portfolio/:address/transactions", h.Portfolio.GetTransactions)
	}
	if h.Catalog != nil {
		h.Catalog.register(v1, entity.CatalogStrategies)
		h.Catalog.register(v1, entity.CatalogAgents)
	}
	if h.Market != nil {
		v1.GET("/market/:symbol", h.Market.GetSnapshot)
		v1.GET("/market/:symbol/ohlcv", h.Market.GetOHLCV)
	}
	if h.Preferences != nil {
		prefs := v1.Group("/preferences/:owner")
		prefs.GET("/profile", h.Preferences.GetProfile)
		prefs.PUT("/profile", h.Preferences.PutProfile)
		prefs.GET("/searches", h.Preferences.GetSearches)
		prefs.POST("/searches", h.Preferences.AddSearch)
		prefs.DELETE("/searches", h.Preferences.ClearSearches)
	}

	return router
}
