package restapi

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"strategy_dashboard/internal/app/port"
	"strategy_dashboard/internal/domain/entity"
)

const maxProxyBodyBytes = 1 << 20

// ListingsResponse is the body of a marketplace listing query.
type ListingsResponse struct {
	Items      []entity.Listing `json:"items"`
	Count      int              `json:"count"`
	Configured bool             `json:"configured"`
}

// CatalogHandler serves the strategy and agent marketplace. Mutations are relayed verbatim.
type CatalogHandler struct {
	catalogService port.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(cs port.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: cs}
}

// register mounts the routes of one collection.
func (h *CatalogHandler) register(rg *gin.RouterGroup, kind entity.CatalogKind) {
	g := rg.Group("/" + string(kind))
	g.GET("", h.list(kind))
	g.POST("", h.forward(kind, ""))
	g.GET("/:id", h.get(kind))
	g.PUT("/:id", h.forward(kind, ""))
	g.DELETE("/:id", h.forward(kind, ""))
	g.POST("/:id/subscribe", h.forward(kind, "subscribe"))
}

func (h *CatalogHandler) list(kind entity.CatalogKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := entity.ListingFilter{
			Query:    c.Query("q"),
			Category: c.Query("category"),
			Risk:     c.Query("risk"),
			Chain:    c.Query("chain"),
			Sort:     entity.ListingSort(c.Query("sort")),
		}
		if !filter.Sort.Valid() {
			badRequest(c, "unknown sort "+string(filter.Sort))
			return
		}
		items, err := h.catalogService.List(c.Request.Context(), kind, filter)
		if err != nil {
			writeCatalogError(c, err)
			return
		}
		c.JSON(http.StatusOK, ListingsResponse{Items: items, Count: len(items), Configured: h.catalogService.Configured()})
	}
}

func (h *CatalogHandler) get(kind entity.CatalogKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		listing, err := h.catalogService.Get(c.Request.Context(), kind, c.Param("id"))
		if err != nil {
			writeCatalogError(c, err)
			return
		}
		c.JSON(http.StatusOK, listing)
	}
}

func (h *CatalogHandler) forward(kind entity.CatalogKind, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxProxyBodyBytes))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: err.Error()})
			return
		}
		resp, err := h.catalogService.Forward(c.Request.Context(), c.Request.Method, kind, c.Param("id"), action, c.Request.URL.RawQuery, body)
		if err != nil {
			writeError(c, err)
			return
		}
		relay(c, resp)
	}
}

// writeCatalogError relays an upstream catalog status and body as received.
func writeCatalogError(c *gin.Context, err error) {
	var upErr *entity.UpstreamError
	if errors.As(err, &upErr) && upErr.StatusCode != 0 {
		_ = c.Error(err)
		c.Data(upErr.StatusCode, "application/json", []byte(upErr.Body))
		c.Abort()
		return
	}
	writeError(c, err)
}

func relay(c *gin.Context, resp *entity.ProxyResponse) {
	contentType := resp.ContentType
	if contentType == "" {
		contentType = "application/json"
	}
	if len(resp.Body) == 0 {
		c.Status(resp.StatusCode)
		return
	}
	c.Data(resp.StatusCode, contentType, resp.Body)
}
