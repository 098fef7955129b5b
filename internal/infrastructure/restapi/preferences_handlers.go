package restapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"strategy_dashboard/internal/app/port"
	"strategy_dashboard/internal/domain/entity"
)

// SearchesResponse lists recent searches, most recent first.
type SearchesResponse struct {
	Searches []string `json:"searches"`
}

type addSearchRequest struct {
	Query string `json:"query" binding:"required"`
}

// PreferencesHandler serves per-owner client preferences.
type PreferencesHandler struct {
	preferences port.PreferencesService
}

// NewPreferencesHandler creates a new PreferencesHandler.
func NewPreferencesHandler(ps port.PreferencesService) *PreferencesHandler {
	return &PreferencesHandler{preferences: ps}
}

func (h *PreferencesHandler) GetProfile(c *gin.Context) {
	p, err := h.preferences.Profile(c.Request.Context(), c.Param("owner"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *PreferencesHandler) PutProfile(c *gin.Context) {
	var p entity.Profile
	if err := c.ShouldBindJSON(&p); err != nil {
		badRequest(c, "invalid profile body: "+err.Error())
		return
	}
	saved, err := h.preferences.SaveProfile(c.Request.Context(), c.Param("owner"), p)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

func (h *PreferencesHandler) GetSearches(c *gin.Context) {
	searches, err := h.preferences.RecentSearches(c.Request.Context(), c.Param("owner"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, SearchesResponse{Searches: searches})
}

func (h *PreferencesHandler) AddSearch(c *gin.Context) {
	var req addSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "body must be {\"query\": \"...\"}")
		return
	}
	searches, err := h.preferences.AddRecentSearch(c.Request.Context(), c.Param("owner"), req.Query)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, SearchesResponse{Searches: searches})
}

func (h *PreferencesHandler) ClearSearches(c *gin.Context) {
	if err := h.preferences.ClearRecentSearches(c.Request.Context(), c.Param("owner")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
