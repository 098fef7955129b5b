package restapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"strategy_dashboard/internal/domain/entity"
)

// statusClientClosedRequest is used when the caller went away before the response was ready.
const statusClientClosedRequest = 499

// ErrorResponse is the JSON body of every error reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeError maps a service error onto an HTTP status.
func writeError(c *gin.Context, err error) {
	_ = c.Error(err)

	var upErr *entity.UpstreamError
	switch {
	case errors.Is(err, context.Canceled):
		c.AbortWithStatus(statusClientClosedRequest)
	case errors.Is(err, entity.ErrCatalogNotConfigured):
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"configured": false, "error": entity.ErrCatalogNotConfigured.Error()})
	case errors.Is(err, entity.ErrInvalidWalletAddress),
		errors.Is(err, entity.ErrUnknownChain),
		errors.Is(err, entity.ErrInvalidPreference),
		errors.Is(err, entity.ErrInvalidListingID):
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, entity.ErrNotFound), errors.Is(err, entity.ErrUnknownSymbol):
		c.AbortWithStatusJSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, entity.ErrMalformedRecord):
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	case errors.As(err, &upErr):
		c.AbortWithStatusJSON(http.StatusBadGateway, ErrorResponse{Error: upErr.Error()})
	case errors.Is(err, entity.ErrUpstream), errors.Is(err, context.DeadlineExceeded):
		c.AbortWithStatusJSON(http.StatusBadGateway, ErrorResponse{Error: err.Error()})
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}
