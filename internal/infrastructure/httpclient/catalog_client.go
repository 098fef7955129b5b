package httpclient

import (
	"context"

	"go.uber.org/zap"

	"strategy_dashboard/internal/app/port"
	"strategy_dashboard/internal/domain/entity"
)

const catalogUpstreamName = "catalog"

// CatalogClient relays catalog requests verbatim to the remote catalog service.
type CatalogClient struct {
	up      *upstream
	baseURL string
}

var _ port.CatalogClient = (*CatalogClient)(nil)

// NewCatalogClient creates a catalog proxy. An empty opts.BaseURL leaves it unconfigured.
func NewCatalogClient(opts UpstreamOptions, apiKey string, logger *zap.Logger) *CatalogClient {
	headers := map[string]string{}
	for k, v := range opts.Headers {
		headers[k] = v
	}
	if apiKey != "" {
		headers["Authorization"] = "Bearer " + apiKey
	}
	opts.Headers = headers
	return &CatalogClient{up: newUpstream(catalogUpstreamName, opts, logger), baseURL: opts.BaseURL}
}

// Configured implements port.CatalogClient.
func (c *CatalogClient) Configured() bool { return c.baseURL != "" }

// Do implements port.CatalogClient. Any upstream status is returned as a response, not an error.
func (c *CatalogClient) Do(ctx context.Context, method, path, rawQuery string, body []byte) (*entity.ProxyResponse, error) {
	if !c.Configured() {
		return nil, entity.ErrCatalogNotConfigured
	}
	resp, err := c.up.do(ctx, method, path, rawQuery, body)
	if err != nil {
		return nil, err
	}
	return &entity.ProxyResponse{StatusCode: resp.StatusCode, ContentType: resp.ContentType, Body: resp.Body}, nil
}
