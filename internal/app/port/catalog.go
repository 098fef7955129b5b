package port

import (
	"context"

	"strategy_dashboard/internal/domain/entity"
)

// CatalogClient proxies catalog operations to the remote catalog service.
type CatalogClient interface {
	// Do forwards method/path/query/body verbatim and returns the upstream response.
	Do(ctx context.Context, method, path, rawQuery string, body []byte) (*entity.ProxyResponse, error)
	Configured() bool
}

// CatalogService serves the strategy and agent marketplace.
type CatalogService interface {
	List(ctx context.Context, kind entity.CatalogKind, filter entity.ListingFilter) ([]entity.Listing, error)
	Get(ctx context.Context, kind entity.CatalogKind, id string) (*entity.Listing, error)
	// Forward relays a mutation (create/update/delete/subscribe) to the catalog service.
	// id and action are optional path segments below the collection.
	Forward(ctx context.Context, method string, kind entity.CatalogKind, id, action, rawQuery string, body []byte) (*entity.ProxyResponse, error)
	Configured() bool
}
