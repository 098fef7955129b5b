package entity

import (
	"encoding/json"
	"time"
)

// CatalogKind names a catalog collection.
type CatalogKind string

const (
	CatalogStrategies CatalogKind = "strategies"
	CatalogAgents     CatalogKind = "agents"
)

// Valid reports whether k is a known collection.
func (k CatalogKind) Valid() bool {
	return k == CatalogStrategies || k == CatalogAgents
}

// Listing is a marketplace record (a strategy or an agent) as served by the catalog.
// Graph holds the builder's node graph verbatim; the dashboard never interprets it.
type Listing struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	RiskLevel   string          `json:"risk_level"`
	Chains      []string        `json:"chains"`
	Protocols   []string        `json:"protocols,omitempty"`
	TVL         float64         `json:"tvl"`
	APY         float64         `json:"apy"`
	Subscribers int             `json:"subscribers"`
	Creator     string          `json:"creator"`
	StrategyID  string          `json:"strategy_id,omitempty"` // agents only
	Status      string          `json:"status,omitempty"`
	Graph       json.RawMessage `json:"graph,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ListingSort orders marketplace results.
type ListingSort string

const (
	SortTVL         ListingSort = "tvl"
	SortAPY         ListingSort = "apy"
	SortName        ListingSort = "name"
	SortSubscribers ListingSort = "subscribers"
	SortNewest      ListingSort = "newest"
)

// Valid reports whether s is a known sort order. The empty sort keeps upstream order.
func (s ListingSort) Valid() bool {
	switch s {
	case "", SortTVL, SortAPY, SortName, SortSubscribers, SortNewest:
		return true
	}
	return false
}

// ListingFilter is the marketplace search/filter query.
type ListingFilter struct {
	Query    string
	Category string
	Risk     string
	Chain    string
	Sort     ListingSort
}

// ProxyResponse is an upstream catalog response relayed verbatim.
type ProxyResponse struct {
	StatusCode  int
	ContentType string
	Body        []byte
}
