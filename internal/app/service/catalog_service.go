package service

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"strategy_dashboard/internal/app/port"
	"strategy_dashboard/internal/domain/entity"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// MockListings supplies catalog reads while the remote catalog is not configured.
type MockListings func(kind entity.CatalogKind) []entity.Listing

// CatalogServiceImpl implements port.CatalogService on top of the catalog proxy.
type CatalogServiceImpl struct {
	client port.CatalogClient
	mock   MockListings
	logger *zap.Logger
}

var _ port.CatalogService = (*CatalogServiceImpl)(nil)

// NewCatalogService creates a new instance of CatalogServiceImpl.
func NewCatalogService(client port.CatalogClient, mock MockListings, logger *zap.Logger) *CatalogServiceImpl {
	return &CatalogServiceImpl{client: client, mock: mock, logger: logger.Named("CatalogService")}
}

// Configured implements port.CatalogService.
func (s *CatalogServiceImpl) Configured() bool {
	return s.client != nil && s.client.Configured()
}

// List implements port.CatalogService. Filtering and sorting apply to live and mock data alike.
func (s *CatalogServiceImpl) List(ctx context.Context, kind entity.CatalogKind, filter entity.ListingFilter) ([]entity.Listing, error) {
	var listings []entity.Listing
	if !s.Configured() {
		if s.mock != nil {
			listings = s.mock(kind)
		}
	} else {
		resp, err := s.client.Do(ctx, http.MethodGet, "/"+string(kind), "", nil)
		if err != nil {
			return nil, err
		}
		if err := upstreamStatus(resp); err != nil {
			return nil, err
		}
		listings, err = decodeListings(resp.Body)
		if err != nil {
			return nil, err
		}
	}
	out := FilterListings(listings, filter)
	s.logger.Debug("Listed catalog", zap.String("kind", string(kind)), zap.Int("total", len(listings)), zap.Int("matched", len(out)))
	return out, nil
}

// listingIDPattern admits uuids and slugs. A leading alphanumeric rules out "." and "..".
var listingIDPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._:~-]{0,127}$`)

// listingPath builds the upstream path of a collection, one of its listings, or an action on it.
// Route parameters arrive URL-decoded, so ids are validated before they become path segments.
func listingPath(kind entity.CatalogKind, id, action string) (string, error) {
	path := "/" + string(kind)
	if id == "" {
		return path, nil
	}
	if !listingIDPattern.MatchString(id) {
		return "", fmt.Errorf("%w: %q", entity.ErrInvalidListingID, id)
	}
	path += "/" + url.PathEscape(id)
	if action != "" {
		path += "/" + action
	}
	return path, nil
}

// Get implements port.CatalogService.
func (s *CatalogServiceImpl) Get(ctx context.Context, kind entity.CatalogKind, id string) (*entity.Listing, error) {
	path, err := listingPath(kind, id, "")
	if err != nil {
		return nil, err
	}
	if !s.Configured() {
		if s.mock != nil {
			for _, l := range s.mock(kind) {
				if l.ID == id {
					return &l, nil
				}
			}
		}
		return nil, fmt.Errorf("%w: %s %s", entity.ErrNotFound, kind, id)
	}

	resp, err := s.client.Do(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s %s", entity.ErrNotFound, kind, id)
	}
	if err := upstreamStatus(resp); err != nil {
		return nil, err
	}
	var l entity.Listing
	if err := json.Unmarshal(unwrapData(resp.Body), &l); err != nil {
		return nil, fmt.Errorf("%w: catalog: decode %s %s: %v", entity.ErrUpstream, kind, id, err)
	}
	return &l, nil
}

// Forward implements port.CatalogService. The upstream response is returned whatever its status.
func (s *CatalogServiceImpl) Forward(ctx context.Context, method string, kind entity.CatalogKind, id, action, rawQuery string, body []byte) (*entity.ProxyResponse, error) {
	if !s.Configured() {
		return nil, entity.ErrCatalogNotConfigured
	}
	path, err := listingPath(kind, id, action)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Forwarding catalog mutation", zap.String("method", method), zap.String("path", path))
	return s.client.Do(ctx, method, path, rawQuery, body)
}

func upstreamStatus(resp *entity.ProxyResponse) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	return &entity.UpstreamError{Upstream: "catalog", StatusCode: resp.StatusCode, Body: string(resp.Body)}
}

// unwrapData accepts both a bare document and one wrapped as {"data": ...}.
func unwrapData(body []byte) []byte {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return trimmed
	}
	var wrapper struct {
		Data  jsoniter.RawMessage `json:"data"`
		Items jsoniter.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(trimmed, &wrapper); err != nil {
		return trimmed
	}
	switch {
	case len(wrapper.Data) > 0:
		return wrapper.Data
	case len(wrapper.Items) > 0:
		return wrapper.Items
	}
	return trimmed
}

func decodeListings(body []byte) ([]entity.Listing, error) {
	var listings []entity.Listing
	if err := json.Unmarshal(unwrapData(body), &listings); err != nil {
		return nil, fmt.Errorf("%w: catalog: decode listings: %v", entity.ErrUpstream, err)
	}
	return listings, nil
}

// FilterListings applies search, filters and sort order without modifying listings.
func FilterListings(listings []entity.Listing, f entity.ListingFilter) []entity.Listing {
	query := strings.ToLower(strings.TrimSpace(f.Query))
	out := make([]entity.Listing, 0, len(listings))
	for _, l := range listings {
		if f.Category != "" && !strings.EqualFold(l.Category, f.Category) {
			continue
		}
		if f.Risk != "" && !strings.EqualFold(l.RiskLevel, f.Risk) {
			continue
		}
		if f.Chain != "" && !containsFold(l.Chains, f.Chain) {
			continue
		}
		if query != "" && !matchesQuery(l, query) {
			continue
		}
		out = append(out, l)
	}

	var less func(a, b entity.Listing) bool
	switch f.Sort {
	case entity.SortTVL:
		less = func(a, b entity.Listing) bool { return a.TVL > b.TVL }
	case entity.SortAPY:
		less = func(a, b entity.Listing) bool { return a.APY > b.APY }
	case entity.SortSubscribers:
		less = func(a, b entity.Listing) bool { return a.Subscribers > b.Subscribers }
	case entity.SortNewest:
		less = func(a, b entity.Listing) bool { return a.CreatedAt.After(b.CreatedAt) }
	case entity.SortName:
		less = func(a, b entity.Listing) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) }
	}
	if less != nil {
		sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	}
	return out
}

func matchesQuery(l entity.Listing, query string) bool {
	if strings.Contains(strings.ToLower(l.Name), query) ||
		strings.Contains(strings.ToLower(l.Description), query) ||
		strings.Contains(strings.ToLower(l.Category), query) {
		return true
	}
	for _, p := range l.Protocols {
		if strings.Contains(strings.ToLower(p), query) {
			return true
		}
	}
	return false
}

func containsFold(items []string, want string) bool {
	for _, it := range items {
		if strings.EqualFold(it, want) {
			return true
		}
	}
	return false
}
