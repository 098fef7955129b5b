package entity

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidWalletAddress is returned before any fetch when the wallet address is not a 0x-prefixed 20-byte hex string.
	ErrInvalidWalletAddress = errors.New("invalid wallet address")
	// ErrUnknownChain is returned when a chain filter names a chain id outside the chain table.
	ErrUnknownChain = errors.New("unknown chain id")
	// ErrMalformedRecord marks structurally invalid upstream records.
	ErrMalformedRecord = errors.New("malformed record")
	// ErrCatalogNotConfigured is returned by catalog mutations when no catalog base URL is set.
	ErrCatalogNotConfigured = errors.New("catalog service not configured")
	// ErrNotFound is returned for unknown catalog items in mock mode.
	ErrNotFound = errors.New("not found")
	// ErrUnknownSymbol is returned when the market-data provider has no coin for a symbol.
	ErrUnknownSymbol = errors.New("unknown symbol")
	// ErrUpstream wraps transport and non-2xx failures of upstream APIs.
	ErrUpstream = errors.New("upstream request failed")
	// ErrFeedNotConfigured is returned by feeds that have no credentials.
	ErrFeedNotConfigured = errors.New("feed not configured")
	// ErrInvalidPreference is returned for rejected preference writes.
	ErrInvalidPreference = errors.New("invalid preference")
	// ErrInvalidListingID is returned for catalog ids that cannot name a single listing.
	ErrInvalidListingID = errors.New("invalid listing id")
)

// MalformedRecordError identifies the upstream record that could not be aggregated.
type MalformedRecordError struct {
	Entity string // "balance", "position", ...
	Index  int
	Key    string
	Field  string
	Err    error
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed %s record #%d (%s): field %q: %v", e.Entity, e.Index, e.Key, e.Field, e.Err)
}

// Unwrap lets errors.Is match both ErrMalformedRecord and the underlying parse error.
func (e *MalformedRecordError) Unwrap() []error {
	return []error{ErrMalformedRecord, e.Err}
}

// UpstreamError carries the status and body of a failed upstream call.
type UpstreamError struct {
	Upstream   string
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s: %s", e.Upstream, e.Body)
	}
	return fmt.Sprintf("%s: status %d: %s", e.Upstream, e.StatusCode, e.Body)
}

func (e *UpstreamError) Unwrap() error { return ErrUpstream }
