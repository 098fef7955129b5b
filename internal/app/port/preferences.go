package port

import (
	"context"

	"strategy_dashboard/internal/domain/entity"
)

// KVStore is the persistence backend behind client preferences.
type KVStore interface {
	Load(ctx context.Context, key string) (value []byte, found bool, err error)
	Save(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// PreferencesService keeps per-owner recent searches and profile.
type PreferencesService interface {
	Profile(ctx context.Context, owner string) (entity.Profile, error)
	SaveProfile(ctx context.Context, owner string, p entity.Profile) (entity.Profile, error)
	RecentSearches(ctx context.Context, owner string) ([]string, error)
	AddRecentSearch(ctx context.Context, owner, query string) ([]string, error)
	ClearRecentSearches(ctx context.Context, owner string) error
}
