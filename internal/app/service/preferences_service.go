package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"strategy_dashboard/internal/app/port"
	"strategy_dashboard/internal/domain/entity"
)

const maxOwnerLength = 128

// PreferenceHooks are the persistence primitives of the preferences service.
type PreferenceHooks struct {
	Load   func(ctx context.Context, key string) ([]byte, bool, error)
	Save   func(ctx context.Context, key string, value []byte) error
	Delete func(ctx context.Context, key string) error
}

// HooksFromStore adapts a port.KVStore into PreferenceHooks.
func HooksFromStore(store port.KVStore) PreferenceHooks {
	return PreferenceHooks{Load: store.Load, Save: store.Save, Delete: store.Delete}
}

// PreferencesServiceImpl implements port.PreferencesService.
type PreferencesServiceImpl struct {
	hooks  PreferenceHooks
	logger port.Logger
	now    func() time.Time
	mu     sync.Mutex // serialises read-modify-write of recent searches
}

var _ port.PreferencesService = (*PreferencesServiceImpl)(nil)

// NewPreferencesService creates a new instance of PreferencesServiceImpl.
func NewPreferencesService(hooks PreferenceHooks, logger port.Logger) *PreferencesServiceImpl {
	return &PreferencesServiceImpl{hooks: hooks, logger: logger, now: time.Now}
}

// ownerKey normalises wallet-address owners so that keys do not depend on address case.
func ownerKey(owner string) (string, error) {
	owner = strings.TrimSpace(owner)
	if owner == "" || len(owner) > maxOwnerLength {
		return "", fmt.Errorf("%w: owner must be 1-%d characters", entity.ErrInvalidPreference, maxOwnerLength)
	}
	if normalized, err := entity.NormalizeWalletAddress(owner); err == nil {
		return normalized, nil
	}
	return owner, nil
}

func (s *PreferencesServiceImpl) load(ctx context.Context, key string, out any) (bool, error) {
	data, found, err := s.hooks.Load(ctx, key)
	if err != nil || !found {
		return false, err
	}
	if err := json.Unmarshal(data, out); err != nil {
		s.logger.Warn("Discarding unreadable preference", "key", key, "error", err)
		return false, nil
	}
	return true, nil
}

func (s *PreferencesServiceImpl) save(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.hooks.Save(ctx, key, data)
}

// Profile implements port.PreferencesService. An owner without a profile gets the zero Profile.
func (s *PreferencesServiceImpl) Profile(ctx context.Context, owner string) (entity.Profile, error) {
	owner, err := ownerKey(owner)
	if err != nil {
		return entity.Profile{}, err
	}
	var p entity.Profile
	if _, err := s.load(ctx, "profile:"+owner, &p); err != nil {
		return entity.Profile{}, err
	}
	return p, nil
}

// SaveProfile implements port.PreferencesService.
func (s *PreferencesServiceImpl) SaveProfile(ctx context.Context, owner string, p entity.Profile) (entity.Profile, error) {
	owner, err := ownerKey(owner)
	if err != nil {
		return entity.Profile{}, err
	}
	p.DisplayName = strings.TrimSpace(p.DisplayName)
	p.AvatarURL = strings.TrimSpace(p.AvatarURL)
	if utf8.RuneCountInString(p.DisplayName) > entity.MaxDisplayNameLength {
		return entity.Profile{}, fmt.Errorf("%w: display name longer than %d characters", entity.ErrInvalidPreference, entity.MaxDisplayNameLength)
	}
	if p.AvatarURL != "" {
		u, err := url.Parse(p.AvatarURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return entity.Profile{}, fmt.Errorf("%w: avatar url must be an absolute http(s) url", entity.ErrInvalidPreference)
		}
	}
	p.UpdatedAt = s.now().UTC()
	if err := s.save(ctx, "profile:"+owner, p); err != nil {
		return entity.Profile{}, err
	}
	s.logger.Debug("Profile saved", "owner", owner)
	return p, nil
}

// RecentSearches implements port.PreferencesService. Most recent first.
func (s *PreferencesServiceImpl) RecentSearches(ctx context.Context, owner string) ([]string, error) {
	owner, err := ownerKey(owner)
	if err != nil {
		return nil, err
	}
	searches := []string{}
	if _, err := s.load(ctx, "searches:"+owner, &searches); err != nil {
		return nil, err
	}
	return searches, nil
}

// AddRecentSearch implements port.PreferencesService. The query moves to the front,
// replacing any case-insensitive duplicate; the history is capped at entity.MaxRecentSearches.
func (s *PreferencesServiceImpl) AddRecentSearch(ctx context.Context, owner, query string) ([]string, error) {
	owner, err := ownerKey(owner)
	if err != nil {
		return nil, err
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: empty search query", entity.ErrInvalidPreference)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var current []string
	if _, err := s.load(ctx, "searches:"+owner, &current); err != nil {
		return nil, err
	}
	updated := make([]string, 0, entity.MaxRecentSearches)
	updated = append(updated, query)
	for _, q := range current {
		if len(updated) == entity.MaxRecentSearches {
			break
		}
		if !strings.EqualFold(q, query) {
			updated = append(updated, q)
		}
	}
	if err := s.save(ctx, "searches:"+owner, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// ClearRecentSearches implements port.PreferencesService.
func (s *PreferencesServiceImpl) ClearRecentSearches(ctx context.Context, owner string) error {
	owner, err := ownerKey(owner)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hooks.Delete(ctx, "searches:"+owner)
}
