package auth

import (
	"context"
	"time"

	"biblioteca/internal/cache"
)

const blacklistKeyPrefix = "blacklist:token:"

// TokenStoreInterface defines revocation storage for issued tokens.
type TokenStoreInterface interface {
	BlacklistToken(ctx context.Context, tokenID string, ttl time.Duration) error
	IsBlacklisted(ctx context.Context, tokenID string) (bool, error)
}

// TokenStore keeps revoked token IDs in Redis until they would have expired
// anyway. Logout blacklists the presented token; the auth middleware rejects
// blacklisted tokens.
type TokenStore struct {
	cache *cache.Client
}

var _ TokenStoreInterface = (*TokenStore)(nil)

// NewTokenStore creates a new token store.
func NewTokenStore(cache *cache.Client) *TokenStore {
	return &TokenStore{cache: cache}
}

// BlacklistToken marks a token ID as revoked for the given TTL.
func (s *TokenStore) BlacklistToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	return s.cache.Set(ctx, blacklistKeyPrefix+tokenID, []byte("1"), ttl)
}

// IsBlacklisted checks whether a token ID has been revoked. Lookup failures
// count as not blacklisted: a redis outage keeps authenticated traffic
// flowing, at the cost of re-admitting logged-out tokens until they expire.
func (s *TokenStore) IsBlacklisted(ctx context.Context, tokenID string) (bool, error) {
	data, err := s.cache.Get(ctx, blacklistKeyPrefix+tokenID)
	if err != nil {
		return false, nil // fail safe: treat lookup errors as not blacklisted
	}
	return data != nil, nil
}
