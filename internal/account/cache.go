package account

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/IdleYard_Go/internal/domain"
)

// CacheSchemaVersion is the current version of the cache schema.
// Increment this when the cached data structure changes to auto-invalidate
// old entries.
const CacheSchemaVersion = "1.0"

// cachedAccountEntry wraps an account with version metadata for cache
// invalidation
type cachedAccountEntry struct {
	Version  string          `json:"version"`
	Account  *domain.Account `json:"account"`
	CachedAt time.Time       `json:"cached_at"`
}

// accountCache provides an in-memory LRU cache for account lookups with
// time-based expiration. Accounts are immutable after registration, so a
// short TTL is enough to bound staleness.
type accountCache struct {
	lru *expirable.LRU[string, *cachedAccountEntry]
}

// newAccountCache creates a new account cache with the specified size and TTL
func newAccountCache(size int, ttl time.Duration) *accountCache {
	return &accountCache{
		lru: expirable.NewLRU[string, *cachedAccountEntry](size, nil, ttl),
	}
}

// Get retrieves an account from the cache
func (c *accountCache) Get(accountID string) (*domain.Account, bool) {
	entry, found := c.lru.Get(accountID)
	if !found {
		return nil, false
	}

	if entry.Version != CacheSchemaVersion {
		c.lru.Remove(accountID)
		return nil, false
	}

	return entry.Account, true
}

// Set stores an account in the cache with the current schema version
func (c *accountCache) Set(accountID string, acct *domain.Account) {
	c.lru.Add(accountID, &cachedAccountEntry{
		Version:  CacheSchemaVersion,
		Account:  acct,
		CachedAt: time.Now(),
	})
}

// Invalidate removes an account from the cache
func (c *accountCache) Invalidate(accountID string) {
	c.lru.Remove(accountID)
}

// Clear removes all entries from the cache
func (c *accountCache) Clear() {
	c.lru.Purge()
}
