package cache

import (
	"context"
	"sync"
	"time"

	"github.com/crafterp/accounting/internal/core/domain"
)

type memoryEntry struct {
	accounts  []domain.Account
	expiresAt time.Time
}

// MemoryAccountCache is an in-process AccountListingCache. It is the default
// for single-node deployments and for tests; multi-node deployments should use
// the redis implementation so invalidations propagate.
type MemoryAccountCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
}

// NewMemoryAccountCache creates an in-memory cache with the given entry TTL.
func NewMemoryAccountCache(ttl time.Duration) *MemoryAccountCache {
	return &MemoryAccountCache{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
	}
}

var _ AccountListingCache = (*MemoryAccountCache)(nil)

// Get returns the cached listing for an organization if present and fresh.
func (c *MemoryAccountCache) Get(_ context.Context, organizationID string) ([]domain.Account, bool) {
	c.mu.RLock()
	entry, ok := c.entries[organizationID]
	c.mu.RUnlock()
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	// Copy so callers cannot mutate the cached slice.
	accounts := make([]domain.Account, len(entry.accounts))
	copy(accounts, entry.accounts)
	return accounts, true
}

// Set stores the listing for an organization.
func (c *MemoryAccountCache) Set(_ context.Context, organizationID string, accounts []domain.Account) {
	stored := make([]domain.Account, len(accounts))
	copy(stored, accounts)
	c.mu.Lock()
	c.entries[organizationID] = memoryEntry{
		accounts:  stored,
		expiresAt: time.Now().Add(c.ttl),
	}
	c.mu.Unlock()
}

// Invalidate drops the organization's cached listing.
func (c *MemoryAccountCache) Invalidate(_ context.Context, organizationID string) {
	c.mu.Lock()
	delete(c.entries, organizationID)
	c.mu.Unlock()
}
