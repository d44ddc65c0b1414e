// Package cache provides the per-organization account-listing cache.
// Every chart-of-accounts mutation invalidates the owning organization's
// entry, so listings may be stale only between a write and its invalidation.
package cache

import (
	"context"

	"github.com/crafterp/accounting/internal/core/domain"
)

// AccountListingCache caches full account listings keyed by organization ID.
type AccountListingCache interface {
	// Get returns the cached listing and whether it was present.
	Get(ctx context.Context, organizationID string) ([]domain.Account, bool)

	// Set stores the listing for an organization.
	Set(ctx context.Context, organizationID string, accounts []domain.Account)

	// Invalidate drops the organization's cached listing.
	Invalidate(ctx context.Context, organizationID string)
}
