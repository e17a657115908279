package plex

import (
	"context"

	"github.com/mvartia/plexwatch/internal/cache"
)

// CachedMetadata wraps a metadata entry for cache storage. NotFound marks a
// negative entry so missing items are not re-fetched on every screen open.
type CachedMetadata struct {
	Metadata *Metadata `json:"metadata"`
	NotFound bool      `json:"not_found"`
}

// CachedExtras wraps an extras list for cache storage.
type CachedExtras struct {
	Extras   []Metadata `json:"extras"`
	NotFound bool       `json:"not_found"`
}

// CachedGetMetadata fetches item metadata through the sqlite cache.
// Returns the metadata, whether it came from cache, and any error.
func (c *Client) CachedGetMetadata(ctx context.Context, ratingKey string) (*Metadata, bool, error) {
	cached, fromCache, err := cache.GetOrFetchWithTTL("plex_metadata_cache", ratingKey,
		func() (*CachedMetadata, error) {
			meta, err := c.GetMetadata(ctx, ratingKey)
			if err != nil {
				if IsNotFound(err) {
					return &CachedMetadata{NotFound: true}, nil
				}
				return nil, err
			}
			return &CachedMetadata{Metadata: meta}, nil
		},
		cache.SelectNegativeCacheTTL(func(r *CachedMetadata) bool {
			return r.NotFound
		}))
	if err != nil {
		return nil, false, err
	}
	if cached.NotFound {
		return nil, fromCache, ErrNotFound
	}
	return cached.Metadata, fromCache, nil
}

// CachedGetExtras fetches an item's extras through the sqlite cache.
func (c *Client) CachedGetExtras(ctx context.Context, ratingKey string) ([]Metadata, bool, error) {
	cached, fromCache, err := cache.GetOrFetchWithTTL("plex_extras_cache", ratingKey,
		func() (*CachedExtras, error) {
			extras, err := c.GetExtras(ctx, ratingKey)
			if err != nil {
				if IsNotFound(err) {
					return &CachedExtras{NotFound: true}, nil
				}
				return nil, err
			}
			return &CachedExtras{Extras: extras}, nil
		},
		cache.SelectNegativeCacheTTL(func(r *CachedExtras) bool {
			return r.NotFound
		}))
	if err != nil {
		return nil, false, err
	}
	if cached.NotFound {
		return nil, fromCache, ErrNotFound
	}
	return cached.Extras, fromCache, nil
}
