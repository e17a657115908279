package cache

// SQL schemas for cache tables
// All cache tables use "cache_key" as the primary key column for consistency

// PlexMetadataCacheSchema defines the schema for Plex item metadata cache
const PlexMetadataCacheSchema = `
CREATE TABLE IF NOT EXISTS plex_metadata_cache (
	cache_key TEXT PRIMARY KEY NOT NULL,
	data TEXT NOT NULL,
	cached_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_plex_metadata_cached_at ON plex_metadata_cache(cached_at);
`

// PlexExtrasCacheSchema defines the schema for Plex extras (trailers, featurettes) cache
const PlexExtrasCacheSchema = `
CREATE TABLE IF NOT EXISTS plex_extras_cache (
	cache_key TEXT PRIMARY KEY NOT NULL,
	data TEXT NOT NULL,
	cached_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_plex_extras_cached_at ON plex_extras_cache(cached_at);
`

// ThumbCacheSchema defines the schema for rendered thumbnail previews
const ThumbCacheSchema = `
CREATE TABLE IF NOT EXISTS thumb_cache (
	cache_key TEXT PRIMARY KEY NOT NULL,
	data TEXT NOT NULL,
	cached_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_thumb_cached_at ON thumb_cache(cached_at);
`

// AllCacheSchemas contains all cache table schemas for easy initialization
var AllCacheSchemas = []string{
	PlexMetadataCacheSchema,
	PlexExtrasCacheSchema,
	ThumbCacheSchema,
}

// ValidCacheTableNames is the whitelist of allowed cache table names
// Used to prevent SQL injection when interpolating table names
var ValidCacheTableNames = map[string]bool{
	"plex_metadata_cache": true,
	"plex_extras_cache":   true,
	"thumb_cache":         true,
}
