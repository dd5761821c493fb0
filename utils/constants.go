// File: utils/constants.go
package utils

import "time"

// SearchCachePrefix is the prefix for cached provider-list entries. Every
// key under it belongs to the "provider lists" tag and is dropped together
// on list invalidation.
const SearchCachePrefix = "search:list:"

// SearchCacheTTL bounds the lifetime of a cached result page. Entries are
// normally replaced by explicit refetch, not expiry; the TTL is a backstop.
const SearchCacheTTL = 15 * time.Minute

// SessionTTL is the time-to-live for search-session state.
const SessionTTL = 30 * time.Minute

// GeoCachePrefix is the prefix for reverse-geocode cache keys.
const GeoCachePrefix = "geo:rev:"

// GeoCacheTTL is the time-to-live for reverse-geocode entries.
const GeoCacheTTL = 24 * time.Hour
