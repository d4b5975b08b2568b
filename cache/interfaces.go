// Package cache provides the process-local response cache used by the API client:
// lifetime preferences, their expiration policies and a concurrency-safe store that
// hands out independent copies of what it holds.
package cache

import "time"

// KeyEnabled is the configuration key of the global caching switch.
const KeyEnabled = "Caching_Enabled"

// Cloner is implemented by values that know how to deep-copy themselves.
// Entry.LoadCachedData prefers it over the generic JSON copy.
type Cloner[T any] interface {
	Clone() T
}

// Remover deletes entries by key
type Remover interface {
	Remove(key string)
}

// Inspector exposes diagnostic information about stored entries
type Inspector interface {
	// ItemInfo returns metadata for the stored keys matching any of the filters
	ItemInfo(filters ...string) []CachedItem

	// MaximumSize reports the configured capacity ceiling in bytes
	MaximumSize() int64

	// Len returns the number of live entries
	Len() int
}

// CachedItem describes one stored entry.
type CachedItem struct {
	Name       string     `json:"name"`
	Preference Preference `json:"preference"`
	// Expiration is nil for entries that never expire.
	Expiration *time.Time `json:"expiration,omitempty"`
	InsertedAt time.Time  `json:"insertedAt"`
	IsCached   bool       `json:"isCached"`
}
