package cache

import (
	"bytes"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"
)

// ErrInvalidKey is returned when an entry is written without a key.
var ErrInvalidKey = errors.New("cache: a non-empty key is required")

const (
	// DefaultMaxBytes is the capacity ceiling reported when none is configured.
	DefaultMaxBytes int64 = 64 << 20
	// DefaultCleanupInterval is how often the janitor purges expired entries.
	DefaultCleanupInterval = 5 * time.Minute
)

// record is the metadata kept for every stored key.
type record struct {
	pref       Preference
	policy     Policy
	insertedAt time.Time
	expiresAt  time.Time
	expires    bool
	size       int
}

func (r *record) expired(now time.Time) bool {
	return r.expires && !now.Before(r.expiresAt)
}

// Store is an in-memory key/value store for encoded entries. Values are kept in
// their JSON form so a reader can never reach the store's own copy. All operations
// take one coarse lock: reads included, because a sliding read renews its window.
type Store struct {
	mu    sync.Mutex
	items *gocache.Cache
	meta  map[string]*record

	settings        Settings
	maxEntries      int
	maxBytes        int64
	cleanupInterval time.Duration
	now             func() time.Time
	log             zerolog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for cache diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithClock replaces time.Now for expiration bookkeeping.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithMaxEntries caps the number of entries; 0 means unlimited. Permanent entries
// are never evicted to honor the cap.
func WithMaxEntries(n int) Option {
	return func(s *Store) { s.maxEntries = n }
}

// WithMaxBytes sets the capacity ceiling reported by MaximumSize.
func WithMaxBytes(n int64) Option {
	return func(s *Store) {
		if n > 0 {
			s.maxBytes = n
		}
	}
}

// WithCleanupInterval sets how often expired entries are purged in the background.
func WithCleanupInterval(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.cleanupInterval = d
		}
	}
}

// NewStore creates a store governed by settings.
func NewStore(settings Settings, opts ...Option) *Store {
	s := &Store{
		meta:            make(map[string]*record),
		settings:        settings,
		maxBytes:        DefaultMaxBytes,
		cleanupInterval: DefaultCleanupInterval,
		now:             time.Now,
		log:             zerolog.Nop(),
	}
	for _, o := range opts {
		o(s)
	}
	s.items = gocache.New(gocache.NoExpiration, s.cleanupInterval)
	return s
}

// Enabled reports the global caching switch.
func (s *Store) Enabled() bool {
	return s != nil && s.settings.Enabled
}

// Settings returns the settings the store was created with.
func (s *Store) Settings() Settings {
	if s == nil {
		return Settings{}
	}
	return s.settings
}

// MaximumSize reports the configured capacity ceiling in bytes.
func (s *Store) MaximumSize() int64 {
	if s == nil {
		return 0
	}
	return s.maxBytes
}

// Len returns the number of live entries.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruneLocked(s.now())
	return len(s.meta)
}

// Remove deletes key. Blank or unknown keys and a disabled store are no-ops.
func (s *Store) Remove(key string) {
	if !s.Enabled() {
		if s != nil {
			s.log.Debug().Str("key", key).Msg("skipped cache remove, caching disabled")
		}
		return
	}
	if strings.TrimSpace(key) == "" {
		s.log.Debug().Msg("skipped cache remove for blank key")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.meta[key]; !ok {
		s.log.Debug().Str("key", key).Msg("cache remove: key not present")
		return
	}
	s.deleteLocked(key)
	s.log.Debug().Str("key", key).Msg("removed from cache")
}

// ItemInfo returns metadata for stored keys equal (case-insensitively) to any of
// the filters, sorted by name. It returns nil when no filters are given.
func (s *Store) ItemInfo(filters ...string) []CachedItem {
	if s == nil || len(filters) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruneLocked(s.now())

	info := make([]CachedItem, 0, len(filters))
	for key, rec := range s.meta {
		if !matchesAny(key, filters) {
			continue
		}
		item := CachedItem{
			Name:       key,
			Preference: rec.pref,
			InsertedAt: rec.insertedAt,
			IsCached:   true,
		}
		if rec.expires {
			exp := rec.expiresAt
			item.Expiration = &exp
		}
		info = append(info, item)
	}
	sort.Slice(info, func(i, j int) bool { return info[i].Name < info[j].Name })
	return info
}

// Flush removes every entry.
func (s *Store) Flush() {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items.Flush()
	s.meta = make(map[string]*record)
}

// get returns the encoded value under key, renewing sliding entries.
func (s *Store) get(key string) ([]byte, Preference, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.meta[key]
	if !ok {
		return nil, Default, false
	}
	now := s.now()
	if rec.expired(now) {
		s.deleteLocked(key)
		return nil, Default, false
	}
	v, found := s.items.Get(key)
	if !found {
		// reclaimed by the janitor
		delete(s.meta, key)
		return nil, Default, false
	}
	raw, ok := v.([]byte)
	if !ok {
		s.deleteLocked(key)
		return nil, Default, false
	}
	if rec.policy.Kind == Sliding {
		rec.expiresAt = now.Add(rec.policy.Window)
		s.items.Set(key, raw, rec.policy.Window)
	}
	return raw, rec.pref, true
}

// removeIfUnchanged deletes key only while it still holds raw, so a value
// written since raw was read survives.
func (s *Store) removeIfUnchanged(key string, raw []byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.meta[key]; !ok {
		return false
	}
	v, found := s.items.Get(key)
	if cur, ok := v.([]byte); found && ok && !bytes.Equal(cur, raw) {
		return false
	}
	s.deleteLocked(key)
	return true
}

// set stores raw under key, replacing any previous entry.
func (s *Store) set(key string, raw []byte, pref Preference) {
	policy, ok := s.settings.Policy(pref)
	if !ok {
		s.log.Warn().
			Str("key", key).
			Stringer("preference", pref).
			Dur("window", policy.Window).
			Msg("no cache duration configured for preference, using fallback policy")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if _, exists := s.meta[key]; !exists && s.maxEntries > 0 && len(s.meta) >= s.maxEntries {
		s.pruneLocked(now)
		if len(s.meta) >= s.maxEntries {
			s.evictLocked()
		}
	}

	rec := &record{
		pref:       pref,
		policy:     policy,
		insertedAt: now,
		size:       len(raw),
	}
	rec.expiresAt, rec.expires = policy.ExpiresAt(now)

	ttl := gocache.NoExpiration
	if rec.expires {
		ttl = policy.Window
	}
	s.items.Set(key, raw, ttl)
	s.meta[key] = rec

	s.log.Debug().
		Str("key", key).
		Stringer("preference", pref).
		Stringer("expiration", policy.Kind).
		Int("bytes", len(raw)).
		Msg("updated cache")
}

// evictLocked drops the non-permanent entry closest to expiring.
func (s *Store) evictLocked() {
	var victim string
	var soonest time.Time
	for key, rec := range s.meta {
		if !rec.expires {
			continue
		}
		if victim == "" || rec.expiresAt.Before(soonest) {
			victim, soonest = key, rec.expiresAt
		}
	}
	if victim == "" {
		s.log.Warn().Int("max_entries", s.maxEntries).Msg("cache over capacity but every entry is permanent")
		return
	}
	s.deleteLocked(victim)
	s.log.Debug().Str("key", victim).Msg("evicted from cache")
}

func (s *Store) pruneLocked(now time.Time) {
	for key, rec := range s.meta {
		if rec.expired(now) {
			s.deleteLocked(key)
			continue
		}
		if _, found := s.items.Get(key); !found {
			delete(s.meta, key)
		}
	}
}

func (s *Store) deleteLocked(key string) {
	s.items.Delete(key)
	delete(s.meta, key)
}

func matchesAny(key string, filters []string) bool {
	for _, f := range filters {
		if strings.EqualFold(key, f) {
			return true
		}
	}
	return false
}
