package cache

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Read loads the entry stored under key as a T. A disabled store, a missing or
// expired key, or an undecodable value all yield an empty entry.
func Read[T any](s *Store, key string) Entry[T] {
	var empty Entry[T]
	if !s.Enabled() {
		if s != nil {
			s.log.Debug().Str("key", key).Msg("skipped cache read, caching disabled")
		}
		return empty
	}
	if strings.TrimSpace(key) == "" {
		return empty
	}

	raw, pref, ok := s.get(key)
	if !ok {
		s.log.Debug().Str("key", key).Msg("cache miss")
		return empty
	}

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		if s.removeIfUnchanged(key, raw) {
			s.log.Warn().Err(err).Str("key", key).Msg("dropped undecodable cache entry")
		}
		return empty
	}
	s.log.Debug().Str("key", key).Stringer("preference", pref).Msg("cache hit")
	return NewEntry(&v, pref)
}

// Set stores entry under key, replacing whatever was there. It is a no-op when
// caching is disabled; an empty entry removes the key.
func Set[T any](s *Store, key string, entry Entry[T]) error {
	if !s.Enabled() {
		if s != nil {
			s.log.Debug().Str("key", key).Msg("skipped cache write, caching disabled")
		}
		return nil
	}
	if strings.TrimSpace(key) == "" {
		return ErrInvalidKey
	}
	if !entry.CacheHit() {
		s.Remove(key)
		return nil
	}

	raw, err := json.Marshal(*entry.data)
	if err != nil {
		return fmt.Errorf("cache: encode %q: %w", key, err)
	}
	s.set(key, raw, entry.Preference)
	return nil
}
