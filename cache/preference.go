package cache

import (
	"fmt"
	"strings"
	"time"
)

// Preference is an abstract cache lifetime intent. It is resolved to a concrete
// expiration Policy through Settings.
type Preference int

const (
	Default Preference = iota
	ShortLived
	ShortLivedSliding
	Extended
	ExtendedSliding
	LongTerm
	LongTermSliding
	Permanent
)

var preferenceNames = [...]string{
	Default:           "Default",
	ShortLived:        "ShortLived",
	ShortLivedSliding: "ShortLivedSliding",
	Extended:          "Extended",
	ExtendedSliding:   "ExtendedSliding",
	LongTerm:          "LongTerm",
	LongTermSliding:   "LongTermSliding",
	Permanent:         "Permanent",
}

func (p Preference) String() string {
	if p < 0 || int(p) >= len(preferenceNames) {
		return fmt.Sprintf("Preference(%d)", int(p))
	}
	return preferenceNames[p]
}

// Preferences returns every known preference in declaration order.
func Preferences() []Preference {
	out := make([]Preference, 0, len(preferenceNames))
	for i := range preferenceNames {
		out = append(out, Preference(i))
	}
	return out
}

// ParsePreference maps a configuration name (case-insensitive) to its Preference.
func ParsePreference(name string) (Preference, error) {
	name = strings.TrimSpace(name)
	for i, n := range preferenceNames {
		if strings.EqualFold(n, name) {
			return Preference(i), nil
		}
	}
	return Default, fmt.Errorf("unknown cache preference %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (p Preference) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Preference) UnmarshalText(b []byte) error {
	v, err := ParsePreference(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// ExpirationKind describes how an entry ages out of the store.
type ExpirationKind int

const (
	// Absolute entries expire a fixed window after they were written.
	Absolute ExpirationKind = iota
	// Sliding entries expire after a window of inactivity; every read renews it.
	Sliding
	// Never entries do not expire and are exempt from capacity eviction.
	Never
)

func (k ExpirationKind) String() string {
	switch k {
	case Absolute:
		return "absolute"
	case Sliding:
		return "sliding"
	case Never:
		return "never"
	default:
		return fmt.Sprintf("ExpirationKind(%d)", int(k))
	}
}

// Policy is the concrete expiration rule applied to a stored entry.
type Policy struct {
	Kind   ExpirationKind
	Window time.Duration
}

// FallbackPolicy is used when a preference has no usable configured duration.
var FallbackPolicy = Policy{Kind: Sliding, Window: 30 * time.Minute}

// ExpiresAt returns the expiration time of an entry written or last renewed at now.
// The second result is false for entries that never expire.
func (p Policy) ExpiresAt(now time.Time) (time.Time, bool) {
	if p.Kind == Never {
		return time.Time{}, false
	}
	return now.Add(p.Window), true
}

// Settings is the resolved cache configuration: the global switch plus a duration
// in minutes for each preference.
type Settings struct {
	Enabled   bool
	Durations map[Preference]int
}

// DefaultSettings returns a complete duration table with caching disabled.
func DefaultSettings() Settings {
	return Settings{
		Enabled: false,
		Durations: map[Preference]int{
			Default:           15,
			ShortLived:        5,
			ShortLivedSliding: 5,
			Extended:          60,
			ExtendedSliding:   60,
			LongTerm:          24 * 60,
			LongTermSliding:   24 * 60,
		},
	}
}

// Duration returns the configured minutes for p.
func (s Settings) Duration(p Preference) (int, bool) {
	d, ok := s.Durations[p]
	if !ok || d <= 0 {
		return 0, false
	}
	return d, true
}

// Validate requires a Default duration whenever caching is enabled.
func (s Settings) Validate() error {
	if !s.Enabled {
		return nil
	}
	if _, ok := s.Duration(Default); !ok {
		return fmt.Errorf("cache settings: a positive %s duration is required", Default)
	}
	return nil
}

// Policy resolves p to its expiration policy. The second result is false when the
// FallbackPolicy was substituted because p is unknown or has no usable duration.
func (s Settings) Policy(p Preference) (Policy, bool) {
	switch p {
	case Permanent:
		return Policy{Kind: Never}, true
	case ShortLivedSliding, ExtendedSliding, LongTermSliding:
		d, ok := s.Duration(p)
		if !ok {
			return FallbackPolicy, false
		}
		return Policy{Kind: Sliding, Window: time.Duration(d) * time.Minute}, true
	case Default, ShortLived, Extended, LongTerm:
		d, ok := s.Duration(p)
		if !ok {
			return FallbackPolicy, false
		}
		return Policy{Kind: Absolute, Window: time.Duration(d) * time.Minute}, true
	default:
		return FallbackPolicy, false
	}
}
