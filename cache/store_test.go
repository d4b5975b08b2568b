package cache

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type clan struct {
	Tag     string   `json:"tag"`
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

func enabledSettings() Settings {
	s := DefaultSettings()
	s.Enabled = true
	return s
}

func newTestStore(t *testing.T, opts ...Option) (*Store, *fakeClock) {
	t.Helper()
	clock := newFakeClock()
	opts = append([]Option{WithClock(clock.Now)}, opts...)
	return NewStore(enabledSettings(), opts...), clock
}

func TestStoreRoundTripIsolation(t *testing.T) {
	store, _ := newTestStore(t)

	original := &clan{Tag: "#ABC", Name: "Night Owls", Members: []string{"a", "b"}}
	require.NoError(t, Set(store, "clans/#ABC", NewEntry(original, Extended)))

	// mutating the caller's value after Set must not leak into the store
	original.Members[0] = "changed-before-read"

	entry := Read[clan](store, "clans/#ABC")
	require.True(t, entry.CacheHit())
	assert.Equal(t, Extended, entry.Preference)

	got := entry.LoadCachedData()
	assert.Equal(t, []string{"a", "b"}, got.Members)
	got.Members[0] = "mutated"
	got.Name = "mutated"

	again := Read[clan](store, "clans/#ABC").LoadCachedData()
	assert.Equal(t, "Night Owls", again.Name)
	assert.Equal(t, []string{"a", "b"}, again.Members)
}

func TestStoreSetReplacesExisting(t *testing.T) {
	store, _ := newTestStore(t)

	require.NoError(t, Set(store, "k", NewEntry(&clan{Name: "first"}, ShortLived)))
	require.NoError(t, Set(store, "k", NewEntry(&clan{Name: "second"}, LongTerm)))

	entry := Read[clan](store, "k")
	require.True(t, entry.CacheHit())
	assert.Equal(t, "second", entry.LoadCachedData().Name)
	assert.Equal(t, LongTerm, entry.Preference)
	assert.Equal(t, 1, store.Len())
}

func TestStoreDisabledIsNoop(t *testing.T) {
	store := NewStore(DefaultSettings())
	require.False(t, store.Enabled())

	require.NoError(t, Set(store, "k", NewEntry(&clan{Name: "x"}, Default)))
	assert.False(t, Read[clan](store, "k").CacheHit())

	// blank keys are not validated while caching is off
	assert.NoError(t, Set(store, "", NewEntry(&clan{}, Default)))

	assert.NotPanics(t, func() {
		store.Remove("k")
		store.Remove("")
	})
	assert.Equal(t, 0, store.Len())
}

func TestStoreNilIsDisabled(t *testing.T) {
	var store *Store
	assert.False(t, store.Enabled())
	assert.NoError(t, Set(store, "k", NewEntry(&clan{}, Default)))
	assert.False(t, Read[clan](store, "k").CacheHit())

	assert.NotPanics(t, func() {
		assert.Equal(t, int64(0), store.MaximumSize())
		assert.Equal(t, Settings{}, store.Settings())
		assert.Equal(t, 0, store.Len())
		assert.Nil(t, store.ItemInfo("k"))
		store.Remove("k")
		store.Flush()
	})
}

func TestStoreUndecodableEntryIsDropped(t *testing.T) {
	store, _ := newTestStore(t)

	name := "not a clan"
	require.NoError(t, Set(store, "k", NewEntry(&name, Default)))
	assert.False(t, Read[clan](store, "k").CacheHit())
	assert.Equal(t, 0, store.Len())
}

func TestStoreRemoveIfUnchangedKeepsNewerValue(t *testing.T) {
	store, _ := newTestStore(t)

	stale := "stale"
	require.NoError(t, Set(store, "k", NewEntry(&stale, Default)))
	raw, _, ok := store.get("k")
	require.True(t, ok)

	// a writer replaces the key before the stale value is dropped
	require.NoError(t, Set(store, "k", NewEntry(&clan{Name: "fresh"}, Default)))
	assert.False(t, store.removeIfUnchanged("k", raw))

	got := Read[clan](store, "k")
	require.True(t, got.CacheHit())
	assert.Equal(t, "fresh", got.LoadCachedData().Name)

	raw, _, ok = store.get("k")
	require.True(t, ok)
	assert.True(t, store.removeIfUnchanged("k", raw))
	assert.Equal(t, 0, store.Len())
	assert.False(t, store.removeIfUnchanged("k", raw))
}

func TestStoreSetRequiresKey(t *testing.T) {
	store, _ := newTestStore(t)

	err := Set(store, "   ", NewEntry(&clan{}, Default))
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestStoreMissingKey(t *testing.T) {
	store, _ := newTestStore(t)

	entry := Read[clan](store, "nope")
	assert.False(t, entry.CacheHit())
	assert.Equal(t, clan{}, entry.LoadCachedData())
}

func TestStoreEmptyEntryRemoves(t *testing.T) {
	store, _ := newTestStore(t)

	require.NoError(t, Set(store, "k", NewEntry(&clan{Name: "x"}, Default)))
	require.NoError(t, Set(store, "k", NewEntry[clan](nil, Default)))
	assert.False(t, Read[clan](store, "k").CacheHit())
}

func TestStoreRemove(t *testing.T) {
	store, _ := newTestStore(t)

	require.NoError(t, Set(store, "k", NewEntry(&clan{Name: "x"}, Default)))
	store.Remove("k")
	assert.False(t, Read[clan](store, "k").CacheHit())

	assert.NotPanics(t, func() {
		store.Remove("k")
		store.Remove("missing")
		store.Remove(" ")
	})
}

func TestStorePermanentNeverExpires(t *testing.T) {
	store, clock := newTestStore(t)

	require.NoError(t, Set(store, "perm", NewEntry(&clan{Name: "forever"}, Permanent)))

	for _, step := range []time.Duration{time.Minute, 24 * time.Hour, 365 * 24 * time.Hour, 100 * 365 * 24 * time.Hour} {
		clock.Advance(step)
		entry := Read[clan](store, "perm")
		require.True(t, entry.CacheHit(), "permanent entry expired after advancing %s", step)
	}
}

func TestStoreSlidingRenewsOnRead(t *testing.T) {
	store, clock := newTestStore(t)
	window := 5 * time.Minute // ShortLivedSliding in DefaultSettings

	require.NoError(t, Set(store, "slide", NewEntry(&clan{Name: "s"}, ShortLivedSliding)))

	// keep touching it just before the window closes
	for i := 0; i < 5; i++ {
		clock.Advance(window - time.Second)
		require.True(t, Read[clan](store, "slide").CacheHit(), "read %d should renew the window", i)
	}

	// then leave it alone for a full window
	clock.Advance(window)
	assert.False(t, Read[clan](store, "slide").CacheHit())
}

func TestStoreAbsoluteIgnoresReads(t *testing.T) {
	store, clock := newTestStore(t)
	window := 24 * time.Hour // LongTerm in DefaultSettings

	require.NoError(t, Set(store, "abs", NewEntry(&clan{Name: "a"}, LongTerm)))

	clock.Advance(window / 2)
	require.True(t, Read[clan](store, "abs").CacheHit())
	clock.Advance(window/2 - time.Second)
	require.True(t, Read[clan](store, "abs").CacheHit())

	clock.Advance(time.Second)
	assert.False(t, Read[clan](store, "abs").CacheHit(), "absolute entry must expire at creation + window")
}

func TestStoreFallbackPolicy(t *testing.T) {
	clock := newFakeClock()
	store := NewStore(Settings{Enabled: true, Durations: map[Preference]int{Default: 1}}, WithClock(clock.Now))

	// Extended has no duration: fallback is a 30 minute sliding window
	require.NoError(t, Set(store, "k", NewEntry(&clan{}, Extended)))

	info := store.ItemInfo("k")
	require.Len(t, info, 1)
	require.NotNil(t, info[0].Expiration)
	assert.Equal(t, clock.Now().Add(30*time.Minute), *info[0].Expiration)
}

func TestStoreItemInfo(t *testing.T) {
	store, clock := newTestStore(t)

	require.NoError(t, Set(store, "clans/#AAA", NewEntry(&clan{}, Default)))
	require.NoError(t, Set(store, "clans/#BBB", NewEntry(&clan{}, Permanent)))
	require.NoError(t, Set(store, "players/#CCC", NewEntry(&clan{}, ShortLived)))

	assert.Nil(t, store.ItemInfo(), "no filters yields nil")

	info := store.ItemInfo("CLANS/#aaa", "clans/#bbb", "unknown")
	require.Len(t, info, 2)

	assert.Equal(t, "clans/#AAA", info[0].Name)
	assert.Equal(t, Default, info[0].Preference)
	assert.True(t, info[0].IsCached)
	require.NotNil(t, info[0].Expiration)
	assert.Equal(t, clock.Now().Add(15*time.Minute), *info[0].Expiration)
	assert.Equal(t, clock.Now(), info[0].InsertedAt)

	assert.Equal(t, "clans/#BBB", info[1].Name)
	assert.Equal(t, Permanent, info[1].Preference)
	assert.Nil(t, info[1].Expiration)

	// expired entries disappear from diagnostics
	clock.Advance(16 * time.Minute)
	assert.Empty(t, store.ItemInfo("clans/#AAA"))

	// a partial match is not a match
	assert.Empty(t, store.ItemInfo("clans"))
}

func TestStoreMaxEntriesSparesPermanent(t *testing.T) {
	store, _ := newTestStore(t, WithMaxEntries(2))

	require.NoError(t, Set(store, "perm", NewEntry(&clan{}, Permanent)))
	require.NoError(t, Set(store, "short", NewEntry(&clan{}, ShortLived)))
	require.NoError(t, Set(store, "long", NewEntry(&clan{}, LongTerm)))

	assert.True(t, Read[clan](store, "perm").CacheHit())
	assert.False(t, Read[clan](store, "short").CacheHit(), "soonest-expiring entry should be evicted")
	assert.True(t, Read[clan](store, "long").CacheHit())
	assert.Equal(t, 2, store.Len())
}

func TestStoreMaximumSize(t *testing.T) {
	assert.Equal(t, DefaultMaxBytes, NewStore(DefaultSettings()).MaximumSize())
	assert.Equal(t, int64(1024), NewStore(DefaultSettings(), WithMaxBytes(1024)).MaximumSize())
}

func TestStoreFlush(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, Set(store, "a", NewEntry(&clan{}, Default)))
	require.NoError(t, Set(store, "b", NewEntry(&clan{}, Permanent)))

	store.Flush()
	assert.Equal(t, 0, store.Len())
}

func TestStoreConcurrentWriters(t *testing.T) {
	store, _ := newTestStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_ = Set(store, "shared", NewEntry(&clan{Name: fmt.Sprintf("writer-%d", i)}, ShortLivedSliding))
				_ = Read[clan](store, "shared")
				if j%10 == 0 {
					store.Remove("shared")
				}
			}
		}(i)
	}
	wg.Wait()

	require.NoError(t, Set(store, "shared", NewEntry(&clan{Name: "writer-final"}, ShortLivedSliding)))
	got := Read[clan](store, "shared").LoadCachedData()
	assert.True(t, strings.HasPrefix(got.Name, "writer-"))
	assert.Equal(t, 1, store.Len())
}
