package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsPolicy(t *testing.T) {
	settings := DefaultSettings()

	tests := []struct {
		pref   Preference
		kind   ExpirationKind
		window time.Duration
	}{
		{Default, Absolute, 15 * time.Minute},
		{ShortLived, Absolute, 5 * time.Minute},
		{Extended, Absolute, time.Hour},
		{LongTerm, Absolute, 24 * time.Hour},
		{ShortLivedSliding, Sliding, 5 * time.Minute},
		{ExtendedSliding, Sliding, time.Hour},
		{LongTermSliding, Sliding, 24 * time.Hour},
		{Permanent, Never, 0},
	}

	for _, tt := range tests {
		t.Run(tt.pref.String(), func(t *testing.T) {
			policy, ok := settings.Policy(tt.pref)
			require.True(t, ok)
			assert.Equal(t, tt.kind, policy.Kind)
			assert.Equal(t, tt.window, policy.Window)
		})
	}
}

func TestSettingsPolicyFallback(t *testing.T) {
	settings := Settings{Enabled: true, Durations: map[Preference]int{Default: 10, Extended: 0}}

	policy, ok := settings.Policy(ShortLived)
	assert.False(t, ok, "missing duration should fall back")
	assert.Equal(t, FallbackPolicy, policy)

	policy, ok = settings.Policy(Extended)
	assert.False(t, ok, "non-positive duration should fall back")
	assert.Equal(t, FallbackPolicy, policy)

	policy, ok = settings.Policy(Preference(42))
	assert.False(t, ok, "unknown preference should fall back")
	assert.Equal(t, Sliding, policy.Kind)
	assert.Equal(t, 30*time.Minute, policy.Window)

	// Permanent needs no duration at all
	policy, ok = settings.Policy(Permanent)
	assert.True(t, ok)
	assert.Equal(t, Never, policy.Kind)
}

func TestPolicyExpiresAt(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	at, ok := Policy{Kind: Absolute, Window: time.Minute}.ExpiresAt(now)
	require.True(t, ok)
	assert.Equal(t, now.Add(time.Minute), at)

	_, ok = Policy{Kind: Never}.ExpiresAt(now)
	assert.False(t, ok)
}

func TestParsePreference(t *testing.T) {
	for _, p := range Preferences() {
		got, err := ParsePreference(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}

	got, err := ParsePreference("  longtermsliding ")
	require.NoError(t, err)
	assert.Equal(t, LongTermSliding, got)

	_, err = ParsePreference("forever")
	assert.Error(t, err)
}

func TestPreferenceText(t *testing.T) {
	b, err := ExtendedSliding.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "ExtendedSliding", string(b))

	var p Preference
	require.NoError(t, p.UnmarshalText([]byte("Permanent")))
	assert.Equal(t, Permanent, p)
	assert.Error(t, p.UnmarshalText([]byte("nope")))

	assert.Equal(t, "Preference(99)", Preference(99).String())
}

func TestSettingsValidate(t *testing.T) {
	assert.NoError(t, Settings{}.Validate(), "disabled settings need no durations")
	assert.Error(t, Settings{Enabled: true}.Validate())

	s := DefaultSettings()
	s.Enabled = true
	assert.NoError(t, s.Validate())
}
