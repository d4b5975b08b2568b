package clash

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWarFrequencyWire(t *testing.T) {
	wire := []string{"unknown", "never", "lessThanOncePerWeek", "oncePerWeek", "moreThanOncePerWeek", "always"}
	for i, w := range wire {
		f := WarFrequency(i)
		assert.Equal(t, w, f.WireValue())

		var got WarFrequency
		require.NoError(t, got.UnmarshalText([]byte(w)))
		assert.Equal(t, f, got)
	}
	var f WarFrequency
	assert.Error(t, f.UnmarshalText([]byte("sometimes")))
}

func TestMembershipTypeWire(t *testing.T) {
	var c ClanResult
	require.NoError(t, json.Unmarshal([]byte(`{"type":"inviteOnly"}`), &c))
	assert.Equal(t, MembershipInviteOnly, c.Type)

	b, err := json.Marshal(ClanResult{Type: MembershipClosed})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"type":"closed"`)
}

func TestWarOutcome(t *testing.T) {
	var entries []WarLogEntry
	require.NoError(t, json.Unmarshal([]byte(`[{"result":"win"},{"result":"lose"},{"result":""},{}]`), &entries))
	require.Len(t, entries, 4)
	assert.Equal(t, WarWin, entries[0].Result)
	assert.Equal(t, WarLose, entries[1].Result)
	assert.Equal(t, WarTie, entries[2].Result)
	assert.Equal(t, WarTie, entries[3].Result)

	var o WarOutcome
	assert.Error(t, o.UnmarshalText([]byte("draw")))
}

func TestVillageTarget(t *testing.T) {
	var a Achievement
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Gold Grab","village":"builderBase"}`), &a))
	assert.Equal(t, VillageBuilderBase, a.Village)
	assert.Equal(t, "home", VillageHome.WireValue())
}

func TestCategoryJSON(t *testing.T) {
	b, err := json.Marshal(Message{Text: "x", Code: "c", Category: CategoryFailure})
	require.NoError(t, err)
	assert.JSONEq(t, `{"text":"x","code":"c","category":"failure"}`, string(b))

	var m Message
	require.NoError(t, json.Unmarshal([]byte(`{"text":"y","category":"diagnostic"}`), &m))
	assert.Equal(t, CategoryDiagnostic, m.Category)
	assert.Equal(t, CategoryUnspecified, Category(0))
}

func TestErrorResponseDecode(t *testing.T) {
	var e ErrorResponse
	require.NoError(t, json.Unmarshal([]byte(`{"reason":"accessDenied","message":"Invalid authorization"}`), &e))
	assert.Equal(t, ErrorResponse{Reason: "accessDenied", Message: "Invalid authorization"}, e)
}

func TestErrorHelpers(t *testing.T) {
	err := NewError(ErrorTypeNetwork, "dial failed").WithCause(assert.AnError).WithContext("host", "x")
	assert.True(t, IsNetworkError(err))
	assert.False(t, IsParsingError(err))
	assert.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "caused by")
	assert.Equal(t, "x", err.Context["host"])
	assert.False(t, IsValidationError(assert.AnError))
}
