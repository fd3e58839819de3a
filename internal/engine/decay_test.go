package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lazypower/rapport/internal/records"
)

func strengthSnapshot(msgs []records.Message, ownHistory ...records.Stint) *records.Snapshot {
	return records.BuildSnapshot(records.Export{
		Connections: []records.Connection{conn("Alice", "Tan", "Acme Corp", "Engineer")},
		Messages:    msgs,
		OwnHistory:  ownHistory,
	})
}

func TestStrengthBounds(t *testing.T) {
	histories := [][]records.Message{
		nil,
		shallowHistory("Alice Tan", daysAgo(1), 1),
		shallowHistory("Alice Tan", daysAgo(0), 50),
		shallowHistory("Alice Tan", daysAgo(5000), 50),
		{msg("t1", "Alice Tan", "Me", daysAgo(2), deepBody)},
	}
	for _, h := range histories {
		s, _ := Strength(strengthSnapshot(h), "alice tan", Default(), asOf)
		assert.GreaterOrEqual(t, s, 0.0)
		assert.LessOrEqual(t, s, 1.0)
	}
}

func TestStrengthNonIncreasingOverTime(t *testing.T) {
	snap := strengthSnapshot(shallowHistory("Alice Tan", daysAgo(30), 6))
	cfg := Default()

	prev := 2.0
	for _, offset := range []int{0, 1, 30, 90, 180, 365, 1000} {
		s, engaged := Strength(snap, "alice tan", cfg, asOf.AddDate(0, 0, offset))
		require.True(t, engaged)
		assert.LessOrEqual(t, s, prev, "offset %d days", offset)
		prev = s
	}
}

func TestStrengthHalvesOverOneHalfLife(t *testing.T) {
	// Shallow-only history: no deep-conversation half-life stretch,
	// no institutional bond, so the configured half-life applies as-is.
	snap := strengthSnapshot(shallowHistory("Alice Tan", daysAgo(0), 10))
	cfg := Default()

	now, _ := Strength(snap, "alice tan", cfg, asOf)
	later, _ := Strength(snap, "alice tan", cfg, asOf.AddDate(0, 0, int(cfg.HalfLifeDays)))
	require.InDelta(t, now*0.5, later, 1e-9)
}

func TestStrengthYearOldContactNearQuarter(t *testing.T) {
	// Two half-lives of silence on a saturated shallow history.
	snap := strengthSnapshot(shallowHistory("Alice Tan", daysAgo(360), 20))
	s, engaged := Strength(snap, "alice tan", Default(), asOf)
	require.True(t, engaged)
	assert.InDelta(t, 0.25, s, 0.02)
}

func TestStrengthNeverEngaged(t *testing.T) {
	s, engaged := Strength(strengthSnapshot(nil), "alice tan", Default(), asOf)
	assert.False(t, engaged)
	assert.Zero(t, s)
}

func TestStrengthTimestamplessOnlyIsUnengaged(t *testing.T) {
	// Messages with no parseable timestamp give no recency basis.
	msgs := []records.Message{
		{ThreadID: "t1", Sender: "Alice Tan", Recipient: "Me", Body: deepBody},
	}
	s, engaged := Strength(strengthSnapshot(msgs), "alice tan", Default(), asOf)
	assert.False(t, engaged)
	assert.Zero(t, s)
}

func TestStrengthTimestamplessMessagesFeedBase(t *testing.T) {
	// One dated shallow touch, plus undated deep history: the undated
	// messages raise the base even though they can't set recency.
	datedOnly := strengthSnapshot(shallowHistory("Alice Tan", daysAgo(10), 1))
	withUndated := strengthSnapshot(append(
		shallowHistory("Alice Tan", daysAgo(10), 1),
		records.Message{ThreadID: "t2", Sender: "Alice Tan", Recipient: "Me", Body: deepBody},
		records.Message{ThreadID: "t2", Sender: "Me", Recipient: "Alice Tan", Body: deepBody},
	))

	sparse, _ := Strength(datedOnly, "alice tan", Default(), asOf)
	rich, _ := Strength(withUndated, "alice tan", Default(), asOf)
	assert.Greater(t, rich, sparse)
}

func TestStrengthInstitutionalBondDecaysSlower(t *testing.T) {
	history := shallowHistory("Alice Tan", daysAgo(180), 10)
	plain := strengthSnapshot(history)
	bonded := strengthSnapshot(history, records.Stint{Company: "Acme Corp", Start: time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC)})

	weak, _ := Strength(plain, "alice tan", Default(), asOf)
	strong, _ := Strength(bonded, "alice tan", Default(), asOf)
	assert.Greater(t, strong, weak)
}

func TestStrengthDeepBeatsShallow(t *testing.T) {
	shallow := strengthSnapshot(shallowHistory("Alice Tan", daysAgo(30), 1))
	deep := strengthSnapshot([]records.Message{msg("t1", "Alice Tan", "Me", daysAgo(30), deepBody)})

	s1, _ := Strength(shallow, "alice tan", Default(), asOf)
	s2, _ := Strength(deep, "alice tan", Default(), asOf)
	assert.Greater(t, s2, s1)
}

func TestStrengthSingleTouchCannotFullyRefresh(t *testing.T) {
	// One shallow ping yesterday on an otherwise empty history stays
	// far below a relationship built on accumulated conversation.
	single := strengthSnapshot(shallowHistory("Alice Tan", daysAgo(1), 1))
	s, _ := Strength(single, "alice tan", Default(), asOf)
	assert.Less(t, s, 0.25)
}
