package records

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(n int) time.Time {
	return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func TestSnapshotIndexesMessagesByParticipant(t *testing.T) {
	snap := BuildSnapshot(Export{
		Connections: []Connection{
			{FirstName: "Sarah", LastName: "Chen"},
			{FirstName: "Mike", LastName: "Torres"},
		},
		Messages: []Message{
			{ThreadID: "c1", Sender: "Sarah Chen", Recipient: "Me", SentAt: day(0), Body: "hello"},
			{ThreadID: "c1", Sender: "Me", Recipient: "Sarah Chen", SentAt: day(1), Body: "hi"},
			{ThreadID: "c2", Sender: "Me", Recipient: "Mike Torres", SentAt: day(2), Body: "ping"},
		},
	})

	assert.Len(t, snap.MessagesFor("sarah chen"), 2)
	assert.Len(t, snap.MessagesFor("mike torres"), 1)
	assert.Empty(t, snap.MessagesFor("nobody"))
	assert.Equal(t, day(1), snap.LastInteraction("sarah chen"))
}

func TestSnapshotThreads(t *testing.T) {
	snap := BuildSnapshot(Export{
		Connections: []Connection{{FirstName: "Sarah", LastName: "Chen"}},
		Messages: []Message{
			// Out of order on purpose.
			{ThreadID: "c1", Sender: "Me", Recipient: "Sarah Chen", SentAt: day(5), Body: "later"},
			{ThreadID: "c1", Sender: "Sarah Chen", Recipient: "Me", SentAt: day(2), Body: "earlier"},
			{ThreadID: "c1", Sender: "Sarah Chen", Recipient: "Me", Body: "undated"},
		},
	})

	threads := snap.Threads()
	require.Len(t, threads, 1)

	th := threads[0]
	assert.Equal(t, "c1", th.ID)
	assert.Equal(t, "sarah chen", th.CounterpartKey)
	require.Len(t, th.Messages, 3)
	// Undated first, then chronological: the tail is the newest.
	assert.Equal(t, "undated", th.Messages[0].Body)
	assert.Equal(t, "earlier", th.Messages[1].Body)
	assert.Equal(t, "later", th.Messages[2].Body)
	assert.Equal(t, day(5), th.LastActivity())
}

func TestSnapshotFlagsDuplicateNames(t *testing.T) {
	snap := BuildSnapshot(Export{
		Connections: []Connection{
			{FirstName: "Sarah", LastName: "Chen", Company: "Stripe"},
			{FirstName: "sarah", LastName: "chen", Company: "Google"},
			{FirstName: "Mike", LastName: "Torres"},
		},
	})

	assert.Equal(t, []string{"sarah chen"}, snap.DuplicateKeys())
	assert.Len(t, snap.Keys(), 2)

	// First occurrence wins.
	c, ok := snap.Connection("sarah chen")
	require.True(t, ok)
	assert.Equal(t, "Stripe", c.Company)
}

func TestSnapshotEndorsementAndRecommendationIndexes(t *testing.T) {
	snap := BuildSnapshot(Export{
		Connections: []Connection{{FirstName: "Sarah", LastName: "Chen"}},
		EndorsementsReceived: []Endorsement{
			{Name: "Sarah Chen", Skill: "Go"},
			{Name: "Sarah Chen", Skill: "SQL"},
		},
		EndorsementsGiven:       []Endorsement{{Name: "Sarah Chen", Skill: "Rust"}},
		RecommendationsReceived: []Recommendation{{Name: "Sarah Chen", Text: "Superb."}},
		RecommendationsGiven:    []Recommendation{{Name: "sarah CHEN", Text: "Stellar."}},
	})

	assert.Len(t, snap.EndorsementsReceived("sarah chen"), 2)
	assert.Len(t, snap.EndorsementsGiven("sarah chen"), 1)
	assert.Len(t, snap.RecommendationsReceived("sarah chen"), 1)
	assert.Len(t, snap.RecommendationsGiven("sarah chen"), 1, "lookups are casing-insensitive")
}

func TestSnapshotInstitutionalOverlap(t *testing.T) {
	own := []Stint{{Company: "Acme Corp", Start: day(-2000), End: day(-500)}}

	overlapping := BuildSnapshot(Export{
		Connections: []Connection{{
			FirstName: "Sarah", LastName: "Chen",
			History: []Stint{{Company: "Acme Corp", Start: day(-1000)}},
		}},
		OwnHistory: own,
	})
	assert.True(t, overlapping.InstitutionalOverlap("sarah chen"))

	disjoint := BuildSnapshot(Export{
		Connections: []Connection{{
			FirstName: "Sarah", LastName: "Chen",
			History: []Stint{{Company: "Acme Corp", Start: day(-100)}},
		}},
		OwnHistory: own,
	})
	assert.False(t, disjoint.InstitutionalOverlap("sarah chen"), "same company, no tenure overlap")

	currentCompanyFallback := BuildSnapshot(Export{
		Connections: []Connection{{FirstName: "Sarah", LastName: "Chen", Company: "Acme Corp"}},
		OwnHistory:  own,
	})
	assert.True(t, currentCompanyFallback.InstitutionalOverlap("sarah chen"),
		"no history records: current company match counts")

	noOwnHistory := BuildSnapshot(Export{
		Connections: []Connection{{FirstName: "Sarah", LastName: "Chen", Company: "Acme Corp"}},
	})
	assert.False(t, noOwnHistory.InstitutionalOverlap("sarah chen"))
}

func TestSnapshotCounterpartResolution(t *testing.T) {
	// Group-ish thread: the most frequent known participant wins.
	snap := BuildSnapshot(Export{
		Connections: []Connection{
			{FirstName: "Sarah", LastName: "Chen"},
			{FirstName: "Mike", LastName: "Torres"},
		},
		Messages: []Message{
			{ThreadID: "c1", Sender: "Sarah Chen", Recipient: "Me", SentAt: day(0), Body: "a"},
			{ThreadID: "c1", Sender: "Sarah Chen", Recipient: "Me", SentAt: day(1), Body: "b"},
			{ThreadID: "c1", Sender: "Mike Torres", Recipient: "Me", SentAt: day(2), Body: "c"},
		},
	})

	require.Len(t, snap.Threads(), 1)
	assert.Equal(t, "sarah chen", snap.Threads()[0].CounterpartKey)
}
