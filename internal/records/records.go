// Package records holds the typed representation of a connection-data
// export: connections, messages, endorsements, recommendations, and the
// immutable Snapshot the scoring engine reads from.
package records

import (
	"strings"
	"time"
)

// Connection is one person in the export. Immutable after load.
type Connection struct {
	FirstName string
	LastName  string
	Email     string
	Company   string
	Position  string

	// ConnectedOn is zero when the export row had no parseable date.
	ConnectedOn time.Time

	// History holds employment stints when the export includes them.
	// Most exports don't; everything downstream treats it as optional.
	History []Stint
}

// FullName returns the display name.
func (c Connection) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// Key returns the normalized identity key for this connection.
func (c Connection) Key() string {
	return NormalizeName(c.FullName())
}

// Stint is a single employment period. A zero End means "present".
type Stint struct {
	Company string
	Title   string
	Start   time.Time
	End     time.Time
}

// Overlaps reports whether two stints overlap in time. Open-ended
// stints extend to infinity.
func (s Stint) Overlaps(o Stint) bool {
	startsBeforeOtherEnds := o.End.IsZero() || s.Start.Before(o.End)
	otherStartsBeforeEnds := s.End.IsZero() || o.Start.Before(s.End)
	return startsBeforeOtherEnds && otherStartsBeforeEnds
}

// Message is a single message in a conversation thread.
type Message struct {
	ThreadID  string
	Sender    string
	Recipient string
	Body      string

	// SentAt is zero when the export row had no parseable timestamp.
	// Such messages still count toward volume and depth signals but
	// are excluded from recency calculations.
	SentAt time.Time
}

// HasTimestamp reports whether the message carries a usable timestamp.
func (m Message) HasTimestamp() bool {
	return !m.SentAt.IsZero()
}

// shallowPhrases mark congratulatory or boilerplate messages that carry
// little relationship signal on their own.
var shallowPhrases = []string{
	"congrats",
	"congratulations",
	"thanks",
	"thank you",
	"happy birthday",
	"great post",
	"interesting",
}

const (
	deepMinLen    = 100
	shallowMaxLen = 150
)

// Deep classifies a message as substantive. Short messages and
// boilerplate congratulations are shallow; longer, specific messages
// are deep.
func (m Message) Deep() bool {
	if len(m.Body) < deepMinLen {
		return false
	}
	lower := strings.ToLower(m.Body)
	for _, phrase := range shallowPhrases {
		if strings.Contains(lower, phrase) && len(m.Body) < shallowMaxLen {
			return false
		}
	}
	return true
}

// Endorsement is a single skill endorsement. Direction (given vs
// received) is carried by which Export slice it lives in.
type Endorsement struct {
	Name  string
	Skill string

	// At is zero when the export doesn't include endorsement dates,
	// which is the common case.
	At time.Time
}

// Key returns the normalized identity key of the counterpart.
func (e Endorsement) Key() string { return NormalizeName(e.Name) }

// Recommendation is a written recommendation.
type Recommendation struct {
	Name string
	Text string
	At   time.Time
}

// Key returns the normalized identity key of the counterpart.
func (r Recommendation) Key() string { return NormalizeName(r.Name) }

// Substantive reports whether the recommendation text is long enough to
// count as a strong advocacy signal rather than a one-liner.
func (r Recommendation) Substantive() bool {
	return len(strings.TrimSpace(r.Text)) >= 200
}

// Export is the full parsed record set for one analysis run.
type Export struct {
	Connections             []Connection
	Messages                []Message
	EndorsementsGiven       []Endorsement
	EndorsementsReceived    []Endorsement
	RecommendationsGiven    []Recommendation
	RecommendationsReceived []Recommendation

	// OwnHistory is the exporting user's employment history, used for
	// institutional-overlap detection. Optional.
	OwnHistory []Stint
}
