package records

import (
	"sort"
	"time"
)

// Thread is one conversation, messages ordered oldest first. Messages
// without timestamps sort before timestamped ones so the tail of the
// slice is always the most recent known activity.
type Thread struct {
	ID             string
	CounterpartKey string
	Messages       []Message
}

// LastActivity returns the newest message timestamp in the thread, or
// zero if no message has one.
func (t Thread) LastActivity() time.Time {
	var last time.Time
	for _, m := range t.Messages {
		if m.SentAt.After(last) {
			last = m.SentAt
		}
	}
	return last
}

// Snapshot is an immutable, indexed view over an Export. All scoring
// components read from a Snapshot; none of them mutate it.
type Snapshot struct {
	export Export

	byKey         map[string]Connection
	keys          []string
	duplicateKeys []string

	messagesByKey map[string][]Message
	threads       []Thread

	endorsementsReceived map[string][]Endorsement
	endorsementsGiven    map[string][]Endorsement
	recsReceived         map[string][]Recommendation
	recsGiven            map[string][]Recommendation
}

// BuildSnapshot indexes an Export. Called once per run, before any
// scoring happens.
func BuildSnapshot(ex Export) *Snapshot {
	s := &Snapshot{
		export:               ex,
		byKey:                make(map[string]Connection, len(ex.Connections)),
		messagesByKey:        make(map[string][]Message),
		endorsementsReceived: make(map[string][]Endorsement),
		endorsementsGiven:    make(map[string][]Endorsement),
		recsReceived:         make(map[string][]Recommendation),
		recsGiven:            make(map[string][]Recommendation),
	}

	seen := make(map[string]int, len(ex.Connections))
	for _, c := range ex.Connections {
		key := c.Key()
		if key == "" {
			continue
		}
		seen[key]++
		if seen[key] > 1 {
			// First occurrence wins; the collision is surfaced, not merged.
			continue
		}
		s.byKey[key] = c
		s.keys = append(s.keys, key)
	}
	for key, n := range seen {
		if n > 1 {
			s.duplicateKeys = append(s.duplicateKeys, key)
		}
	}
	sort.Strings(s.keys)
	sort.Strings(s.duplicateKeys)

	byThread := make(map[string][]Message)
	var threadIDs []string
	for _, m := range ex.Messages {
		for _, name := range []string{m.Sender, m.Recipient} {
			key := NormalizeName(name)
			if _, ok := s.byKey[key]; ok {
				s.messagesByKey[key] = append(s.messagesByKey[key], m)
			}
		}
		if m.ThreadID != "" {
			if _, ok := byThread[m.ThreadID]; !ok {
				threadIDs = append(threadIDs, m.ThreadID)
			}
			byThread[m.ThreadID] = append(byThread[m.ThreadID], m)
		}
	}

	sort.Strings(threadIDs)
	for _, id := range threadIDs {
		msgs := byThread[id]
		sort.SliceStable(msgs, func(i, j int) bool {
			return msgs[i].SentAt.Before(msgs[j].SentAt)
		})
		s.threads = append(s.threads, Thread{
			ID:             id,
			CounterpartKey: s.counterpartFor(msgs),
			Messages:       msgs,
		})
	}

	for _, e := range ex.EndorsementsReceived {
		s.endorsementsReceived[e.Key()] = append(s.endorsementsReceived[e.Key()], e)
	}
	for _, e := range ex.EndorsementsGiven {
		s.endorsementsGiven[e.Key()] = append(s.endorsementsGiven[e.Key()], e)
	}
	for _, r := range ex.RecommendationsReceived {
		s.recsReceived[r.Key()] = append(s.recsReceived[r.Key()], r)
	}
	for _, r := range ex.RecommendationsGiven {
		s.recsGiven[r.Key()] = append(s.recsGiven[r.Key()], r)
	}

	return s
}

// counterpartFor resolves which thread participant is a known
// connection. When several participants match (group threads), the
// most frequent sender wins.
func (s *Snapshot) counterpartFor(msgs []Message) string {
	counts := make(map[string]int)
	for _, m := range msgs {
		for _, name := range []string{m.Sender, m.Recipient} {
			key := NormalizeName(name)
			if _, ok := s.byKey[key]; ok {
				counts[key]++
			}
		}
	}
	best := ""
	for key, n := range counts {
		if best == "" || n > counts[best] || (n == counts[best] && key < best) {
			best = key
		}
	}
	return best
}

// Keys returns all connection identity keys in stable order.
func (s *Snapshot) Keys() []string { return s.keys }

// Connection returns the connection for a key.
func (s *Snapshot) Connection(key string) (Connection, bool) {
	c, ok := s.byKey[key]
	return c, ok
}

// DuplicateKeys lists identity keys that more than one export row
// collapsed into. Reported, never silently merged.
func (s *Snapshot) DuplicateKeys() []string { return s.duplicateKeys }

// MessagesFor returns every message that touches the given connection.
func (s *Snapshot) MessagesFor(key string) []Message { return s.messagesByKey[key] }

// Threads returns all conversation threads, oldest-first within each.
func (s *Snapshot) Threads() []Thread { return s.threads }

// EndorsementsReceived returns endorsements the user received from key.
func (s *Snapshot) EndorsementsReceived(key string) []Endorsement {
	return s.endorsementsReceived[key]
}

// EndorsementsGiven returns endorsements the user gave to key.
func (s *Snapshot) EndorsementsGiven(key string) []Endorsement {
	return s.endorsementsGiven[key]
}

// RecommendationsReceived returns recommendations the user received from key.
func (s *Snapshot) RecommendationsReceived(key string) []Recommendation {
	return s.recsReceived[key]
}

// RecommendationsGiven returns recommendations the user wrote for key.
func (s *Snapshot) RecommendationsGiven(key string) []Recommendation {
	return s.recsGiven[key]
}

// LastInteraction returns the newest timestamped message involving the
// connection, or zero if there is none.
func (s *Snapshot) LastInteraction(key string) time.Time {
	var last time.Time
	for _, m := range s.messagesByKey[key] {
		if m.SentAt.After(last) {
			last = m.SentAt
		}
	}
	return last
}

// InstitutionalOverlap reports whether the user and the connection
// share employment history: an overlapping stint at the same company,
// or (when the connection has no history records) the connection's
// current company appearing in the user's own history.
func (s *Snapshot) InstitutionalOverlap(key string) bool {
	c, ok := s.byKey[key]
	if !ok || len(s.export.OwnHistory) == 0 {
		return false
	}

	for _, own := range s.export.OwnHistory {
		ownCo := NormalizeCompany(own.Company)
		if ownCo == "" {
			continue
		}
		for _, theirs := range c.History {
			if NormalizeCompany(theirs.Company) == ownCo && own.Overlaps(theirs) {
				return true
			}
		}
		if len(c.History) == 0 && NormalizeCompany(c.Company) == ownCo {
			return true
		}
	}
	return false
}

// OwnHistory returns the user's employment stints.
func (s *Snapshot) OwnHistory() []Stint { return s.export.OwnHistory }

// Counts summarizes the snapshot for report headers.
func (s *Snapshot) Counts() (connections, messages int) {
	return len(s.export.Connections), len(s.export.Messages)
}
