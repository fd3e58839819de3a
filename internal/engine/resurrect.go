package engine

import (
	"sort"
	"strings"
	"time"

	"github.com/lazypower/rapport/internal/records"
)

// HookType classifies why a dormant thread is worth reviving.
type HookType string

const (
	HookReconnectPromise HookType = "reconnect-promise"
	HookUnansweredAsk    HookType = "unanswered-ask"
	HookOpenQuestion     HookType = "open-question"
)

// Hook is a dormant thread with a natural re-engagement opening.
type Hook struct {
	ThreadID       string
	CounterpartKey string
	Type           HookType
	Excerpt        string
	LastActivity   time.Time
	DaysDormant    int
}

// HookMatcher decides whether the tail of a thread contains a
// re-engagement hook. Implementations must be pure; stricter matchers
// can be swapped in without touching the dormancy logic.
type HookMatcher interface {
	Match(t records.Thread) (HookType, records.Message, bool)
}

// PhraseRule is one ordered pattern in a PhraseMatcher. A rule matches
// a message when every set condition holds. Empty Phrases means any
// body passes the phrase check.
type PhraseRule struct {
	Type            HookType
	Phrases         []string
	FinalOnly       bool // only the last message of the thread qualifies
	CounterpartOnly bool // only messages sent by the counterpart qualify
	RequireQuestion bool // message must end with a question mark
}

// PhraseMatcher matches hooks by case-insensitive phrase lookup over
// the last few messages of a thread. Deliberately not NLP: missing a
// hook is fine, inventing one is not, so the phrase sets stay specific.
type PhraseMatcher struct {
	Rules []PhraseRule

	// Tail is how many trailing messages to scan. Zero means 3.
	Tail int
}

// DefaultMatcher returns the standard rule set: unfulfilled promises
// to reconnect, requests for help that never got an answer, and open
// questions left hanging.
func DefaultMatcher() *PhraseMatcher {
	return &PhraseMatcher{
		Rules: []PhraseRule{
			{
				Type: HookReconnectPromise,
				Phrases: []string{
					"let's catch up", "lets catch up", "catch up soon",
					"grab coffee", "grab a coffee", "get together soon",
					"i'll follow up", "ill follow up",
					"let's reconnect", "lets reconnect",
					"would love to catch up", "let's stay in touch",
				},
			},
			{
				Type: HookUnansweredAsk,
				Phrases: []string{
					"could you", "would you be able", "any chance",
					"happy to help", "let me know if",
				},
				FinalOnly:       true,
				CounterpartOnly: true,
			},
			{
				Type:            HookOpenQuestion,
				FinalOnly:       true,
				CounterpartOnly: true,
				RequireQuestion: true,
			},
		},
	}
}

func (pm *PhraseMatcher) tail() int {
	if pm.Tail <= 0 {
		return 3
	}
	return pm.Tail
}

// Match scans the trailing messages newest-first. The first rule that
// matches any scanned message wins, so rule order encodes priority.
func (pm *PhraseMatcher) Match(t records.Thread) (HookType, records.Message, bool) {
	n := len(t.Messages)
	if n == 0 {
		return "", records.Message{}, false
	}
	start := n - pm.tail()
	if start < 0 {
		start = 0
	}

	for _, rule := range pm.Rules {
		for i := n - 1; i >= start; i-- {
			m := t.Messages[i]
			if rule.FinalOnly && i != n-1 {
				continue
			}
			if rule.CounterpartOnly && records.NormalizeName(m.Sender) != t.CounterpartKey {
				continue
			}
			if rule.RequireQuestion && !strings.HasSuffix(strings.TrimSpace(m.Body), "?") {
				continue
			}
			if len(rule.Phrases) == 0 {
				if rule.RequireQuestion || rule.FinalOnly {
					return rule.Type, m, true
				}
				continue
			}
			lower := strings.ToLower(m.Body)
			for _, phrase := range rule.Phrases {
				if strings.Contains(lower, phrase) {
					return rule.Type, m, true
				}
			}
		}
	}
	return "", records.Message{}, false
}

const excerptLen = 100

// FindDormant scans every thread for dormancy plus a hook. A thread
// qualifies when it has prior activity but nothing within the
// configured window before asOf. At most one hook per thread. Results
// come back most-recently-stalled first.
func FindDormant(s *records.Snapshot, cfg Config, asOf time.Time, matcher HookMatcher) []Hook {
	window := time.Duration(cfg.DormancyWindowDays) * 24 * time.Hour

	var hooks []Hook
	for _, t := range s.Threads() {
		last := t.LastActivity()
		if last.IsZero() {
			// No timestamped activity to judge dormancy from.
			continue
		}
		if asOf.Sub(last) < window {
			continue
		}

		hookType, msg, ok := matcher.Match(t)
		if !ok {
			continue
		}

		excerpt := msg.Body
		if len(excerpt) > excerptLen {
			excerpt = excerpt[:excerptLen] + "..."
		}
		hooks = append(hooks, Hook{
			ThreadID:       t.ID,
			CounterpartKey: t.CounterpartKey,
			Type:           hookType,
			Excerpt:        excerpt,
			LastActivity:   last,
			DaysDormant:    int(asOf.Sub(last).Hours() / 24),
		})
	}

	sort.SliceStable(hooks, func(i, j int) bool {
		if !hooks[i].LastActivity.Equal(hooks[j].LastActivity) {
			return hooks[i].LastActivity.After(hooks[j].LastActivity)
		}
		return hooks[i].ThreadID < hooks[j].ThreadID
	})
	return hooks
}
