// Package engine derives relationship-quality metrics from a records
// snapshot: decayed strength, advocacy (vouch) scores, reciprocity
// balances, dormant-thread hooks, and warm introduction paths.
//
// Every computation is a pure function of the snapshot, the config,
// and an explicit as-of time. The engine holds no state between runs
// and never reads the ambient clock.
package engine

import (
	"fmt"
	"sort"
	"time"

	"github.com/lazypower/rapport/internal/records"
)

// ScoredConnection is a connection plus everything the engine derived
// for it. Recomputed fresh on every run.
type ScoredConnection struct {
	Key        string
	Connection records.Connection

	Strength     float64 // [0,1]
	NeverEngaged bool
	Vouch        int // [0,100]
	Reciprocity  int // signed, positive = owed to the user

	Messages        int
	DeepMessages    int
	LastInteraction time.Time
	Institutional   bool

	EndorsementsGiven       int
	EndorsementsReceived    int
	RecommendationsGiven    int
	RecommendationsReceived int
}

// Result is the full output bundle of one analysis run. It is the
// engine's sole contract with the report assembler.
type Result struct {
	AsOf time.Time

	// Scores is sorted by strength descending, key ascending.
	Scores []ScoredConnection

	// Hooks is ordered most-recently-stalled first.
	Hooks []Hook

	// WarmPaths is populated only when the config names a target
	// company.
	WarmPaths     []Candidate
	TargetCompany string

	DuplicateKeys []string

	ConnectionCount int
	MessageCount    int
}

// Analyze runs every scoring component over the snapshot. The config
// is validated before any computation; an invalid config aborts the
// run with no partial results.
func Analyze(s *records.Snapshot, cfg Config, asOf time.Time) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}

	res := &Result{
		AsOf:          asOf,
		TargetCompany: cfg.TargetCompany,
		DuplicateKeys: s.DuplicateKeys(),
	}
	res.ConnectionCount, res.MessageCount = s.Counts()

	for _, key := range s.Keys() {
		conn, _ := s.Connection(key)

		strength, engaged := Strength(s, key, cfg, asOf)

		deep := 0
		msgs := s.MessagesFor(key)
		for _, m := range msgs {
			if m.Deep() {
				deep++
			}
		}

		res.Scores = append(res.Scores, ScoredConnection{
			Key:                     key,
			Connection:              conn,
			Strength:                strength,
			NeverEngaged:            !engaged,
			Vouch:                   Vouch(s, key, cfg, asOf, strength),
			Reciprocity:             Reciprocity(s, key),
			Messages:                len(msgs),
			DeepMessages:            deep,
			LastInteraction:         s.LastInteraction(key),
			Institutional:           s.InstitutionalOverlap(key),
			EndorsementsGiven:       len(s.EndorsementsGiven(key)),
			EndorsementsReceived:    len(s.EndorsementsReceived(key)),
			RecommendationsGiven:    len(s.RecommendationsGiven(key)),
			RecommendationsReceived: len(s.RecommendationsReceived(key)),
		})
	}

	sort.SliceStable(res.Scores, func(i, j int) bool {
		if res.Scores[i].Strength != res.Scores[j].Strength {
			return res.Scores[i].Strength > res.Scores[j].Strength
		}
		return res.Scores[i].Key < res.Scores[j].Key
	})

	res.Hooks = FindDormant(s, cfg, asOf, DefaultMatcher())

	if cfg.TargetCompany != "" {
		res.WarmPaths = WarmPaths(res.Scores, cfg.TargetCompany)
	}

	return res, nil
}

// Warmest returns up to n connections by strength. Never-engaged
// connections are excluded.
func (r *Result) Warmest(n int) []ScoredConnection {
	var out []ScoredConnection
	for _, sc := range r.Scores {
		if sc.NeverEngaged {
			continue
		}
		out = append(out, sc)
		if len(out) == n {
			break
		}
	}
	return out
}

// GoingCold returns up to n connections whose strength sits in the
// fading band (30-70%), sorted by vouch so the most valuable fading
// relationships surface first.
func (r *Result) GoingCold(n int) []ScoredConnection {
	var out []ScoredConnection
	for _, sc := range r.Scores {
		if sc.Strength >= 0.3 && sc.Strength <= 0.7 {
			out = append(out, sc)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Vouch != out[j].Vouch {
			return out[i].Vouch > out[j].Vouch
		}
		return out[i].Key < out[j].Key
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// TopAdvocates returns up to n connections by vouch score.
func (r *Result) TopAdvocates(n int) []ScoredConnection {
	out := make([]ScoredConnection, len(r.Scores))
	copy(out, r.Scores)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Vouch != out[j].Vouch {
			return out[i].Vouch > out[j].Vouch
		}
		return out[i].Key < out[j].Key
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// OwedToUser returns up to n connections with a positive reciprocity
// balance, largest first.
func (r *Result) OwedToUser(n int) []ScoredConnection {
	return r.byBalance(n, func(b int) bool { return b > 0 }, true)
}

// UserOwes returns up to n connections with a negative balance, most
// indebted first.
func (r *Result) UserOwes(n int) []ScoredConnection {
	return r.byBalance(n, func(b int) bool { return b < 0 }, false)
}

func (r *Result) byBalance(n int, keep func(int) bool, desc bool) []ScoredConnection {
	var out []ScoredConnection
	for _, sc := range r.Scores {
		if keep(sc.Reciprocity) {
			out = append(out, sc)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Reciprocity != out[j].Reciprocity {
			if desc {
				return out[i].Reciprocity > out[j].Reciprocity
			}
			return out[i].Reciprocity < out[j].Reciprocity
		}
		return out[i].Key < out[j].Key
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
