package engine

import (
	"sort"
	"strings"

	"github.com/lazypower/rapport/internal/records"
)

// Company-relevance tiers for warm-path ranking.
const (
	relevanceCurrentEmployer = 1.0
	relevancePastEmployer    = 0.6
)

// Candidate is one ranked introduction path toward the target company.
type Candidate struct {
	Key       string
	Name      string
	Company   string
	Position  string
	Strength  float64
	Vouch     int
	Relevance float64
	Score     float64
}

// companyRelevance scores how close a connection sits to the target
// organization: working there now beats having worked there, which
// beats nothing.
func companyRelevance(c records.Connection, target string) float64 {
	tgt := records.NormalizeCompany(target)
	if tgt == "" {
		return 0
	}
	if strings.Contains(records.NormalizeCompany(c.Company), tgt) {
		return relevanceCurrentEmployer
	}
	for _, st := range c.History {
		if strings.Contains(records.NormalizeCompany(st.Company), tgt) {
			return relevancePastEmployer
		}
	}
	return 0
}

// WarmPaths ranks scored connections as candidate introducers toward
// the target company. Score = strength x relevance. A connection with
// zero strength never ranks, no matter how relevant its company: a
// warm path requires warmth. Ties break by vouch score, then by most
// recent interaction, then by key for stable output.
func WarmPaths(scores []ScoredConnection, target string) []Candidate {
	var out []Candidate
	for _, sc := range scores {
		if sc.Strength <= 0 || sc.NeverEngaged {
			continue
		}
		rel := companyRelevance(sc.Connection, target)
		if rel == 0 {
			continue
		}
		out = append(out, Candidate{
			Key:       sc.Key,
			Name:      sc.Connection.FullName(),
			Company:   sc.Connection.Company,
			Position:  sc.Connection.Position,
			Strength:  sc.Strength,
			Vouch:     sc.Vouch,
			Relevance: rel,
			Score:     sc.Strength * rel,
		})
	}

	last := make(map[string]int64, len(scores))
	for _, sc := range scores {
		last[sc.Key] = sc.LastInteraction.UnixMilli()
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		if out[i].Vouch != out[j].Vouch {
			return out[i].Vouch > out[j].Vouch
		}
		if last[out[i].Key] != last[out[j].Key] {
			return last[out[i].Key] > last[out[j].Key]
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// Approach suggests how to use a warm path, based on combined warmth.
func (c Candidate) Approach() string {
	combined := c.Strength*100 + float64(c.Vouch)
	switch {
	case combined > 150:
		return "direct ask - strong relationship"
	case combined > 100:
		return "warm request after a catch-up"
	default:
		return "re-engage first, then ask"
	}
}
