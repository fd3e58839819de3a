package engine

import (
	"math"
	"time"

	"github.com/lazypower/rapport/internal/records"
)

// deepSaturation controls how quickly a deep-conversation history
// maxes out its half-life bonus: deep/(deep+deepSaturation).
const deepSaturation = 4.0

// Strength computes the decayed relationship strength for a connection
// at an explicit as-of time. Returns the strength in [0,1] and whether
// the connection has ever been engaged.
//
// The base strength accumulates over the whole message history, so a
// single trivial touch cannot fully refresh a relationship: each deep
// message contributes DeepWeight and each shallow one ShallowWeight,
// and base = 1 - 0.5^weight saturates toward 1.
//
// Decay is exponential from the most recent timestamped interaction.
// The effective half-life stretches for institutional bonds and for
// histories rich in deep conversation. Messages without timestamps
// count toward the base but never toward recency.
func Strength(s *records.Snapshot, key string, cfg Config, asOf time.Time) (float64, bool) {
	msgs := s.MessagesFor(key)

	deep, shallow := 0, 0
	for _, m := range msgs {
		if m.Deep() {
			deep++
		} else {
			shallow++
		}
	}

	last := s.LastInteraction(key)
	if last.IsZero() {
		// Never engaged: no timestamped interaction to decay from.
		return 0, false
	}

	weight := cfg.DeepWeight*float64(deep) + cfg.ShallowWeight*float64(shallow)
	base := 1 - math.Pow(0.5, weight)

	halfLife := cfg.HalfLifeDays
	if s.InstitutionalOverlap(key) {
		halfLife *= cfg.InstitutionalMultiplier
	}
	halfLife *= 1 + cfg.DeepHalfLifeBonus*float64(deep)/(float64(deep)+deepSaturation)

	days := asOf.Sub(last).Hours() / 24
	if days < 0 {
		days = 0
	}

	return clamp01(base * math.Pow(0.5, days/halfLife)), true
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
