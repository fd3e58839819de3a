package engine

import (
	"math"
	"time"

	"github.com/lazypower/rapport/internal/records"
)

// Endorsement recency uses its own one-year half-life: a skill click
// from three years ago says little about advocacy today.
const endorsementHalfLifeDays = 365

// Saturation caps for the vouch sub-signals.
const (
	endorsementSaturation    = 5.0
	recommendationSaturation = 2.0
)

// Weight of records that carry no timestamp. Worth more than long-ago
// dated ones, less than fresh ones.
const undatedWeight = 0.75

// Vouch estimates how likely the connection is to actively advocate
// for the user, on a 0-100 scale. It is a weighted linear combination
// of normalized sub-signals, clamped to the scale. Every sub-signal is
// a saturating sum, so adding a positive signal can never lower the
// score.
func Vouch(s *records.Snapshot, key string, cfg Config, asOf time.Time, strength float64) int {
	endorse := 0.0
	for _, e := range s.EndorsementsReceived(key) {
		if e.At.IsZero() {
			endorse += undatedWeight
			continue
		}
		age := asOf.Sub(e.At).Hours() / 24
		if age < 0 {
			age = 0
		}
		endorse += math.Pow(0.5, age/endorsementHalfLifeDays)
	}
	endorseSignal := math.Min(endorse, endorsementSaturation) / endorsementSaturation

	recs := 0.0
	for _, r := range s.RecommendationsReceived(key) {
		if r.Substantive() {
			recs += 1.0
		} else {
			recs += 0.6
		}
	}
	recSignal := math.Min(recs, recommendationSaturation) / recommendationSaturation

	institutional := 0.0
	if s.InstitutionalOverlap(key) {
		institutional = 1.0
	}

	w := cfg.Vouch
	raw := w.Strength*strength +
		w.Endorsements*endorseSignal +
		w.Recommendations*recSignal +
		w.Institutional*institutional

	score := int(math.Round(raw))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// Band maps a vouch score to its report label.
func Band(vouch int) string {
	switch {
	case vouch >= 80:
		return "would advocate now"
	case vouch >= 50:
		return "likely would help"
	case vouch >= 30:
		return "lukewarm"
	default:
		return "low confidence"
	}
}
