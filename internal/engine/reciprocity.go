package engine

import "github.com/lazypower/rapport/internal/records"

// Point values for directional favors.
const (
	RecommendationPoints = 10
	EndorsementPoints    = 2
)

// Reciprocity folds every directional action touching a connection
// into a signed balance.
//
// Sign convention: positive means net favor is owed TO the user — the
// user has given more than they received, so they can comfortably ask
// for help. Received favors are debts and subtract. The fold is a sum
// of signed contributions, so action order never matters.
func Reciprocity(s *records.Snapshot, key string) int {
	balance := 0
	balance += RecommendationPoints * len(s.RecommendationsGiven(key))
	balance -= RecommendationPoints * len(s.RecommendationsReceived(key))
	balance += EndorsementPoints * len(s.EndorsementsGiven(key))
	balance -= EndorsementPoints * len(s.EndorsementsReceived(key))
	return balance
}
