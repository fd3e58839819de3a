package records

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// NormalizeName produces the stable identity key for a person name.
// Exports spell the same person inconsistently (casing, accents copied
// from different surfaces, stray whitespace), so keys are NFKC-normalized,
// case-folded, and whitespace-collapsed.
//
// Two genuinely different people with the same name collapse to one key.
// Snapshot counts those collisions and surfaces them instead of merging
// silently.
func NormalizeName(name string) string {
	// Casers are stateful; build one per call rather than sharing.
	name = norm.NFKC.String(name)
	name = cases.Fold().String(name)
	return strings.Join(strings.Fields(name), " ")
}

// NormalizeCompany produces a comparison key for company names.
func NormalizeCompany(company string) string {
	return NormalizeName(company)
}
