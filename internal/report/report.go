// Package report renders engine results as markdown. It knows nothing
// about CSV layouts or scoring internals; the engine Result bundle is
// its whole input.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/lazypower/rapport/internal/engine"
)

const tableLimit = 10

// Assemble renders the full network intelligence report.
func Assemble(res *engine.Result, runID string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Network Intelligence Report\n\n")
	fmt.Fprintf(&b, "**Generated**: %s\n", res.AsOf.Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "**Connections Analyzed**: %d\n", res.ConnectionCount)
	fmt.Fprintf(&b, "**Messages Analyzed**: %d\n\n", res.MessageCount)

	warmest := res.Warmest(tableLimit)
	cold := res.GoingCold(tableLimit)
	advocates := res.TopAdvocates(tableLimit)
	owed := res.OwedToUser(tableLimit)
	owes := res.UserOwes(tableLimit)

	strong := 0
	for _, a := range advocates {
		if a.Vouch >= 80 {
			strong++
		}
	}

	b.WriteString("---\n\n## Executive Summary\n\n")
	b.WriteString("| Metric | Count |\n|--------|-------|\n")
	fmt.Fprintf(&b, "| Total Connections | %d |\n", res.ConnectionCount)
	fmt.Fprintf(&b, "| Strong Advocates (80+ vouch) | %d |\n", strong)
	fmt.Fprintf(&b, "| Going Cold (need attention) | %d |\n", len(cold))
	fmt.Fprintf(&b, "| People Who Owe You Favors | %d |\n", len(owed))
	fmt.Fprintf(&b, "| Conversations to Resurrect | %d |\n", len(res.Hooks))

	if len(res.DuplicateKeys) > 0 {
		fmt.Fprintf(&b, "\n> Note: %d name(s) appeared more than once in the export and were scored "+
			"under a single identity: %s. Review these manually.\n",
			len(res.DuplicateKeys), strings.Join(res.DuplicateKeys, ", "))
	}

	b.WriteString("\n---\n\n## Warmest Relationships\n\n")
	b.WriteString("These connections have the strongest current relationship strength.\n\n")
	b.WriteString("| Name | Company | Strength | Last Contact | Messages |\n")
	b.WriteString("|------|---------|----------|--------------|----------|\n")
	for _, sc := range warmest {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %d |\n",
			sc.Connection.FullName(), sc.Connection.Company,
			pct(sc.Strength), lastContact(sc.LastInteraction, res.AsOf), sc.Messages)
	}

	b.WriteString("\n---\n\n## Going Cold (Action Needed)\n\n")
	b.WriteString("These valuable relationships are fading. Re-engage now.\n\n")
	b.WriteString("| Name | Company | Strength | Last Contact | Vouch |\n")
	b.WriteString("|------|---------|----------|--------------|-------|\n")
	for _, sc := range cold {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %d (%s) |\n",
			sc.Connection.FullName(), sc.Connection.Company,
			pct(sc.Strength), lastContact(sc.LastInteraction, res.AsOf),
			sc.Vouch, engine.Band(sc.Vouch))
	}

	b.WriteString("\n---\n\n## Top Advocates (High Vouch Score)\n\n")
	b.WriteString("These people would most likely advocate for you if asked.\n\n")
	b.WriteString("| Name | Company | Vouch | Band | Recommendations | Messages |\n")
	b.WriteString("|------|---------|-------|------|-----------------|----------|\n")
	for _, sc := range advocates {
		fmt.Fprintf(&b, "| %s | %s | %d | %s | %d received | %d |\n",
			sc.Connection.FullName(), sc.Connection.Company, sc.Vouch,
			engine.Band(sc.Vouch), sc.RecommendationsReceived, sc.Messages)
	}

	b.WriteString("\n---\n\n## Reciprocity Ledger\n\n")
	b.WriteString("Sign convention: a positive balance means net favor is owed to you — ")
	b.WriteString("you have given more than you received.\n")
	b.WriteString("\n### They Owe You (Safe to Ask for Help)\n\n")
	ledgerTable(&b, owed)
	b.WriteString("\n### You Owe Them (Consider Helping)\n\n")
	ledgerTable(&b, owes)

	if len(res.Hooks) > 0 {
		b.WriteString("\n---\n\n## Conversation Resurrection Opportunities\n\n")
		b.WriteString("Dormant threads with natural re-engagement hooks.\n\n")
		b.WriteString("| Counterpart | Hook Type | Dormant | Hook |\n")
		b.WriteString("|-------------|-----------|---------|------|\n")
		for i, h := range res.Hooks {
			if i == tableLimit {
				break
			}
			fmt.Fprintf(&b, "| %s | %s | %d days | %s |\n",
				h.CounterpartKey, h.Type, h.DaysDormant, sanitizeCell(h.Excerpt))
		}
	}

	b.WriteString("\n---\n\n## Action Items\n\n")
	b.WriteString("### This Week\n")
	b.WriteString("1. Re-engage the top 3 \"Going Cold\" relationships\n")
	b.WriteString("2. Ask one person from \"They Owe You\" for a favor or intro\n")
	b.WriteString("3. Help one person from \"You Owe Them\" proactively\n\n")
	b.WriteString("### This Month\n")
	b.WriteString("- Resurrect 5 dormant conversations\n")
	b.WriteString("- Schedule catch-ups with top advocates\n")

	fmt.Fprintf(&b, "\n---\n\n*rapport run %s*\n", runID)
	return b.String()
}

// WarmPath renders the warm-path report for a target company.
func WarmPath(res *engine.Result, runID string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Warm Path Discovery: %s\n\n", res.TargetCompany)
	fmt.Fprintf(&b, "**Generated**: %s\n\n---\n\n", res.AsOf.Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "## Candidate Introducers Toward %s\n\n", res.TargetCompany)

	if len(res.WarmPaths) == 0 {
		fmt.Fprintf(&b, "No engaged connections found at %s.\n\n", res.TargetCompany)
		b.WriteString("### Suggestions\n")
		b.WriteString("- Search for connections at competitor or partner companies\n")
		b.WriteString("- Look for 2nd-degree paths via your strongest advocates\n")
		b.WriteString("- Check alumni connections from shared schools\n")
	} else {
		b.WriteString("| Name | Position | Relevance | Warmth | Vouch | Approach |\n")
		b.WriteString("|------|----------|-----------|--------|-------|----------|\n")
		for _, c := range res.WarmPaths {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %d | %s |\n",
				c.Name, c.Position, relevanceLabel(c.Relevance), pct(c.Strength),
				c.Vouch, c.Approach())
		}
	}

	fmt.Fprintf(&b, "\n---\n\n*rapport run %s*\n", runID)
	return b.String()
}

func ledgerTable(b *strings.Builder, scs []engine.ScoredConnection) {
	b.WriteString("| Name | Company | Points Given | Points Received | Balance |\n")
	b.WriteString("|------|---------|--------------|-----------------|---------|\n")
	for _, sc := range scs {
		given := sc.RecommendationsGiven*engine.RecommendationPoints +
			sc.EndorsementsGiven*engine.EndorsementPoints
		received := sc.RecommendationsReceived*engine.RecommendationPoints +
			sc.EndorsementsReceived*engine.EndorsementPoints
		fmt.Fprintf(b, "| %s | %s | %d | %d | %+d |\n",
			sc.Connection.FullName(), sc.Connection.Company, given, received, sc.Reciprocity)
	}
}

func pct(strength float64) string {
	return fmt.Sprintf("%.1f%%", strength*100)
}

func relevanceLabel(rel float64) string {
	if rel >= 1.0 {
		return "current employer"
	}
	return "past employer"
}

// lastContact humanizes a timestamp relative to the analysis time, so
// output is stable for a fixed as-of.
func lastContact(t, asOf time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return humanize.RelTime(t, asOf, "ago", "from now")
}

// sanitizeCell keeps excerpts from breaking markdown table rows.
func sanitizeCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}
