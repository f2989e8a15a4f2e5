// Package report renders gravity analysis results: a markdown report for
// the vault and a short styled summary for the terminal.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/nickmilo/gravity-index/internal/graph"
)

// Options controls report generation.
type Options struct {
	TopN  int          // number of ranked entries to include
	Now   time.Time    // report timestamp; zero means time.Now()
	Rules []graph.Rule // category rules; nil means the defaults
}

// Generate renders the full markdown report for a set of gravity scores.
// Scores must already be sorted (GravityScores returns them sorted).
// An empty score set yields a short "no connections" report.
func Generate(scores []graph.Score, opts Options) string {
	if len(scores) == 0 {
		return "# Gravity Index Results\n\nNo notes with connections found in this vault.\n"
	}

	topN := opts.TopN
	if topN <= 0 || topN > len(scores) {
		topN = len(scores)
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	rules := opts.Rules
	if rules == nil {
		rules = graph.DefaultRules()
	}

	var b strings.Builder
	b.WriteString("# Gravity Index Results\n\n")
	fmt.Fprintf(&b, "*Generated: %s*\n\n", now.Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "## Top %d Notes by Gravity Index\n\n", topN)

	for i, s := range scores[:topN] {
		fmt.Fprintf(&b, "%d. **[[%s]]** - Score: %.1f - %s\n", i+1, s.Note, s.Total, Describe(s))
	}

	writeMethodology(&b)
	writeSummary(&b, scores)
	writeCategories(&b, scores[:topN], rules, topN)

	b.WriteString("\n---\n\n*Generated by Gravity Index Analyzer*\n")
	return b.String()
}

// Describe returns a short phrase highlighting a note's strengths and the
// most notable gap, derived from its raw metrics.
func Describe(s graph.Score) string {
	var strengths []string

	switch {
	case s.Incoming >= 100:
		strengths = append(strengths, "authoritative reference")
	case s.Incoming >= 50:
		strengths = append(strengths, "widely referenced")
	case s.Incoming >= 20:
		strengths = append(strengths, "solid authority")
	}

	switch {
	case s.Outgoing >= 50:
		strengths = append(strengths, "extensive curator")
	case s.Outgoing >= 25:
		strengths = append(strengths, "active synthesizer")
	case s.Outgoing >= 15:
		strengths = append(strengths, "knowledge weaver")
	}

	switch {
	case s.Bidirectional >= 20:
		strengths = append(strengths, "conversation hub")
	case s.Bidirectional >= 10:
		strengths = append(strengths, "dialogue catalyst")
	}

	switch {
	case s.Efficiency >= 0.4:
		strengths = append(strengths, "selective depth")
	case s.Efficiency >= 0.25:
		strengths = append(strengths, "quality focus")
	}

	var gap string
	switch {
	case s.Incoming < 10 && s.Outgoing > 30:
		gap = "under-recognized"
	case s.Outgoing < 10 && s.Incoming > 30:
		gap = "could link more"
	case s.Bidirectional < 5 && s.Incoming > 20:
		gap = "one-way traffic"
	}

	switch {
	case len(strengths) > 0 && gap != "":
		if len(strengths) > 2 {
			strengths = strengths[:2]
		}
		return fmt.Sprintf("%s; %s", strings.Join(strengths, ", "), gap)
	case len(strengths) >= 2:
		return strengths[0] + " + " + strengths[1]
	case len(strengths) == 1:
		return strengths[0]
	case s.IntegrationIndex > 10:
		return "balanced integrator"
	default:
		return "emerging connector"
	}
}

func writeMethodology(b *strings.Builder) {
	b.WriteString(`
---

## Integration at Scale Methodology

This analysis identifies **meaningful scale integrators** - notes that actively
curate and engage at meaningful scale while maintaining conversational
relationships.

### Component Weights
- **Authority (25%)**: log(incoming) with the scale bonus
- **Curation (20%)**: log(outgoing) with the curation bonus
- **Conversation (20%)**: bidirectional links with the conversation bonus
- **Quality (15%)**: bidirectional efficiency with the quality bonus
- **Network (10%)**: log-scaled PageRank
- **Integration (10%)**: geometric blend of bidirectional, outgoing, and efficiency

### Sweet Spot Bonuses
- **Scale Bonus (1.5x)**: 20-100 incoming links
- **Curation Bonus (1.3x)**: 15+ outgoing links
- **Conversation Bonus (1.2x)**: 10+ bidirectional links
- **Quality Bonus (2.0x)**: 25%+ efficiency (bidirectional/incoming)
`)
}

func writeSummary(b *strings.Builder, scores []graph.Score) {
	materialized := 0
	var totalEfficiency float64
	for _, s := range scores {
		if s.Materialized {
			materialized++
		}
		totalEfficiency += s.Efficiency
	}
	avgEfficiency := totalEfficiency / float64(len(scores)) * 100

	b.WriteString("\n---\n\n## Summary Statistics\n")
	fmt.Fprintf(b, "- **Total notes analyzed**: %d\n", len(scores))
	fmt.Fprintf(b, "- **Notes with files**: %d\n", materialized)
	fmt.Fprintf(b, "- **Average efficiency**: %.1f%%\n", avgEfficiency)
	fmt.Fprintf(b, "- **Top score**: %.1f\n", scores[0].Total)
}

func writeCategories(b *strings.Builder, top []graph.Score, rules []graph.Rule, topN int) {
	type stats struct {
		count int
		sum   float64
	}
	byCategory := make(map[string]*stats)
	for _, s := range top {
		cat := graph.Categorize(s.Note, rules)
		if byCategory[cat] == nil {
			byCategory[cat] = &stats{}
		}
		byCategory[cat].count++
		byCategory[cat].sum += s.Total
	}

	names := make([]string, 0, len(byCategory))
	for name := range byCategory {
		names = append(names, name)
	}
	// Largest categories first, alphabetical on ties.
	sort.Slice(names, func(i, j int) bool {
		ci, cj := byCategory[names[i]].count, byCategory[names[j]].count
		if ci != cj {
			return ci > cj
		}
		return names[i] < names[j]
	})

	fmt.Fprintf(b, "\n### Category Performance (Top %d)\n", topN)
	for _, name := range names {
		st := byCategory[name]
		fmt.Fprintf(b, "- **%s**: %d notes (avg: %.1f)\n", name, st.count, st.sum/float64(st.count))
	}
}
