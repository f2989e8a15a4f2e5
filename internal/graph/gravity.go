package graph

import (
	"math"
	"sort"
)

// Target weights for the six score components. The 95th-percentile note
// on a metric receives exactly the metric's target weight, so the
// weights must sum to 100.
const (
	WeightAuthority    = 25.0
	WeightCuration     = 20.0
	WeightConversation = 20.0
	WeightQuality      = 15.0
	WeightNetwork      = 10.0
	WeightIntegration  = 10.0
)

// Sweet-spot bonus thresholds. Step functions, not continuous ramps:
// the point is to reward a metric landing in a meaningful range, not
// raw magnitude.
const (
	scaleBonusMin      = 20  // incoming links for the 1.5x scale bonus
	scaleBonusMax      = 100 // upper bound; above this is a volume hub
	curationBonusMin   = 15  // outgoing links for the 1.3x curation bonus
	conversationMin    = 10  // bidirectional links for the 1.2x bonus
	qualityEfficiency  = 0.25
	qualityBonusHigh   = 2.0
	qualityBonusLow    = 0.5
)

// Score holds the full gravity record for one qualifying note: raw link
// counts, derived ratios, applied bonuses, the six weighted components,
// and their sum. Records are computed once per run and never mutated.
type Score struct {
	Note         string
	Materialized bool

	Incoming      int
	Outgoing      int
	Bidirectional int

	// Efficiency is the ratio of bidirectional links to incoming links.
	Efficiency float64
	// IntegrationIndex is the geometric blend of bidirectional count,
	// outgoing count, and efficiency.
	IntegrationIndex float64

	ScaleBonus        float64
	CurationBonus     float64
	ConversationBonus float64
	QualityBonus      float64

	Authority    float64
	Curation     float64
	Conversation float64
	Quality      float64
	Network      float64
	Integration  float64
	Total        float64
}

// GravityScores computes a Score for every qualifying note — one with at
// least one incoming or outgoing link — and returns the records sorted by
// Total descending, note name ascending on ties. Isolated notes are
// excluded; an empty graph yields an empty slice.
//
// ranks is the PageRank distribution for the same graph.
func (g *LinkGraph) GravityScores(ranks map[string]float64) []Score {
	scores := make([]Score, 0, len(g.notes))
	for note := range g.notes {
		incoming := len(g.backward[note])
		outgoing := len(g.forward[note])
		if incoming == 0 && outgoing == 0 {
			continue
		}
		bidirectional := g.Bidirectional(note)

		efficiency := 0.0
		if incoming > 0 {
			efficiency = float64(bidirectional) / float64(incoming)
		}

		s := Score{
			Note:              note,
			Materialized:      g.materialized[note],
			Incoming:          incoming,
			Outgoing:          outgoing,
			Bidirectional:     bidirectional,
			Efficiency:        efficiency,
			IntegrationIndex:  integrationIndex(bidirectional, outgoing, efficiency),
			ScaleBonus:        stepBonus(incoming >= scaleBonusMin && incoming <= scaleBonusMax, 1.5),
			CurationBonus:     stepBonus(outgoing >= curationBonusMin, 1.3),
			ConversationBonus: stepBonus(bidirectional >= conversationMin, 1.2),
			QualityBonus:      qualityBonusLow,
		}
		if efficiency > qualityEfficiency {
			s.QualityBonus = qualityBonusHigh
		}
		scores = append(scores, s)
	}
	if len(scores) == 0 {
		return scores
	}

	// Per-metric 95th-percentile anchors across all qualifying notes.
	authorityMul := multiplier(WeightAuthority, p95Of(scores, func(s Score) float64 { return incomingLog(s) }))
	curationMul := multiplier(WeightCuration, p95Of(scores, func(s Score) float64 { return outgoingLog(s) }))
	conversationMul := multiplier(WeightConversation, p95Of(scores, func(s Score) float64 { return float64(s.Bidirectional) }))
	qualityMul := multiplier(WeightQuality, p95Of(scores, func(s Score) float64 { return s.Efficiency }))
	networkMul := multiplier(WeightNetwork, p95Of(scores, func(s Score) float64 { return pagerankLog(ranks[s.Note]) }))
	integrationMul := multiplier(WeightIntegration, p95Of(scores, func(s Score) float64 { return s.IntegrationIndex }))

	for i := range scores {
		s := &scores[i]
		s.Authority = incomingLog(*s) * s.ScaleBonus * authorityMul
		s.Curation = outgoingLog(*s) * s.CurationBonus * curationMul
		s.Conversation = float64(s.Bidirectional) * s.ConversationBonus * conversationMul
		s.Quality = s.Efficiency * s.QualityBonus * qualityMul
		s.Network = pagerankLog(ranks[s.Note]) * networkMul
		s.Integration = s.IntegrationIndex * integrationMul
		s.Total = s.Authority + s.Curation + s.Conversation + s.Quality + s.Network + s.Integration
	}

	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Total != scores[j].Total {
			return scores[i].Total > scores[j].Total
		}
		return scores[i].Note < scores[j].Note // deterministic tie-break
	})
	return scores
}

// integrationIndex blends bidirectional count, outgoing count, and
// efficiency into a single multi-dimensional strength value. Each factor
// is floored so a single zero dimension dampens rather than erases the
// index.
func integrationIndex(bidirectional, outgoing int, efficiency float64) float64 {
	return math.Sqrt(
		math.Max(float64(bidirectional), 1) *
			math.Max(float64(outgoing), 1) *
			math.Max(efficiency, 0.01))
}

// incomingLog and outgoingLog apply logarithmic scaling to the raw link
// counts, reducing pure volume dominance.
func incomingLog(s Score) float64 { return math.Log(float64(s.Incoming) + 1) }
func outgoingLog(s Score) float64 { return math.Log(float64(s.Outgoing) + 1) }

// pagerankLog rescales a raw PageRank value into a comparable log metric.
func pagerankLog(rank float64) float64 { return math.Log(rank*10000 + 1) }

func stepBonus(met bool, value float64) float64 {
	if met {
		return value
	}
	return 1.0
}

// multiplier derives the scaling factor that maps a metric's 95th
// percentile to its target weight. A zero anchor forces the multiplier
// to zero: the component then contributes nothing for every note,
// which is the documented degenerate-corpus behavior.
func multiplier(weight, p95 float64) float64 {
	if p95 <= 0 {
		return 0
	}
	return weight / p95
}

func p95Of(scores []Score, metric func(Score) float64) float64 {
	values := make([]float64, len(scores))
	for i, s := range scores {
		values[i] = metric(s)
	}
	return P95(values)
}
