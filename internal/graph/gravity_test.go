package graph

import (
	"math"
	"testing"
)

func scoreByNote(scores []Score, note string) (Score, bool) {
	for _, s := range scores {
		if s.Note == note {
			return s, true
		}
	}
	return Score{}, false
}

func TestWeights_SumToOneHundred(t *testing.T) {
	t.Parallel()
	sum := WeightAuthority + WeightCuration + WeightConversation +
		WeightQuality + WeightNetwork + WeightIntegration
	if sum != 100.0 {
		t.Errorf("component weights sum to %f, want 100", sum)
	}
}

func TestGravityScores_EmptyGraph(t *testing.T) {
	t.Parallel()
	g := New()
	scores := g.GravityScores(g.PageRank(DefaultPageRankOptions()))
	if len(scores) != 0 {
		t.Errorf("expected no scores for empty graph, got %d", len(scores))
	}
}

func TestGravityScores_IsolatedNotesExcluded(t *testing.T) {
	t.Parallel()
	g := New()
	g.MarkMaterialized("Lonely")
	g.AddEdge("A", "B")

	scores := g.GravityScores(g.PageRank(DefaultPageRankOptions()))
	if len(scores) != 2 {
		t.Fatalf("expected 2 scores, got %d", len(scores))
	}
	if _, ok := scoreByNote(scores, "Lonely"); ok {
		t.Error("isolated note should not receive a score record")
	}
}

func TestGravityScores_AllIsolated(t *testing.T) {
	t.Parallel()
	g := New()
	g.MarkMaterialized("A")
	g.MarkMaterialized("B")

	scores := g.GravityScores(g.PageRank(DefaultPageRankOptions()))
	if len(scores) != 0 {
		t.Errorf("expected empty result when every note is isolated, got %d", len(scores))
	}
}

func TestGravityScores_MutualPair(t *testing.T) {
	t.Parallel()
	g := buildMutualPair(t)
	scores := g.GravityScores(g.PageRank(DefaultPageRankOptions()))

	if len(scores) != 2 {
		t.Fatalf("expected 2 scores, got %d", len(scores))
	}
	// Identical totals tie-break alphabetically: A before B.
	if scores[0].Note != "A" || scores[1].Note != "B" {
		t.Errorf("tie-break order = [%s, %s], want [A, B]", scores[0].Note, scores[1].Note)
	}
	if !approxEqual(scores[0].Total, scores[1].Total) {
		t.Errorf("mutual pair should score identically, got %f vs %f", scores[0].Total, scores[1].Total)
	}

	a := scores[0]
	if a.Incoming != 1 || a.Outgoing != 1 || a.Bidirectional != 1 {
		t.Errorf("counts = in %d out %d bidi %d, want 1/1/1", a.Incoming, a.Outgoing, a.Bidirectional)
	}
	if !approxEqual(a.Efficiency, 1.0) {
		t.Errorf("Efficiency = %f, want 1.0", a.Efficiency)
	}
	if a.QualityBonus != 2.0 {
		t.Errorf("QualityBonus = %f, want 2.0 (efficiency above 0.25)", a.QualityBonus)
	}
	for name, bonus := range map[string]float64{
		"ScaleBonus":        a.ScaleBonus,
		"CurationBonus":     a.CurationBonus,
		"ConversationBonus": a.ConversationBonus,
	} {
		if bonus != 1.0 {
			t.Errorf("%s = %f, want 1.0 (threshold unmet)", name, bonus)
		}
	}

	// With both notes sitting exactly at every p95 anchor, each
	// component lands on its target weight times its bonus:
	// 25 + 20 + 20 + 15×2.0 + 10 + 10 = 115.
	if !approxEqual(a.Total, 115.0) {
		t.Errorf("Total = %f, want 115.0", a.Total)
	}
}

func TestGravityScores_DanglingReference(t *testing.T) {
	t.Parallel()
	g := buildDangling(t)
	scores := g.GravityScores(g.PageRank(DefaultPageRankOptions()))

	x, ok := scoreByNote(scores, "X")
	if !ok {
		t.Fatal("dangling note X should qualify via its incoming link")
	}
	if x.Incoming != 1 || x.Outgoing != 0 {
		t.Errorf("X counts = in %d out %d, want 1/0", x.Incoming, x.Outgoing)
	}
	if x.Materialized {
		t.Error("X has no backing document, should not be materialized")
	}

	a, ok := scoreByNote(scores, "A")
	if !ok {
		t.Fatal("A should qualify via its outgoing link")
	}
	if !a.Materialized {
		t.Error("A is materialized")
	}
	if a.Efficiency != 0 {
		t.Errorf("A has no incoming links; Efficiency = %f, want 0", a.Efficiency)
	}
}

func TestGravityScores_ThreeNodeCycle(t *testing.T) {
	t.Parallel()
	g := buildCycle(t)
	scores := g.GravityScores(g.PageRank(DefaultPageRankOptions()))

	if len(scores) != 3 {
		t.Fatalf("expected 3 scores, got %d", len(scores))
	}
	for _, s := range scores {
		if s.Incoming != 1 || s.Outgoing != 1 || s.Bidirectional != 0 {
			t.Errorf("%s counts = in %d out %d bidi %d, want 1/1/0",
				s.Note, s.Incoming, s.Outgoing, s.Bidirectional)
		}
		if s.Efficiency != 0 {
			t.Errorf("%s Efficiency = %f, want 0", s.Note, s.Efficiency)
		}
		if s.QualityBonus != 0.5 {
			t.Errorf("%s QualityBonus = %f, want 0.5", s.Note, s.QualityBonus)
		}
		// sqrt(max(0,1) × max(1,1) × max(0, 0.01)) = 0.1
		if !approxEqual(s.IntegrationIndex, math.Sqrt(0.01)) {
			t.Errorf("%s IntegrationIndex = %f, want 0.1", s.Note, s.IntegrationIndex)
		}
		// Zero bidirectional and zero efficiency zero out both components.
		if s.Conversation != 0 || s.Quality != 0 {
			t.Errorf("%s conversation/quality = %f/%f, want 0/0", s.Note, s.Conversation, s.Quality)
		}
	}
	// Fully symmetric cycle with alphabetical tie-break.
	if scores[0].Note != "A" || scores[1].Note != "B" || scores[2].Note != "C" {
		t.Errorf("order = [%s %s %s], want [A B C]",
			scores[0].Note, scores[1].Note, scores[2].Note)
	}
}

func TestGravityScores_SortedDescending(t *testing.T) {
	t.Parallel()
	// Hub is referenced by everyone and links back: should outrank leaves.
	g := New()
	for _, src := range []string{"A", "B", "C", "D"} {
		g.AddEdge(src, "Hub")
		g.AddEdge("Hub", src)
	}

	scores := g.GravityScores(g.PageRank(DefaultPageRankOptions()))
	for i := 1; i < len(scores); i++ {
		if scores[i-1].Total < scores[i].Total {
			t.Errorf("scores not descending at %d: %f < %f", i, scores[i-1].Total, scores[i].Total)
		}
	}
	if scores[0].Note != "Hub" {
		t.Errorf("top note = %s, want Hub", scores[0].Note)
	}
}

func TestGravityScores_TotalIsComponentSum(t *testing.T) {
	t.Parallel()
	g := buildDangling(t)
	g.AddEdge("A", "B")
	g.AddEdge("B", "A")

	for _, s := range g.GravityScores(g.PageRank(DefaultPageRankOptions())) {
		sum := s.Authority + s.Curation + s.Conversation + s.Quality + s.Network + s.Integration
		if !approxEqual(s.Total, sum) {
			t.Errorf("%s: Total = %f, component sum = %f", s.Note, s.Total, sum)
		}
	}
}
