package graph

import "math"

// PageRankOptions configures the iterative PageRank pass.
type PageRankOptions struct {
	Damping    float64 // damping factor; typically 0.85
	Iterations int     // fixed iteration budget
	// Epsilon, when positive, enables an early exit once the maximum
	// per-note change in a round drops below it. Zero (the default)
	// disables the check so the run always uses the full budget,
	// matching the historical fixed-count behavior.
	Epsilon float64
}

// DefaultPageRankOptions returns the compatibility defaults:
// damping 0.85, 50 iterations, no convergence check.
func DefaultPageRankOptions() PageRankOptions {
	return PageRankOptions{
		Damping:    0.85,
		Iterations: 50,
	}
}

// PageRank computes an authority distribution over the link graph.
// Every note starts at 1/N, and each synchronous round applies
//
//	rank'(n) = (1-d)/N + d × Σ rank(m)/outdegree(m)
//
// over the previous round's values, summing across notes m linking to n.
//
// Notes with no outgoing links contribute nothing to any target: their
// probability mass LEAKS out of the system rather than being
// redistributed. When such notes exist the ranks sum to less than 1.
// This matches the scoring corpus this engine must stay compatible with;
// do not "fix" it to the canonical dangling-node treatment, as that
// would shift every downstream gravity score.
func (g *LinkGraph) PageRank(opts PageRankOptions) map[string]float64 {
	n := len(g.notes)
	if n == 0 {
		return make(map[string]float64)
	}

	nf := float64(n)
	base := (1.0 - opts.Damping) / nf

	rank := make(map[string]float64, n)
	for id := range g.notes {
		rank[id] = 1.0 / nf
	}

	for iter := 0; iter < opts.Iterations; iter++ {
		newRank := make(map[string]float64, n)
		for v := range g.notes {
			sum := 0.0
			for u := range g.backward[v] {
				if outDeg := len(g.forward[u]); outDeg > 0 {
					sum += rank[u] / float64(outDeg)
				}
			}
			newRank[v] = base + opts.Damping*sum
		}

		maxDelta := 0.0
		if opts.Epsilon > 0 {
			for id := range g.notes {
				if delta := math.Abs(newRank[id] - rank[id]); delta > maxDelta {
					maxDelta = delta
				}
			}
		}

		rank = newRank
		if opts.Epsilon > 0 && maxDelta < opts.Epsilon {
			break
		}
	}

	return rank
}
